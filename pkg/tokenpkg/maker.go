// Package tokenpkg provides access token creation and verification.
package tokenpkg

import (
	"fmt"
	"time"
)

// Supported token types.
const (
	TypePaseto = "paseto"
	TypeJWT    = "jwt"
)

// Maker is an interface for managing tokens.
type Maker interface {
	// CreateToken creates a new token for the subject and duration.
	CreateToken(s Subject, duration time.Duration) (string, *Payload, error)
	// VerifyToken checks if the token is valid or not.
	VerifyToken(token string) (*Payload, error)
}

// New returns the Maker of the given type. Empty type means paseto.
func New(tokenType, secretKey string) (Maker, error) {
	switch tokenType {
	case "", TypePaseto:
		maker, err := NewPasetoMaker(secretKey)
		if err != nil {
			return nil, err
		}

		return maker, nil
	case TypeJWT:
		maker, err := NewJWTMaker(secretKey)
		if err != nil {
			return nil, err
		}

		return maker, nil
	}

	return nil, fmt.Errorf("unsupported token type %q", tokenType)
}
