// Package middleware provides gin middlewares shared by all routes.
package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/go-petr/bank-admin/pkg/tokenpkg"
	"github.com/go-petr/bank-admin/pkg/web"
)

// Authorization header parts and the gin context key of the verified payload.
const (
	AuthHeaderKey  = "authorization"
	AuthTypeBearer = "bearer"
	AuthPayloadKey = "authorization_payload"
)

var (
	// ErrAuthHeaderNotFound indicates a request without authorization header.
	ErrAuthHeaderNotFound = errors.New("authorization header is not provided")
	// ErrBadAuthHeaderFormat indicates an authorization header without type or credentials.
	ErrBadAuthHeaderFormat = errors.New("invalid authorization header format")
	// ErrUnsupportedAuthType indicates an authorization type other than bearer.
	ErrUnsupportedAuthType = errors.New("unsupported authorization type")
	// ErrForbidden indicates a valid token whose role may not access the route.
	ErrForbidden = errors.New("access denied")
)

// AddAuthorization creates a token for the subject and sets it as the request authorization header.
func AddAuthorization(r *http.Request, maker tokenpkg.Maker, authType string, s tokenpkg.Subject, duration time.Duration) error {
	token, _, err := maker.CreateToken(s, duration)
	if err != nil {
		return err
	}

	r.Header.Set(AuthHeaderKey, fmt.Sprintf("%s %s", authType, token))

	return nil
}

// AuthMiddleware verifies the bearer token and stores its payload in the gin context.
func AuthMiddleware(maker tokenpkg.Maker) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		authHeader := gctx.GetHeader(AuthHeaderKey)
		if len(authHeader) == 0 {
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrAuthHeaderNotFound))
			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) < 2 {
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrBadAuthHeaderFormat))
			return
		}

		authType := strings.ToLower(fields[0])
		if authType != AuthTypeBearer {
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrUnsupportedAuthType))
			return
		}

		payload, err := maker.VerifyToken(fields[1])
		if err != nil {
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		gctx.Set(AuthPayloadKey, payload)
		gctx.Next()
	}
}

// RequireRole lets through only requests whose verified token carries one of roles.
//
// It must run after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		payload, ok := Payload(gctx)
		if !ok {
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrAuthHeaderNotFound))
			return
		}

		for _, role := range roles {
			if payload.Role == role {
				gctx.Next()
				return
			}
		}

		gctx.AbortWithStatusJSON(http.StatusForbidden, web.Error(ErrForbidden))
	}
}

// Payload returns the token payload stored by AuthMiddleware.
func Payload(gctx *gin.Context) (*tokenpkg.Payload, bool) {
	v, ok := gctx.Get(AuthPayloadKey)
	if !ok {
		return nil, false
	}

	payload, ok := v.(*tokenpkg.Payload)

	return payload, ok
}
