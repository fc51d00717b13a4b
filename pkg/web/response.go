// Package web defines common components for a web application.
package web

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Response holds the common response type for all APIs.
type Response struct {
	Message              string `json:"message,omitempty"`
	AccessToken          string `json:"access_token,omitempty"`
	AccessTokenExpiresAt string `json:"access_token_expires_at,omitempty"`
	Data                 any    `json:"data,omitempty"`
	Error                string `json:"error,omitempty"`
}

// Error wraps a given err into json friendly response.
func Error(err error) Response {
	return Response{Error: err.Error()}
}

// Success wraps data into response with the given message.
func Success(data any, message string) Response {
	return Response{Message: message, Data: data}
}

// GetErrorMsg returns human readable description of validation errors.
func GetErrorMsg(ve validator.ValidationErrors) string {
	msgs := make([]string, len(ve))

	for i, fe := range ve {
		msgs[i] = fieldErrorMsg(fe)
	}

	return strings.Join(msgs, "; ")
}

func fieldErrorMsg(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s field is required", field)
	case "email":
		return fmt.Sprintf("%s field must be a valid email", field)
	case "min":
		return fmt.Sprintf("%s field must be at least %s characters long", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s field must be at most %s characters long", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s field must be one of [%s]", field, fe.Param())
	}

	return fmt.Sprintf("%s field is invalid", field)
}
