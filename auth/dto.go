// Package auth provides authentication and authorization functionality.
// This file defines the request/response payloads for the auth endpoints.
package auth

import (
	"github.com/go-playground/validator/v10"

	"github.com/user/projectman-go/apperror"
)

var validate = validator.New()

// RegisterRequest represents the registration request payload.
type RegisterRequest struct {
	Username string `json:"username" example:"newuser" validate:"required,min=3,max=50"`
	Password string `json:"password" example:"strongpassword123" validate:"required,min=6"`
}

// Validate checks the registration payload against its constraints.
func (r RegisterRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return apperror.NewValidationError("username must be 3-50 characters and password at least 6", err)
	}
	return nil
}

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Username string `json:"username" example:"newuser" validate:"required"`
	Password string `json:"password" example:"strongpassword123" validate:"required"`
}

// Validate checks that both credentials are present.
func (r LoginRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return apperror.NewValidationError("username and password are required", err)
	}
	return nil
}

// TokenResponse is returned to the client on successful login or refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType    string `json:"token_type" example:"Bearer"`
	ExpiresIn    int64  `json:"expires_in" example:"3600"` // access token expiry as a Unix timestamp
}

// RefreshTokenRequest represents the token refresh request payload.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}
