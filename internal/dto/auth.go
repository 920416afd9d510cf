package dto

import "github.com/golang-jwt/jwt/v5"

// AuthClaims defines the custom claims for JWT.
type AuthClaims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}
