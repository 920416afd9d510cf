package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAuthService_RequiresSecret(t *testing.T) {
	_, err := NewAuthService("")
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestAuthService_CreateAndValidate(t *testing.T) {
	svc, err := NewAuthService("test-secret")
	require.NoError(t, err)
	ctx := context.Background()

	token, err := svc.CreateJWT(ctx, "instructor-1", time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateJWT(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "instructor-1", claims.Subject)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)

	_, err = svc.CreateJWT(ctx, "", time.Hour)
	assert.Error(t, err)
}

func TestAuthService_RejectsBadTokens(t *testing.T) {
	svc, err := NewAuthService("test-secret")
	require.NoError(t, err)
	other, err := NewAuthService("other-secret")
	require.NoError(t, err)
	ctx := context.Background()

	expired, err := svc.CreateJWT(ctx, "u", -time.Minute)
	require.NoError(t, err)
	_, err = svc.ValidateJWT(ctx, expired)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)

	foreign, err := other.CreateJWT(ctx, "u", time.Hour)
	require.NoError(t, err)
	_, err = svc.ValidateJWT(ctx, foreign)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"iss": tokenIssuer}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ValidateJWT(ctx, none)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)

	_, err = svc.ValidateJWT(ctx, "not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}
