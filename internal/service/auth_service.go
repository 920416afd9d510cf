package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mcq-generator/internal/dto"
	"mcq-generator/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	TokenTypeAccess = "access"
	tokenIssuer     = "mcq-generator"
)

var (
	ErrInvalidJWTToken = errors.New("invalid jwt token")
	ErrMissingSecret   = errors.New("jwt secret is not configured")
)

// AuthService issues and validates HS256 API tokens.
type AuthService interface {
	CreateJWT(ctx context.Context, subject string, ttl time.Duration) (string, error)
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

type authServiceImpl struct {
	secret []byte
}

func NewAuthService(secret string) (AuthService, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &authServiceImpl{secret: []byte(secret)}, nil
}

func (s *authServiceImpl) CreateJWT(ctx context.Context, subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("token subject cannot be empty")
	}
	now := time.Now()
	claims := dto.AuthClaims{
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func snippet(token string) string {
	if len(token) > 20 {
		return token[:20] + "..."
	}
	return token
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(tokenIssuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Get().Warn("JWT token expired", zap.String("token_snippet", snippet(tokenString)))
		} else {
			logger.Get().Warn("JWT validation failed", zap.Error(err), zap.String("token_snippet", snippet(tokenString)))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	if claims, ok := token.Claims.(*dto.AuthClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidJWTToken
}
