package authenticating

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/meta-capi-gateway/internal/config"
	"github.com/vfg2006/meta-capi-gateway/pkg/apiErrors"
)

// Claims identifica o cliente que está enviando eventos
type Claims struct {
	jwt.RegisteredClaims
}

type Authenticator interface {
	Enabled() bool
	ValidateToken(tokenString string) (*Claims, error)
	GenerateToken(subject string, ttl time.Duration) (string, error)
}

type Service struct {
	secret []byte
}

func NewService(cfg *config.Config) *Service {
	return &Service{secret: []byte(cfg.Auth.Secret)}
}

// Enabled indica se a rota de eventos exige bearer token
func (s *Service) Enabled() bool {
	return len(s.secret) > 0
}

func (s *Service) GenerateToken(subject string, ttl time.Duration) (string, error) {
	if !s.Enabled() {
		return "", ErrMissingSecret
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  subject,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, NewAuthError(ErrMissingToken, apiErrors.ErrInvalidToken, "")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}
	return claims, nil
}
