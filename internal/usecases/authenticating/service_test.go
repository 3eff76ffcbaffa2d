package authenticating

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/meta-capi-gateway/internal/config"
	"github.com/vfg2006/meta-capi-gateway/pkg/apiErrors"
)

func newService(secret string) *Service {
	return NewService(&config.Config{Auth: config.Auth{Secret: secret}})
}

func TestService_Enabled(t *testing.T) {
	assert.False(t, newService("").Enabled())
	assert.True(t, newService("segredo").Enabled())
}

func TestService_GenerateAndValidate(t *testing.T) {
	svc := newService("segredo")

	token, err := svc.GenerateToken("landing-page", time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "landing-page", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
}

func TestService_GenerateToken_WithoutSecret(t *testing.T) {
	_, err := newService("").GenerateToken("x", time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestService_ValidateToken(t *testing.T) {
	svc := newService("segredo")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))},
	})
	expiredToken, err := expired.SignedString([]byte("segredo"))
	require.NoError(t, err)

	otherKey, err := newService("outro").GenerateToken("x", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name     string
		token    string
		wantErr  error
		wantCode string
	}{
		{name: "vazio", token: "", wantErr: ErrMissingToken, wantCode: apiErrors.ErrInvalidToken},
		{name: "malformado", token: "abc.def", wantErr: ErrInvalidToken, wantCode: apiErrors.ErrInvalidToken},
		{name: "assinado com outra chave", token: otherKey, wantErr: ErrInvalidToken, wantCode: apiErrors.ErrInvalidToken},
		{name: "expirado", token: expiredToken, wantErr: ErrExpiredToken, wantCode: apiErrors.ErrExpiredToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateToken(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tt.wantErr)

			var authErr *AuthError
			require.True(t, errors.As(err, &authErr))
			assert.Equal(t, tt.wantCode, authErr.Code)
		})
	}
}
