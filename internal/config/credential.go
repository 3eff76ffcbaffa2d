package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

const AccessTokenKey = "META_ACCESS_TOKEN"

// CredentialSource fornece o access token da Meta no momento da requisição
type CredentialSource interface {
	AccessToken() string
}

// EnvCredential lê o token a cada chamada, então uma variável de ambiente
// alterada ou removida é percebida sem reiniciar o processo.
// Valores definidos apenas no .env lido pelo viper servem de fallback.
type EnvCredential struct {
	Key string
}

func NewEnvCredential() *EnvCredential {
	return &EnvCredential{Key: AccessTokenKey}
}

func (c *EnvCredential) AccessToken() string {
	if token := strings.TrimSpace(os.Getenv(c.Key)); token != "" {
		return token
	}
	return strings.TrimSpace(viper.GetString(c.Key))
}

// StaticCredential devolve sempre o mesmo token
type StaticCredential string

func (c StaticCredential) AccessToken() string {
	return string(c)
}
