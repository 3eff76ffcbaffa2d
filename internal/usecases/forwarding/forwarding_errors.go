package forwarding

import (
	"errors"
	"fmt"
)

// Erros específicos para o encaminhamento de eventos
var (
	// Erros de configuração
	ErrMissingAccessToken = errors.New("meta access token is not configured")

	// Erros de processamento
	ErrNormalization = errors.New("error normalizing events")

	// Erros de serviços externos
	ErrMetaUnreachable = errors.New("error communicating with Meta Conversions API")
	ErrMetaDelivery    = errors.New("error delivering events to Meta")
)

// ForwardError é um erro com contexto adicional para o encaminhamento
type ForwardError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *ForwardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *ForwardError) Unwrap() error {
	return e.Err
}

// NewForwardError cria um novo ForwardError
func NewForwardError(err error, code string, details string) *ForwardError {
	return &ForwardError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
