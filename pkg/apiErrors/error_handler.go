package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// Erros de autenticação
	ErrInvalidToken = "AUTH_006" // Token inválido
	ErrExpiredToken = "AUTH_007" // Token expirado

	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido

	// Erros de rota
	ErrNotFound         = "HTTP_404"
	ErrMethodNotAllowed = "HTTP_405"

	// Erros do servidor
	ErrInternalServer       = "SRV_001" // Erro interno do servidor
	ErrCommunication        = "SRV_004" // Erro de comunicação
	ErrMissingConfiguration = "SRV_005" // Configuração ausente no servidor
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidToken:         http.StatusUnauthorized,
	ErrExpiredToken:         http.StatusUnauthorized,
	ErrInvalidRequest:       http.StatusBadRequest,
	ErrMissingRequiredData:  http.StatusBadRequest,
	ErrInvalidFormat:        http.StatusBadRequest,
	ErrNotFound:             http.StatusNotFound,
	ErrMethodNotAllowed:     http.StatusMethodNotAllowed,
	ErrInternalServer:       http.StatusInternalServerError,
	ErrCommunication:        http.StatusInternalServerError,
	ErrMissingConfiguration: http.StatusInternalServerError,
}

// Título curto devolvido no campo "error"
var titleMap = map[string]string{
	ErrInvalidToken:         "Token inválido",
	ErrExpiredToken:         "Token expirado",
	ErrInvalidRequest:       "Requisição inválida",
	ErrMissingRequiredData:  "Dados obrigatórios ausentes",
	ErrInvalidFormat:        "Formato de dados inválido",
	ErrNotFound:             "Rota não encontrada",
	ErrMethodNotAllowed:     "Método não permitido",
	ErrInternalServer:       "Erro interno no servidor",
	ErrCommunication:        "Falha ao comunicar com a API da Meta",
	ErrMissingConfiguration: "Erro de configuração do servidor",
}

// APIError representa um erro de API padronizado
type APIError struct {
	Error   string `json:"error"`             // Título do erro
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor devolve o status HTTP associado ao código
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// New monta o corpo padronizado para um código
func New(code string, message string, details any) APIError {
	title, exists := titleMap[code]
	if !exists {
		title = titleMap[ErrInternalServer]
	}

	return APIError{
		Error:   title,
		Code:    code,
		Message: message,
		Details: details,
	}
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(New(code, message, details))
}
