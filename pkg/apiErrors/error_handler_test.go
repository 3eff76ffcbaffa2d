package apiErrors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		wantStatus int
		wantTitle  string
	}{
		{name: "validação", code: ErrInvalidRequest, wantStatus: http.StatusBadRequest, wantTitle: "Requisição inválida"},
		{name: "configuração", code: ErrMissingConfiguration, wantStatus: http.StatusInternalServerError, wantTitle: "Erro de configuração do servidor"},
		{name: "transporte", code: ErrCommunication, wantStatus: http.StatusInternalServerError, wantTitle: "Falha ao comunicar com a API da Meta"},
		{name: "código desconhecido", code: "XYZ", wantStatus: http.StatusInternalServerError, wantTitle: "Erro interno no servidor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			WriteError(rec, tt.code, "detalhe", map[string]any{"field": "events"})

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantTitle, body["error"])
			assert.Equal(t, tt.code, body["code"])
			assert.Equal(t, "detalhe", body["message"])
			assert.Equal(t, map[string]any{"field": "events"}, body["details"])
		})
	}
}

func TestWriteError_OmitsEmptyFields(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, ErrInvalidRequest, "", nil)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotContains(t, body, "message")
	assert.NotContains(t, body, "details")
}
