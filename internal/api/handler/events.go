package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/meta-capi-gateway/internal/domain"
	"github.com/vfg2006/meta-capi-gateway/internal/usecases/forwarding"
	"github.com/vfg2006/meta-capi-gateway/pkg/apiErrors"
	"github.com/vfg2006/meta-capi-gateway/pkg/log"
	"github.com/vfg2006/meta-capi-gateway/pkg/metrics"
	"github.com/vfg2006/meta-capi-gateway/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Limite do corpo aceito na rota de eventos
const maxBodyBytes = 1 << 20

// eventsPayload separa a forma do envelope da decodificação dos eventos,
// para distinguir "events" ausente de "events" que não é lista
type eventsPayload struct {
	Events        jsoniter.RawMessage `json:"events"`
	TestEventCode *string             `json:"test_event_code"`
}

func PostEvents(forwarder forwarding.Forwarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		batch, apiErr := decodeBatch(r)
		if apiErr != nil {
			metrics.RequestsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
			logger.WithField("error", apiErr.Message).Warn("capi: lote rejeitado na validação")
			apiErrors.WriteError(w, apiErr.Code, apiErr.Message, apiErr.Details)
			return
		}

		metrics.EventsReceivedTotal.Add(float64(len(batch.Events)))

		result, err := forwarder.Forward(r.Context(), batch, utils.ClientIP(r))
		if err != nil {
			writeForwardError(w, logger, err)
			return
		}

		status := http.StatusOK
		outcome := metrics.OutcomeDelivered
		if !result.Success {
			status = result.Status
			outcome = metrics.OutcomeRejected
			logger.WithField("status_code", result.Status).Warn("capi: Meta rejeitou o lote")
		}
		metrics.RequestsTotal.WithLabelValues(outcome).Inc()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.WithError(err).Error("capi: erro ao codificar resposta")
		}
	})
}

func decodeBatch(r *http.Request) (domain.EventBatch, *apiErrors.APIError) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return domain.EventBatch{}, validationError(apiErrors.ErrInvalidRequest, "Erro ao ler o corpo da requisição", nil)
	}
	if len(body) > maxBodyBytes {
		return domain.EventBatch{}, validationError(apiErrors.ErrInvalidRequest, "Corpo da requisição excede o limite permitido", nil)
	}

	var payload eventsPayload
	if len(bytes.TrimSpace(body)) == 0 {
		return domain.EventBatch{}, validationError(apiErrors.ErrInvalidFormat, "Corpo da requisição vazio", nil)
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.EventBatch{}, validationError(apiErrors.ErrInvalidFormat, "Corpo da requisição não é um JSON válido", nil)
	}

	raw := bytes.TrimSpace(payload.Events)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return domain.EventBatch{}, validationError(apiErrors.ErrMissingRequiredData, "O campo events é obrigatório", nil)
	}
	if raw[0] != '[' {
		return domain.EventBatch{}, validationError(apiErrors.ErrInvalidFormat, "O campo events deve ser uma lista", nil)
	}

	batch := domain.EventBatch{}
	if err := json.Unmarshal(raw, &batch.Events); err != nil {
		return domain.EventBatch{}, validationError(apiErrors.ErrInvalidFormat, "Evento com formato inválido", map[string]string{"reason": err.Error()})
	}

	// Código de teste vazio equivale a ausente
	if payload.TestEventCode != nil && *payload.TestEventCode != "" {
		batch.TestEventCode = payload.TestEventCode
	}

	if err := batch.Validate(); err != nil {
		var eventErr *domain.EventValidationError
		if errors.As(err, &eventErr) {
			return domain.EventBatch{}, validationError(apiErrors.ErrInvalidRequest, eventErr.Err.Error(), map[string]any{"index": eventErr.Index})
		}
		return domain.EventBatch{}, validationError(apiErrors.ErrInvalidRequest, err.Error(), nil)
	}

	return batch, nil
}

func validationError(code, message string, details any) *apiErrors.APIError {
	apiErr := apiErrors.New(code, message, details)
	return &apiErr
}

func writeForwardError(w http.ResponseWriter, logger log.Logger, err error) {
	var fwdErr *forwarding.ForwardError
	if !errors.As(err, &fwdErr) {
		metrics.RequestsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		logger.WithError(err).Error("capi: erro inesperado ao encaminhar eventos")
		// Erros do forwarding.Service chegam como ForwardError já sem o token
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro inesperado ao encaminhar eventos", map[string]string{"reason": err.Error()})
		return
	}

	switch {
	case errors.Is(err, forwarding.ErrMissingAccessToken):
		metrics.RequestsTotal.WithLabelValues(metrics.OutcomeMisconfigured).Inc()
		apiErrors.WriteError(w, fwdErr.Code, "Credencial da Conversions API não configurada", nil)
		return
	case errors.Is(err, forwarding.ErrMetaUnreachable):
		metrics.RequestsTotal.WithLabelValues(metrics.OutcomeTransport).Inc()
	default:
		metrics.RequestsTotal.WithLabelValues(metrics.OutcomeError).Inc()
	}

	// Details já vem sem o token
	logger.WithError(err).Error("capi: falha ao encaminhar eventos")
	message := fwdErr.Err.Error()
	if fwdErr.Details != "" {
		message = fwdErr.Details
	}
	apiErrors.WriteError(w, fwdErr.Code, message, nil)
}
