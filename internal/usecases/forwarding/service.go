package forwarding

import (
	"context"
	"errors"
	"strings"

	"github.com/vfg2006/meta-capi-gateway/infrastructure/integrator/meta"
	"github.com/vfg2006/meta-capi-gateway/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/meta-capi-gateway/internal/config"
	"github.com/vfg2006/meta-capi-gateway/internal/domain"
	"github.com/vfg2006/meta-capi-gateway/internal/usecases/normalizing"
	"github.com/vfg2006/meta-capi-gateway/pkg/apiErrors"
	"github.com/vfg2006/meta-capi-gateway/pkg/log"
)

type Service struct {
	normalizer  normalizing.Normalizer
	sender      meta.EventSender
	credentials config.CredentialSource
}

func NewService(normalizer normalizing.Normalizer, sender meta.EventSender, credentials config.CredentialSource) *Service {
	return &Service{
		normalizer:  normalizer,
		sender:      sender,
		credentials: credentials,
	}
}

// Forward faz exatamente uma tentativa de entrega.
// Depois de iniciada, a chamada à Meta não é cancelada se o cliente desconectar.
func (s *Service) Forward(ctx context.Context, batch domain.EventBatch, clientIP string) (*domain.DeliveryResult, error) {
	logger := log.ForContext(ctx)

	token := s.credentials.AccessToken()
	if token == "" {
		logger.Error("capi: META_ACCESS_TOKEN não configurado, eventos não serão enviados")
		return nil, NewForwardError(ErrMissingAccessToken, apiErrors.ErrMissingConfiguration, "")
	}

	normalized, err := s.normalizer.Normalize(ctx, batch, clientIP)
	if err != nil {
		logger.WithError(err).Error("capi: erro ao normalizar eventos")
		return nil, NewForwardError(ErrNormalization, apiErrors.ErrInternalServer, err.Error())
	}

	result, err := s.sender.SendEvents(context.WithoutCancel(ctx), normalized, token)
	if err != nil {
		details := redact(err.Error(), token)
		if errors.Is(err, metaclient.ErrTransport) {
			return nil, NewForwardError(ErrMetaUnreachable, apiErrors.ErrCommunication, details)
		}
		return nil, NewForwardError(ErrMetaDelivery, apiErrors.ErrInternalServer, details)
	}

	fields := LogFields(batch)
	fields["status_code"] = result.StatusCode
	logger.WithFields(fields).Info("capi: lote encaminhado para a Meta")

	return &domain.DeliveryResult{
		Success:     result.IsSuccess(),
		Status:      result.StatusCode,
		Response:    result.Body,
		EventsCount: len(batch.Events),
	}, nil
}

// redact remove o token de mensagens que podem chegar ao chamador
func redact(message, token string) string {
	if token == "" {
		return message
	}
	return strings.ReplaceAll(message, token, "[REDACTED]")
}

// LogFields devolve campos de log que não expõem PII
func LogFields(batch domain.EventBatch) log.Fields {
	names := make([]string, 0, len(batch.Events))
	for _, e := range batch.Events {
		names = append(names, e.EventName)
	}
	return log.Fields{
		"events_count": len(batch.Events),
		"event_names":  strings.Join(names, ","),
		"test_mode":    batch.TestEventCode != nil,
	}
}
