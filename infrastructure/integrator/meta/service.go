package meta

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/meta-capi-gateway/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-capi-gateway/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/meta-capi-gateway/internal/config"
	"github.com/vfg2006/meta-capi-gateway/internal/domain"
	"github.com/vfg2006/meta-capi-gateway/pkg/metrics"
)

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

// EventSender entrega um lote já normalizado à Conversions API
type EventSender interface {
	SendEvents(ctx context.Context, batch domain.EventBatch, accessToken string) (*metadomain.UpstreamResult, error)
}

type MetaIntegrator struct {
	cfg    *config.Config
	Client metaclient.Client
}

func New(cfg *config.Config, client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

// SendEvents faz uma única tentativa de entrega, sem retry
func (s *MetaIntegrator) SendEvents(ctx context.Context, batch domain.EventBatch, accessToken string) (*metadomain.UpstreamResult, error) {
	req := &metadomain.EventsRequest{
		Data:          batch.Events,
		TestEventCode: batch.TestEventCode,
		AccessToken:   accessToken,
	}

	start := time.Now()
	result, err := s.Client.SendEvents(ctx, req)
	if err != nil {
		metrics.ObserveTransportError(start)
		logrus.WithFields(logrus.Fields{
			"pixel_id":     s.cfg.Meta.PixelID,
			"events_count": len(batch.Events),
			"error":        err.Error(),
		}).Error("capi: failed to deliver events to Meta")
		return nil, err
	}

	metrics.ObserveUpstream(result.StatusCode, start)

	fields := logrus.Fields{
		"pixel_id":     s.cfg.Meta.PixelID,
		"events_count": len(batch.Events),
		"status_code":  result.StatusCode,
		"test_mode":    batch.TestEventCode != nil,
		"duration_ms":  time.Since(start).Milliseconds(),
	}

	if !result.IsSuccess() {
		if errorResp, parseErr := metaclient.ParseErrorResponse(result.Body); parseErr == nil {
			fields["meta_error_code"] = errorResp.Error.Code
			fields["meta_error_subcode"] = errorResp.Error.ErrorSubcode
			fields["fbtrace_id"] = errorResp.Error.FBTraceID
			if errorResp.IsTokenExpired() {
				logrus.WithFields(fields).Error("capi: Meta rejected the access token as expired")
				return result, nil
			}
		}
		logrus.WithFields(fields).Warn("capi: Meta rejected the events")
		return result, nil
	}

	var response metadomain.EventsResponse
	if err := metaclient.DecodeEventsResponse(result.Body, &response); err == nil {
		fields["events_received"] = response.EventsReceived
		fields["fbtrace_id"] = response.FBTraceID
	}

	logrus.WithFields(fields).Debug("capi: events delivered to Meta")

	return result, nil
}
