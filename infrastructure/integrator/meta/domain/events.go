package metadomain

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/meta-capi-gateway/internal/domain"
)

// EventsRequest é o corpo enviado para /{pixel_id}/events.
// TestEventCode é serializado como null quando não informado.
type EventsRequest struct {
	Data          []domain.ConversionEvent `json:"data"`
	TestEventCode *string                  `json:"test_event_code"`
	AccessToken   string                   `json:"access_token"`
}

// EventsResponse representa a resposta de sucesso da Conversions API
type EventsResponse struct {
	EventsReceived int      `json:"events_received"`
	Messages       []string `json:"messages"`
	FBTraceID      string   `json:"fbtrace_id"`
}

// UpstreamResult guarda o status HTTP e o corpo devolvidos pela Meta
type UpstreamResult struct {
	StatusCode int
	Body       jsoniter.RawMessage
}

// IsSuccess indica se a Meta respondeu com status 2xx
func (r *UpstreamResult) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
