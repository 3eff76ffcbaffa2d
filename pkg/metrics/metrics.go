package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	EventsReceivedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "capi_events_received_total",
			Help: "Total number of conversion events accepted for forwarding (count)",
		},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "capi_requests_total",
			Help: "Total number of inbound event batches by outcome (count)",
		},
		[]string{"outcome"},
	)

	UpstreamResponsesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "capi_upstream_responses_total",
			Help: "Total number of responses from the Conversions API by HTTP status (count)",
		},
		[]string{"status"},
	)

	UpstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "capi_upstream_duration_ms",
			Help:    "Duration of the Conversions API call in milliseconds",
			Buckets: []float64{25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		},
		[]string{"result"},
	)

	TokenValid = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "capi_access_token_valid",
			Help: "1 when the last access token check succeeded, 0 otherwise",
		},
	)
)

// Outcomes registrados em RequestsTotal
const (
	OutcomeDelivered     = "delivered"
	OutcomeRejected      = "rejected"
	OutcomeInvalid       = "invalid"
	OutcomeMisconfigured = "misconfigured"
	OutcomeTransport     = "transport_error"
	OutcomeError         = "error"
)

func init() {
	prometheus.MustRegister(
		EventsReceivedTotal,
		RequestsTotal,
		UpstreamResponsesTotal,
		UpstreamDuration,
		TokenValid,
	)
}

// ObserveUpstream registra status e duração de uma chamada à Meta
func ObserveUpstream(status int, start time.Time) {
	result := "success"
	if status < 200 || status >= 300 {
		result = "failure"
	}
	UpstreamResponsesTotal.WithLabelValues(strconv.Itoa(status)).Inc()
	UpstreamDuration.WithLabelValues(result).Observe(float64(time.Since(start).Milliseconds()))
}

// ObserveTransportError registra uma chamada que não chegou a ter resposta
func ObserveTransportError(start time.Time) {
	UpstreamDuration.WithLabelValues("transport_error").Observe(float64(time.Since(start).Milliseconds()))
}
