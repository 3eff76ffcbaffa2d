package domain

import jsoniter "github.com/json-iterator/go"

// DeliveryResult é o resultado de uma tentativa de envio à Conversions API
type DeliveryResult struct {
	Success     bool                `json:"success"`
	Status      int                 `json:"status"`
	Response    jsoniter.RawMessage `json:"meta_response"`
	EventsCount int                 `json:"events_count"`
}
