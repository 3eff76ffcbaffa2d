package domain

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var (
	ErrEmptyBatch        = errors.New("events deve ser uma lista com pelo menos um evento")
	ErrMissingEventName  = errors.New("event_name é obrigatório")
	ErrMissingEventTime  = errors.New("event_time é obrigatório")
	ErrMissingActionSrc  = errors.New("action_source é obrigatório")
	ErrInvalidActionSrc  = errors.New("action_source inválido")
	ErrInvalidCustomData = errors.New("custom_data deve ser um objeto JSON")
)

// ConversionEvent é um evento do servidor no formato da Conversions API.
// CustomData é repassado sem alterações.
type ConversionEvent struct {
	EventName      string              `json:"event_name"`
	EventTime      int64               `json:"event_time"`
	EventID        string              `json:"event_id,omitempty"`
	EventSourceURL string              `json:"event_source_url,omitempty"`
	ActionSource   ActionSource        `json:"action_source"`
	UserData       UserData            `json:"user_data"`
	CustomData     jsoniter.RawMessage `json:"custom_data,omitempty"`
	OptOut         bool                `json:"opt_out,omitempty"`

	DataProcessingOptions        []string `json:"data_processing_options,omitempty"`
	DataProcessingOptionsCountry *int     `json:"data_processing_options_country,omitempty"`
	DataProcessingOptionsState   *int     `json:"data_processing_options_state,omitempty"`
}

// Validate confere os campos obrigatórios; a validação semântica fica com a Meta
func (e *ConversionEvent) Validate() error {
	if e.EventName == "" {
		return ErrMissingEventName
	}
	if e.EventTime <= 0 {
		return ErrMissingEventTime
	}
	if e.ActionSource == "" {
		return ErrMissingActionSrc
	}
	if !e.ActionSource.IsValid() {
		return ErrInvalidActionSrc
	}
	if len(e.CustomData) > 0 && string(e.CustomData) != "null" && e.CustomData[0] != '{' {
		return ErrInvalidCustomData
	}
	return nil
}

// Clone copia o evento; CustomData é compartilhado porque nunca é modificado
func (e ConversionEvent) Clone() ConversionEvent {
	out := e
	out.UserData = e.UserData.Clone()
	if e.DataProcessingOptions != nil {
		out.DataProcessingOptions = append([]string(nil), e.DataProcessingOptions...)
	}
	return out
}

type EventBatch struct {
	Events        []ConversionEvent `json:"events"`
	TestEventCode *string           `json:"test_event_code,omitempty"`
}

// Validate exige pelo menos um evento e valida cada um deles
func (b *EventBatch) Validate() error {
	if len(b.Events) == 0 {
		return ErrEmptyBatch
	}

	for i := range b.Events {
		if err := b.Events[i].Validate(); err != nil {
			return &EventValidationError{Index: i, Err: err}
		}
	}
	return nil
}

// EventValidationError aponta qual evento do lote falhou na validação
type EventValidationError struct {
	Index int
	Err   error
}

func (e *EventValidationError) Error() string {
	return fmt.Sprintf("events[%d]: %s", e.Index, e.Err.Error())
}

func (e *EventValidationError) Unwrap() error {
	return e.Err
}
