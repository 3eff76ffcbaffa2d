package metaclient

import (
	metadomain "github.com/vfg2006/meta-capi-gateway/infrastructure/integrator/meta/domain"
)

// ParseErrorResponse tenta parsear um erro da API do Meta
func ParseErrorResponse(body []byte) (*metadomain.ErrorResponse, error) {
	var errorResp metadomain.ErrorResponse
	err := json.Unmarshal(body, &errorResp)
	if err != nil {
		return nil, err
	}
	return &errorResp, nil
}

// DecodeEventsResponse lê o corpo de sucesso da rota de eventos
func DecodeEventsResponse(body []byte, out *metadomain.EventsResponse) error {
	return json.Unmarshal(body, out)
}
