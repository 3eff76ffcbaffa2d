package metaclient

import (
	"bytes"
	"context"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/meta-capi-gateway/infrastructure/integrator/meta/domain"
)

// SendEvents faz um único POST para a rota de eventos do pixel.
// Status fora de 2xx não é erro: o resultado carrega status e corpo para diagnóstico.
func (c *MetaClient) SendEvents(ctx context.Context, req *metadomain.EventsRequest) (*metadomain.UpstreamResult, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao serializar eventos")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Meta.EventsURL(), bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logrus.WithError(err).Error("capi: erro ao fazer a requisição para a Meta")
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: errors.Wrap(err, "erro ao ler resposta")}
	}

	return &metadomain.UpstreamResult{
		StatusCode: resp.StatusCode,
		Body:       toRawJSON(body),
	}, nil
}

// toRawJSON garante que o corpo possa ser embutido na resposta ao chamador
func toRawJSON(body []byte) jsoniter.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return jsoniter.RawMessage("{}")
	}
	if json.Valid(trimmed) {
		return jsoniter.RawMessage(trimmed)
	}

	quoted, err := json.Marshal(string(trimmed))
	if err != nil {
		return jsoniter.RawMessage("{}")
	}
	return jsoniter.RawMessage(quoted)
}
