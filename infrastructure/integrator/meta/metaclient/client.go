package metaclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	metadomain "github.com/vfg2006/meta-capi-gateway/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-capi-gateway/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:generate mockgen -source=client.go -destination=mocks/client.go -package=mocks

type Client interface {
	SendEvents(ctx context.Context, req *metadomain.EventsRequest) (*metadomain.UpstreamResult, error)
	CheckTokenValidity(ctx context.Context, token string) (bool, error)
}

// ErrTransport indica que a chamada HTTP para a Meta não chegou a ser concluída
var ErrTransport = errors.New("falha de comunicação com a API da Meta")

// TransportError envolve o erro de rede original
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s", ErrTransport.Error(), e.Err.Error())
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

type MetaClient struct {
	cfg        *config.Config
	httpClient *http.Client
}

type Option func(c *MetaClient)

// WithHTTPClient substitui o cliente HTTP padrão
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *MetaClient) {
		c.httpClient = httpClient
	}
}

func NewClient(cfg *config.Config, opts ...Option) Client {
	client := &MetaClient{
		cfg: cfg,
		httpClient: &http.Client{
			// Zero significa sem timeout
			Timeout: cfg.Meta.RequestTimeout,
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}
