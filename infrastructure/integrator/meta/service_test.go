package meta

import (
	"context"
	"errors"
	"net/http"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/meta-capi-gateway/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-capi-gateway/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/meta-capi-gateway/infrastructure/integrator/meta/metaclient/mocks"
	"github.com/vfg2006/meta-capi-gateway/internal/config"
	"github.com/vfg2006/meta-capi-gateway/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestMetaIntegrator_SendEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &config.Config{Meta: config.Meta{PixelID: "1234567890"}}
	code := "TEST1"
	batch := domain.EventBatch{
		Events:        []domain.ConversionEvent{{EventName: "Lead", EventTime: 1700000000, ActionSource: domain.ActionSourceWebsite}},
		TestEventCode: &code,
	}

	tests := []struct {
		name     string
		setup    func(client *mocks.MockClient)
		validate func(t *testing.T, result *metadomain.UpstreamResult, err error)
	}{
		{
			name: "monta a requisição com lote, código de teste e token",
			setup: func(client *mocks.MockClient) {
				client.EXPECT().
					SendEvents(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req *metadomain.EventsRequest) (*metadomain.UpstreamResult, error) {
						assert.Equal(t, batch.Events, req.Data)
						assert.Equal(t, &code, req.TestEventCode)
						assert.Equal(t, "token", req.AccessToken)
						return &metadomain.UpstreamResult{
							StatusCode: http.StatusOK,
							Body:       jsoniter.RawMessage(`{"events_received":1,"fbtrace_id":"trace"}`),
						}, nil
					})
			},
			validate: func(t *testing.T, result *metadomain.UpstreamResult, err error) {
				require.NoError(t, err)
				assert.True(t, result.IsSuccess())
			},
		},
		{
			name: "rejeição da Meta é devolvida sem erro",
			setup: func(client *mocks.MockClient) {
				client.EXPECT().
					SendEvents(gomock.Any(), gomock.Any()).
					Return(&metadomain.UpstreamResult{
						StatusCode: http.StatusUnauthorized,
						Body:       jsoniter.RawMessage(`{"error":{"message":"Session has expired","type":"OAuthException","code":190}}`),
					}, nil)
			},
			validate: func(t *testing.T, result *metadomain.UpstreamResult, err error) {
				require.NoError(t, err)
				assert.False(t, result.IsSuccess())
				assert.Equal(t, http.StatusUnauthorized, result.StatusCode)
			},
		},
		{
			name: "erro de transporte é propagado",
			setup: func(client *mocks.MockClient) {
				client.EXPECT().
					SendEvents(gomock.Any(), gomock.Any()).
					Return(nil, &metaclient.TransportError{Err: errors.New("connection refused")})
			},
			validate: func(t *testing.T, result *metadomain.UpstreamResult, err error) {
				assert.Nil(t, result)
				assert.ErrorIs(t, err, metaclient.ErrTransport)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := mocks.NewMockClient(ctrl)
			tt.setup(client)

			result, err := New(cfg, client).SendEvents(context.Background(), batch, "token")
			tt.validate(t, result, err)
		})
	}
}
