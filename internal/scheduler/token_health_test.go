package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/meta-capi-gateway/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/meta-capi-gateway/infrastructure/integrator/meta/metaclient/mocks"
	"github.com/vfg2006/meta-capi-gateway/internal/config"
	"github.com/vfg2006/meta-capi-gateway/pkg/metrics"
	"go.uber.org/mock/gomock"
)

func TestTokenHealthService_Check(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name      string
		token     string
		setup     func(client *mocks.MockClient)
		wantValid bool
		wantErr   bool
		wantGauge float64
	}{
		{
			name:  "token válido",
			token: "token-123",
			setup: func(client *mocks.MockClient) {
				client.EXPECT().CheckTokenValidity(gomock.Any(), "token-123").Return(true, nil)
			},
			wantValid: true,
			wantGauge: 1,
		},
		{
			name:  "token rejeitado",
			token: "token-123",
			setup: func(client *mocks.MockClient) {
				client.EXPECT().CheckTokenValidity(gomock.Any(), "token-123").Return(false, nil)
			},
			wantGauge: 0,
		},
		{
			name:  "falha de transporte",
			token: "token-123",
			setup: func(client *mocks.MockClient) {
				client.EXPECT().
					CheckTokenValidity(gomock.Any(), gomock.Any()).
					Return(false, &metaclient.TransportError{Err: errors.New("connection refused")})
			},
			wantErr:   true,
			wantGauge: 0,
		},
		{
			name:  "token ausente não consulta a Graph API",
			token: "",
			setup: func(client *mocks.MockClient) {
				client.EXPECT().CheckTokenValidity(gomock.Any(), gomock.Any()).Times(0)
			},
			wantGauge: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := mocks.NewMockClient(ctrl)
			tt.setup(client)

			service := NewTokenHealthService(client, config.StaticCredential(tt.token), &config.Config{})
			valid, err := service.Check(context.Background())

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, metaclient.ErrTransport)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantValid, valid)
			assert.Equal(t, tt.wantGauge, testutil.ToFloat64(metrics.TokenValid))

			lastChecked, lastValid := service.Status()
			assert.False(t, lastChecked.IsZero())
			assert.Equal(t, tt.wantValid, lastValid)
		})
	}
}

func TestTokenHealthService_StartDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	client.EXPECT().CheckTokenValidity(gomock.Any(), gomock.Any()).Times(0)

	service := NewTokenHealthService(client, config.StaticCredential("token"), &config.Config{})
	assert.NoError(t, service.Start(context.Background()))
}

func TestTokenHealthService_StartInvalidCron(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &config.Config{TokenHealth: config.TokenHealth{CronSchedule: "not a cron", Enabled: true}}
	service := NewTokenHealthService(mocks.NewMockClient(ctrl), config.StaticCredential("token"), cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	assert.Error(t, service.Start(ctx))
}
