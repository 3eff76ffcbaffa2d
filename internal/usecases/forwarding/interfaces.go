package forwarding

import (
	"context"

	"github.com/vfg2006/meta-capi-gateway/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/forwarder.go -package=mocks

// Forwarder normaliza um lote e o entrega à Conversions API
type Forwarder interface {
	Forward(ctx context.Context, batch domain.EventBatch, clientIP string) (*domain.DeliveryResult, error)
}
