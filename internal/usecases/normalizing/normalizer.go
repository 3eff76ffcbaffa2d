package normalizing

import (
	"context"
	"runtime"
	"strings"

	"github.com/vfg2006/meta-capi-gateway/internal/config"
	"github.com/vfg2006/meta-capi-gateway/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Normalizer prepara um lote de eventos para envio à Meta
type Normalizer interface {
	Normalize(ctx context.Context, batch domain.EventBatch, clientIP string) (domain.EventBatch, error)
}

type Service struct {
	maxWorkers int
}

func NewService(cfg *config.Config) *Service {
	return &Service{maxWorkers: cfg.Normalizer.MaxWorkers}
}

// Normalize processa cada evento em paralelo sobre uma cópia do lote.
// A ordem dos eventos na saída é a mesma da entrada.
func (s *Service) Normalize(ctx context.Context, batch domain.EventBatch, clientIP string) (domain.EventBatch, error) {
	workers := s.maxWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	events := make([]domain.ConversionEvent, len(batch.Events))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range batch.Events {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			events[i] = NormalizeEvent(batch.Events[i], clientIP)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.EventBatch{}, err
	}

	out := domain.EventBatch{Events: events}
	if batch.TestEventCode != nil {
		code := *batch.TestEventCode
		out.TestEventCode = &code
	}

	return out, nil
}

// NormalizeEvent devolve uma cópia do evento com o placeholder de IP resolvido
// e os campos de identidade hasheados.
func NormalizeEvent(event domain.ConversionEvent, clientIP string) domain.ConversionEvent {
	out := event.Clone()

	if out.UserData.ClientIPAddress == domain.ClientIPPlaceholder {
		out.UserData.ClientIPAddress = clientIP
	}

	for _, f := range domain.HashedFields {
		values := out.UserData.Field(f)
		for i, v := range *values {
			(*values)[i] = NormalizeValue(v)
		}
	}

	return out
}

// NormalizeValue aplica trim, lowercase e SHA-256; valores já hasheados
// e valores vazios passam sem alteração.
func NormalizeValue(value string) string {
	if IsHashed(value) {
		return value
	}

	cleaned := strings.ToLower(strings.TrimSpace(value))
	if cleaned == "" {
		return value
	}

	return Hash(cleaned)
}
