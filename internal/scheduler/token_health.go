// Package scheduler contém as rotinas agendadas que rodam ao lado da API
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-capi-gateway/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/meta-capi-gateway/internal/config"
	"github.com/vfg2006/meta-capi-gateway/pkg/metrics"
)

// Prazo de cada verificação; a rota de eventos não tem prazo, mas a rotina sim
const tokenCheckTimeout = 30 * time.Second

var ErrTokenCheckRunning = errors.New("verificação do token já está em execução")

type TokenHealthConfig struct {
	CronSchedule string
	Enabled      bool
}

// TokenHealthService consulta periodicamente a Graph API para saber se o
// access token ainda é aceito, e publica o resultado no gauge TokenValid
type TokenHealthService struct {
	scheduler   *gocron.Scheduler
	client      metaclient.Client
	credentials config.CredentialSource
	config      TokenHealthConfig

	mu          sync.Mutex
	running     bool
	lastChecked time.Time
	lastValid   bool
}

func NewTokenHealthService(client metaclient.Client, credentials config.CredentialSource, cfg *config.Config) *TokenHealthService {
	healthConfig := TokenHealthConfig{
		CronSchedule: cfg.TokenHealth.CronSchedule,
		Enabled:      cfg.TokenHealth.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": healthConfig.CronSchedule,
		"enabled":       healthConfig.Enabled,
	}).Info("Configuração da verificação do access token carregada")

	return &TokenHealthService{
		scheduler:   gocron.NewScheduler(time.Local),
		client:      client,
		credentials: credentials,
		config:      healthConfig,
	}
}

func (s *TokenHealthService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Verificação periódica do access token desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando verificação periódica do access token")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		checkCtx, cancel := context.WithTimeout(ctx, tokenCheckTimeout)
		defer cancel()

		if _, err := s.Check(checkCtx); err != nil && !errors.Is(err, ErrTokenCheckRunning) {
			logrus.WithError(err).Error("Erro na verificação do access token")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar verificação do access token: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando verificação periódica do access token")
		s.scheduler.Stop()
	}()

	return nil
}

// Check faz uma verificação imediata. Token ausente conta como inválido.
func (s *TokenHealthService) Check(ctx context.Context) (bool, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return false, ErrTokenCheckRunning
	}
	s.running = true
	s.mu.Unlock()

	valid, err := s.check(ctx)

	s.mu.Lock()
	s.running = false
	s.lastChecked = time.Now()
	s.lastValid = valid
	s.mu.Unlock()

	if valid {
		metrics.TokenValid.Set(1)
	} else {
		metrics.TokenValid.Set(0)
	}

	return valid, err
}

func (s *TokenHealthService) check(ctx context.Context) (bool, error) {
	token := s.credentials.AccessToken()
	if token == "" {
		logrus.Warn("META_ACCESS_TOKEN não configurado, nada a verificar")
		return false, nil
	}

	valid, err := s.client.CheckTokenValidity(ctx, token)
	if err != nil {
		return false, fmt.Errorf("erro ao consultar a Graph API: %w", err)
	}

	if !valid {
		logrus.Warn("Access token da Meta rejeitado, eventos serão recusados até a troca do token")
	} else {
		logrus.Debug("Access token da Meta válido")
	}
	return valid, nil
}

// Status devolve o resultado da última verificação
func (s *TokenHealthService) Status() (lastChecked time.Time, valid bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastChecked, s.lastValid
}
