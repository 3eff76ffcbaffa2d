package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/meta-capi-gateway/infrastructure/integrator/meta"
	"github.com/vfg2006/meta-capi-gateway/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/meta-capi-gateway/internal/api"
	"github.com/vfg2006/meta-capi-gateway/internal/config"
	"github.com/vfg2006/meta-capi-gateway/internal/scheduler"
	"github.com/vfg2006/meta-capi-gateway/internal/usecases/authenticating"
	"github.com/vfg2006/meta-capi-gateway/internal/usecases/forwarding"
	"github.com/vfg2006/meta-capi-gateway/internal/usecases/normalizing"
	"github.com/vfg2006/meta-capi-gateway/pkg/log"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "capi-gateway",
		Short: "Encaminha eventos de conversão para a Meta Conversions API",
		RunE:  serveCmd().RunE,
	}

	rootCmd.AddCommand(serveCmd(), hashCmd(), tokenCmd(), checkTokenCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig carrega a configuração e ajusta o logger global
func loadConfig() (*config.Config, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}

	log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())
	return cfg, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Inicia a API de eventos",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			credentials := config.NewEnvCredential()
			if credentials.AccessToken() == "" {
				logrus.Warn("META_ACCESS_TOKEN não configurado: a rota de eventos responderá 500 até ser definido")
			}

			metaClient := metaclient.NewClient(cfg)
			metaIntegrator := meta.New(cfg, metaClient)

			normalizer := normalizing.NewService(cfg)
			forwarder := forwarding.NewService(normalizer, metaIntegrator, credentials)
			authenticator := authenticating.NewService(cfg)

			if authenticator.Enabled() {
				logrus.Info("Autenticação por bearer token habilitada na rota de eventos")
			}

			tokenHealthService := scheduler.NewTokenHealthService(metaClient, credentials, cfg)
			if err := tokenHealthService.Start(ctx); err != nil {
				logrus.WithError(err).Error("Erro ao iniciar o agendador de verificação do access token")
			}

			server, err := api.New(cfg, forwarder, authenticator)
			if err != nil {
				return err
			}

			return server.Run(ctx)
		},
	}
}

const hashLong = `Mostra o valor normalizado como seria enviado à Meta: espaços nas pontas são removidos,
o texto vai para minúsculas e o resultado é o SHA-256 em hex. Valores já em hash saem inalterados.`

func hashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <valor>...",
		Short: "Mostra o valor normalizado como seria enviado à Meta",
		Long:  hashLong,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, value := range args {
				fmt.Fprintln(cmd.OutOrStdout(), normalizing.NormalizeValue(value))
			}
			return nil
		},
	}
}

func tokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Gera um bearer token assinado com AUTH_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			token, err := authenticating.NewService(cfg).GenerateToken(subject, ttl)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "web", "Identificação do cliente que usará o token")
	cmd.Flags().DurationVar(&ttl, "ttl", 30*24*time.Hour, "Validade do token (0 para não expirar)")
	return cmd
}

func checkTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-token",
		Short: "Verifica uma vez se o META_ACCESS_TOKEN é aceito pela Graph API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			service := scheduler.NewTokenHealthService(metaclient.NewClient(cfg), config.NewEnvCredential(), cfg)
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			valid, err := service.Check(ctx)
			if err != nil {
				return err
			}
			if !valid {
				return fmt.Errorf("access token inválido ou ausente")
			}

			fmt.Fprintln(cmd.OutOrStdout(), "access token válido")
			return nil
		},
	}
}
