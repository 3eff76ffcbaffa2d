package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Meta        Meta        `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`
	Normalizer  Normalizer  `mapstructure:",squash"`
	TokenHealth TokenHealth `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// Meta agrupa os dados fixos da rota da Conversions API.
// O access token não fica aqui: ele é lido a cada requisição pelo CredentialSource.
type Meta struct {
	BaseURL        string        `mapstructure:"meta_base_url"`
	URL            string        `mapstructure:"-"`
	Version        string        `mapstructure:"meta_version"`
	PixelID        string        `mapstructure:"meta_pixel_id"`
	RequestTimeout time.Duration `mapstructure:"meta_request_timeout"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

// Auth habilita a validação de bearer token na rota de eventos quando Secret não é vazio
type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type Normalizer struct {
	MaxWorkers int `mapstructure:"normalize_max_workers"`
}

type TokenHealth struct {
	CronSchedule string `mapstructure:"token_check_cron"`
	Enabled      bool   `mapstructure:"token_check_enabled"`
}

// EventsURL monta a rota versionada de ingestão de eventos do pixel
func (m Meta) EventsURL() string {
	return fmt.Sprintf("%s/%s/events", m.URL, m.PixelID)
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_PIXEL_ID", "")
	viper.SetDefault("META_REQUEST_TIMEOUT", "0s") // Sem timeout: o chamador impõe o próprio prazo
	viper.SetDefault(AccessTokenKey, "")

	viper.SetDefault("AUTH_SECRET", "")

	viper.SetDefault("NORMALIZE_MAX_WORKERS", 0) // 0 usa GOMAXPROCS

	viper.SetDefault("TOKEN_CHECK_CRON", "0 */6 * * *") // A cada 6 horas
	viper.SetDefault("TOKEN_CHECK_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", strings.TrimRight(config.Meta.BaseURL, "/"), config.Meta.Version)

	return config, nil
}

// Validate verifica os campos que precisam existir para a rota de eventos ser montada
func (c *Config) Validate() error {
	if c.Meta.BaseURL == "" {
		return fmt.Errorf("config: META_BASE_URL é obrigatório")
	}
	if c.Meta.Version == "" {
		return fmt.Errorf("config: META_VERSION é obrigatório")
	}
	if c.Meta.PixelID == "" {
		return fmt.Errorf("config: META_PIXEL_ID é obrigatório")
	}
	if c.Meta.RequestTimeout < 0 {
		return fmt.Errorf("config: META_REQUEST_TIMEOUT não pode ser negativo")
	}
	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
