package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type (
	// Config reúne as configurações do serviço de formulários
	Config struct {
		// API
		APIHost     string
		APIPort     int
		LogLevel    string
		CORSOrigins []string

		// Envio
		WebhookURL     string
		WebhookTimeout time.Duration

		// Banco
		DB DBConfig

		// Sessões
		SessionStore string
		SessionTTL   time.Duration
		Redis        RedisConfig
		JWTSecret    string
		AdminKeyHash string

		// Documentos e consultas
		DocumentsBucketURL string
		DocumentsPublicURL string
		LookupCPFURL       string
		LookupCNPJURL      string
	}

	DBConfig struct {
		Host           string
		Port           int
		Name           string
		Username       string
		Password       string
		SecretID       string
		SSLModeDisable bool
	}

	RedisConfig struct {
		Addr     string
		Password string
		DB       int
	}
)

const (
	DefaultAPIPort    = 8080
	DefaultAPIHost    = "0.0.0.0"
	DefaultDBPort     = 5432
	DefaultSessionTTL = 24 * time.Hour
	MaxTCPPort        = 65535

	StoreMemory = "memory"
	StoreRedis  = "redis"

	DefaultRedisAddr = "localhost:6379"
	DefaultBucketURL = "mem://"
)

var (
	ErrInvalidAPIPort      = errors.New("invalid API port")
	ErrWebhookURLRequired  = errors.New("WEBHOOK_URL is required")
	ErrJWTSecretRequired   = errors.New("JWT_SECRET is required")
	ErrInvalidSessionStore = errors.New("invalid session store")
	ErrRedisAddrRequired   = errors.New("REDIS_ADDR is required for redis session store")
	ErrInvalidDuration     = errors.New("durations cannot be negative")
)

// NewDefaultConfig devolve a configuração local padrão
func NewDefaultConfig() *Config {
	return &Config{
		APIHost:            DefaultAPIHost,
		APIPort:            DefaultAPIPort,
		LogLevel:           "info",
		CORSOrigins:        []string{"*"},
		DB:                 DBConfig{Port: DefaultDBPort},
		SessionStore:       StoreMemory,
		SessionTTL:         DefaultSessionTTL,
		Redis:              RedisConfig{Addr: DefaultRedisAddr},
		DocumentsBucketURL: DefaultBucketURL,
	}
}

// Load lê o .env opcional e depois as variáveis de ambiente
func Load() (*Config, error) {
	_ = godotenv.Load()
	c := NewDefaultConfig()
	if err := c.LoadFromEnv(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFromEnv sobrescreve os valores presentes no ambiente
func (c *Config) LoadFromEnv() error {
	loadEnvString("API_HOST", &c.APIHost)
	loadEnvString("LOG_LEVEL", &c.LogLevel)
	loadEnvString("WEBHOOK_URL", &c.WebhookURL)
	loadEnvString("DB_HOST", &c.DB.Host)
	loadEnvString("DB_NAME", &c.DB.Name)
	loadEnvString("DB_USERNAME", &c.DB.Username)
	loadEnvString("DB_PASSWORD", &c.DB.Password)
	loadEnvString("DB_SECRET_ID", &c.DB.SecretID)
	loadEnvString("SESSION_STORE", &c.SessionStore)
	loadEnvString("REDIS_ADDR", &c.Redis.Addr)
	loadEnvString("REDIS_PASSWORD", &c.Redis.Password)
	loadEnvString("JWT_SECRET", &c.JWTSecret)
	loadEnvString("ADMIN_KEY_HASH", &c.AdminKeyHash)
	loadEnvString("DOCUMENTS_BUCKET_URL", &c.DocumentsBucketURL)
	loadEnvString("DOCUMENTS_PUBLIC_URL", &c.DocumentsPublicURL)
	loadEnvString("LOOKUP_CPF_URL", &c.LookupCPFURL)
	loadEnvString("LOOKUP_CNPJ_URL", &c.LookupCNPJURL)

	c.DB.SSLModeDisable = os.Getenv("DB_SSL_MODE_DISABLE") == "true"
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		c.CORSOrigins = splitList(origins)
	}

	if err := loadEnvInt("API_PORT", &c.APIPort, 0, MaxTCPPort); err != nil {
		return err
	}
	if err := loadEnvInt("DB_PORT", &c.DB.Port, 0, MaxTCPPort); err != nil {
		return err
	}
	if err := loadEnvInt("REDIS_DB", &c.Redis.DB, -1, 15); err != nil {
		return err
	}
	if err := loadEnvDuration("WEBHOOK_TIMEOUT", &c.WebhookTimeout); err != nil {
		return err
	}
	return loadEnvDuration("SESSION_TTL", &c.SessionTTL)
}

// Validate confere os valores obrigatórios e as faixas
func (c *Config) Validate() error {
	if c.APIPort <= 0 || c.APIPort > MaxTCPPort {
		return fmt.Errorf("%w: %d", ErrInvalidAPIPort, c.APIPort)
	}
	if c.WebhookURL == "" {
		return ErrWebhookURLRequired
	}
	if c.JWTSecret == "" {
		return ErrJWTSecretRequired
	}
	if c.WebhookTimeout < 0 || c.SessionTTL < 0 {
		return ErrInvalidDuration
	}
	switch c.SessionStore {
	case StoreMemory:
	case StoreRedis:
		if c.Redis.Addr == "" {
			return ErrRedisAddrRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrInvalidSessionStore, c.SessionStore)
	}
	return nil
}

// Addr é o endereço de escuta da API
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.APIHost, c.APIPort)
}

func loadEnvString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// loadEnvInt aceita valores no intervalo (min, max]
func loadEnvInt(key string, dst *int, min, max int) error {
	s := os.Getenv(key)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", key, s)
	}
	if v <= min || v > max {
		return fmt.Errorf("invalid %s: %d out of range [%d, %d]", key, v, min+1, max)
	}
	*dst = v
	return nil
}

// loadEnvDuration aceita "30s", "15m" ou um número de segundos
func loadEnvDuration(key string, dst *time.Duration) error {
	s := os.Getenv(key)
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		*dst = time.Duration(n) * time.Second
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", key, s)
	}
	*dst = d
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
