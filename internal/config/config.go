package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/env"
)

type Config struct {
	Primary  Primary        `koanf:"primary"`
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Broker   BrokerConfig   `koanf:"broker"`
	Retry    RetryConfig    `koanf:"retry"`
	Cache    CacheConfig    `koanf:"cache"`
	Logger   LoggerConfig   `koanf:"logger"`
	Worker   WorkerConfig   `koanf:"worker"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port         string        `koanf:"port" validate:"required"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout  time.Duration `koanf:"idle_timeout" validate:"required"`
}

type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password" validate:"required"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time" validate:"required"`
}

// BrokerConfig holds the service endpoints and the shared WS-Security account.
type BrokerConfig struct {
	PersonLookupURL  string        `koanf:"person_lookup_url" validate:"required,url"`
	CompanyLookupURL string        `koanf:"company_lookup_url" validate:"required,url"`
	DigitalMailURL   string        `koanf:"digital_mail_url" validate:"required,url"`
	Username         string        `koanf:"username" validate:"required"`
	Password         string        `koanf:"password" validate:"required"`
	ConnectTimeout   time.Duration `koanf:"connect_timeout"`
	TotalTimeout     time.Duration `koanf:"total_timeout"`
	RateLimit        float64       `koanf:"rate_limit" validate:"gte=0"`
	RateBurst        int           `koanf:"rate_burst" validate:"gte=0"`
}

type RetryConfig struct {
	BaseDelay   time.Duration `koanf:"base_delay"`
	MaxAttempts int           `koanf:"max_attempts" validate:"gte=0,lte=10"`
}

type CacheConfig struct {
	Backend       string        `koanf:"backend" validate:"omitempty,oneof=memory redis postgres"`
	TTL           time.Duration `koanf:"ttl"`
	KeySecret     string        `koanf:"key_secret"`
	RedisAddr     string        `koanf:"redis_addr"`
	RedisPassword string        `koanf:"redis_password"`
	RedisDB       int           `koanf:"redis_db"`
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

type LoggerConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"omitempty,oneof=text json"`
}

type WorkerConfig struct {
	Interval    time.Duration `koanf:"interval" validate:"required"`
	BatchSize   int           `koanf:"batch_size" validate:"required"`
	MaxAttempts int           `koanf:"max_attempts"`
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	err := k.Load(env.Provider("GATEWAY_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "GATEWAY_")),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	mainConfig.applyDefaults()

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}

func (c *Config) applyDefaults() {
	if c.Broker.ConnectTimeout == 0 {
		c.Broker.ConnectTimeout = 10 * time.Second
	}
	if c.Broker.TotalTimeout == 0 {
		c.Broker.TotalTimeout = 30 * time.Second
	}
	if c.Retry.BaseDelay == 0 {
		c.Retry.BaseDelay = 2 * time.Second
	}
	if c.Retry.MaxAttempts == 0 {
		c.Retry.MaxAttempts = 3
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 900 * time.Second
	}
	if c.Cache.SweepInterval == 0 {
		c.Cache.SweepInterval = time.Minute
	}
	if c.Worker.MaxAttempts == 0 {
		c.Worker.MaxAttempts = 5
	}
}

// NewLogger builds the process logger from the configured level and format.
func (c LoggerConfig) NewLogger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
