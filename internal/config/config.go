package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/vietanh2810/ticket-order-api/internal/mq"
)

var ErrMissingJWTSigningKey = errors.New("api.jwt_signing_key is required")

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	Redis    *RedisConfig    `mapstructure:"redis"`
	RabbitMQ *RabbitMQConfig `mapstructure:"rabbitmq"`
	Mail     *MailConfig     `mapstructure:"mail"`
	Metrics  *MetricsConfig  `mapstructure:"metrics"`
}

type APIConfig struct {
	Environment        string        `mapstructure:"environment"`
	Port               string        `mapstructure:"port"`
	BaseURL            string        `mapstructure:"base_url"`
	JWTSigningKey      string        `mapstructure:"jwt_signing_key"`
	JWTTTL             time.Duration `mapstructure:"jwt_ttl"`
	AllowedCORSDomains []string      `mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DB, c.SSLMode)
}

// RedisConfig with an empty Addr disables the ticket cache.
type RedisConfig struct {
	Addr      string        `mapstructure:"addr"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db"`
	TicketTTL time.Duration `mapstructure:"ticket_ttl"`
}

// RabbitMQConfig with an empty URL keeps mail dispatch in-process.
type RabbitMQConfig struct {
	URL       string `mapstructure:"url"`
	MailQueue string `mapstructure:"mail_queue"`
}

type MailConfig struct {
	Driver      string `mapstructure:"driver"` // "smtp" or "log"
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	Workers     int    `mapstructure:"workers"`
	Buffer      int    `mapstructure:"buffer"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.base_url", "localhost:8080")
	v.SetDefault("api.jwt_ttl", time.Hour)
	v.SetDefault("api.allowed_cors_domains", []string{"http://localhost:3000"})
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("redis.ticket_ttl", 10*time.Minute)
	v.SetDefault("rabbitmq.mail_queue", mq.DefaultMailQueue)
	v.SetDefault("mail.driver", "log")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.from_name", "Ticket Orders")
	v.SetDefault("mail.workers", 2)
	v.SetDefault("mail.buffer", 64)
	v.SetDefault("metrics.enabled", true)
}

// Load reads the yml file at path and lets environment variables override it,
// e.g. API_JWT_SIGNING_KEY or POSTGRES_HOST.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*AppConfig, error) {
	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	// AutomaticEnv only applies to keys viper already knows about, so the
	// nested keys are bound explicitly.
	if key := v.GetString("api.jwt_signing_key"); key != "" {
		conf.API.JWTSigningKey = key
	}
	if conf.API.JWTSigningKey == "" {
		return nil, ErrMissingJWTSigningKey
	}

	return conf, nil
}

// Watch reloads the config file on change and hands the fresh config to onChange.
// Invalid edits are logged and ignored.
func Watch(path string, onChange func(*AppConfig)) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		zap.L().Warn("config watch disabled", zap.Error(err))
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		zap.L().Info("config file changed", zap.String("file", e.Name), zap.String("op", e.Op.String()))

		conf, err := decode(v)
		if err != nil {
			zap.L().Error("failed to reload config", zap.Error(err))
			return
		}
		onChange(conf)
	})
	v.WatchConfig()
}
