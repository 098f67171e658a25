// Package config provides configuration management for the application.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Mailbox       MailboxConfig       `mapstructure:"mailbox"`
	Transactional TransactionalConfig `mapstructure:"transactional"`
	Transport     TransportConfig     `mapstructure:"transport"`
	Scheduler     SchedulerConfig     `mapstructure:"scheduler"`
	Importer      ImporterConfig      `mapstructure:"importer"`
	Webhook       WebhookConfig       `mapstructure:"webhook"`
	Middleware    MiddlewareConfig    `mapstructure:"middleware"`
}

type ServerConfig struct {
	Port         string `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	DBName         string `mapstructure:"dbname"`
	SSLMode        string `mapstructure:"sslmode"`
	AutoMigrate    bool   `mapstructure:"auto_migrate"`
	MigrationsPath string `mapstructure:"migrations_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// MailboxConfig is the OAuth client used for the threaded mailbox API.
type MailboxConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
	Endpoint     string `mapstructure:"endpoint"`
}

// TransactionalConfig is the fallback send API. An empty APIKey disables it.
type TransactionalConfig struct {
	URL         string `mapstructure:"url"`
	APIKey      string `mapstructure:"api_key"`
	FromAddress string `mapstructure:"from_address"`
}

// Enabled reports whether the transactional path can be used.
func (t TransactionalConfig) Enabled() bool {
	return t.APIKey != "" && t.URL != ""
}

type TransportConfig struct {
	TimeoutSeconds int                  `mapstructure:"timeout_seconds"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

// Timeout bounds every provider call.
func (t TransportConfig) Timeout() time.Duration {
	return time.Duration(t.TimeoutSeconds) * time.Second
}

type CircuitBreakerConfig struct {
	MaxRequests      uint32  `mapstructure:"max_requests"`
	Interval         int     `mapstructure:"interval"`
	Timeout          int     `mapstructure:"timeout"`
	FailureRatio     float64 `mapstructure:"failure_ratio"`
	ConsecutiveFails uint32  `mapstructure:"consecutive_fails"`
}

type SchedulerConfig struct {
	SweepIntervalSeconds  int `mapstructure:"sweep_interval_seconds"`
	ImportIntervalMinutes int `mapstructure:"import_interval_minutes"`
	BatchSize             int `mapstructure:"batch_size"`
	ClaimLeaseSeconds     int `mapstructure:"claim_lease_seconds"`
	RetryBackoffSeconds   int `mapstructure:"retry_backoff_seconds"`
	RetryBackoffMaxMinute int `mapstructure:"retry_backoff_max_minutes"`
	// MaxFollowUpAttempts stops re-claiming a follow-up after this many
	// failures. Zero means unlimited.
	MaxFollowUpAttempts int `mapstructure:"max_follow_up_attempts"`
}

type ImporterConfig struct {
	LockTTLSeconds int `mapstructure:"lock_ttl_seconds"`
}

type WebhookConfig struct {
	Secret string `mapstructure:"secret"`
}

type MiddlewareConfig struct {
	AllowedOrigins        []string `mapstructure:"allowed_origins"`
	RateLimit             int      `mapstructure:"rate_limit"`
	RateLimitBurst        int      `mapstructure:"rate_limit_burst"`
	RequestTimeoutSeconds int      `mapstructure:"request_timeout_seconds"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 30)

	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.auto_migrate", false)
	v.SetDefault("database.migrations_path", "./migrations")

	v.SetDefault("redis.db", 0)

	v.SetDefault("mailbox.endpoint", "")

	v.SetDefault("transactional.url", "https://api.resend.com/emails")

	v.SetDefault("transport.timeout_seconds", 20)
	v.SetDefault("transport.circuit_breaker.max_requests", 3)
	v.SetDefault("transport.circuit_breaker.interval", 60)
	v.SetDefault("transport.circuit_breaker.timeout", 60)
	v.SetDefault("transport.circuit_breaker.failure_ratio", 0.6)
	v.SetDefault("transport.circuit_breaker.consecutive_fails", 5)

	v.SetDefault("scheduler.sweep_interval_seconds", 60)
	v.SetDefault("scheduler.import_interval_minutes", 10)
	v.SetDefault("scheduler.batch_size", 50)
	v.SetDefault("scheduler.claim_lease_seconds", 120)
	v.SetDefault("scheduler.retry_backoff_seconds", 60)
	v.SetDefault("scheduler.retry_backoff_max_minutes", 360)
	v.SetDefault("scheduler.max_follow_up_attempts", 0)

	v.SetDefault("importer.lock_ttl_seconds", 300)

	v.SetDefault("middleware.allowed_origins", []string{"*"})
	v.SetDefault("middleware.rate_limit", 100)
	v.SetDefault("middleware.rate_limit_burst", 1000)
	v.SetDefault("middleware.request_timeout_seconds", 60)
}

// LoadConfig reads the YAML file at configPath. Environment variables such as
// OUTREACH_DATABASE_PASSWORD override file values.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v.SetEnvPrefix("outreach")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// GetDSN returns PostgreSQL connection string.
func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// GetURL returns the PostgreSQL URL form used by migrate.
func (d *DatabaseConfig) GetURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
}
