package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	HTTP     HTTPConfig
	Redis    RedisConfig
	Checkout CheckoutConfig
	Payment  PaymentConfig
	Sourcing SourcingConfig
	Log      LogConfig
}

type HTTPConfig struct {
	Port            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// RedisConfig points the snapshot store at Redis. With Enabled false the
// service keeps snapshots in process memory only.
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

type CheckoutConfig struct {
	// ProcessingDelay simulates the direct strategy's capture round trip.
	ProcessingDelay time.Duration
	LoginDelay      time.Duration
}

// PaymentConfig selects the delegated provider. Mode "simulated" uses the
// in-process provider; "http" talks to BaseURL.
type PaymentConfig struct {
	Mode    string
	BaseURL string
	Timeout time.Duration
}

type SourcingConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

// Load reads configuration from config.yaml (optional) with SHOPBLUE_*
// environment variable overrides.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("http.port", "8080")
	v.SetDefault("http.request_timeout", 30*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("checkout.processing_delay", 2*time.Second)
	v.SetDefault("checkout.login_delay", 800*time.Millisecond)

	v.SetDefault("payment.mode", "simulated")
	v.SetDefault("payment.base_url", "")
	v.SetDefault("payment.timeout", 15*time.Second)

	v.SetDefault("sourcing.base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("sourcing.api_key", "")
	v.SetDefault("sourcing.model", "gemini-2.5-flash")
	v.SetDefault("sourcing.timeout", 20*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("SHOPBLUE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional; defaults + env cover everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &Config{
		HTTP: HTTPConfig{
			Port:            v.GetString("http.port"),
			RequestTimeout:  v.GetDuration("http.request_timeout"),
			ShutdownTimeout: v.GetDuration("http.shutdown_timeout"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Checkout: CheckoutConfig{
			ProcessingDelay: v.GetDuration("checkout.processing_delay"),
			LoginDelay:      v.GetDuration("checkout.login_delay"),
		},
		Payment: PaymentConfig{
			Mode:    v.GetString("payment.mode"),
			BaseURL: v.GetString("payment.base_url"),
			Timeout: v.GetDuration("payment.timeout"),
		},
		Sourcing: SourcingConfig{
			BaseURL: v.GetString("sourcing.base_url"),
			APIKey:  v.GetString("sourcing.api_key"),
			Model:   v.GetString("sourcing.model"),
			Timeout: v.GetDuration("sourcing.timeout"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}
	return cfg, nil
}
