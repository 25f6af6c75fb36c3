package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	MakerSuite MakerSuiteConfig `yaml:"makersuite"`
	Airmax     AirmaxConfig     `yaml:"airmax"`
	Booking    BookingConfig    `yaml:"booking"`
	Redis      RedisConfig      `yaml:"redis"`
	Kafka      KafkaConfig      `yaml:"kafka"`
	Database   DatabaseConfig   `yaml:"database"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
	TLSCert string `yaml:"tls_cert"`
	TLSKey  string `yaml:"tls_key"`
}

// TLSEnabled reports whether both certificate files are configured and
// readable; otherwise the server falls back to plain HTTP.
func (h HTTPConfig) TLSEnabled() bool {
	if h.TLSCert == "" || h.TLSKey == "" {
		return false
	}
	if _, err := os.Stat(h.TLSCert); err != nil {
		return false
	}
	if _, err := os.Stat(h.TLSKey); err != nil {
		return false
	}
	return true
}

type MakerSuiteConfig struct {
	URL            string `yaml:"url"`
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type AirmaxConfig struct {
	BaseURL        string `yaml:"base_url"`
	SearchEndpoint string `yaml:"search_endpoint"`
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type BookingConfig struct {
	PendingTTLMinutes     int `yaml:"pending_ttl_minutes"`
	SweepIntervalMinutes  int `yaml:"sweep_interval_minutes"`
	SearchCacheTTLSeconds int `yaml:"search_cache_ttl_seconds"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	WebhookEventsTopic string   `yaml:"webhook_events_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// API keys live in the environment (.env in development), not in the
	// config file.
	if v := os.Getenv("MAKERSUITE_API_KEY"); v != "" {
		cfg.MakerSuite.APIKey = v
	}
	if v := os.Getenv("AIRMAX_API_KEY"); v != "" {
		cfg.Airmax.APIKey = v
	}
	if cfg.Airmax.APIKey == "" {
		cfg.Airmax.APIKey = cfg.MakerSuite.APIKey
	}

	if cfg.Booking.PendingTTLMinutes <= 0 {
		cfg.Booking.PendingTTLMinutes = 60
	}
	if cfg.Booking.SweepIntervalMinutes <= 0 {
		cfg.Booking.SweepIntervalMinutes = 5
	}

	return &cfg, nil
}
