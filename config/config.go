package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	MaxHeaderBytes int           `mapstructure:"max_header_bytes"`
}

type FirebaseConfig struct {
	ProjectID       string `mapstructure:"project_id"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

type SendGridConfig struct {
	APIKey       string `mapstructure:"api_key"`
	FromEmail    string `mapstructure:"from_email"`
	FromName     string `mapstructure:"from_name"`
	ReplyToEmail string `mapstructure:"reply_to_email"`
	ReplyToName  string `mapstructure:"reply_to_name"`
}

type RetryConfig struct {
	BatchSize  int           `mapstructure:"batch_size"`
	Interval   time.Duration `mapstructure:"interval"`
	MaxRetries int           `mapstructure:"max_retries"`
}

type ExpiryConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type PushConfig struct {
	// Sends per second across the dispatcher and retry sweeper.
	RateLimit int `mapstructure:"rate_limit"`
}

type WorkerConfig struct {
	HealthPort int `mapstructure:"health_port"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Firebase FirebaseConfig `mapstructure:"firebase"`
	SendGrid SendGridConfig `mapstructure:"sendgrid"`
	Retry    RetryConfig    `mapstructure:"retry"`
	Expiry   ExpiryConfig   `mapstructure:"expiry"`
	Push     PushConfig     `mapstructure:"push"`
	Worker   WorkerConfig   `mapstructure:"worker"`
}

// secrets are always read from the process environment, never from the
// config file.
type secrets struct {
	SendGridAPIKey string `envconfig:"SENDGRID_API_KEY"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var sec secrets
	if err := envconfig.Process("", &sec); err != nil {
		return nil, fmt.Errorf("failed to read secrets from environment: %w", err)
	}
	if sec.SendGridAPIKey != "" {
		config.SendGrid.APIKey = sec.SendGridAPIKey
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 10*time.Second)
	viper.SetDefault("server.write_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1<<20)

	viper.SetDefault("sendgrid.from_email", "noreply@sprintindex.com")
	viper.SetDefault("sendgrid.from_name", "SprintIndex")
	viper.SetDefault("sendgrid.reply_to_email", "support@sprintindex.com")
	viper.SetDefault("sendgrid.reply_to_name", "SprintIndex Support")

	viper.SetDefault("retry.batch_size", 10)
	viper.SetDefault("retry.interval", 5*time.Minute)
	viper.SetDefault("retry.max_retries", 3)

	viper.SetDefault("expiry.interval", time.Hour)

	viper.SetDefault("push.rate_limit", 100)

	viper.SetDefault("worker.health_port", 8081)
}
