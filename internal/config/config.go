package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App       AppConfig       `yaml:"app"`
	API       APIConfig       `yaml:"api"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Storage   StorageConfig   `yaml:"storage"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	SMTP      SMTPConfig      `yaml:"smtp"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type AppConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Env     string `yaml:"env"`
}

type APIConfig struct {
	BaseURL          string        `yaml:"base_url"`
	UsersEndpoint    string        `yaml:"users_endpoint"`
	ProductsEndpoint string        `yaml:"products_endpoint"`
	CartsEndpoint    string        `yaml:"carts_endpoint"`
	Timeout          time.Duration `yaml:"timeout"`
}

type PipelineConfig struct {
	ScratchDir string `yaml:"scratch_dir"`
}

type StorageConfig struct {
	S3 S3Config `yaml:"s3"`
}

type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// SchedulerConfig mirrors the run defaults the workflow scheduler owns.
// RetryAttempts and RetryDelay are honored by the scheduler daemon only;
// the pipeline core never retries a failed stage.
type SchedulerConfig struct {
	Owner         string        `yaml:"owner"`
	NotifyEmail   string        `yaml:"notify_email"`
	RunAt         string        `yaml:"run_at"` // "HH:MM", defaults to end of day
	RetryAttempts int           `yaml:"retry_attempts"`
	RetryDelay    time.Duration `yaml:"retry_delay"`
	RunOnStart    bool          `yaml:"run_on_start"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	From     string `yaml:"from"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LoggingConfig struct {
	Level  string        `yaml:"level"`
	Format string        `yaml:"format"`
	File   FileLogConfig `yaml:"file"`
}

type FileLogConfig struct {
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

func Load() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()
	config.applyEnvOverrides()

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = "https://fakestoreapi.com"
	}
	if c.API.UsersEndpoint == "" {
		c.API.UsersEndpoint = "/users"
	}
	if c.API.ProductsEndpoint == "" {
		c.API.ProductsEndpoint = "/products"
	}
	if c.API.CartsEndpoint == "" {
		c.API.CartsEndpoint = "/carts"
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = 60 * time.Second
	}
	if c.Pipeline.ScratchDir == "" {
		c.Pipeline.ScratchDir = "data"
	}
}

// Secrets and the notification address come from the environment when set,
// so a shared config.yaml never has to carry credentials. Values are passed
// through opaque, never validated here.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("AWS_ACCESS_KEY_ID"); v != "" {
		c.Storage.S3.AccessKey = v
	}
	if v := os.Getenv("AWS_SECRET_ACCESS_KEY"); v != "" {
		c.Storage.S3.SecretKey = v
	}
	if v := os.Getenv("AWS_REGION"); v != "" {
		c.Storage.S3.Region = v
	}
	if v := os.Getenv("S3_BUCKET"); v != "" {
		c.Storage.S3.Bucket = v
	}
	if v := os.Getenv("NOTIFY_EMAIL"); v != "" {
		c.Scheduler.NotifyEmail = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		c.SMTP.Password = v
	}
}
