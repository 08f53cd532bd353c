package core

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator"
	"gopkg.in/yaml.v3"
)

const (
	defaultCacheTTL       = 24 * time.Hour
	defaultMaxUploadBytes = 20 << 20
	defaultMaxWidth       = 4096
)

type Database struct {
	Type             string `yaml:"type" validate:"required,oneof=sqlite"`
	ConnectionString string `yaml:"connectionString" validate:"required"`
}

type Redis struct {
	Address  string        `yaml:"address"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db" validate:"min=0"`
	TTL      time.Duration `yaml:"ttl" validate:"min=0"`
}

type Thumbnail struct {
	ScriptURL      string `yaml:"scriptUrl" validate:"omitempty,url"`
	MaxWidth       int    `yaml:"maxWidth" validate:"min=0"`
	MaxUploadBytes int64  `yaml:"maxUploadBytes" validate:"min=0"`
}

type ServiceConfig struct {
	Port      int       `yaml:"port" validate:"required,min=1,max=65535"`
	LogLevel  string    `yaml:"logLevel" validate:"omitempty,oneof=debug info warn error"`
	Database  Database  `yaml:"database"`
	Redis     Redis     `yaml:"redis"`
	Thumbnail Thumbnail `yaml:"thumbnail"`
}

// LoadConfig loads configuration from the specified YAML file
func LoadConfig(configPath string) (*ServiceConfig, error) {
	// Read the config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	// Parse YAML
	var config ServiceConfig
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", configPath, err)
	}

	return &config, nil
}

func (c *ServiceConfig) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Redis.TTL == 0 {
		c.Redis.TTL = defaultCacheTTL
	}
	if c.Thumbnail.MaxWidth == 0 {
		c.Thumbnail.MaxWidth = defaultMaxWidth
	}
	if c.Thumbnail.MaxUploadBytes == 0 {
		c.Thumbnail.MaxUploadBytes = defaultMaxUploadBytes
	}
}

// Validate checks struct constraints of the configuration.
func (c *ServiceConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	return nil
}
