// Package config loads application configuration from a YAML file with
// environment variable overrides for secrets.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Storage Storage `mapstructure:"storage" validate:"required"`
	OpenAI  OpenAI  `mapstructure:"openai"`
	Review  Review  `mapstructure:"review"`
}

// Storage selects where reviewable items and AI review sessions live.
type Storage struct {
	Backend string   `mapstructure:"backend" validate:"oneof=yaml mysql"`
	Yaml    Yaml     `mapstructure:"yaml"`
	MySQL   Database `mapstructure:"mysql"`
}

// Yaml configures the file-backed item repository.
type Yaml struct {
	ItemsFile string `mapstructure:"items_file"`
}

// Database configures the MySQL connection.
type Database struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	Database        string            `mapstructure:"database"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime"`
}

// OpenAI configures the inference provider.
type OpenAI struct {
	APIKey           string `mapstructure:"api_key"`
	Model            string `mapstructure:"model"`
	MaxRetryAttempts uint   `mapstructure:"max_retry_attempts"`
}

// Review configures session defaults.
type Review struct {
	QuestionCount int    `mapstructure:"question_count" validate:"min=1,max=20"`
	OwnerID       string `mapstructure:"owner_id"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/retento")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("storage.backend", "yaml")
	v.SetDefault("storage.yaml.items_file", filepath.Join("items", "items.yml"))
	v.SetDefault("storage.mysql.host", "localhost")
	v.SetDefault("storage.mysql.port", 3306)
	v.SetDefault("storage.mysql.database", "retento")
	v.SetDefault("storage.mysql.username", "user")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.max_retry_attempts", 3)
	v.SetDefault("review.question_count", 5)
	v.SetDefault("review.owner_id", "local")

	// Bind OpenAI config to environment variables only (not from config file)
	if err := v.BindEnv("openai.api_key", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("openai.model", "OPENAI_MODEL"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_MODEL environment variable: %w", err)
	}

	// Bind database password to environment variable
	if err := v.BindEnv("storage.mysql.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
