// Package config provides hierarchical configuration management: defaults,
// an optional config.yaml, and FINSIGHT_* environment variables, with .env
// loading for local development.
package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var (
	once sync.Once
	// Logger is the global logrus instance shared by the CLI commands.
	Logger = logrus.New()
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	IMAP struct {
		Server string `mapstructure:"server" yaml:"server"`
	} `mapstructure:"imap" yaml:"imap"`

	Mailbox struct {
		LookbackDays int `mapstructure:"lookback_days" yaml:"lookback_days"`
		KeywordCap   int `mapstructure:"keyword_cap" yaml:"keyword_cap"`
		Workers      int `mapstructure:"workers" yaml:"workers"`
	} `mapstructure:"mailbox" yaml:"mailbox"`

	Categories struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"categories" yaml:"categories"`
}

// LoadEnv loads environment variables from a .env file if one exists.
func LoadEnv() {
	once.Do(func() {
		if _, err := os.Stat(".env"); os.IsNotExist(err) {
			return
		}
		if err := godotenv.Load(".env"); err != nil {
			Logger.Warnf("Error loading .env file: %v", err)
		}
	})
}

// Initialize loads the configuration with hierarchical precedence:
// defaults, then config file, then environment variables.
func Initialize() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.finsight")
	v.AddConfigPath(".finsight")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FINSIGHT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			Logger.Warnf("Error reading config file %s: %v", v.ConfigFileUsed(), err)
		}
		// Missing config file is fine: defaults and env vars apply.
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("imap.server", "")
	v.SetDefault("mailbox.lookback_days", 60)
	v.SetDefault("mailbox.keyword_cap", 10)
	v.SetDefault("mailbox.workers", 4)

	v.SetDefault("categories.file", "")
}

func validate(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}
	if config.Mailbox.LookbackDays <= 0 {
		return fmt.Errorf("mailbox.lookback_days must be positive, got: %d", config.Mailbox.LookbackDays)
	}
	if config.Mailbox.KeywordCap <= 0 {
		return fmt.Errorf("mailbox.keyword_cap must be positive, got: %d", config.Mailbox.KeywordCap)
	}
	return nil
}

// ConfigureLogging configures the global logger from the Config struct and
// returns it.
func ConfigureLogging(config *Config) *logrus.Logger {
	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		Logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	Logger.SetLevel(logLevel)

	if config.Log.Format == "json" {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
	return Logger
}

// DetectIMAPServer auto-detects the IMAP server for well-known providers
// from the account address. Returns empty when the provider is unknown.
func DetectIMAPServer(address string) string {
	lowered := strings.ToLower(address)
	switch {
	case strings.Contains(lowered, "gmail"):
		return "imap.gmail.com:993"
	case strings.Contains(lowered, "yahoo"):
		return "imap.mail.yahoo.com:993"
	case strings.Contains(lowered, "outlook"), strings.Contains(lowered, "hotmail"):
		return "outlook.office365.com:993"
	default:
		return ""
	}
}
