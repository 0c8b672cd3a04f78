// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Store backends understood by storage.Open.
const (
	StoreFile   = "file"
	StoreNATS   = "nats"
	StoreMemory = "memory"
)

// Config holds all configuration values for sensei.
type Config struct {
	DataDir         string        `mapstructure:"data_dir" yaml:"data_dir"`
	LogLevel        string        `mapstructure:"log_level" yaml:"log_level"`
	LogFile         string        `mapstructure:"log_file" yaml:"log_file"`
	Store           string        `mapstructure:"store" yaml:"store"`
	UploadInterval  time.Duration `mapstructure:"upload_interval" yaml:"upload_interval"`
	UploadIncrement int           `mapstructure:"upload_increment" yaml:"upload_increment"`
	UploadDuration  time.Duration `mapstructure:"upload_duration" yaml:"upload_duration"`
	MaxUploadMB     int64         `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
}

// Default returns the configuration used when no file or env overrides exist.
func Default() *Config {
	return &Config{
		DataDir:         ".sensei",
		LogLevel:        "info",
		LogFile:         "",
		Store:           StoreFile,
		UploadInterval:  200 * time.Millisecond,
		UploadIncrement: 10,
		UploadDuration:  3 * time.Second,
		MaxUploadMB:     100,
	}
}

var envKeys = []string{
	"data_dir",
	"log_level",
	"log_file",
	"store",
	"upload_interval",
	"upload_increment",
	"upload_duration",
	"max_upload_mb",
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("sensei")

	def := Default()
	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("store", def.Store)
	v.SetDefault("upload_interval", def.UploadInterval)
	v.SetDefault("upload_increment", def.UploadIncrement)
	v.SetDefault("upload_duration", def.UploadDuration)
	v.SetDefault("max_upload_mb", def.MaxUploadMB)

	v.SetEnvPrefix("SENSEI")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, key := range envKeys {
		if err := v.BindEnv(key, "SENSEI_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that would otherwise surface as odd runtime behavior.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreFile, StoreNATS, StoreMemory:
	default:
		return fmt.Errorf("invalid store %q (want %s, %s or %s)", c.Store, StoreFile, StoreNATS, StoreMemory)
	}
	if c.UploadInterval <= 0 {
		return fmt.Errorf("upload_interval must be positive")
	}
	if c.UploadIncrement <= 0 || c.UploadIncrement > 100 {
		return fmt.Errorf("upload_increment must be within 1..100")
	}
	if c.UploadDuration < 0 {
		return fmt.Errorf("upload_duration must be >= 0")
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("max_upload_mb must be positive")
	}
	return nil
}

// MaxUploadBytes returns the upload size limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB * 1024 * 1024
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/sensei/sensei.yml or $XDG_CONFIG_HOME/sensei/sensei.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "sensei", "sensei.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "sensei", "sensei.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "sensei.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
