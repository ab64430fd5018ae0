// Package config 从 config.yaml 加载服务配置，环境变量可覆盖
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Http  HTTPConfig  `yaml:"http"`
	Log   LogConfig   `yaml:"log"`
	Model ModelConfig `yaml:"model"`
}

type HTTPConfig struct {
	Port           int           `yaml:"port" env:"TI_HTTP_PORT"`
	Timeout        time.Duration `yaml:"timeout" env:"TI_HTTP_TIMEOUT"`
	AllowedOrigins []string      `yaml:"allowed_origins" env:"TI_HTTP_ALLOWED_ORIGINS"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes" env:"TI_HTTP_MAX_BODY_BYTES"`
}

type LogConfig struct {
	Level      string `yaml:"level" env:"TI_LOG_LEVEL"`
	File       string `yaml:"file" env:"TI_LOG_FILE"`
	MaxSizeMB  int    `yaml:"max_size_mb" env:"TI_LOG_MAX_SIZE_MB"`
	MaxBackups int    `yaml:"max_backups" env:"TI_LOG_MAX_BACKUPS"`
	MaxAgeDays int    `yaml:"max_age_days" env:"TI_LOG_MAX_AGE_DAYS"`
}

type ModelConfig struct {
	Path          string `yaml:"path" env:"TI_MODEL_PATH"`
	StrictVersion bool   `yaml:"strict_version" env:"TI_MODEL_STRICT_VERSION"`
	Watch         bool   `yaml:"watch" env:"TI_MODEL_WATCH"`
}

func Default() *Config {
	return &Config{
		Http: HTTPConfig{
			Port:           8501,
			Timeout:        10 * time.Second,
			AllowedOrigins: []string{"*"},
			MaxBodyBytes:   1 << 16,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Model: ModelConfig{
			Path:  "./models/travel_insurance_model.json",
			Watch: true,
		},
	}
}

// Resolve 先在工作目录查找配置文件，找不到时查找上级目录
func Resolve(name string) string {
	if _, err := os.Stat(name); os.IsNotExist(err) {
		parent := filepath.Join("..", name)
		if _, err := os.Stat(parent); err == nil {
			return parent
		}
	}
	return name
}

// Load 在默认值之上读取配置文件，再应用 TI_* 环境变量。文件不存在时只使用默认值和环境变量
func Load(path string) (*Config, error) {
	config := Default()

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(config); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if !filepath.IsAbs(config.Model.Path) && filepath.Dir(path) != "." {
			config.Model.Path = filepath.Join(filepath.Dir(path), config.Model.Path)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	if c.Model.Path == "" {
		return errors.New("model.path is required")
	}
	if c.Http.Port <= 0 || c.Http.Port > 65535 {
		return fmt.Errorf("http.port %d out of range", c.Http.Port)
	}
	if c.Http.Timeout <= 0 {
		return errors.New("http.timeout must be positive")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}
