// Package config загружает настройки плеера из YAML-файла.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

const (
	// DefaultBaseDir — каталог настроек в домашней директории.
	DefaultBaseDir = ".musicplayer"
	// DefaultConfigFile — имя файла настроек по умолчанию.
	DefaultConfigFile = "config.yaml"
)

// Config содержит настройки плеера.
type Config struct {
	// SampleRate частота вывода. 0 — частота первого загруженного файла.
	SampleRate int `yaml:"sample_rate,omitempty"`

	// BufferMs размер буфера вывода в миллисекундах. 0 — значение oto.
	BufferMs int `yaml:"buffer_ms,omitempty"`

	// Volume громкость по умолчанию, от 0 до 1.
	Volume float64 `yaml:"volume"`

	// LogLevel: debug, info, warn или error.
	LogLevel string `yaml:"log_level,omitempty"`

	// MonitorIntervalMs период проверки окончания трека.
	MonitorIntervalMs int `yaml:"monitor_interval_ms,omitempty"`
}

// Default возвращает настройки по умолчанию.
func Default() *Config {
	return &Config{
		Volume:            1,
		LogLevel:          "info",
		MonitorIntervalMs: 100,
	}
}

// DefaultPath возвращает $HOME/.musicplayer/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, DefaultBaseDir, DefaultConfigFile), nil
}

// Load читает настройки из файла. Отсутствующий файл — не ошибка,
// возвращаются значения по умолчанию.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save записывает настройки в файл, создавая каталог.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate проверяет значения и приводит громкость к диапазону [0, 1].
func (c *Config) Validate() error {
	if c.SampleRate < 0 {
		return fmt.Errorf("sample_rate must not be negative: %d", c.SampleRate)
	}
	if c.BufferMs < 0 {
		return fmt.Errorf("buffer_ms must not be negative: %d", c.BufferMs)
	}
	if c.MonitorIntervalMs < 0 {
		return fmt.Errorf("monitor_interval_ms must not be negative: %d", c.MonitorIntervalMs)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}

	if c.Volume < 0 {
		c.Volume = 0
	}
	if c.Volume > 1 {
		c.Volume = 1
	}
	return nil
}

func (c *Config) BufferSize() time.Duration {
	return time.Duration(c.BufferMs) * time.Millisecond
}

func (c *Config) MonitorInterval() time.Duration {
	return time.Duration(c.MonitorIntervalMs) * time.Millisecond
}

// Level возвращает уровень логирования slog.
func (c *Config) Level() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log_level %q", s)
	}
}
