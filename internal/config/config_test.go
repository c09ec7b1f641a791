package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Volume != 1 || cfg.Level() != slog.LevelInfo || cfg.MonitorInterval() != 100*time.Millisecond {
		t.Errorf("Load() = %+v; want defaults", cfg)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "sample_rate: 48000\nbuffer_ms: 120\nvolume: 0.4\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SampleRate != 48000 || cfg.BufferSize() != 120*time.Millisecond || cfg.Volume != 0.4 {
		t.Errorf("Load() = %+v", cfg)
	}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("Level() = %v; want debug", cfg.Level())
	}
	// Не указанное в файле остаётся по умолчанию
	if cfg.MonitorIntervalMs != 100 {
		t.Errorf("MonitorIntervalMs = %d; want 100", cfg.MonitorIntervalMs)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"Negative rate", "sample_rate: -1\n"},
		{"Negative buffer", "buffer_ms: -5\n"},
		{"Unknown level", "log_level: loud\n"},
		{"Broken yaml", "volume: [1, 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}

func TestValidateClampsVolume(t *testing.T) {
	tests := []struct {
		name   string
		volume float64
		want   float64
	}{
		{"Keep volume", 0.5, 0.5},
		{"Cap volume", 5.0, 1.0},
		{"Negative volume", -2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Volume = tt.volume
			if err := cfg.Validate(); err != nil {
				t.Fatal(err)
			}
			if cfg.Volume != tt.want {
				t.Errorf("Volume = %v; want %v", cfg.Volume, tt.want)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.SampleRate = 44100

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.SampleRate != 44100 {
		t.Errorf("SampleRate = %d; want 44100", got.SampleRate)
	}
}
