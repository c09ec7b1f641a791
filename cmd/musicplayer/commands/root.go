package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Roman77St/musicplayer"
	"github.com/Roman77St/musicplayer/codec"
	"github.com/Roman77St/musicplayer/internal/config"
	"github.com/Roman77St/musicplayer/output"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "musicplayer",
	Short: "Single-track audio player",
	Long: `musicplayer - decode one audio file and play it.

Supported formats: mp3, wav, ogg vorbis, flac, aiff.

Configuration is read from $HOME/.musicplayer/config.yaml unless --config is given.

Examples:
  musicplayer play song.mp3 --offset 30s
  musicplayer shell song.flac`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute запускает корневую команду.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $HOME/.musicplayer/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(shellCmd)
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// newTransport собирает единственный Transport процесса.
func newTransport(cfg *config.Config) *musicplayer.Transport {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))

	engine := output.NewOto(output.Options{
		SampleRate: cfg.SampleRate,
		BufferSize: cfg.BufferSize(),
		Logger:     logger,
	})

	return musicplayer.New(engine, musicplayer.NewDecoder(codec.Default()),
		musicplayer.WithLogger(logger),
		musicplayer.WithVolume(cfg.Volume),
		musicplayer.WithMonitorInterval(cfg.MonitorInterval()),
	)
}

// loadFile читает файл в Transport и ждёт окончания декодирования.
func loadFile(ctx context.Context, t *musicplayer.Transport, location string) error {
	src, err := musicplayer.OpenSource(ctx, location)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", location, err)
	}
	defer src.Close()

	before := t.Buffer()
	select {
	case <-t.InitSound(ctx, src):
	case <-ctx.Done():
		return ctx.Err()
	}

	// Ошибки декодирования уходят в лог; здесь видно только, что буфер не сменился
	if buf := t.Buffer(); buf == nil || buf == before {
		return fmt.Errorf("failed to load %s", location)
	}
	return nil
}

// parseOffset принимает длительность Go ("1m30s") или секунды ("12.5").
func parseOffset(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid offset %q", s)
	}
	return time.Duration(sec * float64(time.Second)), nil
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
