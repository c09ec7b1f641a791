package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Roman77St/musicplayer"
)

var (
	playOffset string
	playVolume float64
)

var playCmd = &cobra.Command{
	Use:   "play FILE",
	Short: "Play a file from the given offset until it ends",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&playOffset, "offset", "0s", "start offset (e.g. 30s, 1m5s, 12.5)")
	playCmd.Flags().Float64Var(&playVolume, "volume", -1, "volume from 0 to 1 (default from config)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if playVolume >= 0 {
		cfg.Volume = playVolume
	}
	offset, err := parseOffset(playOffset)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	t := newTransport(cfg)
	defer t.Close()

	if err := loadFile(ctx, t, args[0]); err != nil {
		return err
	}
	if err := t.Play(offset); err != nil {
		return err
	}

	total, _ := t.Duration()
	fmt.Fprintf(cmd.OutOrStdout(), "Playing %s (%s)\n", args[0], formatDuration(total))

	return waitPlayback(ctx, t, 200*time.Millisecond)
}

// waitPlayback ждёт, пока монитор не отпустит законченную сессию.
func waitPlayback(ctx context.Context, t *musicplayer.Transport, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.Stop()
			return nil
		case <-ticker.C:
			if !t.Playing() {
				return nil
			}
		}
	}
}
