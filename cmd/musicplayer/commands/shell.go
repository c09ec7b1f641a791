package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Roman77St/musicplayer"
)

var shellCmd = &cobra.Command{
	Use:   "shell [FILE]",
	Short: "Interactive transport controls",
	Long: `Interactive shell over one player.

Commands:
  load PATH      decode a file (the previous one stays loaded on failure)
  play [OFFSET]  start a new session from OFFSET
  pause          suspend output
  resume         resume output
  stop           stop the session
  volume V       set volume from 0 to 1
  status         show state and position
  quit           exit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShellCmd,
}

func runShellCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	t := newTransport(cfg)
	defer t.Close()

	if len(args) == 1 {
		if err := loadFile(ctx, t, args[0]); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
		}
	}
	return runShell(ctx, t, cmd.InOrStdin(), cmd.OutOrStdout())
}

// runShell читает команды построчно до quit, EOF или отмены ctx.
func runShell(ctx context.Context, t *musicplayer.Transport, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		quit, err := execLine(ctx, t, scanner.Text(), out)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
		fmt.Fprint(out, "> ")
	}
	return scanner.Err()
}

func execLine(ctx context.Context, t *musicplayer.Transport, line string, out io.Writer) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "quit", "exit", "q":
		return true, nil
	case "load":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: load PATH")
		}
		return false, loadFile(ctx, t, args[0])
	case "play":
		var arg string
		if len(args) > 0 {
			arg = args[0]
		}
		offset, err := parseOffset(arg)
		if err != nil {
			return false, err
		}
		return false, t.Play(offset)
	case "pause", "suspend":
		return false, t.Suspend()
	case "resume":
		return false, t.Resume()
	case "stop":
		t.Stop()
		return false, nil
	case "volume":
		if len(args) != 1 {
			fmt.Fprintf(out, "volume: %.2f\n", t.Volume())
			return false, nil
		}
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return false, fmt.Errorf("invalid volume %q", args[0])
		}
		t.SetVolume(v)
		return false, nil
	case "status":
		printStatus(out, t.Status())
		return false, nil
	default:
		return false, fmt.Errorf("unknown command %q", name)
	}
}

func printStatus(out io.Writer, s musicplayer.Status) {
	fmt.Fprintf(out, "state: %s\n", s.State)
	if !s.Ready {
		fmt.Fprintln(out, "buffer: not loaded")
		return
	}
	fmt.Fprintf(out, "duration: %s\n", formatDuration(s.Duration))
	if s.SessionID != "" {
		fmt.Fprintf(out, "session: %s\n", s.SessionID)
		fmt.Fprintf(out, "position: %s\n", formatDuration(s.Position))
	}
	fmt.Fprintf(out, "volume: %.2f\n", s.Volume)
}
