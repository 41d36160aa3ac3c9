package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/brew-update-helper/internal/config"
	"github.com/blackwell-systems/brew-update-helper/internal/logging"
	"github.com/blackwell-systems/brew-update-helper/internal/output"
	"github.com/blackwell-systems/brew-update-helper/internal/watcher"
)

var (
	watchDaemon      bool
	watchDaemonChild bool
	watchPIDFile     string
	watchLogFile     string
	watchStop        bool

	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Keep the settings checklist in sync with installed packages",
		Long: `Watch the Homebrew Cellar and Caskroom and re-run the dump merge whenever
packages are installed or removed, so new packages show up in the settings
checklist without running 'dump' by hand.

Existing checkboxes are never changed. The merge runs once the directories
have been quiet for watch_debounce (default 5s).

Watch modes:
  • Foreground (default): Run in current terminal with Ctrl+C to stop
  • Daemon: Run as a background process
  • Stop: Stop a running daemon`,
		Example: `  # Run in foreground (Ctrl+C to stop)
  brew-update-helper watch

  # Run as background daemon
  brew-update-helper watch --daemon

  # Stop running daemon
  brew-update-helper watch --stop

  # Use custom PID and log files
  brew-update-helper watch --daemon --pid-file /tmp/watch.pid --log-file /tmp/watch.log`,
		Args: cobra.NoArgs,
		RunE: runWatch,
	}
)

func init() {
	watchCmd.Flags().BoolVar(&watchDaemon, "daemon", false, "run as background daemon")
	watchCmd.Flags().BoolVar(&watchDaemonChild, "daemon-child", false, "internal flag for daemon child process")
	watchCmd.Flags().StringVar(&watchPIDFile, "pid-file", "", "PID file path (default: $XDG_STATE_HOME/brew-update-helper/watch.pid)")
	watchCmd.Flags().StringVar(&watchLogFile, "log-file", "", "log file path (default: $XDG_STATE_HOME/brew-update-helper/watch.log)")
	watchCmd.Flags().BoolVar(&watchStop, "stop", false, "stop running daemon")

	watchCmd.Flags().MarkHidden("daemon-child")
}

func runWatch(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if watchPIDFile == "" {
		watchPIDFile = defaultPIDFile()
	}
	if watchLogFile == "" {
		watchLogFile = defaultWatchLogFile()
	}

	if watchStop {
		return stopWatchDaemon(cmd)
	}

	if watchDaemon {
		pid, err := watcher.StartDaemon(watchPIDFile, watchLogFile, daemonArgs())
		if err != nil {
			return fmt.Errorf("failed to start daemon: %w", err)
		}
		output.Successf(out, "Watcher started (PID %d)", pid)
		fmt.Fprintf(out, "  PID file: %s\n", watchPIDFile)
		fmt.Fprintf(out, "  Log file: %s\n", watchLogFile)
		fmt.Fprintf(out, "\nTo stop: brew-update-helper watch --stop\n")
		return nil
	}

	m, err := connectManager(detectCapabilities())
	if err != nil {
		return err
	}
	prefix, err := m.Prefix()
	if err != nil {
		return fmt.Errorf("failed to find Homebrew prefix: %w", err)
	}

	path := config.DocumentPath(configPath)
	logger := logging.GetLogger("watch")
	w, err := watcher.New(watcher.Dirs(prefix), settings.Debounce(), func() error {
		report, err := syncDocument(m, path)
		if err != nil {
			return err
		}
		if !watchDaemonChild {
			printMergeReport(out, report)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if _, err := syncDocument(m, path); err != nil {
		return err
	}

	if watchDaemonChild {
		logger.Info().Str("prefix", prefix).Str("settings", path).Msg("Watcher daemon starting")
		return w.RunDaemon(watchPIDFile)
	}

	output.Infof(out, "Watching %s for installs (press Ctrl+C to stop)...", prefix)
	fmt.Fprintf(out, "Settings: %s\n\n", path)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := w.Run(ctx); err != nil {
		return fmt.Errorf("watcher failed: %w", err)
	}

	fmt.Fprintf(out, "\nWatcher stopped after %d %s\n", w.Syncs(), pluralize(w.Syncs(), "sync", "syncs"))
	return nil
}

func stopWatchDaemon(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	running, err := watcher.IsDaemonRunning(watchPIDFile)
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}
	if !running {
		fmt.Fprintln(out, "Watcher is not running")
		return nil
	}

	if err := watcher.StopDaemon(watchPIDFile); err != nil {
		return fmt.Errorf("failed to stop daemon: %w", err)
	}
	output.Successf(out, "Watcher stopped")
	return nil
}

// daemonArgs forwards the flags the background process needs.
func daemonArgs() []string {
	args := []string{"--pid-file", watchPIDFile}
	if configPath != "" {
		args = append(args, "--config", configPath)
	}
	if settingsPath != "" {
		args = append(args, "--settings", settingsPath)
	}
	if verbosity > 0 {
		args = append(args, fmt.Sprintf("--verbose=%d", verbosity))
	}
	return args
}
