// Package watcher keeps the settings document in step with Homebrew.
//
// It watches <prefix>/Cellar and <prefix>/Caskroom with fsnotify. Installs
// and uninstalls show up as entries appearing or disappearing there; after
// the directories have been quiet for the debounce interval the watcher runs
// its sync callback once, which merges newly installed packages into the
// document.
//
// Example usage:
//
//	w, err := watcher.New(watcher.Dirs("/opt/homebrew"), 5*time.Second, sync)
//	if err != nil {
//		return err
//	}
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	return w.Run(ctx)
//
// The watcher can also run detached with StartDaemon, tracked by a PID file.
package watcher
