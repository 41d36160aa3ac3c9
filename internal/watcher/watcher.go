package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/blackwell-systems/brew-update-helper/internal/logging"
)

// ErrNothingToWatch is returned when none of the directories exist.
var ErrNothingToWatch = errors.New("no Homebrew directories to watch")

// Dirs returns the directories watched for a Homebrew prefix.
func Dirs(prefix string) []string {
	return []string{
		filepath.Join(prefix, "Cellar"),
		filepath.Join(prefix, "Caskroom"),
	}
}

// Watcher runs a sync callback after package directories change.
type Watcher struct {
	dirs     []string
	debounce time.Duration
	sync     func() error

	fsw    *fsnotify.Watcher
	stopCh chan struct{}
	wg     sync.WaitGroup

	mu    sync.Mutex
	syncs int
}

// New creates a Watcher. sync is called from the watcher goroutine, never
// concurrently with itself.
func New(dirs []string, debounce time.Duration, sync func() error) (*Watcher, error) {
	if sync == nil {
		return nil, fmt.Errorf("sync callback cannot be nil")
	}
	if debounce <= 0 {
		return nil, fmt.Errorf("debounce must be positive, got %s", debounce)
	}
	return &Watcher{
		dirs:     dirs,
		debounce: debounce,
		sync:     sync,
		stopCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. Directories that do not exist are skipped; if none
// exist ErrNothingToWatch is returned.
func (w *Watcher) Start() error {
	logger := logging.GetLogger("watcher")

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	watched := 0
	for _, dir := range w.dirs {
		if _, err := os.Stat(dir); err != nil {
			logger.Debug().Str("dir", dir).Msg("Skipping missing directory")
			continue
		}
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		logger.Info().Str("dir", dir).Msg("Watching")
		watched++
	}
	if watched == 0 {
		fsw.Close()
		return fmt.Errorf("%w: %s", ErrNothingToWatch, strings.Join(w.dirs, ", "))
	}

	w.fsw = fsw
	w.wg.Add(1)
	go w.loop()
	return nil
}

// loop collects events and fires sync once the directories go quiet.
func (w *Watcher) loop() {
	defer w.wg.Done()
	logger := logging.GetLogger("watcher")

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("Change detected")
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.debounce)
			pending = true

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn().Err(err).Msg("File watcher error")

		case <-timer.C:
			pending = false
			w.runSync()

		case <-w.stopCh:
			timer.Stop()
			if pending {
				w.runSync()
			}
			return
		}
	}
}

func (w *Watcher) runSync() {
	w.mu.Lock()
	w.syncs++
	w.mu.Unlock()

	if err := w.sync(); err != nil {
		logger := logging.GetLogger("watcher")
		logger.Error().Err(err).Msg("Sync failed")
	}
}

// Syncs returns how many times the sync callback has run.
func (w *Watcher) Syncs() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.syncs
}

// relevant filters out metadata-only changes and hidden files.
func relevant(event fsnotify.Event) bool {
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

// Stop halts the watcher, running a pending sync first.
func (w *Watcher) Stop() error {
	select {
	case <-w.stopCh:
		return nil
	default:
	}
	close(w.stopCh)
	w.wg.Wait()

	if w.fsw != nil {
		return w.fsw.Close()
	}
	return nil
}

// Run starts the watcher and blocks until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	return w.Stop()
}
