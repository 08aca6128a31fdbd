package settings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a changed settings file is reloaded.
const DefaultDebounce = 50 * time.Millisecond

// WatcherConfig configures a Watcher.
type WatcherConfig struct {
	Logger *slog.Logger
	// ErrorHandler receives reload and fsnotify errors. The previous snapshot stays active.
	ErrorHandler func(error)
	// OnReload is called after every successful reload.
	OnReload func(Settings)
	Debounce time.Duration
}

// Watcher reloads a Store whenever its backing file changes.
// It is a lifecycle worker, so it can run under a supervisor.
type Watcher struct {
	*worker.BaseWorker
	store     *Store
	config    WatcherConfig
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc
}

// NewWatcher creates a watcher for store's backing file.
func NewWatcher(store *Store, config WatcherConfig) *Watcher {
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}
	return &Watcher{
		BaseWorker: worker.NewBaseWorker("settings-watcher"),
		store:      store,
		config:     config,
	}
}

func (w *Watcher) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if w.store.Path() == "" {
		return errors.New("settings store has no backing file")
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	// Editors often replace the file via rename, so watch the directory.
	if err := watcher.Add(filepath.Dir(w.store.Path())); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch settings directory: %w", err)
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(w.config.Debounce)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *Watcher) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}

	return w.BaseWorker.Stop(ctx)
}

func (w *Watcher) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
			"path":              w.store.Path(),
		}
	})
}

func (w *Watcher) isTarget(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(w.store.Path()) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

func (w *Watcher) reload() {
	s, err := w.store.Reload()
	if err != nil {
		w.handleError(fmt.Errorf("reload settings: %w", err))
		return
	}
	w.config.Logger.Info("settings reloaded", "path", w.store.Path(), "ignored", s.IgnoredFileTypes, "use_regex", s.UseRegex)
	if w.config.OnReload != nil {
		w.config.OnReload(s)
	}
}

func (w *Watcher) handleError(err error) {
	w.config.Logger.Error("settings watcher error", "error", err)
	if w.config.ErrorHandler != nil {
		w.config.ErrorHandler(err)
	}
}

func (w *Watcher) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			panicErr := fmt.Errorf("watcher panic: %v", recovered)
			if w.config.Logger.Enabled(ctx, slog.LevelDebug) {
				w.config.Logger.Error("watcher panic", "error", panicErr, "stack", string(debug.Stack()))
			} else {
				w.config.Logger.Error("watcher panic", "error", panicErr)
			}
			err = panicErr
		}
	}()
	defer w.watcher.Close()

	err = w.loop(ctx)

	w.debouncer.stopAndWait(5 * time.Second)
	return err
}

func (w *Watcher) loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.isTarget(event) {
				continue
			}
			w.config.Logger.Debug("settings file changed", "op", event.Op.String())
			w.debouncer.add(event.Name, w.reload)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.handleError(wErr)
		}
	}
}
