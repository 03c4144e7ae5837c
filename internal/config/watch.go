package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounceDelay is the delay after the last change of a watched file
// before it is reloaded.
const DefaultDebounceDelay = 100 * time.Millisecond

// Watcher watches a config file and reloads it on changes.
//
// Change callbacks are invoked from the watcher's goroutines; callers
// serialize them into their own event loop as needed.
type Watcher struct {
	path  string
	theme ColorschemeType

	debounceDelay time.Duration
	logger        zerolog.Logger

	watcher  *fsnotify.Watcher
	onChange []func(Config)
	errChan  chan error

	ctx    context.Context
	cancel context.CancelFunc

	mtx           sync.Mutex
	debounceTimer *time.Timer
}

// NewWatcher creates a watcher for the config file at the given path.
func NewWatcher(path string, theme ColorschemeType, logger zerolog.Logger) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		path:          path,
		theme:         theme,
		debounceDelay: DefaultDebounceDelay,
		logger:        logger.With().Str("file", path).Logger(),
		errChan:       make(chan error, 1),
		ctx:           ctx,
		cancel:        cancel,
	}
}

// SetDebounceDelay sets the delay between the last observed change and the
// reload. Must be called before Watch.
func (w *Watcher) SetDebounceDelay(d time.Duration) {
	w.debounceDelay = d
}

// OnChange registers a callback to be invoked with each successfully
// reloaded configuration. Must be called before Watch.
func (w *Watcher) OnChange(cb func(Config)) {
	w.onChange = append(w.onChange, cb)
}

// Errors returns a channel for receiving errors that occur during watching
// or reloading. Errors are dropped while the channel is full.
func (w *Watcher) Errors() <-chan error {
	return w.errChan
}

// Watch starts watching the config file.
func (w *Watcher) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create watcher (%w)", err)
	}
	w.watcher = watcher

	// editors commonly replace files rather than writing them, so the
	// directory is watched instead of the file itself
	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("could not watch directory '%s' (%w)", dir, err)
	}

	go w.watchLoop()
	w.logger.Debug().Msg("watching config file")

	return nil
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.logger.Trace().Str("op", event.Op.String()).Msg("config file changed")

			w.mtx.Lock()
			if w.debounceTimer != nil {
				w.debounceTimer.Stop()
			}
			w.debounceTimer = time.AfterFunc(w.debounceDelay, w.reload)
			w.mtx.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.report(err)
		}
	}
}

func (w *Watcher) reload() {
	if w.ctx.Err() != nil {
		return
	}

	c, err := Load(w.theme, w.path)
	if err != nil {
		w.report(fmt.Errorf("could not reload config (%w)", err))
		return
	}
	if _, err := c.BuildLayout(); err != nil {
		w.report(fmt.Errorf("reloaded config has invalid layout (%w)", err))
		return
	}

	w.logger.Info().Msg("reloaded config")
	for _, cb := range w.onChange {
		cb(c)
	}
}

func (w *Watcher) report(err error) {
	w.logger.Warn().Err(err).Msg("config watcher error")
	select {
	case w.errChan <- err:
	default:
	}
}

// Close stops the watcher and releases its resources.
func (w *Watcher) Close() error {
	w.cancel()

	w.mtx.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.mtx.Unlock()

	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}
