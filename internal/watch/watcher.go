// Package watch reports changes to a single file, typically the ledger the
// tree view is showing. The file's directory is watched rather than the file
// itself so editors that save by rename-and-replace are still seen.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rileyhilliard/ltree/internal/errors"
	"github.com/rileyhilliard/ltree/internal/logger"
)

// DefaultDebounce is used when Options.Debounce is zero.
const DefaultDebounce = 200 * time.Millisecond

// Event describes the last change seen before the file went quiet.
type Event struct {
	Path string
	Op   fsnotify.Op
	Time time.Time
}

// Handler is called once per burst of changes, from the watcher's goroutine.
type Handler func(Event)

// Options configures a Watcher.
type Options struct {
	// Debounce is how long the file must stay quiet before Handler runs.
	Debounce time.Duration

	// BufferSize bounds queued raw events. Extra events are dropped; the
	// burst still fires.
	BufferSize int

	Logger logger.Logger
}

// Watcher watches one file.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	handler  Handler
	debounce time.Duration
	log      logger.Logger

	events   chan Event
	done     chan struct{}
	stopOnce sync.Once

	mu       sync.RWMutex
	watching bool
}

// New creates a watcher for path. Nothing is watched until Start.
func New(path string, handler Handler, opts Options) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrWatch,
			"Can't resolve path to watch: "+path, "")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.BufferSize <= 0 {
		opts.BufferSize = 64
	}
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrWatch,
			"Can't create file watcher",
			"Check the open file limit (ulimit -n)")
	}

	return &Watcher{
		path:     abs,
		watcher:  fw,
		handler:  handler,
		debounce: opts.Debounce,
		log:      opts.Logger,
		events:   make(chan Event, opts.BufferSize),
		done:     make(chan struct{}),
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Start begins watching. It returns once the watch is registered; events
// are processed in the background until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.watching {
		w.mu.Unlock()
		return nil
	}
	w.watching = true
	w.mu.Unlock()

	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		w.mu.Lock()
		w.watching = false
		w.mu.Unlock()
		return errors.WrapWithCode(err, errors.ErrWatch,
			"Can't watch "+dir,
			"Check the directory exists and is readable")
	}
	w.log.Debug("watching %s", w.path)

	go w.processEvents(ctx)
	go w.debounceLoop(ctx)
	return nil
}

// Stop stops watching. Pending changes that have not fired yet are dropped.
// Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.watcher.Close()

		w.mu.Lock()
		w.watching = false
		w.mu.Unlock()
	})
}

// IsWatching reports whether the watcher is active.
func (w *Watcher) IsWatching() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.watching
}

func (w *Watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			select {
			case w.events <- Event{Path: w.path, Op: event.Op, Time: time.Now()}:
			default:
				// Buffer full; a flush is already pending.
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("file watcher: %v", err)
		}
	}
}

// relevant filters out other files in the directory and chmod-only events.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

// debounceLoop fires the handler once the file has been quiet for the
// debounce window, with the last event of the burst.
func (w *Watcher) debounceLoop(ctx context.Context) {
	var (
		last   Event
		timer  *time.Timer
		timerC <-chan time.Time
	)
	stopTimer := func() {
		if timer != nil {
			timer.Stop()
			timer, timerC = nil, nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			stopTimer()
			return
		case <-w.done:
			stopTimer()
			return
		case ev := <-w.events:
			last = ev
			stopTimer()
			timer = time.NewTimer(w.debounce)
			timerC = timer.C
		case <-timerC:
			timer, timerC = nil, nil
			w.log.Debug("%s changed (%s)", last.Path, last.Op)
			if w.handler != nil {
				w.handler(last)
			}
		}
	}
}
