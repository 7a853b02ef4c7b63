// Package watch reports changes to a single file made by other processes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 250 * time.Millisecond

// Event is delivered once per burst of writes to the watched file.
type Event struct {
	Path string
	At   time.Time
}

// FileWatcher watches the parent directory so atomic replaces (write to a
// temp file, then rename) are seen as changes to the target.
type FileWatcher struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger
	watcher  *fsnotify.Watcher
	out      chan Event
	done     chan struct{}
	once     sync.Once
}

func New(ctx context.Context, path string, debounce time.Duration, logger *slog.Logger) (*FileWatcher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watch path: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	fw := &FileWatcher{
		path:     abs,
		debounce: debounce,
		logger:   logger,
		watcher:  w,
		out:      make(chan Event, 1),
		done:     make(chan struct{}),
	}
	go fw.loop(ctx)
	return fw, nil
}

// C is closed when the watcher stops.
func (fw *FileWatcher) C() <-chan Event {
	return fw.out
}

func (fw *FileWatcher) Close() error {
	var err error
	fw.once.Do(func() {
		err = fw.watcher.Close()
		<-fw.done
	})
	return err
}

func (fw *FileWatcher) loop(ctx context.Context) {
	defer close(fw.done)
	defer close(fw.out)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			stopTimer(timer)
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				stopTimer(timer)
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			timer = resetTimer(timer, fw.debounce)
			fire = timer.C
		case <-fire:
			fire = nil
			select {
			case fw.out <- Event{Path: fw.path, At: time.Now().UTC()}:
			default:
				// an undelivered event already covers this change
			}
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				stopTimer(timer)
				return
			}
			fw.logger.Warn("scripts watcher error", "path", fw.path, "err", err)
		}
	}
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
