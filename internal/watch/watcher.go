package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultQuietPeriod is how long a file must stay unchanged before a
// change is reported.
const DefaultQuietPeriod = 150 * time.Millisecond

// ChangeEvent reports that the watched file was written.
type ChangeEvent struct {
	Path      string
	Timestamp time.Time
}

// FileWatcher watches one file. Editors that save by renaming a temporary
// file over the original are handled by watching the parent directory.
type FileWatcher struct {
	watcher     *fsnotify.Watcher
	path        string
	quietPeriod time.Duration
	events      chan ChangeEvent
	log         *slog.Logger
}

// NewFileWatcher creates a watcher for path. A zero quietPeriod selects
// DefaultQuietPeriod; a nil logger discards log output.
func NewFileWatcher(path string, quietPeriod time.Duration, logger *slog.Logger) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}
	if quietPeriod <= 0 {
		quietPeriod = DefaultQuietPeriod
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FileWatcher{
		watcher:     watcher,
		path:        abs,
		quietPeriod: quietPeriod,
		events:      make(chan ChangeEvent, 1),
		log:         logger,
	}, nil
}

// Start processes file system events until ctx is done, then closes the
// watcher and the Events channel.
func (fw *FileWatcher) Start(ctx context.Context) {
	fw.log.Info("watching graph file", "path", fw.path)
	go fw.processEvents(ctx)
}

// Events returns the channel of debounced changes. At most one change is
// pending; later changes coalesce into it.
func (fw *FileWatcher) Events() <-chan ChangeEvent {
	return fw.events
}

func (fw *FileWatcher) processEvents(ctx context.Context) {
	flushTimer := time.NewTimer(fw.quietPeriod)
	flushTimer.Stop()

	defer func() {
		flushTimer.Stop()
		fw.watcher.Close()
		close(fw.events)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			fw.log.Debug("graph file event", "op", event.Op.String())
			flushTimer.Reset(fw.quietPeriod)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.log.Warn("watcher error", "error", err)

		case <-flushTimer.C:
			select {
			case fw.events <- ChangeEvent{Path: fw.path, Timestamp: time.Now()}:
			default:
			}
		}
	}
}
