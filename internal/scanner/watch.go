package scanner

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Sla0ui/linkrisk/internal/models"
	"github.com/fsnotify/fsnotify"
)

// ScanFunc receives the outcome of each scan of a watched file
type ScanFunc func(records []*models.ScanRecord, err error)

// Watch scans the URL file at path once, then again after every write or
// create event, until ctx ends. Bursts of events within the configured
// debounce window produce a single rescan.
func (s *Scanner) Watch(ctx context.Context, path string, fn ScanFunc) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// editors often replace the file, so watch its directory
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	s.scanFile(ctx, target, fn)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || name != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				pending = time.After(s.config.WatchDebounce)
			}

		case <-pending:
			pending = nil
			s.scanFile(ctx, target, fn)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fn(nil, fmt.Errorf("watch error: %w", err))
		}
	}
}

func (s *Scanner) scanFile(ctx context.Context, path string, fn ScanFunc) {
	urls, err := ReadURLsFromFile(path)
	if err != nil {
		fn(nil, err)
		return
	}
	fn(s.ScanURLs(ctx, urls))
}
