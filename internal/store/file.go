package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/vburojevic/wtw/internal/domain"
)

// FileFeed reads collector snapshots from an NDJSON file, one JSON record per
// line, re-reading the whole file on every write. Malformed lines are dropped
// with a warning, never failing the delivery.
type FileFeed struct {
	path      string
	logger    *zap.Logger
	watcher   *fsnotify.Watcher
	snapshots chan []domain.Snapshot
	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// NewFileFeed opens the feed and delivers the file's current content
// immediately. The file may not exist yet; it is picked up on creation.
func NewFileFeed(path string, logger *zap.Logger) (*FileFeed, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	// Watch the directory so renames and fresh creations are seen too.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	f := &FileFeed{
		path:      path,
		logger:    logger,
		watcher:   watcher,
		snapshots: make(chan []domain.Snapshot, 1),
		done:      make(chan struct{}),
	}

	deliver(f.snapshots, f.load())
	go f.run()
	return f, nil
}

// Snapshots returns the whole-set delivery channel.
func (f *FileFeed) Snapshots() <-chan []domain.Snapshot {
	return f.snapshots
}

// Close stops watching and closes the snapshot channel. Safe to call more
// than once; the release itself happens exactly once.
func (f *FileFeed) Close() error {
	f.closeOnce.Do(func() {
		close(f.done)
		f.closeErr = f.watcher.Close()
	})
	return f.closeErr
}

func (f *FileFeed) run() {
	defer close(f.snapshots)

	for {
		select {
		case <-f.done:
			return
		case event, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if event.Name != f.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			deliver(f.snapshots, f.load())
		case err, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			f.logger.Warn("snapshot file watch error", zap.String("path", f.path), zap.Error(err))
		}
	}
}

// load reads the entire file. A missing file is an empty set, not an error.
func (f *FileFeed) load() []domain.Snapshot {
	file, err := os.Open(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			f.logger.Warn("snapshot file unreadable", zap.String("path", f.path), zap.Error(err))
		}
		return []domain.Snapshot{}
	}
	defer file.Close()

	return DecodeNDJSON(file, f.logger)
}

// DecodeNDJSON decodes snapshots line by line, dropping records that fail to
// parse (malformed JSON or unparsable timestamps) with a warning each.
func DecodeNDJSON(r io.Reader, logger *zap.Logger) []domain.Snapshot {
	if logger == nil {
		logger = zap.NewNop()
	}

	snaps := []domain.Snapshot{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Bytes()
		if len(text) == 0 {
			continue
		}
		var snap domain.Snapshot
		if err := json.Unmarshal(text, &snap); err != nil {
			logger.Warn("dropping malformed snapshot", zap.Int("line", line), zap.Error(err))
			continue
		}
		snaps = append(snaps, snap)
	}
	if err := scanner.Err(); err != nil {
		logger.Warn("snapshot scan aborted", zap.Int("line", line), zap.Error(err))
	}
	return snaps
}
