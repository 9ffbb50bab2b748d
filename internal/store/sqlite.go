package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/vburojevic/wtw/internal/domain"
)

// DefaultPollInterval is how often the sqlite feed re-reads the table when
// the caller does not choose an interval.
const DefaultPollInterval = 5 * time.Second

// SQLiteFeed polls a collector-owned sqlite database. The collector writes
// one row per snapshot into system_logs(id, timestamp, payload) where payload
// is the full JSON record; this feed only ever reads.
type SQLiteFeed struct {
	db        *sql.DB
	logger    *zap.Logger
	ticker    *clock.Ticker
	snapshots chan []domain.Snapshot
	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// NewSQLiteFeed opens the database and starts polling. The initial set is
// delivered before the first tick.
func NewSQLiteFeed(path string, interval time.Duration, c clock.Clock, logger *zap.Logger) (*SQLiteFeed, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if c == nil {
		c = clock.New()
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	// modernc.org/sqlite registers itself as "sqlite", not "sqlite3".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}

	f := &SQLiteFeed{
		db:        db,
		logger:    logger,
		ticker:    c.Ticker(interval),
		snapshots: make(chan []domain.Snapshot, 1),
		done:      make(chan struct{}),
	}

	deliver(f.snapshots, f.load())
	go f.run()
	return f, nil
}

// Snapshots returns the whole-set delivery channel.
func (f *SQLiteFeed) Snapshots() <-chan []domain.Snapshot {
	return f.snapshots
}

// Close stops polling and closes the database exactly once.
func (f *SQLiteFeed) Close() error {
	f.closeOnce.Do(func() {
		close(f.done)
		f.ticker.Stop()
		f.closeErr = f.db.Close()
	})
	return f.closeErr
}

func (f *SQLiteFeed) run() {
	defer close(f.snapshots)

	for {
		select {
		case <-f.done:
			return
		case <-f.ticker.C:
			deliver(f.snapshots, f.load())
		}
	}
}

// load reads every row ordered by timestamp. Rows whose payload fails to
// parse are dropped with a warning; a query failure degrades to an empty set.
func (f *SQLiteFeed) load() []domain.Snapshot {
	rows, err := f.db.Query(`SELECT id, payload FROM system_logs ORDER BY timestamp`)
	if err != nil {
		f.logger.Warn("snapshot query failed", zap.Error(err))
		return []domain.Snapshot{}
	}
	defer rows.Close()

	snaps := []domain.Snapshot{}
	for rows.Next() {
		var id int64
		var payload string
		if err := rows.Scan(&id, &payload); err != nil {
			f.logger.Warn("snapshot row unreadable", zap.Error(err))
			continue
		}
		var snap domain.Snapshot
		if err := json.Unmarshal([]byte(payload), &snap); err != nil {
			f.logger.Warn("dropping malformed snapshot", zap.Int64("id", id), zap.Error(err))
			continue
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		f.logger.Warn("snapshot scan aborted", zap.Error(err))
	}
	return snaps
}
