package dashboard

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/vburojevic/wtw/internal/domain"
	"github.com/vburojevic/wtw/internal/liveness"
	"github.com/vburojevic/wtw/internal/store"
)

// Watcher drives recomputation from two inputs: whole-set deliveries from the
// snapshot feed and a one-second clock tick that refreshes the now-dependent
// fields (countdown, open session end, live playtime). Its lifetime is bound
// to the context passed to Run; teardown stops the ticker and releases the
// feed exactly once.
type Watcher struct {
	feed      store.Feed
	clock     clock.Clock
	logger    *zap.Logger
	countdown *liveness.Countdown
	views     chan View

	snaps      []domain.Snapshot
	skewWarned bool
}

// NewWatcher wires a watcher to a feed. A nil clock means wall clock.
func NewWatcher(feed store.Feed, c clock.Clock, logger *zap.Logger) *Watcher {
	if c == nil {
		c = clock.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		feed:      feed,
		clock:     c,
		logger:    logger,
		countdown: liveness.NewCountdown(c),
		views:     make(chan View, 1),
	}
}

// Views returns the view stream. Only the newest undelivered view is
// retained; the channel closes when Run returns.
func (w *Watcher) Views() <-chan View {
	return w.views
}

// Run recomputes until the context is cancelled or the feed ends.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := w.clock.Ticker(time.Second)
	defer ticker.Stop()
	defer w.feed.Close()
	defer close(w.views)

	for {
		select {
		case <-ctx.Done():
			return nil
		case snaps, ok := <-w.feed.Snapshots():
			if !ok {
				return nil
			}
			w.snaps = snaps
			w.skewWarned = false
			w.publish()
		case <-ticker.C:
			w.publish()
		}
	}
}

func (w *Watcher) publish() {
	now := w.clock.Now()
	view := Compute(w.snaps, now)

	if !w.skewWarned && view.LastSeen.After(now) {
		// A future timestamp is a valid ordering key, so segmentation is
		// left alone; it is still worth flagging once per delivery.
		w.logger.Warn("snapshot timestamp ahead of wall clock",
			zap.Time("timestamp", view.LastSeen),
			zap.Time("now", now))
		w.skewWarned = true
	}

	w.countdown.Observe(view.LastSeen)
	view.Countdown = w.countdown.Seconds()

	for {
		select {
		case w.views <- view:
			return
		default:
			select {
			case <-w.views:
			default:
			}
		}
	}
}
