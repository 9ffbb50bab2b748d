package dashboard

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vburojevic/wtw/internal/domain"
)

type fakeFeed struct {
	ch     chan []domain.Snapshot
	closed atomic.Int32
}

func (f *fakeFeed) Snapshots() <-chan []domain.Snapshot { return f.ch }

func (f *fakeFeed) Close() error {
	f.closed.Add(1)
	return nil
}

func TestWatcherPublishesOnDeliveryAndTick(t *testing.T) {
	mock := clock.NewMock()
	feed := &fakeFeed{ch: make(chan []domain.Snapshot, 1)}
	w := NewWatcher(feed, mock, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()

	feed.ch <- []domain.Snapshot{{Timestamp: mock.Now()}}

	var view View
	select {
	case view = <-w.Views():
	case <-time.After(2 * time.Second):
		t.Fatal("no view after feed delivery")
	}
	assert.True(t, view.Online)
	assert.Equal(t, 60, view.Countdown)

	// One second of wall clock: same set, countdown ticks down.
	mock.Add(time.Second)
	view = waitForView(t, w, func(v View) bool { return v.Countdown == 59 })
	assert.True(t, view.Online)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}

	// Teardown released the feed exactly once and closed the view stream.
	assert.Equal(t, int32(1), feed.closed.Load())
	for {
		if _, ok := <-w.Views(); !ok {
			break
		}
	}
}

func TestWatcherCountdownResetsOnFreshSnapshot(t *testing.T) {
	mock := clock.NewMock()
	feed := &fakeFeed{ch: make(chan []domain.Snapshot, 1)}
	w := NewWatcher(feed, mock, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	first := mock.Now()
	feed.ch <- []domain.Snapshot{{Timestamp: first}}
	view := <-w.Views()
	require.Equal(t, 60, view.Countdown)

	mock.Add(10 * time.Second)
	waitForView(t, w, func(v View) bool { return v.Countdown == 50 })

	// A fresh snapshot resets the countdown to the full window.
	feed.ch <- []domain.Snapshot{
		{Timestamp: first},
		{Timestamp: first.Add(10 * time.Second)},
	}
	waitForView(t, w, func(v View) bool { return v.Countdown == 60 })
}

// waitForView reads views until one satisfies the predicate; intermediate
// views from in-flight ticks are allowed.
func waitForView(t *testing.T, w *Watcher, ok func(View) bool) View {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case view := <-w.Views():
			if ok(view) {
				return view
			}
		case <-deadline:
			t.Fatal("expected view never arrived")
		}
	}
}

func TestWatcherStopsWhenFeedEnds(t *testing.T) {
	feed := &fakeFeed{ch: make(chan []domain.Snapshot)}
	w := NewWatcher(feed, clock.NewMock(), nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(context.Background())
	}()

	close(feed.ch)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on feed end")
	}
}
