// Package broadcast implements the per-show seat update fan-out.
// Clients subscribe to exactly one show at a time; whenever a sale or
// schedule change touches that show's inventory, every subscriber
// receives a fresh full snapshot of the seat map.
package broadcast

import (
	"context"
	"sync"
)

// SnapshotFunc produces the current seat snapshot for a show.  The hub
// calls it under its publish lock so that subscribers never observe
// snapshots out of order.
type SnapshotFunc func(ctx context.Context, showID string) (interface{}, error)

// Update is what a subscriber receives: the show it subscribed to and
// the full seat snapshot at publish time.
type Update struct {
	ShowID   string
	Snapshot interface{}
}

// Hub routes seat snapshots to the connections watching each show.
// A connection is identified by an opaque connection ID and watches at
// most one show; subscribing to a new show implicitly leaves the old
// one.  Delivery is best-effort: a subscriber that cannot keep up has
// its pending update dropped rather than stalling the publisher, and
// the next publish will carry a fresher snapshot anyway.
type Hub struct {
	snapshot SnapshotFunc

	mu    sync.Mutex
	shows map[string]map[string]chan Update // show id -> conn id -> delivery channel
	conns map[string]string                 // conn id -> show id currently watched
}

// NewHub returns a Hub that builds snapshots with fn.
func NewHub(fn SnapshotFunc) *Hub {
	return &Hub{
		snapshot: fn,
		shows:    make(map[string]map[string]chan Update),
		conns:    make(map[string]string),
	}
}

// Subscribe registers connID as a watcher of showID and returns the
// channel its updates arrive on.  If the connection was watching
// another show it is moved; the previously returned channel is closed.
func (h *Hub) Subscribe(connID, showID string) <-chan Update {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.detach(connID)

	ch := make(chan Update, 1)
	watchers, ok := h.shows[showID]
	if !ok {
		watchers = make(map[string]chan Update)
		h.shows[showID] = watchers
	}
	watchers[connID] = ch
	h.conns[connID] = showID
	return ch
}

// Unsubscribe removes the connection and closes its channel.  Safe to
// call for an unknown connection.
func (h *Hub) Unsubscribe(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.detach(connID)
}

// detach removes connID from whatever show it watches.  Caller holds mu.
func (h *Hub) detach(connID string) {
	showID, ok := h.conns[connID]
	if !ok {
		return
	}
	delete(h.conns, connID)
	watchers := h.shows[showID]
	if ch, ok := watchers[connID]; ok {
		close(ch)
		delete(watchers, connID)
	}
	if len(watchers) == 0 {
		delete(h.shows, showID)
	}
}

// Publish builds a fresh snapshot for showID and fans it out to every
// watcher.  Shows with no watchers skip the snapshot call entirely.
// A watcher whose buffer is full has its stale pending update replaced
// with the new one.
func (h *Hub) Publish(ctx context.Context, showID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	watchers := h.shows[showID]
	if len(watchers) == 0 {
		return nil
	}
	snap, err := h.snapshot(ctx, showID)
	if err != nil {
		return err
	}
	u := Update{ShowID: showID, Snapshot: snap}
	for _, ch := range watchers {
		select {
		case ch <- u:
		default:
			// Drain the stale update and replace it.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- u:
			default:
			}
		}
	}
	return nil
}

// Watchers reports how many connections are subscribed to showID.
func (h *Hub) Watchers(showID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.shows[showID])
}
