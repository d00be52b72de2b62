package broadcast

import (
	"context"
	"errors"
	"testing"
	"time"
)

func countingSnapshot() (SnapshotFunc, *int) {
	calls := 0
	fn := func(ctx context.Context, showID string) (interface{}, error) {
		calls++
		return map[string]interface{}{"show": showID, "serial": calls}, nil
	}
	return fn, &calls
}

func recv(t *testing.T, ch <-chan Update) Update {
	t.Helper()
	select {
	case u, ok := <-ch:
		if !ok {
			t.Fatal("channel closed unexpectedly")
		}
		return u
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for update")
	}
	return Update{}
}

func TestPublishReachesSubscribers(t *testing.T) {
	fn, _ := countingSnapshot()
	h := NewHub(fn)

	a := h.Subscribe("conn-a", "show-1")
	b := h.Subscribe("conn-b", "show-1")

	if err := h.Publish(context.Background(), "show-1"); err != nil {
		t.Fatalf("publish: %v", err)
	}

	for _, ch := range []<-chan Update{a, b} {
		u := recv(t, ch)
		if u.ShowID != "show-1" {
			t.Fatalf("got update for %q, want show-1", u.ShowID)
		}
	}
}

func TestPublishOnlyTargetShow(t *testing.T) {
	fn, _ := countingSnapshot()
	h := NewHub(fn)

	one := h.Subscribe("conn-1", "show-1")
	two := h.Subscribe("conn-2", "show-2")

	if err := h.Publish(context.Background(), "show-1"); err != nil {
		t.Fatalf("publish: %v", err)
	}

	recv(t, one)
	select {
	case u := <-two:
		t.Fatalf("show-2 subscriber got unexpected update: %+v", u)
	default:
	}
}

func TestPublishWithoutWatchersSkipsSnapshot(t *testing.T) {
	fn, calls := countingSnapshot()
	h := NewHub(fn)

	if err := h.Publish(context.Background(), "show-1"); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if *calls != 0 {
		t.Fatalf("snapshot called %d times for watcherless show, want 0", *calls)
	}
}

func TestSubscribeMovesConnection(t *testing.T) {
	fn, _ := countingSnapshot()
	h := NewHub(fn)

	old := h.Subscribe("conn-a", "show-1")
	h.Subscribe("conn-a", "show-2")

	if _, ok := <-old; ok {
		t.Fatal("old channel should be closed after resubscribe")
	}
	if n := h.Watchers("show-1"); n != 0 {
		t.Fatalf("show-1 has %d watchers after move, want 0", n)
	}
	if n := h.Watchers("show-2"); n != 1 {
		t.Fatalf("show-2 has %d watchers, want 1", n)
	}
}

func TestUnsubscribe(t *testing.T) {
	fn, _ := countingSnapshot()
	h := NewHub(fn)

	ch := h.Subscribe("conn-a", "show-1")
	h.Unsubscribe("conn-a")
	h.Unsubscribe("conn-a") // idempotent

	if _, ok := <-ch; ok {
		t.Fatal("channel should be closed after unsubscribe")
	}
	if n := h.Watchers("show-1"); n != 0 {
		t.Fatalf("watchers = %d, want 0", n)
	}
}

func TestSlowSubscriberGetsLatestSnapshot(t *testing.T) {
	fn, _ := countingSnapshot()
	h := NewHub(fn)

	ch := h.Subscribe("conn-a", "show-1")

	// Publish twice without the subscriber reading; the second
	// snapshot must displace the first.
	if err := h.Publish(context.Background(), "show-1"); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := h.Publish(context.Background(), "show-1"); err != nil {
		t.Fatalf("publish: %v", err)
	}

	u := recv(t, ch)
	snap := u.Snapshot.(map[string]interface{})
	if serial := snap["serial"].(int); serial != 2 {
		t.Fatalf("got snapshot serial %d, want latest (2)", serial)
	}
}

func TestPublishSnapshotError(t *testing.T) {
	boom := errors.New("snapshot failed")
	h := NewHub(func(ctx context.Context, showID string) (interface{}, error) {
		return nil, boom
	})
	ch := h.Subscribe("conn-a", "show-1")

	if err := h.Publish(context.Background(), "show-1"); !errors.Is(err, boom) {
		t.Fatalf("publish error = %v, want %v", err, boom)
	}
	select {
	case u := <-ch:
		t.Fatalf("subscriber got update despite snapshot error: %+v", u)
	default:
	}
}
