package host

import (
	"context"
	"time"
)

// debouncer holds back each path until it has been quiet for delay. Paths
// are timed independently, so a busy file never delays a quiet one.
type debouncer struct {
	ctx     context.Context
	delay   time.Duration
	seq     uint64
	pending map[string]pendingEvent

	// ready receives a key each time a path's timer fires. Keys from timers
	// that were superseded by a later event are rejected by take.
	ready chan debounceKey
}

type pendingEvent struct {
	ev  Event
	seq uint64
}

type debounceKey struct {
	path string
	seq  uint64
}

func newDebouncer(ctx context.Context, delay time.Duration) *debouncer {
	return &debouncer{
		ctx:     ctx,
		delay:   delay,
		pending: make(map[string]pendingEvent),
		ready:   make(chan debounceKey),
	}
}

// queue merges ev into the path's pending event and restarts its timer. It
// must be called from the goroutine that receives from ready.
func (d *debouncer) queue(path string, ev Event) {
	d.seq++
	p := d.pending[path]
	p.ev = merge(p.ev, ev)
	p.seq = d.seq
	d.pending[path] = p

	key := debounceKey{path: path, seq: p.seq}
	time.AfterFunc(d.delay, func() {
		select {
		case d.ready <- key:
		case <-d.ctx.Done():
		}
	})
}

// take returns the event for a fired key and forgets the path, or false
// when the key is stale.
func (d *debouncer) take(key debounceKey) (Event, bool) {
	p, ok := d.pending[key.path]
	if !ok || p.seq != key.seq {
		return "", false
	}
	delete(d.pending, key.path)
	return p.ev, true
}
