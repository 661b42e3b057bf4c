package plugin

import (
	"context"
	"errors"
	"sync"
)

var errPanicked = errors.New("generation run panicked")

// runGate serialises generation for one job. A trigger that arrives while a
// run is in flight does not start a second writer: it marks one follow-up
// run as pending and waits for it. Any number of such triggers coalesce
// into that single follow-up.
type runGate struct {
	mu      sync.Mutex
	current *cycle
	pending bool
}

type cycle struct {
	done chan struct{}
	err  error
}

// Do runs fn, or joins the in-flight cycle. It returns the error of the last
// run in the cycle, which always started after this call. The runs
// themselves are not cancelled by ctx; a waiter whose ctx ends stops
// waiting.
func (g *runGate) Do(ctx context.Context, fn func(context.Context) error) error {
	g.mu.Lock()
	if c := g.current; c != nil {
		g.pending = true
		g.mu.Unlock()
		select {
		case <-c.done:
			return c.err
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	c := &cycle{done: make(chan struct{})}
	g.current = c
	g.mu.Unlock()

	// A run that panics still ends the cycle; its waiters get errPanicked.
	c.err = errPanicked
	defer func() {
		g.mu.Lock()
		g.current = nil
		g.pending = false
		g.mu.Unlock()
		close(c.done)
	}()

	runCtx := context.WithoutCancel(ctx)
	for {
		err := fn(runCtx)

		g.mu.Lock()
		if g.pending {
			g.pending = false
			g.mu.Unlock()
			continue
		}
		c.err = err
		g.mu.Unlock()
		return err
	}
}
