package lexicon

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/heartmarshall/zhdict/internal/domain"
)

// State is the lifecycle of a Gate.
type State int32

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

// BuildFunc constructs the engine guarded by a Gate.
type BuildFunc func(ctx context.Context) (*Engine, error)

// Gate runs an engine build exactly once. Concurrent callers of Initialize
// wait for the caller that is building, or give up when their own context
// ends. A failed or panicking build returns the gate to StateUninitialized
// so a later call can retry. Once ready, Engine is a lock-free read.
type Gate struct {
	mu       sync.Mutex
	state    State
	inflight chan struct{} // closed when the running build attempt ends
	ready    atomic.Pointer[Engine]
	builds   atomic.Int64
}

// Initialize builds the engine if no build has succeeded yet. Calls after
// success are no-ops returning the ready engine.
func (g *Gate) Initialize(ctx context.Context, build BuildFunc) (*Engine, error) {
	for {
		if e := g.ready.Load(); e != nil {
			return e, nil
		}

		g.mu.Lock()
		switch g.state {
		case StateReady:
			g.mu.Unlock()
			return g.ready.Load(), nil
		case StateInitializing:
			done := g.inflight
			g.mu.Unlock()
			select {
			case <-done:
				continue
			case <-ctx.Done():
				return nil, fmt.Errorf("lexicon: wait for initialization: %w", ctx.Err())
			}
		}
		done := make(chan struct{})
		g.state, g.inflight = StateInitializing, done
		g.mu.Unlock()

		return g.run(ctx, build, done)
	}
}

func (g *Gate) run(ctx context.Context, build BuildFunc, done chan struct{}) (*Engine, error) {
	g.builds.Add(1)
	defer func() {
		if r := recover(); r != nil {
			g.finish(nil, done)
			panic(r)
		}
	}()

	engine, err := build(ctx)
	if err == nil && engine == nil {
		err = fmt.Errorf("build returned no engine: %w", domain.ErrInvalidDataset)
	}
	if err != nil {
		g.finish(nil, done)
		return nil, err
	}
	g.finish(engine, done)
	return engine, nil
}

// finish publishes the outcome of a build attempt and wakes its waiters.
func (g *Gate) finish(engine *Engine, done chan struct{}) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if engine != nil {
		g.ready.Store(engine)
		g.state = StateReady
	} else {
		g.state = StateUninitialized
	}
	g.inflight = nil
	close(done)
}

// State reports the current lifecycle state.
func (g *Gate) State() State {
	if g.ready.Load() != nil {
		return StateReady
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Builds reports how many times a build function was invoked.
func (g *Gate) Builds() int64 { return g.builds.Load() }

// Engine returns the ready engine. Calling it before Initialize has
// succeeded is a programming error and panics with ErrUninitialized.
func (g *Gate) Engine() *Engine {
	e := g.ready.Load()
	if e == nil {
		panic(fmt.Errorf("lexicon: %w: call Initialize first", domain.ErrUninitialized))
	}
	return e
}

// Current returns the ready engine, or ErrUninitialized while the gate is
// not ready. It never panics.
func (g *Gate) Current() (*Engine, error) {
	if e := g.ready.Load(); e != nil {
		return e, nil
	}
	return nil, fmt.Errorf("lexicon: %w (state %s)", domain.ErrUninitialized, g.State())
}
