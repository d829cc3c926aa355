// Package engine serializes layout requests and user commands.
//
// Adapters (the line protocol, the HTTP API, the Redis channel, the TUI) may
// run on any goroutine. They submit work through [Engine.Layout],
// [Engine.Command], [Engine.Snapshot] and [Engine.Tree]; [Engine.Run] executes
// that work one item at a time on a single goroutine. A command that returns
// before a layout request is submitted is therefore always visible to it.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bsptile/pkg/bsp"
	"github.com/matzehuels/bsptile/pkg/command"
	"github.com/matzehuels/bsptile/pkg/config"
	bsperrors "github.com/matzehuels/bsptile/pkg/errors"
	"github.com/matzehuels/bsptile/pkg/observability"
)

// Engine owns the config store and runs every event against it in order.
type Engine struct {
	store  *config.Store
	logger *log.Logger

	reqs     chan request
	stopped  chan struct{}
	stopOnce sync.Once
}

type request struct {
	ctx  context.Context
	fn   func(ctx context.Context)
	done chan struct{}
}

// New returns an Engine around store. A nil logger uses log.Default().
func New(store *config.Store, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		store:   store,
		logger:  logger,
		reqs:    make(chan request),
		stopped: make(chan struct{}),
	}
}

// Run processes events until ctx is done. It must be called exactly once.
// Requests submitted after Run returns fail with UNAVAILABLE.
func (e *Engine) Run(ctx context.Context) error {
	defer e.stopOnce.Do(func() { close(e.stopped) })

	e.logger.Debug("engine started", "config", e.store.Snapshot())
	for {
		select {
		case <-ctx.Done():
			e.logger.Debug("engine stopped")
			return ctx.Err()
		case req := <-e.reqs:
			req.fn(req.ctx)
			close(req.done)
		}
	}
}

// Done is closed once Run has returned.
func (e *Engine) Done() <-chan struct{} {
	return e.stopped
}

// Layout computes the geometry of n windows on output using the current
// configuration. result[i] belongs to window i.
func (e *Engine) Layout(ctx context.Context, n int, output bsp.Rect) ([]bsp.Rect, error) {
	if err := bsperrors.ValidateWindowCount(n); err != nil {
		return nil, err
	}

	var rects []bsp.Rect
	err := e.do(ctx, func(ctx context.Context) {
		start := time.Now()
		rects = bsp.Partition(n, output, e.store.Snapshot())
		elapsed := time.Since(start)

		observability.Layout().OnLayout(ctx, n, output.Width, output.Height, elapsed)
		e.logger.Debug("generated layout", "windows", n, "output", output, "duration", elapsed)
	})
	if err != nil {
		return nil, err
	}
	return rects, nil
}

// Tree returns the split tree behind Layout for the same arguments.
func (e *Engine) Tree(ctx context.Context, n int, output bsp.Rect) (*bsp.Node, error) {
	if err := bsperrors.ValidateWindowCount(n); err != nil {
		return nil, err
	}

	var root *bsp.Node
	err := e.do(ctx, func(context.Context) {
		root = bsp.Build(n, output, e.store.Snapshot())
	})
	return root, err
}

// Command parses line and applies it atomically. A rejected command leaves
// the configuration untouched.
func (e *Engine) Command(ctx context.Context, line string) error {
	var cmdErr error
	err := e.do(ctx, func(ctx context.Context) {
		batch, err := command.Apply(e.store, line)
		observability.Command().OnCommand(ctx, line, batch.String(), err)
		if err != nil {
			e.logger.Warn("rejected command", "command", line, "err", bsperrors.UserMessage(err))
			cmdErr = err
			return
		}
		e.logger.Info("applied command", "command", batch.String())
	})
	if err != nil {
		return err
	}
	return cmdErr
}

// Snapshot returns a copy of the current configuration.
func (e *Engine) Snapshot(ctx context.Context) (config.Config, error) {
	var cfg config.Config
	err := e.do(ctx, func(context.Context) {
		cfg = e.store.Snapshot()
	})
	return cfg, err
}

// do hands fn to the event loop and waits for it to finish. Once enqueued,
// fn always runs to completion; it never blocks.
func (e *Engine) do(ctx context.Context, fn func(ctx context.Context)) error {
	req := request{ctx: ctx, fn: fn, done: make(chan struct{})}
	select {
	case e.reqs <- req:
	case <-ctx.Done():
		return ctx.Err()
	case <-e.stopped:
		return bsperrors.New(bsperrors.ErrCodeUnavailable, "engine is not running")
	}
	<-req.done
	return nil
}
