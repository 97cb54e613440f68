package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/civichub/internal/logging"
)

// Background runs fire-and-forget remote writes.
//
// A task runs on a context detached from the caller's cancellation, so it
// cannot be cancelled and has no deadline beyond what the gateway applies.
// Its error is logged and otherwise ignored; callers that need the outcome
// must do the work inline instead.
type Background struct {
	wg  sync.WaitGroup
	log logging.Logger
}

// NewBackground returns a runner that logs under module=background.
func NewBackground(log logging.Logger) *Background {
	if log == nil {
		log = logging.Discard()
	}
	return &Background{log: log.With("module", "background")}
}

// Go starts fn. name identifies the task in logs.
func (b *Background) Go(ctx context.Context, name string, fn func(ctx context.Context) error) {
	ctx = context.WithoutCancel(ctx)
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer func() {
			if p := recover(); p != nil {
				b.log.Error(ctx, "background task panicked", "task", name, "panic", fmt.Sprint(p))
			}
		}()
		if err := fn(ctx); err != nil {
			b.log.Warn(ctx, "background task failed", "task", name, "error", err)
		}
	}()
}

// Wait blocks until every started task has finished.
func (b *Background) Wait() {
	b.wg.Wait()
}
