package client

import (
	"context"
	"errors"
	"sync"
)

// ViewScope ties requests to the lifetime of a screen. Once Close returns,
// no result fetched through the scope is applied.
type ViewScope struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

func NewViewScope(parent context.Context) *ViewScope {
	ctx, cancel := context.WithCancel(parent)
	return &ViewScope{ctx: ctx, cancel: cancel}
}

func (s *ViewScope) Context() context.Context { return s.ctx }

// Close cancels in-flight requests. It is safe to call more than once.
func (s *ViewScope) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.cancel()
}

// Load runs fetch under the scope and hands the result to apply, unless the
// scope was closed in the meantime, in which case it returns ErrCancelled.
func Load[T any](s *ViewScope, fetch func(ctx context.Context) (T, error), apply func(T)) error {
	v, err := fetch(s.ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrCancelled
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return ErrCancelled
		}
		return err
	}
	apply(v)
	return nil
}
