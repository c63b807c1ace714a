package model

import (
	"context"
	"fmt"
	"sync"

	"loanrisk/pkg/platform/sentinel"
)

// LoadFunc produces the artifact a Handle serves.
type LoadFunc func(ctx context.Context) (*Artifact, error)

// Handle is the process-wide, read-only reference to the loaded artifact.
// The loader runs at most once; its artifact or its error is cached for the
// lifetime of the process. Call Get during startup so the load cost and any
// failure surface before the first request.
type Handle struct {
	once     sync.Once
	load     LoadFunc
	observe  func(*Artifact, error)
	artifact *Artifact
	err      error
}

// HandleOption configures a Handle.
type HandleOption func(*Handle)

// WithLoadObserver is called once with the load outcome (metrics, logging).
func WithLoadObserver(fn func(*Artifact, error)) HandleOption {
	return func(h *Handle) {
		h.observe = fn
	}
}

// NewHandle wraps load. Nothing is loaded until the first Get.
func NewHandle(load LoadFunc, opts ...HandleOption) *Handle {
	h := &Handle{load: load}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// NewStaticHandle serves an already loaded artifact.
func NewStaticHandle(a *Artifact) *Handle {
	return NewHandle(func(context.Context) (*Artifact, error) { return a, nil })
}

// Get returns the artifact, loading it on first use with the caller's context.
func (h *Handle) Get(ctx context.Context) (*Artifact, error) {
	h.once.Do(func() {
		h.artifact, h.err = h.safeLoad(ctx)
		if h.observe != nil {
			h.observe(h.artifact, h.err)
		}
	})
	return h.artifact, h.err
}

// safeLoad turns a panicking or empty load into a cached error so Get never
// hands out a nil artifact.
func (h *Handle) safeLoad(ctx context.Context) (a *Artifact, err error) {
	defer func() {
		if r := recover(); r != nil {
			a, err = nil, fmt.Errorf("%w: model loader panicked: %v", sentinel.ErrInvalidState, r)
		}
	}()
	a, err = h.load(ctx)
	if err == nil && a == nil {
		return nil, fmt.Errorf("%w: model loader returned no artifact", sentinel.ErrInvalidState)
	}
	return a, err
}
