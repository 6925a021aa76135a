// internal/browser/session/transport.go
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/xkilldash9x/framepoint/internal/browser/input"
)

// ErrNoDescriptors is returned for an empty dispatch request.
var ErrNoDescriptors = errors.New("no event descriptors to dispatch")

// CDPTransport delivers input descriptors to a target over CDP. Requests are
// serialised through a single slot: a sequence is never interleaved with
// another request, and once a request owns the slot it runs to completion
// or to its first failure regardless of the caller's context.
type CDPTransport struct {
	executor ActionExecutor
	slot     *semaphore.Weighted
	limiter  *rate.Limiter
	logger   *zap.Logger
}

var _ input.Transport = (*CDPTransport)(nil)

// TransportOption configures a CDPTransport.
type TransportOption func(*CDPTransport)

// WithRateLimit paces delivery to perSecond events with the given burst.
// A non-positive rate leaves delivery unpaced.
func WithRateLimit(perSecond float64, burst int) TransportOption {
	return func(t *CDPTransport) {
		if perSecond <= 0 {
			t.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		t.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// NewCDPTransport creates a transport that runs events through executor.
func NewCDPTransport(executor ActionExecutor, logger *zap.Logger, opts ...TransportOption) *CDPTransport {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &CDPTransport{
		executor: executor,
		slot:     semaphore.NewWeighted(1),
		logger:   logger.Named("dispatch"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Single delivers one descriptor.
func (t *CDPTransport) Single(ctx context.Context, d input.Descriptor) error {
	return t.Sequence(ctx, []input.Descriptor{d})
}

// Sequence delivers ds in order, one event per protocol call, and stops at
// the first failure. The error of that failure is returned as is.
func (t *CDPTransport) Sequence(ctx context.Context, ds []input.Descriptor) error {
	if len(ds) == 0 {
		return ErrNoDescriptors
	}
	actions := make([]chromedp.Action, len(ds))
	for i, d := range ds {
		a, err := d.Action()
		if err != nil {
			return fmt.Errorf("descriptor %d: %w", i, err)
		}
		actions[i] = a
	}

	// Waiting for the slot is the only point where the caller can still
	// back out.
	if err := t.slot.Acquire(ctx, 1); err != nil {
		return err
	}
	defer t.slot.Release(1)

	log := t.logger.With(
		zap.String("dispatch_id", uuid.NewString()),
		zap.Int("events", len(ds)),
	)
	start := time.Now()
	log.Debug("Dispatching input events.", zap.String("first", string(ds[0].Type)))

	runCtx := Detach(ctx)
	for i, action := range actions {
		if t.limiter != nil {
			if err := t.limiter.Wait(runCtx); err != nil {
				return fmt.Errorf("dispatch pacing: %w", err)
			}
		}
		if err := t.executor.RunBackgroundActions(runCtx, action); err != nil {
			log.Debug("Input event failed; abandoning the rest of the sequence.",
				zap.Int("index", i), zap.Error(err))
			return err
		}
	}

	log.Debug("Dispatch request completed.", zap.Duration("elapsed", time.Since(start)))
	return nil
}
