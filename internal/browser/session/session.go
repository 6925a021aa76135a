// internal/browser/session/session.go
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xkilldash9x/framepoint/internal/browser/geometry"
	"github.com/xkilldash9x/framepoint/internal/browser/input"
	"github.com/xkilldash9x/framepoint/internal/browser/snapshot"
	"github.com/xkilldash9x/framepoint/internal/config"
)

// ErrSessionClosed is returned by every operation after Close.
var ErrSessionClosed = errors.New("session is closed")

// Session is one attached page target. It owns the input pipeline for that
// target and captures geometry on demand.
type Session struct {
	id     string
	ctx    context.Context
	cancel context.CancelFunc
	logger *zap.Logger
	cfg    config.Interface

	// runActionsFunc executes actions on the target; chromedp.Run outside tests.
	runActionsFunc func(ctx context.Context, actions ...chromedp.Action) error

	transport *CDPTransport
	bridge    *input.Bridge

	onClose func()

	mu       sync.Mutex
	isClosed bool
}

var _ ActionExecutor = (*Session)(nil)

// NewSession wraps ctx, a chromedp context already bound to a target.
// cancel releases that context on Close and may be nil.
func NewSession(ctx context.Context, cancel context.CancelFunc, cfg config.Interface, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.NewString()
	s := &Session{
		id:             id,
		ctx:            ctx,
		cancel:         cancel,
		logger:         logger.With(zap.String("session_id", id)),
		cfg:            cfg,
		runActionsFunc: chromedp.Run,
	}

	dispatch := cfg.Dispatch()
	s.transport = NewCDPTransport(s, s.logger, WithRateLimit(dispatch.MaxEventsPerSecond, dispatch.Burst))
	builder := input.NewBuilder(
		input.WithPointMapper(input.NewViewportMapper(s)),
		input.WithBuilderLogger(s.logger.Named("builder")),
	)
	s.bridge = input.NewBridge(s.transport, builder, s.logger)
	return s
}

// ID returns the session's unique id.
func (s *Session) ID() string { return s.id }

// GetContext returns the target context.
func (s *Session) GetContext() context.Context { return s.ctx }

// SetOnClose registers a callback run once by Close.
func (s *Session) SetOnClose(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onClose = fn
}

// Close releases the target context. It is safe to call more than once.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.isClosed {
		s.mu.Unlock()
		return nil
	}
	s.isClosed = true
	onClose := s.onClose
	s.mu.Unlock()

	s.logger.Debug("Closing session.")
	if s.cancel != nil {
		s.cancel()
	}
	if onClose != nil {
		onClose()
	}
	return nil
}

func (s *Session) closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isClosed
}

// RunActions runs actions under ctx combined with the target context.
func (s *Session) RunActions(ctx context.Context, actions ...chromedp.Action) error {
	if s.closed() {
		return ErrSessionClosed
	}
	runCtx, cancel := CombineContext(s.ctx, ctx)
	defer cancel()
	return s.runActionsFunc(runCtx, actions...)
}

// RunBackgroundActions runs actions that ignore ctx's cancellation. The
// target context still bounds them.
func (s *Session) RunBackgroundActions(ctx context.Context, actions ...chromedp.Action) error {
	if s.closed() {
		return ErrSessionClosed
	}
	runCtx, cancel := CombineContext(s.ctx, Detach(ctx))
	defer cancel()
	return s.runActionsFunc(runCtx, actions...)
}

// Input returns the dispatch bridge bound to this target.
func (s *Session) Input() *input.Bridge { return s.bridge }

// Snapshot captures the current DOM and layout of every same-process frame.
func (s *Session) Snapshot(ctx context.Context) (*snapshot.Snapshot, error) {
	return snapshot.Capture(ctx, s, snapshot.Options{
		ScrollbarSize: s.cfg.Geometry().ScrollbarSize,
		Logger:        s.logger,
	})
}

// Resolver captures a snapshot and returns a resolver over it. The resolver
// answers from that capture only; take a new one after the page changes.
func (s *Session) Resolver(ctx context.Context) (*geometry.Resolver, *snapshot.Snapshot, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	return s.resolverFor(snap), snap, nil
}

func (s *Session) resolverFor(snap *snapshot.Snapshot) *geometry.Resolver {
	return geometry.NewResolver(snap, snap.Top(),
		geometry.WithFramelessIFrame(s.cfg.Geometry().FramelessIFrame),
		geometry.WithLogger(s.logger),
	)
}
