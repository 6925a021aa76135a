// internal/browser/input/bridge.go
package input

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xkilldash9x/framepoint/api/schemas"
)

// Transport delivers descriptors to the browser. Implementations guarantee
// that two calls never interleave and that a sequence is delivered in order,
// one event at a time, stopping at the first failure.
type Transport interface {
	Single(ctx context.Context, d Descriptor) error
	Sequence(ctx context.Context, ds []Descriptor) error
}

// Bridge builds descriptors for logical actions and hands them to a
// transport. It holds no state beyond its collaborators.
type Bridge struct {
	transport Transport
	builder   *Builder
	logger    *zap.Logger
}

// NewBridge creates a Bridge. A nil builder gets a default one.
func NewBridge(transport Transport, builder *Builder, logger *zap.Logger) *Bridge {
	if builder == nil {
		builder = NewBuilder()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bridge{
		transport: transport,
		builder:   builder,
		logger:    logger.Named("input"),
	}
}

// Builder exposes the bridge's builder so callers can assemble sequences.
func (b *Bridge) Builder() *Builder {
	return b.builder
}

// MouseDown presses a mouse button.
func (b *Bridge) MouseDown(ctx context.Context, opts MouseActionOptions) error {
	return b.mouse(ctx, schemas.MousePress, opts)
}

// MouseUp releases a mouse button.
func (b *Bridge) MouseUp(ctx context.Context, opts MouseActionOptions) error {
	return b.mouse(ctx, schemas.MouseRelease, opts)
}

func (b *Bridge) mouse(ctx context.Context, kind schemas.MouseEventType, opts MouseActionOptions) error {
	p, err := b.builder.MouseEventOptions(ctx, kind, opts)
	if err != nil {
		return err
	}
	return b.transport.Single(ctx, MouseDescriptor(p))
}

// KeyDown presses a key.
func (b *Bridge) KeyDown(ctx context.Context, opts KeyActionOptions) error {
	p, err := b.builder.KeyDownOptions(opts)
	if err != nil {
		return err
	}
	return b.transport.Single(ctx, KeyDescriptor(p))
}

// KeyUp releases a key.
func (b *Bridge) KeyUp(ctx context.Context, opts KeyActionOptions) error {
	p, err := b.builder.KeyUpOptions(opts)
	if err != nil {
		return err
	}
	return b.transport.Single(ctx, KeyDescriptor(p))
}

// ExecuteEventSequence delivers a pre-built list as one ordered sequence.
// Every descriptor is validated before the first one is sent.
func (b *Bridge) ExecuteEventSequence(ctx context.Context, ds []Descriptor) error {
	for i, d := range ds {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("descriptor %d: %w", i, err)
		}
	}
	b.logger.Debug("Executing event sequence.", zap.Int("events", len(ds)))
	return b.transport.Sequence(ctx, ds)
}

// ExecuteInsertText inserts text in one event, bypassing key events.
func (b *Bridge) ExecuteInsertText(ctx context.Context, text string) error {
	return b.transport.Single(ctx, InsertTextDescriptor(text))
}
