// internal/browser/input/builder.go
package input

import (
	"context"
	"fmt"

	cdpinput "github.com/chromedp/cdproto/input"
	"go.uber.org/zap"

	"github.com/xkilldash9x/framepoint/api/schemas"
	"github.com/xkilldash9x/framepoint/internal/browser/geometry"
)

// PointMapper adjusts a client-space point before it is put on the wire,
// e.g. to account for pinch zoom.
type PointMapper interface {
	MapPoint(ctx context.Context, p geometry.Point) (geometry.Point, error)
}

// Builder maps logical actions to protocol event records.
type Builder struct {
	mapper PointMapper
	logger *zap.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithPointMapper installs a mapper consulted by every mouse event.
func WithPointMapper(m PointMapper) BuilderOption {
	return func(b *Builder) { b.mapper = m }
}

// WithBuilderLogger sets the builder's logger.
func WithBuilderLogger(logger *zap.Logger) BuilderOption {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBuilder creates a Builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// MouseEventOptions builds a mouse event of the given kind. Only pressed,
// released and moved are accepted.
func (b *Builder) MouseEventOptions(ctx context.Context, kind schemas.MouseEventType, opts MouseActionOptions) (*cdpinput.DispatchMouseEventParams, error) {
	if kind != schemas.MousePress && kind != schemas.MouseRelease && kind != schemas.MouseMove {
		return nil, fmt.Errorf("%w: unsupported mouse event kind %q", ErrInvalidActionOptions, kind)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	pos := *opts.Position
	if b.mapper != nil {
		mapped, err := b.mapper.MapPoint(ctx, pos)
		if err != nil {
			return nil, fmt.Errorf("failed to map mouse position: %w", err)
		}
		if mapped != pos {
			b.logger.Debug("Mouse position adjusted for viewport.",
				zap.Float64("x", pos.X), zap.Float64("y", pos.Y),
				zap.Float64("mapped_x", mapped.X), zap.Float64("mapped_y", mapped.Y))
		}
		pos = mapped
	}

	button := opts.Button
	if button == "" {
		button = schemas.ButtonLeft
		if kind == schemas.MouseMove {
			button = schemas.ButtonNone
		}
	}

	buttons := opts.Buttons
	clickCount := opts.ClickCount
	switch kind {
	case schemas.MousePress:
		buttons |= button.Mask()
		if clickCount == 0 {
			clickCount = 1
		}
	case schemas.MouseRelease:
		buttons &^= button.Mask()
		if clickCount == 0 {
			clickCount = 1
		}
	}

	p := cdpinput.DispatchMouseEvent(cdpinput.MouseType(kind), pos.X, pos.Y).
		WithButton(cdpinput.MouseButton(button)).
		WithButtons(buttons).
		WithClickCount(clickCount).
		WithModifiers(cdpinput.Modifier(opts.Modifiers.Mask()))
	return p, nil
}

// KeyDownOptions builds the key press. Keys that type text are sent as
// keyDown; everything else as rawKeyDown.
func (b *Builder) KeyDownOptions(opts KeyActionOptions) (*cdpinput.DispatchKeyEventParams, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	kind := cdpinput.KeyRawDown
	if opts.Text != "" {
		kind = cdpinput.KeyDown
	}
	p := keyEvent(kind, opts)
	if opts.Text != "" {
		p = p.WithText(opts.Text).WithUnmodifiedText(opts.Text)
	}
	return p, nil
}

// KeyUpOptions builds the key release.
func (b *Builder) KeyUpOptions(opts KeyActionOptions) (*cdpinput.DispatchKeyEventParams, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return keyEvent(cdpinput.KeyUp, opts), nil
}

func keyEvent(kind cdpinput.KeyType, opts KeyActionOptions) *cdpinput.DispatchKeyEventParams {
	p := cdpinput.DispatchKeyEvent(kind).
		WithModifiers(cdpinput.Modifier(opts.Modifiers.Mask())).
		WithLocation(opts.Location)
	if opts.Key != "" {
		p = p.WithKey(opts.Key)
	}
	if opts.Code != "" {
		p = p.WithCode(opts.Code)
	}
	if opts.KeyCode != 0 {
		p = p.WithWindowsVirtualKeyCode(opts.KeyCode).WithNativeVirtualKeyCode(opts.KeyCode)
	}
	if opts.Location == LocationNumpad {
		p = p.WithIsKeypad(true)
	}
	return p
}

// MouseMoveEvent builds a move to pos with no button involved.
func (b *Builder) MouseMoveEvent(ctx context.Context, pos geometry.Point, mods schemas.Modifiers) (Descriptor, error) {
	p, err := b.MouseEventOptions(ctx, schemas.MouseMove, MouseActionOptions{
		Position:  &pos,
		Button:    schemas.ButtonNone,
		Modifiers: mods,
	})
	if err != nil {
		return Descriptor{}, err
	}
	return MouseDescriptor(p), nil
}

// ClickSequence builds move, press and release at pos.
func (b *Builder) ClickSequence(ctx context.Context, pos geometry.Point, button schemas.MouseButton, clickCount int64, mods schemas.Modifiers) ([]Descriptor, error) {
	move, err := b.MouseMoveEvent(ctx, pos, mods)
	if err != nil {
		return nil, err
	}
	opts := MouseActionOptions{Position: &pos, Button: button, ClickCount: clickCount, Modifiers: mods}
	press, err := b.MouseEventOptions(ctx, schemas.MousePress, opts)
	if err != nil {
		return nil, err
	}
	opts.Buttons = press.Buttons
	release, err := b.MouseEventOptions(ctx, schemas.MouseRelease, opts)
	if err != nil {
		return nil, err
	}
	return []Descriptor{move, MouseDescriptor(press), MouseDescriptor(release)}, nil
}

// KeySequence builds the press and release of one key.
func (b *Builder) KeySequence(opts KeyActionOptions) ([]Descriptor, error) {
	down, err := b.KeyDownOptions(opts)
	if err != nil {
		return nil, err
	}
	up, err := b.KeyUpOptions(opts)
	if err != nil {
		return nil, err
	}
	return []Descriptor{KeyDescriptor(down), KeyDescriptor(up)}, nil
}
