// internal/browser/input/options.go
package input

import (
	"fmt"

	"github.com/xkilldash9x/framepoint/api/schemas"
	"github.com/xkilldash9x/framepoint/internal/browser/geometry"
)

// MouseActionOptions describes a mouse button transition or move. Position
// is in client space of the top document and must already be resolved.
type MouseActionOptions struct {
	Position *geometry.Point
	// Button defaults to left for presses and releases and none for moves.
	Button schemas.MouseButton
	// Buttons is the mask of buttons held before this event.
	Buttons    int64
	ClickCount int64
	Modifiers  schemas.Modifiers
}

// Validate rejects options that cannot be turned into a protocol event.
func (o MouseActionOptions) Validate() error {
	if o.Position == nil {
		return fmt.Errorf("%w: mouse position is required", ErrInvalidActionOptions)
	}
	if !finite(o.Position.X) || !finite(o.Position.Y) {
		return fmt.Errorf("%w: mouse position (%v, %v) is not finite", ErrInvalidActionOptions, o.Position.X, o.Position.Y)
	}
	if o.Button != "" && !o.Button.Valid() {
		return fmt.Errorf("%w: unknown mouse button %q", ErrInvalidActionOptions, o.Button)
	}
	if o.Buttons < 0 || o.Buttons > 31 {
		return fmt.Errorf("%w: buttons mask %d out of range", ErrInvalidActionOptions, o.Buttons)
	}
	if o.ClickCount < 0 {
		return fmt.Errorf("%w: negative click count %d", ErrInvalidActionOptions, o.ClickCount)
	}
	return nil
}

// Key locations as defined by KeyboardEvent.location.
const (
	LocationStandard int64 = 0
	LocationLeft     int64 = 1
	LocationRight    int64 = 2
	LocationNumpad   int64 = 3
)

// KeyActionOptions describes one key transition.
type KeyActionOptions struct {
	// Key is the KeyboardEvent.key value, e.g. "a" or "Enter".
	Key string
	// Code is the physical key, e.g. "KeyA".
	Code string
	// Text is what the key types; empty for keys that produce no text.
	Text string
	// KeyCode is the Windows virtual key code.
	KeyCode   int64
	Location  int64
	Modifiers schemas.Modifiers
}

// Validate rejects options that cannot be turned into a protocol event.
func (o KeyActionOptions) Validate() error {
	if o.Key == "" && o.Code == "" {
		return fmt.Errorf("%w: key or code is required", ErrInvalidActionOptions)
	}
	if o.Location < LocationStandard || o.Location > LocationNumpad {
		return fmt.Errorf("%w: key location %d out of range", ErrInvalidActionOptions, o.Location)
	}
	if o.KeyCode < 0 {
		return fmt.Errorf("%w: negative key code %d", ErrInvalidActionOptions, o.KeyCode)
	}
	return nil
}
