// internal/browser/input/descriptor.go
//
// Package input turns logical user actions into DevTools Input-domain
// commands and hands them, in order, to a transport.
package input

import (
	"errors"
	"fmt"
	"math"

	cdpinput "github.com/chromedp/cdproto/input"
	"github.com/chromedp/chromedp"
)

// ErrInvalidActionOptions is returned when options or descriptors are
// malformed. Nothing is dispatched when it occurs.
var ErrInvalidActionOptions = errors.New("invalid action options")

// EventType tags a Descriptor.
type EventType string

const (
	EventMouse      EventType = "mouse"
	EventKeyboard   EventType = "keyboard"
	EventInsertText EventType = "insertText"
)

// Descriptor is one protocol-shaped input event. Exactly one of Mouse, Key
// or Text is set, matching Type. The payloads are the protocol's own
// parameter records so field names and enum values go over the wire as is.
type Descriptor struct {
	Type  EventType                          `json:"type"`
	Mouse *cdpinput.DispatchMouseEventParams `json:"mouse,omitempty"`
	Key   *cdpinput.DispatchKeyEventParams   `json:"key,omitempty"`
	Text  *cdpinput.InsertTextParams         `json:"text,omitempty"`
}

// MouseDescriptor wraps a mouse event.
func MouseDescriptor(p *cdpinput.DispatchMouseEventParams) Descriptor {
	return Descriptor{Type: EventMouse, Mouse: p}
}

// KeyDescriptor wraps a key event.
func KeyDescriptor(p *cdpinput.DispatchKeyEventParams) Descriptor {
	return Descriptor{Type: EventKeyboard, Key: p}
}

// InsertTextDescriptor builds a text insertion event for the literal text.
func InsertTextDescriptor(text string) Descriptor {
	return Descriptor{Type: EventInsertText, Text: cdpinput.InsertText(text)}
}

// Validate checks that the descriptor is a well-formed variant.
func (d Descriptor) Validate() error {
	set := 0
	for _, present := range []bool{d.Mouse != nil, d.Key != nil, d.Text != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("%w: descriptor must carry exactly one payload, got %d", ErrInvalidActionOptions, set)
	}

	switch d.Type {
	case EventMouse:
		if d.Mouse == nil {
			return fmt.Errorf("%w: mouse descriptor without mouse payload", ErrInvalidActionOptions)
		}
		switch d.Mouse.Type {
		case cdpinput.MousePressed, cdpinput.MouseReleased, cdpinput.MouseMoved, cdpinput.MouseWheel:
		default:
			return fmt.Errorf("%w: unknown mouse event type %q", ErrInvalidActionOptions, d.Mouse.Type)
		}
		if !finite(d.Mouse.X) || !finite(d.Mouse.Y) {
			return fmt.Errorf("%w: mouse coordinates must be finite", ErrInvalidActionOptions)
		}
	case EventKeyboard:
		if d.Key == nil {
			return fmt.Errorf("%w: keyboard descriptor without key payload", ErrInvalidActionOptions)
		}
		switch d.Key.Type {
		case cdpinput.KeyDown, cdpinput.KeyUp, cdpinput.KeyRawDown, cdpinput.KeyChar:
		default:
			return fmt.Errorf("%w: unknown key event type %q", ErrInvalidActionOptions, d.Key.Type)
		}
	case EventInsertText:
		if d.Text == nil {
			return fmt.Errorf("%w: insertText descriptor without text payload", ErrInvalidActionOptions)
		}
	default:
		return fmt.Errorf("%w: unknown event type %q", ErrInvalidActionOptions, d.Type)
	}
	return nil
}

// Action returns the runnable protocol command behind the descriptor.
func (d Descriptor) Action() (chromedp.Action, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	switch d.Type {
	case EventMouse:
		return d.Mouse, nil
	case EventKeyboard:
		return d.Key, nil
	default:
		return d.Text, nil
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
