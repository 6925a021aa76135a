// api/schemas/input.go
package schemas

import (
	"fmt"
	"strings"
)

// -- Pointer Schemas --

// MouseEventType defines the type of a mouse event.
// Values are the CDP Input.dispatchMouseEvent "type" strings.
type MouseEventType string

const (
	MouseMove    MouseEventType = "mouseMoved"
	MousePress   MouseEventType = "mousePressed"
	MouseRelease MouseEventType = "mouseReleased"
	MouseWheel   MouseEventType = "mouseWheel"
)

// Valid reports whether t is one of the mouse event types the dispatcher builds.
func (t MouseEventType) Valid() bool {
	switch t {
	case MouseMove, MousePress, MouseRelease, MouseWheel:
		return true
	}
	return false
}

// MouseButton defines the mouse button being pressed.
type MouseButton string

const (
	ButtonNone    MouseButton = "none"
	ButtonLeft    MouseButton = "left"
	ButtonRight   MouseButton = "right"
	ButtonMiddle  MouseButton = "middle"
	ButtonBack    MouseButton = "back"
	ButtonForward MouseButton = "forward"
)

// buttonMasks maps a button to its bit in the DOM MouseEvent.buttons field.
var buttonMasks = map[MouseButton]int64{
	ButtonNone:    0,
	ButtonLeft:    1,
	ButtonRight:   2,
	ButtonMiddle:  4,
	ButtonBack:    8,
	ButtonForward: 16,
}

// Mask returns the MouseEvent.buttons bit for the button, or 0 if unknown.
func (b MouseButton) Mask() int64 {
	return buttonMasks[b]
}

// Valid reports whether b is a known button.
func (b MouseButton) Valid() bool {
	_, ok := buttonMasks[b]
	return ok
}

// ParseMouseButton converts user input (flags, config) into a MouseButton.
func ParseMouseButton(s string) (MouseButton, error) {
	b := MouseButton(strings.ToLower(strings.TrimSpace(s)))
	if b == "" {
		return ButtonLeft, nil
	}
	if !b.Valid() {
		return "", fmt.Errorf("unknown mouse button %q", s)
	}
	return b, nil
}

// -- Keyboard Schemas --

// KeyModifier represents keyboard modifiers (Ctrl, Alt, Shift, Meta).
// These values correspond directly to the CDP input modifiers bitfield.
type KeyModifier int

const (
	ModNone  KeyModifier = 0
	ModAlt   KeyModifier = 1 // Corresponds to CDP modifier 1
	ModCtrl  KeyModifier = 2 // Corresponds to CDP modifier 2
	ModMeta  KeyModifier = 4 // Corresponds to CDP modifier 4
	ModShift KeyModifier = 8 // Corresponds to CDP modifier 8
)

// Modifiers is the set of modifier keys held while an action runs.
type Modifiers struct {
	Alt   bool `json:"alt,omitempty" mapstructure:"alt"`
	Ctrl  bool `json:"ctrl,omitempty" mapstructure:"ctrl"`
	Meta  bool `json:"meta,omitempty" mapstructure:"meta"`
	Shift bool `json:"shift,omitempty" mapstructure:"shift"`
}

// Mask folds the set into the CDP bitfield.
func (m Modifiers) Mask() KeyModifier {
	mask := ModNone
	if m.Alt {
		mask |= ModAlt
	}
	if m.Ctrl {
		mask |= ModCtrl
	}
	if m.Meta {
		mask |= ModMeta
	}
	if m.Shift {
		mask |= ModShift
	}
	return mask
}

// ParseModifiers reads a "ctrl+shift" style expression. Unknown names are an error.
func ParseModifiers(expr string) (Modifiers, error) {
	var m Modifiers
	if strings.TrimSpace(expr) == "" {
		return m, nil
	}
	for _, part := range strings.Split(expr, "+") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "alt", "option":
			m.Alt = true
		case "ctrl", "control":
			m.Ctrl = true
		case "meta", "cmd", "command":
			m.Meta = true
		case "shift":
			m.Shift = true
		default:
			return Modifiers{}, fmt.Errorf("unknown modifier %q", part)
		}
	}
	return m, nil
}
