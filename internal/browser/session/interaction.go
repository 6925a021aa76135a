// internal/browser/session/interaction.go
package session

import (
	"context"

	"github.com/xkilldash9x/framepoint/api/schemas"
	"github.com/xkilldash9x/framepoint/internal/browser/geometry"
	"github.com/xkilldash9x/framepoint/internal/browser/input"
)

// Click moves to p (client space of the top document) and clicks there.
func (s *Session) Click(ctx context.Context, p geometry.Point, button schemas.MouseButton, clickCount int64, mods schemas.Modifiers) error {
	seq, err := s.bridge.Builder().ClickSequence(ctx, p, button, clickCount, mods)
	if err != nil {
		return err
	}
	return s.bridge.ExecuteEventSequence(ctx, seq)
}

// Type presses and releases a key for every rune of text.
func (s *Session) Type(ctx context.Context, text string, mods schemas.Modifiers) error {
	seq, err := s.bridge.Builder().TextKeySequence(text, mods)
	if err != nil {
		return err
	}
	if len(seq) == 0 {
		return nil
	}
	return s.bridge.ExecuteEventSequence(ctx, seq)
}

// InsertText commits text to the focused element without key events.
func (s *Session) InsertText(ctx context.Context, text string) error {
	return s.bridge.ExecuteInsertText(ctx, text)
}

// Press presses and releases a named key such as "Enter" or "ArrowDown".
func (s *Session) Press(ctx context.Context, name string, mods schemas.Modifiers) error {
	opts, err := input.KeyOptionsForName(name, mods)
	if err != nil {
		return err
	}
	seq, err := s.bridge.Builder().KeySequence(opts)
	if err != nil {
		return err
	}
	return s.bridge.ExecuteEventSequence(ctx, seq)
}
