// internal/browser/input/keys.go
package input

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/chromedp/chromedp/kb"

	"github.com/xkilldash9x/framepoint/api/schemas"
)

// ErrUnknownKey is returned when a key name has no entry in the key table.
var ErrUnknownKey = errors.New("unknown key")

// KeyOptionsForRune derives key options for typing r on a US layout. Runes
// missing from the layout table are typed as bare text; found reports
// whether the table knew the rune.
func KeyOptionsForRune(r rune, mods schemas.Modifiers) (opts KeyActionOptions, found bool) {
	k, ok := kb.Keys[r]
	if !ok {
		return KeyActionOptions{Key: string(r), Text: string(r), Modifiers: mods}, false
	}
	return fromKB(k, mods), true
}

// KeyOptionsForName derives key options from a KeyboardEvent.key name such
// as "Enter", "ArrowLeft" or "a". Matching is case-insensitive for names
// longer than one character.
func KeyOptionsForName(name string, mods schemas.Modifiers) (KeyActionOptions, error) {
	if name == "" {
		return KeyActionOptions{}, fmt.Errorf("%w: empty key name", ErrInvalidActionOptions)
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		opts, _ := KeyOptionsForRune(r, mods)
		return opts, nil
	}

	// Several runes can map to the same key name; pick the lowest for a
	// stable answer.
	var (
		best    *kb.Key
		bestRun rune
	)
	for r, k := range kb.Keys {
		if !strings.EqualFold(k.Key, name) {
			continue
		}
		if best == nil || r < bestRun {
			best, bestRun = k, r
		}
	}
	if best == nil {
		return KeyActionOptions{}, fmt.Errorf("%w: %q", ErrUnknownKey, name)
	}
	return fromKB(best, mods), nil
}

func fromKB(k *kb.Key, mods schemas.Modifiers) KeyActionOptions {
	if k.Shift {
		mods.Shift = true
	}
	opts := KeyActionOptions{
		Key:       k.Key,
		Code:      k.Code,
		KeyCode:   k.Windows,
		Modifiers: mods,
	}
	// Chords with ctrl, alt or meta type nothing.
	if k.Print && !mods.Ctrl && !mods.Alt && !mods.Meta {
		opts.Text = k.Text
	}
	if strings.HasPrefix(k.Code, "Numpad") {
		opts.Location = LocationNumpad
	}
	return opts
}

// TextKeySequence builds press and release pairs for every rune of text.
// Control characters that have no key are rejected.
func (b *Builder) TextKeySequence(text string, mods schemas.Modifiers) ([]Descriptor, error) {
	var out []Descriptor
	for _, r := range text {
		opts, found := KeyOptionsForRune(r, mods)
		if !found && unicode.IsControl(r) {
			return nil, fmt.Errorf("%w: no key for control character %U", ErrUnknownKey, r)
		}
		seq, err := b.KeySequence(opts)
		if err != nil {
			return nil, err
		}
		out = append(out, seq...)
	}
	return out, nil
}
