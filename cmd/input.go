// File: cmd/input.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/framepoint/api/schemas"
	"github.com/xkilldash9x/framepoint/internal/browser/geometry"
	"github.com/xkilldash9x/framepoint/internal/observability"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// writeJSON prints v indented, one document per line.
func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// addPointFlags registers the required --x and --y flags.
func addPointFlags(cmd *cobra.Command, p *geometry.Point) {
	cmd.Flags().Float64Var(&p.X, "x", 0, "horizontal client coordinate in CSS pixels")
	cmd.Flags().Float64Var(&p.Y, "y", 0, "vertical client coordinate in CSS pixels")
	_ = cmd.MarkFlagRequired("x")
	_ = cmd.MarkFlagRequired("y")
}

func newProbeCmd() *cobra.Command {
	var p geometry.Point

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Report the element under a client point and its geometry as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTarget(cmd, func(ctx context.Context, t Target) error {
				report, err := t.Probe(ctx, p)
				if err != nil {
					return fmt.Errorf("probe failed: %w", err)
				}
				return writeJSON(cmd.OutOrStdout(), report)
			})
		},
	}
	addPointFlags(cmd, &p)
	return cmd
}

func newClickCmd() *cobra.Command {
	var (
		p         geometry.Point
		button    string
		count     int64
		modifiers string
	)

	cmd := &cobra.Command{
		Use:   "click",
		Short: "Move the pointer to a client point and click it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := schemas.ParseMouseButton(button)
			if err != nil {
				return err
			}
			if b == schemas.ButtonNone {
				return errors.New("--button none cannot click")
			}
			if count < 1 {
				return fmt.Errorf("--count must be at least 1, got %d", count)
			}
			mods, err := schemas.ParseModifiers(modifiers)
			if err != nil {
				return err
			}

			return withTarget(cmd, func(ctx context.Context, t Target) error {
				if err := t.Click(ctx, p, b, count, mods); err != nil {
					return fmt.Errorf("click failed: %w", err)
				}
				observability.GetLogger().Info("Clicked.",
					zap.Float64("x", p.X), zap.Float64("y", p.Y),
					zap.String("button", string(b)), zap.Int64("count", count))
				return nil
			})
		},
	}
	addPointFlags(cmd, &p)
	cmd.Flags().StringVar(&button, "button", "left", "mouse button: left, right, middle, back or forward")
	cmd.Flags().Int64Var(&count, "count", 1, "click count, 2 for a double click")
	cmd.Flags().StringVar(&modifiers, "modifiers", "", `modifier keys held during the click, e.g. "ctrl+shift"`)
	return cmd
}

func newTypeCmd() *cobra.Command {
	var (
		text      string
		insert    bool
		modifiers string
	)

	cmd := &cobra.Command{
		Use:   "type",
		Short: "Type text into the focused element",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mods, err := schemas.ParseModifiers(modifiers)
			if err != nil {
				return err
			}
			if insert && mods != (schemas.Modifiers{}) {
				return errors.New("--modifiers cannot be combined with --insert")
			}

			return withTarget(cmd, func(ctx context.Context, t Target) error {
				if insert {
					err = t.InsertText(ctx, text)
				} else {
					err = t.Type(ctx, text, mods)
				}
				if err != nil {
					return fmt.Errorf("typing failed: %w", err)
				}
				observability.GetLogger().Info("Typed text.", zap.Int("runes", len([]rune(text))), zap.Bool("insert", insert))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "text to type")
	cmd.Flags().BoolVar(&insert, "insert", false, "commit the text in one step without key events")
	cmd.Flags().StringVar(&modifiers, "modifiers", "", "modifier keys held while typing")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

func newPressCmd() *cobra.Command {
	var modifiers string

	cmd := &cobra.Command{
		Use:   "press <key>",
		Short: `Press and release a named key such as "Enter" or "ArrowDown"`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mods, err := schemas.ParseModifiers(modifiers)
			if err != nil {
				return err
			}
			key := args[0]

			return withTarget(cmd, func(ctx context.Context, t Target) error {
				if err := t.Press(ctx, key, mods); err != nil {
					return fmt.Errorf("key press failed: %w", err)
				}
				observability.GetLogger().Info("Pressed key.", zap.String("key", key))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&modifiers, "modifiers", "", `modifier keys held during the press, e.g. "ctrl"`)
	return cmd
}
