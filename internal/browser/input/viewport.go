// internal/browser/input/viewport.go
package input

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/xkilldash9x/framepoint/internal/browser/geometry"
)

// ActionRunner runs chromedp actions against a target.
type ActionRunner interface {
	RunActions(ctx context.Context, actions ...chromedp.Action) error
}

// VisualViewport is the part of Page.getLayoutMetrics the mapper needs.
type VisualViewport struct {
	OffsetX float64
	OffsetY float64
	Scale   float64
}

// ViewportMapper compensates pinch zoom: input events are delivered in
// visual viewport coordinates while geometry is measured against the layout
// viewport.
type ViewportMapper struct {
	runner ActionRunner
	// metrics is swapped in tests.
	metrics func(ctx context.Context) (VisualViewport, error)
}

var _ PointMapper = (*ViewportMapper)(nil)

// NewViewportMapper creates a mapper that queries the target through runner.
func NewViewportMapper(runner ActionRunner) *ViewportMapper {
	m := &ViewportMapper{runner: runner}
	m.metrics = m.fetchMetrics
	return m
}

func (m *ViewportMapper) fetchMetrics(ctx context.Context) (VisualViewport, error) {
	var vv VisualViewport
	err := m.runner.RunActions(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		_, _, _, _, cssVisual, _, err := page.GetLayoutMetrics().Do(ctx)
		if err != nil {
			return err
		}
		if cssVisual != nil {
			vv = VisualViewport{OffsetX: cssVisual.OffsetX, OffsetY: cssVisual.OffsetY, Scale: cssVisual.Scale}
		}
		return nil
	}))
	if err != nil {
		return VisualViewport{}, fmt.Errorf("failed to read layout metrics: %w", err)
	}
	return vv, nil
}

// MapPoint converts a layout viewport point into visual viewport space. At
// scale 1 with no offset the point is returned unchanged.
func (m *ViewportMapper) MapPoint(ctx context.Context, p geometry.Point) (geometry.Point, error) {
	vv, err := m.metrics(ctx)
	if err != nil {
		return p, err
	}
	return mapToVisual(p, vv), nil
}

func mapToVisual(p geometry.Point, vv VisualViewport) geometry.Point {
	scale := vv.Scale
	if scale <= 0 {
		scale = 1
	}
	if scale == 1 && vv.OffsetX == 0 && vv.OffsetY == 0 {
		return p
	}
	return geometry.Point{
		X: (p.X - vv.OffsetX) * scale,
		Y: (p.Y - vv.OffsetY) * scale,
	}
}
