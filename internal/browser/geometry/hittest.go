// internal/browser/geometry/hittest.go
package geometry

import (
	"errors"

	"go.uber.org/zap"
)

// HitStatus classifies the outcome of a hit test.
type HitStatus int

const (
	// HitNotFound means nothing is rendered at the point.
	HitNotFound HitStatus = iota
	// HitFound means Element is the deepest element at the point.
	HitFound
	// HitInaccessible means hit testing stopped at an origin boundary.
	// Element is the opaque iframe, or nil when the document itself could
	// not be queried.
	HitInaccessible
)

func (s HitStatus) String() string {
	switch s {
	case HitFound:
		return "found"
	case HitInaccessible:
		return "inaccessible"
	default:
		return "not_found"
	}
}

// HitResult is the answer of ElementFromPoint.
type HitResult struct {
	Status  HitStatus
	Element Element
}

// ElementFromPoint returns the deepest element at a client-space point of doc
// (the top document when nil), descending into accessible iframes unless
// skipFrameDescent is set.
func (r *Resolver) ElementFromPoint(x, y float64, doc Document, skipFrameDescent bool) HitResult {
	doc = r.docOrTop(doc)

	el, err := doc.ElementFromPoint(x, y)
	if err != nil {
		r.logger.Debug("hit test refused by document", zap.Error(err))
		return HitResult{Status: HitInaccessible}
	}

	// The border of an iframe reports nothing; probe one pixel up and left.
	if el == nil {
		el, err = doc.ElementFromPoint(x-1, y-1)
		if err != nil {
			r.logger.Debug("border retry refused by document", zap.Error(err))
			return HitResult{Status: HitInaccessible}
		}
	}
	if el == nil {
		return HitResult{Status: HitNotFound}
	}

	if skipFrameDescent || el.TagName() != "iframe" {
		return HitResult{Status: HitFound, Element: el}
	}

	inner, err := el.ContentDocument()
	if err != nil {
		if !errors.Is(err, ErrInaccessible) {
			r.logger.Debug("iframe content document unavailable", zap.Error(err))
		}
		return HitResult{Status: HitInaccessible, Element: el}
	}
	if inner == nil {
		return HitResult{Status: HitFound, Element: el}
	}

	offset := r.oracle.OffsetPosition(el)
	client := r.oracle.OffsetToClient(offset, doc)
	borders := BordersWidth(el)
	paddings := Paddings(el)

	nested := r.ElementFromPoint(
		x-client.X-borders.Left-paddings.Left,
		y-client.Y-borders.Top-paddings.Top,
		inner,
		false,
	)
	if nested.Element != nil {
		return nested
	}
	if nested.Status == HitInaccessible {
		return HitResult{Status: HitInaccessible, Element: el}
	}
	return HitResult{Status: HitFound, Element: el}
}
