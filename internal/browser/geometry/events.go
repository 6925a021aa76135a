// internal/browser/geometry/events.go
package geometry

import "strings"

// touchCoords picks the coordinates a touch event should be measured by:
// the first target touch, then the first changed touch.
func touchCoords(ev Event) (PointerCoords, bool) {
	if !strings.HasPrefix(ev.Type, "touch") || ev.TargetTouches == nil {
		return PointerCoords{}, false
	}
	if len(ev.TargetTouches) > 0 {
		return ev.TargetTouches[0], true
	}
	if len(ev.ChangedTouches) > 0 {
		return ev.ChangedTouches[0], true
	}
	return PointerCoords{}, false
}

// EventPageCoordinates returns the rounded page-space position of an input
// event, normalising touch events to their first touch point.
func (r *Resolver) EventPageCoordinates(ev Event) Point {
	coords := ev.PointerCoords
	if touch, ok := touchCoords(ev); ok {
		coords = touch
	}

	// Some browsers report page (0,0) for synthetic events with a real client
	// position; rebuild page coordinates from the client ones in that case.
	pageZero := coords.HasPage && coords.PageX == 0 && coords.PageY == 0
	clientNonZero := coords.ClientX != 0 || coords.ClientY != 0
	if (!coords.HasPage || (pageZero && clientNonZero)) && coords.HasClient {
		doc := r.findDocument(ev.Target)
		root := doc.DocumentElement()
		body := doc.Body()

		scrollLeft, scrollTop := 0.0, 0.0
		clientLeft, clientTop := 0.0, 0.0
		if root != nil {
			scrollLeft, scrollTop = root.ScrollLeft(), root.ScrollTop()
			clientLeft, clientTop = root.ClientLeft(), root.ClientTop()
		}
		if scrollLeft == 0 && body != nil {
			scrollLeft = body.ScrollLeft()
		}
		if scrollTop == 0 && body != nil {
			scrollTop = body.ScrollTop()
		}

		return Point{
			X: roundJS(coords.ClientX + scrollLeft - clientLeft),
			Y: roundJS(coords.ClientY + scrollTop - clientTop),
		}
	}

	return Point{X: roundJS(coords.PageX), Y: roundJS(coords.PageY)}
}

// EventAbsoluteCoordinates returns the event's page coordinates in the top
// document, adding the offset and border of every enclosing iframe.
func (r *Resolver) EventAbsoluteCoordinates(ev Event) Point {
	p := r.EventPageCoordinates(ev)
	for _, frame := range r.FrameChain(r.findDocument(ev.Target)) {
		offset := r.oracle.OffsetPosition(frame)
		borders := BordersWidth(frame)
		p.X += offset.X + borders.Left
		p.Y += offset.Y + borders.Top
	}
	return p
}
