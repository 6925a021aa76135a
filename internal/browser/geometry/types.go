// internal/browser/geometry/types.go
package geometry

import "math"

// Point is a coordinate pair. The space it lives in (page, client, offset or
// fixed) is implied by the operation that produced it.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Rectangle is an axis-aligned box. Right and Bottom are stored rather than
// derived because the document root reports its viewport size instead of its
// bounding box.
type Rectangle struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewRectangle builds a rectangle that satisfies right = left + width and
// bottom = top + height.
func NewRectangle(left, top, width, height float64) Rectangle {
	return Rectangle{
		Left:   left,
		Top:    top,
		Right:  left + width,
		Bottom: top + height,
		Width:  width,
		Height: height,
	}
}

// Edges holds a per-side measurement: border widths, paddings, or the
// distances returned by RelativePosition.
type Edges struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Plus adds two edge sets side by side.
func (e Edges) Plus(o Edges) Edges {
	return Edges{
		Left:   e.Left + o.Left,
		Right:  e.Right + o.Right,
		Top:    e.Top + o.Top,
		Bottom: e.Bottom + o.Bottom,
	}
}

// ScrollOffset is an element's scrollLeft/scrollTop.
type ScrollOffset struct {
	Left float64 `json:"left"`
	Top  float64 `json:"top"`
}

// ScrollbarSize is the thickness of the vertical (Right) and horizontal
// (Bottom) scrollbars of an element, zero when the bar is not shown.
type ScrollbarSize struct {
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Dimensions is a client-space rectangle with the box metrics needed to
// reason about an element's inner area.
type Dimensions struct {
	Rectangle
	Border    Edges         `json:"border"`
	Scroll    ScrollOffset  `json:"scroll"`
	Scrollbar ScrollbarSize `json:"scrollbar"`
}

// PointerCoords carries the native coordinates of an input event. The Has*
// flags distinguish an absent (null) coordinate from a zero one.
type PointerCoords struct {
	PageX     float64
	PageY     float64
	ClientX   float64
	ClientY   float64
	HasPage   bool
	HasClient bool
}

// Event is the subset of a DOM input event the resolver reads.
type Event struct {
	// Type is the DOM event type, e.g. "mousedown" or "touchstart".
	Type   string
	Target Node
	PointerCoords
	// TargetTouches is nil for non-touch events. An empty, non-nil slice
	// means the touch list exists but has no entries.
	TargetTouches  []PointerCoords
	ChangedTouches []PointerCoords
}

// roundJS mirrors JavaScript's Math.round: halves round towards +Inf, so
// -2.5 becomes -2 rather than -3 as math.Round would give.
func roundJS(v float64) float64 {
	return math.Floor(v + 0.5)
}
