// internal/browser/geometry/resolver.go
//
// Package geometry answers "where is this element, event or point, in which
// coordinate space" and "is this element visible" against a DOM host that may
// be split across nested iframes.
//
// Coordinate spaces:
//   - page: relative to a document's origin, scroll included.
//   - client: relative to the visible viewport, scroll independent.
//   - offset: relative to an element's own box.
//   - fixed: relative to an iframe's own viewport.
//
// Every query reads the host afresh; the resolver keeps no geometry between
// calls because the page can change underneath it at any time.
package geometry

import (
	"go.uber.org/zap"
)

// Resolver computes composite geometry on top of an Oracle.
type Resolver struct {
	oracle          Oracle
	top             Document
	framelessIFrame bool
	logger          *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithFramelessIFrame makes ClientDimensions size the document root by its
// <body> client box. Hosts set it for iframes without a src, whose root
// element does not report a meaningful viewport.
func WithFramelessIFrame(enabled bool) Option {
	return func(r *Resolver) { r.framelessIFrame = enabled }
}

// WithLogger attaches a logger for boundary degradations.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver creates a resolver over the given oracle. top is the document
// used whenever an operation is not given one explicitly.
func NewResolver(oracle Oracle, top Document, opts ...Option) *Resolver {
	r := &Resolver{
		oracle: oracle,
		top:    top,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.Named("geometry")
	return r
}

// Top returns the document the resolver treats as the top of the frame tree.
func (r *Resolver) Top() Document {
	return r.top
}

// docOrTop substitutes the top document for a nil one.
func (r *Resolver) docOrTop(doc Document) Document {
	if doc == nil {
		return r.top
	}
	return doc
}

// findDocument returns the document a node belongs to.
func (r *Resolver) findDocument(n Node) Document {
	if n == nil {
		return r.top
	}
	if n.Kind() == DocumentNode {
		if doc, ok := n.(Document); ok {
			return doc
		}
	}
	if doc := n.OwnerDocument(); doc != nil {
		return doc
	}
	return r.top
}

// PointClientDimensions returns a zero-size Dimensions anchored at the client
// projection of a page-space point.
func (r *Resolver) PointClientDimensions(p Point) Dimensions {
	c := r.oracle.OffsetToClient(p, nil)
	return Dimensions{Rectangle: NewRectangle(c.X, c.Y, 0, 0)}
}

// ClientDimensions returns the element's box in the client space of the
// document that hosts its frame, along with its borders, scroll offset and
// visible scrollbar sizes.
func (r *Resolver) ClientDimensions(el Element) Dimensions {
	dims := r.DocumentClientDimensions(el)

	if frame := el.OwnerDocument().FrameElement(); frame != nil {
		offset := r.oracle.OffsetPosition(frame)
		client := r.oracle.OffsetToClient(offset, frame.OwnerDocument())
		frameBorders := BordersWidth(frame)

		dims.Rectangle = NewRectangle(
			dims.Left+client.X+frameBorders.Left,
			dims.Top+client.Y+frameBorders.Top,
			dims.Width, dims.Height,
		)
		if el.TagName() == "html" {
			dims.Border = dims.Border.Plus(frameBorders)
		}
	}
	return dims
}

// DocumentClientDimensions is ClientDimensions measured in the client space
// of el's own document, without lifting out of its frame.
func (r *Resolver) DocumentClientDimensions(el Element) Dimensions {
	isRoot := el.TagName() == "html"
	rect := el.BoundingClientRect()

	left, top := rect.Left, rect.Top
	width, height := rect.Width, rect.Height
	if isRoot {
		left, top = 0, 0
		width, height = el.ClientWidth(), el.ClientHeight()
		// Only an embedded document can be frameless.
		doc := el.OwnerDocument()
		if r.framelessIFrame && doc.FrameElement() != nil {
			if body := doc.Body(); body != nil {
				width, height = body.ClientWidth(), body.ClientHeight()
			}
		}
	}

	var scrollbar ScrollbarSize
	if !isRoot {
		size := el.OwnerDocument().ScrollbarSize()
		if innerWidth(el) != el.ClientWidth() {
			scrollbar.Right = size
		}
		if innerHeight(el) != el.ClientHeight() {
			scrollbar.Bottom = size
		}
	}

	return Dimensions{
		Rectangle: NewRectangle(left, top, width, height),
		Border:    BordersWidth(el),
		Scroll:    ScrollOffset{Left: el.ScrollLeft(), Top: el.ScrollTop()},
		Scrollbar: scrollbar,
	}
}

// ContainsOffset reports whether an offset-space point lies inside el's
// scrollable border box. A nil coordinate leaves that axis unchecked.
func (r *Resolver) ContainsOffset(el Element, x, y *float64) bool {
	dims := r.ClientDimensions(el)
	maxX := dims.Scrollbar.Right + dims.Border.Left + dims.Border.Right + el.ScrollWidth()
	maxY := dims.Scrollbar.Bottom + dims.Border.Top + dims.Border.Bottom + el.ScrollHeight()

	return (x == nil || (*x >= 0 && maxX >= *x)) &&
		(y == nil || (*y >= 0 && maxY >= *y))
}

// ElementCenter returns the rounded page-space centre of el.
func (r *Resolver) ElementCenter(el Element) Point {
	rect := r.oracle.ElementRectangle(el)
	return Point{
		X: roundJS(rect.Left + rect.Width/2),
		Y: roundJS(rect.Top + rect.Height/2),
	}
}

// ElementClientRectangle returns el's oracle rectangle moved to client space.
func (r *Resolver) ElementClientRectangle(el Element) Rectangle {
	rect := r.oracle.ElementRectangle(el)
	pos := r.oracle.OffsetToClient(Point{X: rect.Left, Y: rect.Top}, el.OwnerDocument())
	return NewRectangle(pos.X, pos.Y, rect.Width, rect.Height)
}

// ClientToOffset adds doc's scroll (the top document when nil) to a
// client-space point.
func (r *Resolver) ClientToOffset(p Point, doc Document) Point {
	doc = r.docOrTop(doc)
	return Point{X: p.X + doc.ScrollLeft(), Y: p.Y + doc.ScrollTop()}
}

// RelativePosition measures how far dims sits from each inner edge of to.
// Left and top are measured from to's inner border; right and bottom also
// exclude to's scrollbars.
func RelativePosition(dims, to Dimensions) Edges {
	return Edges{
		Left:   dims.Left - (to.Left + to.Border.Left),
		Right:  to.Right - to.Border.Right - to.Scrollbar.Right - dims.Right,
		Top:    dims.Top - (to.Top + to.Border.Top),
		Bottom: to.Bottom - to.Border.Bottom - to.Scrollbar.Bottom - dims.Bottom,
	}
}

// Coord is a convenience for passing a defined coordinate to ContainsOffset.
func Coord(v float64) *float64 {
	return &v
}
