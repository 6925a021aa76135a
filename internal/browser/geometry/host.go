// internal/browser/geometry/host.go
package geometry

import "errors"

// ErrInaccessible is reported by a host when a frame's content, or hit
// testing inside it, crosses an origin boundary.
var ErrInaccessible = errors.New("geometry: frame content is not accessible")

// NodeKind classifies the nodes the resolver distinguishes.
type NodeKind int

const (
	OtherNode NodeKind = iota
	ElementNode
	TextNode
	DocumentNode
)

// Oracle is the set of primitive measurements supplied by the host DOM layer.
// The resolver builds every composite answer on top of these three.
type Oracle interface {
	// ElementRectangle returns the authoritative page-space box of el,
	// including any host-specific corrections.
	ElementRectangle(el Element) Rectangle
	// OffsetPosition returns the page-space top-left corner of el within its
	// own document.
	OffsetPosition(el Element) Point
	// OffsetToClient converts a page-space point of doc to client space. A
	// nil doc means the top document.
	OffsetToClient(p Point, doc Document) Point
}

// Node is anything that can sit in a DOM tree.
type Node interface {
	Kind() NodeKind
	// ParentNode returns nil at the root.
	ParentNode() Node
	// OwnerDocument returns the node's document; a document returns itself.
	OwnerDocument() Document
}

// Element is a live (or freshly captured) DOM element.
type Element interface {
	Node

	// TagName is lower case ("div", "iframe", "svg").
	TagName() string
	Attribute(name string) (string, bool)
	// ComputedStyle returns the resolved value of a CSS property, or "" when
	// the host does not know it.
	ComputedStyle(property string) string
	// BoundingClientRect is getBoundingClientRect() in the element's own
	// document client space.
	BoundingClientRect() Rectangle

	OffsetWidth() float64
	OffsetHeight() float64
	ClientLeft() float64
	ClientTop() float64
	ClientWidth() float64
	ClientHeight() float64
	ScrollLeft() float64
	ScrollTop() float64
	ScrollWidth() float64
	ScrollHeight() float64

	IsContentEditable() bool
	IsSVG() bool
	// Children returns element children in document order.
	Children() []Element
	// ContentDocument returns the document hosted by a frame element. It
	// returns (nil, nil) for non-frame elements and ErrInaccessible when the
	// frame's content cannot be read.
	ContentDocument() (Document, error)
}

// Window is a browsing context that may be hosted by a frame element.
type Window interface {
	// FrameElement returns the iframe hosting this window, or nil for the
	// top window or when the host element cannot be resolved.
	FrameElement() Element
}

// Document is a DOM document. It doubles as its own Window.
type Document interface {
	Node
	Window

	DocumentElement() Element
	// Body returns nil for documents without a body.
	Body() Element
	ScrollLeft() float64
	ScrollTop() float64
	// ElementFromPoint hit-tests a client-space point. A nil element with a
	// nil error means nothing is there.
	ElementFromPoint(x, y float64) (Element, error)
	// QueryAttribute returns the first element, in document order, whose
	// attribute name has exactly the given value.
	QueryAttribute(name, value string) Element
	// ScrollbarSize is the platform scrollbar thickness in CSS pixels.
	ScrollbarSize() float64
}
