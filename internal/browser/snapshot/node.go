// internal/browser/snapshot/node.go
package snapshot

import (
	"fmt"
	"strings"

	"github.com/chromedp/cdproto/cdp"

	"github.com/xkilldash9x/framepoint/internal/browser/geometry"
)

// box is a protocol rectangle; set is false when the browser sent none.
type box struct {
	x, y, w, h float64
	set        bool
}

func (b box) contains(x, y float64) bool {
	return b.set && x >= b.x && x < b.x+b.w && y >= b.y && y < b.y+b.h
}

// layout is the rendering data of a node that has a layout object.
type layout struct {
	order  int
	paint  int64
	styles map[string]string
	bounds box
	offset box
	client box
	scroll box
}

// Node is a captured DOM node. Element and text nodes both use it; Kind
// tells them apart.
type Node struct {
	doc        *Document
	index      int
	parent     int
	nodeType   int64
	name       string
	value      string
	backendID  cdp.BackendNodeID
	attrs      map[string]string
	children   []int
	contentDoc int
	layout     *layout
}

var _ geometry.Element = (*Node)(nil)

func (n *Node) Kind() geometry.NodeKind {
	switch n.nodeType {
	case nodeTypeElement:
		return geometry.ElementNode
	case nodeTypeText:
		return geometry.TextNode
	case nodeTypeDocument:
		return geometry.DocumentNode
	}
	return geometry.OtherNode
}

// ParentNode returns the parent element, or the document for its root.
func (n *Node) ParentNode() geometry.Node {
	if n.parent < 0 {
		return nil
	}
	p := n.doc.nodes[n.parent]
	if p.nodeType == nodeTypeDocument {
		return n.doc
	}
	return p
}

func (n *Node) OwnerDocument() geometry.Document { return n.doc }

// Document is OwnerDocument with its concrete type.
func (n *Node) Document() *Document { return n.doc }

// BackendNodeID is the browser's stable id for the node.
func (n *Node) BackendNodeID() cdp.BackendNodeID { return n.backendID }

// NodeName is the raw node name as reported by the browser.
func (n *Node) NodeName() string { return n.name }

// NodeValue is the text of text nodes.
func (n *Node) NodeValue() string { return n.value }

func (n *Node) TagName() string {
	if n.nodeType != nodeTypeElement {
		return ""
	}
	return strings.ToLower(n.name)
}

func (n *Node) Attribute(name string) (string, bool) {
	v, ok := n.attrs[strings.ToLower(name)]
	return v, ok
}

// ComputedStyle returns one of the captured computed styles. Nodes without
// a layout object are not rendered, which reads as display: none.
func (n *Node) ComputedStyle(property string) string {
	if n.layout == nil {
		if property == "display" {
			return "none"
		}
		return ""
	}
	return n.layout.styles[property]
}

// bounds is the border box in page space of the node's document.
func (n *Node) bounds() geometry.Rectangle {
	if n.layout == nil {
		return geometry.Rectangle{}
	}
	b := n.layout.bounds
	return geometry.NewRectangle(b.x, b.y, b.w, b.h)
}

func (n *Node) BoundingClientRect() geometry.Rectangle {
	r := n.bounds()
	if n.layout == nil {
		return r
	}
	return geometry.NewRectangle(r.Left-n.doc.scrollX, r.Top-n.doc.scrollY, r.Width, r.Height)
}

func (n *Node) metric(pick func(*layout) box, field func(box) float64) float64 {
	if n.layout == nil {
		return 0
	}
	return field(pick(n.layout))
}

func offsetBox(l *layout) box { return l.offset }
func clientBox(l *layout) box { return l.client }
func scrollBox(l *layout) box { return l.scroll }

func boxX(b box) float64 { return b.x }
func boxY(b box) float64 { return b.y }
func boxW(b box) float64 { return b.w }
func boxH(b box) float64 { return b.h }

func (n *Node) OffsetWidth() float64  { return n.metric(offsetBox, boxW) }
func (n *Node) OffsetHeight() float64 { return n.metric(offsetBox, boxH) }
func (n *Node) ClientLeft() float64   { return n.metric(clientBox, boxX) }
func (n *Node) ClientTop() float64    { return n.metric(clientBox, boxY) }
func (n *Node) ClientWidth() float64  { return n.metric(clientBox, boxW) }
func (n *Node) ClientHeight() float64 { return n.metric(clientBox, boxH) }
func (n *Node) ScrollLeft() float64   { return n.metric(scrollBox, boxX) }
func (n *Node) ScrollTop() float64    { return n.metric(scrollBox, boxY) }
func (n *Node) ScrollWidth() float64  { return n.metric(scrollBox, boxW) }
func (n *Node) ScrollHeight() float64 { return n.metric(scrollBox, boxH) }

// IsContentEditable resolves the inherited contenteditable attribute.
func (n *Node) IsContentEditable() bool {
	for cur := n; cur != nil; cur = cur.parentNode() {
		if cur.nodeType != nodeTypeElement {
			continue
		}
		v, ok := cur.attrs["contenteditable"]
		if !ok {
			continue
		}
		switch strings.ToLower(v) {
		case "", "true", "plaintext-only":
			return true
		case "false":
			return false
		}
	}
	return false
}

// IsSVG reports whether the node sits inside an <svg> subtree, crossing back
// into HTML at <foreignObject>.
func (n *Node) IsSVG() bool {
	for cur := n; cur != nil; cur = cur.parentNode() {
		switch cur.TagName() {
		case "svg":
			return true
		case "foreignobject":
			if cur != n {
				return false
			}
		}
	}
	return false
}

func (n *Node) Children() []geometry.Element {
	var out []geometry.Element
	for _, ci := range n.children {
		c := n.doc.nodes[ci]
		if c.nodeType == nodeTypeElement {
			out = append(out, c)
		}
	}
	return out
}

// ContentDocument returns the document of a frame element. Frames whose
// document was not part of the capture are cross-origin or out of process.
func (n *Node) ContentDocument() (geometry.Document, error) {
	tag := n.TagName()
	if tag != "iframe" && tag != "frame" {
		return nil, nil
	}
	if n.contentDoc < 0 {
		return nil, fmt.Errorf("frame node %d: %w", n.backendID, geometry.ErrInaccessible)
	}
	return n.doc.snap.docs[n.contentDoc], nil
}

// parentNode is the parent in the same document, nil at the document node.
func (n *Node) parentNode() *Node {
	if n.parent < 0 {
		return nil
	}
	return n.doc.nodes[n.parent]
}

// parentElement returns the closest element ancestor.
func (n *Node) parentElement() *Node {
	for p := n.parentNode(); p != nil; p = p.parentNode() {
		if p.nodeType == nodeTypeElement {
			return p
		}
	}
	return nil
}

func (n *Node) String() string {
	if n.nodeType == nodeTypeElement {
		return fmt.Sprintf("<%s> (backend %d)", n.TagName(), n.backendID)
	}
	return fmt.Sprintf("%s (backend %d)", n.name, n.backendID)
}
