// internal/browser/geometry/fake_dom_test.go
package geometry

// A small in-memory DOM used to drive the resolver in tests. Every metric is
// a plain field so each test states exactly what the host reports.

type fakeElement struct {
	tag      string
	attrs    map[string]string
	style    map[string]string
	bounding Rectangle
	// page is what the oracle reports as the element's page-space box.
	page Rectangle

	offsetW, offsetH float64
	clientL, clientT float64
	clientW, clientH float64
	scrollL, scrollT float64
	scrollW, scrollH float64
	editable, svg    bool

	parent   Node
	doc      *fakeDocument
	children []*fakeElement

	content    *fakeDocument
	contentErr error
}

func (e *fakeElement) Kind() NodeKind { return ElementNode }
func (e *fakeElement) ParentNode() Node {
	if e.parent == nil {
		return nil
	}
	return e.parent
}
func (e *fakeElement) OwnerDocument() Document { return e.doc }
func (e *fakeElement) TagName() string         { return e.tag }
func (e *fakeElement) Attribute(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}
func (e *fakeElement) ComputedStyle(p string) string { return e.style[p] }
func (e *fakeElement) BoundingClientRect() Rectangle { return e.bounding }
func (e *fakeElement) OffsetWidth() float64          { return e.offsetW }
func (e *fakeElement) OffsetHeight() float64         { return e.offsetH }
func (e *fakeElement) ClientLeft() float64           { return e.clientL }
func (e *fakeElement) ClientTop() float64            { return e.clientT }
func (e *fakeElement) ClientWidth() float64          { return e.clientW }
func (e *fakeElement) ClientHeight() float64         { return e.clientH }
func (e *fakeElement) ScrollLeft() float64           { return e.scrollL }
func (e *fakeElement) ScrollTop() float64            { return e.scrollT }
func (e *fakeElement) ScrollWidth() float64          { return e.scrollW }
func (e *fakeElement) ScrollHeight() float64         { return e.scrollH }
func (e *fakeElement) IsContentEditable() bool       { return e.editable }
func (e *fakeElement) IsSVG() bool                   { return e.svg }
func (e *fakeElement) Children() []Element {
	out := make([]Element, 0, len(e.children))
	for _, c := range e.children {
		out = append(out, c)
	}
	return out
}
func (e *fakeElement) ContentDocument() (Document, error) {
	if e.contentErr != nil {
		return nil, e.contentErr
	}
	if e.content == nil {
		return nil, nil
	}
	return e.content, nil
}

// withBorder sets a uniform border width in pixels.
func (e *fakeElement) withBorder(px string) *fakeElement {
	for _, side := range []string{"left", "right", "top", "bottom"} {
		e.style["border-"+side+"-width"] = px
	}
	return e
}

func (e *fakeElement) withPadding(px string) *fakeElement {
	for _, side := range []string{"left", "right", "top", "bottom"} {
		e.style["padding-"+side] = px
	}
	return e
}

// sized gives the element matching page, bounding and offset boxes.
func (e *fakeElement) sized(left, top, w, h float64) *fakeElement {
	e.page = NewRectangle(left, top, w, h)
	e.bounding = NewRectangle(left, top, w, h)
	e.offsetW, e.offsetH = w, h
	e.clientW, e.clientH = w, h
	return e
}

type fakeText struct {
	parent Node
	doc    *fakeDocument
}

func (t *fakeText) Kind() NodeKind          { return TextNode }
func (t *fakeText) ParentNode() Node        { return t.parent }
func (t *fakeText) OwnerDocument() Document { return t.doc }

type fakeDocument struct {
	root  *fakeElement
	body  *fakeElement
	frame *fakeElement

	scrollL, scrollT float64
	scrollbar        float64

	hit    func(x, y float64) *fakeElement
	hitErr error
	probes []Point
}

func newFakeDocument() *fakeDocument {
	d := &fakeDocument{scrollbar: 17}
	d.root = &fakeElement{tag: "html", attrs: map[string]string{}, style: map[string]string{}, parent: d, doc: d}
	d.body = d.add(d.root, "body")
	return d
}

// add appends a new element under parent.
func (d *fakeDocument) add(parent *fakeElement, tag string) *fakeElement {
	el := &fakeElement{
		tag:    tag,
		attrs:  map[string]string{},
		style:  map[string]string{},
		parent: parent,
		doc:    d,
	}
	parent.children = append(parent.children, el)
	return el
}

// embed creates a child document hosted by an iframe element of d.
func (d *fakeDocument) embed(parent *fakeElement) (*fakeElement, *fakeDocument) {
	frame := d.add(parent, "iframe")
	inner := newFakeDocument()
	inner.frame = frame
	frame.content = inner
	return frame, inner
}

func (d *fakeDocument) Kind() NodeKind          { return DocumentNode }
func (d *fakeDocument) ParentNode() Node        { return nil }
func (d *fakeDocument) OwnerDocument() Document { return d }
func (d *fakeDocument) FrameElement() Element {
	if d.frame == nil {
		return nil
	}
	return d.frame
}
func (d *fakeDocument) DocumentElement() Element { return d.root }
func (d *fakeDocument) Body() Element {
	if d.body == nil {
		return nil
	}
	return d.body
}
func (d *fakeDocument) ScrollLeft() float64 { return d.scrollL }
func (d *fakeDocument) ScrollTop() float64  { return d.scrollT }
func (d *fakeDocument) ElementFromPoint(x, y float64) (Element, error) {
	d.probes = append(d.probes, Point{X: x, Y: y})
	if d.hitErr != nil {
		return nil, d.hitErr
	}
	if d.hit == nil {
		return nil, nil
	}
	if el := d.hit(x, y); el != nil {
		return el, nil
	}
	return nil, nil
}
func (d *fakeDocument) QueryAttribute(name, value string) Element {
	var found *fakeElement
	var walk func(*fakeElement)
	walk = func(el *fakeElement) {
		if found != nil {
			return
		}
		if v, ok := el.attrs[name]; ok && v == value {
			found = el
			return
		}
		for _, c := range el.children {
			walk(c)
		}
	}
	walk(d.root)
	if found == nil {
		return nil
	}
	return found
}
func (d *fakeDocument) ScrollbarSize() float64 { return d.scrollbar }

// fakeOracle reads page boxes straight off the fake elements and converts to
// client space by subtracting the document scroll.
type fakeOracle struct {
	top *fakeDocument
}

func (o fakeOracle) ElementRectangle(el Element) Rectangle {
	return el.(*fakeElement).page
}

func (o fakeOracle) OffsetPosition(el Element) Point {
	r := el.(*fakeElement).page
	return Point{X: r.Left, Y: r.Top}
}

func (o fakeOracle) OffsetToClient(p Point, doc Document) Point {
	if doc == nil {
		doc = o.top
	}
	return Point{X: p.X - doc.ScrollLeft(), Y: p.Y - doc.ScrollTop()}
}

func newTestResolver(top *fakeDocument, opts ...Option) *Resolver {
	return NewResolver(fakeOracle{top: top}, top, opts...)
}
