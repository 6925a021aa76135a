// internal/browser/snapshot/helpers_test.go
package snapshot

import (
	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/domsnapshot"
)

// fixture assembles captureSnapshot results by hand: a shared string table
// plus any number of documents.
type fixture struct {
	strs  []string
	index map[string]domsnapshot.StringIndex
	docs  []*domsnapshot.DocumentSnapshot
	paint int64
}

func newFixture() *fixture {
	return &fixture{index: map[string]domsnapshot.StringIndex{}}
}

func (f *fixture) str(v string) domsnapshot.StringIndex {
	if i, ok := f.index[v]; ok {
		return i
	}
	i := domsnapshot.StringIndex(len(f.strs))
	f.strs = append(f.strs, v)
	f.index[v] = i
	return i
}

func (f *fixture) build(opts Options) (*Snapshot, error) {
	return FromDocuments(f.docs, f.strs, opts)
}

type rect4 [4]float64

// layoutDef describes one layout object. Unset rectangles default to the
// bounds size at origin, unset styles to a visible block with no borders.
type layoutDef struct {
	bounds rect4
	offset *rect4
	client *rect4
	scroll *rect4
	styles map[string]string
	paint  int64
}

type docBuilder struct {
	f   *fixture
	raw *domsnapshot.DocumentSnapshot
}

// document adds a document whose node 0 is the #document node.
func (f *fixture) document(frameID string, scrollX, scrollY float64) *docBuilder {
	raw := &domsnapshot.DocumentSnapshot{
		FrameID:       f.str(frameID),
		DocumentURL:   f.str("https://example.test/" + frameID),
		ScrollOffsetX: scrollX,
		ScrollOffsetY: scrollY,
		ContentWidth:  1000,
		ContentHeight: 2000,
		Nodes:         &domsnapshot.NodeTreeSnapshot{},
		Layout:        &domsnapshot.LayoutTreeSnapshot{},
	}
	f.docs = append(f.docs, raw)
	b := &docBuilder{f: f, raw: raw}
	b.node(-1, nodeTypeDocument, "#document", "")
	return b
}

func (b *docBuilder) node(parent int, typ int64, name, value string, attrs ...string) int {
	t := b.raw.Nodes
	idx := len(t.NodeType)
	t.ParentIndex = append(t.ParentIndex, int64(parent))
	t.NodeType = append(t.NodeType, typ)
	t.NodeName = append(t.NodeName, b.f.str(name))
	t.NodeValue = append(t.NodeValue, b.f.str(value))
	t.BackendNodeID = append(t.BackendNodeID, cdp.BackendNodeID(1000*len(b.f.docs)+idx))
	var pairs domsnapshot.ArrayOfStrings
	for _, a := range attrs {
		pairs = append(pairs, int64(b.f.str(a)))
	}
	t.Attributes = append(t.Attributes, pairs)
	return idx
}

// el adds an element; attrs alternate name and value.
func (b *docBuilder) el(parent int, tag string, attrs ...string) int {
	return b.node(parent, nodeTypeElement, tag, "", attrs...)
}

func (b *docBuilder) text(parent int, value string) int {
	return b.node(parent, nodeTypeText, "#text", value)
}

func (b *docBuilder) hosts(node, docIndex int) {
	t := b.raw.Nodes
	if t.ContentDocumentIndex == nil {
		t.ContentDocumentIndex = &domsnapshot.RareIntegerData{}
	}
	t.ContentDocumentIndex.Index = append(t.ContentDocumentIndex.Index, int64(node))
	t.ContentDocumentIndex.Value = append(t.ContentDocumentIndex.Value, int64(docIndex))
}

func (b *docBuilder) layout(node int, ld layoutDef) {
	l := b.raw.Layout
	w, h := ld.bounds[2], ld.bounds[3]
	full := rect4{0, 0, w, h}
	pick := func(r *rect4) domsnapshot.Rectangle {
		if r == nil {
			return domsnapshot.Rectangle{full[0], full[1], full[2], full[3]}
		}
		return domsnapshot.Rectangle{r[0], r[1], r[2], r[3]}
	}

	styles := map[string]string{"display": "block", "visibility": "visible", "pointer-events": "auto"}
	for _, p := range ComputedStyles[3:] {
		styles[p] = "0px"
	}
	for k, v := range ld.styles {
		styles[k] = v
	}
	var row domsnapshot.ArrayOfStrings
	for _, p := range ComputedStyles {
		row = append(row, int64(b.f.str(styles[p])))
	}

	paint := ld.paint
	if paint == 0 {
		b.f.paint++
		paint = b.f.paint
	}

	l.NodeIndex = append(l.NodeIndex, int64(node))
	l.Bounds = append(l.Bounds, domsnapshot.Rectangle{ld.bounds[0], ld.bounds[1], w, h})
	l.OffsetRects = append(l.OffsetRects, pick(ld.offset))
	l.ClientRects = append(l.ClientRects, pick(ld.client))
	l.ScrollRects = append(l.ScrollRects, pick(ld.scroll))
	l.Styles = append(l.Styles, row)
	l.PaintOrders = append(l.PaintOrders, paint)
}

// page adds html and body elements with layout covering a viewport of the
// given size and returns their node indexes.
func (b *docBuilder) page(width, height float64) (html, body int) {
	html = b.el(0, "HTML")
	b.layout(html, layoutDef{bounds: rect4{0, 0, width, height}})
	body = b.el(html, "BODY")
	b.layout(body, layoutDef{bounds: rect4{0, 0, width, height}})
	return html, body
}

func (s *Snapshot) node(doc, index int) *Node {
	return s.docs[doc].nodes[index]
}
