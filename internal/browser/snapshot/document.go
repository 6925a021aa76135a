// internal/browser/snapshot/document.go
package snapshot

import (
	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/domsnapshot"

	"github.com/xkilldash9x/framepoint/internal/browser/geometry"
)

// Document is one captured document. It implements geometry.Document.
type Document struct {
	snap    *Snapshot
	index   int
	frameID cdp.FrameID
	url     string

	scrollX, scrollY float64
	contentW         float64
	contentH         float64

	nodes []*Node
	// layoutNodes holds nodes with a layout object in layout tree order.
	layoutNodes []*Node
	root        *Node
	body        *Node
	// host is the frame element in the parent document, nil for the main
	// frame or when the parent was not captured.
	host *Node
}

var _ geometry.Document = (*Document)(nil)

func newDocument(s *Snapshot, index int, raw *domsnapshot.DocumentSnapshot, strs stringTable) *Document {
	d := &Document{
		snap:     s,
		index:    index,
		frameID:  cdp.FrameID(strs.get(raw.FrameID)),
		url:      strs.get(raw.DocumentURL),
		scrollX:  raw.ScrollOffsetX,
		scrollY:  raw.ScrollOffsetY,
		contentW: raw.ContentWidth,
		contentH: raw.ContentHeight,
	}

	tree := raw.Nodes
	count := len(tree.NodeType)
	d.nodes = make([]*Node, count)
	for i := 0; i < count; i++ {
		n := &Node{
			doc:        d,
			index:      i,
			parent:     -1,
			nodeType:   tree.NodeType[i],
			contentDoc: -1,
		}
		if i < len(tree.ParentIndex) {
			n.parent = int(tree.ParentIndex[i])
		}
		if i < len(tree.NodeName) {
			n.name = strs.get(tree.NodeName[i])
		}
		if i < len(tree.NodeValue) {
			n.value = strs.get(tree.NodeValue[i])
		}
		if i < len(tree.BackendNodeID) {
			n.backendID = tree.BackendNodeID[i]
		}
		if i < len(tree.Attributes) {
			n.attrs = attributeMap(tree.Attributes[i], strs)
		}
		d.nodes[i] = n
	}

	for _, n := range d.nodes {
		if n.parent >= 0 && n.parent < count {
			p := d.nodes[n.parent]
			p.children = append(p.children, n.index)
		} else {
			n.parent = -1
		}
	}

	if rare := tree.ContentDocumentIndex; rare != nil {
		for i, nodeIdx := range rare.Index {
			if i >= len(rare.Value) || nodeIdx < 0 || int(nodeIdx) >= count {
				continue
			}
			d.nodes[nodeIdx].contentDoc = int(rare.Value[i])
		}
	}

	if raw.Layout != nil {
		d.loadLayout(raw.Layout, strs)
	}

	d.root, d.body = d.findRootAndBody()
	return d
}

func attributeMap(pairs domsnapshot.ArrayOfStrings, strs stringTable) map[string]string {
	if len(pairs) == 0 {
		return nil
	}
	attrs := make(map[string]string, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		attrs[strs.lower(domsnapshot.StringIndex(pairs[i]))] = strs.get(domsnapshot.StringIndex(pairs[i+1]))
	}
	return attrs
}

func (d *Document) loadLayout(lt *domsnapshot.LayoutTreeSnapshot, strs stringTable) {
	for li, nodeIdx := range lt.NodeIndex {
		if nodeIdx < 0 || int(nodeIdx) >= len(d.nodes) {
			continue
		}
		l := &layout{
			order:  li,
			bounds: rectAt(lt.Bounds, li),
			offset: rectAt(lt.OffsetRects, li),
			client: rectAt(lt.ClientRects, li),
			scroll: rectAt(lt.ScrollRects, li),
		}
		if li < len(lt.PaintOrders) {
			l.paint = lt.PaintOrders[li]
		}
		if li < len(lt.Styles) {
			l.styles = make(map[string]string, len(ComputedStyles))
			for si, idx := range lt.Styles[li] {
				if si >= len(ComputedStyles) {
					break
				}
				l.styles[ComputedStyles[si]] = strs.get(domsnapshot.StringIndex(idx))
			}
		}
		n := d.nodes[nodeIdx]
		// A node can own several layout objects (split inlines); keep the first.
		if n.layout == nil {
			n.layout = l
			d.layoutNodes = append(d.layoutNodes, n)
		}
	}
}

// rectAt reads the i-th protocol rectangle as x, y, width, height.
func rectAt(rects []domsnapshot.Rectangle, i int) box {
	if i >= len(rects) || len(rects[i]) < 4 {
		return box{}
	}
	r := rects[i]
	return box{x: r[0], y: r[1], w: r[2], h: r[3], set: true}
}

func (d *Document) findRootAndBody() (*Node, *Node) {
	var root *Node
	for _, n := range d.nodes {
		if n.nodeType == nodeTypeElement && n.parent >= 0 && d.nodes[n.parent].nodeType == nodeTypeDocument {
			root = n
			break
		}
	}
	if root == nil {
		return nil, nil
	}
	for _, ci := range root.children {
		c := d.nodes[ci]
		if c.nodeType == nodeTypeElement && (c.TagName() == "body" || c.TagName() == "frameset") {
			return root, c
		}
	}
	return root, nil
}

// FrameID is the id of the frame rendering this document.
func (d *Document) FrameID() cdp.FrameID { return d.frameID }

// URL is the document URL.
func (d *Document) URL() string { return d.url }

func (d *Document) Kind() geometry.NodeKind          { return geometry.DocumentNode }
func (d *Document) ParentNode() geometry.Node        { return nil }
func (d *Document) OwnerDocument() geometry.Document { return d }
func (d *Document) ScrollLeft() float64              { return d.scrollX }
func (d *Document) ScrollTop() float64               { return d.scrollY }
func (d *Document) ScrollbarSize() float64           { return d.snap.scrollbar }

// FrameElement returns the iframe hosting this document.
func (d *Document) FrameElement() geometry.Element {
	if d.host == nil {
		return nil
	}
	return d.host
}

func (d *Document) DocumentElement() geometry.Element {
	if d.root == nil {
		return nil
	}
	return d.root
}

func (d *Document) Body() geometry.Element {
	if d.body == nil {
		return nil
	}
	return d.body
}

// QueryAttribute returns the first element in document order whose attribute
// has exactly the given value.
func (d *Document) QueryAttribute(name, value string) geometry.Element {
	for _, n := range d.nodes {
		if n.nodeType != nodeTypeElement {
			continue
		}
		if v, ok := n.attrs[name]; ok && v == value {
			return n
		}
	}
	return nil
}

// viewport returns the client size of the document's viewport.
func (d *Document) viewport() (float64, float64) {
	if d.root != nil && d.root.layout != nil && d.root.layout.client.set {
		return d.root.layout.client.w, d.root.layout.client.h
	}
	return d.contentW, d.contentH
}
