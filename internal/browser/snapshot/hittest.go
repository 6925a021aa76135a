// internal/browser/snapshot/hittest.go
package snapshot

import "github.com/xkilldash9x/framepoint/internal/browser/geometry"

// ElementFromPoint hit-tests a client-space point against the captured
// layout. The topmost painted box wins; boxes that are invisible or ignore
// pointer events are transparent to the test. Text boxes resolve to their
// parent element. Points outside the viewport hit nothing.
func (d *Document) ElementFromPoint(x, y float64) (geometry.Element, error) {
	vw, vh := d.viewport()
	if x < 0 || y < 0 || x >= vw || y >= vh {
		return nil, nil
	}

	px, py := x+d.scrollX, y+d.scrollY

	var best *Node
	var bestLayout *layout
	for _, n := range d.layoutNodes {
		target := n
		if n.nodeType == nodeTypeText {
			target = n.parentElement()
		}
		if target == nil || target.nodeType != nodeTypeElement || target.layout == nil {
			continue
		}
		if !n.layout.bounds.contains(px, py) {
			continue
		}
		if target.ComputedStyle("visibility") == "hidden" || target.ComputedStyle("pointer-events") == "none" {
			continue
		}
		if bestLayout == nil || paintsAbove(n.layout, bestLayout) {
			best, bestLayout = target, n.layout
		}
	}

	if best == nil {
		// Inside the viewport the document element is always hit.
		if d.root == nil {
			return nil, nil
		}
		return d.root, nil
	}
	return best, nil
}

// paintsAbove orders layout objects by paint order, falling back to layout
// tree order, which puts descendants above their ancestors.
func paintsAbove(a, b *layout) bool {
	if a.paint != b.paint {
		return a.paint > b.paint
	}
	return a.order > b.order
}
