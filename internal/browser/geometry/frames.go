// internal/browser/geometry/frames.go
package geometry

import "go.uber.org/zap"

// frameInset is the distance from an iframe's page-space origin to the
// origin of its content: offset position, border and padding.
func (r *Resolver) frameInset(frame Element) Point {
	offset := r.oracle.OffsetPosition(frame)
	borders := BordersWidth(frame)
	paddings := Paddings(frame)
	return Point{
		X: offset.X + borders.Left + paddings.Left,
		Y: offset.Y + borders.Top + paddings.Top,
	}
}

// hostFrame returns the iframe element hosting win, or nil.
func hostFrame(win Window) Element {
	if win == nil {
		return nil
	}
	return win.FrameElement()
}

// IFrameContentRectangle returns the content box of the iframe hosting win,
// in page space of the iframe's own document. ok is false when the hosting
// element cannot be resolved.
func (r *Resolver) IFrameContentRectangle(win Window) (Rectangle, bool) {
	frame := hostFrame(win)
	if frame == nil {
		r.logger.Debug("iframe host element not resolved for content rectangle")
		return Rectangle{}, false
	}
	inset := r.frameInset(frame)
	return NewRectangle(inset.X, inset.Y, contentWidth(frame), contentHeight(frame)), true
}

// FixedPositionForIFrame converts a position in the parent document into the
// coordinate space of the iframe hosting win. ok is false, and pos is
// returned unchanged, when the hosting element cannot be resolved.
func (r *Resolver) FixedPositionForIFrame(pos Point, win Window) (Point, bool) {
	frame := hostFrame(win)
	if frame == nil {
		r.logger.Debug("iframe host element not resolved for fixed position")
		return pos, false
	}
	inset := r.frameInset(frame)
	return Point{X: pos.X - inset.X, Y: pos.Y - inset.Y}, true
}

// FixedPosition lifts a position inside the iframe hosting win to the
// parent's coordinate space. With convertToClient the top document's scroll
// is subtracted as well. A nil window, or one without a resolvable host,
// returns pos unchanged.
func (r *Resolver) FixedPosition(pos Point, win Window, convertToClient bool) Point {
	frame := hostFrame(win)
	if frame == nil {
		return pos
	}
	inset := r.frameInset(frame)
	out := Point{X: pos.X + inset.X, Y: pos.Y + inset.Y}
	if convertToClient && r.top != nil {
		out.X -= r.top.ScrollLeft()
		out.Y -= r.top.ScrollTop()
	}
	return out
}

// FrameChain lists the iframe elements enclosing doc, innermost first. The
// walk stops at the first window whose host element is not resolvable.
func (r *Resolver) FrameChain(doc Document) []Element {
	var chain []Element
	for cur := r.docOrTop(doc); cur != nil; {
		frame := cur.FrameElement()
		if frame == nil {
			break
		}
		chain = append(chain, frame)
		cur = frame.OwnerDocument()
	}
	return chain
}

// frameDocuments returns the documents enclosing doc, innermost first, each
// of which has a resolvable host frame.
func (r *Resolver) frameDocuments(doc Document) []Document {
	var docs []Document
	for cur := r.docOrTop(doc); cur != nil; {
		frame := cur.FrameElement()
		if frame == nil {
			break
		}
		docs = append(docs, cur)
		cur = frame.OwnerDocument()
	}
	return docs
}

// FrameToPage maps a page-space point of doc into page space of the top
// document by lifting it through every enclosing iframe. Each level first
// drops the inner document's own scroll, since the iframe shows its content
// from the scrolled origin.
func (r *Resolver) FrameToPage(p Point, doc Document) Point {
	for _, d := range r.frameDocuments(doc) {
		p = Point{X: p.X - d.ScrollLeft(), Y: p.Y - d.ScrollTop()}
		p = r.FixedPosition(p, d, false)
	}
	return p
}

// PageToFrame is the inverse of FrameToPage.
func (r *Resolver) PageToFrame(p Point, doc Document) Point {
	docs := r.frameDocuments(doc)
	for i := len(docs) - 1; i >= 0; i-- {
		var ok bool
		if p, ok = r.FixedPositionForIFrame(p, docs[i]); !ok {
			r.logger.Debug("frame chain broke while mapping into frame", zap.Int("depth", i))
			break
		}
		p = Point{X: p.X + docs[i].ScrollLeft(), Y: p.Y + docs[i].ScrollTop()}
	}
	return p
}
