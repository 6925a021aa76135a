// internal/browser/session/probe.go
package session

import (
	"context"

	"github.com/xkilldash9x/framepoint/internal/browser/geometry"
	"github.com/xkilldash9x/framepoint/internal/browser/snapshot"
)

// ProbeReport describes what sits under a client-space point of the top
// document.
type ProbeReport struct {
	Point   geometry.Point `json:"point"`
	Status  string         `json:"status"`
	Element *ElementReport `json:"element,omitempty"`
}

// ElementReport is the geometry of a hit element.
type ElementReport struct {
	Tag           string `json:"tag"`
	BackendNodeID int64  `json:"backendNodeId,omitempty"`
	FrameID       string `json:"frameId,omitempty"`
	DocumentURL   string `json:"documentUrl,omitempty"`
	// FrameDepth counts the iframes between the element and the top document.
	FrameDepth int  `json:"frameDepth"`
	Visible    bool `json:"visible"`

	// Dimensions is in client space of the document hosting the element's
	// frame, or of the top document for a top-level element.
	Dimensions geometry.Dimensions `json:"dimensions"`
	// ClientRect is in client space of the element's own document.
	ClientRect geometry.Rectangle `json:"clientRect"`
	// Center is in page space of the top document.
	Center geometry.Point `json:"center"`
	// ClickPoint is Center in client space of the top document.
	ClickPoint geometry.Point `json:"clickPoint"`
	// Relative measures the probed point from the element's inner edges,
	// both taken in client space of the element's own document.
	Relative geometry.Edges `json:"relative"`
}

// Probe hit-tests a client-space point of the top document against a fresh
// capture.
func (s *Session) Probe(ctx context.Context, p geometry.Point) (ProbeReport, error) {
	res, _, err := s.Resolver(ctx)
	if err != nil {
		return ProbeReport{}, err
	}
	return probe(res, p), nil
}

func probe(res *geometry.Resolver, p geometry.Point) ProbeReport {
	hit := res.ElementFromPoint(p.X, p.Y, nil, false)
	report := ProbeReport{Point: p, Status: hit.Status.String()}
	if hit.Element == nil {
		return report
	}

	el := hit.Element
	doc := el.OwnerDocument()
	top := res.Top()

	center := res.FrameToPage(res.ElementCenter(el), doc)
	er := &ElementReport{
		Tag:        el.TagName(),
		FrameDepth: len(res.FrameChain(doc)),
		Visible:    res.IsVisible(el),
		Dimensions: res.ClientDimensions(el),
		ClientRect: res.ElementClientRectangle(el),
		Center:     center,
		ClickPoint: geometry.Point{X: center.X - top.ScrollLeft(), Y: center.Y - top.ScrollTop()},
	}
	er.Relative = geometry.RelativePosition(documentPoint(res, p, doc), res.DocumentClientDimensions(el))

	if n, ok := el.(*snapshot.Node); ok {
		er.BackendNodeID = int64(n.BackendNodeID())
		er.FrameID = string(n.Document().FrameID())
		er.DocumentURL = n.Document().URL()
	}
	report.Element = er
	return report
}

// documentPoint maps a client point of the top document into client space
// of doc as a zero-size box.
func documentPoint(res *geometry.Resolver, p geometry.Point, doc geometry.Document) geometry.Dimensions {
	q := res.PageToFrame(res.ClientToOffset(p, nil), doc)
	q.X -= doc.ScrollLeft()
	q.Y -= doc.ScrollTop()
	return geometry.Dimensions{Rectangle: geometry.NewRectangle(q.X, q.Y, 0, 0)}
}
