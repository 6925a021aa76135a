// internal/browser/snapshot/snapshot.go
//
// Package snapshot implements the geometry host on top of a single
// DOMSnapshot.captureSnapshot call. A capture is a frozen view of every
// same-process document of a page; frames rendered out of process show up as
// iframes without a content document and are reported as inaccessible.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/domsnapshot"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/xkilldash9x/framepoint/internal/browser/geometry"
)

// ErrEmptySnapshot is returned when a capture holds no documents.
var ErrEmptySnapshot = errors.New("snapshot: capture contains no documents")

// DefaultScrollbarSize is the classic scrollbar thickness of desktop Chromium.
const DefaultScrollbarSize = 17

// ComputedStyles lists the properties requested from the browser. Geometry
// only ever reads these.
var ComputedStyles = []string{
	"display",
	"visibility",
	"pointer-events",
	"border-left-width",
	"border-right-width",
	"border-top-width",
	"border-bottom-width",
	"padding-left",
	"padding-right",
	"padding-top",
	"padding-bottom",
}

// DOM node types as reported by the protocol.
const (
	nodeTypeElement  = 1
	nodeTypeText     = 3
	nodeTypeDocument = 9
)

// ActionRunner runs chromedp actions against a target.
type ActionRunner interface {
	RunActions(ctx context.Context, actions ...chromedp.Action) error
}

// Options tune how a capture is interpreted.
type Options struct {
	// ScrollbarSize is reported for elements whose content overflows.
	ScrollbarSize float64
	Logger        *zap.Logger
}

// Snapshot is a captured page. It implements geometry.Oracle.
type Snapshot struct {
	docs      []*Document
	byFrame   map[cdp.FrameID]*Document
	scrollbar float64
	logger    *zap.Logger
}

var _ geometry.Oracle = (*Snapshot)(nil)

// Capture takes a DOM snapshot of the target driven by runner.
func Capture(ctx context.Context, runner ActionRunner, opts Options) (*Snapshot, error) {
	var (
		docs []*domsnapshot.DocumentSnapshot
		strs []string
	)
	err := runner.RunActions(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		docs, strs, err = domsnapshot.CaptureSnapshot(ComputedStyles).
			WithIncludeDOMRects(true).
			WithIncludePaintOrder(true).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to capture DOM snapshot: %w", err)
	}
	return FromDocuments(docs, strs, opts)
}

// FromDocuments builds a Snapshot from the raw result of captureSnapshot.
func FromDocuments(docs []*domsnapshot.DocumentSnapshot, strs []string, opts Options) (*Snapshot, error) {
	if len(docs) == 0 {
		return nil, ErrEmptySnapshot
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	scrollbar := opts.ScrollbarSize
	if scrollbar <= 0 {
		scrollbar = DefaultScrollbarSize
	}

	s := &Snapshot{
		docs:      make([]*Document, len(docs)),
		byFrame:   make(map[cdp.FrameID]*Document, len(docs)),
		scrollbar: scrollbar,
		logger:    logger.Named("snapshot"),
	}

	table := stringTable(strs)
	for i, raw := range docs {
		if raw == nil || raw.Nodes == nil {
			return nil, fmt.Errorf("snapshot: document %d has no node tree", i)
		}
		doc := newDocument(s, i, raw, table)
		s.docs[i] = doc
		if doc.frameID != "" {
			s.byFrame[doc.frameID] = doc
		}
	}

	// Link frame elements to the documents they host.
	for _, doc := range s.docs {
		for _, n := range doc.nodes {
			if n.contentDoc < 0 {
				continue
			}
			if n.contentDoc >= len(s.docs) || n.contentDoc == doc.index {
				s.logger.Debug("ignoring out of range content document",
					zap.Int("document", doc.index), zap.Int("content_document", n.contentDoc))
				n.contentDoc = -1
				continue
			}
			s.docs[n.contentDoc].host = n
		}
	}

	s.logger.Debug("DOM snapshot loaded",
		zap.Int("documents", len(s.docs)),
		zap.Int("nodes", s.nodeCount()))
	return s, nil
}

func (s *Snapshot) nodeCount() int {
	total := 0
	for _, d := range s.docs {
		total += len(d.nodes)
	}
	return total
}

// Top returns the main frame's document.
func (s *Snapshot) Top() *Document {
	return s.docs[0]
}

// Frame returns the document rendered by the given frame.
func (s *Snapshot) Frame(id cdp.FrameID) (*Document, bool) {
	d, ok := s.byFrame[id]
	return d, ok
}

// ElementRectangle returns the border box of el in page space of its own
// document.
func (s *Snapshot) ElementRectangle(el geometry.Element) geometry.Rectangle {
	if n, ok := el.(*Node); ok {
		return n.bounds()
	}
	rect := el.BoundingClientRect()
	if doc := el.OwnerDocument(); doc != nil {
		return geometry.NewRectangle(rect.Left+doc.ScrollLeft(), rect.Top+doc.ScrollTop(), rect.Width, rect.Height)
	}
	return rect
}

// OffsetPosition returns the top-left corner of ElementRectangle.
func (s *Snapshot) OffsetPosition(el geometry.Element) geometry.Point {
	rect := s.ElementRectangle(el)
	return geometry.Point{X: rect.Left, Y: rect.Top}
}

// OffsetToClient subtracts the document scroll. A nil document means the
// main frame.
func (s *Snapshot) OffsetToClient(p geometry.Point, doc geometry.Document) geometry.Point {
	if doc == nil {
		doc = s.Top()
	}
	return geometry.Point{X: p.X - doc.ScrollLeft(), Y: p.Y - doc.ScrollTop()}
}

// stringTable resolves protocol string indexes; -1 and out of range indexes
// are the empty string.
type stringTable []string

func (t stringTable) get(i domsnapshot.StringIndex) string {
	if i < 0 || int(i) >= len(t) {
		return ""
	}
	return t[i]
}

func (t stringTable) lower(i domsnapshot.StringIndex) string {
	return strings.ToLower(t.get(i))
}
