// internal/browser/geometry/hittest_test.go
package geometry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func always(el *fakeElement) func(x, y float64) *fakeElement {
	return func(x, y float64) *fakeElement { return el }
}

func TestElementFromPoint(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		top := newFakeDocument()
		btn := top.add(top.body, "button")
		top.hit = always(btn)

		res := newTestResolver(top).ElementFromPoint(10, 10, nil, false)
		assert.Equal(t, HitFound, res.Status)
		assert.Same(t, btn, res.Element)
	})

	t.Run("NotFoundAfterBorderRetry", func(t *testing.T) {
		top := newFakeDocument()

		res := newTestResolver(top).ElementFromPoint(10, 20, nil, false)
		assert.Equal(t, HitNotFound, res.Status)
		assert.Nil(t, res.Element)
		assert.Equal(t, []Point{{X: 10, Y: 20}, {X: 9, Y: 19}}, top.probes)
	})

	t.Run("BorderRetryFindsElement", func(t *testing.T) {
		top := newFakeDocument()
		div := top.add(top.body, "div")
		top.hit = func(x, y float64) *fakeElement {
			if x == 9 && y == 9 {
				return div
			}
			return nil
		}

		res := newTestResolver(top).ElementFromPoint(10, 10, nil, false)
		assert.Equal(t, HitFound, res.Status)
		assert.Same(t, div, res.Element)
	})

	t.Run("DocumentRefusesQuery", func(t *testing.T) {
		top := newFakeDocument()
		top.hitErr = ErrInaccessible

		res := NewResolver(fakeOracle{top: top}, top, WithLogger(zaptest.NewLogger(t))).
			ElementFromPoint(10, 10, nil, false)
		assert.Equal(t, HitInaccessible, res.Status)
		assert.Nil(t, res.Element)
	})

	t.Run("CrossOriginFrameIsOpaqueLeaf", func(t *testing.T) {
		top := newFakeDocument()
		frame := top.add(top.body, "iframe")
		frame.contentErr = ErrInaccessible
		top.hit = always(frame)

		res := newTestResolver(top).ElementFromPoint(10, 10, nil, false)
		assert.Equal(t, HitInaccessible, res.Status)
		assert.Same(t, frame, res.Element)
	})

	t.Run("UnexpectedContentErrorIsInaccessible", func(t *testing.T) {
		top := newFakeDocument()
		frame := top.add(top.body, "iframe")
		frame.contentErr = errors.New("detached")
		top.hit = always(frame)

		res := newTestResolver(top).ElementFromPoint(10, 10, nil, false)
		assert.Equal(t, HitInaccessible, res.Status)
	})

	t.Run("DescendsIntoFrame", func(t *testing.T) {
		top := newFakeDocument()
		top.scrollT = 10
		frame, inner := top.embed(top.body)
		frame.sized(20, 20, 200, 200).withBorder("2px").withPadding("3px")
		link := inner.add(inner.body, "a")
		top.hit = always(frame)
		inner.hit = always(link)

		res := newTestResolver(top).ElementFromPoint(100, 100, nil, false)
		assert.Equal(t, HitFound, res.Status)
		assert.Same(t, link, res.Element)
		require.NotEmpty(t, inner.probes)
		assert.Equal(t, Point{X: 75, Y: 85}, inner.probes[0])
	})

	t.Run("SkipFrameDescent", func(t *testing.T) {
		top := newFakeDocument()
		frame, inner := top.embed(top.body)
		top.hit = always(frame)

		res := newTestResolver(top).ElementFromPoint(1, 1, nil, true)
		assert.Equal(t, HitFound, res.Status)
		assert.Same(t, frame, res.Element)
		assert.Empty(t, inner.probes)
	})

	t.Run("EmptyFrameReturnsFrame", func(t *testing.T) {
		top := newFakeDocument()
		frame, _ := top.embed(top.body)
		top.hit = always(frame)

		res := newTestResolver(top).ElementFromPoint(1, 1, nil, false)
		assert.Equal(t, HitFound, res.Status)
		assert.Same(t, frame, res.Element)
	})

	t.Run("InnerDocumentRefusesQuery", func(t *testing.T) {
		top := newFakeDocument()
		frame, inner := top.embed(top.body)
		inner.hitErr = ErrInaccessible
		top.hit = always(frame)

		res := newTestResolver(top).ElementFromPoint(1, 1, nil, false)
		assert.Equal(t, HitInaccessible, res.Status)
		assert.Same(t, frame, res.Element)
	})

	t.Run("NestedCrossOriginFrame", func(t *testing.T) {
		top := newFakeDocument()
		outer, inner := top.embed(top.body)
		remote := inner.add(inner.body, "iframe")
		remote.contentErr = ErrInaccessible
		top.hit = always(outer)
		inner.hit = always(remote)

		res := newTestResolver(top).ElementFromPoint(1, 1, nil, false)
		assert.Equal(t, HitInaccessible, res.Status)
		assert.Same(t, remote, res.Element)
	})

	t.Run("ExplicitDocument", func(t *testing.T) {
		top := newFakeDocument()
		_, inner := top.embed(top.body)
		span := inner.add(inner.body, "span")
		inner.hit = always(span)

		res := newTestResolver(top).ElementFromPoint(1, 1, inner, false)
		assert.Equal(t, HitFound, res.Status)
		assert.Same(t, span, res.Element)
		assert.Empty(t, top.probes)
	})
}

func TestHitStatusString(t *testing.T) {
	assert.Equal(t, "found", HitFound.String())
	assert.Equal(t, "not_found", HitNotFound.String())
	assert.Equal(t, "inaccessible", HitInaccessible.String())
}
