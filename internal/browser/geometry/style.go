// internal/browser/geometry/style.go
package geometry

import (
	"strconv"
	"strings"
)

// parsePixels reads a computed CSS length. Computed values are always
// absolute ("2px", "0px"); anything else, including "auto", is treated as 0.
func parsePixels(v string) float64 {
	v = strings.TrimSpace(v)
	v = strings.TrimSuffix(v, "px")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

// BordersWidth returns the computed border widths of el.
func BordersWidth(el Element) Edges {
	if el == nil {
		return Edges{}
	}
	return Edges{
		Left:   parsePixels(el.ComputedStyle("border-left-width")),
		Right:  parsePixels(el.ComputedStyle("border-right-width")),
		Top:    parsePixels(el.ComputedStyle("border-top-width")),
		Bottom: parsePixels(el.ComputedStyle("border-bottom-width")),
	}
}

// Paddings returns the computed paddings of el.
func Paddings(el Element) Edges {
	if el == nil {
		return Edges{}
	}
	return Edges{
		Left:   parsePixels(el.ComputedStyle("padding-left")),
		Right:  parsePixels(el.ComputedStyle("padding-right")),
		Top:    parsePixels(el.ComputedStyle("padding-top")),
		Bottom: parsePixels(el.ComputedStyle("padding-bottom")),
	}
}

// innerWidth is offsetWidth without borders; it equals clientWidth unless a
// vertical scrollbar takes up room.
func innerWidth(el Element) float64 {
	b := BordersWidth(el)
	return el.OffsetWidth() - b.Left - b.Right
}

func innerHeight(el Element) float64 {
	b := BordersWidth(el)
	return el.OffsetHeight() - b.Top - b.Bottom
}

// contentWidth is the width of the content box.
func contentWidth(el Element) float64 {
	b, p := BordersWidth(el), Paddings(el)
	return el.OffsetWidth() - b.Left - b.Right - p.Left - p.Right
}

func contentHeight(el Element) float64 {
	b, p := BordersWidth(el), Paddings(el)
	return el.OffsetHeight() - b.Top - b.Bottom - p.Top - p.Bottom
}

func isHidden(el Element) bool {
	return el.ComputedStyle("visibility") == "hidden"
}

func isDisplayNone(el Element) bool {
	return el.ComputedStyle("display") == "none"
}

// hasDimensions follows offsetWidth/offsetHeight: only a box with neither
// dimension positive counts as having no dimensions.
func hasDimensions(el Element) bool {
	return !(el.OffsetHeight() <= 0 && el.OffsetWidth() <= 0)
}

// parentElement walks up to the closest element ancestor of n.
func parentElement(n Node) Element {
	for p := n.ParentNode(); p != nil; p = p.ParentNode() {
		if el, ok := p.(Element); ok && p.Kind() == ElementNode {
			return el
		}
	}
	return nil
}

// closest returns el itself or its nearest ancestor with the given tag.
func closest(el Element, tag string) Element {
	for cur := el; cur != nil; cur = parentElement(cur) {
		if cur.TagName() == tag {
			return cur
		}
	}
	return nil
}

// isFrame reports whether el hosts a nested browsing context.
func isFrame(el Element) bool {
	tag := el.TagName()
	return tag == "iframe" || tag == "frame"
}
