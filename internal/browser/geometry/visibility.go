// internal/browser/geometry/visibility.go
package geometry

import (
	"math"
	"strconv"
	"strings"
)

// defaultMultipleSelectSize is what browsers show for <select multiple>
// without a usable size attribute.
const defaultMultipleSelectSize = 4

// IsVisible reports whether a node can currently be seen by the user.
func (r *Resolver) IsVisible(n Node) bool {
	if n == nil {
		return false
	}
	switch n.Kind() {
	case TextNode:
		return !isNotVisibleNode(n)
	case ElementNode:
		el, ok := n.(Element)
		if !ok {
			return false
		}
		return r.isElementVisible(el)
	}
	return false
}

func (r *Resolver) isElementVisible(el Element) bool {
	rect := r.oracle.ElementRectangle(el)

	// Content-editable regions stay targetable even when they collapse.
	if !el.IsContentEditable() && (rect.Width == 0 || rect.Height == 0) {
		return false
	}

	switch {
	case isMapElement(el):
		container := mapContainer(closest(el, "map"))
		if container == nil {
			return false
		}
		return r.IsVisible(container)
	case isVisibleChild(el):
		return isOptionInScrollWindow(el)
	case el.IsSVG():
		return !isHidden(el) && !isDisplayNone(el)
	default:
		return hasDimensions(el) && !isHidden(el)
	}
}

// isNotVisibleNode reports whether a text node's enclosing styled element
// keeps it from rendering.
func isNotVisibleNode(n Node) bool {
	parent := parentElement(n)
	if parent == nil {
		return true
	}
	if isHidden(parent) {
		return true
	}
	for el := parent; el != nil; el = parentElement(el) {
		if isDisplayNone(el) {
			return true
		}
	}
	return false
}

func isMapElement(el Element) bool {
	tag := el.TagName()
	return tag == "map" || tag == "area"
}

// mapContainer finds the element that uses the image map through usemap.
func mapContainer(mapEl Element) Element {
	if mapEl == nil {
		return nil
	}
	name, ok := mapEl.Attribute("name")
	if !ok || name == "" {
		return nil
	}
	doc := mapEl.OwnerDocument()
	if doc == nil {
		return nil
	}
	return doc.QueryAttribute("usemap", "#"+name)
}

// selectParent returns the <select> an option or optgroup belongs to.
func selectParent(el Element) Element {
	return closest(el, "select")
}

// isVisibleChild reports whether el is an option-like child of a select that
// renders as a list box rather than a dropdown.
func isVisibleChild(el Element) bool {
	tag := el.TagName()
	if tag != "option" && tag != "optgroup" {
		return false
	}
	sel := selectParent(el)
	return sel != nil && selectSize(sel) > 1
}

// selectSize returns the number of rows a select shows.
func selectSize(sel Element) int {
	size := 1
	sizeAttr, hasSize := sel.Attribute("size")
	if hasSize && sizeAttr != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(sizeAttr)); err == nil {
			size = n
		}
	}
	if _, multiple := sel.Attribute("multiple"); multiple && (!hasSize || sizeAttr == "" || size < 1) {
		size = defaultMultipleSelectSize
	}
	return size
}

// selectVisibleChildren lists the options and optgroups of a select in the
// order they are drawn.
func selectVisibleChildren(sel Element) []Element {
	var out []Element
	var walk func(Element)
	walk = func(parent Element) {
		for _, child := range parent.Children() {
			switch child.TagName() {
			case "option":
				out = append(out, child)
			case "optgroup":
				out = append(out, child)
				walk(child)
			}
		}
	}
	walk(sel)
	return out
}

func childVisibleIndex(sel, child Element) int {
	for i, c := range selectVisibleChildren(sel) {
		if c == child {
			return i
		}
	}
	return -1
}

// optionHeight estimates a single row of a list box select from its
// scrollable content, which spans every row whether or not it is in view.
func optionHeight(sel Element) float64 {
	size := selectSize(sel)
	if size == 1 {
		return contentHeight(sel)
	}

	paddings := Paddings(sel)
	scrollHeight := sel.ScrollHeight() - paddings.Top - paddings.Bottom
	rows := math.Max(float64(len(selectVisibleChildren(sel))), float64(size))
	return roundJS(scrollHeight / math.Max(rows, 1))
}

// isOptionInScrollWindow checks whether an option row falls in the part of
// the list box currently scrolled into view.
func isOptionInScrollWindow(el Element) bool {
	sel := selectParent(el)
	realIndex := float64(childVisibleIndex(sel, el))
	size := float64(selectSize(sel))

	topVisible := math.Max(sel.ScrollTop()/optionHeight(sel), 0)
	bottomVisible := topVisible + size - 1
	optionVisible := math.Max(realIndex-topVisible, 0)

	return optionVisible >= topVisible && optionVisible <= bottomVisible
}
