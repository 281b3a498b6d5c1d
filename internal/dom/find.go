package dom

// Walk calls fn for e and each descendant element in document order.
// Returning false from fn skips that element's subtree.
func Walk(e *Element, fn func(*Element) bool) {
	if e == nil {
		return
	}
	if !fn(e) {
		return
	}
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok {
			Walk(el, fn)
		}
	}
}

// FindAll returns e and every descendant element named {space}local, in
// document order. Namespace matching is exact: an element with no namespace
// only matches an empty space.
func FindAll(e *Element, space, local string) []*Element {
	var out []*Element
	Walk(e, func(el *Element) bool {
		if el.Name.Space == space && el.Name.Local == local {
			out = append(out, el)
		}
		return true
	})
	return out
}

// Outermost filters elems, dropping every element that has an ancestor
// in elems. Order is preserved.
func Outermost(elems []*Element) []*Element {
	if len(elems) < 2 {
		return elems
	}
	set := make(map[*Element]struct{}, len(elems))
	for _, el := range elems {
		set[el] = struct{}{}
	}
	out := make([]*Element, 0, len(elems))
	for _, el := range elems {
		nested := false
		for p := el.parent; p != nil; p = p.parent {
			if _, ok := set[p]; ok {
				nested = true
				break
			}
		}
		if !nested {
			out = append(out, el)
		}
	}
	return out
}
