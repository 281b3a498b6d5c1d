package xmlwrite

import (
	"bufio"
	"cmp"
	"io"
	"maps"
	"slices"

	"github.com/jacoelho/svgsprite/internal/dom"
	"github.com/jacoelho/svgsprite/internal/xmlnames"
)

// WriteCanonical serializes root following Canonical XML 1.0 without
// comments, treating root as the document element. Whitespace-only text
// nodes are dropped before canonicalization, so trees that differ only in
// indentation produce identical bytes.
//
// Namespace declarations are emitted where the in-scope binding differs
// from the nearest output ancestor, sorted by prefix with the default
// namespace first. Other attributes are sorted by namespace URI, then
// local name.
func WriteCanonical(w io.Writer, root *dom.Element) error {
	bw := bufio.NewWriter(w)
	inherited := map[string]string{}
	if p := root.Parent(); p != nil {
		inherited = p.InScopeNamespaces()
	}
	c := canonicalizer{bw: bw}
	c.element(root, inherited, map[string]string{"": ""})
	return bw.Flush()
}

type canonicalizer struct {
	bw *bufio.Writer
}

// element writes e. scope holds the bindings in scope at e's parent;
// rendered holds the bindings already written by output ancestors.
func (c *canonicalizer) element(e *dom.Element, scope, rendered map[string]string) {
	if decls := e.Declarations(); len(decls) > 0 {
		next := maps.Clone(scope)
		maps.Copy(next, decls)
		scope = next
	}

	var emit []string
	for _, prefix := range slices.Sorted(maps.Keys(scope)) {
		uri := scope[prefix]
		if prefix == xmlnames.XMLPrefix {
			continue
		}
		if prefix != "" && uri == "" {
			continue
		}
		if have, ok := rendered[prefix]; ok && have == uri {
			continue
		}
		emit = append(emit, prefix)
	}
	if len(emit) > 0 {
		next := maps.Clone(rendered)
		for _, prefix := range emit {
			next[prefix] = scope[prefix]
		}
		rendered = next
	}

	c.bw.WriteByte('<')
	c.bw.WriteString(e.Name.QName())
	for _, prefix := range emit {
		if prefix == "" {
			c.bw.WriteString(` xmlns="`)
		} else {
			c.bw.WriteString(" xmlns:")
			c.bw.WriteString(prefix)
			c.bw.WriteString(`="`)
		}
		canonicalAttrEscaper.WriteString(c.bw, scope[prefix])
		c.bw.WriteByte('"')
	}
	for _, a := range sortedAttrs(e.Attrs) {
		c.bw.WriteByte(' ')
		c.bw.WriteString(a.Name.QName())
		c.bw.WriteString(`="`)
		canonicalAttrEscaper.WriteString(c.bw, a.Value)
		c.bw.WriteByte('"')
	}
	c.bw.WriteByte('>')

	for _, child := range e.Children {
		switch n := child.(type) {
		case *dom.Element:
			c.element(n, scope, rendered)
		case *dom.Text:
			if isWhitespace(n.Data) {
				continue
			}
			canonicalTextEscaper.WriteString(c.bw, n.Data)
		case *dom.ProcInst:
			writeProcInst(c.bw, n)
		}
	}

	c.bw.WriteString("</")
	c.bw.WriteString(e.Name.QName())
	c.bw.WriteByte('>')
}

func sortedAttrs(attrs []dom.Attr) []dom.Attr {
	out := make([]dom.Attr, 0, len(attrs))
	for _, a := range attrs {
		if !a.IsNamespaceDecl() {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b dom.Attr) int {
		return cmp.Or(
			cmp.Compare(a.Name.Space, b.Name.Space),
			cmp.Compare(a.Name.Local, b.Name.Local),
		)
	})
	return out
}

func isWhitespace(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
		default:
			return false
		}
	}
	return true
}
