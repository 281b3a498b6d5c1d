package dom

import (
	"github.com/jacoelho/svgsprite/internal/xmlnames"
)

// NodeType classifies nodes in the tree.
type NodeType int

const (
	// ElementNode identifies an element.
	ElementNode NodeType = 1
	// TextNode identifies character data.
	TextNode NodeType = 3
	// ProcInstNode identifies a processing instruction.
	ProcInstNode NodeType = 7
	// CommentNode identifies a comment.
	CommentNode NodeType = 8
)

// Node is implemented by every node that can be a child of an Element.
type Node interface {
	NodeType() NodeType
	// Parent returns the parent element; nil for detached nodes and roots.
	Parent() *Element
	setParent(*Element)
}

type link struct {
	parent *Element
}

func (l *link) Parent() *Element {
	return l.parent
}

func (l *link) setParent(p *Element) {
	l.parent = p
}

// Name is a qualified name. Space holds the resolved namespace URI and
// Prefix the lexical prefix used in the source.
type Name struct {
	Space  string
	Prefix string
	Local  string
}

// QName returns the lexical prefix:local form.
func (n Name) QName() string {
	return xmlnames.QName(n.Prefix, n.Local)
}

// Attr is an attribute, including namespace declarations.
type Attr struct {
	Name  Name
	Value string
}

// IsNamespaceDecl reports whether the attribute is an xmlns declaration.
func (a Attr) IsNamespaceDecl() bool {
	return xmlnames.IsNamespaceDecl(a.Name.Prefix, a.Name.Local)
}

// Element is an element node.
type Element struct {
	link
	Name     Name
	Attrs    []Attr
	Children []Node
}

// Text is a character data node.
type Text struct {
	link
	Data string
}

// Comment is a comment node.
type Comment struct {
	link
	Data string
}

// ProcInst is a processing instruction node.
type ProcInst struct {
	link
	Target string
	Inst   string
}

func (e *Element) NodeType() NodeType  { return ElementNode }
func (t *Text) NodeType() NodeType     { return TextNode }
func (c *Comment) NodeType() NodeType  { return CommentNode }
func (p *ProcInst) NodeType() NodeType { return ProcInstNode }

// Document holds a parsed root element.
type Document struct {
	Root *Element
}

// NewElement creates a detached element. Callers binding a prefix must also
// declare it, see DeclareNamespace.
func NewElement(space, prefix, local string) *Element {
	return &Element{Name: Name{Space: space, Prefix: prefix, Local: local}}
}

// Attr returns the value of the attribute with the given namespace and local name.
func (e *Element) Attr(space, local string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, a := range e.Attrs {
		if a.IsNamespaceDecl() {
			continue
		}
		if a.Name.Space == space && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets an unprefixed attribute, replacing an existing value.
func (e *Element) SetAttr(local, value string) {
	for i := range e.Attrs {
		a := &e.Attrs[i]
		if !a.IsNamespaceDecl() && a.Name.Space == "" && a.Name.Local == local {
			a.Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: Name{Local: local}, Value: value})
}

// ChildElements returns the element children in document order.
func (e *Element) ChildElements() []*Element {
	var out []*Element
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok {
			out = append(out, el)
		}
	}
	return out
}

// AppendChild moves n to the end of e's children. An element that already
// belongs to a tree is detached first, so a node never has two parents.
func (e *Element) AppendChild(n Node) {
	el, isElement := n.(*Element)
	if isElement {
		if el == e || el.contains(e) {
			panic("dom: cannot append an element to itself or its descendant")
		}
		el.Detach()
	} else if p := n.Parent(); p != nil {
		p.removeChild(n)
	}
	e.Children = append(e.Children, n)
	n.setParent(e)
	if isElement {
		el.pruneNamespaceDecls()
	}
}

// RemoveChild detaches n from e and reports whether n was a child.
func (e *Element) RemoveChild(n Node) bool {
	if n == nil || n.Parent() != e {
		return false
	}
	if el, ok := n.(*Element); ok {
		el.Detach()
		return true
	}
	return e.removeChild(n)
}

// Detach removes e from its parent. Namespace bindings the subtree inherits
// from its former ancestors are declared on e, so the detached subtree
// resolves every prefix on its own.
func (e *Element) Detach() {
	p := e.parent
	if p == nil {
		return
	}
	e.adoptNamespaces(p.InScopeNamespaces())
	p.removeChild(e)
}

func (e *Element) removeChild(n Node) bool {
	for i, c := range e.Children {
		if c == n {
			e.Children = append(e.Children[:i], e.Children[i+1:]...)
			n.setParent(nil)
			return true
		}
	}
	return false
}

func (e *Element) contains(n *Element) bool {
	for p := n; p != nil; p = p.parent {
		if p == e {
			return true
		}
	}
	return false
}

// Depth returns the number of ancestors of e.
func (e *Element) Depth() int {
	d := 0
	for p := e.parent; p != nil; p = p.parent {
		d++
	}
	return d
}
