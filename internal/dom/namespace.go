package dom

import (
	"maps"
	"slices"

	"github.com/jacoelho/svgsprite/internal/xmlnames"
)

// Declarations returns the namespace bindings declared on e, keyed by prefix.
// The default namespace uses the empty prefix; an empty URI undeclares it.
func (e *Element) Declarations() map[string]string {
	decls := make(map[string]string)
	for _, a := range e.Attrs {
		if a.IsNamespaceDecl() {
			decls[xmlnames.DeclaredPrefix(a.Name.Prefix, a.Name.Local)] = a.Value
		}
	}
	return decls
}

// DeclareNamespace binds prefix to uri on e, replacing an existing
// declaration of the same prefix.
func (e *Element) DeclareNamespace(prefix, uri string) {
	name := Name{Space: xmlnames.XMLNSNamespace, Prefix: xmlnames.XMLNSPrefix, Local: prefix}
	if prefix == "" {
		name = Name{Space: xmlnames.XMLNSNamespace, Local: xmlnames.XMLNSPrefix}
	}
	for i := range e.Attrs {
		a := &e.Attrs[i]
		if a.IsNamespaceDecl() && xmlnames.DeclaredPrefix(a.Name.Prefix, a.Name.Local) == prefix {
			a.Value = uri
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: uri})
}

// LookupNamespace resolves prefix against e and its ancestors. The xml
// prefix is always bound; an undeclared default namespace resolves to "".
func (e *Element) LookupNamespace(prefix string) (string, bool) {
	if prefix == xmlnames.XMLPrefix {
		return xmlnames.XMLNamespace, true
	}
	for el := e; el != nil; el = el.parent {
		for _, a := range el.Attrs {
			if a.IsNamespaceDecl() && xmlnames.DeclaredPrefix(a.Name.Prefix, a.Name.Local) == prefix {
				return a.Value, true
			}
		}
	}
	if prefix == "" {
		return "", true
	}
	return "", false
}

// InScopeNamespaces returns every binding visible at e, keyed by prefix.
func (e *Element) InScopeNamespaces() map[string]string {
	var chain []*Element
	for el := e; el != nil; el = el.parent {
		chain = append(chain, el)
	}
	scope := make(map[string]string)
	for i := len(chain) - 1; i >= 0; i-- {
		for prefix, uri := range chain[i].Declarations() {
			scope[prefix] = uri
		}
	}
	return scope
}

// adoptNamespaces declares on e each binding from inherited that some node
// in e's subtree relies on without declaring it itself.
func (e *Element) adoptNamespaces(inherited map[string]string) {
	free := make(map[string]struct{})
	e.collectFreePrefixes(map[string]struct{}{}, free)
	for _, prefix := range slices.Sorted(maps.Keys(free)) {
		uri, ok := inherited[prefix]
		if !ok {
			if prefix != "" {
				continue
			}
			uri = ""
		}
		e.DeclareNamespace(prefix, uri)
	}
}

func (e *Element) collectFreePrefixes(bound, free map[string]struct{}) {
	scope := bound
	if decls := e.Declarations(); len(decls) > 0 {
		scope = make(map[string]struct{}, len(bound)+len(decls))
		for p := range bound {
			scope[p] = struct{}{}
		}
		for p := range decls {
			scope[p] = struct{}{}
		}
	}
	use := func(prefix string) {
		if prefix == xmlnames.XMLPrefix {
			return
		}
		if _, ok := scope[prefix]; !ok {
			free[prefix] = struct{}{}
		}
	}
	use(e.Name.Prefix)
	for _, a := range e.Attrs {
		if a.IsNamespaceDecl() || a.Name.Prefix == "" {
			continue
		}
		use(a.Name.Prefix)
	}
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok {
			el.collectFreePrefixes(scope, free)
		}
	}
}

// pruneNamespaceDecls drops declarations on e that repeat the binding
// already in scope at its parent.
func (e *Element) pruneNamespaceDecls() {
	if e.parent == nil {
		return
	}
	kept := e.Attrs[:0]
	for _, a := range e.Attrs {
		if a.IsNamespaceDecl() {
			prefix := xmlnames.DeclaredPrefix(a.Name.Prefix, a.Name.Local)
			if uri, ok := e.parent.LookupNamespace(prefix); ok && uri == a.Value {
				continue
			}
		}
		kept = append(kept, a)
	}
	e.Attrs = kept
}
