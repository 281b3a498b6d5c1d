package xmlnames

const (
	// XMLPrefix is the reserved prefix for the XML namespace.
	XMLPrefix = "xml"
	// XMLNSPrefix is the reserved prefix for namespace declarations.
	XMLNSPrefix = "xmlns"
	// XMLNamespace is the XML namespace URI.
	XMLNamespace = "http://www.w3.org/XML/1998/namespace"
	// XMLNSNamespace is the XMLNS namespace URI.
	XMLNSNamespace = "http://www.w3.org/2000/xmlns/"
	// SVGNamespace is the SVG namespace URI.
	SVGNamespace = "http://www.w3.org/2000/svg"
	// XLinkNamespace is the XLink namespace URI used by older SVG href attributes.
	XLinkNamespace = "http://www.w3.org/1999/xlink"
)

// QName joins prefix and local into a lexical qualified name.
func QName(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}

// IsNamespaceDecl reports whether the raw attribute name prefix:local
// declares a namespace binding.
func IsNamespaceDecl(prefix, local string) bool {
	return prefix == XMLNSPrefix || (prefix == "" && local == XMLNSPrefix)
}

// DeclaredPrefix returns the prefix bound by a namespace declaration
// attribute; the default namespace is reported as the empty prefix.
func DeclaredPrefix(prefix, local string) string {
	if prefix == XMLNSPrefix {
		return local
	}
	return ""
}
