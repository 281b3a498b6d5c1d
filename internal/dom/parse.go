package dom

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/jacoelho/svgsprite/errors"
	"github.com/jacoelho/svgsprite/internal/xmlnames"
)

// ParseOptions configures parsing.
type ParseOptions struct {
	// StripWhitespace drops text nodes made only of XML whitespace.
	StripWhitespace bool
}

// Parse builds a tree from XML input. Input that is not well-formed fails
// with an *errors.Error coded errors.ErrXMLParse, or errors.ErrNoRoot when
// the input holds no element at all.
func Parse(r io.Reader, opts ParseOptions) (*Document, error) {
	decoder := xml.NewDecoder(r)
	decoder.Strict = true
	decoder.CharsetReader = charset.NewReaderLabel

	var stack []*Element
	var root *Element

	for {
		line, column := decoder.InputPos()
		tok, err := decoder.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, tokenError(decoder, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil && len(stack) == 0 {
				return nil, parseErrorf(line, column, "unexpected element <%s> after document end", rawName(t.Name))
			}
			elem := &Element{
				Name:  Name{Prefix: t.Name.Space, Local: t.Name.Local},
				Attrs: make([]Attr, 0, len(t.Attr)),
			}
			for _, a := range t.Attr {
				elem.Attrs = append(elem.Attrs, Attr{
					Name:  Name{Prefix: a.Name.Space, Local: a.Name.Local},
					Value: normalizeAttrValue(a.Value),
				})
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, elem)
				elem.parent = parent
			} else {
				root = elem
			}
			if err := resolveNames(elem); err != nil {
				return nil, err.AtPosition(line, column)
			}
			stack = append(stack, elem)

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, parseErrorf(line, column, "unexpected end element </%s>", rawName(t.Name))
			}
			top := stack[len(stack)-1]
			if got := rawName(t.Name); got != top.Name.QName() {
				return nil, parseErrorf(line, column, "element <%s> closed by </%s>", top.Name.QName(), got)
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) == 0 {
				if !isIgnorableOutsideRoot(t) {
					return nil, parseErrorf(line, column, "unexpected character data outside root element")
				}
				continue
			}
			if opts.StripWhitespace && isWhitespace(t) {
				continue
			}
			appendText(stack[len(stack)-1], string(t))

		case xml.Comment:
			if len(stack) > 0 {
				appendNode(stack[len(stack)-1], &Comment{Data: string(t)})
			}

		case xml.ProcInst:
			if t.Target == "xml" {
				continue
			}
			if len(stack) > 0 {
				appendNode(stack[len(stack)-1], &ProcInst{Target: t.Target, Inst: string(t.Inst)})
			}

		case xml.Directive:
			if len(stack) > 0 {
				return nil, parseErrorf(line, column, "unexpected directive inside element <%s>", stack[len(stack)-1].Name.QName())
			}
		}
	}

	if root == nil {
		return nil, errors.New(errors.ErrNoRoot, "document has no root element")
	}
	if len(stack) > 0 {
		line, column := decoder.InputPos()
		return nil, parseErrorf(line, column, "unexpected EOF: element <%s> not closed", stack[len(stack)-1].Name.QName())
	}

	return &Document{Root: root}, nil
}

func resolveNames(elem *Element) *errors.Error {
	space, ok := elem.LookupNamespace(elem.Name.Prefix)
	if !ok {
		return errors.Newf(errors.ErrXMLParse, "unbound namespace prefix %q on element <%s>", elem.Name.Prefix, elem.Name.QName())
	}
	elem.Name.Space = space

	seen := make(map[Name]struct{}, len(elem.Attrs))
	for i := range elem.Attrs {
		a := &elem.Attrs[i]
		switch {
		case a.IsNamespaceDecl():
			a.Name.Space = xmlnames.XMLNSNamespace
			if err := checkDeclaration(*a); err != nil {
				return err
			}
		case a.Name.Prefix == "":
			a.Name.Space = ""
		default:
			space, ok := elem.LookupNamespace(a.Name.Prefix)
			if !ok {
				return errors.Newf(errors.ErrXMLParse, "unbound namespace prefix %q on attribute %s", a.Name.Prefix, a.Name.QName())
			}
			a.Name.Space = space
		}
		key := Name{Space: a.Name.Space, Local: a.Name.Local}
		if a.IsNamespaceDecl() {
			key.Prefix = xmlnames.DeclaredPrefix(a.Name.Prefix, a.Name.Local)
		}
		if _, dup := seen[key]; dup {
			return errors.Newf(errors.ErrXMLParse, "duplicate attribute %s on element <%s>", a.Name.QName(), elem.Name.QName())
		}
		seen[key] = struct{}{}
	}
	return nil
}

func checkDeclaration(a Attr) *errors.Error {
	prefix := xmlnames.DeclaredPrefix(a.Name.Prefix, a.Name.Local)
	switch {
	case prefix == xmlnames.XMLPrefix && a.Value != xmlnames.XMLNamespace:
		return errors.Newf(errors.ErrXMLParse, "prefix %s must be bound to %s", xmlnames.XMLPrefix, xmlnames.XMLNamespace)
	case prefix == xmlnames.XMLNSPrefix:
		return errors.Newf(errors.ErrXMLParse, "prefix %s must not be declared", xmlnames.XMLNSPrefix)
	case prefix != "" && a.Value == "":
		return errors.Newf(errors.ErrXMLParse, "prefix %s cannot be bound to an empty namespace", prefix)
	}
	return nil
}

func appendNode(parent *Element, n Node) {
	parent.Children = append(parent.Children, n)
	n.setParent(parent)
}

// appendText coalesces adjacent character data, which encoding/xml may
// split at CDATA section and entity boundaries.
func appendText(parent *Element, data string) {
	if n := len(parent.Children); n > 0 {
		if last, ok := parent.Children[n-1].(*Text); ok {
			last.Data += data
			return
		}
	}
	appendNode(parent, &Text{Data: data})
}

func rawName(n xml.Name) string {
	return xmlnames.QName(n.Space, n.Local)
}

func tokenError(decoder *xml.Decoder, err error) *errors.Error {
	line, column := decoder.InputPos()
	if se, ok := err.(*xml.SyntaxError); ok {
		return parseErrorf(se.Line, column, "%s", se.Msg)
	}
	if err == io.ErrUnexpectedEOF {
		return parseErrorf(line, column, "unexpected EOF")
	}
	return errors.Wrap(errors.ErrXMLParse, err, "read token").AtPosition(line, column)
}

func parseErrorf(line, column int, format string, args ...any) *errors.Error {
	return errors.New(errors.ErrXMLParse, fmt.Sprintf(format, args...)).AtPosition(line, column)
}

func isWhitespace(data []byte) bool {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
		default:
			return false
		}
	}
	return true
}

func isIgnorableOutsideRoot(data []byte) bool {
	s := string(data)
	for _, r := range s {
		switch r {
		case '\uFEFF', ' ', '\t', '\n', '\r':
		default:
			return false
		}
	}
	return true
}

var attrWhitespace = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

// normalizeAttrValue maps literal tab, newline and carriage return to a
// space, as XML attribute-value normalization requires for CDATA values.
// RawToken has already expanded character references, so &#10; and a
// literal newline are indistinguishable here and both become a space.
func normalizeAttrValue(v string) string {
	if !strings.ContainsAny(v, "\t\n\r") {
		return v
	}
	return attrWhitespace.Replace(v)
}
