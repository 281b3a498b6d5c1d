package xmlwrite

import (
	"bufio"
	"io"
	"strings"

	"github.com/jacoelho/svgsprite/internal/dom"
)

// Declaration is the XML declaration written by WriteRaw when requested.
const Declaration = `<?xml version="1.0" encoding="UTF-8"?>`

// RawOptions configures raw serialization.
type RawOptions struct {
	// XMLDeclaration prefixes the output with Declaration and a newline.
	XMLDeclaration bool
}

// WriteRaw serializes root compactly as UTF-8, keeping prefixes, namespace
// declarations, text, comments and processing instructions as they are in
// the tree. Elements without children are self-closed.
func WriteRaw(w io.Writer, root *dom.Element, opts RawOptions) error {
	bw := bufio.NewWriter(w)
	if opts.XMLDeclaration {
		bw.WriteString(Declaration)
		bw.WriteByte('\n')
	}
	writeRawElement(bw, root)
	return bw.Flush()
}

func writeRawElement(bw *bufio.Writer, e *dom.Element) {
	bw.WriteByte('<')
	bw.WriteString(e.Name.QName())
	for _, a := range e.Attrs {
		bw.WriteByte(' ')
		bw.WriteString(a.Name.QName())
		bw.WriteString(`="`)
		rawAttrEscaper.WriteString(bw, a.Value)
		bw.WriteByte('"')
	}
	if len(e.Children) == 0 {
		bw.WriteString("/>")
		return
	}
	bw.WriteByte('>')
	for _, c := range e.Children {
		switch n := c.(type) {
		case *dom.Element:
			writeRawElement(bw, n)
		case *dom.Text:
			rawTextEscaper.WriteString(bw, n.Data)
		case *dom.Comment:
			bw.WriteString("<!--")
			bw.WriteString(n.Data)
			bw.WriteString("-->")
		case *dom.ProcInst:
			writeProcInst(bw, n)
		}
	}
	bw.WriteString("</")
	bw.WriteString(e.Name.QName())
	bw.WriteByte('>')
}

func writeProcInst(bw *bufio.Writer, pi *dom.ProcInst) {
	bw.WriteString("<?")
	bw.WriteString(pi.Target)
	if inst := strings.TrimSpace(pi.Inst); inst != "" {
		bw.WriteByte(' ')
		bw.WriteString(inst)
	}
	bw.WriteString("?>")
}
