package svgsprite

import (
	"io"

	"github.com/jacoelho/svgsprite/errors"
	"github.com/jacoelho/svgsprite/internal/dom"
	"github.com/jacoelho/svgsprite/internal/xmlwrite"
)

// Sprite accumulates symbols under a single root <svg> element that binds
// the SVG namespace to the default prefix.
type Sprite struct {
	root    *dom.Element
	sources map[string]string
}

// NewSprite returns an empty sprite.
func NewSprite() *Sprite {
	root := dom.NewElement(SVGNamespace, "", "svg")
	root.DeclareNamespace("", SVGNamespace)
	return &Sprite{root: root, sources: make(map[string]string)}
}

// Append moves sym to the end of the sprite. The symbol leaves its source
// document; namespace bindings it inherited there are declared on the
// symbol unless the sprite root already provides them.
func (s *Sprite) Append(sym Symbol) {
	if sym.elem == nil {
		return
	}
	s.root.AppendChild(sym.elem)
	if id := sym.ID(); id != "" {
		if _, seen := s.sources[id]; !seen {
			s.sources[id] = sym.Source
		}
	}
}

// Source reports the source of the first appended symbol with the given id.
func (s *Sprite) Source(id string) (string, bool) {
	src, ok := s.sources[id]
	return src, ok
}

// Len returns the number of direct children of the sprite root.
func (s *Sprite) Len() int {
	return len(s.root.Children)
}

// IDs returns the ids of the root's symbol children in order; symbols
// without an id contribute "".
func (s *Sprite) IDs() []string {
	ids := make([]string, 0, len(s.root.Children))
	for _, el := range s.root.ChildElements() {
		id, _ := el.Attr("", "id")
		ids = append(ids, id)
	}
	return ids
}

// Encode serializes the sprite to w.
func (s *Sprite) Encode(w io.Writer, opts EncodeOptions) error {
	if err := opts.validate(); err != nil {
		return err
	}
	var err error
	switch opts.Mode {
	case ModeCanonical:
		err = xmlwrite.WriteCanonical(w, s.root)
	default:
		err = xmlwrite.WriteRaw(w, s.root, xmlwrite.RawOptions{XMLDeclaration: opts.XMLDeclaration})
	}
	if err != nil {
		return errors.Wrap(errors.ErrIO, err, "encode sprite")
	}
	return nil
}

// WriteFile serializes the sprite to path, replacing any previous content.
// The file is replaced atomically: on failure the previous content is left
// in place. It returns the number of bytes written.
func (s *Sprite) WriteFile(path string, opts EncodeOptions) (int64, error) {
	if err := opts.validate(); err != nil {
		return 0, err
	}
	n, err := writeFileAtomic(path, 0o644, func(w io.Writer) error {
		return s.Encode(w, opts)
	})
	if err != nil {
		if _, ok := errors.AsError(err); !ok {
			err = errors.Wrap(errors.ErrIO, err, "write sprite")
		}
		return 0, errors.WithPath(err, path)
	}
	return n, nil
}
