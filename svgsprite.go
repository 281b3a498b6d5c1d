// Package svgsprite merges SVG icon files into a single sprite sheet.
//
// A build enumerates the files matching a glob pattern, parses each one,
// extracts every <symbol> element in the SVG namespace and moves it under a
// new root <svg> element, which is then written to a destination file in
// canonical or raw form.
package svgsprite

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/jacoelho/svgsprite/errors"
	"github.com/jacoelho/svgsprite/internal/dom"
	"github.com/jacoelho/svgsprite/internal/xmlnames"
)

const (
	// SVGNamespace is the namespace symbols must be declared in to be extracted.
	SVGNamespace = xmlnames.SVGNamespace
	// DefaultPattern is the glob used when a Config leaves Pattern empty.
	DefaultPattern = "*.svg"
)

// ParseOptions configures parsing of source documents.
type ParseOptions struct {
	// StripWhitespace drops whitespace-only text nodes while parsing, so
	// merged symbols carry no indentation from their source files.
	StripWhitespace bool
}

// Document is a parsed source icon document.
type Document struct {
	doc  *dom.Document
	Path string
}

// Symbol is a <symbol> element extracted from a Document.
type Symbol struct {
	elem   *dom.Element
	Source string
}

// ID returns the symbol's id attribute, or "" when it has none.
func (s Symbol) ID() string {
	id, _ := s.elem.Attr("", "id")
	return id
}

// Enumerate returns the regular files in fsys matching the non-recursive
// glob pattern, in lexical order. No match is not an error. Matches that
// vanish or dangle before they can be stat'ed are left out.
func Enumerate(fsys fs.FS, pattern string) ([]string, error) {
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, errors.Wrap(errors.ErrConfig, err, fmt.Sprintf("invalid pattern %q", pattern))
	}
	files := matches[:0]
	for _, name := range matches {
		info, err := fs.Stat(fsys, name)
		if stderrors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, errors.WithPath(errors.Wrap(errors.ErrIO, err, "stat source"), name)
		}
		if info.Mode().IsRegular() {
			files = append(files, name)
		}
	}
	return files, nil
}

// Parse parses a source document from r.
func Parse(r io.Reader, opts ParseOptions) (*Document, error) {
	doc, err := dom.Parse(r, dom.ParseOptions{StripWhitespace: opts.StripWhitespace})
	if err != nil {
		return nil, err
	}
	return &Document{doc: doc}, nil
}

// ParseFile opens name in fsys and parses it. The file is closed before
// ParseFile returns.
func ParseFile(fsys fs.FS, name string, opts ParseOptions) (doc *Document, err error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, errors.WithPath(errors.Wrap(errors.ErrIO, err, "open source"), name)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = errors.WithPath(errors.Wrap(errors.ErrIO, closeErr, "close source"), name)
		}
	}()

	doc, err = Parse(f, opts)
	if err != nil {
		return nil, errors.WithPath(err, name)
	}
	doc.Path = name
	return doc, nil
}

// ExtractSymbols returns every element of doc named symbol in the SVG
// namespace, at any depth and including the root, in document order.
func ExtractSymbols(doc *Document) []Symbol {
	if doc == nil || doc.doc == nil {
		return nil
	}
	elems := dom.FindAll(doc.doc.Root, SVGNamespace, "symbol")
	return toSymbols(elems, doc.Path)
}

// outermost drops symbols nested inside another symbol of syms; those move
// together with their ancestor.
func outermost(syms []Symbol) []Symbol {
	if len(syms) < 2 {
		return syms
	}
	elems := make([]*dom.Element, len(syms))
	sources := make(map[*dom.Element]string, len(syms))
	for i, sym := range syms {
		elems[i] = sym.elem
		sources[sym.elem] = sym.Source
	}
	kept := dom.Outermost(elems)
	out := make([]Symbol, len(kept))
	for i, el := range kept {
		out[i] = Symbol{elem: el, Source: sources[el]}
	}
	return out
}

func toSymbols(elems []*dom.Element, source string) []Symbol {
	out := make([]Symbol, len(elems))
	for i, el := range elems {
		out[i] = Symbol{elem: el, Source: source}
	}
	return out
}
