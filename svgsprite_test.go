package svgsprite

import (
	"bytes"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/jacoelho/svgsprite/errors"
)

func mapFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, data := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(data)}
	}
	return fsys
}

func TestEnumerate(t *testing.T) {
	fsys := mapFS(map[string]string{
		"b.svg":       "<svg/>",
		"a.svg":       "<svg/>",
		"notes.txt":   "x",
		"sub/c.svg":   "<svg/>",
		"dir.svg/d.x": "x",
	})

	got, err := Enumerate(fsys, "*.svg")
	if err != nil {
		t.Fatalf("Enumerate() error = %v", err)
	}
	if want := []string{"a.svg", "b.svg"}; !slices.Equal(got, want) {
		t.Fatalf("Enumerate() = %v, want %v", got, want)
	}
}

func TestEnumerateSkipsDanglingSymlinks(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.svg"), []byte("<svg/>"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.Symlink(filepath.Join(dir, "gone.svg"), filepath.Join(dir, "b.svg")); err != nil {
		t.Skipf("symlink: %v", err)
	}

	got, err := Enumerate(os.DirFS(dir), "*.svg")
	if err != nil {
		t.Fatalf("Enumerate() error = %v", err)
	}
	if want := []string{"a.svg"}; !slices.Equal(got, want) {
		t.Fatalf("Enumerate() = %v, want %v", got, want)
	}
}

func TestEnumerateNoMatches(t *testing.T) {
	got, err := Enumerate(fstest.MapFS{}, "*.svg")
	if err != nil {
		t.Fatalf("Enumerate() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Enumerate() = %v, want empty", got)
	}
}

func TestEnumerateBadPattern(t *testing.T) {
	_, err := Enumerate(fstest.MapFS{}, "[")
	if !errors.HasCode(err, errors.ErrConfig) {
		t.Fatalf("Enumerate() error = %v, want %s", err, errors.ErrConfig)
	}
}

func TestParseFileErrors(t *testing.T) {
	fsys := mapFS(map[string]string{"bad.svg": "<svg><symbol></svg>"})

	_, err := ParseFile(fsys, "bad.svg", ParseOptions{})
	e, ok := errors.AsError(err)
	if !ok || e.Code != errors.ErrXMLParse {
		t.Fatalf("ParseFile() error = %v, want %s", err, errors.ErrXMLParse)
	}
	if e.Path != "bad.svg" {
		t.Fatalf("Path = %q, want %q", e.Path, "bad.svg")
	}

	_, err = ParseFile(fsys, "missing.svg", ParseOptions{})
	if !errors.HasCode(err, errors.ErrIO) {
		t.Fatalf("ParseFile(missing) error = %v, want %s", err, errors.ErrIO)
	}
	if !stderrors.Is(err, fs.ErrNotExist) {
		t.Fatalf("ParseFile(missing) error = %v, want fs.ErrNotExist", err)
	}
}

func TestExtractSymbols(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:o="urn:other">
  <symbol id="one"/>
  <defs><symbol id="two"/></defs>
  <o:symbol id="skip"/>
</svg>`), ParseOptions{StripWhitespace: true})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	syms := ExtractSymbols(doc)
	var ids []string
	for _, s := range syms {
		ids = append(ids, s.ID())
	}
	if want := []string{"one", "two"}; !slices.Equal(ids, want) {
		t.Fatalf("ExtractSymbols() = %v, want %v", ids, want)
	}
	if got := ExtractSymbols(nil); got != nil {
		t.Fatalf("ExtractSymbols(nil) = %v, want nil", got)
	}
}

func TestSpriteAppendMovesSymbols(t *testing.T) {
	fsys := mapFS(map[string]string{
		"a.svg": `<svg xmlns="http://www.w3.org/2000/svg"><symbol id="a"/></svg>`,
		"b.svg": `<svg xmlns="http://www.w3.org/2000/svg"><symbol id="b1"/><symbol id="b2"/></svg>`,
	})
	files, err := Enumerate(fsys, "*.svg")
	if err != nil {
		t.Fatalf("Enumerate() error = %v", err)
	}

	sprite := NewSprite()
	var docs []*Document
	for _, name := range files {
		doc, err := ParseFile(fsys, name, ParseOptions{})
		if err != nil {
			t.Fatalf("ParseFile(%s) error = %v", name, err)
		}
		docs = append(docs, doc)
		for _, sym := range ExtractSymbols(doc) {
			sprite.Append(sym)
		}
	}

	if want := []string{"a", "b1", "b2"}; !slices.Equal(sprite.IDs(), want) {
		t.Fatalf("IDs() = %v, want %v", sprite.IDs(), want)
	}
	if sprite.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", sprite.Len())
	}
	for _, doc := range docs {
		if left := ExtractSymbols(doc); len(left) != 0 {
			t.Fatalf("%s still holds %d symbols after append", doc.Path, len(left))
		}
	}
	if src, ok := sprite.Source("b2"); !ok || src != "b.svg" {
		t.Fatalf("Source(b2) = %q, %v; want b.svg", src, ok)
	}

	var buf bytes.Buffer
	if err := sprite.Encode(&buf, EncodeOptions{Mode: ModeRaw}); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	want := `<svg xmlns="http://www.w3.org/2000/svg"><symbol id="a"/><symbol id="b1"/><symbol id="b2"/></svg>`
	if buf.String() != want {
		t.Fatalf("Encode() = %q, want %q", buf.String(), want)
	}
}

func TestSpriteEncodeEmpty(t *testing.T) {
	tests := []struct {
		name string
		opts EncodeOptions
		want string
	}{
		{name: "raw", opts: EncodeOptions{Mode: ModeRaw}, want: `<svg xmlns="http://www.w3.org/2000/svg"/>`},
		{name: "canonical", opts: EncodeOptions{Mode: ModeCanonical}, want: `<svg xmlns="http://www.w3.org/2000/svg"></svg>`},
		{name: "canonical ignores declaration", opts: EncodeOptions{Mode: ModeCanonical, XMLDeclaration: true}, want: `<svg xmlns="http://www.w3.org/2000/svg"></svg>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewSprite().Encode(&buf, tt.opts); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Fatalf("Encode() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestSpriteEncodeUnknownMode(t *testing.T) {
	var buf bytes.Buffer
	err := NewSprite().Encode(&buf, EncodeOptions{Mode: Mode(9)})
	if !errors.HasCode(err, errors.ErrConfig) {
		t.Fatalf("Encode() error = %v, want %s", err, errors.ErrConfig)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "raw", want: ModeRaw},
		{in: "canonical", want: ModeCanonical},
		{in: " C14N ", want: ModeCanonical},
		{in: "pretty", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if tt.wantErr {
			if !errors.HasCode(err, errors.ErrConfig) {
				t.Fatalf("ParseMode(%q) error = %v, want %s", tt.in, err, errors.ErrConfig)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("ParseMode(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{mode: ModeRaw, want: "raw"},
		{mode: ModeCanonical, want: "canonical"},
		{mode: Mode(7), want: "Mode(7)"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Fatalf("String() = %q, want %q", got, tt.want)
		}
	}
}
