package dom

import (
	"testing"

	"github.com/jacoelho/svgsprite/internal/xmlnames"
)

func ids(elems []*Element) []string {
	out := make([]string, 0, len(elems))
	for _, el := range elems {
		id, _ := el.Attr("", "id")
		out = append(out, id)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFindAllNamespaceSelectivity(t *testing.T) {
	input := `<svg xmlns="http://www.w3.org/2000/svg" xmlns:o="urn:other">
  <symbol id="one"/>
  <g><symbol id="two"/></g>
  <o:symbol id="other"/>
  <plain xmlns=""><symbol id="none"/></plain>
  <s:symbol xmlns:s="http://www.w3.org/2000/svg" id="three"/>
</svg>`
	doc := mustParse(t, input, ParseOptions{StripWhitespace: true})

	got := ids(FindAll(doc.Root, xmlnames.SVGNamespace, "symbol"))
	want := []string{"one", "two", "three"}
	if !equalStrings(got, want) {
		t.Fatalf("FindAll() = %v, want %v", got, want)
	}
}

func TestFindAllIncludesRoot(t *testing.T) {
	doc := mustParse(t, `<symbol xmlns="http://www.w3.org/2000/svg" id="root"/>`, ParseOptions{})
	got := ids(FindAll(doc.Root, xmlnames.SVGNamespace, "symbol"))
	if !equalStrings(got, []string{"root"}) {
		t.Fatalf("FindAll() = %v, want [root]", got)
	}
}

func TestFindAllNoMatches(t *testing.T) {
	doc := mustParse(t, `<svg xmlns="http://www.w3.org/2000/svg"><path d="M0 0"/></svg>`, ParseOptions{})
	if got := FindAll(doc.Root, xmlnames.SVGNamespace, "symbol"); len(got) != 0 {
		t.Fatalf("FindAll() = %v, want empty", ids(got))
	}
}

func TestOutermost(t *testing.T) {
	input := `<svg xmlns="http://www.w3.org/2000/svg"><symbol id="outer"><symbol id="inner"/></symbol><symbol id="next"/></svg>`
	doc := mustParse(t, input, ParseOptions{})
	all := FindAll(doc.Root, xmlnames.SVGNamespace, "symbol")
	if got := ids(all); !equalStrings(got, []string{"outer", "inner", "next"}) {
		t.Fatalf("FindAll() = %v", got)
	}
	if got := ids(Outermost(all)); !equalStrings(got, []string{"outer", "next"}) {
		t.Fatalf("Outermost() = %v, want [outer next]", got)
	}
}

func TestWalkSkipsSubtree(t *testing.T) {
	doc := mustParse(t, `<a><b><c/></b><d/></a>`, ParseOptions{})
	var seen []string
	Walk(doc.Root, func(el *Element) bool {
		seen = append(seen, el.Name.Local)
		return el.Name.Local != "b"
	})
	if !equalStrings(seen, []string{"a", "b", "d"}) {
		t.Fatalf("Walk() visited %v, want [a b d]", seen)
	}
}
