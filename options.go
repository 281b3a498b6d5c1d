package svgsprite

import (
	"fmt"
	"strings"

	"github.com/jacoelho/svgsprite/errors"
)

// Mode selects how a sprite is serialized.
type Mode int

const (
	// ModeRaw writes the tree compactly as assembled, keeping whitespace,
	// comments, prefixes and attribute order from the sources.
	ModeRaw Mode = iota
	// ModeCanonical writes Canonical XML 1.0 without comments and without
	// whitespace-only text, which is byte-for-byte deterministic.
	ModeCanonical
)

// String returns the mode name accepted by ParseMode.
func (m Mode) String() string {
	switch m {
	case ModeRaw:
		return "raw"
	case ModeCanonical:
		return "canonical"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses a mode name. "c14n" is accepted as an alias for
// canonical; matching is case-insensitive.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "raw":
		return ModeRaw, nil
	case "canonical", "c14n":
		return ModeCanonical, nil
	default:
		return 0, errors.Newf(errors.ErrConfig, "unknown mode %q (want raw or canonical)", s)
	}
}

// EncodeOptions configures sprite serialization.
type EncodeOptions struct {
	Mode Mode
	// XMLDeclaration prefixes raw output with an XML declaration. Canonical
	// output never carries one.
	XMLDeclaration bool
}

func (o EncodeOptions) validate() error {
	switch o.Mode {
	case ModeRaw, ModeCanonical:
		return nil
	default:
		return errors.Newf(errors.ErrConfig, "unknown mode %s", o.Mode)
	}
}
