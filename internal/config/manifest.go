package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jacoelho/svgsprite"
	"github.com/jacoelho/svgsprite/errors"
)

// Manifest lists the sprite pipelines of a project.
type Manifest struct {
	Sprites []Sprite `yaml:"sprites"`
}

// Sprite configures one pipeline in a manifest.
type Sprite struct {
	Name            string `yaml:"name"`
	SourceDir       string `yaml:"source_dir"`
	Pattern         string `yaml:"pattern,omitempty"`
	Seed            string `yaml:"seed,omitempty"`
	Destination     string `yaml:"destination"`
	Mode            string `yaml:"mode,omitempty"`
	StripWhitespace bool   `yaml:"strip_whitespace,omitempty"`
	XMLDeclaration  bool   `yaml:"xml_declaration,omitempty"`
}

// LoadManifest reads a YAML manifest. Relative paths in it resolve against
// the manifest's directory.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, errors.WithPath(errors.Wrap(errors.ErrIO, err, "read manifest"), path)
	}
	m, err := ParseManifest(bytes.NewReader(data), filepath.Dir(path))
	if err != nil {
		return Manifest{}, errors.WithPath(err, path)
	}
	return m, nil
}

// ParseManifest decodes and validates a YAML manifest, resolving relative
// paths against baseDir. Unknown fields are rejected.
func ParseManifest(r io.Reader, baseDir string) (Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if err == io.EOF {
			return Manifest{}, errors.New(errors.ErrConfig, "manifest is empty")
		}
		return Manifest{}, errors.Wrap(errors.ErrConfig, err, "decode manifest")
	}
	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	for i := range m.Sprites {
		m.Sprites[i].resolvePaths(baseDir)
	}
	return m, nil
}

// Validate reports manifest errors.
func (m Manifest) Validate() error {
	if len(m.Sprites) == 0 {
		return errors.New(errors.ErrConfig, "manifest declares no sprites")
	}
	seen := make(map[string]struct{}, len(m.Sprites))
	for i, s := range m.Sprites {
		if s.Name == "" {
			return errors.Newf(errors.ErrConfig, "sprite %d: name is required", i)
		}
		if _, dup := seen[s.Name]; dup {
			return errors.Newf(errors.ErrConfig, "sprite %q declared twice", s.Name)
		}
		seen[s.Name] = struct{}{}
		if s.SourceDir == "" {
			return errors.Newf(errors.ErrConfig, "sprite %q: source_dir is required", s.Name)
		}
		if s.Destination == "" {
			return errors.Newf(errors.ErrConfig, "sprite %q: destination is required", s.Name)
		}
		if _, err := s.mode(); err != nil {
			return fmt.Errorf("sprite %q: %w", s.Name, err)
		}
	}
	return nil
}

// Select returns the sprite named name.
func (m Manifest) Select(name string) (Sprite, bool) {
	for _, s := range m.Sprites {
		if s.Name == name {
			return s, true
		}
	}
	return Sprite{}, false
}

// BuildConfig converts s into a build configuration.
func (s Sprite) BuildConfig() (svgsprite.Config, error) {
	mode, err := s.mode()
	if err != nil {
		return svgsprite.Config{}, err
	}
	return svgsprite.Config{
		SourceDir:       s.SourceDir,
		Pattern:         s.Pattern,
		Seed:            s.Seed,
		Destination:     s.Destination,
		Mode:            mode,
		StripWhitespace: s.StripWhitespace,
		XMLDeclaration:  s.XMLDeclaration,
	}, nil
}

func (s Sprite) mode() (svgsprite.Mode, error) {
	if s.Mode == "" {
		return svgsprite.ModeRaw, nil
	}
	return svgsprite.ParseMode(s.Mode)
}

func (s *Sprite) resolvePaths(baseDir string) {
	s.SourceDir = resolve(baseDir, s.SourceDir)
	s.Seed = resolve(baseDir, s.Seed)
	s.Destination = resolve(baseDir, s.Destination)
}

func resolve(baseDir, p string) string {
	if p == "" || filepath.IsAbs(p) || baseDir == "" {
		return p
	}
	return filepath.Join(baseDir, filepath.FromSlash(p))
}
