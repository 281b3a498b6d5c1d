package svgsprite

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/jacoelho/svgsprite/errors"
)

// Config describes one sprite build.
type Config struct {
	// Logger receives per-file debug events and the run summary.
	// A nil Logger disables logging.
	Logger *zerolog.Logger
	// SourceDir is the directory searched with Pattern. Empty means ".".
	SourceDir string
	// Pattern is a non-recursive glob relative to SourceDir. Empty means DefaultPattern.
	Pattern string
	// Seed is an optional extra source processed before the matched files.
	Seed string
	// Destination is the sprite file to write.
	Destination string
	// Mode selects canonical or raw serialization.
	Mode Mode
	// StripWhitespace drops whitespace-only text while parsing sources.
	StripWhitespace bool
	// XMLDeclaration prefixes raw output with an XML declaration.
	XMLDeclaration bool
}

// Result summarizes a completed build.
type Result struct {
	Destination string
	Files       int
	Symbols     int
	Bytes       int64
}

// Validate reports configuration errors.
func (c Config) Validate() error {
	if c.Destination == "" {
		return errors.New(errors.ErrConfig, "destination is required")
	}
	if _, err := path.Match(c.pattern(), ""); err != nil {
		return errors.Wrap(errors.ErrConfig, err, fmt.Sprintf("invalid pattern %q", c.pattern()))
	}
	return EncodeOptions{Mode: c.Mode}.validate()
}

func (c Config) sourceDir() string {
	if c.SourceDir == "" {
		return "."
	}
	return c.SourceDir
}

func (c Config) pattern() string {
	if c.Pattern == "" {
		return DefaultPattern
	}
	return c.Pattern
}

func (c Config) logger() zerolog.Logger {
	if c.Logger == nil {
		return zerolog.Nop()
	}
	return *c.Logger
}

// Build runs one sprite pipeline: the seed, if any, then every file matched
// by the pattern is parsed and mined for symbols, and the sprite is written
// to the destination once all sources are read. The first parse or I/O
// failure aborts the build and leaves the destination untouched. A missing
// source file is skipped with a warning.
func Build(cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	log := cfg.logger().With().Str("destination", cfg.Destination).Logger()

	srcDir := cfg.sourceDir()
	srcFS := os.DirFS(srcDir)
	matches, err := Enumerate(srcFS, cfg.pattern())
	if err != nil {
		return Result{}, err
	}

	b := &builder{
		cfg:    cfg,
		log:    log,
		sprite: NewSprite(),
	}

	var seedPath string
	if cfg.Seed != "" {
		seedPath = absPath(cfg.Seed)
		dir, name := filepath.Split(cfg.Seed)
		if err := b.collect(os.DirFS(cleanDir(dir)), name, cfg.Seed); err != nil {
			return Result{}, err
		}
	}
	for _, name := range matches {
		display := filepath.Join(srcDir, filepath.FromSlash(name))
		if seedPath != "" && absPath(display) == seedPath {
			continue
		}
		if err := b.collect(srcFS, name, display); err != nil {
			return Result{}, err
		}
	}

	n, err := b.sprite.WriteFile(cfg.Destination, EncodeOptions{
		Mode:           cfg.Mode,
		XMLDeclaration: cfg.XMLDeclaration,
	})
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Destination: cfg.Destination,
		Files:       b.files,
		Symbols:     b.symbols,
		Bytes:       n,
	}
	log.Info().
		Str("mode", cfg.Mode.String()).
		Int("files", res.Files).
		Int("symbols", res.Symbols).
		Int64("bytes", res.Bytes).
		Msg("sprite written")
	return res, nil
}

type builder struct {
	cfg     Config
	log     zerolog.Logger
	sprite  *Sprite
	files   int
	symbols int
}

func (b *builder) collect(fsys fs.FS, name, display string) error {
	doc, err := ParseFile(fsys, name, ParseOptions{StripWhitespace: b.cfg.StripWhitespace})
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			b.log.Warn().Str("file", display).Msg("source file not found, skipping")
			return nil
		}
		return withDisplayPath(err, display)
	}

	all := ExtractSymbols(doc)
	for _, sym := range outermost(all) {
		if id := sym.ID(); id != "" {
			if first, dup := b.sprite.Source(id); dup {
				b.log.Warn().Str("id", id).Str("file", display).Str("first", first).Msg("duplicate symbol id")
			}
		}
		sym.Source = display
		b.sprite.Append(sym)
	}

	b.files++
	b.symbols += len(all)
	b.log.Debug().Str("file", display).Int("symbols", len(all)).Msg("collected symbols")
	return nil
}

// withDisplayPath reports err against the path the user configured rather
// than the name relative to the source directory.
func withDisplayPath(err error, display string) error {
	e, ok := errors.AsError(err)
	if !ok {
		return fmt.Errorf("%s: %w", display, err)
	}
	out := *e
	out.Path = display
	return &out
}

func cleanDir(dir string) string {
	if dir == "" {
		return "."
	}
	return filepath.Clean(dir)
}

func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}
