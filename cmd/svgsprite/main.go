package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jacoelho/svgsprite"
	"github.com/jacoelho/svgsprite/internal/config"
	"github.com/jacoelho/svgsprite/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdout, os.Stderr)
}

type job struct {
	name string
	cfg  svgsprite.Config
}

func runWithArgs(args []string, stdout, stderr io.Writer) int {
	env, err := config.LoadEnv()
	if err != nil {
		_ = writef(stderr, "error: %v\n", err)
		return 1
	}

	fs := flag.NewFlagSet("svgsprite", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", env.ConfigPath, "path to a YAML sprite manifest (env SVGSPRITE_CONFIG)")
	root := fs.String("root", env.Root, "asset tree root for the built-in sprites (env SVGSPRITE_ROOT)")
	only := fs.String("only", "", "build only the named sprite")
	srcDir := fs.String("src", ".", "directory holding the source SVG files")
	pattern := fs.String("pattern", svgsprite.DefaultPattern, "glob selecting source files inside -src")
	seed := fs.String("seed", "", "extra SVG file processed before the matched files")
	outPath := fs.String("out", "", "destination sprite file")
	modeName := fs.String("mode", "raw", "serialization mode: raw or canonical")
	strip := fs.Bool("strip-whitespace", false, "drop whitespace-only text while parsing sources")
	xmlDecl := fs.Bool("xml-decl", false, "prefix raw output with an XML declaration")
	logLevel := fs.String("log-level", env.LogLevel, "log level (env SVGSPRITE_LOG_LEVEL)")
	logFormat := fs.String("log-format", env.LogFormat, "log format: console or json (env SVGSPRITE_LOG_FORMAT)")
	var usageErr error
	fs.Usage = func() {
		usageErr = errors.Join(
			usageErr,
			writef(stderr, "Usage: %s [-root dir] [-only name]\n", fs.Name()),
			writef(stderr, "       %s -config sprites.yaml [-only name]\n", fs.Name()),
			writef(stderr, "       %s -out sprite.svg [-src dir] [-pattern glob] [-seed file] [-mode raw|canonical] [-strip-whitespace] [-xml-decl]\n\n", fs.Name()),
			writeln(stderr, "Merges the <symbol> elements of SVG files into a sprite sheet."),
			writeln(stderr, "Without -config or -out, builds the symbols and icons sprites under -root."),
			writeln(stderr),
			writeln(stderr, "Options:"),
		)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 0 {
		return usage(fs, stderr, &usageErr, "unexpected arguments")
	}

	logger, err := logging.New(stderr, *logLevel, *logFormat)
	if err != nil {
		return usage(fs, stderr, &usageErr, err.Error())
	}

	var jobs []job
	switch {
	case *configPath != "" && flagSet(fs, "out"):
		return usage(fs, stderr, &usageErr, "-out cannot be combined with -config")
	case *outPath != "":
		if name := firstSet(fs, "only", "root"); name != "" {
			return usage(fs, stderr, &usageErr, fmt.Sprintf("-%s cannot be combined with -out", name))
		}
		mode, err := svgsprite.ParseMode(*modeName)
		if err != nil {
			return usage(fs, stderr, &usageErr, err.Error())
		}
		jobs = append(jobs, job{
			name: *outPath,
			cfg: svgsprite.Config{
				SourceDir:       *srcDir,
				Pattern:         *pattern,
				Seed:            *seed,
				Destination:     *outPath,
				Mode:            mode,
				StripWhitespace: *strip,
				XMLDeclaration:  *xmlDecl,
			},
		})
	default:
		if name := firstSet(fs, pipelineFlags...); name != "" {
			return usage(fs, stderr, &usageErr, fmt.Sprintf("-%s requires -out", name))
		}
		m, source := config.Default(*root), "built-in sprites"
		if *configPath != "" {
			if flagSet(fs, "root") {
				return usage(fs, stderr, &usageErr, "-root cannot be combined with -config")
			}
			loaded, err := config.LoadManifest(*configPath)
			if err != nil {
				_ = writef(stderr, "error loading manifest: %v\n", err)
				return 1
			}
			m, source = loaded, *configPath
		}
		sprites := m.Sprites
		if *only != "" {
			s, ok := m.Select(*only)
			if !ok {
				_ = writef(stderr, "error: sprite %q not found in %s\n", *only, source)
				return 1
			}
			sprites = []config.Sprite{s}
		}
		for _, s := range sprites {
			cfg, err := s.BuildConfig()
			if err != nil {
				_ = writef(stderr, "error: sprite %s: %v\n", s.Name, err)
				return 1
			}
			jobs = append(jobs, job{name: s.Name, cfg: cfg})
		}
	}

	for _, j := range jobs {
		jobLogger := logger.With().Str("sprite", j.name).Logger()
		j.cfg.Logger = &jobLogger
		res, err := svgsprite.Build(j.cfg)
		if err != nil {
			_ = writef(stderr, "error building sprite %s: %v\n", j.name, err)
			return 1
		}
		if err := writef(stdout, "%s: %d symbols from %d files -> %s (%d bytes)\n",
			j.name, res.Symbols, res.Files, res.Destination, res.Bytes); err != nil {
			return 1
		}
	}
	return 0
}

// pipelineFlags describe a single ad hoc pipeline and only apply with -out.
var pipelineFlags = []string{"src", "pattern", "seed", "mode", "strip-whitespace", "xml-decl"}

func usage(fs *flag.FlagSet, stderr io.Writer, usageErr *error, msg string) int {
	if err := writef(stderr, "error: %s\n", msg); err != nil {
		return 1
	}
	fs.Usage()
	if *usageErr != nil {
		return 1
	}
	return 2
}

func flagSet(fs *flag.FlagSet, name string) bool {
	return firstSet(fs, name) != ""
}

// firstSet returns the first of names given on the command line, in the
// order listed, or "" when none was.
func firstSet(fs *flag.FlagSet, names ...string) string {
	seen := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { seen[f.Name] = true })
	for _, name := range names {
		if seen[name] {
			return name
		}
	}
	return ""
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
