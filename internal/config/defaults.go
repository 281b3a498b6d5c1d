package config

// Default returns the manifest for the front-end asset tree: a canonical
// sprite of standalone symbols and a raw icon sprite led by the logo.
// Paths are relative to root.
func Default(root string) Manifest {
	m := Manifest{Sprites: []Sprite{
		{
			Name:            "symbols",
			SourceDir:       "static/svg/symbols",
			Pattern:         "*.svg",
			Destination:     "static/svg/symbols.generated.svg",
			Mode:            "canonical",
			StripWhitespace: true,
		},
		{
			Name:        "icons",
			SourceDir:   "static/svg/icons",
			Pattern:     "*.svg",
			Seed:        "static/svg/logo/logo.svg",
			Destination: "static/svg/icons.generated.svg",
			Mode:        "raw",
		},
	}}
	for i := range m.Sprites {
		m.Sprites[i].resolvePaths(root)
	}
	return m
}
