package config

import (
	"os"
	"testing"
)

func TestLoadEnv(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
		want Env
	}{
		{
			name: "defaults",
			want: Env{Root: ".", LogLevel: "info", LogFormat: "console"},
		},
		{
			name: "overrides",
			vars: map[string]string{
				"SVGSPRITE_CONFIG":     "sprites.yaml",
				"SVGSPRITE_ROOT":       "/srv/site",
				"SVGSPRITE_LOG_LEVEL":  "debug",
				"SVGSPRITE_LOG_FORMAT": "json",
			},
			want: Env{ConfigPath: "sprites.yaml", Root: "/srv/site", LogLevel: "debug", LogFormat: "json"},
		},
		{
			name: "partial",
			vars: map[string]string{"SVGSPRITE_LOG_FORMAT": "json"},
			want: Env{Root: ".", LogLevel: "info", LogFormat: "json"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"SVGSPRITE_CONFIG", "SVGSPRITE_ROOT", "SVGSPRITE_LOG_LEVEL", "SVGSPRITE_LOG_FORMAT"} {
				value, ok := tt.vars[key]
				t.Setenv(key, value)
				if !ok {
					if err := os.Unsetenv(key); err != nil {
						t.Fatalf("unset %s: %v", key, err)
					}
				}
			}
			got, err := LoadEnv()
			if err != nil {
				t.Fatalf("LoadEnv() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("LoadEnv() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
