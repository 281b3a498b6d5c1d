package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds settings read from the environment. Command-line flags take
// precedence over these values.
type Env struct {
	ConfigPath string `env:"SVGSPRITE_CONFIG"`
	Root       string `env:"SVGSPRITE_ROOT" envDefault:"."`
	LogLevel   string `env:"SVGSPRITE_LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"SVGSPRITE_LOG_FORMAT" envDefault:"console"`
}

// LoadEnv returns Env populated from the process environment.
func LoadEnv() (Env, error) {
	var cfg Env
	if err := env.Parse(&cfg); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
