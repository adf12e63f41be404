// Package config holds the numeric tolerances and iteration budgets used by the
// gjk and epa solvers.
//
// Every field carries a default, so the zero-effort path is config.Default().
// A YAML document only needs to list the values it overrides:
//
//	distance:
//	  max_iterations: 50
//	penetration:
//	  epsilon: 0.00001
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Intersection bounds the GJK boolean test.
type Intersection struct {
	// MaxIterations guards against float cycling on degenerate input.
	// Each step grows the simplex or terminates, so well-formed shapes
	// finish in a handful of steps.
	MaxIterations int `yaml:"max_iterations" default:"64" validate:"gt=0"`
}

// Distance configures the GJK distance query.
type Distance struct {
	MaxIterations int `yaml:"max_iterations" default:"100" validate:"gt=0"`
	// Tolerance is used both for the convergence test and for degenerate
	// segment detection.
	Tolerance float64 `yaml:"tolerance" default:"0.0001" validate:"gt=0"`
}

// Penetration configures the EPA solver.
type Penetration struct {
	MaxIterations int     `yaml:"max_iterations" default:"100" validate:"gt=0"`
	Epsilon       float64 `yaml:"epsilon" default:"0.0001" validate:"gt=0"`
}

type Config struct {
	Intersection Intersection `yaml:"intersection"`
	Distance     Distance     `yaml:"distance"`
	Penetration  Penetration  `yaml:"penetration"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns a Config with every field set to its default.
func Default() Config {
	return Fill(Config{})
}

// Fill returns c with every zero field set to its default. Fields already set
// are kept, so a partially filled Config only needs the values it overrides.
func Fill(c Config) Config {
	// Set only fails on non-pointer input or malformed tags.
	if err := defaults.Set(&c); err != nil {
		panic(fmt.Sprintf("config: invalid default tags: %v", err))
	}
	return c
}

// Parse decodes a YAML document on top of the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads r fully and parses it with Parse.
func Load(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("config: read: %w", err)
	}
	return Parse(data)
}

// LoadFile opens path and parses it with Parse.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	return Load(f)
}

// Validate checks that every budget and tolerance is strictly positive.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}
