// Package config handles stairgen configuration loading and management.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-stairs/pkg/math"
	"github.com/Faultbox/midgard-stairs/pkg/stairs"
)

// Config holds all generator settings.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Build   BuildConfig   `yaml:"build"`
	Logging LoggingConfig `yaml:"logging"`
	Stairs  []Preset      `yaml:"stairs"`
}

// OutputConfig holds export settings.
type OutputConfig struct {
	Path      string `yaml:"path"`      // OBJ file, "-" for stdout
	Precision int    `yaml:"precision"` // Decimal places for vertex coordinates
}

// BuildConfig holds generation settings.
type BuildConfig struct {
	Workers int  `yaml:"workers"` // 0 = GOMAXPROCS
	Check   bool `yaml:"check"`   // Validate every brush after generation
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Preset is one staircase placed in the output.
type Preset struct {
	Name       string            `yaml:"name"`
	Origin     math.Vec3         `yaml:"origin"`
	Yaw        float32           `yaml:"yaw"`    // Degrees around +Y
	Mirror     bool              `yaml:"mirror"` // Flip across local X, giving stairs of the opposite hand
	Definition stairs.Definition `yaml:"definition"`
}

// DefaultPreset returns a preset holding the default definition at the origin.
func DefaultPreset(name string) Preset {
	return Preset{
		Name:       name,
		Definition: stairs.DefaultDefinition(),
	}
}

// UnmarshalYAML fills fields missing from the document with defaults.
func (p *Preset) UnmarshalYAML(node *yaml.Node) error {
	type plain Preset
	out := plain(DefaultPreset(""))
	if err := node.Decode(&out); err != nil {
		return err
	}
	*p = Preset(out)
	return nil
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Path:      "stairs.obj",
			Precision: 6,
		},
		Build: BuildConfig{
			Workers: 0,
			Check:   true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Stairs: []Preset{DefaultPreset("default")},
	}
}

// Validate checks settings that cannot be clamped.
func (c *Config) Validate() error {
	if c.Output.Precision < 1 || c.Output.Precision > 9 {
		return fmt.Errorf("output precision %d out of range 1..9", c.Output.Precision)
	}
	if c.Build.Workers < 0 {
		return fmt.Errorf("negative worker count %d", c.Build.Workers)
	}
	seen := make(map[string]bool, len(c.Stairs))
	for i, p := range c.Stairs {
		if p.Name == "" {
			return fmt.Errorf("stairs[%d]: missing name", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("stairs[%d]: duplicate name %q", i, p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

// Preset returns the preset with the given name.
func (c *Config) Preset(name string) (Preset, bool) {
	for _, p := range c.Stairs {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}
