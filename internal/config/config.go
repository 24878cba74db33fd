// Package config handles converter configuration loading and management.
package config

import (
	"github.com/Faultbox/brickmesh/pkg/ldraw"
)

// Config holds all converter settings.
type Config struct {
	Library LibraryConfig `yaml:"library"`
	Output  OutputConfig  `yaml:"output"`
	Parse   ParseConfig   `yaml:"parse"`
	Logging LoggingConfig `yaml:"logging"`
}

// LibraryConfig holds part library settings.
type LibraryConfig struct {
	// Path is the base directory of the LDraw part library.
	Path string `yaml:"path"`
}

// OutputConfig holds mesh export settings.
type OutputConfig struct {
	// Scale is a uniform output scale factor.
	Scale float64 `yaml:"scale"`
	// Unit is the output length of one LDU, in millimetres.
	Unit float64 `yaml:"unit"`
}

// ParseConfig holds parser behavior settings.
type ParseConfig struct {
	// InitialInvert pre-flips the winding of the root file.
	InitialInvert bool `yaml:"initial_invert"`
	// IgnorePrefixes lists comment lead tokens treated as plain comments.
	IgnorePrefixes []string `yaml:"ignore_prefixes"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Library: LibraryConfig{
			Path: "/usr/share/ldraw",
		},
		Output: OutputConfig{
			Scale: 1.0,
			Unit:  0.4,
		},
		Parse: ParseConfig{
			InitialInvert:  false,
			IgnorePrefixes: ldraw.DefaultIgnorePrefixes(),
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
