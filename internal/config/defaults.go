package config

import "slices"

// DefaultPath is the configuration file read when --config is not given.
const DefaultPath = ".alphalabs.yml"

// DefaultExcludes are asset globs left out of the export by default.
var DefaultExcludes = []string{
	"**/*.psd",
	"**/*.xcf",
	"drafts/**",
}

// DefaultConfig returns a Config with sensible defaults. The base path
// matches the project page the site is published under.
func DefaultConfig() *Config {
	return &Config{
		ContentDir: "",
		AssetDir:   "public",
		OutputDir:  "out",
		BasePath:   "/alphalabs",
		Exclude:    slices.Clone(DefaultExcludes),
		Port:       3000,
		Watch:      true,
		Open:       false,
		LogLevel:   "info",
		LogFormat:  LogText,
	}
}
