package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/commanderxa/alphalabs/internal/walker"
)

// EnvPrefix prefixes environment overrides, e.g. ALPHALABS_BASE_PATH.
const EnvPrefix = "ALPHALABS_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (ALPHALABS_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: ALPHALABS_OUTPUT_DIR -> output_dir, etc.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	// A configured list replaces the default one instead of merging into it.
	if k.Exists("exclude") {
		cfg.Exclude = nil
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validLogLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.AssetDir == "" {
		return fmt.Errorf("asset_dir is required")
	}
	if err := CheckOutputDir(c.OutputDir, c.AssetDir, c.ContentDir); err != nil {
		return err
	}
	if err := ValidateBasePath(c.BasePath); err != nil {
		return err
	}
	for _, p := range c.Exclude {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if _, ok := validLogLevels[strings.ToLower(c.LogLevel)]; !ok {
		return fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error", c.LogLevel)
	}
	if c.LogFormat != LogText && c.LogFormat != LogJSON {
		return fmt.Errorf("invalid log_format %q: must be text or json", c.LogFormat)
	}
	return nil
}

// CheckOutputDir rejects an output directory that is, or contains, one of
// the source directories. Builds replace the output directory as a whole.
func CheckOutputDir(output string, sources ...string) error {
	for _, src := range sources {
		if src == "" {
			continue
		}
		inside, err := walker.Within(output, src)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", src, err)
		}
		if inside {
			return fmt.Errorf("output_dir %q must not be or contain source directory %q", output, src)
		}
	}
	return nil
}

// ValidateBasePath accepts "" (site at the domain root) or an absolute path
// without a trailing slash, such as "/alphalabs".
func ValidateBasePath(p string) error {
	if p == "" {
		return nil
	}
	if !strings.HasPrefix(p, "/") {
		return fmt.Errorf("base_path %q must start with /", p)
	}
	if strings.HasSuffix(p, "/") {
		return fmt.Errorf("base_path %q must not end with /", p)
	}
	if strings.Contains(p, "//") {
		return fmt.Errorf("base_path %q contains an empty segment", p)
	}
	return nil
}

// NewLogger builds the slog logger described by the configuration. Verbose
// forces debug level.
func (c *Config) NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level, ok := validLogLevels[strings.ToLower(c.LogLevel)]
	if !ok {
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == LogJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
