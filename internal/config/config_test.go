package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ContentDir != "" {
		t.Errorf("expected the built-in catalogue by default, got content_dir %q", cfg.ContentDir)
	}
	if cfg.OutputDir != "out" {
		t.Errorf("expected default output_dir %q, got %q", "out", cfg.OutputDir)
	}
	if cfg.BasePath != "/alphalabs" {
		t.Errorf("expected default base_path %q, got %q", "/alphalabs", cfg.BasePath)
	}
	if cfg.Port != 3000 {
		t.Errorf("expected default port 3000, got %d", cfg.Port)
	}
	if cfg.LogFormat != LogText {
		t.Errorf("expected default log_format %q, got %q", LogText, cfg.LogFormat)
	}
}

func TestDefaultConfigDoesNotShareExcludes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Exclude[0] = "changed"
	if DefaultExcludes[0] == "changed" {
		t.Error("DefaultConfig must copy DefaultExcludes")
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.alphalabs.yml")

	original := DefaultConfig()
	original.ContentDir = "content"
	original.AssetDir = "images"
	original.OutputDir = "dist"
	original.BasePath = ""
	original.Exclude = []string{"raw/**"}
	original.Port = 8080
	original.Watch = false
	original.LogFormat = LogJSON

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify round-trip.
	if loaded.ContentDir != original.ContentDir {
		t.Errorf("content_dir: got %q, want %q", loaded.ContentDir, original.ContentDir)
	}
	if loaded.AssetDir != original.AssetDir {
		t.Errorf("asset_dir: got %q, want %q", loaded.AssetDir, original.AssetDir)
	}
	if loaded.OutputDir != original.OutputDir {
		t.Errorf("output_dir: got %q, want %q", loaded.OutputDir, original.OutputDir)
	}
	if loaded.BasePath != "" {
		t.Errorf("base_path: got %q, want empty", loaded.BasePath)
	}
	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if loaded.Watch {
		t.Error("watch: got true, want false")
	}
	if loaded.LogFormat != LogJSON {
		t.Errorf("log_format: got %q, want %q", loaded.LogFormat, LogJSON)
	}
	if len(loaded.Exclude) != 1 || loaded.Exclude[0] != "raw/**" {
		t.Errorf("exclude: got %v, want [raw/**]", loaded.Exclude)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.OutputDir != "out" {
		t.Errorf("expected default output_dir, got %q", cfg.OutputDir)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("ALPHALABS_OUTPUT_DIR", "public_html")
	t.Setenv("ALPHALABS_PORT", "8081")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.OutputDir != "public_html" {
		t.Errorf("env override failed: got %q, want %q", loaded.OutputDir, "public_html")
	}
	if loaded.Port != 8081 {
		t.Errorf("env override failed: got port %d, want 8081", loaded.Port)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(path, []byte("port: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"empty output_dir", func(c *Config) { c.OutputDir = "" }},
		{"empty asset_dir", func(c *Config) { c.AssetDir = "" }},
		{"relative base_path", func(c *Config) { c.BasePath = "alphalabs" }},
		{"trailing slash base_path", func(c *Config) { c.BasePath = "/alphalabs/" }},
		{"bad exclude", func(c *Config) { c.Exclude = []string{"[unclosed"} }},
		{"port zero", func(c *Config) { c.Port = 0 }},
		{"port too large", func(c *Config) { c.Port = 70000 }},
		{"unknown log level", func(c *Config) { c.LogLevel = "chatty" }},
		{"unknown log format", func(c *Config) { c.LogFormat = "xml" }},
		{"output is asset_dir", func(c *Config) { c.OutputDir = c.AssetDir }},
		{"output is working dir", func(c *Config) { c.OutputDir = "." }},
		{"output contains content_dir", func(c *Config) { c.OutputDir = "site"; c.ContentDir = "site/content" }},
		{"output is content_dir", func(c *Config) { c.ContentDir = "catalogue"; c.OutputDir = "catalogue/" }},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.modify(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestCheckOutputDir(t *testing.T) {
	tests := []struct {
		output  string
		sources []string
		ok      bool
	}{
		{"out", []string{"public", "content"}, true},
		{"out", []string{"public", ""}, true},
		{"public/out", []string{"public"}, true},
		{"out", []string{"out"}, false},
		{".", []string{"public"}, false},
		{"out", []string{"out/public"}, false},
		{"./out/", []string{"out"}, false},
	}
	for _, tt := range tests {
		err := CheckOutputDir(tt.output, tt.sources...)
		if (err == nil) != tt.ok {
			t.Errorf("CheckOutputDir(%q, %q) = %v, want ok=%v", tt.output, tt.sources, err, tt.ok)
		}
	}
}

func TestValidateBasePath(t *testing.T) {
	tests := []struct {
		path string
		ok   bool
	}{
		{"", true},
		{"/alphalabs", true},
		{"/org/alphalabs", true},
		{"/", false},
		{"alphalabs", false},
		{"/alphalabs/", false},
		{"//alphalabs", false},
	}
	for _, tt := range tests {
		err := ValidateBasePath(tt.path)
		if (err == nil) != tt.ok {
			t.Errorf("ValidateBasePath(%q) = %v, want ok=%v", tt.path, err, tt.ok)
		}
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.LogFormat = LogJSON

	logger := cfg.NewLogger(&buf, false)
	logger.Debug("hidden")
	logger.Info("shown", "pages", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one log line at info level, got %q", buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("expected JSON output: %v", err)
	}
	if entry["msg"] != "shown" {
		t.Errorf("msg = %v, want shown", entry["msg"])
	}

	buf.Reset()
	cfg.NewLogger(&buf, true).Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Error("verbose should enable debug logging")
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"**/*.psd", []string{"**/*.psd"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}

func TestValidatePort(t *testing.T) {
	for _, s := range []string{"1", "3000", "65535"} {
		if err := validatePort(s); err != nil {
			t.Errorf("validatePort(%q) = %v", s, err)
		}
	}
	for _, s := range []string{"", "abc", "0", "65536"} {
		if err := validatePort(s); err == nil {
			t.Errorf("validatePort(%q) should fail", s)
		}
	}
}
