package config

// LogFormat selects the slog handler.
type LogFormat string

const (
	LogText LogFormat = "text"
	LogJSON LogFormat = "json"
)

// Config is the top-level alphalabs configuration, corresponding to
// .alphalabs.yml.
type Config struct {
	// ContentDir holds site.yaml, collection.yaml and about.yaml. Empty
	// means the built-in catalogue.
	ContentDir string `yaml:"content_dir" koanf:"content_dir"`
	// AssetDir holds the simulation preview images.
	AssetDir  string   `yaml:"asset_dir" koanf:"asset_dir"`
	OutputDir string   `yaml:"output_dir" koanf:"output_dir"`
	BasePath  string   `yaml:"base_path" koanf:"base_path"`
	Exclude   []string `yaml:"exclude" koanf:"exclude"`

	Port            int  `yaml:"port" koanf:"port"`
	Watch           bool `yaml:"watch" koanf:"watch"`
	Open            bool `yaml:"open" koanf:"open"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`

	LogLevel  string    `yaml:"log_level" koanf:"log_level"`
	LogFormat LogFormat `yaml:"log_format" koanf:"log_format"`
}
