// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file and PARCAST_* env vars.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile, when set, mirrors logs into a size-rotated file.
	LogFile string `koanf:"log_file"`

	// LogMaxSizeMB and LogMaxBackups bound the rotated log files.
	LogMaxSizeMB  int `koanf:"log_max_size_mb"`
	LogMaxBackups int `koanf:"log_max_backups"`

	// LogJSON switches log records to JSON.
	LogJSON bool `koanf:"log_json"`

	// Addr configures the HTTP listen address, e.g. ":8501".
	Addr string `koanf:"addr"`

	// ModelPath points at the serialized regression model.
	ModelPath string `koanf:"model_path"`

	// TemplatePath points at the feature template (csv, yaml, json or xlsx).
	TemplatePath string `koanf:"template_path"`

	// VolumeUnit is the unit label shown next to predicted volumes.
	VolumeUnit string `koanf:"volume_unit"`

	// Locale selects number formatting on the form page, e.g. "en", "de".
	Locale string `koanf:"locale"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		LogMaxSizeMB:  50,
		LogMaxBackups: 3,
		Addr:          ":8501",
		ModelPath:     "artifacts/inventory_model.json",
		TemplatePath:  "artifacts/X_feature_template.csv",
		VolumeUnit:    "ml",
		Locale:        "en",
	}
}
