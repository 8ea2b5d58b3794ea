package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "BLOGCTL_"

// Config holds the full blogctl configuration, loaded from defaults and
// BLOGCTL_* environment variables (a local .env file is honored).
type Config struct {
	API APIConfig `koanf:"api"`
	CLI CLIConfig `koanf:"cli"`
	Log LogConfig `koanf:"log"`
}

// APIConfig describes the remote blog API endpoint.
type APIConfig struct {
	// BaseURL is the API origin, e.g. http://localhost:5000/api.
	BaseURL string `koanf:"base_url"`
	// Timeout applies to every request; there is no retry.
	Timeout time.Duration `koanf:"timeout"`
}

// CLIConfig controls rendering and local state.
type CLIConfig struct {
	// Format selects the output mode: auto, json or tui.
	Format string `koanf:"format"`
	// Interactive forces TUI mode even when auto-detection says otherwise.
	Interactive bool `koanf:"interactive"`
	NoColor     bool `koanf:"no_color"`
	// StateDir is where the session token and identity snapshot live.
	StateDir string `koanf:"state_dir"`
}

type LogConfig struct {
	Level string `koanf:"level"`
	JSON  bool   `koanf:"json"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:5000/api",
			Timeout: 30 * time.Second,
		},
		CLI: CLIConfig{
			Format:   "auto",
			StateDir: defaultStateDir(),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func defaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "blogctl")
	}
	return ".blogctl"
}

// transformEnvKey converts BLOGCTL_API_BASE_URL to api.base_url: the first
// underscore separates the section, the rest stays a field name.
func transformEnvKey(s string) string {
	s = strings.ToLower(s)
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '_' })
	if len(parts) == 0 {
		return ""
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return parts[0] + "." + strings.Join(parts[1:], "_")
}

// Load builds the configuration from defaults overlaid with environment
// variables.
func Load() (*Config, error) {
	// Best effort; a missing .env is not an error.
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return transformEnvKey(strings.TrimPrefix(key, envPrefix)), value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations blogctl cannot run with.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("api.base_url must be an http or https URL, got %q", c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}
	switch c.CLI.Format {
	case "auto", "json", "tui":
	default:
		return fmt.Errorf("cli.format must be auto, json or tui, got %q", c.CLI.Format)
	}
	return nil
}
