package config

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/mathfield/internal/config/loader"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "MATHFIELD_"

// Config holds all mathfield settings.
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Editor  EditorConfig  `toml:"editor"`
	Plugins PluginsConfig `toml:"plugins"`
}

// LoggingConfig controls the application logger.
type LoggingConfig struct {
	// Level is the minimum level logged ("debug", "info", "warn", "error").
	Level string `toml:"level"`

	// Format is the output encoding ("console" or "json").
	Format string `toml:"format"`
}

// EditorConfig controls how fields edit notation.
type EditorConfig struct {
	// MaxDepth limits block nesting, the root block included. Zero means
	// unlimited.
	MaxDepth int `toml:"maxDepth"`

	// AutoCommands are the names typing converts to commands.
	AutoCommands []string `toml:"autoCommands"`

	// Normalize applies NFC normalization to entered text.
	Normalize bool `toml:"normalize"`
}

// PluginsConfig lists the Lua scripts run at startup.
type PluginsConfig struct {
	Scripts []string `toml:"scripts"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Editor: EditorConfig{
			MaxDepth:     32,
			AutoCommands: []string{"alpha", "beta", "gamma", "theta", "pi", "infty", "sqrt"},
			Normalize:    true,
		},
	}
}

// Options configures Load.
type Options struct {
	// FS reads the configuration file. Defaults to the OS file system.
	FS loader.FileSystem

	// EnvPrefix overrides EnvPrefix. Set SkipEnv to ignore the environment.
	EnvPrefix string
	SkipEnv   bool
}

// Load reads path (which may be empty or missing) and the environment on top
// of the defaults, then validates the result.
func Load(path string) (*Config, error) {
	return LoadWithOptions(path, Options{})
}

// LoadWithOptions is Load with explicit options.
func LoadWithOptions(path string, opts Options) (*Config, error) {
	if opts.FS == nil {
		opts.FS = loader.DefaultFS()
	}
	if opts.EnvPrefix == "" {
		opts.EnvPrefix = EnvPrefix
	}

	var layers []loader.Loader
	if path != "" {
		l, err := loader.ForPath(opts.FS, path)
		if err != nil {
			return nil, err
		}
		layers = append(layers, l)
	}
	if !opts.SkipEnv {
		layers = append(layers, loader.NewEnvLoader(opts.EnvPrefix))
	}

	merged := make(map[string]any)
	for _, l := range layers {
		data, err := l.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, data)
	}

	cfg, err := Decode(merged)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode applies a merged settings map on top of the defaults.
func Decode(data map[string]any) (*Config, error) {
	listify(data, "editor", "autoCommands")
	listify(data, "plugins", "scripts")

	raw, err := toml.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return cfg, nil
}

// listify turns a single string setting into a one-element list so that
// MATHFIELD_PLUGINS=a.lua works like a list.
func listify(data map[string]any, section, key string) {
	m, ok := data[section].(map[string]any)
	if !ok {
		return
	}
	if s, ok := m[key].(string); ok {
		if s == "" {
			m[key] = []any{}
		} else {
			m[key] = []any{s}
		}
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: logging.level %q", ErrInvalidValue, c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logging.format %q", ErrInvalidValue, c.Logging.Format)
	}
	if c.Editor.MaxDepth < 0 {
		return fmt.Errorf("%w: editor.maxDepth %d", ErrInvalidValue, c.Editor.MaxDepth)
	}
	for _, name := range c.Editor.AutoCommands {
		if name == "" || strings.IndexFunc(name, notLetter) >= 0 {
			return fmt.Errorf("%w: editor.autoCommands entry %q", ErrInvalidValue, name)
		}
	}
	for _, script := range c.Plugins.Scripts {
		if script == "" {
			return fmt.Errorf("%w: empty plugins.scripts entry", ErrInvalidValue)
		}
	}
	return nil
}

func notLetter(r rune) bool {
	return !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z')
}
