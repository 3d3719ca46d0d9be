package config

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/mathfield/internal/config/loader"
)

var files = fstest.MapFS{
	"mathfield.toml": {Data: []byte(`
[logging]
level = "debug"

[editor]
maxDepth = 6
autoCommands = ["pi"]

[plugins]
scripts = ["greek.lua"]
`)},
	"mathfield.yml": {Data: []byte(`
editor:
  normalize: false
`)},
	"bad-type.toml": {Data: []byte("[editor]\nmaxDepth = \"deep\"\n")},
	"bad-level.toml": {Data: []byte("[logging]\nlevel = \"loud\"\n")},
	"broken.toml":    {Data: []byte("[editor\n")},
}

func load(t *testing.T, path string) (*Config, error) {
	t.Helper()
	return LoadWithOptions(path, Options{FS: files, SkipEnv: true})
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Editor.MaxDepth != 32 || !cfg.Editor.Normalize {
		t.Errorf("Default().Editor = %+v", cfg.Editor)
	}
}

func TestLoadTOML(t *testing.T) {
	cfg, err := load(t, "mathfield.toml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := &Config{
		Logging: LoggingConfig{Level: "debug", Format: "console"},
		Editor:  EditorConfig{MaxDepth: 6, AutoCommands: []string{"pi"}, Normalize: true},
		Plugins: PluginsConfig{Scripts: []string{"greek.lua"}},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadYAMLKeepsDefaults(t *testing.T) {
	cfg, err := load(t, "mathfield.yml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Default()
	want.Editor.Normalize = false
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	for _, path := range []string{"", "absent.toml"} {
		cfg, err := load(t, path)
		if err != nil {
			t.Fatalf("Load(%q) error = %v", path, err)
		}
		if diff := cmp.Diff(Default(), cfg); diff != "" {
			t.Errorf("Load(%q) mismatch (-want +got):\n%s", path, diff)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		path string
		want error
	}{
		{"bad-type.toml", ErrInvalidValue},
		{"bad-level.toml", ErrInvalidValue},
		{"mathfield.ini", loader.ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		if _, err := load(t, tt.path); !errors.Is(err, tt.want) {
			t.Errorf("Load(%q) error = %v, want %v", tt.path, err, tt.want)
		}
	}

	var perr *loader.ParseError
	if _, err := load(t, "broken.toml"); !errors.As(err, &perr) {
		t.Errorf("Load(broken.toml) error = %v, want *loader.ParseError", err)
	}
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("MATHFIELD_MAX_DEPTH", "3")
	t.Setenv("MATHFIELD_PLUGINS", "one.lua")
	t.Setenv("MATHFIELD_EDITOR_NORMALIZE", "no")

	cfg, err := LoadWithOptions("mathfield.toml", Options{FS: files})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Editor.MaxDepth != 3 {
		t.Errorf("MaxDepth = %d, want 3", cfg.Editor.MaxDepth)
	}
	if cfg.Editor.Normalize {
		t.Error("Normalize should be off")
	}
	if diff := cmp.Diff([]string{"one.lua"}, cfg.Plugins.Scripts); diff != "" {
		t.Errorf("Scripts mismatch (-want +got):\n%s", diff)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want the file's %q", cfg.Logging.Level, "debug")
	}
}

func TestDecode(t *testing.T) {
	cfg, err := Decode(map[string]any{
		"editor":  map[string]any{"autoCommands": "", "maxDepth": 2},
		"plugins": map[string]any{"scripts": []any{"a.lua", "b.lua"}},
		"unknown": map[string]any{"x": 1},
	})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(cfg.Editor.AutoCommands) != 0 {
		t.Errorf("AutoCommands = %v, want none", cfg.Editor.AutoCommands)
	}
	if cfg.Editor.MaxDepth != 2 {
		t.Errorf("MaxDepth = %d, want 2", cfg.Editor.MaxDepth)
	}
	if len(cfg.Plugins.Scripts) != 2 {
		t.Errorf("Scripts = %v, want two", cfg.Plugins.Scripts)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"format", func(c *Config) { c.Logging.Format = "xml" }},
		{"depth", func(c *Config) { c.Editor.MaxDepth = -1 }},
		{"auto command", func(c *Config) { c.Editor.AutoCommands = []string{"pi2"} }},
		{"empty auto command", func(c *Config) { c.Editor.AutoCommands = []string{""} }},
		{"script", func(c *Config) { c.Plugins.Scripts = []string{""} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidValue) {
				t.Errorf("Validate() = %v, want ErrInvalidValue", err)
			}
		})
	}
}
