package loader

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

var testFS = fstest.MapFS{
	"mathfield.toml": {Data: []byte(`
[logging]
level = "debug"

[editor]
maxDepth = 6
autoCommands = ["pi", "sqrt"]
`)},
	"mathfield.yaml": {Data: []byte(`
logging:
  level: warn
editor:
  maxDepth: 4
  normalize: false
`)},
	"broken.toml": {Data: []byte("[editor\nmaxDepth = 1\n")},
	"broken.yaml": {Data: []byte("editor: [unclosed\n")},
}

func TestTOMLLoader(t *testing.T) {
	got, err := NewTOMLLoaderWithFS(testFS, "mathfield.toml").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := map[string]any{
		"logging": map[string]any{"level": "debug"},
		"editor": map[string]any{
			"maxDepth":     int64(6),
			"autoCommands": []any{"pi", "sqrt"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestYAMLLoader(t *testing.T) {
	got, err := NewYAMLLoaderWithFS(testFS, "mathfield.yaml").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := map[string]any{
		"logging": map[string]any{"level": "warn"},
		"editor":  map[string]any{"maxDepth": 4, "normalize": false},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	for _, l := range []Loader{
		NewTOMLLoaderWithFS(testFS, "absent.toml"),
		NewYAMLLoaderWithFS(testFS, "absent.yaml"),
	} {
		got, err := l.Load()
		if err != nil || got != nil {
			t.Errorf("Load() of a missing file = %v, %v; want nil, nil", got, err)
		}
	}
}

func TestLoadParseErrors(t *testing.T) {
	_, err := NewTOMLLoaderWithFS(testFS, "broken.toml").Load()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("TOML error = %v, want *ParseError", err)
	}
	if perr.Path != "broken.toml" || perr.Line != 1 {
		t.Errorf("ParseError = %+v, want broken.toml at line 1", perr)
	}

	if _, err := NewYAMLLoaderWithFS(testFS, "broken.yaml").Load(); !errors.As(err, &perr) {
		t.Errorf("YAML error = %v, want *ParseError", err)
	}
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"a/mathfield.toml", "*loader.TOMLLoader"},
		{"mathfield.YAML", "*loader.YAMLLoader"},
		{"mathfield.yml", "*loader.YAMLLoader"},
	}
	for _, tt := range tests {
		l, err := ForPath(testFS, tt.path)
		if err != nil {
			t.Fatalf("ForPath(%q) error = %v", tt.path, err)
		}
		switch l.(type) {
		case *TOMLLoader:
			if tt.want != "*loader.TOMLLoader" {
				t.Errorf("ForPath(%q) = TOML loader, want %s", tt.path, tt.want)
			}
		case *YAMLLoader:
			if tt.want != "*loader.YAMLLoader" {
				t.Errorf("ForPath(%q) = YAML loader, want %s", tt.path, tt.want)
			}
		}
	}

	if _, err := ForPath(testFS, "mathfield.ini"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("ForPath(.ini) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"logging": map[string]any{"level": "info", "format": "console"},
		"editor":  map[string]any{"maxDepth": 8},
	}
	src := map[string]any{
		"logging": map[string]any{"level": "debug"},
		"editor":  "replaced",
		"plugins": map[string]any{"scripts": []any{"a.lua"}},
	}
	want := map[string]any{
		"logging": map[string]any{"level": "debug", "format": "console"},
		"editor":  "replaced",
		"plugins": map[string]any{"scripts": []any{"a.lua"}},
	}
	if diff := cmp.Diff(want, DeepMerge(dst, src)); diff != "" {
		t.Errorf("DeepMerge() mismatch (-want +got):\n%s", diff)
	}
	if got := DeepMerge(nil, nil); got == nil || len(got) != 0 {
		t.Errorf("DeepMerge(nil, nil) = %v, want empty map", got)
	}
}

func TestEnvLoader(t *testing.T) {
	t.Setenv("MATHFIELD_LOG_LEVEL", "debug")
	t.Setenv("MATHFIELD_MAX_DEPTH", "1")
	t.Setenv("MATHFIELD_AUTO_COMMANDS", "pi, theta")
	t.Setenv("MATHFIELD_EDITOR_NORMALIZE", "off")
	t.Setenv("MATHFIELD_PLUGINS_EXTRA_SCRIPTS", `["x.lua"]`)
	t.Setenv("MATHFIELD_STRAY", "ignored")

	got, err := NewEnvLoader("MATHFIELD_").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := map[string]any{
		"logging": map[string]any{"level": "debug"},
		"editor": map[string]any{
			"maxDepth":     int64(1),
			"autoCommands": []any{"pi", "theta"},
			"normalize":    false,
		},
		"plugins": map[string]any{"extraScripts": []any{"x.lua"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestEnvLoaderCustomMapping(t *testing.T) {
	t.Setenv("MF_DEPTH", "3")
	l := NewEnvLoaderWithMapping("MF_", nil)
	l.AddMapping("MF_DEPTH", "editor.maxDepth")

	got, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]any{"editor": map[string]any{"maxDepth": int64(3)}}, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}
