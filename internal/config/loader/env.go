package loader

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
)

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "MATHFIELD_")
	mapping map[string]string // Env var -> config path
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "MATHFIELD_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(),
	}
}

// NewEnvLoaderWithMapping creates a loader with custom environment variable mappings.
func NewEnvLoaderWithMapping(prefix string, mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: mapping,
	}
}

// defaultEnvMapping returns the short environment variable names.
func defaultEnvMapping() map[string]string {
	return map[string]string{
		"MATHFIELD_LOG_LEVEL":     "logging.level",
		"MATHFIELD_LOG_FORMAT":    "logging.format",
		"MATHFIELD_MAX_DEPTH":     "editor.maxDepth",
		"MATHFIELD_AUTO_COMMANDS": "editor.autoCommands",
		"MATHFIELD_PLUGINS":       "plugins.scripts",
	}
}

// Load reads environment variables and returns a configuration map.
// Empty values count as set.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for _, env := range os.Environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		path, mapped := l.mapping[name]
		if !mapped {
			path = l.envToPath(name)
		}
		if path == "" {
			continue
		}
		setByPath(config, path, parseValue(value))
	}
	return config, nil
}

// AddMapping maps envVar to a dotted config path.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[envVar] = configPath
}

// envToPath converts MATHFIELD_EDITOR_MAX_DEPTH to editor.maxDepth: the
// first word names the section, the rest form a camelCase key.
func (l *EnvLoader) envToPath(env string) string {
	parts := strings.Split(strings.ToLower(strings.TrimPrefix(env, l.prefix)), "_")
	if len(parts) < 2 || parts[0] == "" {
		return ""
	}
	key := parts[1]
	for _, part := range parts[2:] {
		if part != "" {
			key += strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return parts[0] + "." + key
}

// parseValue converts s to a bool, number, JSON value or comma-separated
// list where it reads as one, and otherwise keeps the string.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{") {
		var v any
		if err := json.Unmarshal([]byte(s), &v); err == nil {
			return v
		}
	}
	if strings.Contains(s, ",") {
		var list []any
		for _, item := range strings.Split(s, ",") {
			if item = strings.TrimSpace(item); item != "" {
				list = append(list, item)
			}
		}
		return list
	}
	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
