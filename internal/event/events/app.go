package events

import "github.com/dshills/mathfield/internal/event/topic"

// Application event topics.
const (
	// TopicConfigReloaded is published after a configuration file change
	// has been applied.
	TopicConfigReloaded topic.Topic = "config.reloaded"

	// TopicPluginLoaded is published after a plugin script ran.
	TopicPluginLoaded topic.Topic = "plugin.loaded"
)

// ConfigReloaded is published when configuration is reloaded.
type ConfigReloaded struct {
	// Path is the file whose change triggered the reload.
	Path string
}

// PluginLoaded is published when a plugin script has been executed.
type PluginLoaded struct {
	Path string

	// Registered lists the names the script added to the registry.
	Registered []string
}
