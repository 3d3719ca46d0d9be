package app

import (
	"context"
	"errors"
	"io"
	"slices"
	"sync"

	"github.com/dshills/mathfield/internal/config"
	"github.com/dshills/mathfield/internal/config/watcher"
	"github.com/dshills/mathfield/internal/event"
	"github.com/dshills/mathfield/internal/event/events"
	"github.com/dshills/mathfield/internal/event/topic"
	"github.com/dshills/mathfield/internal/field"
	"github.com/dshills/mathfield/internal/notation"
	"github.com/dshills/mathfield/internal/plugin"
)

// Application owns one field together with the configuration, plugins and
// event bus it runs with.
type Application struct {
	mu sync.Mutex

	opts Options

	logger   *Logger
	bus      *event.Bus
	config   *config.Config
	registry *notation.Registry
	plugins  *plugin.Manager
	field    *field.Field
	watcher  *watcher.Watcher

	subs    []*event.Subscription
	running bool
}

// Options configures the application.
type Options struct {
	// ConfigPath is the TOML or YAML configuration file. Empty uses the
	// defaults and the environment only.
	ConfigPath string

	// Watch reloads the configuration when ConfigPath changes.
	Watch bool

	// LogLevel overrides logging.level when set.
	LogLevel string

	// LogOutput receives log entries. Defaults to os.Stderr.
	LogOutput io.Writer

	// FieldID names the field. Empty picks a random ID.
	FieldID string

	// Latex is the initial field content.
	Latex string
}

// New creates an Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts}
	if err := app.bootstrap(); err != nil {
		app.closeWatcher()
		return nil, err
	}
	app.running = true
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Config
	cfg, err := config.Load(app.opts.ConfigPath)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.config = cfg

	// 2. Logger
	app.logger = NewLogger(app.loggerConfig(cfg))

	// 3. Event bus
	busLogger := app.logger.WithComponent("event")
	app.bus = event.NewBus(event.WithPanicHandler(func(ev any, recovered any) {
		busLogger.Error("handler panic on %v: %v", topicOf(ev), recovered)
	}))
	if err := app.subscribe(); err != nil {
		return &InitError{Component: "subscriptions", Err: err}
	}

	// 4. Registry and plugins
	app.registry, app.plugins = app.loadPlugins(cfg)

	// 5. Field
	app.field = field.New(app.fieldOptions(cfg, app.opts.FieldID)...)
	if app.opts.Latex != "" {
		if err := app.field.SetLatex(app.opts.Latex); err != nil {
			return &InitError{Component: "field", Err: err}
		}
	}

	// 6. Watcher
	if app.opts.Watch && app.opts.ConfigPath != "" {
		if err := app.startWatcher(); err != nil {
			return &InitError{Component: "watcher", Err: err}
		}
	}

	app.logger.Debug("started with field %s", app.field.ID())
	return nil
}

func (app *Application) loggerConfig(cfg *config.Config) LoggerConfig {
	lc := DefaultLoggerConfig()
	lc.Level = ParseLogLevel(cfg.Logging.Level)
	if app.opts.LogLevel != "" {
		lc.Level = ParseLogLevel(app.opts.LogLevel)
	}
	lc.Format = cfg.Logging.Format
	if app.opts.LogOutput != nil {
		lc.Output = app.opts.LogOutput
	}
	return lc
}

// loadPlugins runs the configured scripts against a fresh default registry.
// Script failures are logged; the scripts that succeeded stay in effect.
func (app *Application) loadPlugins(cfg *config.Config) (*notation.Registry, *plugin.Manager) {
	log := app.logger.WithComponent("plugin")
	reg := notation.DefaultRegistry()
	m := plugin.NewManager(reg, plugin.WithLogger(log))

	if err := m.LoadAll(context.Background(), cfg.Plugins.Scripts); err != nil {
		log.Warn("%v", err)
	}
	for _, h := range m.List() {
		if h.State() != plugin.StateLoaded {
			continue
		}
		publish(app, events.TopicPluginLoaded, events.PluginLoaded{
			Path:       h.Name(),
			Registered: h.Registered(),
		})
	}
	return reg, m
}

func (app *Application) fieldOptions(cfg *config.Config, id string) []field.Option {
	auto := slices.Clone(cfg.Editor.AutoCommands)
	for _, name := range app.plugins.AutoCommands() {
		if !slices.Contains(auto, name) {
			auto = append(auto, name)
		}
	}
	return []field.Option{
		field.WithID(id),
		field.WithRegistry(app.registry),
		field.WithBus(app.bus),
		field.WithLogger(app.logger.WithComponent("field")),
		field.WithMaxDepth(cfg.Editor.MaxDepth),
		field.WithAutoCommands(auto...),
		field.WithNormalize(cfg.Editor.Normalize),
	}
}

func publish[T any](app *Application, t topic.Topic, payload T) {
	if err := app.bus.Publish(context.Background(), event.NewEvent(t, payload, "app")); err != nil {
		app.logger.WithComponent("event").Warn("publish %s: %v", t, err)
	}
}

// Do runs fn with exclusive access to the field.
func (app *Application) Do(fn func(f *field.Field) error) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if !app.running {
		return ErrNotRunning
	}
	return fn(app.field)
}

// Reload re-reads the configuration file and plugins and rebuilds the field
// with its current content and ID. On failure the running field is kept.
func (app *Application) Reload() error {
	if app.opts.ConfigPath == "" {
		return ErrNoConfigFile
	}

	cfg, err := config.Load(app.opts.ConfigPath)
	if err != nil {
		return &ComponentError{Component: "config", Action: "reload", Err: err}
	}

	app.mu.Lock()
	defer app.mu.Unlock()

	if !app.running {
		return ErrNotRunning
	}

	prevReg, prevPlugins := app.registry, app.plugins
	app.registry, app.plugins = app.loadPlugins(cfg)

	next := field.New(app.fieldOptions(cfg, app.field.ID())...)
	if err := next.SetLatex(app.field.Latex()); err != nil {
		app.registry, app.plugins = prevReg, prevPlugins
		return &ComponentError{Component: "field", Action: "reload", Err: err}
	}

	app.config = cfg
	app.field = next
	app.logger.SetLevel(app.loggerConfig(cfg).Level)
	app.logger.Info("configuration reloaded from %s", app.opts.ConfigPath)
	publish(app, events.TopicConfigReloaded, events.ConfigReloaded{Path: app.opts.ConfigPath})
	return nil
}

func (app *Application) startWatcher() error {
	log := app.logger.WithComponent("watcher")
	w, err := watcher.New(watcher.WithErrorHandler(func(err error) {
		log.Warn("%v", err)
	}))
	if err != nil {
		return err
	}
	app.watcher = w

	w.OnChange(func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove {
			log.Warn("%s was removed; keeping the current configuration", ev.Path)
			return
		}
		if err := app.Reload(); err != nil && !errors.Is(err, ErrNotRunning) {
			log.Error("reload: %v", err)
		}
	})
	return w.Watch(app.opts.ConfigPath)
}

// Config returns the active configuration.
func (app *Application) Config() config.Config {
	app.mu.Lock()
	defer app.mu.Unlock()
	return *app.config
}

// Bus returns the event bus fields publish to.
func (app *Application) Bus() *event.Bus {
	return app.bus
}

// Logger returns the application's logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Plugins returns the plugin manager of the active configuration.
func (app *Application) Plugins() *plugin.Manager {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.plugins
}

// Shutdown stops watching and flushes the logger. It is safe to call more
// than once.
func (app *Application) Shutdown() error {
	app.mu.Lock()
	if !app.running {
		app.mu.Unlock()
		return nil
	}
	app.running = false
	app.mu.Unlock()

	var errs []error
	if err := app.closeWatcher(); err != nil {
		errs = append(errs, &ComponentError{Component: "watcher", Action: "close", Err: err})
	}
	for _, sub := range app.subs {
		_ = app.bus.Unsubscribe(sub)
	}
	_ = app.logger.Sync()
	return errors.Join(errs...)
}

func (app *Application) closeWatcher() error {
	if app.watcher == nil {
		return nil
	}
	return app.watcher.Close()
}
