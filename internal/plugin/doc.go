// Package plugin extends the notation registry from Lua scripts.
//
// Each script runs once in its own sandboxed state (see package lua) with a
// global mathfield table:
//
//	mathfield.symbol(name, text)            -- register \name rendering as text
//	mathfield.command(name, arity[, opts])  -- opts: {optional=bool, operator=bool}
//	mathfield.autocommand(name, ...)        -- convert name while typing
//	mathfield.registered(name)              -- true if name is registered
//	mathfield.names()                       -- every registered name, sorted
//	mathfield.version                       -- API version string
//
// A Host runs one script; a Manager runs a configured list of them against a
// shared registry:
//
//	m := plugin.NewManager(reg, plugin.WithLogger(logger))
//	if err := m.LoadAll(ctx, cfg.Plugins.Scripts); err != nil {
//	    logger.Warn("plugins: %v", err)
//	}
//	auto := m.AutoCommands()
//
// Registrations made by a failing script before it failed stay in the
// registry.
package plugin
