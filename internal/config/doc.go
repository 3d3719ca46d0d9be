// Package config loads mathfield settings.
//
// Settings are layered with higher layers overriding lower ones:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file, chosen by extension
//  3. MATHFIELD_* environment variables
//
// The merged layers decode into a typed Config which is then validated.
//
// # Sub-packages
//
//   - loader: TOML, YAML and environment variable loading plus merging
//   - watcher: file watching for live reload
//
// # Basic Usage
//
//	cfg, err := config.Load("mathfield.toml")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Editor.MaxDepth)
package config
