// Package config loads shopkeep's TOML configuration.
//
// The file lives at ~/.config/shopkeep/config.toml unless --config names
// another one. A missing file is not an error: every field has a default.
//
//	api_url    = "https://api.escuelajs.co/api/v1/products"
//	export_dir = "."
//	log_file   = "~/.local/state/shopkeep/shopkeep.log"
//	log_level  = "info"
//
// Blank values fall back to the defaults, except log_file where an explicit
// empty string turns logging off. Paths get ~ expansion and are made
// absolute. log_level must be a level logrus understands.
package config
