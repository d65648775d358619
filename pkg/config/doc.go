// Package config loads and validates hoto's optional TOML configuration.
//
// The file lives at $XDG_CONFIG_HOME/hoto/config.toml unless HOTO_CONFIG or
// an explicit path says otherwise, and may be absent. HOTO_FORMAT overrides
// the configured format; the CLI applies its flags last.
package config
