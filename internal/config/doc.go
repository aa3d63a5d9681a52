// Package config loads editpath settings from the embedded defaults, the
// user's config.toml and EDITPATH_* environment variables, in that order.
package config
