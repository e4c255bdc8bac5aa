// Package config loads, normalizes, and validates SubFix configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, loads a local .env file, and honours
// environment fallbacks such as OPENROUTER_API_KEY and GEMINI_API_KEY. The
// Config type centralizes every knob the CLI needs: the correction service
// provider, batch size, export naming, and logging.
//
// Always obtain settings through this package so downstream code receives
// trimmed credentials, canonical log formats, and clear validation errors.
package config
