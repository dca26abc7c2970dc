// Package config loads, normalizes, and validates SalesLens configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SALESLENS_REASONING_API_KEY. The Config type centralizes every knob the
// daemon and CLI need; it is constructed once at process start and passed by
// reference into each component's constructor, so core logic never reads
// configuration through a global.
package config
