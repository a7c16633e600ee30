// Package file provides a TOML-backed ConfigStore.
//
// Configuration lives in ~/.ragtalk/config.toml by default. Keys use
// dot notation (e.g. "backend.base_url") and map to nested TOML tables.
// A Watcher can hot-reload the store when the file changes on disk.
package file
