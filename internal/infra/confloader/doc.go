// Package confloader provides configuration loading for reefdb-go.
//
// It uses koanf to merge configuration sources with priority
// Env > File > Default, and a debounced fsnotify watcher so the CLI can
// reload saved connections when the config file changes on disk.
package confloader
