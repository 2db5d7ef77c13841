// Package config defines the reefdb-cli configuration file: default
// connection settings and saved connections, stored in ~/.reefdb/cli.yaml.
//
// Saved auth keys are sealed at rest with pkg/crypto/keybox when a config
// key is present in the environment (REEFDB_CONFIG_KEY); without one they
// are stored in the clear and the CLI warns about it.
package config
