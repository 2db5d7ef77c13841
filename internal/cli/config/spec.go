package config

// CLIConfig is the configuration for reefdb-cli.
type CLIConfig struct {
	// Default connection settings used when flags don't override them.
	Default Defaults `koanf:"default" yaml:"default"`

	// Connections holds saved connections by name.
	Connections map[string]ConnectionConfig `koanf:"connections" yaml:"connections,omitempty"`
}

// Defaults are the fallback connection settings.
type Defaults struct {
	Address  string `koanf:"address" yaml:"address"`
	Database string `koanf:"database" yaml:"database,omitempty"`
	Output   string `koanf:"output" yaml:"output"` // table, json, yaml
}

// ConnectionConfig stores saved connection details.
type ConnectionConfig struct {
	Address  string `koanf:"address" yaml:"address"`
	Database string `koanf:"database" yaml:"database,omitempty"`

	// AuthKey is the plaintext auth key. Cleared on save when a config
	// key is available.
	AuthKey string `koanf:"auth_key" yaml:"auth_key,omitempty"`

	// AuthKeySealed is the base64 keybox blob replacing AuthKey at rest.
	AuthKeySealed string `koanf:"auth_key_sealed" yaml:"auth_key_sealed,omitempty"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		Default: Defaults{
			Address: "localhost:28015",
			Output:  "table",
		},
		Connections: make(map[string]ConnectionConfig),
	}
}
