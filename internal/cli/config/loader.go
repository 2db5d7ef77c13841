package config

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yndnr/reefdb-go/internal/infra/confloader"
	"github.com/yndnr/reefdb-go/pkg/crypto/keybox"
)

// ConfigKeyEnv names the environment variable holding the passphrase
// used to seal saved auth keys.
const ConfigKeyEnv = "REEFDB_CONFIG_KEY"

// DefaultConfigPath returns the default config file path, ~/.reefdb/cli.yaml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".reefdb", "cli.yaml"), nil
}

// Load reads the configuration from path, layering REEFDB_* environment
// variables on top. A missing file is not an error; defaults apply.
func Load(path string) (*CLIConfig, error) {
	cfg := Default()

	opts := []confloader.Option{}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			opts = append(opts, confloader.WithConfigFile(path))
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat config file: %w", err)
		}
	}

	l := confloader.NewLoader(opts...)
	if err := l.Load(cfg); err != nil {
		return nil, err
	}

	if cfg.Connections == nil {
		cfg.Connections = make(map[string]ConnectionConfig)
	}
	if err := cfg.openAuthKeys(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to path as YAML. The parent directory is
// created with mode 0700 and the file with 0600 since it may hold auth
// keys. When a config key is present in the environment, plaintext auth
// keys are sealed before writing.
func Save(cfg *CLIConfig, path string) error {
	out := *cfg
	out.Connections = make(map[string]ConnectionConfig, len(cfg.Connections))
	for name, cc := range cfg.Connections {
		out.Connections[name] = cc
	}

	if err := out.sealAuthKeys(); err != nil {
		return err
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Sealed reports whether any saved connection has a sealed auth key.
func (c *CLIConfig) Sealed() bool {
	for _, cc := range c.Connections {
		if cc.AuthKeySealed != "" {
			return true
		}
	}
	return false
}

// HasPlaintextKeys reports whether any saved connection stores its auth
// key in the clear. The CLI warns about these when no config key is set.
func (c *CLIConfig) HasPlaintextKeys() bool {
	for _, cc := range c.Connections {
		if cc.AuthKey != "" {
			return true
		}
	}
	return false
}

// sealAuthKeys replaces plaintext auth keys with sealed blobs when a
// config key is available. Without one the keys pass through untouched.
func (c *CLIConfig) sealAuthKeys() error {
	box, ok, err := boxFromEnv()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	for name, cc := range c.Connections {
		if cc.AuthKey == "" {
			continue
		}
		sealed, err := box.Seal([]byte(cc.AuthKey), []byte(name))
		if err != nil {
			return fmt.Errorf("seal auth key for %q: %w", name, err)
		}
		cc.AuthKeySealed = base64.StdEncoding.EncodeToString(sealed)
		cc.AuthKey = ""
		c.Connections[name] = cc
	}

	return nil
}

// openAuthKeys restores plaintext auth keys from sealed blobs. Sealed
// entries are left alone when no config key is set; callers that need the
// key will fail to authenticate and the error message points here.
func (c *CLIConfig) openAuthKeys() error {
	box, ok, err := boxFromEnv()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	for name, cc := range c.Connections {
		if cc.AuthKeySealed == "" {
			continue
		}
		sealed, err := base64.StdEncoding.DecodeString(cc.AuthKeySealed)
		if err != nil {
			return fmt.Errorf("decode sealed auth key for %q: %w", name, err)
		}
		plain, err := box.Open(sealed, []byte(name))
		if err != nil {
			return fmt.Errorf("open auth key for %q (wrong %s?): %w", name, ConfigKeyEnv, err)
		}
		cc.AuthKey = string(plain)
		c.Connections[name] = cc
	}

	return nil
}

// boxFromEnv builds a keybox from the passphrase in REEFDB_CONFIG_KEY.
// The passphrase is stretched to the box key size with SHA-256.
func boxFromEnv() (*keybox.Box, bool, error) {
	pass := os.Getenv(ConfigKeyEnv)
	if pass == "" {
		return nil, false, nil
	}

	key := sha256.Sum256([]byte(pass))
	box, err := keybox.New(key[:])
	if err != nil {
		return nil, false, fmt.Errorf("init config keybox: %w", err)
	}
	return box, true, nil
}
