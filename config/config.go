// Package config loads the YAML configuration of the meshattr tools.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/meshattr/format"
	"github.com/arloliu/meshattr/logger"
)

// Config is the root configuration.
type Config struct {
	Log      logger.Config  `yaml:"log"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
}

// SnapshotConfig configures snapshot encoding.
type SnapshotConfig struct {
	Compression format.CompressionType `yaml:"compression"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log: logger.DefaultConfig(),
		Snapshot: SnapshotConfig{
			Compression: format.CompressionNone,
		},
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if !c.Snapshot.Compression.IsValid() {
		return fmt.Errorf("invalid snapshot compression %d", uint8(c.Snapshot.Compression))
	}
	if _, err := logger.New(c.Log); err != nil {
		return fmt.Errorf("invalid log configuration: %w", err)
	}

	return nil
}

// Load reads the YAML file at path over the defaults. ${VAR} references are
// replaced by the value of the environment variable VAR before parsing.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is chosen by the operator
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal([]byte(substituteEnvVars(string(data))), &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// substituteEnvVars replaces ${VAR} with the value of VAR. Substituted values
// are not scanned again; an unterminated reference is kept as is.
func substituteEnvVars(content string) string {
	var b strings.Builder
	for {
		start := strings.Index(content, "${")
		if start == -1 {
			break
		}
		end := strings.IndexByte(content[start:], '}')
		if end == -1 {
			break
		}
		end += start

		b.WriteString(content[:start])
		b.WriteString(os.Getenv(content[start+2 : end]))
		content = content[end+1:]
	}
	b.WriteString(content)

	return b.String()
}
