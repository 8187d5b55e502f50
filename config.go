package relkit

import (
	"fmt"
	"os"

	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"gopkg.in/yaml.v3"
)

// PlatformConfig maps one platform key to its producer directory and
// display metadata.
type PlatformConfig struct {
	// Key is the platform identifier used in file names and output
	// subdirectories, e.g. "linux-x64".
	Key string `yaml:"key"`
	// DisplayName is the human-readable name shown in the index.
	DisplayName string `yaml:"display_name"`
	// Dir is the producer directory holding this platform's artifacts.
	Dir string `yaml:"dir"`
	// OS and Arch are the normalized GOOS/GOARCH-style identifiers.
	OS   string `yaml:"os,omitempty"`
	Arch string `yaml:"arch,omitempty"`
}

// OCIPlatform returns the entry's platform in OCI image-spec form.
func (p PlatformConfig) OCIPlatform() ocispec.Platform {
	return ocispec.Platform{OS: p.OS, Architecture: p.Arch}
}

// AliasConfig declares a legacy alias: the historical platform key From
// resolves to the artifact of the canonical replacement key To.
type AliasConfig struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// AggregateConfig is the full aggregation run configuration: the tool
// name, the platform table and the legacy alias mapping. It is plain data,
// built once per run and discarded after.
type AggregateConfig struct {
	// Tool is the product name used in canonical file names, e.g. "acme".
	Tool      string           `yaml:"tool"`
	Platforms []PlatformConfig `yaml:"platforms"`
	Aliases   []AliasConfig    `yaml:"aliases,omitempty"`
}

// Platform returns the table entry for key.
func (c *AggregateConfig) Platform(key string) (PlatformConfig, bool) {
	for _, p := range c.Platforms {
		if p.Key == key {
			return p, true
		}
	}
	return PlatformConfig{}, false
}

// Validate checks the configuration for structural problems: a missing
// tool name, duplicate or empty platform keys, missing producer dirs, and
// aliases pointing at unknown platforms.
func (c *AggregateConfig) Validate() error {
	if c.Tool == "" {
		return fmt.Errorf("config: tool name is required")
	}
	if len(c.Platforms) == 0 {
		return fmt.Errorf("config: at least one platform is required")
	}
	seen := make(map[string]bool, len(c.Platforms))
	for _, p := range c.Platforms {
		if p.Key == "" {
			return fmt.Errorf("config: platform with empty key")
		}
		if seen[p.Key] {
			return fmt.Errorf("config: duplicate platform key %q", p.Key)
		}
		seen[p.Key] = true
		if p.Dir == "" {
			return fmt.Errorf("config: platform %q has no producer dir", p.Key)
		}
	}
	for _, a := range c.Aliases {
		if a.From == "" || a.To == "" {
			return fmt.Errorf("config: alias with empty from/to")
		}
		if !seen[a.To] {
			return fmt.Errorf("config: alias %q points at unknown platform %q", a.From, a.To)
		}
		if seen[a.From] {
			return fmt.Errorf("config: alias %q shadows an existing platform key", a.From)
		}
	}
	return nil
}

// LoadAggregateConfig reads and validates a YAML aggregation config.
func LoadAggregateConfig(path string) (*AggregateConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg AggregateConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
