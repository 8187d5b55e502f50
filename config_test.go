package relkit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const configYAML = `tool: acme
platforms:
  - key: linux-x64
    display_name: Linux x64
    dir: out/linux-x64
    os: linux
    arch: amd64
  - key: macos-arm64
    display_name: macOS ARM64
    dir: out/macos-arm64
    os: darwin
    arch: arm64
aliases:
  - from: linux
    to: linux-x64
`

func TestLoadAggregateConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "platforms.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o644))

	cfg, err := LoadAggregateConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "acme", cfg.Tool)
	require.Len(t, cfg.Platforms, 2)
	assert.Equal(t, "linux-x64", cfg.Platforms[0].Key)
	assert.Equal(t, "out/linux-x64", cfg.Platforms[0].Dir)

	p, ok := cfg.Platform("macos-arm64")
	require.True(t, ok)
	assert.Equal(t, "darwin", p.OCIPlatform().OS)
	assert.Equal(t, "arm64", p.OCIPlatform().Architecture)

	require.Len(t, cfg.Aliases, 1)
	assert.Equal(t, "linux", cfg.Aliases[0].From)
}

func TestLoadAggregateConfigMissing(t *testing.T) {
	t.Parallel()

	_, err := LoadAggregateConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestAggregateConfigValidate(t *testing.T) {
	t.Parallel()

	valid := func() *AggregateConfig {
		return &AggregateConfig{
			Tool: "acme",
			Platforms: []PlatformConfig{
				{Key: "linux-x64", Dir: "out/linux-x64"},
			},
			Aliases: []AliasConfig{{From: "linux", To: "linux-x64"}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*AggregateConfig)
		wantErr string
	}{
		{"valid", func(c *AggregateConfig) {}, ""},
		{"no tool", func(c *AggregateConfig) { c.Tool = "" }, "tool name"},
		{"no platforms", func(c *AggregateConfig) { c.Platforms = nil }, "at least one platform"},
		{"empty key", func(c *AggregateConfig) { c.Platforms[0].Key = "" }, "empty key"},
		{"no dir", func(c *AggregateConfig) { c.Platforms[0].Dir = "" }, "no producer dir"},
		{"duplicate key", func(c *AggregateConfig) {
			c.Platforms = append(c.Platforms, PlatformConfig{Key: "linux-x64", Dir: "x"})
		}, "duplicate platform key"},
		{"alias to unknown", func(c *AggregateConfig) { c.Aliases[0].To = "bsd" }, "unknown platform"},
		{"alias shadows platform", func(c *AggregateConfig) { c.Aliases[0].From = "linux-x64" }, "shadows"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
