package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regiongrow3d/pkg/morphology"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, MethodConfidence, cfg.Segmentation.Method)
	assert.Equal(t, 2.5, cfg.Segmentation.Multiplier)
	assert.Equal(t, 4, cfg.Segmentation.Iterations)
	assert.Equal(t, "ball", cfg.Cleanup.Shape)
	assert.True(t, cfg.Cleanup.Closing)
	assert.True(t, cfg.Output.Verbose)
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	body := `
segmentation:
  method: threshold
  lower: 100
  upper: 170
cleanup:
  opening: true
  closing: false
  shape: cross
  radii: [1, 1, 2]
output:
  verbose: false
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, MethodThreshold, cfg.Segmentation.Method)
	assert.Equal(t, 100.0, cfg.Segmentation.Lower)
	assert.Equal(t, 170.0, cfg.Segmentation.Upper)
	// untouched keys keep their defaults
	assert.Equal(t, 2.5, cfg.Segmentation.Multiplier)
	assert.False(t, cfg.Output.Verbose)

	se, err := cfg.CleanupElement()
	require.NoError(t, err)
	assert.Equal(t, morphology.Cross, se.Shape())
	assert.Equal(t, [3]int{1, 1, 2}, se.Radii())
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "cfg.yaml")
	cfg := DefaultConfig()
	cfg.Segmentation.Method = MethodVectorConfidence
	cfg.Segmentation.Multiplier = 3.5

	require.NoError(t, SaveConfig(cfg, path))
	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestCreateDefaultConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.yaml")
	require.NoError(t, CreateDefaultConfigFile(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), loaded)
}

func TestGrowerParams(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Segmentation.Multiplier = 1.5
	cfg.Segmentation.Iterations = 7
	cfg.Segmentation.InitialRadius = 2
	cfg.Segmentation.StrictSeedStats = true

	p := cfg.GrowerParams(nil)
	assert.Equal(t, 1.5, p.Multiplier)
	assert.Equal(t, 7, p.Iterations)
	assert.Equal(t, 2, p.InitialRadius)
	assert.True(t, p.StrictSeedStats)
}

func TestCleanupElementDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cleanup.Opening = false
	cfg.Cleanup.Closing = false

	se, err := cfg.CleanupElement()
	require.NoError(t, err)
	assert.Nil(t, se)
}

func TestCleanupElementErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cleanup.Shape = "diamond"
	_, err := cfg.CleanupElement()
	assert.ErrorIs(t, err, morphology.ErrUnknownShape)

	cfg = DefaultConfig()
	cfg.Cleanup.Radii = []int{1, 2}
	_, err = cfg.CleanupElement()
	assert.Error(t, err)
}
