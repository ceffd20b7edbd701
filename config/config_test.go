package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tetramorph/overrun/bounds"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "overrun.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
widening_thresholds = [8, 32]
trace_depth = 3
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []int64{8, 32}, cfg.WideningThresholds)
	assert.Equal(t, 3, cfg.TraceDepth)
	assert.Equal(t, Default().WideningDelay, cfg.WideningDelay, "absent keys keep defaults")
}

func TestLoadRejectsUnsortedThresholds(t *testing.T) {
	path := writeConfig(t, `widening_thresholds = [32, 8]`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "strictly ascending")
}

func TestLoadRejectsNegativeDelay(t *testing.T) {
	path := writeConfig(t, `widening_delay = -1`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "widening_delay")
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := writeConfig(t, `widening_delay = `)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestThresholdZs(t *testing.T) {
	cfg := Config{WideningThresholds: []int64{0, 255}}
	zs := cfg.ThresholdZs()
	require.Len(t, zs, 2)
	assert.Zero(t, zs[0].Cmp(bounds.NewZ(0)))
	assert.Zero(t, zs[1].Cmp(bounds.NewZ(255)))
}
