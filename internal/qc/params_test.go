// © 2026 AstroQC Contributors
//
// SPDX-License-Identifier: MIT

package qc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, 10.0, p.WCSToleranceArcsec)
	assert.Equal(t, 15.0, p.BrightKepMag)
	assert.Equal(t, 10000.0, p.CDPPCeilingPPM)
	assert.Equal(t, []int{91, 92}, p.ThrusterExemptCampaigns)
	assert.Greater(t, p.Workers, 0)
}

func TestLoadParams(t *testing.T) {
	t.Run("empty path keeps defaults", func(t *testing.T) {
		p, err := LoadParams("")
		require.NoError(t, err)
		assert.Equal(t, DefaultParams(), p)
	})

	t.Run("file overlays defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tpfqc.yaml")
		require.NoError(t, os.WriteFile(path, []byte(
			"wcs-tolerance-arcsec: 25\nworkers: 2\n"), 0644))

		p, err := LoadParams(path)
		require.NoError(t, err)
		assert.Equal(t, 25.0, p.WCSToleranceArcsec)
		assert.Equal(t, 2, p.Workers)
		assert.Equal(t, 15.0, p.BrightKepMag, "untouched thresholds keep defaults")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadParams("/does/not/exist.yaml")
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tpfqc.yaml")
		require.NoError(t, os.WriteFile(path, []byte("workers: [nope"), 0644))

		_, err := LoadParams(path)
		assert.Error(t, err)
	})
}

func TestThrusterExempt(t *testing.T) {
	p := DefaultParams()
	assert.True(t, p.ThrusterExempt(91))
	assert.True(t, p.ThrusterExempt(92))
	assert.False(t, p.ThrusterExempt(9))
	assert.False(t, p.ThrusterExempt(14))
}
