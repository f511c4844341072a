// © 2026 AstroQC Contributors
//
// SPDX-License-Identifier: MIT

package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astroqc/tpfqc/internal/qc"
	"github.com/astroqc/tpfqc/internal/tpf"
)

func TestRenderReport(t *testing.T) {
	t.Run("clean report is just the verdict", func(t *testing.T) {
		report := &qc.Report{Path: "/data", FilesChecked: 3}
		out, err := RenderReport(report)
		require.NoError(t, err)
		assert.Contains(t, out, "Found 0 issues (3 files checked).")
		assert.NotContains(t, out, "File")
	})

	t.Run("issues are tabulated before the verdict", func(t *testing.T) {
		report := &qc.Report{
			Path:         "/data",
			FilesChecked: 3,
			Issues: []qc.Issue{
				{File: "ktwo200000001-c141_lpd-targ.fits", Check: "flux-positive", Detail: "cadence 5: flux sum -12.5 is not positive"},
				{File: "ktwo200000002-c141_lpd-targ.fits", Check: "open", Detail: "not a FITS file"},
			},
		}
		out, err := RenderReport(report)
		require.NoError(t, err)
		assert.Contains(t, out, "ktwo200000001-c141_lpd-targ.fits")
		assert.Contains(t, out, "cadence 5: flux sum -12.5 is not positive")
		assert.Contains(t, out, "not a FITS file")
		assert.Contains(t, out, "Found 2 issues (3 files checked).")
	})
}

func TestRenderQualitySummary(t *testing.T) {
	summary := tpf.SummarizeQuality([]int32{
		0,
		tpf.FlagThrusterFiring,
		tpf.FlagThrusterFiring | tpf.FlagAttitudeTweak,
	})

	out, err := RenderQualitySummary(summary)
	require.NoError(t, err)

	assert.Contains(t, out, "Thruster firing")
	assert.Contains(t, out, "Attitude tweak")
	assert.Contains(t, out, "Coarse point")
	assert.Contains(t, out, "(Total number of cadences: 3)")
}
