// © 2026 AstroQC Contributors
//
// SPDX-License-Identifier: MIT

package qc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astroqc/tpfqc/internal/tpf"
)

// validFile builds a small campaign-14 file that passes every rule:
// ten cadences over a 3x3 frame, six of them flagged as thruster
// firings against a five-day TELAPSE.
func validFile() *tpf.File {
	const cadences = 10
	const pixels = 9

	f := &tpf.File{Path: "ktwo200000001-c141_lpd-targ.fits"}
	f.Primary = tpf.Header{
		"CAMPAIGN": 14,
		"RA_OBJ":   180.0,
		"DEC_OBJ":  20.0,
		"KEPMAG":   12.0,
	}
	f.TableHeader = tpf.Header{
		"TELAPSE":  5.0,
		"TDIM5":    "(3,3)",
		"CDPP3_0":  45.0,
		"CDPP6_0":  38.0,
		"CDPP12_0": 31.0,
	}
	f.ApertureHeader = tpf.Header{
		"NAXIS1": 3,
		"NAXIS2": 3,
		"CTYPE1": "RA---TAN",
		"CTYPE2": "DEC--TAN",
		"CRPIX1": 2.0,
		"CRPIX2": 2.0,
		"CRVAL1": 180.0,
		"CRVAL2": 20.0,
		"CD1_1":  -0.001,
		"CD1_2":  0.0,
		"CD2_1":  0.0,
		"CD2_2":  0.001,
	}
	f.Aperture = tpf.Image{
		Data:   []int32{0, 1, 0, 1, 3, 1, 0, 1, 0},
		Width:  3,
		Height: 3,
	}

	for i := 0; i < cadences; i++ {
		f.Cadences.Time = append(f.Cadences.Time, 2456000.5+float64(i))
		f.Cadences.TimeCorr = append(f.Cadences.TimeCorr, 0.001)
		f.Cadences.CadenceNo = append(f.Cadences.CadenceNo, int32(100000+i))
		if i < 6 {
			f.Cadences.Quality = append(f.Cadences.Quality, tpf.FlagThrusterFiring)
		} else {
			f.Cadences.Quality = append(f.Cadences.Quality, 0)
		}

		flux := make([]float32, pixels)
		fluxErr := make([]float32, pixels)
		bkg := make([]float32, pixels)
		bkgErr := make([]float32, pixels)
		raw := make([]int32, pixels)
		for j := 0; j < pixels; j++ {
			flux[j] = 100
			fluxErr[j] = 3
			bkg[j] = 10
			bkgErr[j] = 1
			raw[j] = 5000
		}
		f.Cadences.Flux = append(f.Cadences.Flux, flux)
		f.Cadences.FluxErr = append(f.Cadences.FluxErr, fluxErr)
		f.Cadences.FluxBkg = append(f.Cadences.FluxBkg, bkg)
		f.Cadences.FluxBkgErr = append(f.Cadences.FluxBkgErr, bkgErr)
		f.Cadences.RawCnts = append(f.Cadences.RawCnts, raw)
	}
	f.Cadences.FrameWidth = 3
	f.Cadences.FrameHeight = 3

	return f
}

func TestValidFilePassesAllChecks(t *testing.T) {
	f := validFile()
	p := DefaultParams()
	for _, check := range Registry() {
		t.Run(check.Name(), func(t *testing.T) {
			assert.NoError(t, check.Run(f, p))
		})
	}
}

func TestTableShapes(t *testing.T) {
	p := DefaultParams()

	t.Run("truncated scalar column", func(t *testing.T) {
		f := validFile()
		f.Cadences.TimeCorr = f.Cadences.TimeCorr[:5]
		err := tableShapes{}.Run(f, p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "TIMECORR")
	})

	t.Run("missing pixel column rows", func(t *testing.T) {
		f := validFile()
		f.Cadences.FluxBkg = f.Cadences.FluxBkg[:9]
		assert.Error(t, tableShapes{}.Run(f, p))
	})

	t.Run("ragged frame", func(t *testing.T) {
		f := validFile()
		f.Cadences.FluxErr[4] = f.Cadences.FluxErr[4][:3]
		err := tableShapes{}.Run(f, p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "FLUX_ERR frame 4")
	})

	t.Run("frame size disagrees with declared dimensions", func(t *testing.T) {
		f := validFile()
		f.Cadences.FrameWidth = 4
		err := tableShapes{}.Run(f, p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "TDIM5 declares 4x3")
	})

	t.Run("empty table is consistent", func(t *testing.T) {
		f := validFile()
		f.Cadences = tpf.Cadences{}
		assert.NoError(t, tableShapes{}.Run(f, p))
	})
}

func TestApertureNonEmpty(t *testing.T) {
	f := validFile()
	f.Aperture.Data = make([]int32, 9)
	assert.Error(t, apertureNonEmpty{}.Run(f, DefaultParams()))
}

func TestApertureShape(t *testing.T) {
	p := DefaultParams()

	t.Run("mismatched TDIM5", func(t *testing.T) {
		f := validFile()
		f.TableHeader["TDIM5"] = "(4,3)"
		err := apertureShape{}.Run(f, p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "(3,3)")
	})

	t.Run("missing TDIM5", func(t *testing.T) {
		f := validFile()
		delete(f.TableHeader, "TDIM5")
		assert.Error(t, apertureShape{}.Run(f, p))
	})

	t.Run("missing aperture axes", func(t *testing.T) {
		f := validFile()
		delete(f.ApertureHeader, "NAXIS2")
		assert.Error(t, apertureShape{}.Run(f, p))
	})
}

func TestThrusterFlags(t *testing.T) {
	p := DefaultParams()

	t.Run("no CAMPAIGN keyword passes", func(t *testing.T) {
		f := validFile()
		delete(f.Primary, "CAMPAIGN")
		for i := range f.Cadences.Quality {
			f.Cadences.Quality[i] = 0
		}
		assert.NoError(t, thrusterFlags{}.Run(f, p))
	})

	t.Run("exempt campaign passes", func(t *testing.T) {
		f := validFile()
		f.Primary["CAMPAIGN"] = 91
		for i := range f.Cadences.Quality {
			f.Cadences.Quality[i] = 0
		}
		assert.NoError(t, thrusterFlags{}.Run(f, p))
	})

	t.Run("too few firings", func(t *testing.T) {
		f := validFile()
		for i := range f.Cadences.Quality {
			f.Cadences.Quality[i] = 0
		}
		err := thrusterFlags{}.Run(f, p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "0 thruster firings")
	})

	t.Run("missing TELAPSE", func(t *testing.T) {
		f := validFile()
		delete(f.TableHeader, "TELAPSE")
		assert.Error(t, thrusterFlags{}.Run(f, p))
	})
}

func TestQualityZero(t *testing.T) {
	f := validFile()
	for i := range f.Cadences.Quality {
		f.Cadences.Quality[i] = tpf.FlagThrusterFiring
	}
	err := qualityZero{}.Run(f, DefaultParams())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no cadence with QUALITY == 0")
}

func TestWCSKeywords(t *testing.T) {
	f := validFile()
	delete(f.ApertureHeader, "CTYPE1")
	assert.Error(t, wcsKeywords{}.Run(f, DefaultParams()))
}

func TestWCSCoordinates(t *testing.T) {
	p := DefaultParams()

	t.Run("misplaced target", func(t *testing.T) {
		f := validFile()
		f.Primary["RA_OBJ"] = 181.0
		err := wcsCoordinates{}.Run(f, p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "arcsec")
	})

	t.Run("within tolerance", func(t *testing.T) {
		f := validFile()
		// 5 arcsec off in declination, under the 10 arcsec tolerance.
		f.Primary["DEC_OBJ"] = 20.0 + 5.0/3600
		assert.NoError(t, wcsCoordinates{}.Run(f, p))
	})

	t.Run("missing RA_OBJ", func(t *testing.T) {
		f := validFile()
		delete(f.Primary, "RA_OBJ")
		assert.Error(t, wcsCoordinates{}.Run(f, p))
	})
}

func TestPositiveFlux(t *testing.T) {
	p := DefaultParams()

	t.Run("negative pixels counted", func(t *testing.T) {
		f := validFile()
		f.Cadences.Flux[2][4] = -200
		f.Cadences.Flux[7][0] = -200
		err := positiveFlux{}.Run(f, p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "2 pixels")
	})

	t.Run("NaN pixels skipped", func(t *testing.T) {
		f := validFile()
		f.Cadences.Flux[2][4] = float32(math.NaN())
		f.Cadences.FluxBkg[3][1] = float32(math.NaN())
		assert.NoError(t, positiveFlux{}.Run(f, p))
	})
}

func TestCDPP(t *testing.T) {
	p := DefaultParams()

	t.Run("missing keyword", func(t *testing.T) {
		f := validFile()
		delete(f.TableHeader, "CDPP6_0")
		err := cdpp{}.Run(f, p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CDPP6_0")
	})

	t.Run("non-positive estimate", func(t *testing.T) {
		f := validFile()
		f.TableHeader["CDPP12_0"] = -1.0
		assert.Error(t, cdpp{}.Run(f, p))
	})

	t.Run("bright star above ceiling", func(t *testing.T) {
		f := validFile()
		f.TableHeader["CDPP3_0"] = 20000.0
		err := cdpp{}.Run(f, p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CDPP3_0")
	})

	t.Run("faint star above ceiling passes", func(t *testing.T) {
		f := validFile()
		f.Primary["KEPMAG"] = 16.5
		f.TableHeader["CDPP3_0"] = 20000.0
		assert.NoError(t, cdpp{}.Run(f, p))
	})

	t.Run("custom mask without magnitude is exempt", func(t *testing.T) {
		f := validFile()
		f.Primary["KEPMAG"] = "N/A"
		f.TableHeader["CDPP3_0"] = 20000.0
		assert.NoError(t, cdpp{}.Run(f, p))
	})
}

func TestCheckFile(t *testing.T) {
	t.Run("clean file yields no issues", func(t *testing.T) {
		assert.Empty(t, CheckFile(validFile(), DefaultParams()))
	})

	t.Run("issues come out in registry order", func(t *testing.T) {
		f := validFile()
		f.Aperture.Data = make([]int32, 9)
		for i := range f.Cadences.Quality {
			f.Cadences.Quality[i] = tpf.FlagThrusterFiring
		}

		issues := CheckFile(f, DefaultParams())
		require.Len(t, issues, 2)
		assert.Equal(t, "aperture-nonempty", issues[0].Check)
		assert.Equal(t, "quality-zero", issues[1].Check)
		assert.Equal(t, f.Path, issues[0].File)
	})
}
