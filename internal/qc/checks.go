// © 2026 AstroQC Contributors
//
// SPDX-License-Identifier: MIT

package qc

import (
	"fmt"
	"math"

	"github.com/astroqc/tpfqc/internal/tpf"
	"github.com/astroqc/tpfqc/internal/wcs"
)

// tableShapes verifies that the cadence table columns share consistent
// shapes: scalar columns one value per cadence, pixel columns one frame
// of identical size per cadence.
type tableShapes struct{}

func (tableShapes) Name() string { return "table-shapes" }
func (tableShapes) Describe() string {
	return "binary table columns have consistent shapes"
}

func (tableShapes) Run(f *tpf.File, _ Params) error {
	c := f.Cadences
	n := c.Len()

	for _, col := range []struct {
		name string
		rows int
	}{
		{"TIMECORR", len(c.TimeCorr)},
		{"CADENCENO", len(c.CadenceNo)},
		{"QUALITY", len(c.Quality)},
		{"FLUX", len(c.Flux)},
		{"FLUX_ERR", len(c.FluxErr)},
		{"RAW_CNTS", len(c.RawCnts)},
		{"FLUX_BKG", len(c.FluxBkg)},
		{"FLUX_BKG_ERR", len(c.FluxBkgErr)},
	} {
		if col.rows != n {
			return fmt.Errorf("%s has %d rows, TIME has %d", col.name, col.rows, n)
		}
	}

	if n == 0 {
		return nil
	}
	frame := len(c.Flux[0])
	if c.FrameWidth > 0 && c.FrameHeight > 0 && frame != c.FrameWidth*c.FrameHeight {
		return fmt.Errorf("FLUX frame has %d pixels, TDIM5 declares %dx%d", frame, c.FrameWidth, c.FrameHeight)
	}
	for _, col := range []struct {
		name   string
		frames [][]float32
	}{
		{"FLUX", c.Flux},
		{"FLUX_ERR", c.FluxErr},
		{"FLUX_BKG", c.FluxBkg},
		{"FLUX_BKG_ERR", c.FluxBkgErr},
	} {
		for i, px := range col.frames {
			if len(px) != frame {
				return fmt.Errorf("%s frame %d has %d pixels, expected %d", col.name, i, len(px), frame)
			}
		}
	}
	for i, px := range c.RawCnts {
		if len(px) != frame {
			return fmt.Errorf("RAW_CNTS frame %d has %d pixels, expected %d", i, len(px), frame)
		}
	}
	return nil
}

// apertureNonEmpty verifies that the aperture mask selects at least one
// pixel.
type apertureNonEmpty struct{}

func (apertureNonEmpty) Name() string     { return "aperture-nonempty" }
func (apertureNonEmpty) Describe() string { return "aperture mask is not empty" }

func (apertureNonEmpty) Run(f *tpf.File, _ Params) error {
	if f.Aperture.Sum() <= 0 {
		return fmt.Errorf("aperture mask sums to %d", f.Aperture.Sum())
	}
	return nil
}

// apertureShape verifies that the pixel frames in the cadence table have
// the dimensions of the aperture extension. Regression guard for the
// KSOC-5085 mismatch.
type apertureShape struct{}

func (apertureShape) Name() string     { return "aperture-shape" }
func (apertureShape) Describe() string { return "flux frame shape matches the aperture image" }

func (apertureShape) Run(f *tpf.File, _ Params) error {
	tdim, ok := f.TableHeader.Str("TDIM5")
	if !ok {
		return fmt.Errorf("missing TDIM5 in cadence table header")
	}
	naxis1, ok := f.ApertureHeader.Int("NAXIS1")
	if !ok {
		return fmt.Errorf("missing NAXIS1 in aperture header")
	}
	naxis2, ok := f.ApertureHeader.Int("NAXIS2")
	if !ok {
		return fmt.Errorf("missing NAXIS2 in aperture header")
	}
	want := fmt.Sprintf("(%d,%d)", naxis1, naxis2)
	if tdim != want {
		return fmt.Errorf("TDIM5 is %s, aperture image is %s", tdim, want)
	}
	return nil
}

// thrusterFlags verifies that K2 products flag thruster firings. The
// spacecraft fires its thrusters for pointing maintenance roughly every
// six hours, so any campaign-length product must flag more firings than
// it spans days.
type thrusterFlags struct{}

func (thrusterFlags) Name() string     { return "thruster-flags" }
func (thrusterFlags) Describe() string { return "thruster firing flags are populated" }

func (thrusterFlags) Run(f *tpf.File, p Params) error {
	campaign, ok := f.Primary.Int("CAMPAIGN")
	if !ok {
		// Kepler prime-mission products carry no CAMPAIGN keyword.
		return nil
	}
	if p.ThrusterExempt(campaign) {
		return nil
	}

	telapse, ok := f.TableHeader.Float("TELAPSE")
	if !ok {
		return fmt.Errorf("missing TELAPSE in cadence table header")
	}

	firings := 0
	for _, q := range f.Cadences.Quality {
		if q&tpf.FlagThrusterFiring != 0 {
			firings++
		}
	}
	if float64(firings) <= telapse {
		return fmt.Errorf("%d thruster firings flagged over %.1f days", firings, telapse)
	}
	return nil
}

// qualityZero verifies that at least one cadence is flawless.
type qualityZero struct{}

func (qualityZero) Name() string     { return "quality-zero" }
func (qualityZero) Describe() string { return "some cadences have QUALITY == 0" }

func (qualityZero) Run(f *tpf.File, _ Params) error {
	for _, q := range f.Cadences.Quality {
		if q == 0 {
			return nil
		}
	}
	return fmt.Errorf("no cadence with QUALITY == 0 among %d cadences", len(f.Cadences.Quality))
}

// wcsKeywords verifies that the aperture extension carries a parseable
// TAN projection.
type wcsKeywords struct{}

func (wcsKeywords) Name() string     { return "wcs-keywords" }
func (wcsKeywords) Describe() string { return "aperture WCS keywords are valid" }

func (wcsKeywords) Run(f *tpf.File, _ Params) error {
	if _, err := wcs.Parse(f.ApertureHeader); err != nil {
		return err
	}
	return nil
}

// wcsCoordinates verifies that the WCS solution at the frame center
// lands near the cataloged target position.
type wcsCoordinates struct{}

func (wcsCoordinates) Name() string     { return "wcs-coordinates" }
func (wcsCoordinates) Describe() string { return "WCS solution agrees with RA_OBJ/DEC_OBJ" }

func (wcsCoordinates) Run(f *tpf.File, p Params) error {
	t, err := wcs.Parse(f.ApertureHeader)
	if err != nil {
		return err
	}
	naxis1, ok := f.ApertureHeader.Int("NAXIS1")
	if !ok {
		return fmt.Errorf("missing NAXIS1 in aperture header")
	}
	naxis2, ok := f.ApertureHeader.Int("NAXIS2")
	if !ok {
		return fmt.Errorf("missing NAXIS2 in aperture header")
	}
	raObj, ok := f.Primary.Float("RA_OBJ")
	if !ok {
		return fmt.Errorf("missing or non-numeric RA_OBJ")
	}
	decObj, ok := f.Primary.Float("DEC_OBJ")
	if !ok {
		return fmt.Errorf("missing or non-numeric DEC_OBJ")
	}

	ra, dec := t.PixelToWorld((float64(naxis1)+1)/2, (float64(naxis2)+1)/2)
	sep := wcs.Separation(ra, dec, raObj, decObj)
	if sep > p.WCSToleranceArcsec/3600 {
		return fmt.Errorf("frame center (%.5f, %.5f) is %.1f arcsec from RA_OBJ/DEC_OBJ (%.5f, %.5f)",
			ra, dec, sep*3600, raObj, decObj)
	}
	return nil
}

// positiveFlux verifies that the calibrated flux plus background is
// never negative. NaN pixels (bleed columns, dead pixels) are skipped.
type positiveFlux struct{}

func (positiveFlux) Name() string     { return "positive-flux" }
func (positiveFlux) Describe() string { return "FLUX + FLUX_BKG is never negative" }

func (positiveFlux) Run(f *tpf.File, _ Params) error {
	negative := 0
	for i, frame := range f.Cadences.Flux {
		if i >= len(f.Cadences.FluxBkg) {
			break
		}
		bkg := f.Cadences.FluxBkg[i]
		for j, v := range frame {
			if j >= len(bkg) {
				break
			}
			a := float64(v)
			b := float64(bkg[j])
			if math.IsNaN(a) || math.IsNaN(b) {
				continue
			}
			if a+b < 0 {
				negative++
			}
		}
	}
	if negative > 0 {
		return fmt.Errorf("%d pixels with negative FLUX + FLUX_BKG", negative)
	}
	return nil
}

var cdppKeywords = []string{"CDPP3_0", "CDPP6_0", "CDPP12_0"}

// cdpp verifies that the CDPP noise estimates are present and sensible.
// Bright stars must reach at least 1% photometry; custom masks without a
// resolvable target magnitude are exempt from the ceiling.
type cdpp struct{}

func (cdpp) Name() string     { return "cdpp" }
func (cdpp) Describe() string { return "CDPP estimates are present and sensible" }

func (cdpp) Run(f *tpf.File, p Params) error {
	for _, kw := range cdppKeywords {
		v, ok := f.TableHeader.Float(kw)
		if !ok {
			return fmt.Errorf("missing or non-numeric %s", kw)
		}
		if v <= 0 {
			return fmt.Errorf("%s is %g, expected > 0", kw, v)
		}
	}

	kepmag, ok := f.Primary.Float("KEPMAG")
	if !ok {
		return nil
	}
	if kepmag >= p.BrightKepMag {
		return nil
	}
	for _, kw := range cdppKeywords {
		v, _ := f.TableHeader.Float(kw)
		if v >= p.CDPPCeilingPPM {
			return fmt.Errorf("%s is %g ppm for a KEPMAG %.1f target, expected < %g",
				kw, v, kepmag, p.CDPPCeilingPPM)
		}
	}
	return nil
}
