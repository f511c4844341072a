// © 2026 AstroQC Contributors
//
// SPDX-License-Identifier: MIT

// Package fluxplot renders the per-cadence flux time series of a Target
// Pixel File into a multi-panel diagnostic image.
package fluxplot

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/astroqc/tpfqc/internal/tpf"
)

// Outlier marks a cadence whose summed flux exceeds the 6-sigma band.
type Outlier struct {
	Cadence int32
	Flux    float64
}

// Series holds the quality-masked per-cadence sums of one file.
type Series struct {
	Cadence []int32
	Raw     []float64
	Bkg     []float64
	Flux    []float64

	Mean     float64
	Sigma    float64
	Outliers []Outlier
}

// Build sums each pixel frame (NaN-aware) for cadences whose QUALITY
// does not exceed maxQuality.
func Build(f *tpf.File, maxQuality int32) *Series {
	s := &Series{}
	c := f.Cadences
	for i := 0; i < c.Len(); i++ {
		if i >= len(c.Quality) || c.Quality[i] > maxQuality {
			continue
		}
		s.Cadence = append(s.Cadence, c.CadenceNo[i])
		s.Raw = append(s.Raw, tpf.NaNSumInt32(c.RawCnts[i]))
		s.Bkg = append(s.Bkg, tpf.NaNSum(c.FluxBkg[i]))
		s.Flux = append(s.Flux, tpf.NaNSum(c.Flux[i]))
	}

	s.Mean, s.Sigma = meanStd(s.Flux)
	for i, v := range s.Flux {
		if v > s.Mean+6*s.Sigma {
			s.Outliers = append(s.Outliers, Outlier{Cadence: s.Cadence[i], Flux: v})
		}
	}
	return s
}

func meanStd(values []float64) (mean, std float64) {
	if len(values) == 0 {
		return 0, 0
	}
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	for _, v := range values {
		std += (v - mean) * (v - mean)
	}
	std = math.Sqrt(std / float64(len(values)))
	return mean, std
}

// Render writes the four-panel scatter (RAW_CNTS, FLUX_BKG, FLUX, and
// the FLUX zoom at +/- 3 sigma) to a PNG.
func Render(s *Series, title, outPath string) error {
	if len(s.Cadence) == 0 {
		return fmt.Errorf("no cadences left after quality masking")
	}

	xmin := float64(s.Cadence[0]) - 10
	xmax := float64(s.Cadence[len(s.Cadence)-1]) + 10

	panel := func(ylabel string, values []float64) (*plot.Plot, error) {
		p := plot.New()
		p.Y.Label.Text = ylabel
		p.X.Min = xmin
		p.X.Max = xmax

		scatter, err := plotter.NewScatter(xys(s.Cadence, values))
		if err != nil {
			return nil, err
		}
		scatter.GlyphStyle.Radius = vg.Points(1)
		scatter.GlyphStyle.Color = color.RGBA{B: 255, A: 255}
		p.Add(scatter)
		return p, nil
	}

	rawPanel, err := panel("RAW_CNTS", s.Raw)
	if err != nil {
		return err
	}
	rawPanel.Title.Text = title

	bkgPanel, err := panel("FLUX_BKG", s.Bkg)
	if err != nil {
		return err
	}

	fluxPanel, err := panel("FLUX", s.Flux)
	if err != nil {
		return err
	}
	if err := labelOutliers(fluxPanel, s.Outliers); err != nil {
		return err
	}

	zoomPanel, err := panel("FLUX", s.Flux)
	if err != nil {
		return err
	}
	zoomPanel.Y.Min = s.Mean - 3*s.Sigma
	zoomPanel.Y.Max = s.Mean + 3*s.Sigma
	zoomPanel.X.Label.Text = "CADENCENO"

	plots := [][]*plot.Plot{{rawPanel}, {bkgPanel}, {fluxPanel}, {zoomPanel}}

	img := vgimg.NewWith(vgimg.UseWH(8*vg.Inch, 8*vg.Inch), vgimg.UseDPI(200))
	canvases := plot.Align(plots, draw.Tiles{
		Rows: 4,
		Cols: 1,
		PadY: vg.Millimeter,
	}, draw.New(img))
	for i := range plots {
		for j := range plots[i] {
			plots[i][j].Draw(canvases[i][j])
		}
	}

	w, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer w.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	return nil
}

func labelOutliers(p *plot.Plot, outliers []Outlier) error {
	if len(outliers) == 0 {
		return nil
	}
	lbl := plotter.XYLabels{}
	for _, o := range outliers {
		lbl.XYs = append(lbl.XYs, plotter.XY{X: float64(o.Cadence), Y: o.Flux})
		lbl.Labels = append(lbl.Labels, fmt.Sprintf("%d", o.Cadence))
	}
	labels, err := plotter.NewLabels(lbl)
	if err != nil {
		return err
	}
	p.Add(labels)
	return nil
}

func xys(cadence []int32, values []float64) plotter.XYs {
	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i].X = float64(cadence[i])
		pts[i].Y = v
	}
	return pts
}
