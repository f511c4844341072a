// © 2026 AstroQC Contributors
//
// SPDX-License-Identifier: MIT

// Package wcs solves the gnomonic (TAN) celestial projection found in
// Target Pixel File aperture extensions. It covers exactly what the
// validation rules need: keyword sanity and pixel-to-sky conversion.
package wcs

import (
	"fmt"
	"math"

	"github.com/astroqc/tpfqc/internal/tpf"
)

const degToRad = math.Pi / 180

// Transform is a parsed TAN projection: reference pixel, reference sky
// position and the linear pixel-to-intermediate transform in degrees.
type Transform struct {
	crpix1, crpix2 float64
	crval1, crval2 float64
	cd             [2][2]float64
}

// Parse reads the WCS keywords of an aperture extension header. It
// accepts a CD matrix, a PC matrix scaled by CDELT, or plain CDELT
// scales, in that order of preference.
func Parse(hdr tpf.Header) (*Transform, error) {
	ctype1, ok := hdr.Str("CTYPE1")
	if !ok {
		return nil, fmt.Errorf("missing CTYPE1")
	}
	ctype2, ok := hdr.Str("CTYPE2")
	if !ok {
		return nil, fmt.Errorf("missing CTYPE2")
	}
	if ctype1 != "RA---TAN" || ctype2 != "DEC--TAN" {
		return nil, fmt.Errorf("unsupported projection %q/%q", ctype1, ctype2)
	}

	t := &Transform{}
	for _, kw := range []struct {
		name string
		dst  *float64
	}{
		{"CRPIX1", &t.crpix1},
		{"CRPIX2", &t.crpix2},
		{"CRVAL1", &t.crval1},
		{"CRVAL2", &t.crval2},
	} {
		v, ok := hdr.Float(kw.name)
		if !ok {
			return nil, fmt.Errorf("missing or non-numeric %s", kw.name)
		}
		*kw.dst = v
	}
	if t.crval2 < -90 || t.crval2 > 90 {
		return nil, fmt.Errorf("CRVAL2 %g outside [-90, 90]", t.crval2)
	}

	cd, err := linearTransform(hdr)
	if err != nil {
		return nil, err
	}
	t.cd = cd
	if t.cd[0][0]*t.cd[1][1]-t.cd[0][1]*t.cd[1][0] == 0 {
		return nil, fmt.Errorf("singular CD matrix")
	}

	return t, nil
}

func linearTransform(hdr tpf.Header) ([2][2]float64, error) {
	var cd [2][2]float64

	if hdr.Has("CD1_1") {
		names := [2][2]string{{"CD1_1", "CD1_2"}, {"CD2_1", "CD2_2"}}
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				v, ok := hdr.Float(names[i][j])
				if !ok {
					return cd, fmt.Errorf("missing or non-numeric %s", names[i][j])
				}
				cd[i][j] = v
			}
		}
		return cd, nil
	}

	cdelt1, ok1 := hdr.Float("CDELT1")
	cdelt2, ok2 := hdr.Float("CDELT2")
	if !ok1 || !ok2 {
		return cd, fmt.Errorf("missing CD matrix and CDELT scales")
	}

	// PC defaults to identity when absent.
	pc := [2][2]float64{{1, 0}, {0, 1}}
	if hdr.Has("PC1_1") {
		names := [2][2]string{{"PC1_1", "PC1_2"}, {"PC2_1", "PC2_2"}}
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				v, ok := hdr.Float(names[i][j])
				if !ok {
					return cd, fmt.Errorf("missing or non-numeric %s", names[i][j])
				}
				pc[i][j] = v
			}
		}
	}

	cd[0][0] = cdelt1 * pc[0][0]
	cd[0][1] = cdelt1 * pc[0][1]
	cd[1][0] = cdelt2 * pc[1][0]
	cd[1][1] = cdelt2 * pc[1][1]
	return cd, nil
}

// PixelToWorld converts a 1-based pixel position to (ra, dec) in
// degrees, ra normalized to [0, 360).
func (t *Transform) PixelToWorld(x, y float64) (ra, dec float64) {
	u := x - t.crpix1
	v := y - t.crpix2

	// Intermediate world coordinates in radians.
	xi := (t.cd[0][0]*u + t.cd[0][1]*v) * degToRad
	eta := (t.cd[1][0]*u + t.cd[1][1]*v) * degToRad

	ra0 := t.crval1 * degToRad
	dec0 := t.crval2 * degToRad

	den := math.Cos(dec0) - eta*math.Sin(dec0)
	dra := math.Atan2(xi, den)
	ra = ra0 + dra
	dec = math.Atan((math.Sin(dec0) + eta*math.Cos(dec0)) / math.Hypot(xi, den))

	ra /= degToRad
	dec /= degToRad
	ra = math.Mod(ra, 360)
	if ra < 0 {
		ra += 360
	}
	return ra, dec
}

// Separation is the angular distance in degrees between two sky
// positions given in degrees.
func Separation(ra1, dec1, ra2, dec2 float64) float64 {
	phi1 := dec1 * degToRad
	phi2 := dec2 * degToRad
	dphi := (dec2 - dec1) * degToRad
	dlam := (ra2 - ra1) * degToRad

	sinDphi := math.Sin(dphi / 2)
	sinDlam := math.Sin(dlam / 2)
	a := sinDphi*sinDphi + math.Cos(phi1)*math.Cos(phi2)*sinDlam*sinDlam
	return 2 * math.Asin(math.Min(1, math.Sqrt(a))) / degToRad
}
