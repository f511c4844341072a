// © 2026 AstroQC Contributors
//
// SPDX-License-Identifier: MIT

// Package fits loads Target Pixel Files into the tpf model. All FITS
// parsing is delegated to astrogo/fitsio; this package only locates the
// extensions and copies the columns out.
package fits

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/astrogo/fitsio"

	"github.com/astroqc/tpfqc/internal/tpf"
)

// Patterns are the release naming conventions for Target Pixel Files.
var Patterns = []string{"*-targ.fits", "*-targ.fits.gz"}

// IsTargetPixelFile reports whether a file name follows the release
// naming convention for Target Pixel Files.
func IsTargetPixelFile(name string) bool {
	base := filepath.Base(name)
	for _, pattern := range Patterns {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

// Load opens a plain or gzip-compressed Target Pixel File and copies its
// primary header, cadence table and aperture extension into the model.
func Load(path string) (*tpf.File, error) {
	r, done, err := openSeeker(path)
	if err != nil {
		return nil, err
	}
	defer done()

	f, err := fitsio.Open(r)
	if err != nil {
		return nil, fmt.Errorf("%s: open FITS: %w", path, err)
	}
	defer f.Close()

	hdus := f.HDUs()
	if len(hdus) < 2 {
		return nil, fmt.Errorf("%s: expected primary HDU plus extensions, found %d HDUs", path, len(hdus))
	}

	out := &tpf.File{Path: path}
	out.Primary = dumpHeader(hdus[0].Header())

	table, ok := hdus[1].(*fitsio.Table)
	if !ok {
		return nil, fmt.Errorf("%s: first extension is not a binary table", path)
	}
	out.TableHeader = dumpHeader(table.Header())

	cadences, err := readCadences(table)
	if err != nil {
		return nil, fmt.Errorf("%s: read cadence table: %w", path, err)
	}
	out.Cadences = cadences

	aperture, hdr, err := readAperture(hdus)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	out.Aperture = aperture
	out.ApertureHeader = hdr

	return out, nil
}

// openSeeker returns a seekable reader over the file contents. The FITS
// reader needs random access, so gzip files are inflated in memory.
func openSeeker(path string) (io.ReadSeeker, func() error, error) {
	if !strings.HasSuffix(path, ".gz") {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, err
		}
		return f, f.Close, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: gunzip: %w", path, err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: gunzip: %w", path, err)
	}
	return bytes.NewReader(raw), func() error { return nil }, nil
}

func dumpHeader(hdr *fitsio.Header) tpf.Header {
	out := tpf.Header{}
	for _, key := range hdr.Keys() {
		switch key {
		case "COMMENT", "HISTORY", "END", "":
			continue
		}
		if card := hdr.Get(key); card != nil {
			out[key] = card.Value
		}
	}
	return out
}

// cadenceRow maps the columns the validation rules inspect. Scanning by
// tag tolerates the extra columns archive products carry.
type cadenceRow struct {
	Time       float64   `fits:"TIME"`
	TimeCorr   float32   `fits:"TIMECORR"`
	CadenceNo  int32     `fits:"CADENCENO"`
	RawCnts    []int32   `fits:"RAW_CNTS"`
	Flux       []float32 `fits:"FLUX"`
	FluxErr    []float32 `fits:"FLUX_ERR"`
	FluxBkg    []float32 `fits:"FLUX_BKG"`
	FluxBkgErr []float32 `fits:"FLUX_BKG_ERR"`
	Quality    int32     `fits:"QUALITY"`
}

func readCadences(table *fitsio.Table) (tpf.Cadences, error) {
	var out tpf.Cadences

	rows, err := table.Read(0, table.NumRows())
	if err != nil {
		return out, err
	}
	defer rows.Close()

	for rows.Next() {
		var row cadenceRow
		if err := rows.Scan(&row); err != nil {
			return out, err
		}
		out.Time = append(out.Time, row.Time)
		out.TimeCorr = append(out.TimeCorr, row.TimeCorr)
		out.CadenceNo = append(out.CadenceNo, row.CadenceNo)
		out.Quality = append(out.Quality, row.Quality)
		// The scanner may reuse its buffers between rows.
		out.RawCnts = append(out.RawCnts, append([]int32(nil), row.RawCnts...))
		out.Flux = append(out.Flux, append([]float32(nil), row.Flux...))
		out.FluxErr = append(out.FluxErr, append([]float32(nil), row.FluxErr...))
		out.FluxBkg = append(out.FluxBkg, append([]float32(nil), row.FluxBkg...))
		out.FluxBkgErr = append(out.FluxBkgErr, append([]float32(nil), row.FluxBkgErr...))
	}
	if err := rows.Err(); err != nil && err != io.EOF {
		return out, err
	}

	hdr := dumpHeader(table.Header())
	if dim, ok := hdr.Str("TDIM5"); ok {
		var w, h int
		if _, err := fmt.Sscanf(dim, "(%d,%d)", &w, &h); err == nil {
			out.FrameWidth = w
			out.FrameHeight = h
		}
	}

	return out, nil
}

func readAperture(hdus []fitsio.HDU) (tpf.Image, tpf.Header, error) {
	for _, hdu := range hdus[1:] {
		if hdu.Name() != "APERTURE" {
			continue
		}
		img, ok := hdu.(fitsio.Image)
		if !ok {
			return tpf.Image{}, nil, fmt.Errorf("APERTURE extension is not an image")
		}

		hdr := img.Header()
		axes := hdr.Axes()
		if len(axes) != 2 {
			return tpf.Image{}, nil, fmt.Errorf("APERTURE extension has %d axes, expected 2", len(axes))
		}

		var data []int32
		if err := img.Read(&data); err != nil {
			return tpf.Image{}, nil, fmt.Errorf("read APERTURE data: %w", err)
		}

		return tpf.Image{Data: data, Width: axes[0], Height: axes[1]}, dumpHeader(hdr), nil
	}
	return tpf.Image{}, nil, fmt.Errorf("missing APERTURE extension")
}
