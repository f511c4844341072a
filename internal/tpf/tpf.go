// © 2026 AstroQC Contributors
//
// SPDX-License-Identifier: MIT

// Package tpf holds the in-memory model of a Kepler/K2 Target Pixel File.
// The model is deliberately decoupled from FITS I/O so that validation
// rules stay pure and unit-testable.
package tpf

import (
	"math"
	"strconv"
	"strings"
)

// File is one Target Pixel File: the primary header, the cadence binary
// table (header plus columns) and the aperture mask extension.
type File struct {
	Path string

	Primary        Header
	TableHeader    Header
	ApertureHeader Header

	Cadences Cadences
	Aperture Image
}

// Header is a FITS header reduced to keyword lookup. Values keep the
// types the FITS library decoded them to (string, int, float64, bool).
type Header map[string]any

// Has reports whether the keyword is present.
func (h Header) Has(key string) bool {
	_, ok := h[key]
	return ok
}

// Str returns the keyword as a trimmed string.
func (h Header) Str(key string) (string, bool) {
	v, ok := h[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(s), true
}

// Int returns the keyword as an int, converting from the integer and
// float types FITS cards decode to.
func (h Header) Int(key string) (int, bool) {
	v, ok := h[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float32:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}

// Float returns the keyword as a float64. Numeric strings convert too:
// magnitudes occasionally arrive as quoted values in archive products.
func (h Header) Float(key string) (float64, bool) {
	v, ok := h[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Cadences holds the time-series columns of the cadence table. The
// per-cadence pixel frames are stored row-major, one flat slice per
// cadence, with the frame dimensions alongside.
type Cadences struct {
	Time      []float64
	TimeCorr  []float32
	CadenceNo []int32
	Quality   []int32

	Flux       [][]float32
	FluxErr    [][]float32
	FluxBkg    [][]float32
	FluxBkgErr [][]float32
	RawCnts    [][]int32

	FrameWidth  int
	FrameHeight int
}

// Len is the number of cadences, taken from the TIME column.
func (c Cadences) Len() int {
	return len(c.Time)
}

// Image is the aperture mask extension.
type Image struct {
	Data   []int32
	Width  int
	Height int
}

// Sum adds up all mask pixels.
func (im Image) Sum() int64 {
	var total int64
	for _, v := range im.Data {
		total += int64(v)
	}
	return total
}

// NaNSum adds the finite values of a pixel frame, skipping NaNs the way
// the calibration pipeline leaves them in FLUX columns.
func NaNSum(frame []float32) float64 {
	var total float64
	for _, v := range frame {
		f := float64(v)
		if math.IsNaN(f) {
			continue
		}
		total += f
	}
	return total
}

// NaNSumInt32 is NaNSum for integer frames, which carry no NaNs but keep
// the call sites uniform.
func NaNSumInt32(frame []int32) float64 {
	var total float64
	for _, v := range frame {
		total += float64(v)
	}
	return total
}
