// © 2026 AstroQC Contributors
//
// SPDX-License-Identifier: MIT

package qc

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Params are the tunable thresholds of the rule set. Zero values mean
// "use the default"; DefaultParams carries the values the Kepler/K2
// release process has used since campaign 3.
type Params struct {
	// WCSToleranceArcsec is the maximum separation between the WCS
	// solution at the frame center and RA_OBJ/DEC_OBJ.
	WCSToleranceArcsec float64 `yaml:"wcs-tolerance-arcsec"`

	// BrightKepMag is the magnitude below which a target counts as
	// bright for the CDPP ceiling.
	BrightKepMag float64 `yaml:"bright-kepmag"`

	// CDPPCeilingPPM is the highest acceptable CDPP estimate for a
	// bright target.
	CDPPCeilingPPM float64 `yaml:"cdpp-ceiling-ppm"`

	// ThrusterExemptCampaigns lists campaigns whose products carry no
	// thruster firing flags. Campaign 9 was split into 91 and 92 and
	// both halves shipped as Type 1 products without the flags.
	ThrusterExemptCampaigns []int `yaml:"thruster-exempt-campaigns"`

	// Workers bounds the number of files checked concurrently.
	Workers int `yaml:"workers"`
}

// DefaultParams returns the release-process thresholds.
func DefaultParams() Params {
	return Params{
		WCSToleranceArcsec:      10,
		BrightKepMag:            15,
		CDPPCeilingPPM:          10000,
		ThrusterExemptCampaigns: []int{91, 92},
		Workers:                 runtime.NumCPU(),
	}
}

// LoadParams overlays a YAML thresholds file onto the defaults. An
// empty path returns the defaults unchanged.
func LoadParams(path string) (Params, error) {
	params := DefaultParams()
	if path == "" {
		return params, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return params, fmt.Errorf("read thresholds file: %w", err)
	}
	if err := yaml.Unmarshal(data, &params); err != nil {
		return params, fmt.Errorf("parse thresholds file %s: %w", path, err)
	}

	if params.Workers < 1 {
		params.Workers = 1
	}
	return params, nil
}

// ThrusterExempt reports whether a campaign ships without thruster
// firing flags.
func (p Params) ThrusterExempt(campaign int) bool {
	for _, c := range p.ThrusterExemptCampaigns {
		if c == campaign {
			return true
		}
	}
	return false
}
