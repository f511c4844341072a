// © 2026 AstroQC Contributors
//
// SPDX-License-Identifier: MIT

// Package qc implements the quality-assurance gate: a fixed rule set
// applied by read-only inspection to each Target Pixel File, with
// pass/fail aggregation per file and across a batch directory.
package qc

import "github.com/astroqc/tpfqc/internal/tpf"

// Check is one independent validation rule. Run returns nil on pass and
// an error describing the violation otherwise. Checks never mutate the
// file model.
type Check interface {
	Name() string
	Describe() string
	Run(f *tpf.File, p Params) error
}

// Registry returns the rule set in its fixed execution order. The order
// is part of the report contract: issues are emitted in registry order
// within each file.
func Registry() []Check {
	return []Check{
		tableShapes{},
		apertureNonEmpty{},
		apertureShape{},
		thrusterFlags{},
		qualityZero{},
		wcsKeywords{},
		wcsCoordinates{},
		positiveFlux{},
		cdpp{},
	}
}

// CheckFile applies the full rule set to one loaded file. One issue is
// recorded per failed rule; a failing rule never stops the others.
func CheckFile(f *tpf.File, p Params) []Issue {
	var issues []Issue
	for _, check := range Registry() {
		if err := check.Run(f, p); err != nil {
			issues = append(issues, Issue{
				File:   f.Path,
				Check:  check.Name(),
				Detail: err.Error(),
			})
		}
	}
	return issues
}
