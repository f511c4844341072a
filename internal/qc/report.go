// © 2026 AstroQC Contributors
//
// SPDX-License-Identifier: MIT

package qc

import "errors"

// ErrIssuesFound is the gate verdict for a batch with at least one
// issue. The CLI maps it to exit status 1 after the report is printed.
var ErrIssuesFound = errors.New("quality issues found")

// Issue is one rule violation in one file. CheckOpen marks files the
// loader could not ingest at all.
type Issue struct {
	File   string `json:"File" yaml:"File"`
	Check  string `json:"Check" yaml:"Check"`
	Detail string `json:"Detail" yaml:"Detail"`
}

// CheckOpen is the pseudo-rule recorded when a file fails to load.
const CheckOpen = "open"

// Report aggregates a batch run. Issues are ordered by file scan order,
// then by registry order within each file.
type Report struct {
	Path         string  `json:"Path" yaml:"Path"`
	FilesChecked int     `json:"FilesChecked" yaml:"FilesChecked"`
	Issues       []Issue `json:"Issues" yaml:"Issues"`
}

// Clean reports whether the batch passed the gate.
func (r *Report) Clean() bool {
	return len(r.Issues) == 0
}

// Failed reports whether a specific file has at least one issue.
func (r *Report) Failed(file string) bool {
	for _, issue := range r.Issues {
		if issue.File == file {
			return true
		}
	}
	return false
}

// ByFile groups the issues per file, preserving scan order.
func (r *Report) ByFile() (files []string, grouped map[string][]Issue) {
	grouped = make(map[string][]Issue)
	for _, issue := range r.Issues {
		if _, seen := grouped[issue.File]; !seen {
			files = append(files, issue.File)
		}
		grouped[issue.File] = append(grouped[issue.File], issue)
	}
	return files, grouped
}
