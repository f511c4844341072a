// © 2026 AstroQC Contributors
//
// SPDX-License-Identifier: MIT

package qc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/sourcegraph/conc/pool"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/astroqc/tpfqc/internal/fits"
	"github.com/astroqc/tpfqc/internal/tpf"
)

// Runner validates a single file or every Target Pixel File in a
// directory. Files are checked concurrently on a bounded pool; results
// come back in deterministic scan order regardless of scheduling.
type Runner struct {
	Params Params

	// Load ingests one file. Defaults to fits.Load; tests substitute
	// synthetic models here.
	Load func(path string) (*tpf.File, error)

	// Progress receives the progress bar when non-nil. The check
	// command passes the terminal's stderr for human runs only.
	Progress io.Writer
}

// NewRunner returns a Runner over the real FITS loader.
func NewRunner(params Params) *Runner {
	return &Runner{
		Params: params,
		Load:   fits.Load,
	}
}

// Run checks path, which may be one Target Pixel File or a directory
// scanned non-recursively for release-named files.
func (r *Runner) Run(ctx context.Context, path string) (*Report, error) {
	files, err := r.collect(path)
	if err != nil {
		return nil, err
	}

	report := &Report{Path: path, FilesChecked: len(files)}
	if len(files) == 0 {
		slog.Warn("No Target Pixel Files found", "path", path)
		return report, nil
	}

	var bar *mpb.Bar
	var progress *mpb.Progress
	if r.Progress != nil {
		progress = mpb.New(mpb.WithOutput(r.Progress), mpb.WithWidth(64))
		bar = progress.AddBar(int64(len(files)),
			mpb.PrependDecorators(
				decor.Name("Checking Target Pixel Files "),
				decor.CountersNoUnit("%d / %d"),
			),
			mpb.AppendDecorators(decor.Percentage()),
		)
	}

	maxWorkers := r.Params.Workers
	if maxWorkers < 1 {
		maxWorkers = runtime.NumCPU()
	}

	results := make([][]Issue, len(files))
	workers := pool.New().WithMaxGoroutines(maxWorkers)
	for i, file := range files {
		i, file := i, file
		workers.Go(func() {
			if ctx.Err() == nil {
				results[i] = r.checkOne(file)
			}
			if bar != nil {
				bar.Increment()
			}
		})
	}
	workers.Wait()
	if progress != nil {
		progress.Wait()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, issues := range results {
		report.Issues = append(report.Issues, issues...)
	}
	slog.Info("Batch checked", "path", path, "files", report.FilesChecked, "issues", len(report.Issues))
	return report, nil
}

func (r *Runner) checkOne(path string) []Issue {
	load := r.Load
	if load == nil {
		load = fits.Load
	}

	f, err := load(path)
	if err != nil {
		slog.Debug("Load failed", "file", path, "error", err)
		return []Issue{{File: path, Check: CheckOpen, Detail: err.Error()}}
	}
	return CheckFile(f, r.Params)
}

// collect resolves the argument into the list of files to check.
func (r *Runner) collect(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", path, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if fits.IsTargetPixelFile(entry.Name()) {
			files = append(files, filepath.Join(path, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
