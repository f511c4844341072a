// © 2026 AstroQC Contributors
//
// SPDX-License-Identifier: MIT

package qc

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astroqc/tpfqc/internal/tpf"
)

func writeEmpty(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, nil, 0644))
	return path
}

func TestRunner_Directory(t *testing.T) {
	dir := t.TempDir()
	good := writeEmpty(t, dir, "ktwo200000001-c141_lpd-targ.fits")
	broken := writeEmpty(t, dir, "ktwo200000002-c141_lpd-targ.fits.gz")
	writeEmpty(t, dir, "readme.txt")
	writeEmpty(t, dir, "ktwo200000003-c141_llc.fits")

	runner := &Runner{
		Params: DefaultParams(),
		Load: func(path string) (*tpf.File, error) {
			if path == broken {
				return nil, fmt.Errorf("%s: not a FITS file", path)
			}
			f := validFile()
			f.Path = path
			return f, nil
		},
	}

	report, err := runner.Run(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 2, report.FilesChecked, "only release-named files are scanned")
	require.Len(t, report.Issues, 1)
	assert.Equal(t, broken, report.Issues[0].File)
	assert.Equal(t, CheckOpen, report.Issues[0].Check)
	assert.False(t, report.Clean())
	assert.True(t, report.Failed(broken))
	assert.False(t, report.Failed(good))
}

func TestRunner_DeterministicOrder(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 8; i++ {
		writeEmpty(t, dir, fmt.Sprintf("ktwo20000000%d-c141_lpd-targ.fits", i))
	}

	runner := &Runner{
		Params: DefaultParams(),
		Load: func(path string) (*tpf.File, error) {
			f := validFile()
			f.Path = path
			// Break one rule in every file.
			f.Aperture.Data = make([]int32, 9)
			return f, nil
		},
	}
	runner.Params.Workers = 4

	report, err := runner.Run(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, report.Issues, 8)
	for i := 1; i < len(report.Issues); i++ {
		assert.Less(t, report.Issues[i-1].File, report.Issues[i].File)
	}
}

func TestRunner_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeEmpty(t, dir, "ktwo200000001-c141_lpd-targ.fits")

	runner := &Runner{
		Params: DefaultParams(),
		Load: func(p string) (*tpf.File, error) {
			f := validFile()
			f.Path = p
			return f, nil
		},
	}

	report, err := runner.Run(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, report.FilesChecked)
	assert.True(t, report.Clean())
}

func TestRunner_EmptyDirectory(t *testing.T) {
	dir := t.TempDir()

	runner := &Runner{Params: DefaultParams()}
	report, err := runner.Run(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 0, report.FilesChecked)
	assert.True(t, report.Clean())
}

func TestRunner_MissingPath(t *testing.T) {
	runner := &Runner{Params: DefaultParams()}
	_, err := runner.Run(context.Background(), "/does/not/exist")
	assert.Error(t, err)
}

func TestRunner_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	writeEmpty(t, dir, "ktwo200000001-c141_lpd-targ.fits")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := &Runner{
		Params: DefaultParams(),
		Load: func(p string) (*tpf.File, error) {
			t.Error("load should not run after cancellation")
			return nil, fmt.Errorf("canceled")
		},
	}
	_, err := runner.Run(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReport_ByFile(t *testing.T) {
	report := &Report{
		Issues: []Issue{
			{File: "a.fits", Check: "cdpp"},
			{File: "a.fits", Check: "positive-flux"},
			{File: "b.fits", Check: "open"},
		},
	}

	files, grouped := report.ByFile()
	assert.Equal(t, []string{"a.fits", "b.fits"}, files)
	assert.Len(t, grouped["a.fits"], 2)
	assert.Len(t, grouped["b.fits"], 1)
}
