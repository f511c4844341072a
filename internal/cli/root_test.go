// © 2026 AstroQC Contributors
//
// SPDX-License-Identifier: MIT

package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestFormatExamples(t *testing.T) {
	parent := &cobra.Command{Use: "tpfqc"}
	child := &cobra.Command{Use: "check PATH"}
	parent.AddCommand(child)

	out := formatExamples("{{.Name}} {{.Command}} /data/release/c14", child)
	assert.Equal(t, "tpfqc check /data/release/c14", out)
}

func TestUsageShowsCommandExamples(t *testing.T) {
	usage := rootCmd.UsageString()

	assert.Contains(t, usage, "tpfqc check /data/release/c14")
	assert.Contains(t, usage, "tpfqc flags ktwo200083104-c111_lpd-targ.fits")
	assert.Contains(t, usage, "tpfqc flux ktwo200083104-c111_lpd-targ.fits --output target.png")
}
