// © 2026 AstroQC Contributors
//
// SPDX-License-Identifier: MIT

package renderer

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/astroqc/tpfqc/internal/cli/display"
	"github.com/astroqc/tpfqc/internal/qc"
	"github.com/astroqc/tpfqc/internal/tpf"
)

// RenderReport lays out the batch issues as one table row per issue,
// followed by the verdict line.
func RenderReport(report *qc.Report) (string, error) {
	var buf strings.Builder

	if len(report.Issues) > 0 {
		table := tablewriter.NewTable(&buf,
			tablewriter.WithHeaderAutoFormat(tw.Off),
			tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
				Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.On}},
			})))

		table.Header("File", display.Red("Check"), "Detail")

		data := make([][]any, len(report.Issues))
		for i, issue := range report.Issues {
			data[i] = []any{issue.File, display.Red(issue.Check), issue.Detail}
		}
		if err := table.Bulk(data); err != nil {
			return "", fmt.Errorf("error formatting report: %v", err)
		}
		if err := table.Render(); err != nil {
			return "", fmt.Errorf("error rendering report: %v", err)
		}
	}

	buf.WriteString(RenderVerdict(report))
	return buf.String(), nil
}

// RenderVerdict is the closing line of a batch run.
func RenderVerdict(report *qc.Report) string {
	line := fmt.Sprintf("Found %d issues (%d files checked).\n", len(report.Issues), report.FilesChecked)
	if report.Clean() {
		return display.Green(line)
	}
	return display.Red(line)
}

// RenderQualitySummary lays out the per-flag cadence counts in bit
// order, followed by the cadence total.
func RenderQualitySummary(summary *tpf.QualitySummary) (string, error) {
	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithHeaderAutoFormat(tw.Off),
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.Off}},
		})))

	table.Header(display.LightBlue("Bit"), display.LightBlue("Value"), "Flag", "Count")

	data := make([][]any, len(summary.Flags))
	for i, flag := range summary.Flags {
		count := fmt.Sprintf("%d", flag.Count)
		if flag.Count > 0 {
			count = display.Gold(count)
		}
		data[i] = []any{
			fmt.Sprintf("%d", flag.Bit),
			fmt.Sprintf("%d", flag.Value),
			flag.Label,
			count,
		}
	}
	if err := table.Bulk(data); err != nil {
		return "", fmt.Errorf("error formatting quality summary: %v", err)
	}
	if err := table.Render(); err != nil {
		return "", fmt.Errorf("error rendering quality summary: %v", err)
	}

	buf.WriteString(fmt.Sprintf("(Total number of cadences: %d)\n", summary.TotalCadences))
	return buf.String(), nil
}
