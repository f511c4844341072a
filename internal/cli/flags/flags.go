// © 2026 AstroQC Contributors
//
// SPDX-License-Identifier: MIT

// Flags command: decodes the QUALITY bitmask of one Target Pixel File
// into a per-flag cadence tally.
package flags

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/astroqc/tpfqc/internal/cli/config"
	"github.com/astroqc/tpfqc/internal/cli/display"
	"github.com/astroqc/tpfqc/internal/cli/printer"
	"github.com/astroqc/tpfqc/internal/fits"
	"github.com/astroqc/tpfqc/internal/logging"
	"github.com/astroqc/tpfqc/internal/tpf"
)

type FlagsOptions struct {
	OutputConsumer printer.Consumer
	OutputSchema   string
}

func FlagsCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "flags PATH",
		Short: "Show a summary of the QUALITY flags in a Target Pixel File",
		Args:  cobra.ExactArgs(1),
		PreRun: func(command *cobra.Command, args []string) {
			logging.SetupClientLogging(fmt.Sprintf("%s/log/client.log", config.Config.DataDirectory()))
		},
		RunE: func(command *cobra.Command, args []string) error {
			opts := &FlagsOptions{}
			consumer, _ := command.Flags().GetString("output-consumer")
			opts.OutputConsumer = printer.Consumer(consumer)
			opts.OutputSchema, _ = command.Flags().GetString("output-schema")

			return runFlags(args[0], opts)
		},
		Annotations: map[string]string{
			"examples": "{{.Name}} {{.Command}} ktwo200083104-c111_lpd-targ.fits",
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	command.Flags().String("output-consumer", string(printer.ConsumerHuman), "Consumer of the command output (human | machine)")
	command.Flags().String("output-schema", "json", "The schema to use for the machine output (json | yaml)")

	return command
}

func runFlags(path string, opts *FlagsOptions) error {
	if opts.OutputConsumer != printer.ConsumerHuman && opts.OutputConsumer != printer.ConsumerMachine {
		return fmt.Errorf("output-consumer must be 'human' or 'machine'")
	}
	if opts.OutputConsumer == printer.ConsumerMachine {
		if opts.OutputSchema != "json" && opts.OutputSchema != "yaml" {
			return fmt.Errorf("output-schema must be 'json' or 'yaml' for machine consumer")
		}
	}

	f, err := fits.Load(path)
	if err != nil {
		return err
	}
	summary := tpf.SummarizeQuality(f.Cadences.Quality)

	if opts.OutputConsumer == printer.ConsumerMachine {
		p := printer.NewMachineReadablePrinter[tpf.QualitySummary](os.Stdout, opts.OutputSchema)
		return p.Print(summary)
	}

	display.PrintBanner()
	p := printer.NewHumanReadablePrinter[tpf.QualitySummary](os.Stdout)
	return p.Print(summary)
}
