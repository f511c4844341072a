// © 2026 AstroQC Contributors
//
// SPDX-License-Identifier: MIT

// Check command: the release gate. Runs the full rule set over one
// Target Pixel File or a batch directory and exits non-zero on issues.
package check

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/astroqc/tpfqc/internal/cli/config"
	"github.com/astroqc/tpfqc/internal/cli/display"
	"github.com/astroqc/tpfqc/internal/cli/printer"
	"github.com/astroqc/tpfqc/internal/logging"
	"github.com/astroqc/tpfqc/internal/qc"
	"github.com/astroqc/tpfqc/internal/util"
)

type CheckOptions struct {
	Config         string
	Workers        int
	NoProgress     bool
	OutputConsumer printer.Consumer
	OutputSchema   string
}

func CheckCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "check PATH",
		Short: "Check Target Pixel Files for quality issues",
		Long: "Check a Target Pixel File, or a directory of such files, against the\n" +
			"release rule set. Exits with status 1 when any issue is found.",
		Args: func(command *cobra.Command, args []string) error {
			if list, _ := command.Flags().GetBool("list"); list {
				return nil
			}
			return cobra.ExactArgs(1)(command, args)
		},
		PreRun: func(command *cobra.Command, args []string) {
			logging.SetupClientLogging(fmt.Sprintf("%s/log/client.log", config.Config.DataDirectory()))
		},
		RunE: func(command *cobra.Command, args []string) error {
			if list, _ := command.Flags().GetBool("list"); list {
				return listRules(os.Stdout)
			}

			opts := &CheckOptions{}
			configPath, _ := command.Flags().GetString("config")
			opts.Config = util.ExpandHomePath(configPath)
			opts.Workers, _ = command.Flags().GetInt("workers")
			opts.NoProgress, _ = command.Flags().GetBool("no-progress")
			consumer, _ := command.Flags().GetString("output-consumer")
			opts.OutputConsumer = printer.Consumer(consumer)
			opts.OutputSchema, _ = command.Flags().GetString("output-schema")

			return runCheck(command, args[0], opts)
		},
		Annotations: map[string]string{
			"examples": "{{.Name}} {{.Command}} /data/release/c14  |  {{.Name}} {{.Command}} ktwo200083104-c111_lpd-targ.fits --output-consumer machine",
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	command.Flags().Bool("list", false, "List the rules of the release rule set and exit")
	command.Flags().String("config", "", "Path to a YAML thresholds file")
	command.Flags().Int("workers", 0, "Number of files to check concurrently (0 = one per CPU)")
	command.Flags().Bool("no-progress", false, "Disable the progress bar")
	command.Flags().String("output-consumer", string(printer.ConsumerHuman), "Consumer of the command output (human | machine)")
	command.Flags().String("output-schema", "json", "The schema to use for the machine output (json | yaml)")

	return command
}

func listRules(w io.Writer) error {
	for _, check := range qc.Registry() {
		if _, err := fmt.Fprintf(w, "%s  %s\n", display.Goldf("%-18s", check.Name()), check.Describe()); err != nil {
			return err
		}
	}
	return nil
}

func validateCheckOptions(opts *CheckOptions) error {
	if opts.Workers < 0 {
		return fmt.Errorf("workers must be 0 (one per CPU) or a positive number")
	}
	if opts.OutputConsumer != printer.ConsumerHuman && opts.OutputConsumer != printer.ConsumerMachine {
		return fmt.Errorf("output-consumer must be 'human' or 'machine'")
	}
	if opts.OutputConsumer == printer.ConsumerMachine {
		if opts.OutputSchema != "json" && opts.OutputSchema != "yaml" {
			return fmt.Errorf("output-schema must be 'json' or 'yaml' for machine consumer")
		}
	}

	return nil
}

func runCheck(command *cobra.Command, path string, opts *CheckOptions) error {
	if err := validateCheckOptions(opts); err != nil {
		return err
	}

	thresholds := opts.Config
	if thresholds == "" {
		thresholds = config.Config.ThresholdsFile()
	}
	params, err := qc.LoadParams(thresholds)
	if err != nil {
		return err
	}
	if opts.Workers > 0 {
		params.Workers = opts.Workers
	}

	runner := qc.NewRunner(params)

	if opts.OutputConsumer == printer.ConsumerHuman {
		display.PrintBanner()
		if !opts.NoProgress {
			runner.Progress = os.Stderr
		}
	}

	report, err := runner.Run(command.Context(), path)
	if err != nil {
		return err
	}

	if opts.OutputConsumer == printer.ConsumerHuman && report.FilesChecked == 0 {
		display.Warning(fmt.Sprintf("No Target Pixel Files found in %s", path))
	}

	if opts.OutputConsumer == printer.ConsumerMachine {
		p := printer.NewMachineReadablePrinter[qc.Report](os.Stdout, opts.OutputSchema)
		if err := p.Print(report); err != nil {
			return err
		}
	} else {
		p := printer.NewHumanReadablePrinter[qc.Report](os.Stdout)
		if err := p.Print(report); err != nil {
			return err
		}
	}

	if !report.Clean() {
		return qc.ErrIssuesFound
	}
	return nil
}
