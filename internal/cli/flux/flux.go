// © 2026 AstroQC Contributors
//
// SPDX-License-Identifier: MIT

// Flux command: renders the RAW_CNTS, FLUX_BKG and FLUX time series of
// one Target Pixel File to a diagnostic PNG.
package flux

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/astroqc/tpfqc/internal/cli/config"
	"github.com/astroqc/tpfqc/internal/cli/display"
	"github.com/astroqc/tpfqc/internal/fits"
	"github.com/astroqc/tpfqc/internal/fluxplot"
	"github.com/astroqc/tpfqc/internal/logging"
)

const defaultOutput = "tpfqc-flux.png"

func FluxCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "flux PATH",
		Short: "Plot the FLUX, FLUX_BKG, and RAW_CNTS time series of a Target Pixel File",
		Args:  cobra.ExactArgs(1),
		PreRun: func(command *cobra.Command, args []string) {
			logging.SetupClientLogging(fmt.Sprintf("%s/log/client.log", config.Config.DataDirectory()))
		},
		RunE: func(command *cobra.Command, args []string) error {
			output, _ := command.Flags().GetString("output")
			maxQuality, _ := command.Flags().GetInt("max-quality")

			return runFlux(args[0], output, int32(maxQuality))
		},
		Annotations: map[string]string{
			"examples": "{{.Name}} {{.Command}} ktwo200083104-c111_lpd-targ.fits --output target.png",
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	command.Flags().String("output", defaultOutput, "Name of the PNG file to write")
	command.Flags().Int("max-quality", 0, "Only plot cadences with QUALITY at or below this value")

	return command
}

func runFlux(path, output string, maxQuality int32) error {
	f, err := fits.Load(path)
	if err != nil {
		return err
	}

	series := fluxplot.Build(f, maxQuality)
	if err := fluxplot.Render(series, path, output); err != nil {
		return err
	}

	display.Success(fmt.Sprintf("Wrote %s", output))
	return nil
}
