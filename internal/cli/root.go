// © 2026 AstroQC Contributors
//
// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	tpfqc "github.com/astroqc/tpfqc"
	"github.com/astroqc/tpfqc/internal/cli/check"
	"github.com/astroqc/tpfqc/internal/cli/config"
	"github.com/astroqc/tpfqc/internal/cli/display"
	"github.com/astroqc/tpfqc/internal/cli/flags"
	"github.com/astroqc/tpfqc/internal/cli/flux"
	"github.com/astroqc/tpfqc/internal/qc"
)

// usageTemplate lists the subcommands with their substituted example
// invocations from the "examples" annotation.
var usageTemplate = display.Grey("Usage: ") +
	display.Green("{{.CommandPath}}{{if .HasAvailableLocalFlags}} [OPTIONS]{{end}}{{if .HasAvailableSubCommands}} [COMMAND]{{end}}") + "\n" +
	"{{if .HasAvailableSubCommands}}\n" + display.Gold("Commands:") +
	"{{range $cmd := .Commands}}{{if $cmd.IsAvailableCommand}}\n  " +
	display.Green("{{rpad $cmd.Name $cmd.NamePadding}}") + "   {{$cmd.Short}}" +
	"{{if (index $cmd.Annotations \"examples\")}}\n              " +
	display.Grey("{{formatExamples (index $cmd.Annotations \"examples\") $cmd}}") + "{{end}}" +
	"{{end}}{{end}}\n{{end}}" +
	"{{if .HasAvailableLocalFlags}}\n" + display.Gold("Options:\n") + "{{.LocalFlags.FlagUsages}}{{end}}" +
	display.Links() + "\n"

// formatExamples substitutes the binary and command names into an
// "examples" annotation.
func formatExamples(examples string, cmd *cobra.Command) string {
	replaced := strings.ReplaceAll(examples, "{{.Name}}", cmd.Root().Name())
	return strings.ReplaceAll(replaced, "{{.Command}}", cmd.Name())
}

var rootCmd = &cobra.Command{
	Use:     display.Tool,
	Short:   display.Tool + " CLI",
	Long:    display.Tool + ": " + display.Green("Quality control for Kepler/K2 Target Pixel Files") + display.Links(),
	Version: tpfqc.Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Redirect slog output to discard to prevent it from appearing on screen
		devNull, _ := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
		slog.SetDefault(slog.New(slog.NewTextHandler(devNull, nil)))
	},
}

func init() {
	hp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		display.PrintBanner()
		hp(cmd, args)
	})

	rootCmd.SetHelpCommand(&cobra.Command{
		Hidden: true,
	})

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	cobra.AddTemplateFunc("formatExamples", formatExamples)
	rootCmd.SetUsageTemplate(usageTemplate)

	rootCmd.AddCommand(check.CheckCmd())
	rootCmd.AddCommand(flags.FlagsCmd())
	rootCmd.AddCommand(flux.FluxCmd())

	rootCmd.PersistentFlags().BoolP("help", "h", false, "Show help for "+rootCmd.Use)
	for _, cmd := range rootCmd.Commands() {
		cmd.PersistentFlags().BoolP("help", "h", false, fmt.Sprintf("Show help for %s command", cmd.Name()))
	}

	rootCmd.PersistentFlags().BoolP("version", "v", false, "Show "+rootCmd.Use+" version information")
	rootCmd.SetVersionTemplate(fmt.Sprintf("tpfqc version: %s\ngo version: %s\n", tpfqc.Version, runtime.Version()))
}

func Start() {
	err := config.Config.EnsureConfigDirectory()
	if err != nil {
		display.Error(err.Error())
		os.Exit(1)
	}

	err = config.Config.EnsureDataDirectory()
	if err != nil {
		display.Error(err.Error())
		os.Exit(1)
	}

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, qc.ErrIssuesFound) {
			// The report is already on stdout; the verdict is the exit code.
			os.Exit(1)
		}
		display.Error(err.Error())
		os.Exit(1)
	}
}
