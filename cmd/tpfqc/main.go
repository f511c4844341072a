// © 2026 AstroQC Contributors
//
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/astroqc/tpfqc/internal/cli"
	"github.com/astroqc/tpfqc/internal/logging"
)

func main() {
	logging.SetupInitialLogging()
	cli.Start()
}
