// © 2026 AstroQC Contributors
//
// SPDX-License-Identifier: MIT

package display

import (
	"fmt"
	"strings"

	tpfqc "github.com/astroqc/tpfqc"
)

func PrintBanner() {
	fmt.Println(LightBlue(strings.Replace(Banner, "version", tpfqc.Version, 1)))
}

func Success(msg string) {
	fmt.Print(Green(fmt.Sprintf("%s\n", msg)))
}

func Warning(msg string) {
	fmt.Print(Gold(fmt.Sprintf("Warning: %s\n", msg)))
}

func Error(msg string) {
	fmt.Print(Red(fmt.Sprintf("Error: %s\n", msg)))
}

func Links() string {
	return "\n" + Gold("Code: ") + "https://github.com/astroqc/tpfqc" +
		"\n" + Gold("Docs: ") + DocRoot +
		"\n" + Gold("Bugs: ") + "https://github.com/astroqc/tpfqc/issues"
}
