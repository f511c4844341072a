// © 2026 AstroQC Contributors
//
// SPDX-License-Identifier: MIT

package tpfqc

var Version = "0.0.0"

const DocRoot = "https://docs.astroqc.io/tpfqc"
