// © 2026 AstroQC Contributors
//
// SPDX-License-Identifier: MIT

package display

const (
	Tool   = "tpfqc"
	Banner = `
  _              __
 | |_   _ __    / _|  __ _   ___
 | __| | '_ \  | |_  / _` + "`" + ` | / __|
 | |_  | |_) | |  _|| (_| || (__
  \__| | .__/  |_|   \__, | \___|
       |_|              |_|      vversion
`
	DocRoot = "https://docs.astroqc.io/tpfqc"
)
