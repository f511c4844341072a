// © 2026 AstroQC Contributors
//
// SPDX-License-Identifier: MIT

package tpf

// QUALITY column bits as documented in the Kepler Archive Manual. Bit 9
// (512) is reserved and never set in archive products.
const (
	FlagAttitudeTweak          = 1
	FlagSafeMode               = 2
	FlagCoarsePoint            = 4
	FlagEarthPoint             = 8
	FlagZeroCrossing           = 16
	FlagDesaturationEvent      = 32
	FlagArgabrightening        = 64
	FlagCosmicRay              = 128
	FlagManualExclude          = 256
	FlagSensitivityDropout     = 1024
	FlagImpulsiveOutlier       = 2048
	FlagArgabrighteningOnCCD   = 4096
	FlagCosmicRayInAperture    = 8192
	FlagDetectorAnomaly        = 16384
	FlagNoFinePoint            = 32768
	FlagNoData                 = 65536
	FlagRollingBand            = 131072
	FlagRollingBandInAperture  = 262144
	FlagPossibleThrusterFiring = 524288
	FlagThrusterFiring         = 1048576
)

// QualityFlag pairs one QUALITY bit with its archive-manual label.
type QualityFlag struct {
	Bit   int
	Value int32
	Label string
}

// QualityFlags lists the documented bits in ascending value order.
var QualityFlags = []QualityFlag{
	{0, FlagAttitudeTweak, "Attitude tweak"},
	{1, FlagSafeMode, "Safe mode"},
	{2, FlagCoarsePoint, "Coarse point"},
	{3, FlagEarthPoint, "Earth point"},
	{4, FlagZeroCrossing, "Zero crossing"},
	{5, FlagDesaturationEvent, "Desaturation event"},
	{6, FlagArgabrightening, "Argabrightening"},
	{7, FlagCosmicRay, "Cosmic ray"},
	{8, FlagManualExclude, "Manual exclude"},
	{10, FlagSensitivityDropout, "Sudden sensitivity dropout"},
	{11, FlagImpulsiveOutlier, "Impulsive outlier"},
	{12, FlagArgabrighteningOnCCD, "Argabrightening"},
	{13, FlagCosmicRayInAperture, "Cosmic ray"},
	{14, FlagDetectorAnomaly, "Detector anomaly"},
	{15, FlagNoFinePoint, "No fine point"},
	{16, FlagNoData, "No data"},
	{17, FlagRollingBand, "Rolling band"},
	{18, FlagRollingBandInAperture, "Rolling band"},
	{19, FlagPossibleThrusterFiring, "Possible thruster firing"},
	{20, FlagThrusterFiring, "Thruster firing"},
}

// DecodeQuality converts one QUALITY value into the labels of the raised
// flags, in bit order. A perfect cadence returns an empty slice.
func DecodeQuality(quality int32) []string {
	var labels []string
	for _, flag := range QualityFlags {
		if quality&flag.Value != 0 {
			labels = append(labels, flag.Label)
		}
	}
	return labels
}

// FlagCount is the per-flag tally over a QUALITY column.
type FlagCount struct {
	Bit   int    `json:"Bit" yaml:"Bit"`
	Value int32  `json:"Value" yaml:"Value"`
	Label string `json:"Flag" yaml:"Flag"`
	Count int    `json:"Count" yaml:"Count"`
}

// QualitySummary tallies how often each documented flag is raised.
type QualitySummary struct {
	TotalCadences int         `json:"TotalCadences" yaml:"TotalCadences"`
	Flags         []FlagCount `json:"Flags" yaml:"Flags"`
}

// SummarizeQuality counts raised flags across a QUALITY column.
func SummarizeQuality(qualities []int32) *QualitySummary {
	summary := &QualitySummary{TotalCadences: len(qualities)}
	for _, flag := range QualityFlags {
		count := 0
		for _, q := range qualities {
			if q&flag.Value != 0 {
				count++
			}
		}
		summary.Flags = append(summary.Flags, FlagCount{
			Bit:   flag.Bit,
			Value: flag.Value,
			Label: flag.Label,
			Count: count,
		})
	}
	return summary
}
