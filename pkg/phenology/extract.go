package phenology

import "math"

// ScanDirection selects how the normalized curve is scanned for a
// threshold crossing.
type ScanDirection int

const (
	// ScanForward takes the first day, scanning from January onward,
	// whose value reaches the threshold.
	ScanForward ScanDirection = iota

	// ScanBackward takes the last day whose value reaches the threshold.
	ScanBackward
)

// Transition names a threshold crossing to locate on the normalized
// seasonal curve.
type Transition struct {
	Name      string
	Threshold float64
	Scan      ScanDirection
}

// DefaultTransitions returns the standard four-phase transition set used
// for NDVI-style seasonal curves.
func DefaultTransitions() []Transition {
	return []Transition{
		{Name: "greenup", Threshold: 0.25, Scan: ScanForward},
		{Name: "maturity", Threshold: 0.85, Scan: ScanForward},
		{Name: "senescence", Threshold: 0.85, Scan: ScanBackward},
		{Name: "dormancy", Threshold: 0.25, Scan: ScanBackward},
	}
}

// Crossing is the result of one transition scan. Defined is false when
// the curve never reaches the threshold within the year; that is a valid
// outcome, not an error.
type Crossing struct {
	DOY     int
	Defined bool
}

// ExtractTransitions scans one normalized year for each named transition
// and reports the crossing day-of-year (1-366).
//
// Crossing policy: the comparison is non-strict (value >= threshold
// counts as crossed) and the first qualifying day in scan order is taken.
// Noise suppression is the smoother's job, so no sustained-crossing rule
// is applied here.
func ExtractTransitions(year Series, transitions []Transition) map[string]Crossing {
	out := make(map[string]Crossing, len(transitions))

	for _, tr := range transitions {
		crossing := Crossing{}
		switch tr.Scan {
		case ScanBackward:
			for i := year.Len() - 1; i >= 0; i-- {
				v := year.Values[i]
				if !math.IsNaN(v) && v >= tr.Threshold {
					crossing = Crossing{DOY: year.Day(i).YearDay(), Defined: true}
					break
				}
			}
		default:
			for i := 0; i < year.Len(); i++ {
				v := year.Values[i]
				if !math.IsNaN(v) && v >= tr.Threshold {
					crossing = Crossing{DOY: year.Day(i).YearDay(), Defined: true}
					break
				}
			}
		}
		out[tr.Name] = crossing
	}
	return out
}
