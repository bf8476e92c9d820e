// Package scale computes y-axis upper bounds and tick labels for graph
// widgets, grounded on bottom's adjust_network_data_point algorithm:
// restrict points to a time window, bump the observed maximum by 1.5x to
// pick a display tier, then lay out four (linear) or tier-count (log)
// labels against that tier's unit.
package scale

import (
	"fmt"
	"sort"
	"time"

	"github.com/sysmoni/sysmoni/internal/series"
)

// AxisScaling selects linear or logarithmic tier selection.
type AxisScaling int

const (
	Linear AxisScaling = iota
	Log
)

// Unit selects the axis unit character.
type Unit int

const (
	UnitByte Unit = iota
	UnitBit
)

func (u Unit) char() string {
	if u == UnitBit {
		return "b"
	}
	return "B"
}

// ScaleConfig bundles the knobs the axis scaler needs.
type ScaleConfig struct {
	Scaling      AxisScaling
	Unit         Unit
	BinaryPrefix bool
	FloorValue   float64 // used when no points fall in the window
}

const (
	kiloF = 1000.0
	megaF = kiloF * 1000.0
	gigaF = megaF * 1000.0
	teraF = gigaF * 1000.0

	kibiF = 1024.0
	mebiF = kibiF * 1024.0
	gibiF = mebiF * 1024.0
	tebiF = gibiF * 1024.0
)

// Scale restricts each of series to the [tStart, 0] window measured
// backwards from now, picks the largest value across their union, and
// returns the y-axis upper bound and tick labels per spec.md §4.5. A
// multi-series graph (e.g. network rx/tx sharing one axis) passes every
// series it draws so the bound covers whichever one peaks.
func Scale(tStart time.Duration, now time.Time, cfg ScaleConfig, seriesList ...[]series.Point) (float64, []string) {
	windowStart := now.Add(tStart)

	var max float64
	found := false
	for _, points := range seriesList {
		// Points are timeline-ordered, so binary search for the window start.
		lo := sort.Search(len(points), func(i int) bool {
			return !points[i].Time.Before(windowStart)
		})
		for _, p := range points[lo:] {
			if p.Value == nil {
				continue
			}
			if !found || *p.Value > max {
				max = *p.Value
				found = true
			}
		}
	}

	if !found || max == 0 {
		max = cfg.FloorValue
	}

	if cfg.Scaling == Log {
		return scaleLog(max, cfg)
	}
	return scaleLinear(max, cfg)
}

func scaleLinear(maxEntry float64, cfg ScaleConfig) (float64, []string) {
	kLimit, mLimit, gLimit, tLimit := kiloF, megaF, gigaF, teraF
	if cfg.BinaryPrefix {
		kLimit, mLimit, gLimit, tLimit = kibiF, mebiF, gibiF, tebiF
	}

	bumped := maxEntry * 1.5
	var scaled float64
	switch {
	case bumped < kLimit:
		scaled = maxEntry
	case bumped < mLimit:
		scaled = maxEntry / kLimit
	case bumped < gLimit:
		scaled = maxEntry / mLimit
	case bumped < tLimit:
		scaled = maxEntry / gLimit
	default:
		scaled = maxEntry / tLimit
	}

	// The zero label carries only the unit suffix, not the tier prefix
	// (scenario S5: "0B" at the M tier, not "0MB") — the scaled numbers
	// already carry the magnitude, so the tier prefix would be redundant.
	unitChar := cfg.Unit.char()
	labels := []string{
		pad5(fmt.Sprintf("0%s", unitChar)),
		pad5(fmt.Sprintf("%.1f", scaled*0.5)),
		pad5(fmt.Sprintf("%.1f", scaled)),
		pad5(fmt.Sprintf("%.1f", scaled*1.5)),
	}
	return bumped, labels
}

func scaleLog(maxEntry float64, cfg ScaleConfig) (float64, []string) {
	mLimit, gLimit, tLimit, pLimit := megaF, gigaF, teraF, teraF*kiloF
	if cfg.BinaryPrefix {
		mLimit, gLimit, tLimit, pLimit = mebiF, gibiF, tebiF, tebiF*kibiF
	}
	unitChar := cfg.Unit.char()
	zero := logLabel(cfg.BinaryPrefix, "", unitChar, true)

	switch {
	case maxEntry < mLimit:
		return mLimit, []string{zero, logLabel(cfg.BinaryPrefix, "K", unitChar, false), logLabel(cfg.BinaryPrefix, "M", unitChar, false)}
	case maxEntry < gLimit:
		return gLimit, []string{zero, logLabel(cfg.BinaryPrefix, "K", unitChar, false), logLabel(cfg.BinaryPrefix, "M", unitChar, false), logLabel(cfg.BinaryPrefix, "G", unitChar, false)}
	case maxEntry < tLimit:
		return tLimit, []string{zero, logLabel(cfg.BinaryPrefix, "K", unitChar, false), logLabel(cfg.BinaryPrefix, "M", unitChar, false), logLabel(cfg.BinaryPrefix, "G", unitChar, false), logLabel(cfg.BinaryPrefix, "T", unitChar, false)}
	default:
		return pLimit, []string{zero, logLabel(cfg.BinaryPrefix, "K", unitChar, false), logLabel(cfg.BinaryPrefix, "M", unitChar, false), logLabel(cfg.BinaryPrefix, "G", unitChar, false), logLabel(cfg.BinaryPrefix, "T", unitChar, false), logLabel(cfg.BinaryPrefix, "P", unitChar, false)}
	}
}

func logLabel(binary bool, tier, unitChar string, zero bool) string {
	if zero {
		if binary {
			return "  0" + unitChar
		}
		return " 0" + unitChar
	}
	prefix := tier
	if binary {
		prefix += "i"
	}
	return "1" + prefix + unitChar
}

func pad5(s string) string {
	for len(s) < 5 {
		s = " " + s
	}
	return s
}
