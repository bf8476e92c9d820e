package scale

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysmoni/sysmoni/internal/series"
)

// Scenario S5.
func TestScale_ScenarioS5(t *testing.T) {
	now := time.Time{}.Add(5 * time.Second)
	points := []series.Point{{Time: now.Add(-5 * time.Second), Value: f64p(390e6)}}

	yUpper, labels := Scale(-5*time.Second, now, ScaleConfig{
		Scaling: Linear,
		Unit:    UnitByte,
	}, points)

	require.Equal(t, 585e6, yUpper)
	assert.Equal(t, []string{"   0B", "195.0", "390.0", "585.0"}, labels)
}

func f64p(v float64) *float64 { return &v }

func TestScale_NoPointsUsesFloor(t *testing.T) {
	now := time.Now()
	yUpper, _ := Scale(-10*time.Second, now, ScaleConfig{Scaling: Linear, Unit: UnitByte, FloorValue: 1000})
	assert.Equal(t, 1500.0, yUpper)
}

func TestScale_WindowExcludesOlderPoints(t *testing.T) {
	now := time.Time{}.Add(time.Minute)
	points := []series.Point{
		{Time: now.Add(-50 * time.Second), Value: f64p(9000)}, // outside a 10s window
		{Time: now.Add(-5 * time.Second), Value: f64p(500)},
	}
	yUpper, _ := Scale(-10*time.Second, now, ScaleConfig{Scaling: Linear, Unit: UnitByte}, points)
	assert.Equal(t, 750.0, yUpper) // 500 * 1.5, not 9000 * 1.5
}

// Property 6: increasing the observed maximum never decreases yUpper.
func TestScale_Monotonic(t *testing.T) {
	now := time.Time{}.Add(time.Minute)
	maxima := []float64{100, 900, 999, 1000, 50_000, 999_999, 1_000_000, 2_500_000, 999_999_999, 1_000_000_000}
	var prev float64
	for i, m := range maxima {
		points := []series.Point{{Time: now.Add(-1 * time.Second), Value: f64p(m)}}
		yUpper, _ := Scale(-5*time.Second, now, ScaleConfig{Scaling: Linear, Unit: UnitByte}, points)
		if i > 0 {
			assert.GreaterOrEqual(t, yUpper, prev, "yUpper must be monotonic non-decreasing for max=%v", m)
		}
		prev = yUpper
	}
}

func TestScale_BinaryPrefixDivisorDiffersFromDecimal(t *testing.T) {
	now := time.Time{}.Add(time.Minute)
	points := []series.Point{{Time: now.Add(-1 * time.Second), Value: f64p(10_000_000)}}

	_, decLabels := Scale(-5*time.Second, now, ScaleConfig{Scaling: Linear, Unit: UnitByte, BinaryPrefix: false}, points)
	_, binLabels := Scale(-5*time.Second, now, ScaleConfig{Scaling: Linear, Unit: UnitByte, BinaryPrefix: true}, points)

	assert.NotEqual(t, decLabels, binLabels)
}

// A second series (e.g. network tx) peaking higher than the first (rx)
// must still set the axis bound, not get clipped.
func TestScale_MultiSeriesUsesMaxAcrossAll(t *testing.T) {
	now := time.Time{}.Add(time.Minute)
	rx := []series.Point{{Time: now.Add(-1 * time.Second), Value: f64p(100)}}
	tx := []series.Point{{Time: now.Add(-1 * time.Second), Value: f64p(10_000_000)}}

	yUpper, _ := Scale(-5*time.Second, now, ScaleConfig{Scaling: Linear, Unit: UnitByte}, rx, tx)

	bothUpper, _ := Scale(-5*time.Second, now, ScaleConfig{Scaling: Linear, Unit: UnitByte}, tx)
	assert.Equal(t, bothUpper, yUpper, "rx+tx bound must match the bound driven by tx alone when tx is the max")
}

func TestScale_LogModePicksTierByMagnitude(t *testing.T) {
	now := time.Time{}.Add(time.Minute)
	points := []series.Point{{Time: now.Add(-1 * time.Second), Value: f64p(5_000_000)}}
	yUpper, labels := Scale(-5*time.Second, now, ScaleConfig{Scaling: Log, Unit: UnitByte}, points)
	assert.Equal(t, gigaF, yUpper)
	assert.Equal(t, []string{" 0B", "1KB", "1MB", "1GB"}, labels)
}
