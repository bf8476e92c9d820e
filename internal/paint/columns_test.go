package paint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ip(v int) *int         { return &v }
func fp(v float64) *float64 { return &v }

func TestColumnWidths_ZeroTotal(t *testing.T) {
	assert.Nil(t, ColumnWidths([]ColumnSpec{{Hard: ip(1)}}, 0))
}

func TestColumnWidths_TooNarrowForBounds(t *testing.T) {
	cols := []ColumnSpec{
		{Hard: ip(1)},
		{SoftMin: ip(1), SoftMax: fp(0.125), SoftDesired: ip(10)},
		{SoftMin: ip(2), SoftMax: fp(0.5), SoftDesired: ip(10)},
	}
	assert.Empty(t, ColumnWidths(cols, 2))
}

// TestColumnWidths_NonZero mirrors original_source's test_non_zero_width:
// get_column_widths(16, [1,_,_], [_,1,2], [_,0.125,0.5], [_,10,10], true)
// == [2, 2, 7].
func TestColumnWidths_NonZero(t *testing.T) {
	cols := []ColumnSpec{
		{Hard: ip(1)},
		{SoftMin: ip(1), SoftMax: fp(0.125), SoftDesired: ip(10)},
		{SoftMin: ip(2), SoftMax: fp(0.5), SoftDesired: ip(10)},
	}
	assert.Equal(t, []int{2, 2, 7}, ColumnWidths(cols, 16))
}

func TestColumnWidths_NeverExceedsAvailableWidth(t *testing.T) {
	cols := []ColumnSpec{
		{SoftMin: ip(4), SoftMax: fp(0.3), SoftDesired: ip(20)},
		{SoftMin: ip(4), SoftMax: fp(0.3), SoftDesired: ip(20)},
		{SoftMin: ip(4), SoftMax: fp(0.3), SoftDesired: ip(20)},
	}
	widths := ColumnWidths(cols, 50)
	sum := 0
	for _, w := range widths {
		sum += w
	}
	assert.LessOrEqual(t, sum, 48) // total-2, the two border columns
	assert.Len(t, widths, 3)
}
