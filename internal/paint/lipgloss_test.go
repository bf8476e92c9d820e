package paint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGaugeBar_ClampsPercent(t *testing.T) {
	assert.Contains(t, gaugeBar(150, 10), "100.0%")
	assert.Contains(t, gaugeBar(-10, 10), "  0.0%")
}

func TestSparkline_EmptyReturnsEmpty(t *testing.T) {
	assert.Equal(t, "", sparkline(nil, 10))
}

func TestSparkline_TruncatesToWidth(t *testing.T) {
	vals := make([]float64, 30)
	for i := range vals {
		vals[i] = 50
	}
	out := sparkline(vals, 10)
	assert.Equal(t, 10, len([]rune(out)))
}

func TestPadOrTruncate_PadsShortStrings(t *testing.T) {
	assert.Equal(t, "ab   ", padOrTruncate("ab", 5))
}

func TestPadOrTruncate_TruncatesLongStrings(t *testing.T) {
	out := padOrTruncate("a very long process name", 8)
	assert.LessOrEqual(t, len([]rune(out)), 8)
	assert.True(t, strings.HasSuffix(out, "…"))
}

func TestDrawTable_MarksSelectedAndDisabledRows(t *testing.T) {
	p := LipglossPainter{}
	out := p.Draw(ViewModel{Table: &TableViewModel{
		Header:    []string{"pid", "name"},
		Rows:      [][]string{{"1", "init"}, {"2", "sshd"}},
		Disabled:  []bool{false, true},
		ColWidths: []int{5, 10},
		Selected:  0,
	}}, Area{Width: 40, Height: 10})
	assert.NotEmpty(t, out)
}
