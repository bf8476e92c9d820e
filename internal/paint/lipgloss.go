package paint

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
	selStyle    = lipgloss.NewStyle().Reverse(true)
	disStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	gaugeFill  = "█"
	gaugeEmpty = "░"

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(0, 1).
			MarginRight(1)

	sparkBlocks = []rune("▁▂▃▄▅▆▇█")
)

// LipglossPainter is the concrete Painter, generalizing the teacher's
// inline card/gaugeBar/renderTable/sparkline/truncate helpers into one
// implementation of the Painter contract.
type LipglossPainter struct{}

func (LipglossPainter) Draw(vm ViewModel, area Area) string {
	switch {
	case vm.Graph != nil:
		return drawGraph(*vm.Graph, area)
	case vm.Table != nil:
		return drawTable(*vm.Table, area)
	case vm.Gauge != nil:
		return drawGauge(*vm.Gauge, area)
	default:
		return ""
	}
}

func drawGauge(vm GaugeViewModel, area Area) string {
	width := area.Width
	if width <= 0 {
		width = 28
	}
	pct := 0.0
	if vm.Max > 0 {
		pct = float64(vm.Fill) / float64(vm.Max) * 100
	}
	return card(vm.Label, gaugeBar(pct, width))
}

func gaugeBar(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int((pct / 100) * float64(width))
	if filled > width {
		filled = width
	}
	return fmt.Sprintf("[%s%s] %5.1f%%",
		strings.Repeat(gaugeFill, filled),
		strings.Repeat(gaugeEmpty, width-filled),
		pct)
}

func drawGraph(vm GraphViewModel, area Area) string {
	values := make([]float64, 0, len(vm.Points))
	for _, p := range vm.Points {
		if p.Value != nil {
			values = append(values, *p.Value)
		}
	}
	body := sparkline(values, area.Width)
	yLabel := ""
	if len(vm.YLabels) > 0 {
		yLabel = vm.Style.Render(strings.Join(vm.YLabels, " "))
	}
	lines := []string{yLabel, body}
	if !vm.Hidden && len(vm.XLabels) > 0 {
		lines = append(lines, subtleStyle.Render(strings.Join(vm.XLabels, " ")))
	}
	return strings.Join(lines, "\n")
}

func sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}
	if width > 0 && len(values) > width {
		values = values[len(values)-width:]
	}
	var b strings.Builder
	for _, v := range values {
		level := int((v / 100) * float64(len(sparkBlocks)-1))
		if level < 0 {
			level = 0
		}
		if level >= len(sparkBlocks) {
			level = len(sparkBlocks) - 1
		}
		b.WriteRune(sparkBlocks[level])
	}
	return b.String()
}

func drawTable(vm TableViewModel, area Area) string {
	var b strings.Builder
	fmt.Fprintln(&b, titleStyle.Render(formatRow(vm.Header, vm.ColWidths)))
	for i, row := range vm.Rows {
		disabled := i < len(vm.Disabled) && vm.Disabled[i]
		writeRow(&b, row, vm.ColWidths, i, vm.Selected, disabled)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		w := 12
		if i < len(widths) {
			w = widths[i]
		}
		parts[i] = padOrTruncate(cell, w)
	}
	return strings.Join(parts, " ")
}

func writeRow(b *strings.Builder, cells []string, widths []int, rowIdx, selected int, disabled bool) {
	line := formatRow(cells, widths)
	switch {
	case rowIdx == selected:
		line = selStyle.Render(line)
	case disabled:
		line = disStyle.Render(line)
	}
	fmt.Fprintln(b, line)
}

// padOrTruncate pads s with spaces to width w, or truncates (ending with
// an ellipsis) if it's wider than w — using go-runewidth so multi-byte
// process names/command lines truncate at the correct display-cell
// boundary instead of a raw byte or rune count.
func padOrTruncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	dw := runewidth.StringWidth(s)
	if dw <= w {
		return s + strings.Repeat(" ", w-dw)
	}
	return runewidth.Truncate(s, w, "…")
}

func card(title, body string) string {
	return cardStyle.Render(labelStyle.Render(title) + "\n" + body)
}
