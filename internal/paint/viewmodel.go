// Package paint implements the Painter contract from spec.md §6: a
// concrete lipgloss-backed renderer generalized from the teacher's
// inline card/gaugeBar/renderTable/sparkline/truncate helpers in
// internal/ui/ui.go.
package paint

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sysmoni/sysmoni/internal/series"
)

// Area is the character-cell region a ViewModel is drawn into.
type Area struct {
	X, Y, Width, Height int
}

// ScrollBarState describes a table's scroll indicator.
type ScrollBarState struct {
	Total, Visible, Offset int
}

// GraphViewModel is what a time-graph widget draws from, per spec.md §6's
// painter contract: points, y-axis scale/labels, and x-axis labels that
// may be hidden by the autohide timer.
type GraphViewModel struct {
	Points  []series.Point
	YUpper  float64
	YLabels []string
	XLabels []string
	Hidden  bool
	Style   lipgloss.Style
}

// TableViewModel is what a process/disk/etc. table widget draws from.
type TableViewModel struct {
	Header    []string
	Rows      [][]string
	Disabled  []bool // parallel to Rows; true for tree rows that don't match the active query
	ColWidths []int
	Selected  int
	ScrollBar ScrollBarState
}

// GaugeViewModel is what a basic-mode gauge bar draws from: Fill out of
// Max, per spec.md §6.
type GaugeViewModel struct {
	Fill, Max int
	Label     string
}

// ViewModel is the sum type Painter.Draw accepts; exactly one field is
// non-nil per spec.md §9's "no inheritance, capability sets" design note
// expressed as a closed set of variants rather than a class hierarchy.
type ViewModel struct {
	Graph *GraphViewModel
	Table *TableViewModel
	Gauge *GaugeViewModel
}

// Painter is the external collaborator spec.md §6 names: draw(view_model,
// area). sysmoni keeps a concrete implementation in-tree (lipgloss.go)
// since bubbletea TUIs render their own painter rather than delegate
// across a process boundary.
type Painter interface {
	Draw(vm ViewModel, area Area) string
}
