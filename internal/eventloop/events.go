// Package eventloop is the sole mutator of the time-series store, process
// model, and widget state, generalizing the teacher's ui.Model.Update
// into spec.md §4.7's cooperative single-threaded arbiter. It wraps
// bubbletea's own tea.Msg variants so the controller's dispatch logic
// doesn't need to import bubbletea directly.
package eventloop

import (
	"time"

	"github.com/sysmoni/sysmoni/internal/model"
)

// KeyMsg wraps a decoded key press.
type KeyMsg struct {
	Runes []rune
	Alt   bool
	Ctrl  bool
	Shift bool
	Type  string // e.g. "enter", "esc", "backspace", "up", "down", "char"
}

// MouseMsg wraps a decoded mouse event.
type MouseMsg struct {
	X, Y   int
	Action string // "scroll_up", "scroll_down", "left_down", "right_down"
}

// ResizeMsg wraps a terminal resize.
type ResizeMsg struct {
	Width, Height int
}

// PasteMsg wraps a bracketed-paste event.
type PasteMsg struct {
	Text string
}

// TerminateMsg requests clean shutdown.
type TerminateMsg struct{}

// UpdateMsg carries one collector Sample into the event loop.
type UpdateMsg model.Sample

// CleanupTickMsg fires at a fixed cadence to trigger store pruning.
type CleanupTickMsg struct {
	Now time.Time
}
