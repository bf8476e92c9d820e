// Package widget holds per-widget display state: the visible time
// window, autohide timer, selection/scroll cursors, sort/collapse state,
// and search state, generalized from the teacher's inline ui.Model
// fields (sortKey, filter, inputMode, inputBuf, perCoreHist).
package widget

import (
	"time"

	"github.com/sysmoni/sysmoni/internal/query"
)

// ScrollDirection is the direction of the most recent selection move,
// grounded on bottom's app::ScrollDirection.
type ScrollDirection int

const (
	ScrollDown ScrollDirection = iota
	ScrollUp
)

// autohideWindow is how long x-axis labels stay visible after a zoom,
// per spec.md §4.6 "Autohide semantics".
const autohideWindow = 5 * time.Second

// SearchState generalizes the teacher's inputMode/inputBuf fields into a
// structured process-query search box.
type SearchState struct {
	Cursor   int
	Raw      string
	Compiled *query.Query
	Invalid  bool
	Message  string
}

// State is one widget's full display state (spec.md §4.6).
type State struct {
	Window        time.Duration
	AutohideTimer *time.Time
	Selected      int
	Scroll        int
	SortColumn    int
	SortDesc      bool
	Collapsed     map[int32]bool
	ForceUpdate   bool
	Search        SearchState
}

// NewState returns a State with the given default window and an empty
// collapse set.
func NewState(defaultWindow time.Duration) *State {
	return &State{
		Window:    defaultWindow,
		Collapsed: make(map[int32]bool),
	}
}

// Zoom adjusts Window by delta, bounded to [1s, retention], and arms the
// autohide timer.
func (s *State) Zoom(delta time.Duration, now time.Time, retention time.Duration) {
	s.Window += delta
	if s.Window < time.Second {
		s.Window = time.Second
	}
	if s.Window > retention {
		s.Window = retention
	}
	t := now
	s.AutohideTimer = &t
}

// Autohide reports whether x-axis labels should currently be shown,
// per spec.md §4.6: visible while now−timer < 5s, then cleared.
func (s *State) Autohide(now time.Time) bool {
	if s.AutohideTimer == nil {
		return false
	}
	if now.Sub(*s.AutohideTimer) < autohideWindow {
		return true
	}
	s.AutohideTimer = nil
	return false
}

// ToggleCollapsed flips the collapse state of pid in the tree view.
func (s *State) ToggleCollapsed(pid int32) {
	if s.Collapsed[pid] {
		delete(s.Collapsed, pid)
		return
	}
	s.Collapsed[pid] = true
}

// StartPosition implements spec.md §4.6's scroll invariant exactly,
// grounded on bottom's get_start_position/get_search_start_position: bar
// moves only as far as needed to keep selected within
// [bar, bar+numRows], resetting to 0 on a forced redraw.
func StartPosition(numRows int, dir ScrollDirection, bar, selected int, force bool) int {
	if force {
		bar = 0
	}
	switch dir {
	case ScrollDown:
		switch {
		case selected < bar+numRows:
			return bar
		case selected >= numRows:
			return selected - numRows
		default:
			return 0
		}
	default: // ScrollUp
		switch {
		case selected <= bar:
			return selected
		case selected >= bar+numRows:
			return selected - numRows
		default:
			return bar
		}
	}
}
