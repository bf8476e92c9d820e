package eventloop

import (
	"time"

	"github.com/sysmoni/sysmoni/internal/widget"
)

// KeyResult reports what a dispatched key asked the caller to do beyond
// mutating widget state, since quitting needs to reach the bubbletea
// program loop itself.
type KeyResult struct {
	Quit bool
}

// DispatchKey mutates st/c in response to one decoded key press, grounded
// on original_source/src/event.rs's handle_key_event_or_break: navigation
// keys mutate widget state directly, the plain chars 'f', '+'/'=' and '-'
// carry the freeze and zoom effects spec.md §4.7 calls out, and Ctrl-r
// carries reset.
func DispatchKey(k KeyMsg, st *widget.State, c *Controller, now time.Time, zoomDelta, retention time.Duration) KeyResult {
	if k.Ctrl {
		switch k.Type {
		case "r":
			c.Reset()
			return KeyResult{}
		}
		return KeyResult{}
	}

	switch k.Type {
	case "char":
		if len(k.Runes) == 1 {
			switch k.Runes[0] {
			case 'q':
				c.Terminate()
				return KeyResult{Quit: true}
			case 'f':
				c.ToggleFreeze()
			case '+', '=':
				st.Zoom(-zoomDelta, now, retention) // zoom in narrows the window
			case '-':
				st.Zoom(zoomDelta, now, retention) // zoom out widens the window
			}
		}
	case "up":
		st.Selected--
		if st.Selected < 0 {
			st.Selected = 0
		}
	case "down":
		st.Selected++
	case "esc":
		st.Search.Raw = ""
		st.Search.Compiled = nil
		st.Search.Invalid = false
	}
	return KeyResult{}
}

// DispatchMouse mutates st in response to a decoded mouse event, grounded
// on original_source/src/event.rs's handle_mouse_event: scroll moves the
// selection, clicks are ignored here when disableClick is set (spec.md
// §6's "disable click" CLI flag).
func DispatchMouse(m MouseMsg, st *widget.State, disableClick bool) {
	switch m.Action {
	case "scroll_up":
		st.Selected--
		if st.Selected < 0 {
			st.Selected = 0
		}
	case "scroll_down":
		st.Selected++
	case "left_down":
		if disableClick {
			return
		}
		// Row selection from a click is a painter-geometry concern
		// (translating m.Y into a row index against the last-drawn
		// table), so it's left to the UI layer which knows the
		// currently rendered row offsets.
	}
}
