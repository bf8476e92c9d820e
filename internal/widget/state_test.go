package widget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAutohide_VisibleWithinWindowThenClears(t *testing.T) {
	s := NewState(time.Minute)
	base := time.Now()
	s.Zoom(time.Second, base, time.Hour)

	assert.True(t, s.Autohide(base.Add(1*time.Second)))
	assert.False(t, s.Autohide(base.Add(6*time.Second)))
	assert.Nil(t, s.AutohideTimer)
}

func TestZoom_BoundedByRetention(t *testing.T) {
	s := NewState(time.Minute)
	s.Zoom(time.Hour, time.Now(), 90*time.Second)
	assert.Equal(t, 90*time.Second, s.Window)

	s.Window = 2 * time.Second
	s.Zoom(-time.Hour, time.Now(), 90*time.Second)
	assert.Equal(t, time.Second, s.Window)
}

func TestStartPosition_DownKeepsSelectionInWindow(t *testing.T) {
	assert.Equal(t, 0, StartPosition(10, ScrollDown, 0, 5, false))
	assert.Equal(t, 5, StartPosition(10, ScrollDown, 0, 15, false))
	assert.Equal(t, 5, StartPosition(10, ScrollDown, 5, 10, false))
}

func TestStartPosition_UpPullsBarDownToSelection(t *testing.T) {
	assert.Equal(t, 3, StartPosition(10, ScrollUp, 20, 3, false))
	assert.Equal(t, 20, StartPosition(10, ScrollUp, 20, 25, false))
	assert.Equal(t, 20, StartPosition(10, ScrollUp, 20, 22, false))
}

func TestStartPosition_ForceResetsBar(t *testing.T) {
	assert.Equal(t, 0, StartPosition(10, ScrollDown, 40, 5, true))
}

func TestToggleCollapsed(t *testing.T) {
	s := NewState(time.Minute)
	s.ToggleCollapsed(42)
	assert.True(t, s.Collapsed[42])
	s.ToggleCollapsed(42)
	assert.False(t, s.Collapsed[42])
}

func TestPerCoreHistory_CapsAtSixty(t *testing.T) {
	h := NewPerCoreHistory()
	for i := 0; i < 100; i++ {
		h.Push(0, float64(i))
	}
	vals := h.Values(0)
	assert.Len(t, vals, 60)
	assert.Equal(t, 40.0, vals[0])
	assert.Equal(t, 99.0, vals[59])
}
