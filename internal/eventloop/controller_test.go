package eventloop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysmoni/sysmoni/internal/collector"
	"github.com/sysmoni/sysmoni/internal/model"
	"github.com/sysmoni/sysmoni/internal/widget"
)

func mkSample(t time.Time, cpuAvg float64) UpdateMsg {
	avg := cpuAvg
	return UpdateMsg(model.Sample{
		Instant: t,
		CPU:     &model.CPUStats{Average: &avg},
		Processes: []model.ProcessRecord{
			{PID: 1, Name: "init"},
		},
	})
}

func TestController_HandleUpdate_IngestsLiveAlways(t *testing.T) {
	c := NewController(nil)
	base := time.Now()
	c.HandleUpdate(mkSample(base, 10))
	c.HandleUpdate(mkSample(base.Add(time.Second), 20))

	assert.Equal(t, 2, c.Store.Len())
	assert.True(t, c.Latest.Instant.Equal(base.Add(time.Second)))
	_, ok := c.Model.ByPID[1]
	assert.True(t, ok)
}

func TestController_FreezeIsolatesView_ScenarioS6(t *testing.T) {
	c := NewController(nil)
	base := time.Now()

	for i := 0; i < 10; i++ {
		c.HandleUpdate(mkSample(base.Add(time.Duration(i)*time.Second), float64(i)))
	}
	c.ToggleFreeze()
	require.True(t, c.Frozen)

	frozenLen := c.ActiveStore().Len()
	assert.Equal(t, 10, frozenLen)

	for i := 10; i < 15; i++ {
		c.HandleUpdate(mkSample(base.Add(time.Duration(i)*time.Second), float64(i)))
	}
	assert.Equal(t, 15, c.Store.Len())
	assert.Equal(t, 10, c.ActiveStore().Len(), "frozen view must not see post-freeze pushes")

	c.ToggleFreeze()
	assert.False(t, c.Frozen)
	assert.Equal(t, 15, c.ActiveStore().Len(), "unfreezing exposes the live 15-entry store")
}

func TestController_Reset_ClearsStoreAndSignalsCollector(t *testing.T) {
	c := NewController(nil)
	base := time.Now()
	c.HandleUpdate(mkSample(base, 1))
	require.Equal(t, 1, c.Store.Len())

	c.Reset()
	assert.Equal(t, 0, c.Store.Len())

	select {
	case <-c.ResetSignal():
	default:
		t.Fatal("Reset did not signal the reset channel")
	}
}

func TestController_Terminate_TripsTerminator(t *testing.T) {
	term := collector.NewTerminator()
	c := NewController(term)
	c.Terminate()
	assert.True(t, term.Terminated())
}

func TestDispatchKey_QPressedTerminatesAndQuits(t *testing.T) {
	term := collector.NewTerminator()
	c := NewController(term)
	st := widget.NewState(time.Minute)

	res := DispatchKey(KeyMsg{Type: "char", Runes: []rune{'q'}}, st, c, time.Now(), time.Second, time.Hour)
	assert.True(t, res.Quit)
	assert.True(t, term.Terminated())
}

func TestDispatchKey_FreezeToggle(t *testing.T) {
	c := NewController(nil)
	st := widget.NewState(time.Minute)

	DispatchKey(KeyMsg{Type: "char", Runes: []rune{'f'}}, st, c, time.Now(), time.Second, time.Hour)
	assert.True(t, c.Frozen)
	DispatchKey(KeyMsg{Type: "char", Runes: []rune{'f'}}, st, c, time.Now(), time.Second, time.Hour)
	assert.False(t, c.Frozen)
}

func TestDispatchKey_CtrlRResets(t *testing.T) {
	c := NewController(nil)
	st := widget.NewState(time.Minute)
	c.HandleUpdate(mkSample(time.Now(), 1))
	require.Equal(t, 1, c.Store.Len())

	DispatchKey(KeyMsg{Type: "r", Ctrl: true}, st, c, time.Now(), time.Second, time.Hour)
	assert.Equal(t, 0, c.Store.Len())
}

func TestDispatchMouse_ScrollMovesSelection(t *testing.T) {
	st := widget.NewState(time.Minute)
	st.Selected = 5
	DispatchMouse(MouseMsg{Action: "scroll_up"}, st, false)
	assert.Equal(t, 4, st.Selected)
	DispatchMouse(MouseMsg{Action: "scroll_down"}, st, false)
	assert.Equal(t, 5, st.Selected)
}
