package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysmoni/sysmoni/internal/collector"
	"github.com/sysmoni/sysmoni/internal/config"
	"github.com/sysmoni/sysmoni/internal/eventloop"
	"github.com/sysmoni/sysmoni/internal/process"
)

func newTestModel() *Model {
	cfg := config.Default()
	m := New(cfg)
	m.width, m.height = 100, 30
	return m
}

func TestNew_AppliesTreeDefaultAndFilter(t *testing.T) {
	cfg := config.Default()
	cfg.TreeDefault = true
	cfg.Filter = "cpu > 1"
	m := New(cfg)
	assert.Equal(t, viewTree, m.mode)
	require.NotNil(t, m.procState.Search.Compiled)
	assert.False(t, m.procState.Search.Invalid)
}

func TestNew_InvalidFilterMarksInvalid(t *testing.T) {
	cfg := config.Default()
	cfg.Filter = "((("
	m := New(cfg)
	assert.True(t, m.procState.Search.Invalid)
}

func TestHandleKey_SlashEntersSearchEditing(t *testing.T) {
	m := newTestModel()
	_, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	assert.Equal(t, "editing", m.procState.Search.Message)
}

func TestHandleKey_TypingWhileEditingAppendsRaw(t *testing.T) {
	m := newTestModel()
	m.procState.Search.Message = "editing"
	_, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	_, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	assert.Equal(t, "cp", m.procState.Search.Raw)
}

func TestHandleKey_EnterCompilesSearch(t *testing.T) {
	m := newTestModel()
	m.procState.Search.Message = "editing"
	m.procState.Search.Raw = "cpu > 1"
	_, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "", m.procState.Search.Message)
	assert.NotNil(t, m.procState.Search.Compiled)
}

func TestHandleKey_EscClearsSearch(t *testing.T) {
	m := newTestModel()
	m.procState.Search.Message = "editing"
	m.procState.Search.Raw = "abc"
	_, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, "", m.procState.Search.Raw)
	assert.Equal(t, "", m.procState.Search.Message)
}

func TestHandleKey_QuitTerminatesCollector(t *testing.T) {
	m := newTestModel()
	_, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.True(t, m.term.Terminated())
}

func TestCycleSort_StepsThroughColumns(t *testing.T) {
	m := newTestModel()
	m.procState.SortColumn = int(process.SortPID)
	m.cycleSort()
	assert.Equal(t, int(process.SortCPU), m.procState.SortColumn)
	m.cycleSort()
	assert.Equal(t, int(process.SortMemPercent), m.procState.SortColumn)
	m.cycleSort()
	assert.Equal(t, int(process.SortPID), m.procState.SortColumn)
}

func TestView_RendersWithoutPanicOnEmptyState(t *testing.T) {
	m := newTestModel()
	assert.NotPanics(t, func() {
		out := m.View()
		assert.Contains(t, out, "sysmoni")
	})
}

func TestView_ShowsFrozenIndicator(t *testing.T) {
	m := newTestModel()
	m.ctrl.HandleUpdate(eventloop.UpdateMsg{Instant: m.ctrl.Latest.Instant})
	m.ctrl.ToggleFreeze()
	assert.Contains(t, m.View(), "FROZEN")
}

func TestCPUModeFrom_RespectsConfig(t *testing.T) {
	cfg := config.Default()
	cfg.CPUNormalized = true
	assert.Equal(t, collector.Normalized, cpuModeFrom(cfg))
	cfg.CPUNormalized = false
	assert.Equal(t, collector.Unnormalized, cpuModeFrom(cfg))
}

func TestCPUModeFrom_CurrentUsageOverridesNormalized(t *testing.T) {
	cfg := config.Default()
	cfg.CPUNormalized = true
	cfg.CPUCurrentUsage = true
	assert.Equal(t, collector.CurrentUsage, cpuModeFrom(cfg))
}
