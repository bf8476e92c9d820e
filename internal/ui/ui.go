// Package ui wires the collector, controller, widget state, and painter
// together into one bubbletea tea.Model, generalizing the teacher's
// flat ui.Model (which talked to sampler.Sampler directly) into the
// collector -> controller -> widget -> painter pipeline spec.md §4.7
// describes.
package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sysmoni/sysmoni/internal/collector"
	"github.com/sysmoni/sysmoni/internal/config"
	"github.com/sysmoni/sysmoni/internal/errs"
	"github.com/sysmoni/sysmoni/internal/eventloop"
	"github.com/sysmoni/sysmoni/internal/model"
	"github.com/sysmoni/sysmoni/internal/paint"
	"github.com/sysmoni/sysmoni/internal/process"
	"github.com/sysmoni/sysmoni/internal/query"
	"github.com/sysmoni/sysmoni/internal/scale"
	"github.com/sysmoni/sysmoni/internal/series"
	"github.com/sysmoni/sysmoni/internal/widget"
)

const cleanupEvery = 5 * time.Second

// viewMode selects how the process widget lays out rows, per spec.md
// §4.3's flat/grouped/tree views.
type viewMode int

const (
	viewFlat viewMode = iota
	viewGrouped
	viewTree
)

// Model is the top-level bubbletea model: it owns nothing the controller
// or collector already own, just the glue and per-widget display state.
type Model struct {
	cfg     config.Config
	col     *collector.Collector
	term    *collector.Terminator
	ctrl    *eventloop.Controller
	ctx     context.Context
	cancel  context.CancelFunc
	sampleCh chan model.Sample

	width, height int
	painter       paint.Painter

	procState *widget.State
	mode      viewMode

	cpuHist *widget.PerCoreHistory
	netHist *widget.PerCoreHistory // key 0 == rx, 1 == tx
}

// New constructs a Model ready for bubbletea's Init, translating cfg into
// the collector's Options shape.
func New(cfg config.Config) *Model {
	ctx, cancel := context.WithCancel(context.Background())
	term := collector.NewTerminator()
	opts := collector.Options{
		WidgetsEnabled: map[string]bool{
			"gpu":     cfg.EnableGPU,
			"battery": cfg.EnableBatt,
		},
		TempUnit: cfg.TempUnit,
		CPUMode:  cpuModeFrom(cfg),
	}
	m := &Model{
		cfg:      cfg,
		col:      collector.New(opts),
		term:     term,
		ctrl:     eventloop.NewController(term),
		ctx:      ctx,
		cancel:   cancel,
		sampleCh: make(chan model.Sample, 1),
		width:    120,
		height:   40,
		painter:  paint.LipglossPainter{},
		procState: widget.NewState(cfg.DefaultWindow),
		cpuHist:   widget.NewPerCoreHistory(),
		netHist:   widget.NewPerCoreHistory(),
	}
	if cfg.TreeDefault {
		m.mode = viewTree
	}
	if cfg.Filter != "" {
		m.procState.Search.Raw = cfg.Filter
		if q, err := query.Parse(cfg.Filter, m.queryOptions()); err == nil {
			m.procState.Search.Compiled = q
		} else {
			m.procState.Search.Invalid = true
		}
	}
	return m
}

// cpuModeFrom resolves spec.md §4.1's three CPU% modes. current-usage is
// independent of normalized/unnormalized in the spec's wording, but
// collector.CPUPercentMode models them as one mutually-exclusive choice,
// so current-usage takes priority when both flags are set.
func cpuModeFrom(cfg config.Config) collector.CPUPercentMode {
	if cfg.CPUCurrentUsage {
		return collector.CurrentUsage
	}
	if cfg.CPUNormalized {
		return collector.Normalized
	}
	return collector.Unnormalized
}

func (m *Model) queryOptions() query.Options {
	return query.Options{EnableGPU: m.cfg.EnableGPU}
}

// Messages
type (
	sampleMsg  model.Sample
	cleanupMsg struct{}
)

func waitForSampleCmd(ch <-chan model.Sample) tea.Cmd {
	return func() tea.Msg { return sampleMsg(<-ch) }
}

func cleanupTickCmd() tea.Cmd {
	return tea.Tick(cleanupEvery, func(time.Time) tea.Msg { return cleanupMsg{} })
}

func (m *Model) Init() tea.Cmd {
	go m.runCollector()
	return tea.Batch(waitForSampleCmd(m.sampleCh), cleanupTickCmd())
}

// runCollector is the collector's own goroutine: collect, push to the
// model via sampleCh, then sleep the configured interval in a way the
// controller's Terminate can interrupt promptly (spec.md §4.7). A pending
// Reset signal is picked up at the start of the next iteration.
func (m *Model) runCollector() {
	if err := m.col.Init(m.ctx); err != nil {
		return
	}
	for {
		select {
		case <-m.ctrl.ResetSignal():
			m.col.Reset()
		default:
		}
		if m.term.Terminated() {
			return
		}
		s := m.col.Collect(m.ctx)
		select {
		case m.sampleCh <- s:
		case <-m.ctx.Done():
			return
		}
		if m.term.Sleep(m.cfg.Interval) {
			return
		}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.procState.ForceUpdate = true

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		eventloop.DispatchMouse(mouseFromTea(msg), m.procState, m.cfg.DisableClick)

	case sampleMsg:
		s := model.Sample(msg)
		m.ctrl.HandleUpdate(eventloop.UpdateMsg(s))
		m.recordHistory(s)
		return m, waitForSampleCmd(m.sampleCh)

	case cleanupMsg:
		m.ctrl.Cleanup(eventloop.CleanupTickMsg{Now: time.Now()}, m.cfg.Retention)
		return m, cleanupTickCmd()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.procState.Search.Message == "editing" {
		switch msg.Type {
		case tea.KeyEnter:
			m.compileSearch()
		case tea.KeyEsc:
			m.procState.Search = widget.SearchState{}
		case tea.KeyBackspace:
			if r := []rune(m.procState.Search.Raw); len(r) > 0 {
				m.procState.Search.Raw = string(r[:len(r)-1])
			}
		default:
			if msg.Runes != nil {
				m.procState.Search.Raw += string(msg.Runes)
			}
		}
		return m, nil
	}

	if msg.Type == tea.KeyCtrlC {
		m.ctrl.Terminate()
		m.cancel()
		return m, tea.Quit
	}

	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		switch msg.Runes[0] {
		case '/':
			m.procState.Search.Message = "editing"
			m.procState.Search.Raw = ""
			return m, nil
		case 't':
			m.mode = viewTree
			return m, nil
		case 'g':
			m.mode = viewGrouped
			return m, nil
		case 'F':
			m.mode = viewFlat
			return m, nil
		case 's':
			m.cycleSort()
			return m, nil
		}
	}

	res := eventloop.DispatchKey(keyFromTea(msg), m.procState, m.ctrl, time.Now(), m.cfg.ZoomDelta, m.cfg.Retention)
	if res.Quit {
		m.cancel()
		return m, tea.Quit
	}
	return m, nil
}

// cycleSort steps through CPU% -> MEM% -> PID, generalizing the teacher's
// two-way sortKey toggle to sysmoni's wider set of sortable columns.
func (m *Model) cycleSort() {
	switch process.SortColumn(m.procState.SortColumn) {
	case process.SortCPU:
		m.procState.SortColumn = int(process.SortMemPercent)
	case process.SortMemPercent:
		m.procState.SortColumn = int(process.SortPID)
	default:
		m.procState.SortColumn = int(process.SortCPU)
	}
	m.procState.SortDesc = true
}

func (m *Model) compileSearch() {
	m.procState.Search.Message = ""
	raw := strings.TrimSpace(m.procState.Search.Raw)
	if raw == "" {
		m.procState.Search.Compiled = nil
		m.procState.Search.Invalid = false
		return
	}
	q, err := query.Parse(raw, m.queryOptions())
	if err != nil {
		m.procState.Search.Invalid = true
		return
	}
	m.procState.Search.Compiled = q
	m.procState.Search.Invalid = false
}

func keyFromTea(msg tea.KeyMsg) eventloop.KeyMsg {
	switch msg.Type {
	case tea.KeyUp:
		return eventloop.KeyMsg{Type: "up"}
	case tea.KeyDown:
		return eventloop.KeyMsg{Type: "down"}
	case tea.KeyEsc:
		return eventloop.KeyMsg{Type: "esc"}
	case tea.KeyCtrlR:
		return eventloop.KeyMsg{Type: "r", Ctrl: true}
	case tea.KeyRunes:
		return eventloop.KeyMsg{Type: "char", Runes: msg.Runes}
	default:
		return eventloop.KeyMsg{Type: msg.String()}
	}
}

func mouseFromTea(msg tea.MouseMsg) eventloop.MouseMsg {
	action := "none"
	switch {
	case msg.Type == tea.MouseWheelUp:
		action = "scroll_up"
	case msg.Type == tea.MouseWheelDown:
		action = "scroll_down"
	case msg.Type == tea.MouseLeft:
		action = "left_down"
	case msg.Type == tea.MouseRight:
		action = "right_down"
	}
	return eventloop.MouseMsg{X: msg.X, Y: msg.Y, Action: action}
}

func (m *Model) recordHistory(s model.Sample) {
	if s.CPU != nil {
		for i, pct := range s.CPU.PerCore {
			m.cpuHist.Push(i, pct)
		}
	}
	if s.Network != nil {
		m.netHist.Push(0, s.Network.RxBps)
		m.netHist.Push(1, s.Network.TxBps)
	}
}

// activeProgram lets the top-level panic hook in cmd/sysmoni reach the
// running program and force a terminal restore, per spec.md §7.
var activeProgram *tea.Program

// ActiveProgram returns the currently-running TUI program, or nil if none
// is active. cmd/sysmoni's panic-recovery hook uses this to call Kill()
// before the terminal state is otherwise restored.
func ActiveProgram() *tea.Program { return activeProgram }

// RunTUI starts the bubbletea program, grounded on the teacher's RunTUI.
func RunTUI(cfg config.Config) error {
	prog := tea.NewProgram(New(cfg), tea.WithAltScreen(), tea.WithMouseCellMotion())
	activeProgram = prog
	defer func() { activeProgram = nil }()
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrTerminal, err)
	}
	return nil
}

// --- rendering ---

func (m *Model) View() string {
	snap := m.ctrl.ActiveSnapshot()
	store := m.ctrl.ActiveStore()

	header := fmt.Sprintf("sysmoni  %s", snap.Instant.Format("15:04:05"))
	if m.ctrl.Frozen {
		header += "  [FROZEN]"
	}
	if m.procState.Search.Message == "editing" {
		header += "  /" + m.procState.Search.Raw
	} else if m.procState.Search.Raw != "" {
		header += "  filter:" + m.procState.Search.Raw
	}
	if m.procState.Search.Invalid {
		header += " (invalid query)"
	}

	cpuCard := m.renderCPUCard(store, snap)
	memCard := m.renderMemCard(snap)
	netCard := m.renderNetCard(store, snap)

	cards := []string{cpuCard, memCard, netCard}
	if len(snap.Disks) > 0 {
		cards = append(cards, m.renderDiskCard(snap))
	}
	if len(snap.Temps) > 0 {
		cards = append(cards, m.renderTempCard(snap))
	}
	if len(snap.GPUs) > 0 {
		cards = append(cards, m.renderGPUCard(snap))
	}
	if len(snap.Batteries) > 0 {
		cards = append(cards, m.renderBatteryCard(snap))
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	table := m.renderProcessTable()

	return lipgloss.JoinVertical(lipgloss.Left, header, top, table)
}

func (m *Model) renderCPUCard(store *series.Store, snap model.LatestSnapshot) string {
	pts := store.Points("cpu.total")
	vm := paint.GraphViewModel{Points: pts}
	_, labels := scale.Scale(-m.procState.Window, time.Now(), scale.ScaleConfig{Scaling: scale.Linear, Unit: scale.UnitByte, FloorValue: 1}, pts)
	vm.YLabels = labels
	vm.Hidden = !m.procState.Autohide(time.Now())
	area := paint.Area{Width: m.width/3 - 2}
	body := m.painter.Draw(paint.ViewModel{Graph: &vm}, area)
	loadLine := fmt.Sprintf("load %.2f %.2f %.2f", snap.LoadAvg[0], snap.LoadAvg[1], snap.LoadAvg[2])
	return cardWrap("CPU", body+"\n"+loadLine)
}

func (m *Model) renderMemCard(snap model.LatestSnapshot) string {
	if snap.Memory == nil {
		return cardWrap("Memory", "n/a")
	}
	vm := paint.GaugeViewModel{Fill: int(snap.Memory.UsedBytes / (1024 * 1024)), Max: int(snap.Memory.TotalBytes / (1024 * 1024)), Label: "Memory"}
	body := m.painter.Draw(paint.ViewModel{Gauge: &vm}, paint.Area{Width: m.width/3 - 2})
	swap := ""
	if snap.Swap != nil && snap.Swap.TotalBytes > 0 {
		swap = fmt.Sprintf("\nswap %.1f/%.1f GiB", gib(snap.Swap.UsedBytes), gib(snap.Swap.TotalBytes))
	}
	return cardWrap("Memory", body+swap)
}

func (m *Model) renderNetCard(store *series.Store, snap model.LatestSnapshot) string {
	rxPts := store.Points("net.rx")
	txPts := store.Points("net.tx")
	cfg := scale.ScaleConfig{Scaling: scale.Linear, Unit: netUnit(m.cfg.NetUnit), BinaryPrefix: m.cfg.NetPrefix == "binary", FloorValue: 1}
	if m.cfg.NetScale == "log" {
		cfg.Scaling = scale.Log
	}
	// §4.5: the axis bound covers the max across rx *and* tx, not just rx.
	_, labels := scale.Scale(-m.procState.Window, time.Now(), cfg, rxPts, txPts)
	vm := paint.GraphViewModel{Points: rxPts, YLabels: labels}
	body := m.painter.Draw(paint.ViewModel{Graph: &vm}, paint.Area{Width: m.width/3 - 2})
	rate := ""
	if snap.Network != nil {
		rate = fmt.Sprintf("\nrx %.1f/s tx %.1f/s", snap.Network.RxBps, snap.Network.TxBps)
	}
	return cardWrap("Network", body+rate)
}

func netUnit(s string) scale.Unit {
	if s == "bit" {
		return scale.UnitBit
	}
	return scale.UnitByte
}

func (m *Model) renderDiskCard(snap model.LatestSnapshot) string {
	var b strings.Builder
	for _, d := range snap.Disks {
		pct := 0.0
		if d.TotalBytes > 0 {
			pct = float64(d.UsedBytes) * 100 / float64(d.TotalBytes)
		}
		fmt.Fprintf(&b, "%-10s %5.1f%%\n", d.Mount, pct)
	}
	return cardWrap("Disks", strings.TrimRight(b.String(), "\n"))
}

func (m *Model) renderTempCard(snap model.LatestSnapshot) string {
	var b strings.Builder
	for _, t := range snap.Temps {
		fmt.Fprintf(&b, "%-14s %5.1f%s\n", t.Name, collector.ConvertCelsius(t.TemperatureCelsius, m.cfg.TempUnit), m.cfg.TempUnit)
	}
	return cardWrap("Temps", strings.TrimRight(b.String(), "\n"))
}

func (m *Model) renderGPUCard(snap model.LatestSnapshot) string {
	var b strings.Builder
	for _, g := range snap.GPUs {
		fmt.Fprintf(&b, "%-10s %4.0f%% %4.0f/%4.0fMiB %2.0fC\n",
			g.Name, g.UtilPercent, float64(g.MemUsedBytes)/(1024*1024), float64(g.MemTotalBytes)/(1024*1024), g.TempCelsius)
	}
	return cardWrap("GPU", strings.TrimRight(b.String(), "\n"))
}

func (m *Model) renderBatteryCard(snap model.LatestSnapshot) string {
	var b strings.Builder
	for _, batt := range snap.Batteries {
		fmt.Fprintf(&b, "%-6s %3.0f%% %s\n", batt.Name, batt.Percent, batt.State)
	}
	return cardWrap("Battery", strings.TrimRight(b.String(), "\n"))
}

func cardWrap(title, body string) string {
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).MarginRight(1).Render(title + "\n" + body)
}

func gib(b uint64) float64 { return float64(b) / (1024 * 1024 * 1024) }

func (m *Model) renderProcessTable() string {
	pm := m.ctrl.ActiveModel()
	if pm == nil {
		return ""
	}
	spec := process.SortSpec{Column: process.SortColumn(m.procState.SortColumn), Desc: m.procState.SortDesc}

	var rows []process.Row
	switch m.mode {
	case viewTree:
		rows = pm.Tree(m.procState.Search.Compiled, m.cfg.ByCommand, spec, m.procState.Collapsed)
	case viewGrouped:
		rows = pm.Grouped(m.procState.Search.Compiled, m.cfg.ByCommand, spec)
	default:
		rows = pm.Flat(m.procState.Search.Compiled, m.cfg.ByCommand, spec)
	}

	if len(rows) == 0 {
		m.procState.Selected = 0
	} else if m.procState.Selected >= len(rows) {
		m.procState.Selected = len(rows) - 1
	}

	numRows := m.height - 10
	if numRows < 1 {
		numRows = 1
	}
	bar := widget.StartPosition(numRows, widget.ScrollDown, m.procState.Scroll, m.procState.Selected, m.procState.ForceUpdate)
	m.procState.Scroll = bar
	m.procState.ForceUpdate = false

	end := bar + numRows
	if end > len(rows) {
		end = len(rows)
	}
	visible := rows[bar:end]

	header := []string{"PID", "NAME", "CPU%", "MEM%", "MEM", "ST", "USER"}
	cells := make([][]string, len(visible))
	disabled := make([]bool, len(visible))
	for i, r := range visible {
		name := r.Prefix + r.Record.Name
		if m.cfg.ByCommand {
			name = r.Prefix + r.Record.Command
		}
		if r.Count > 1 {
			name = fmt.Sprintf("%s (%d)", name, r.Count)
		}
		user := "-"
		if r.Record.User != nil {
			user = *r.Record.User
		}
		cells[i] = []string{
			strconv.Itoa(int(r.Record.PID)),
			name,
			fmt.Sprintf("%.1f", r.Record.CPUPercent),
			fmt.Sprintf("%.1f", r.Record.MemPercent),
			humanBytes(r.Record.MemBytes),
			string(r.Record.StateShort),
			user,
		}
		disabled[i] = r.Disabled
	}

	widths := paint.ColumnWidths(tableColumns(), m.width)
	vm := paint.TableViewModel{
		Header:    header,
		Rows:      cells,
		Disabled:  disabled,
		ColWidths: widths,
		Selected:  m.procState.Selected - bar,
		ScrollBar: paint.ScrollBarState{Total: len(rows), Visible: len(visible), Offset: bar},
	}
	return m.painter.Draw(paint.ViewModel{Table: &vm}, paint.Area{Width: m.width, Height: numRows})
}

func tableColumns() []paint.ColumnSpec {
	hard := func(v int) *int { return &v }
	soft := func(min int, max float64, desired int) paint.ColumnSpec {
		return paint.ColumnSpec{SoftMin: &min, SoftMax: &max, SoftDesired: &desired}
	}
	return []paint.ColumnSpec{
		{Hard: hard(7)},
		soft(10, 0.35, 30),
		{Hard: hard(6)},
		{Hard: hard(6)},
		{Hard: hard(9)},
		{Hard: hard(3)},
		soft(6, 0.12, 12),
	}
}

func humanBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%dB", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
