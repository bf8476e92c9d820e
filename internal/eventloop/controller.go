package eventloop

import (
	"time"

	"github.com/sysmoni/sysmoni/internal/collector"
	"github.com/sysmoni/sysmoni/internal/model"
	"github.com/sysmoni/sysmoni/internal/process"
	"github.com/sysmoni/sysmoni/internal/series"
)

// Controller is the sole mutator of the live time-series store, process
// model, and latest-snapshot, per spec.md §4.7. It owns the live-vs-
// frozen decision: widgets always read through ActiveSnapshot/ActiveModel
// rather than touching Store/Model directly while frozen.
type Controller struct {
	Frozen   bool
	Snapshot *model.LatestSnapshot
	Store    *series.Store
	Model    *process.Model
	Latest   model.LatestSnapshot

	// frozenStore and frozenModel hold the deep copies captured at the
	// freeze instant. These aren't in spec.md's literal Controller field
	// list, but scenario S6 ("during freeze the view reports the 10-entry
	// snapshot" even as the live store grows to 15 entries) requires the
	// whole view — graphs included, not just table/gauge widgets — to be
	// byte-identical to the freeze instant (property 8), so Store alone
	// can't serve graph widgets during a freeze.
	frozenStore *series.Store
	frozenModel *process.Model
	resetCh     chan struct{}
	term        *collector.Terminator
}

// NewController returns a Controller with empty stores, wired to term so
// Terminate can wake the collector's inter-tick sleep promptly.
func NewController(term *collector.Terminator) *Controller {
	return &Controller{
		Store:   series.NewStore(),
		Model:   &process.Model{},
		resetCh: make(chan struct{}, 1),
		term:    term,
	}
}

// HandleUpdate ingests a Sample into the live store and process model
// unconditionally — even while Frozen, per spec.md §4.7 ("if Frozen,
// still ingest"); only the exposed ActiveSnapshot/ActiveModel views
// differ during a freeze.
func (c *Controller) HandleUpdate(u UpdateMsg) {
	s := model.Sample(u)
	c.Store.Push(s.Instant, sampleToValues(s))

	m := &process.Model{}
	m.Ingest(s.Processes)
	c.Model = m

	c.Latest = model.SnapshotFrom(s)
}

// ToggleFreeze captures (or releases) the live snapshot, per spec.md
// §4.7's freeze toggle.
func (c *Controller) ToggleFreeze() {
	if c.Frozen {
		c.Frozen = false
		c.Snapshot = nil
		c.frozenModel = nil
		c.frozenStore = nil
		return
	}
	c.Frozen = true
	snap := c.Latest.Clone()
	c.Snapshot = &snap
	c.frozenModel = c.Model
	c.frozenStore = c.Store.Clone()
}

// ActiveSnapshot returns the snapshot widgets should currently render:
// the frozen one if Frozen, else the live Latest — property 8's freeze
// isolation.
func (c *Controller) ActiveSnapshot() model.LatestSnapshot {
	if c.Frozen && c.Snapshot != nil {
		return *c.Snapshot
	}
	return c.Latest
}

// ActiveModel returns the process model widgets should currently render.
func (c *Controller) ActiveModel() *process.Model {
	if c.Frozen && c.frozenModel != nil {
		return c.frozenModel
	}
	return c.Model
}

// ActiveStore returns the time-series store graph widgets should
// currently render from.
func (c *Controller) ActiveStore() *series.Store {
	if c.Frozen && c.frozenStore != nil {
		return c.frozenStore
	}
	return c.Store
}

// Reset empties the live store and process model and signals the
// collector via a non-blocking send — Go's buffered channel stands in for
// spec.md's "separate SPSC channel or atomic flag", since a size-1
// channel with a non-blocking send already gives exactly that semantics
// without an extra synchronization primitive.
func (c *Controller) Reset() {
	c.Store = series.NewStore()
	c.Model = &process.Model{}
	c.Frozen = false
	c.Snapshot = nil
	c.frozenModel = nil
	c.frozenStore = nil

	select {
	case c.resetCh <- struct{}{}:
	default:
	}
}

// ResetSignal is the collector-ward channel Reset sends on.
func (c *Controller) ResetSignal() <-chan struct{} { return c.resetCh }

// Cleanup prunes the live store down to retention, relative to tick.Now.
func (c *Controller) Cleanup(tick CleanupTickMsg, retention time.Duration) {
	c.Store.Prune(tick.Now, retention)
}

// Terminate trips the shared termination flag so the collector's
// inter-tick sleep wakes immediately instead of waiting out the interval.
func (c *Controller) Terminate() {
	if c.term != nil {
		c.term.Terminate()
	}
}
