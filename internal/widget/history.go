package widget

// historyCap is the teacher's per-core history ring buffer cap, reused
// here for the per-core CPU and network rx/tx histories the UI records
// alongside the full time-series store.
const historyCap = 60

// History is a fixed-capacity ring buffer of recent samples, generalizing
// the teacher's perCoreHist map[int][]float64 field.
type History struct {
	values []float64
}

// Push appends v, dropping the oldest entry once historyCap is exceeded.
func (h *History) Push(v float64) {
	h.values = append(h.values, v)
	if len(h.values) > historyCap {
		h.values = h.values[len(h.values)-historyCap:]
	}
}

// Values returns the buffered samples, oldest first.
func (h *History) Values() []float64 { return h.values }

// PerCoreHistory keys a History per logical CPU core (or per direction,
// 0 == rx and 1 == tx, for the network history), matching the teacher's
// map[int][]float64 shape.
type PerCoreHistory struct {
	byKey map[int]*History
}

// NewPerCoreHistory returns an empty per-key history set.
func NewPerCoreHistory() *PerCoreHistory {
	return &PerCoreHistory{byKey: make(map[int]*History)}
}

// Push records v for key, creating its History on first use.
func (p *PerCoreHistory) Push(key int, v float64) {
	h, ok := p.byKey[key]
	if !ok {
		h = &History{}
		p.byKey[key] = h
	}
	h.Push(v)
}

// Values returns key's buffered samples, or nil if key was never pushed.
func (p *PerCoreHistory) Values(key int) []float64 {
	h, ok := p.byKey[key]
	if !ok {
		return nil
	}
	return h.Values()
}
