// Package series implements the chunked, gap-tolerant time-series store:
// a shared timeline paired with per-metric value series, supporting
// dynamic series addition and age-based pruning.
package series

import (
	"sort"
	"time"
)

// Chunk is a contiguous run of values starting at timeline index Start.
type Chunk struct {
	Start  int
	Values []float64
}

func (c Chunk) end() int { return c.Start + len(c.Values) }

// ChunkedData is a sequence of contiguous value runs separated by
// implicit break markers (gaps between one chunk's end and the next
// chunk's Start).
type ChunkedData struct {
	chunks []Chunk
	length int // logical length, equal to the owning timeline's length
}

// Push appends one logical slot: a value if ok, a break marker otherwise.
func (c *ChunkedData) Push(v float64, ok bool) {
	if ok {
		if n := len(c.chunks); n > 0 && c.chunks[n-1].end() == c.length {
			c.chunks[n-1].Values = append(c.chunks[n-1].Values, v)
		} else {
			c.chunks = append(c.chunks, Chunk{Start: c.length, Values: []float64{v}})
		}
	}
	c.length++
}

// At returns the value at logical index i, or (0, false) if i is a break
// or out of range.
func (c *ChunkedData) At(i int) (float64, bool) {
	if i < 0 || i >= c.length {
		return 0, false
	}
	// Chunks are few relative to points in the common case; linear scan
	// keeps this simple and is bounded by the number of gaps, not points.
	for _, ch := range c.chunks {
		if i >= ch.Start && i < ch.end() {
			return ch.Values[i-ch.Start], true
		}
		if i < ch.Start {
			break
		}
	}
	return 0, false
}

// Len returns the logical length (data points plus break positions).
func (c *ChunkedData) Len() int { return c.length }

// prunePrefix drops the first n logical slots, shifting chunk offsets and
// splitting/dropping any chunk that straddles or precedes the cut.
func (c *ChunkedData) prunePrefix(n int) {
	if n <= 0 {
		return
	}
	kept := c.chunks[:0]
	for _, ch := range c.chunks {
		switch {
		case ch.end() <= n:
			// Entirely dropped (a pure-break prefix needs no entry anyway).
		case ch.Start >= n:
			ch.Start -= n
			kept = append(kept, ch)
		default:
			// Straddles the cut: split, keeping the tail.
			drop := n - ch.Start
			ch.Values = append([]float64(nil), ch.Values[drop:]...)
			ch.Start = 0
			kept = append(kept, ch)
		}
	}
	c.chunks = kept
	c.length -= n
}

// ValueSeries is one named metric's ChunkedData.
type ValueSeries struct {
	Data ChunkedData
}

// Point is one (time, value) sample; Value is nil at a break position.
type Point struct {
	Time  time.Time
	Value *float64
}

// Store is the shared timeline paired with named value series.
//
// Invariants: Timeline is strictly increasing; every series's logical
// length equals len(Timeline); Prune removes a matching prefix of the
// timeline and of every series.
type Store struct {
	Timeline []time.Time
	Series   map[string]*ValueSeries
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{Series: make(map[string]*ValueSeries)}
}

// Values is the per-series input to Push: present families map to a
// value, absent families are omitted (treated as a break).
type Values map[string]float64

// Push appends t to the timeline and, for each known series, appends the
// incoming value or a break marker if absent from values. A value naming
// a series that doesn't exist yet creates one, back-filled with break
// markers to match the current timeline length before t was appended.
func (s *Store) Push(t time.Time, values Values) {
	priorLen := len(s.Timeline)
	s.Timeline = append(s.Timeline, t)

	for name := range values {
		if _, ok := s.Series[name]; !ok {
			vs := &ValueSeries{}
			for i := 0; i < priorLen; i++ {
				vs.Data.Push(0, false)
			}
			s.Series[name] = vs
		}
	}

	for name, vs := range s.Series {
		v, ok := values[name]
		vs.Data.Push(v, ok)
	}
}

// Prune drops every timeline entry older than maxAge relative to now,
// using binary search to find the cut index since Timeline is sorted.
func (s *Store) Prune(now time.Time, maxAge time.Duration) {
	if len(s.Timeline) == 0 {
		return
	}
	cutoff := now.Add(-maxAge)
	cut := sort.Search(len(s.Timeline), func(i int) bool {
		return !s.Timeline[i].Before(cutoff)
	})
	if cut == 0 {
		return
	}
	s.Timeline = append([]time.Time(nil), s.Timeline[cut:]...)
	for _, vs := range s.Series {
		vs.Data.prunePrefix(cut)
	}
}

// Points materializes (time, value-or-nil) pairs for name in timeline
// order; used by graph rendering. Returns nil if name is unknown.
func (s *Store) Points(name string) []Point {
	vs, ok := s.Series[name]
	if !ok {
		return nil
	}
	out := make([]Point, len(s.Timeline))
	for i, t := range s.Timeline {
		p := Point{Time: t}
		if v, ok := vs.Data.At(i); ok {
			vv := v
			p.Value = &vv
		}
		out[i] = p
	}
	return out
}

// Len returns the number of timeline entries.
func (s *Store) Len() int { return len(s.Timeline) }

// Clone returns a deep copy, used by the freeze controller to capture a
// store snapshot that subsequent Pushes to the original cannot mutate.
func (s *Store) Clone() *Store {
	out := &Store{
		Timeline: append([]time.Time(nil), s.Timeline...),
		Series:   make(map[string]*ValueSeries, len(s.Series)),
	}
	for name, vs := range s.Series {
		chunks := make([]Chunk, len(vs.Data.chunks))
		for i, ch := range vs.Data.chunks {
			chunks[i] = Chunk{Start: ch.Start, Values: append([]float64(nil), ch.Values...)}
		}
		out.Series[name] = &ValueSeries{Data: ChunkedData{chunks: chunks, length: vs.Data.length}}
	}
	return out
}
