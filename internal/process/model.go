// Package process rebuilds the PID graph from each collected Sample and
// serves flat, grouped-by-name, and tree views over it, grounded on
// bottom's process_harvest/process_parent_mapping shape and tree-table
// builder.
package process

import (
	"sort"

	"github.com/sysmoni/sysmoni/internal/model"
	"github.com/sysmoni/sysmoni/internal/query"
)

// Model is the rebuilt PID graph for one Sample.
type Model struct {
	ByPID     map[int32]model.ProcessRecord
	Children  map[int32][]int32
	Orphans   []int32
	ByName    map[string][]int32
	ByCommand map[string][]int32
}

// Ingest rebuilds the graph from records, which must be pre-sorted
// ascending by PID (the collector's contract).
func (m *Model) Ingest(records []model.ProcessRecord) {
	m.ByPID = make(map[int32]model.ProcessRecord, len(records))
	m.Children = make(map[int32][]int32)
	m.ByName = make(map[string][]int32)
	m.ByCommand = make(map[string][]int32)

	for _, r := range records {
		m.ByPID[r.PID] = r
	}

	// Reverse-PID iteration, prepending each child, leaves each parent's
	// children slice in ascending PID order (spec.md §4.3 step 2).
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		if r.ParentPID != nil {
			if _, ok := m.ByPID[*r.ParentPID]; ok {
				m.Children[*r.ParentPID] = append([]int32{r.PID}, m.Children[*r.ParentPID]...)
			}
		}
	}

	m.Orphans = m.Orphans[:0]
	for _, r := range records {
		m.ByName[r.Name] = append(m.ByName[r.Name], r.PID)
		m.ByCommand[r.Command] = append(m.ByCommand[r.Command], r.PID)
		if r.ParentPID == nil {
			m.Orphans = append(m.Orphans, r.PID)
			continue
		}
		if _, ok := m.ByPID[*r.ParentPID]; !ok {
			m.Orphans = append(m.Orphans, r.PID)
		}
	}
}

// SortSpec names the sort column and direction for any view.
type SortSpec struct {
	Column SortColumn
	Desc   bool
}

// SortColumn enumerates the sortable process-table columns (spec.md
// §4.3 "Sort").
type SortColumn int

const (
	SortPID SortColumn = iota
	SortName
	SortCPU
	SortMemPercent
	SortMemBytes
	SortReadBps
	SortWriteBps
	SortTotalRead
	SortTotalWrite
	SortUser
	SortState
	SortGPUUtil
	SortGPUMem
)

// Row is one rendered line of any view: a possibly-synthetic record plus
// display metadata.
type Row struct {
	Record   model.ProcessRecord
	Count    int    // >1 for grouped rows
	Prefix   string // tree-view branch glyphs
	Disabled bool   // tree-view non-matching-but-kept ancestor
	Depth    int
}

func byCommandName(rec model.ProcessRecord, byCommand bool) string {
	if byCommand {
		return rec.Command
	}
	return rec.Name
}

func sortRows(rows []Row, spec SortSpec) {
	less := func(i, j int) bool {
		a, b := rows[i].Record, rows[j].Record
		var lt bool
		switch spec.Column {
		case SortName:
			lt = a.Name < b.Name
		case SortCPU:
			lt = a.CPUPercent < b.CPUPercent
		case SortMemPercent:
			lt = a.MemPercent < b.MemPercent
		case SortMemBytes:
			lt = a.MemBytes < b.MemBytes
		case SortReadBps:
			lt = a.ReadBps < b.ReadBps
		case SortWriteBps:
			lt = a.WriteBps < b.WriteBps
		case SortTotalRead:
			lt = a.TotalReadBytes < b.TotalReadBytes
		case SortTotalWrite:
			lt = a.TotalWriteBytes < b.TotalWriteBytes
		case SortUser:
			lt = userOf(a) < userOf(b)
		case SortState:
			lt = a.StateLong < b.StateLong
		case SortGPUUtil:
			lt = gpuUtilOf(a) < gpuUtilOf(b)
		case SortGPUMem:
			lt = gpuMemOf(a) < gpuMemOf(b)
		default: // SortPID
			lt = a.PID < b.PID
		}
		if spec.Desc {
			// Equal values always tie-break PID ascending, even descending sorts.
			if eqByColumn(spec.Column, a, b) {
				return a.PID < b.PID
			}
			return !lt
		}
		if eqByColumn(spec.Column, a, b) {
			return a.PID < b.PID
		}
		return lt
	}
	sort.SliceStable(rows, less)
}

func eqByColumn(col SortColumn, a, b model.ProcessRecord) bool {
	switch col {
	case SortName:
		return a.Name == b.Name
	case SortCPU:
		return a.CPUPercent == b.CPUPercent
	case SortMemPercent:
		return a.MemPercent == b.MemPercent
	case SortMemBytes:
		return a.MemBytes == b.MemBytes
	case SortReadBps:
		return a.ReadBps == b.ReadBps
	case SortWriteBps:
		return a.WriteBps == b.WriteBps
	case SortTotalRead:
		return a.TotalReadBytes == b.TotalReadBytes
	case SortTotalWrite:
		return a.TotalWriteBytes == b.TotalWriteBytes
	case SortUser:
		return userOf(a) == userOf(b)
	case SortState:
		return a.StateLong == b.StateLong
	case SortGPUUtil:
		return gpuUtilOf(a) == gpuUtilOf(b)
	case SortGPUMem:
		return gpuMemOf(a) == gpuMemOf(b)
	default:
		return a.PID == b.PID
	}
}

func userOf(r model.ProcessRecord) string {
	if r.User == nil {
		return ""
	}
	return *r.User
}

func gpuUtilOf(r model.ProcessRecord) float64 {
	if r.GPUUtilPercent == nil {
		return 0
	}
	return *r.GPUUtilPercent
}

func gpuMemOf(r model.ProcessRecord) uint64 {
	if r.GPUMemBytes == nil {
		return 0
	}
	return *r.GPUMemBytes
}

// Flat returns every record matching q, sorted per spec.
func (m *Model) Flat(q *query.Query, byCommand bool, spec SortSpec) []Row {
	rows := make([]Row, 0, len(m.ByPID))
	for _, r := range m.ByPID {
		if q == nil || q.Eval(r, byCommand) {
			rows = append(rows, Row{Record: r})
		}
	}
	sortRows(rows, spec)
	return rows
}

// Grouped partitions filtered records by name (or command) and folds a
// synthetic aggregate per group per spec.md §4.3's "Grouped view".
func (m *Model) Grouped(q *query.Query, byCommand bool, spec SortSpec) []Row {
	groups := make(map[string]*model.ProcessRecord)
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, r := range m.ByPID {
		if q != nil && !q.Eval(r, byCommand) {
			continue
		}
		key := byCommandName(r, byCommand)
		agg, ok := groups[key]
		if !ok {
			copyRec := r
			copyRec.PID = 0
			copyRec.ParentPID = nil
			groups[key] = &copyRec
			order = append(order, key)
			counts[key] = 0
		} else {
			sumInto(agg, r)
		}
		counts[key]++
	}

	rows := make([]Row, 0, len(order))
	for _, key := range order {
		agg := groups[key]
		agg.PID = int32(counts[key])
		rows = append(rows, Row{Record: *agg, Count: counts[key]})
	}
	sortRows(rows, spec)
	return rows
}

func sumInto(agg *model.ProcessRecord, r model.ProcessRecord) {
	agg.CPUPercent += r.CPUPercent
	agg.MemPercent += r.MemPercent
	agg.MemBytes += r.MemBytes
	agg.ReadBps += r.ReadBps
	agg.WriteBps += r.WriteBps
	agg.TotalReadBytes += r.TotalReadBytes
	agg.TotalWriteBytes += r.TotalWriteBytes
	agg.CPUTime += r.CPUTime
	if r.GPUUtilPercent != nil {
		v := gpuUtilOf(*agg) + *r.GPUUtilPercent
		agg.GPUUtilPercent = &v
	}
	if r.GPUMemBytes != nil {
		v := gpuMemOf(*agg) + *r.GPUMemBytes
		agg.GPUMemBytes = &v
	}
	if r.GPUMemPercent != nil {
		var base float64
		if agg.GPUMemPercent != nil {
			base = *agg.GPUMemPercent
		}
		v := base + *r.GPUMemPercent
		agg.GPUMemPercent = &v
	}
}
