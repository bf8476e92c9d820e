package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysmoni/sysmoni/internal/model"
	"github.com/sysmoni/sysmoni/internal/query"
)

func p(v int32) *int32 { return &v }

func sampleRecords() []model.ProcessRecord {
	return []model.ProcessRecord{
		{PID: 1, ParentPID: nil, Name: "init", Command: "/sbin/init", CPUPercent: 1},
		{PID: 2, ParentPID: p(1), Name: "sshd", Command: "/usr/sbin/sshd", CPUPercent: 2},
		{PID: 3, ParentPID: p(1), Name: "bash", Command: "/bin/bash", CPUPercent: 3},
		{PID: 4, ParentPID: p(2), Name: "bash", Command: "/bin/bash", CPUPercent: 4},
		{PID: 5, ParentPID: p(99), Name: "orphaned", Command: "orphaned", CPUPercent: 5}, // parent not present
	}
}

func TestIngest_BuildsChildrenAscendingByPID(t *testing.T) {
	var m Model
	m.Ingest(sampleRecords())

	assert.Equal(t, []int32{2, 3}, m.Children[1])
	assert.Equal(t, []int32{4}, m.Children[2])
	assert.ElementsMatch(t, []int32{1, 5}, m.Orphans)
}

func TestIngest_ByNameIndex(t *testing.T) {
	var m Model
	m.Ingest(sampleRecords())
	assert.ElementsMatch(t, []int32{3, 4}, m.ByName["bash"])
}

func TestFlat_FiltersAndSorts(t *testing.T) {
	var m Model
	m.Ingest(sampleRecords())

	q, err := query.Parse("cpu > 2", query.Options{})
	require.NoError(t, err)

	rows := m.Flat(q, false, SortSpec{Column: SortCPU, Desc: true})
	require.Len(t, rows, 3)
	assert.Equal(t, int32(5), rows[0].Record.PID)
	assert.Equal(t, int32(4), rows[1].Record.PID)
	assert.Equal(t, int32(3), rows[2].Record.PID)
}

func TestGrouped_SumsByName(t *testing.T) {
	var m Model
	m.Ingest(sampleRecords())

	rows := m.Grouped(nil, false, SortSpec{Column: SortName})
	var bashRow Row
	for _, r := range rows {
		if r.Record.Name == "bash" {
			bashRow = r
		}
	}
	assert.Equal(t, 2, bashRow.Count)
	assert.InDelta(t, 7.0, bashRow.Record.CPUPercent, 1e-9)
}

func TestTree_OrphanRootsHaveNoPrefix(t *testing.T) {
	var m Model
	m.Ingest(sampleRecords())

	rows := m.Tree(nil, false, SortSpec{Column: SortPID}, nil)
	require.NotEmpty(t, rows)
	assert.Equal(t, "", rows[0].Prefix)
	assert.Equal(t, int32(1), rows[0].Record.PID)
}

func TestTree_ChildrenGetBranchGlyphs(t *testing.T) {
	var m Model
	m.Ingest(sampleRecords())

	rows := m.Tree(nil, false, SortSpec{Column: SortPID}, nil)
	byPID := map[int32]Row{}
	for _, r := range rows {
		byPID[r.Record.PID] = r
	}
	// pid 2 is not last among init's children (3 follows it), so it gets ├─.
	assert.Equal(t, branchSplit, byPID[2].Prefix)
	// pid 3 is last among init's children, so it gets └─.
	assert.Equal(t, branchEnding, byPID[3].Prefix)
}

func TestTree_CollapsedNodeAggregatesDescendants(t *testing.T) {
	var m Model
	m.Ingest(sampleRecords())

	rows := m.Tree(nil, false, SortSpec{Column: SortPID}, map[int32]bool{2: true})
	var node2 Row
	found := false
	for _, r := range rows {
		if r.Record.PID == 2 {
			node2 = r
			found = true
		}
		// pid 4 (child of 2) must not appear separately once 2 is collapsed.
		assert.NotEqual(t, int32(4), r.Record.PID)
	}
	require.True(t, found)
	assert.InDelta(t, 6.0, node2.Record.CPUPercent, 1e-9) // 2 (self) + 4 (child)
	assert.Contains(t, node2.Prefix, "+")
}

func TestTree_NonMatchingAncestorOnKeptPathIsDisabled(t *testing.T) {
	var m Model
	m.Ingest(sampleRecords())

	q, err := query.Parse("bash", query.Options{})
	require.NoError(t, err)

	rows := m.Tree(q, false, SortSpec{Column: SortPID}, nil)
	byPID := map[int32]Row{}
	for _, r := range rows {
		byPID[r.Record.PID] = r
	}
	// pid 1 (init) doesn't match "bash" but is kept because pid 3/4 (bash) do.
	init, ok := byPID[1]
	require.True(t, ok)
	assert.True(t, init.Disabled)
}

func TestFlat_TieBreaksByPIDAscending(t *testing.T) {
	var m Model
	m.Ingest([]model.ProcessRecord{
		{PID: 10, Name: "a", CPUPercent: 5},
		{PID: 2, Name: "b", CPUPercent: 5},
	})
	rows := m.Flat(nil, false, SortSpec{Column: SortCPU})
	require.Len(t, rows, 2)
	assert.Equal(t, int32(2), rows[0].Record.PID)
	assert.Equal(t, int32(10), rows[1].Record.PID)
}
