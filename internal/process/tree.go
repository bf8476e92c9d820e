package process

import (
	"github.com/sysmoni/sysmoni/internal/query"
)

const (
	branchVertical = "│  "
	branchSplit    = "├─ "
	branchEnding   = "└─ "
)

// Tree performs the DFS from orphans described in spec.md §4.3's "Tree
// view": a subtree survives if any node in it matches q; non-matching
// nodes on a kept path are emitted disabled; collapsed nodes aggregate
// their descendants' metrics into one displayed row. Each row's prefix
// is built from its ancestors' last-among-siblings state, mirroring
// bottom's get_tree_table_data branch-glyph construction.
func (m *Model) Tree(q *query.Query, byCommand bool, spec SortSpec, collapsed map[int32]bool) []Row {
	matches := make(map[int32]bool, len(m.ByPID))
	for pid, r := range m.ByPID {
		matches[pid] = q == nil || q.Eval(r, byCommand)
	}

	// keep[pid] is true if pid itself or any descendant matches.
	keep := make(map[int32]bool, len(m.ByPID))
	var computeKeep func(pid int32) bool
	computeKeep = func(pid int32) bool {
		if v, ok := keep[pid]; ok {
			return v
		}
		k := matches[pid]
		for _, c := range m.Children[pid] {
			if computeKeep(c) {
				k = true
			}
		}
		keep[pid] = k
		return k
	}
	for pid := range m.ByPID {
		computeKeep(pid)
	}

	// sortedKept returns pids' kept members as Rows sorted by spec, then
	// their PIDs in that order.
	sortedKept := func(pids []int32) []int32 {
		rows := make([]Row, 0, len(pids))
		for _, pid := range pids {
			if keep[pid] {
				rows = append(rows, Row{Record: m.ByPID[pid]})
			}
		}
		sortRows(rows, spec)
		out := make([]int32, len(rows))
		for i, r := range rows {
			out[i] = r.Record.PID
		}
		return out
	}

	var out []Row
	var walk func(pid int32, depth int, prefix string, isLast bool)
	walk = func(pid int32, depth int, prefix string, isLast bool) {
		rec := m.ByPID[pid]
		disabled := !matches[pid]

		rowPrefix := ""
		if depth > 0 {
			glyph := branchSplit
			if isLast {
				glyph = branchEnding
			}
			rowPrefix = prefix + glyph
		}

		if collapsed[pid] {
			agg := rec
			var sumSubtree func(pids []int32)
			sumSubtree = func(pids []int32) {
				for _, c := range sortedKept(pids) {
					sumInto(&agg, m.ByPID[c])
					sumSubtree(m.Children[c])
				}
			}
			sumSubtree(m.Children[pid])

			p := rowPrefix
			if depth == 0 {
				p = "+ "
			} else {
				p = rowPrefix + "+ "
			}
			out = append(out, Row{Record: agg, Prefix: p, Disabled: disabled, Depth: depth})
			return
		}

		out = append(out, Row{Record: rec, Prefix: rowPrefix, Disabled: disabled, Depth: depth})

		childPrefix := childPrefixFor(depth, prefix, isLast)
		children := sortedKept(m.Children[pid])
		for i, c := range children {
			walk(c, depth+1, childPrefix, i == len(children)-1)
		}
	}

	roots := sortedKept(m.Orphans)
	for i, pid := range roots {
		walk(pid, 0, "", i == len(roots)-1)
	}
	return out
}

// childPrefixFor computes the prefix a node's children inherit: root
// children start with an empty ancestor prefix; deeper children extend
// the parent's own prefix with a continuation glyph based on whether the
// parent was last among its own siblings.
func childPrefixFor(parentDepth int, parentPrefix string, parentIsLast bool) string {
	if parentDepth == 0 {
		return ""
	}
	if parentIsLast {
		return parentPrefix + "   "
	}
	return parentPrefix + branchVertical
}
