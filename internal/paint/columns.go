package paint

// ColumnSpec describes one table column's width constraints, grounded on
// original_source/src/canvas/drawing_utils.rs's get_column_widths: a
// column is either hard (fixed) or soft (a min/max/desired triple).
type ColumnSpec struct {
	Hard        *int     // fixed width; nil means this column is soft
	SoftMin     *int     // lower bound for a soft column
	SoftMax     *float64 // fraction of total width (negative means "unbounded, use Desired")
	SoftDesired *int     // preferred width for a soft column
}

// ColumnWidths distributes total among cols per spec.md §6: hard columns
// take their fixed width first (capped by what's left), soft columns take
// min(max(softMax*initialWidth, softMin), softDesired, remaining); any
// column whose minimum can't be met, and everything after it, is dropped;
// trailing zero-width columns are trimmed; leftover width is then spread
// evenly across the surviving columns, earliest columns getting the extra
// unit first.
func ColumnWidths(cols []ColumnSpec, total int) []int {
	if total <= 2 {
		return nil
	}
	initial := total - 2
	left := initial
	widths := make([]int, len(cols))

	for i, col := range cols {
		if col.Hard != nil {
			taken := min(*col.Hard, left)
			if *col.Hard > taken {
				break
			}
			widths[i] = taken
			left -= taken
			left = saturatingSub1(left)
			continue
		}
		if col.SoftMax == nil || col.SoftMin == nil || col.SoftDesired == nil {
			continue
		}
		var limit int
		if *col.SoftMax < 0 {
			limit = *col.SoftDesired
		} else {
			limit = ceilInt(*col.SoftMax * float64(initial))
		}
		if *col.SoftMin > limit {
			limit = *col.SoftMin
		}
		taken := min(min(limit, *col.SoftDesired), left)
		if *col.SoftMin > taken {
			break
		}
		widths[i] = taken
		left -= taken
		left = saturatingSub1(left)
	}

	for len(widths) > 0 && widths[len(widths)-1] == 0 {
		widths = widths[:len(widths)-1]
	}
	if len(widths) == 0 {
		return widths
	}

	perSlot := left / len(widths)
	remainder := left % len(widths)
	for i := range widths {
		if i < remainder {
			widths[i] += perSlot + 1
		} else {
			widths[i] += perSlot
		}
	}
	return widths
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func saturatingSub1(v int) int {
	if v <= 0 {
		return 0
	}
	return v - 1
}

func ceilInt(f float64) int {
	i := int(f)
	if float64(i) < f {
		i++
	}
	return i
}
