package spline

// An interval is an inclusive range of legs along one axis of a grid. A leg
// is a column (axis U) or a row (axis V).
type interval struct {
	start, end int
	selected   bool
}

func (iv interval) len() int {
	return iv.end - iv.start + 1
}

// legCounts returns, for every leg along axis, the number of its points that
// have flag set, and the number of points per leg.
func legCounts(sp *Spline, axis Axis, flag Flag) (counts []int, legLen int) {
	if axis == U {
		counts = make([]int, sp.PntsU)
		legLen = sp.PntsV
	} else {
		counts = make([]int, sp.PntsV)
		legLen = sp.PntsU
	}
	for v := range sp.PntsV {
		for u := range sp.PntsU {
			if sp.Grid(u, v).Selected(flag) {
				if axis == U {
					counts[u]++
				} else {
					counts[v]++
				}
			}
		}
	}
	return counts, legLen
}

// fullLegs reports for every leg along axis whether all of its points have
// flag set.
func fullLegs(sp *Spline, axis Axis, flag Flag) []bool {
	counts, legLen := legCounts(sp, axis, flag)
	full := make([]bool, len(counts))
	for i, c := range counts {
		full[i] = c == legLen
	}
	return full
}

// selectionIntervals splits the legs of sp along axis into intervals whose
// concatenation describes the grid after extrusion.
//
// Legs are classified as fully selected or not. Every leg that isn't fully
// selected must have the same number of selected points; otherwise the
// opposite axis is partially selected and the second return value is false.
// A new interval starts wherever the classification flips, and the leg at
// the flip on the selected side belongs to both neighboring intervals, so it
// is duplicated. Intervals never extend past the ends of the axis, and an
// axis with a single leg is always a single interval.
//
// The lengths of the intervals sum to the new number of legs.
func selectionIntervals(sp *Spline, axis Axis, flag Flag) ([]interval, bool) {
	counts, legLen := legCounts(sp, axis, flag)
	n := len(counts)
	full := make([]bool, n)
	notFull := -1
	for j, c := range counts {
		if c == legLen {
			full[j] = true
			continue
		}
		if notFull == -1 {
			notFull = c
		} else if notFull != c {
			return nil, false
		}
	}
	if n == 1 {
		return []interval{{0, 0, full[0]}}, true
	}

	ivs := []interval{{start: 0, selected: full[0]}}
	for j := 1; j < n; j++ {
		if full[j] == full[j-1] {
			continue
		}
		cur := &ivs[len(ivs)-1]
		if full[j] {
			cur.end = j
			ivs = append(ivs, interval{start: j, selected: true})
		} else {
			cur.end = j - 1
			ivs = append(ivs, interval{start: j - 1, selected: false})
		}
	}
	ivs[len(ivs)-1].end = n - 1
	return ivs, true
}

// intervalsLen returns the sum of the lengths of ivs.
func intervalsLen(ivs []interval) int {
	n := 0
	for _, iv := range ivs {
		n += iv.len()
	}
	return n
}
