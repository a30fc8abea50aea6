package spline

// A run is a maximal sequence of consecutive selected points of a curve. On
// cyclic splines a run may wrap around the end of the array, so the points
// of a run are start, start+1, … modulo the spline's length.
type run struct {
	start, n int
}

func (r run) at(i, length int) int {
	return (r.start + i) % length
}

func (r run) last(length int) int {
	return (r.start + r.n - 1) % length
}

// selectionMask returns the selection state of every point of sp.
func selectionMask(sp *Spline, flag Flag) []bool {
	sel := make([]bool, sp.Len())
	for i := range sel {
		sel[i] = sp.Selected(i, flag)
	}
	return sel
}

func countTrue(bs []bool) int {
	n := 0
	for _, b := range bs {
		if b {
			n++
		}
	}
	return n
}

// selectedRuns returns the runs of sel. If every point is selected the
// result is a single run starting at 0.
func selectedRuns(sel []bool, cyclic bool) []run {
	n := len(sel)
	var runs []run
	for i := 0; i < n; {
		if !sel[i] {
			i++
			continue
		}
		j := i
		for j < n && sel[j] {
			j++
		}
		runs = append(runs, run{i, j - i})
		i = j
	}
	if cyclic && len(runs) > 1 && sel[0] && sel[n-1] {
		// Join the run at the end with the one at the start.
		first, last := runs[0], runs[len(runs)-1]
		runs = runs[1 : len(runs)-1]
		runs = append(runs, run{last.start, last.n + first.n})
	}
	return runs
}

// deselectAll clears flag on every point of sp.
func deselectAll(sp *Spline, flag Flag) {
	for i := range sp.Len() {
		sp.SetSelected(i, flag, false)
	}
}

// anySelected reports whether any point of any spline has flag set.
func (ed *EditNurb) anySelected(flag Flag) bool {
	for _, sp := range ed.Nurbs {
		for i := range sp.Len() {
			if sp.Selected(i, flag) {
				return true
			}
		}
	}
	return false
}

// SelectAll sets or clears flag on every point of the session.
func (ed *EditNurb) SelectAll(flag Flag, on bool) {
	for _, sp := range ed.Nurbs {
		for i := range sp.Len() {
			sp.SetSelected(i, flag, on)
		}
	}
}
