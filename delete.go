package spline

import (
	"go.uber.org/zap"
)

// DeleteVertices removes the selected points. Curves that lose all their
// points, or are left with fewer than two, are removed entirely. On surfaces
// only whole rows or whole columns can be removed; a surface whose selection
// is anything else is left alone.
func (ed *EditNurb) DeleteVertices(flag Flag) (bool, error) {
	before := len(ed.Nurbs)
	ed.removeSplines(func(sp *Spline) bool {
		return sp.Len() > 0 && sp.SelectCount(flag) == sp.Len()
	})
	changed := len(ed.Nurbs) != before

	degenerate := make(map[*Spline]bool)
	for _, sp := range ed.Nurbs {
		if sp.SelectCount(flag) == 0 {
			continue
		}
		old := sp.Copy()
		var ok bool
		if sp.IsSurface() {
			ok = deleteSurfaceVertices(sp, flag)
		} else {
			ok = deleteCurveVertices(sp, flag)
			if ok && sp.Len() < 2 {
				degenerate[sp] = true
			}
		}
		if ok {
			changed = true
			ed.forgetDropped(old)
		}
	}
	if len(degenerate) > 0 {
		ed.removeSplines(func(sp *Spline) bool { return degenerate[sp] })
	}
	ed.touch()
	return changed, nil
}

func deleteCurveVertices(sp *Spline, flag Flag) bool {
	if sp.IsBezier() {
		out := make([]BezTriple, 0, len(sp.Bezier))
		for _, b := range sp.Bezier {
			if !b.Selected(flag) {
				out = append(out, b)
			}
		}
		if len(out) == len(sp.Bezier) {
			return false
		}
		sp.setBezier(out)
		sp.CalcHandles()
		return true
	}
	out := make([]GridPoint, 0, len(sp.Points))
	for _, p := range sp.Points {
		if !p.Selected(flag) {
			out = append(out, p)
		}
	}
	if len(out) == len(sp.Points) {
		return false
	}
	sp.setGrid(out, len(out), 1)
	return true
}

// deleteSurfaceVertices removes the fully selected rows of sp, or failing
// that its fully selected columns. Either is only done if every other leg
// along the same axis is entirely unselected.
func deleteSurfaceVertices(sp *Spline, flag Flag) bool {
	if keep, ok := keptLegs(sp, V, flag); ok {
		pts := make([]GridPoint, 0, len(sp.Points))
		rows := 0
		for v := range sp.PntsV {
			if !keep[v] {
				continue
			}
			rows++
			pts = append(pts, sp.Points[v*sp.PntsU:(v+1)*sp.PntsU]...)
		}
		sp.setGrid(pts, sp.PntsU, rows)
		return true
	}
	if keep, ok := keptLegs(sp, U, flag); ok {
		cols := countTrue(keep)
		pts := make([]GridPoint, 0, cols*sp.PntsV)
		for v := range sp.PntsV {
			for u := range sp.PntsU {
				if keep[u] {
					pts = append(pts, *sp.Grid(u, v))
				}
			}
		}
		if cols == 1 {
			// A single column is a curve along the former V axis.
			pntsv := sp.PntsV
			sp.OrderU, sp.OrderV = sp.OrderV, sp.OrderU
			sp.ResolU, sp.ResolV = sp.ResolV, sp.ResolU
			sp.FlagU, sp.FlagV = sp.FlagV, sp.FlagU
			sp.setGrid(pts, pntsv, 1)
			return true
		}
		sp.setGrid(pts, cols, sp.PntsV)
		return true
	}
	logger().Debug("surface selection is not a set of whole rows or columns, skipping",
		zap.Int("pntsu", sp.PntsU), zap.Int("pntsv", sp.PntsV))
	return false
}

// keptLegs returns the legs along axis that survive deleting the fully
// selected ones. It fails if a leg is partially selected or no leg is fully
// selected.
func keptLegs(sp *Spline, axis Axis, flag Flag) ([]bool, bool) {
	counts, legLen := legCounts(sp, axis, flag)
	keep := make([]bool, len(counts))
	deleted := 0
	for i, c := range counts {
		switch c {
		case 0:
			keep[i] = true
		case legLen:
			deleted++
		default:
			return nil, false
		}
	}
	return keep, deleted > 0
}

// DeleteSegments removes the segments whose two end points are both
// selected. Every maximal sequence of points still joined by segments
// becomes a spline of its own; points left without any segment are removed.
// A cyclic spline that loses a segment becomes open, starting after the
// first removed segment. Surfaces are cut between fully selected rows, then
// between fully selected columns.
func (ed *EditNurb) DeleteSegments(flag Flag) (bool, error) {
	return ed.deleteSegments(flag, nil), nil
}

// deleteSegments cuts every spline not in skip and reports whether any was
// cut.
func (ed *EditNurb) deleteSegments(flag Flag, skip map[*Spline]bool) bool {
	var (
		out     []*Spline
		old     []*Spline
		changed bool
	)
	for _, sp := range ed.Nurbs {
		if skip[sp] {
			out = append(out, sp)
			continue
		}
		var pieces []*Spline
		var ok bool
		if sp.IsSurface() {
			pieces, ok = cutSurface(sp, flag)
		} else {
			pieces, ok = cutCurve(sp, flag)
		}
		if !ok {
			out = append(out, sp)
			continue
		}
		changed = true
		old = append(old, sp)
		out = append(out, pieces...)
	}
	if !changed {
		return false
	}
	ed.Nurbs = out
	ed.forgetDropped(old...)
	return true
}

// segmentPieces splits the n legs of one axis at cut segments. Segment i
// joins leg i and leg i+1 (modulo n on cyclic axes); it is cut if both of its
// legs are selected. The result lists the legs of every piece of at least
// two legs, in order.
func segmentPieces(n int, cyclic bool, selected func(int) bool) (pieces [][]int, cut bool) {
	segs := n - 1
	if cyclic && n > 1 {
		segs = n
	}
	first := -1
	for i := range segs {
		if selected(i) && selected((i+1)%n) {
			first = i
			break
		}
	}
	if first == -1 {
		return nil, false
	}

	start := 0
	if cyclic && segs == n {
		// Walk around once, beginning just after the first cut.
		start = first + 1
	}
	cur := []int{start % n}
	for k := 1; k < n; k++ {
		prev, i := (start+k-1)%n, (start+k)%n
		if selected(prev) && selected(i) {
			if len(cur) >= 2 {
				pieces = append(pieces, cur)
			}
			cur = nil
		}
		cur = append(cur, i)
	}
	if len(cur) >= 2 {
		pieces = append(pieces, cur)
	}
	return pieces, true
}

func cutCurve(sp *Spline, flag Flag) ([]*Spline, bool) {
	n := sp.Len()
	legs, ok := segmentPieces(n, sp.CyclicU(), func(i int) bool { return sp.Selected(i, flag) })
	if !ok {
		return nil, false
	}
	out := make([]*Spline, 0, len(legs))
	for _, leg := range legs {
		piece := sp.copyShape(len(leg), 1)
		piece.FlagU &^= Cyclic
		if sp.IsBezier() {
			pts := make([]BezTriple, len(leg))
			for j, i := range leg {
				pts[j] = sp.Bezier[i]
			}
			piece.setBezier(pts)
			piece.CalcHandles()
		} else {
			pts := make([]GridPoint, len(leg))
			for j, i := range leg {
				pts[j] = sp.Points[i]
			}
			piece.setGrid(pts, len(pts), 1)
		}
		out = append(out, piece)
	}
	return out, true
}

func cutSurface(sp *Spline, flag Flag) ([]*Spline, bool) {
	var cut bool
	rows := []*Spline{sp}
	full := fullLegs(sp, V, flag)
	if legs, ok := segmentPieces(sp.PntsV, sp.CyclicV(), func(v int) bool { return full[v] }); ok {
		cut = true
		rows = rows[:0]
		for _, leg := range legs {
			piece := sp.copyShape(sp.PntsU, len(leg))
			piece.FlagV &^= Cyclic
			pts := make([]GridPoint, 0, len(leg)*sp.PntsU)
			for _, v := range leg {
				pts = append(pts, sp.Points[v*sp.PntsU:(v+1)*sp.PntsU]...)
			}
			piece.setGrid(pts, sp.PntsU, len(leg))
			rows = append(rows, piece)
		}
	}

	var out []*Spline
	for _, r := range rows {
		full := fullLegs(r, U, flag)
		legs, ok := segmentPieces(r.PntsU, r.CyclicU(), func(u int) bool { return full[u] })
		if !ok {
			out = append(out, r)
			continue
		}
		cut = true
		for _, leg := range legs {
			piece := r.copyShape(len(leg), r.PntsV)
			piece.FlagU &^= Cyclic
			pts := make([]GridPoint, 0, len(leg)*r.PntsV)
			for v := range r.PntsV {
				for _, u := range leg {
					pts = append(pts, *r.Grid(u, v))
				}
			}
			piece.setGrid(pts, len(leg), r.PntsV)
			out = append(out, piece)
		}
	}
	return out, cut
}
