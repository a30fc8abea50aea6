package spline

import (
	"go.uber.org/zap"
)

// Duplicate copies the selected geometry into new splines appended to the
// session. Every run of selected curve points becomes an open curve; a wholly
// selected cyclic curve stays cyclic. On surfaces every rectangular block of
// selected points becomes a new surface. The copies are selected and the
// originals deselected. Copies carry the correspondence entries of the
// points they were copied from.
func (ed *EditNurb) Duplicate(flag Flag) (bool, error) {
	copies, _, err := ed.duplicate(flag, false)
	if err != nil {
		return false, err
	}
	ed.Nurbs = append(ed.Nurbs, copies...)
	ed.touch()
	return true, nil
}

// Split separates the selected geometry from the rest: it is copied into new
// splines and the segments between selected points are deleted from the
// originals. On surfaces the selection must consist of whole rows or whole
// columns; surfaces whose selection is not are left untouched.
func (ed *EditNurb) Split(flag Flag) (bool, error) {
	copies, skipped, err := ed.duplicate(flag, true)
	if err != nil {
		return false, err
	}
	ed.deleteSegments(flag, skipped)
	ed.Nurbs = append(ed.Nurbs, copies...)
	ed.touch()
	return true, nil
}

// duplicate builds the copies for Duplicate and Split. Originals are
// deselected unless splitting. When splitting, curve points that are about
// to be deleted hand their entries over to their copies; every other copy
// gets a clone of its original's entry. The splines whose selection could
// not be copied are returned as well.
func (ed *EditNurb) duplicate(flag Flag, split bool) ([]*Spline, map[*Spline]bool, error) {
	if !ed.anySelected(flag) {
		return nil, nil, invalidSelection("duplicate: nothing selected")
	}
	var copies []*Spline
	skipped := make(map[*Spline]bool)
	for _, sp := range ed.Nurbs {
		if sp.SelectCount(flag) == 0 {
			continue
		}
		var cps []*Spline
		if sp.IsSurface() {
			if split && !selectionIsWholeLegs(sp, flag) {
				logger().Debug("split: surface selection is not whole rows or columns, skipping")
				skipped[sp] = true
				continue
			}
			cps = ed.duplicateBlocks(sp, flag)
		} else {
			cps = ed.duplicateRuns(sp, flag, split)
		}
		if len(cps) > 0 && !split {
			deselectAll(sp, flag)
		}
		copies = append(copies, cps...)
	}
	if len(copies) == 0 {
		return nil, nil, invalidSelection("duplicate: selection cannot be copied")
	}
	return copies, skipped, nil
}

// copyEntry gives the point to a clone of the entry of from.
func (ed *EditNurb) copyEntry(from, to PointID) {
	if e := ed.KeyIndex.Lookup(from); e != nil {
		ed.KeyIndex.Insert(to, e.clone())
	}
}

func (ed *EditNurb) duplicateRuns(sp *Spline, flag Flag, split bool) []*Spline {
	n := sp.Len()
	sel := selectionMask(sp, flag)
	whole := countTrue(sel) == n
	var out []*Spline
	for _, r := range selectedRuns(sel, sp.CyclicU()) {
		cp := sp.copyShape(r.n, 1)
		if !whole {
			cp.FlagU &^= Cyclic
		}
		var from, to, doomedFrom, doomedTo []PointID
		if sp.IsBezier() {
			pts := make([]BezTriple, r.n)
			for k := range r.n {
				pts[k] = ed.dupBezt(sp.Bezier[r.at(k, n)])
			}
			cp.setBezier(pts)
		} else {
			pts := make([]GridPoint, r.n)
			for k := range r.n {
				pts[k] = ed.dupBP(sp.Points[r.at(k, n)])
			}
			cp.setGrid(pts, r.n, 1)
		}
		for k := range r.n {
			i := r.at(k, n)
			if split && !survivesSplit(sel, i, sp.CyclicU()) {
				doomedFrom = append(doomedFrom, sp.ID(i))
				doomedTo = append(doomedTo, cp.ID(k))
				continue
			}
			from = append(from, sp.ID(i))
			to = append(to, cp.ID(k))
		}
		for k := range from {
			ed.copyEntry(from[k], to[k])
		}
		ed.KeyIndex.RekeyRun(doomedFrom, doomedTo)
		out = append(out, cp)
	}
	return out
}

// survivesSplit reports whether selected point i of a curve is kept when the
// segments between selected points are deleted: it needs an unselected
// neighbor, or no neighbors at all.
func survivesSplit(sel []bool, i int, cyclic bool) bool {
	n := len(sel)
	if n == 1 {
		return true
	}
	prev, next := i-1, i+1
	if cyclic {
		prev, next = mod(prev, n), next%n
	}
	return (prev >= 0 && !sel[prev]) || (next < n && !sel[next])
}

// selectionIsWholeLegs reports whether the selection of a surface consists
// of whole rows or of whole columns.
func selectionIsWholeLegs(sp *Spline, flag Flag) bool {
	for _, axis := range []Axis{U, V} {
		counts, legLen := legCounts(sp, axis, flag)
		ok := true
		for _, c := range counts {
			if c != 0 && c != legLen {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// duplicateBlocks copies every rectangular block of selected points of a
// surface. Surfaces whose selected columns hold differing numbers of selected
// points are ragged and skipped.
func (ed *EditNurb) duplicateBlocks(sp *Spline, flag Flag) []*Spline {
	counts, _ := legCounts(sp, U, flag)
	rows := 0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		if rows != 0 && c != rows {
			logger().Debug("duplicate: ragged surface selection, skipping",
				zap.Int("pntsu", sp.PntsU), zap.Int("pntsv", sp.PntsV))
			return nil
		}
		rows = c
	}

	visited := make([]bool, len(sp.Points))
	var out []*Spline
	for v0 := range sp.PntsV {
		for u0 := range sp.PntsU {
			i := v0*sp.PntsU + u0
			if visited[i] || !sp.Points[i].Selected(flag) {
				continue
			}
			w := 0
			for u0+w < sp.PntsU && sp.Grid(u0+w, v0).Selected(flag) {
				w++
			}
			h := 0
			for v0+h < sp.PntsV && sp.Grid(u0, v0+h).Selected(flag) {
				h++
			}
			for v := v0; v < v0+h; v++ {
				for u := u0; u < u0+w; u++ {
					visited[v*sp.PntsU+u] = true
				}
			}
			if w*h < 2 {
				continue
			}

			cp := sp.copyShape(w, h)
			if w != sp.PntsU {
				cp.FlagU &^= Cyclic
			}
			if h != sp.PntsV {
				cp.FlagV &^= Cyclic
			}
			pts := make([]GridPoint, 0, w*h)
			for v := v0; v < v0+h; v++ {
				for u := u0; u < u0+w; u++ {
					orig := sp.Grid(u, v)
					p := ed.dupBP(*orig)
					ed.copyEntry(orig.ID, p.ID)
					pts = append(pts, p)
				}
			}
			if h == 1 {
				cp.OrderV = 1
			}
			cp.setGrid(pts, w, h)
			out = append(out, cp)
		}
	}
	return out
}
