package spline

import (
	"go.uber.org/zap"
)

// Extrude grows the selected geometry by one step. The new points are copies
// of the points they were extruded from; they are selected, and the points
// they were copied from are deselected.
//
// On curves every run of selected points gets a new tip after its last point,
// or before the first point of an open spline if the run starts there. A
// wholly selected open Bézier curve gets a tip at its end, a wholly selected
// poly or NURBS curve is extruded into a surface of two rows, and a wholly
// selected cyclic curve is left alone.
//
// On surfaces the fully selected rows and columns are duplicated, see
// [selectionIntervals]. A surface with a partially selected row and column
// is skipped.
func (ed *EditNurb) Extrude(flag Flag) (bool, error) {
	if !ed.anySelected(flag) {
		return false, invalidSelection("extrude: nothing selected")
	}
	changed := false
	for _, sp := range ed.Nurbs {
		if sp.SelectCount(flag) == 0 {
			continue
		}
		var ok bool
		if sp.IsSurface() {
			ok = ed.extrudeSurface(sp, flag)
		} else {
			ok = ed.extrudeCurve(sp, flag)
		}
		changed = changed || ok
	}
	if !changed {
		return false, invalidSelection("extrude: selection cannot be extruded")
	}
	ed.touch()
	return true, nil
}

func (ed *EditNurb) extrudeCurve(sp *Spline, flag Flag) bool {
	n := sp.Len()
	sel := selectionMask(sp, flag)
	cyclic := sp.CyclicU()

	// tipAfter[i] adds a copy of point i after it; tipFirst adds a copy of
	// point 0 before it.
	tipAfter := make([]bool, n)
	tipFirst := false
	if countTrue(sel) == n {
		switch {
		case n == 1:
			tipAfter[0] = true
		case cyclic:
			logger().Debug("cannot extrude a wholly selected cyclic curve")
			return false
		case !sp.IsBezier():
			ed.extrudeCurveToSurface(sp, flag)
			return true
		default:
			tipAfter[n-1] = true
		}
	} else {
		for _, r := range selectedRuns(sel, cyclic) {
			if !cyclic && r.start == 0 {
				tipFirst = true
			} else {
				tipAfter[r.last(n)] = true
			}
		}
	}

	if sp.IsBezier() {
		out := make([]BezTriple, 0, n+countTrue(tipAfter)+1)
		for i, b := range sp.Bezier {
			if i == 0 && tipFirst {
				out = append(out, ed.dupBezt(b))
			}
			tip := b
			b.DeselectAll(flag)
			out = append(out, b)
			if tipAfter[i] {
				out = append(out, ed.dupBezt(tip))
			}
		}
		sp.setBezier(out)
		sp.CalcHandles()
		return true
	}

	out := make([]GridPoint, 0, n+countTrue(tipAfter)+1)
	for i, p := range sp.Points {
		if i == 0 && tipFirst {
			out = append(out, ed.dupBP(p))
		}
		tip := p
		p.F &^= flag
		out = append(out, p)
		if tipAfter[i] {
			out = append(out, ed.dupBP(tip))
		}
	}
	sp.setGrid(out, len(out), 1)
	return true
}

// extrudeCurveToSurface turns a wholly selected poly or NURBS curve into a
// surface of two rows. The first row is the original curve, deselected; the
// second row is a selected copy.
func (ed *EditNurb) extrudeCurveToSurface(sp *Spline, flag Flag) {
	n := len(sp.Points)
	pts := make([]GridPoint, 0, 2*n)
	for _, p := range sp.Points {
		p.F &^= flag
		pts = append(pts, p)
	}
	for _, p := range sp.Points {
		pts = append(pts, ed.dupBP(p))
	}
	sp.OrderV = 2
	sp.setGrid(pts, n, 2)
}

func (ed *EditNurb) extrudeSurface(sp *Spline, flag Flag) bool {
	uIvs, okU := selectionIntervals(sp, U, flag)
	vIvs, okV := selectionIntervals(sp, V, flag)
	if !okU || !okV {
		logger().Debug("surface selection cannot be extruded, skipping",
			zap.Int("pntsu", sp.PntsU), zap.Int("pntsv", sp.PntsV))
		return false
	}
	pntsu, pntsv := intervalsLen(uIvs), intervalsLen(vIvs)
	if pntsu == sp.PntsU && pntsv == sp.PntsV {
		return false
	}

	type slot struct {
		src      int
		selected bool
	}
	slots := make([]slot, 0, pntsu*pntsv)
	for _, viv := range vIvs {
		for v := viv.start; v <= viv.end; v++ {
			for _, uiv := range uIvs {
				for u := uiv.start; u <= uiv.end; u++ {
					slots = append(slots, slot{v*sp.PntsU + u, viv.selected || uiv.selected})
				}
			}
		}
	}

	// A point that appears several times keeps its id at its first unselected
	// occurrence, or at its first occurrence if all of them are selected.
	owner := make(map[int]int, len(sp.Points))
	for i, s := range slots {
		j, ok := owner[s.src]
		if !ok || (slots[j].selected && !s.selected) {
			owner[s.src] = i
		}
	}

	pts := make([]GridPoint, len(slots))
	for i, s := range slots {
		p := sp.Points[s.src]
		if owner[s.src] != i {
			p = ed.dupBP(p)
		}
		if s.selected {
			p.F |= flag
		} else {
			p.F &^= flag
		}
		pts[i] = p
	}
	sp.setGrid(pts, pntsu, pntsv)
	return true
}
