package spline

import (
	"go.uber.org/zap"
)

// MakeSegment joins two curves at their selected ends, closes a single open
// curve whose two ends are selected, or merges surfaces along their selected
// edge columns.
//
// When joining curves, the curve with its first point selected is extended at
// the front by the curve with its last point selected. A curve whose only
// selected end is the wrong one is reversed first. The curve extended at the
// front keeps its direction.
func (ed *EditNurb) MakeSegment(flag Flag) (bool, error) {
	var sel []*Spline
	surfaces := false
	for _, sp := range ed.Nurbs {
		if sp.SelectCount(flag) == 0 {
			continue
		}
		sel = append(sel, sp)
		surfaces = surfaces || sp.IsSurface()
	}
	if len(sel) == 0 {
		return false, invalidSelection("make segment: nothing selected")
	}
	if surfaces {
		return ed.mergeSurfaces(sel, flag)
	}
	return ed.joinCurves(flag)
}

func (ed *EditNurb) joinCurves(flag Flag) (bool, error) {
	var (
		nu1, nu2         *Spline
		switch1, switch2 bool
	)
	for _, sp := range ed.Nurbs {
		if sp.IsSurface() || sp.CyclicU() || sp.Len() == 0 {
			continue
		}
		first := sp.Selected(0, flag)
		last := sp.Selected(sp.Len()-1, flag)
		switch {
		case last:
			if nu2 == nil {
				nu2 = sp
			} else if nu1 == nil {
				nu1 = sp
				switch1 = !first
			}
		case first:
			if nu1 == nil {
				nu1 = sp
			} else if nu2 == nil {
				nu2 = sp
				switch2 = true
			}
		}
		if nu1 != nil && nu2 != nil {
			break
		}
	}

	switch {
	case nu1 != nil && nu2 != nil:
		if nu1.Type != nu2.Type {
			return false, invalidSelection("make segment: cannot join %s and %s splines", nu1.Type, nu2.Type)
		}
		if switch1 {
			ed.switchDirection(nu1)
		}
		if switch2 {
			ed.switchDirection(nu2)
		}
		if nu1.IsBezier() {
			nu1.setBezier(append(append([]BezTriple(nil), nu2.Bezier...), nu1.Bezier...))
			nu1.CalcHandles()
		} else {
			nu1.setGrid(append(append([]GridPoint(nil), nu2.Points...), nu1.Points...), len(nu1.Points)+len(nu2.Points), 1)
		}
		// The points of nu2 live on in nu1, so nu2 goes without touching
		// their entries.
		for i, sp := range ed.Nurbs {
			if sp == nu2 {
				ed.Nurbs = append(ed.Nurbs[:i], ed.Nurbs[i+1:]...)
				break
			}
		}
		ed.touch()
		return true, nil

	case nu2 != nil && nu1 == nil && nu2.Len() > 1 && nu2.Selected(0, flag):
		nu2.FlagU |= Cyclic
		nu2.calcKnots()
		nu2.CalcHandles()
		return true, nil
	}
	return false, invalidSelection("make segment: select the ends of one or two open curves")
}

// rotateGrid turns the grid of sp by a quarter turn, exchanging its U and V
// axes. Four turns restore the original grid.
func rotateGrid(sp *Spline) {
	oldU := sp.PntsU
	sp.PntsU, sp.PntsV = sp.PntsV, sp.PntsU
	sp.OrderU, sp.OrderV = sp.OrderV, sp.OrderU
	sp.ResolU, sp.ResolV = sp.ResolV, sp.ResolU
	sp.FlagU, sp.FlagV = sp.FlagV, sp.FlagU
	sp.KnotsU, sp.KnotsV = sp.KnotsV, sp.KnotsU

	old := sp.Points
	pts := make([]GridPoint, len(old))
	for v := range sp.PntsV {
		for u := range sp.PntsU {
			// Row u of the old grid counted from the end, column v.
			pts[v*sp.PntsU+u] = old[(sp.PntsU-u-1)*oldU+v]
		}
	}
	sp.Points = pts
}

// columnSelected reports whether every point of column u has flag set.
func columnSelected(sp *Spline, u int, flag Flag) bool {
	for v := range sp.PntsV {
		if !sp.Grid(u, v).Selected(flag) {
			return false
		}
	}
	return true
}

// orientGrid rotates sp until column u, as returned by col, is fully
// selected. It reports false, leaving sp as it was, if no orientation
// works.
func orientGrid(sp *Spline, col func(*Spline) int, flag Flag) bool {
	for range 4 {
		if columnSelected(sp, col(sp), flag) {
			return true
		}
		rotateGrid(sp)
	}
	return false
}

func firstColumn(*Spline) int   { return 0 }
func lastColumn(sp *Spline) int { return sp.PntsU - 1 }

// mergeSurfaces joins every selected grid to the first one. The first grid's
// last column must be selected and the other grid's first column, after
// rotating either as needed. All work happens on copies, so nothing is
// modified if any pair can't be merged.
func (ed *EditNurb) mergeSurfaces(sel []*Spline, flag Flag) (bool, error) {
	if len(sel) < 2 {
		return false, invalidSelection("merge: too few selections to merge")
	}
	for _, sp := range sel {
		if sp.IsBezier() {
			return false, invalidSelection("merge: cannot merge Bézier curves with surfaces")
		}
	}

	nu1 := sel[0].Copy()
	for _, orig := range sel[1:] {
		nu2 := orig.Copy()
		if !orientGrid(nu1, lastColumn, flag) || !orientGrid(nu2, firstColumn, flag) {
			logger().Debug("merge: no fully selected edge column",
				zap.Int("pntsu", nu2.PntsU), zap.Int("pntsv", nu2.PntsV))
			return false, invalidSelection("merge: surfaces need a fully selected edge")
		}
		if nu1.PntsV != nu2.PntsV {
			return false, ErrResolutionMismatch
		}
		mergeGrids(nu1, nu2)
	}

	out := ed.Nurbs[:0]
	for _, sp := range ed.Nurbs {
		switch {
		case sp == sel[0]:
			out = append(out, nu1)
		case containsSpline(sel[1:], sp):
			// Merged into nu1; its points live on there.
		default:
			out = append(out, sp)
		}
	}
	clear(ed.Nurbs[len(out):])
	ed.Nurbs = out
	ed.touch()
	return true, nil
}

func containsSpline(list []*Spline, sp *Spline) bool {
	for _, s := range list {
		if s == sp {
			return true
		}
	}
	return false
}

// mergeGrids appends the columns of nu2 to nu1. The rows of nu2 are flipped
// if that brings the joined edges closer together.
func mergeGrids(nu1, nu2 *Spline) {
	pntsv := nu1.PntsV
	last := nu1.PntsU - 1
	var same, flipped float64
	for v := range pntsv {
		p := nu1.Grid(last, v).Vec
		same += p.Distance(nu2.Grid(0, v).Vec)
		flipped += p.Distance(nu2.Grid(0, pntsv-1-v).Vec)
	}
	flip := flipped < same

	pntsu := nu1.PntsU + nu2.PntsU
	pts := make([]GridPoint, 0, pntsu*pntsv)
	for v := range pntsv {
		pts = append(pts, nu1.Points[v*nu1.PntsU:(v+1)*nu1.PntsU]...)
		v2 := v
		if flip {
			v2 = pntsv - 1 - v
		}
		pts = append(pts, nu2.Points[v2*nu2.PntsU:(v2+1)*nu2.PntsU]...)
	}
	if nu1.Type == NURBS {
		if nu1.OrderU < 3 && nu1.OrderU < pntsu {
			nu1.OrderU++
		}
		if nu1.OrderV < 3 && nu1.OrderV < pntsv {
			nu1.OrderV++
		}
	}
	nu1.setGrid(pts, pntsu, pntsv)
}
