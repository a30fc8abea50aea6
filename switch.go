package spline

import (
	"slices"
)

// SwitchDirection reverses the point order of every spline with a selected
// point. Bézier triples also exchange their handles, and curve points negate
// their tilt so that the curve twists the same way when traversed backwards.
// Surfaces reverse every row. Switching twice restores the original data.
func (ed *EditNurb) SwitchDirection(flag Flag) (bool, error) {
	changed := false
	for _, sp := range ed.Nurbs {
		if sp.SelectCount(flag) == 0 || sp.Len() < 2 {
			continue
		}
		ed.switchDirection(sp)
		changed = true
	}
	if changed {
		ed.touch()
	}
	return changed, nil
}

// switchDirection reverses sp and toggles the switched state of the
// correspondence entries of curve points.
func (ed *EditNurb) switchDirection(sp *Spline) {
	switch {
	case sp.IsBezier():
		slices.Reverse(sp.Bezier)
		for i := range sp.Bezier {
			b := &sp.Bezier[i]
			b.Vec[0], b.Vec[2] = b.Vec[2], b.Vec[0]
			b.H1, b.H2 = b.H2, b.H1
			b.F1, b.F3 = b.F3, b.F1
			b.Tilt = -b.Tilt
			ed.toggleSwitched(b.ID)
		}
	case sp.IsSurface():
		for v := range sp.PntsV {
			slices.Reverse(sp.Points[v*sp.PntsU : (v+1)*sp.PntsU])
		}
	default:
		slices.Reverse(sp.Points)
		for i := range sp.Points {
			sp.Points[i].Tilt = -sp.Points[i].Tilt
			ed.toggleSwitched(sp.Points[i].ID)
		}
	}
	sp.calcKnots()
}

func (ed *EditNurb) toggleSwitched(id PointID) {
	if e := ed.KeyIndex.Lookup(id); e != nil {
		e.Switched = !e.Switched
	}
}

// ToggleCyclic opens closed splines and closes open ones. Every spline with
// a selected point is toggled: curves along U, surfaces along axis.
func (ed *EditNurb) ToggleCyclic(flag Flag, axis Axis) (bool, error) {
	changed := false
	for _, sp := range ed.Nurbs {
		if sp.SelectCount(flag) == 0 || sp.Len() < 2 {
			continue
		}
		if sp.IsSurface() && axis == V {
			sp.FlagV ^= Cyclic
		} else {
			sp.FlagU ^= Cyclic
		}
		sp.calcKnots()
		sp.CalcHandles()
		changed = true
	}
	return changed, nil
}
