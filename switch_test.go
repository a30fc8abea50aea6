package spline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSwitchDirectionInvolution(t *testing.T) {
	bez := bezLine(4, false)
	bez.Bezier[1].H1 = HandleVector
	bez.Bezier[2].F3 = Select
	nurbs := gridLine(NURBS, 5, true)
	sf := surface(3, 2)
	for _, sp := range []*Spline{bez, nurbs, sf} {
		selectPoints(sp, 0)
	}
	_, ed := session(t, bez, nurbs, sf)
	before := CopySplines(ed.Nurbs)

	_, err := ed.SwitchDirection(Select)
	require.NoError(t, err)
	_, err = ed.SwitchDirection(Select)
	require.NoError(t, err)

	diff(t, before, ed.Nurbs)
	for nu, sp := range ed.Nurbs {
		for i := range sp.Len() {
			if entry(ed, nu, i).Switched {
				t.Errorf("point %d of spline %d is still switched", i, nu)
			}
		}
	}
}

func TestSwitchDirectionBezier(t *testing.T) {
	sp := bezLine(3, false)
	sp.Bezier[0].H1, sp.Bezier[0].H2 = HandleVector, HandleAlign
	sp.Bezier[0].F1 = Select
	_, ed := session(t, sp)
	ids := pointIDs(ed.Nurbs[0])

	_, err := ed.SwitchDirection(Select)
	require.NoError(t, err)
	got := ed.Nurbs[0]
	diff(t, []PointID{ids[2], ids[1], ids[0]}, pointIDs(got))
	last := got.Bezier[2]
	diff(t, [3]Vec3{Vec(1.0/3, 0, 0), Vec(0, 0, 0), Vec(-1.0/3, 0, 0)}, last.Vec)
	diff(t, HandleAlign, last.H1)
	diff(t, HandleVector, last.H2)
	diff(t, Select, last.F3)
	diff(t, -0.2, got.Bezier[0].Tilt)
	if !entry(ed, 0, 0).Switched {
		t.Error("entry wasn't marked switched")
	}
}

func TestSwitchDirectionRenamesAnimPaths(t *testing.T) {
	sp := gridLine(NURBS, 6, true)
	selectPoints(sp, 0)
	cu := &Curve{
		Nurbs: []*Spline{sp},
		FCurves: []*FCurve{
			{Path: "splines[0].points[0].co", Index: 1},
			{Path: "splines[0].points[0]"},
			{Path: "splines[0].points[2].tilt"},
		},
	}
	require.NoError(t, cu.MakeEditNurb(-1))

	_, err := cu.EditNurb.SwitchDirection(Select)
	require.NoError(t, err)
	res := cu.LoadEditNurb()

	diff(t, "splines[0].points[5].co", cu.FCurves[0].Path)
	diff(t, "splines[0].points[5]", cu.FCurves[1].Path)
	diff(t, "splines[0].points[3].tilt", cu.FCurves[2].Path)
	require.Empty(t, res.RemovedFCurves)
}

func TestToggleCyclic(t *testing.T) {
	sp := bezLine(3, false)
	selectPoints(sp, 1)
	sf := surface(3, 3)
	selectRow(sf, 0)
	_, ed := session(t, sp, sf)

	_, err := ed.ToggleCyclic(Select, V)
	require.NoError(t, err)
	if !ed.Nurbs[0].CyclicU() {
		t.Error("curve wasn't closed")
	}
	if !ed.Nurbs[1].CyclicV() || ed.Nurbs[1].CyclicU() {
		t.Error("surface wasn't closed along V only")
	}
	diff(t, KnotCount(3, ed.Nurbs[1].OrderV, Cyclic), len(ed.Nurbs[1].KnotsV))

	_, err = ed.ToggleCyclic(Select, V)
	require.NoError(t, err)
	if ed.Nurbs[0].CyclicU() || ed.Nurbs[1].CyclicV() {
		t.Error("toggling twice didn't reopen the splines")
	}
}
