package spline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// bezLine returns an open or cyclic Bézier curve with n points along the X
// axis. Point i sits at (i, 0, 0) with free handles a third of the way
// towards its neighbors, tilt 0.1*i and radius 1.
func bezLine(n int, cyclic bool) *Spline {
	pts := make([]BezTriple, n)
	for i := range pts {
		x := float64(i)
		pts[i] = BezTriple{
			Vec:    [3]Vec3{Vec(x-1.0/3, 0, 0), Vec(x, 0, 0), Vec(x+1.0/3, 0, 0)},
			H1:     HandleFree,
			H2:     HandleFree,
			Tilt:   0.1 * x,
			Radius: 1,
			Weight: 1,
		}
	}
	return NewBezier(pts, cyclic)
}

// gridLine returns a curve of type typ with n points along the X axis.
func gridLine(typ SplineType, n int, cyclic bool) *Spline {
	pts := make([]GridPoint, n)
	for i := range pts {
		pts[i] = GridPoint{Vec: Vec(float64(i), 0, 0), W: 1, Tilt: 0.1 * float64(i), Radius: 1, Weight: 1}
	}
	sp := NewGrid(typ, pts, n, 1)
	if cyclic {
		sp.FlagU |= Cyclic
		sp.calcKnots()
	}
	return sp
}

// surface returns a NURBS surface of pntsu×pntsv points, with the point at
// column u and row v at (u, v, 0).
func surface(pntsu, pntsv int) *Spline {
	pts := make([]GridPoint, 0, pntsu*pntsv)
	for v := range pntsv {
		for u := range pntsu {
			pts = append(pts, GridPoint{Vec: Vec(float64(u), float64(v), 0), W: 1, Radius: 1})
		}
	}
	return NewGrid(NURBS, pts, pntsu, pntsv)
}

func selectPoints(sp *Spline, idx ...int) {
	for _, i := range idx {
		sp.SetSelected(i, Select, true)
	}
}

func selectRow(sp *Spline, v int) {
	for u := range sp.PntsU {
		sp.Grid(u, v).F |= Select
	}
}

func selectColumn(sp *Spline, u int) {
	for v := range sp.PntsV {
		sp.Grid(u, v).F |= Select
	}
}

func pointIDs(sp *Spline) []PointID {
	ids := make([]PointID, sp.Len())
	for i := range ids {
		ids[i] = sp.ID(i)
	}
	return ids
}

func selectedIndices(sp *Spline) []int {
	var out []int
	for i := range sp.Len() {
		if sp.Selected(i, Select) {
			out = append(out, i)
		}
	}
	return out
}

func positions(sp *Spline) []Vec3 {
	var out []Vec3
	for _, b := range sp.Bezier {
		out = append(out, b.Vec[1])
	}
	for _, p := range sp.Points {
		out = append(out, p.Vec)
	}
	return out
}

// session starts an edit session on a curve made of nurbs, with no active
// shape key.
func session(t *testing.T, nurbs ...*Spline) (*Curve, *EditNurb) {
	t.Helper()
	cu := &Curve{Nurbs: nurbs}
	require.NoError(t, cu.MakeEditNurb(-1))
	return cu, cu.EditNurb
}

// entry returns the correspondence entry of point i of spline nu.
func entry(ed *EditNurb, nu, i int) *CVKeyIndex {
	return ed.KeyIndex.Lookup(ed.Nurbs[nu].ID(i))
}
