package spline

import (
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func TestSubdivideCount(t *testing.T) {
	tests := []struct {
		name string
		sp   func() *Spline
		sel  []int
		cuts int
		want int
	}{
		{"bezier one segment", func() *Spline { return bezLine(4, false) }, []int{1, 2}, 1, 5},
		{"bezier three cuts", func() *Spline { return bezLine(4, false) }, []int{0, 1, 2, 3}, 3, 13},
		{"bezier cyclic wrap", func() *Spline { return bezLine(4, true) }, []int{3, 0}, 2, 6},
		{"nurbs", func() *Spline { return gridLine(NURBS, 5, false) }, []int{0, 1, 3, 4}, 2, 9},
		{"poly lone point", func() *Spline { return gridLine(Poly, 5, false) }, []int{2}, 2, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sp := tt.sp()
			selectPoints(sp, tt.sel...)
			_, ed := session(t, sp)
			_, err := ed.Subdivide(Select, tt.cuts)
			require.NoError(t, err)
			diff(t, tt.want, ed.Nurbs[0].Len())
		})
	}
}

func TestSubdivideBezierKeepsShape(t *testing.T) {
	seg := CubicBez{Vec(0, 0, 0), Vec(1, 2, 0), Vec(3, 2, 1), Vec(4, 0, 0)}
	sp := NewBezier([]BezTriple{
		{Vec: [3]Vec3{Vec(-1, -2, 0), seg.P0, seg.P1}, H1: HandleAlign, H2: HandleAlign, Radius: 1},
		{Vec: [3]Vec3{seg.P2, seg.P3, Vec(5, -2, -1)}, H1: HandleAlign, H2: HandleAlign, Radius: 3},
	}, false)
	selectPoints(sp, 0, 1)
	_, ed := session(t, sp)

	_, err := ed.Subdivide(Select, 2)
	require.NoError(t, err)
	got := ed.Nurbs[0]
	require.Equal(t, 4, got.Len())

	approx := cmpopts.EquateApprox(0, 1e-12)
	for k := range 3 {
		piece := segmentBez(&got.Bezier[k], &got.Bezier[k+1])
		for i := range 5 {
			u := float64(i) / 4
			want := seg.Eval((float64(k) + u) / 3)
			diff(t, want, piece.Eval(u), approx)
		}
	}
	diff(t, 5.0/3.0, got.Bezier[1].Radius, approx)
	diff(t, []int{0, 1, 2, 3}, selectedIndices(got))
	if entry(ed, 0, 1) != nil || entry(ed, 0, 2) != nil {
		t.Error("inserted points have correspondence entries")
	}
}

func TestSubdivideNURBSInterpolates(t *testing.T) {
	sp := gridLine(NURBS, 2, false)
	sp.Points[1].W = 3
	selectPoints(sp, 0, 1)
	_, ed := session(t, sp)

	_, err := ed.Subdivide(Select, 1)
	require.NoError(t, err)
	got := ed.Nurbs[0]
	diff(t, Vec(0.5, 0, 0), got.Points[1].Vec)
	diff(t, 2.0, got.Points[1].W)
	diff(t, KnotCount(3, got.OrderU, got.FlagU), len(got.KnotsU))
}

func TestSubdivideSurfaceDense(t *testing.T) {
	sp := surface(3, 2)
	for i := range sp.Points {
		sp.Points[i].F |= Select
	}
	_, ed := session(t, sp)

	_, err := ed.Subdivide(Select, 1)
	require.NoError(t, err)
	got := ed.Nurbs[0]
	diff(t, 5, got.PntsU)
	diff(t, 3, got.PntsV)
	diff(t, Vec(1.5, 0.5, 0), got.Grid(3, 1).Vec)
	diff(t, 6, ed.KeyIndex.Len())
}

func TestSubdivideSurfaceRows(t *testing.T) {
	sp := surface(3, 4)
	selectRow(sp, 1)
	selectRow(sp, 2)
	_, ed := session(t, sp)

	_, err := ed.Subdivide(Select, 1)
	require.NoError(t, err)
	got := ed.Nurbs[0]
	diff(t, 3, got.PntsU)
	diff(t, 5, got.PntsV)
	diff(t, Vec(2, 1.5, 0), got.Grid(2, 2).Vec)
}

func TestSubdivideSurfaceColumns(t *testing.T) {
	sp := surface(4, 3)
	selectColumn(sp, 0)
	selectColumn(sp, 1)
	_, ed := session(t, sp)

	_, err := ed.Subdivide(Select, 3)
	require.NoError(t, err)
	got := ed.Nurbs[0]
	diff(t, 7, got.PntsU)
	diff(t, 3, got.PntsV)
	diff(t, Vec(0.25, 2, 0), got.Grid(1, 2).Vec)
}
