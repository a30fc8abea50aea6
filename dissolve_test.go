package spline

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDissolveRestoresSubdividedSegment(t *testing.T) {
	seg := CubicBez{Vec(0, 0, 0), Vec(1, 2, 0), Vec(3, 2, 1), Vec(4, 0, 0)}
	sp := NewBezier([]BezTriple{
		{Vec: [3]Vec3{Vec(-1, -2, 0), seg.P0, seg.P1}, H1: HandleAlign, H2: HandleAlign, Radius: 1},
		{Vec: [3]Vec3{seg.P2, seg.P3, Vec(5, -2, -1)}, H1: HandleAlign, H2: HandleAlign, Radius: 1},
	}, false)
	selectPoints(sp, 0, 1)
	_, ed := session(t, sp)
	ids := pointIDs(ed.Nurbs[0])

	_, err := ed.Subdivide(Select, 1)
	require.NoError(t, err)
	require.Equal(t, 3, ed.Nurbs[0].Len())
	ed.SelectAll(Select, false)
	selectPoints(ed.Nurbs[0], 1)

	changed, err := ed.Dissolve(Select, DissolveOpts{Resolution: 16, Tolerance: 1e-6})
	require.NoError(t, err)
	require.True(t, changed)

	got := ed.Nurbs[0]
	diff(t, ids, pointIDs(got))
	approx := cmpopts.EquateApprox(0, 1e-2)
	diff(t, seg, segmentBez(&got.Bezier[0], &got.Bezier[1]), approx)
	diff(t, HandleAlign, got.Bezier[0].H2)
}

func TestDissolveVectorHandlesBecomeFree(t *testing.T) {
	sp := bezLine(4, false)
	sp.Bezier[0].H2 = HandleVector
	sp.Bezier[3].H1 = HandleAuto
	selectPoints(sp, 1, 2)
	_, ed := session(t, sp)

	_, err := ed.Dissolve(Select, DissolveOpts{})
	require.NoError(t, err)
	got := ed.Nurbs[0]
	require.Equal(t, 2, got.Len())
	diff(t, HandleFree, got.Bezier[0].H2)
	diff(t, HandleAlign, got.Bezier[1].H1)
	// The dissolved points lay on a straight line, and so does the fit.
	for _, p := range []Vec3{got.Bezier[0].Vec[2], got.Bezier[1].Vec[0]} {
		if p.Y != 0 || p.Z != 0 {
			t.Errorf("handle %v left the line", p)
		}
	}
}

type nanFitter struct{}

func (nanFitter) FitCubic([]Vec3, Vec3, Vec3, float64) (Vec3, Vec3) {
	nan := math.NaN()
	return Vec(nan, 0, 0), Vec(0, nan, 0)
}

func TestDissolveNonFiniteFit(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	sp := bezLine(4, false)
	selectPoints(sp, 1, 2)
	_, ed := session(t, sp)

	_, err := ed.Dissolve(Select, DissolveOpts{Fitter: nanFitter{}})
	require.NoError(t, err)
	got := ed.Nurbs[0]
	require.Equal(t, 2, got.Len())
	// The handles fall back to a third of the chord along the end tangents.
	approx := cmpopts.EquateApprox(0, 1e-9)
	diff(t, Vec(1, 0, 0), got.Bezier[0].Vec[2], approx)
	diff(t, Vec(2, 0, 0), got.Bezier[1].Vec[0], approx)
	if logs.Len() != 1 {
		t.Errorf("got %d warnings, want 1", logs.Len())
	}
}

func TestDissolveOpenEndIsDeleted(t *testing.T) {
	sp := bezLine(4, false)
	selectPoints(sp, 3)
	_, ed := session(t, sp)
	before := ed.Nurbs[0].Bezier[2]

	_, err := ed.Dissolve(Select, DissolveOpts{})
	require.NoError(t, err)
	got := ed.Nurbs[0]
	diff(t, 3, got.Len())
	diff(t, before, got.Bezier[2])
}

func TestDissolveNonBezier(t *testing.T) {
	sp := gridLine(NURBS, 5, false)
	selectPoints(sp, 2)
	_, ed := session(t, sp)

	_, err := ed.Dissolve(Select, DissolveOpts{})
	require.NoError(t, err)
	diff(t, []Vec3{Vec(0, 0, 0), Vec(1, 0, 0), Vec(3, 0, 0), Vec(4, 0, 0)}, positions(ed.Nurbs[0]))
}

func TestDissolveNothingSelected(t *testing.T) {
	_, ed := session(t, bezLine(3, false))
	changed, err := ed.Dissolve(Select, DissolveOpts{})
	require.NoError(t, err)
	if changed {
		t.Error("dissolving nothing changed the session")
	}
}
