package spline

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestInvokeUnknownOp(t *testing.T) {
	_, ed := session(t, bezLine(3, false))
	changed, err := ed.Invoke("frobnicate", Params{})
	if !errors.Is(err, ErrUnknownOp) {
		t.Fatalf("got error %v, want %v", err, ErrUnknownOp)
	}
	if changed {
		t.Error("unknown operation changed the session")
	}
}

func TestInvokeDefaults(t *testing.T) {
	sp := gridLine(Poly, 3, false)
	selectPoints(sp, 0, 1)
	_, ed := session(t, sp)

	changed, err := ed.Invoke(OpSubdivide, Params{})
	require.NoError(t, err)
	require.True(t, changed)
	diff(t, 4, ed.Nurbs[0].Len())
	diff(t, Vec(0.5, 0, 0), ed.Nurbs[0].Points[1].Vec)
}

func TestInvokeDispatch(t *testing.T) {
	tests := []struct {
		op   Op
		p    Params
		want int
	}{
		{OpDelete, Params{}, 2},
		{OpDeleteSegments, Params{}, 4},
		{OpDissolve, Params{}, 2},
		{OpExtrude, Params{}, 5},
		{OpSubdivide, Params{Cuts: 2}, 6},
		{OpSwitchDirection, Params{}, 4},
		{OpCyclicToggle, Params{}, 4},
		{OpDuplicate, Params{}, 6},
		{OpSplit, Params{}, 6},
		{OpSmooth, Params{Field: FieldRadius}, 4},
		{OpHandleType, Params{HandleType: HandleVector}, 4},
	}
	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			sp := bezLine(4, false)
			selectPoints(sp, 1, 2)
			_, ed := session(t, sp)
			_, err := ed.Invoke(tt.op, tt.p)
			require.NoError(t, err)
			n := 0
			for _, sp := range ed.Nurbs {
				n += sp.Len()
			}
			diff(t, tt.want, n)
		})
	}
}

func TestInvokeAll(t *testing.T) {
	withSelection := func() *EditNurb {
		sp := bezLine(3, false)
		selectPoints(sp, 2)
		_, ed := session(t, sp)
		return ed
	}
	without := func() *EditNurb {
		_, ed := session(t, bezLine(3, false))
		return ed
	}

	r := InvokeAll([]*EditNurb{withSelection(), without(), without()}, OpExtrude, Params{})
	diff(t, 1, r.Changed)
	diff(t, 2, r.Failed)
	require.Error(t, r.Err)
	if errors.Is(r.Err, ErrInvalidSelection) {
		t.Error("partial failure reported as the cause of every failure")
	}

	r = InvokeAll([]*EditNurb{without(), without()}, OpExtrude, Params{})
	diff(t, 0, r.Changed)
	diff(t, 2, r.Failed)
	if !errors.Is(r.Err, ErrInvalidSelection) {
		t.Errorf("got error %v, want %v", r.Err, ErrInvalidSelection)
	}

	r = InvokeAll([]*EditNurb{withSelection(), withSelection()}, OpExtrude, Params{})
	diff(t, Report{Changed: 2}, r)
}
