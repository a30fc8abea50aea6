package spline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestKeyIndexInitFlatOffsets(t *testing.T) {
	_, ed := session(t, bezLine(2, false), gridLine(NURBS, 3, false), bezLine(1, false))

	type pos struct{ key, vertex, nu, pt int }
	var got []pos
	for nu, sp := range ed.Nurbs {
		for i := range sp.Len() {
			e := entry(ed, nu, i)
			require.NotNil(t, e)
			got = append(got, pos{e.KeyIndex, e.VertexIndex, e.NuIndex, e.PtIndex})
		}
	}
	want := []pos{
		{0, 0, 0, 0},
		{11, 3, 0, 1},
		{22, 6, 1, 0},
		{27, 7, 1, 1},
		{32, 8, 1, 2},
		{37, 9, 2, 0},
	}
	diff(t, want, got, cmp.AllowUnexported(pos{}))
	diff(t, 6, ed.KeyIndex.Len())
}

func TestKeyIndexInitSnapshotsBaseline(t *testing.T) {
	cu, ed := session(t, bezLine(3, false))
	ed.Nurbs[0].Bezier[1].Vec[1] = Vec(5, 5, 5)
	e := entry(ed, 0, 1)
	diff(t, cu.Nurbs[0].Bezier[1].Vec, e.OrigBezt.Vec)

	// The snapshot is private to the entry.
	cu.Nurbs[0].Bezier[1].Vec[1] = Vec(7, 7, 7)
	diff(t, Vec(1, 0, 0), e.OrigBezt.Vec[1])
}

func TestKeyIndexInitTwice(t *testing.T) {
	_, ed := session(t, bezLine(3, false))
	before := ed.KeyIndex.Len()
	ed.KeyIndex.Init(nil, nil)
	diff(t, before, ed.KeyIndex.Len())
}

func TestKeyIndexUninitialized(t *testing.T) {
	m := NewKeyIndexMap()
	if m.Initialized() {
		t.Fatal("new table claims to be initialized")
	}
	m.Insert(1, &CVKeyIndex{})
	diff(t, 0, m.Len())

	var nilMap *KeyIndexMap
	if e := nilMap.Lookup(1); e != nil {
		t.Errorf("got entry %v from nil table", e)
	}
	nilMap.DeleteRun(bezLine(2, false))
	diff(t, 0, nilMap.Len())
}

func TestKeyIndexRekey(t *testing.T) {
	m := NewKeyIndexMap()
	m.Init([]*Spline{{Type: Poly, PntsU: 2, PntsV: 1, Points: []GridPoint{{ID: 1}, {ID: 2}}}},
		[]*Spline{gridLine(Poly, 2, false)})
	e1 := m.Lookup(1)
	m.Rekey(1, 10)
	if m.Lookup(1) != nil {
		t.Error("old id still has an entry")
	}
	if m.Lookup(10) != e1 {
		t.Error("entry didn't move to the new id")
	}
	// Rekeying an id without an entry does nothing.
	m.Rekey(99, 2)
	if m.Lookup(2) == nil {
		t.Error("rekeying a missing entry clobbered an existing one")
	}
}

func TestKeyIndexRekeyRunOverlapping(t *testing.T) {
	m := NewKeyIndexMap()
	m.Init([]*Spline{{Type: Poly, PntsU: 3, PntsV: 1, Points: []GridPoint{{ID: 1}, {ID: 2}, {ID: 3}}}},
		[]*Spline{gridLine(Poly, 3, false)})
	e1, e2, e3 := m.Lookup(1), m.Lookup(2), m.Lookup(3)

	// Rotate the entries: 1→2, 2→3, 3→1.
	m.RekeyRun([]PointID{1, 2, 3}, []PointID{2, 3, 1})
	if m.Lookup(2) != e1 || m.Lookup(3) != e2 || m.Lookup(1) != e3 {
		t.Error("overlapping runs clobbered each other")
	}
	require.Panics(t, func() { m.RekeyRun([]PointID{1}, nil) })
}

func TestKeyIndexSwap(t *testing.T) {
	m := NewKeyIndexMap()
	m.Init([]*Spline{{Type: Poly, PntsU: 1, PntsV: 1, Points: []GridPoint{{ID: 1}}}},
		[]*Spline{gridLine(Poly, 1, false)})
	e1 := m.Lookup(1)
	m.Swap(1, 2)
	if m.Lookup(1) != nil || m.Lookup(2) != e1 {
		t.Error("swap with a missing entry didn't move the entry")
	}
	m.Swap(1, 2)
	if m.Lookup(1) != e1 || m.Lookup(2) != nil {
		t.Error("swapping twice didn't restore the table")
	}
}

func TestKeyIndexDeleteRunAndClone(t *testing.T) {
	_, ed := session(t, bezLine(2, false), bezLine(2, false))
	clone := ed.KeyIndex.Clone()
	ed.KeyIndex.DeleteRun(ed.Nurbs[0])
	diff(t, 2, ed.KeyIndex.Len())
	diff(t, 4, clone.Len())

	// Clones own their snapshots.
	e := clone.Lookup(ed.Nurbs[1].ID(0))
	e.OrigBezt.Tilt = 42
	if ed.KeyIndex.Lookup(ed.Nurbs[1].ID(0)).OrigBezt.Tilt == 42 {
		t.Error("clone shares its snapshot with the original")
	}
}

func TestSwitchedEntryMirrorsBaseline(t *testing.T) {
	b := BezTriple{Vec: [3]Vec3{Vec(0, 0, 0), Vec(1, 0, 0), Vec(2, 0, 0)}, H1: HandleFree, H2: HandleAuto, Tilt: 0.5}
	e := &CVKeyIndex{OrigBezt: &b, Switched: true}
	got := e.origBezt()
	diff(t, [3]Vec3{Vec(2, 0, 0), Vec(1, 0, 0), Vec(0, 0, 0)}, got.Vec)
	diff(t, HandleAuto, got.H1)
	diff(t, -0.5, got.Tilt)
	// The stored snapshot is unaffected.
	diff(t, 0.5, b.Tilt)
}
