package spline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVertexIndexMap(t *testing.T) {
	bez := bezLine(3, false)
	selectPoints(bez, 0)
	poly := gridLine(Poly, 3, false)
	selectPoints(poly, 1)
	_, ed := session(t, bez, poly)

	_, err := ed.SwitchDirection(Select)
	require.NoError(t, err)
	_, err = ed.DeleteVertices(Select)
	require.NoError(t, err)

	// Both curves are reversed. The Bézier curve then loses its original
	// first point, the poly curve its middle point.
	m := VertexIndexMap(ed.Nurbs, ed.KeyIndex)
	want := map[int]int{
		6: 2, 7: 1, 8: 0,
		3: 5, 4: 4, 5: 3,
		11: 6,
		9:  7,
	}
	diff(t, want, m)
}

func TestVertexIndexMapIdentity(t *testing.T) {
	_, ed := session(t, bezLine(2, false), gridLine(NURBS, 4, false))
	m := VertexIndexMap(ed.Nurbs, ed.KeyIndex)
	require.Len(t, m, 10)
	for k, v := range m {
		if k != v {
			t.Errorf("vertex %d maps to %d", k, v)
		}
	}
}

func TestRemapVertexIndices(t *testing.T) {
	m := map[int]int{0: 0, 2: 1, 3: 2}
	diff(t, []int{2, 0, 1}, RemapVertexIndices([]int{3, 1, 0, 2}, m))
	diff(t, []int{}, RemapVertexIndices(nil, m))
}

func TestVertexIndexMapKeepsOriginals(t *testing.T) {
	sp := gridLine(Poly, 3, false)
	selectPoints(sp, 1)
	_, ed := session(t, sp)

	_, err := ed.Duplicate(Select)
	require.NoError(t, err)
	require.Len(t, ed.Nurbs, 2)

	m := VertexIndexMap(ed.Nurbs, ed.KeyIndex)
	diff(t, map[int]int{0: 0, 1: 1, 2: 2}, m)
}
