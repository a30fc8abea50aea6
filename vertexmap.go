package spline

// VertexIndexMap maps the vertex indices of the baseline geometry to those of
// current. Bézier triples count as three vertices, the left handle, the knot
// and the right handle; grid points as one. The handles of switched triples
// map crosswise. Vertices of points that were deleted have no mapping. A
// baseline vertex that was copied maps to its first occurrence in current.
func VertexIndexMap(current []*Spline, keys *KeyIndexMap) map[int]int {
	m := make(map[int]int)
	vi := 0
	for _, sp := range current {
		if sp.IsBezier() {
			for i := range sp.Bezier {
				if e := keys.Lookup(sp.Bezier[i].ID); e != nil {
					for j := range 3 {
						old := e.VertexIndex + j
						if e.Switched {
							old = e.VertexIndex + 2 - j
						}
						if _, ok := m[old]; !ok {
							m[old] = vi + j
						}
					}
				}
				vi += 3
			}
			continue
		}
		for i := range sp.Points {
			if e := keys.Lookup(sp.Points[i].ID); e != nil {
				if _, ok := m[e.VertexIndex]; !ok {
					m[e.VertexIndex] = vi
				}
			}
			vi++
		}
	}
	return m
}

// RemapVertexIndices translates indices, such as the vertices a hook or a
// vertex parent is bound to, through m. Indices without a mapping are
// dropped.
func RemapVertexIndices(indices []int, m map[int]int) []int {
	out := make([]int, 0, len(indices))
	for _, i := range indices {
		if j, ok := m[i]; ok {
			out = append(out, j)
		}
	}
	return out
}
