package spline

// Subdivide inserts cuts new points into every segment whose two end points
// are selected. Bézier segments are split without changing their shape;
// poly and NURBS points are interpolated linearly. The new points are
// selected and have no baseline counterpart.
//
// A fully selected surface is subdivided in both directions. Otherwise new
// rows are inserted between adjacent fully selected rows, or if there are
// none, new columns between adjacent fully selected columns.
func (ed *EditNurb) Subdivide(flag Flag, cuts int) (bool, error) {
	if cuts < 1 {
		cuts = 1
	}
	changed := false
	for _, sp := range ed.Nurbs {
		var ok bool
		switch {
		case sp.IsBezier():
			ok = ed.subdivideBezier(sp, flag, cuts)
		case sp.IsSurface():
			ok = ed.subdivideSurface(sp, flag, cuts)
		default:
			ok = ed.subdivideCurve(sp, flag, cuts)
		}
		changed = changed || ok
	}
	if changed {
		ed.touch()
	}
	return changed, nil
}

// cutSegments returns, for every point, whether the segment from it to the
// next point is subdivided.
func cutSegments(sp *Spline, flag Flag) ([]bool, bool) {
	n := sp.Len()
	segs := make([]bool, n)
	found := false
	for i := range n {
		j := i + 1
		if j == n {
			if !sp.CyclicU() || n < 2 {
				break
			}
			j = 0
		}
		if sp.Selected(i, flag) && sp.Selected(j, flag) {
			segs[i] = true
			found = true
		}
	}
	return segs, found
}

func (ed *EditNurb) subdivideBezier(sp *Spline, flag Flag, cuts int) bool {
	segs, ok := cutSegments(sp, flag)
	if !ok {
		return false
	}
	n := len(sp.Bezier)
	pts := append([]BezTriple(nil), sp.Bezier...)
	mids := make([][]BezTriple, n)
	for i := range n {
		if !segs[i] {
			continue
		}
		j := (i + 1) % n
		a, b := &pts[i], &pts[j]

		// Split off one piece at a time. Cutting the remainder at 1/(cuts+1-k)
		// spaces the cuts evenly in the curve's parameter.
		pieces := make([]CubicBez, 0, cuts+1)
		rest := segmentBez(a, b)
		for k := range cuts {
			left, right := rest.SplitAt(1 / float64(cuts+1-k))
			pieces = append(pieces, left)
			rest = right
		}
		pieces = append(pieces, rest)

		a.Vec[2] = pieces[0].P1
		ms := make([]BezTriple, cuts)
		for k := range cuts {
			t := float64(k+1) / float64(cuts+1)
			m := ed.dupBezt(*b)
			m.Vec[0] = pieces[k].P2
			m.Vec[1] = pieces[k].P3
			m.Vec[2] = pieces[k+1].P1
			m.H1, m.H2 = HandleAlign, HandleAlign
			m.Tilt = lerp(a.Tilt, b.Tilt, t)
			m.Radius = lerp(a.Radius, b.Radius, t)
			m.Weight = lerp(a.Weight, b.Weight, t)
			m.SelectAll(flag)
			ms[k] = m
		}
		b.Vec[0] = pieces[cuts].P2
		mids[i] = ms
	}

	out := make([]BezTriple, 0, n+cuts*n)
	for i := range n {
		out = append(out, pts[i])
		out = append(out, mids[i]...)
	}
	sp.setBezier(out)
	sp.CalcHandles()
	return true
}

// lerpPoint returns a copy of a with its position, weight and scalar
// attributes interpolated towards b.
func (ed *EditNurb) lerpPoint(a, b *GridPoint, t float64) GridPoint {
	p := ed.dupBP(*a)
	p.Vec = a.Vec.Lerp(b.Vec, t)
	p.W = lerp(a.W, b.W, t)
	p.Tilt = lerp(a.Tilt, b.Tilt, t)
	p.Radius = lerp(a.Radius, b.Radius, t)
	p.Weight = lerp(a.Weight, b.Weight, t)
	return p
}

func (ed *EditNurb) subdivideCurve(sp *Spline, flag Flag, cuts int) bool {
	segs, ok := cutSegments(sp, flag)
	if !ok {
		return false
	}
	n := len(sp.Points)
	out := make([]GridPoint, 0, n+cuts*n)
	for i := range n {
		out = append(out, sp.Points[i])
		if !segs[i] {
			continue
		}
		a, b := &sp.Points[i], &sp.Points[(i+1)%n]
		for k := range cuts {
			p := ed.lerpPoint(a, b, float64(k+1)/float64(cuts+1))
			p.F |= flag
			out = append(out, p)
		}
	}
	sp.setGrid(out, len(out), 1)
	return true
}

// expandLeg subdivides one row or column of points. cut[i] says whether the
// gap after leg point i is subdivided.
func (ed *EditNurb) expandLeg(leg []GridPoint, cut []bool, cuts int) []GridPoint {
	out := make([]GridPoint, 0, len(leg)*(cuts+1))
	for i := range leg {
		out = append(out, leg[i])
		if i == len(leg)-1 || !cut[i] {
			continue
		}
		for k := range cuts {
			out = append(out, ed.lerpPoint(&leg[i], &leg[i+1], float64(k+1)/float64(cuts+1)))
		}
	}
	return out
}

func (ed *EditNurb) subdivideSurface(sp *Spline, flag Flag, cuts int) bool {
	fullV := fullLegs(sp, V, flag)
	fullU := fullLegs(sp, U, flag)
	cutV := make([]bool, sp.PntsV)
	cutU := make([]bool, sp.PntsU)

	if sp.SelectCount(flag) == len(sp.Points) {
		for i := range cutV {
			cutV[i] = true
		}
		for i := range cutU {
			cutU[i] = true
		}
	} else {
		anyV := false
		for v := 0; v+1 < sp.PntsV; v++ {
			if fullV[v] && fullV[v+1] {
				cutV[v] = true
				anyV = true
			}
		}
		if !anyV {
			anyU := false
			for u := 0; u+1 < sp.PntsU; u++ {
				if fullU[u] && fullU[u+1] {
					cutU[u] = true
					anyU = true
				}
			}
			if !anyU {
				return false
			}
		}
	}

	// Subdivide every row along U, then interpolate whole rows along V.
	rows := make([][]GridPoint, sp.PntsV)
	for v := range sp.PntsV {
		rows[v] = ed.expandLeg(sp.Points[v*sp.PntsU:(v+1)*sp.PntsU], cutU, cuts)
	}
	pntsu := len(rows[0])
	pts := make([]GridPoint, 0, pntsu*sp.PntsV*(cuts+1))
	pntsv := 0
	for v := range sp.PntsV {
		pts = append(pts, rows[v]...)
		pntsv++
		if v == sp.PntsV-1 || !cutV[v] {
			continue
		}
		for k := range cuts {
			t := float64(k+1) / float64(cuts+1)
			for u := range pntsu {
				pts = append(pts, ed.lerpPoint(&rows[v][u], &rows[v+1][u], t))
			}
			pntsv++
		}
	}
	sp.setGrid(pts, pntsu, pntsv)
	return true
}
