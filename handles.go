package spline

// Auto handles are placed along the bisector of the neighboring chords; this
// factor scales their length relative to the chord lengths.
const autoHandleFactor = 2.5614

// calcHandle recomputes the auto handles of cur from its neighbors. prev and
// next may be nil at the ends of an open spline. Handles that aren't auto
// handles are left alone.
func calcHandle(cur, prev, next *BezTriple) {
	if !cur.H1.isAuto() && !cur.H2.isAuto() {
		return
	}
	if prev == nil && next == nil {
		return
	}
	p2 := cur.Vec[1]
	var p1, p3 Vec3
	if prev != nil {
		p1 = prev.Vec[1]
	} else {
		p1 = p2.Mul(2).Sub(next.Vec[1])
	}
	if next != nil {
		p3 = next.Vec[1]
	} else {
		p3 = p2.Mul(2).Sub(p1)
	}

	dA := p2.Sub(p1)
	dB := p3.Sub(p2)
	lenA := dA.Hypot()
	lenB := dB.Hypot()
	if lenA == 0 {
		lenA = 1
	}
	if lenB == 0 {
		lenB = 1
	}
	tvec := dB.Div(lenB).Add(dA.Div(lenA))
	l := tvec.Hypot() * autoHandleFactor
	if l == 0 {
		return
	}
	if cur.H1.isAuto() {
		cur.Vec[0] = p2.Sub(tvec.Mul(lenA / l))
	}
	if cur.H2.isAuto() {
		cur.Vec[2] = p2.Add(tvec.Mul(lenB / l))
	}
}

// neighbors returns the points before and after index i of a Bézier list.
func neighbors(pts []BezTriple, i int, cyclic bool) (prev, next *BezTriple) {
	n := len(pts)
	switch {
	case i > 0:
		prev = &pts[i-1]
	case cyclic && n > 1:
		prev = &pts[n-1]
	}
	switch {
	case i < n-1:
		next = &pts[i+1]
	case cyclic && n > 1:
		next = &pts[0]
	}
	return prev, next
}

// CalcHandles recomputes the auto handles of every point of a Bézier spline.
// It does nothing for other spline types.
func (sp *Spline) CalcHandles() {
	if !sp.IsBezier() {
		return
	}
	for i := range sp.Bezier {
		prev, next := neighbors(sp.Bezier, i, sp.CyclicU())
		calcHandle(&sp.Bezier[i], prev, next)
	}
}

// SetHandleType sets the type of the selected handles of Bézier points. A
// selected knot sets both of its handles. Vector handles are placed a third
// of the way towards the neighboring knots; auto handles are recomputed.
func (ed *EditNurb) SetHandleType(flag Flag, h HandleType) (bool, error) {
	changed := false
	for _, sp := range ed.Nurbs {
		if !sp.IsBezier() {
			continue
		}
		for i := range sp.Bezier {
			b := &sp.Bezier[i]
			left := b.F1&flag != 0 || b.F2&flag != 0
			right := b.F3&flag != 0 || b.F2&flag != 0
			if !left && !right {
				continue
			}
			prev, next := neighbors(sp.Bezier, i, sp.CyclicU())
			if left {
				b.H1 = h
				if h == HandleVector && prev != nil {
					b.Vec[0] = b.Vec[1].Lerp(prev.Vec[1], 1.0/3)
				}
			}
			if right {
				b.H2 = h
				if h == HandleVector && next != nil {
					b.Vec[2] = b.Vec[1].Lerp(next.Vec[1], 1.0/3)
				}
			}
			changed = true
		}
		sp.CalcHandles()
	}
	return changed, nil
}
