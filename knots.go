package spline

// KnotCount returns the length of the knot vector of an axis with pnts points,
// the given order and flags.
func KnotCount(pnts, order int, flag KnotFlag) int {
	n := pnts + order
	if flag&Cyclic != 0 {
		n += order - 1
	}
	return n
}

// CalcKnots computes a knot vector. Inner knots are spaced uniformly;
// endpoint knots repeat the first and last value order times, Bézier knots
// repeat every inner knot order-1 times. Cyclic knot vectors repeat the
// widths of their leading knots at the tail.
func CalcKnots(pnts, order int, flag KnotFlag) []float64 {
	if order < 1 || pnts < 1 {
		return nil
	}
	cyclic := flag&Cyclic != 0
	endpoint := flag&Endpoint != 0
	bezier := flag&BezierKnots != 0

	repeatInner := 1
	if bezier {
		repeatInner = max(order-1, 1)
	}
	head := 1
	switch {
	case endpoint && cyclic:
		head = order - 1
	case endpoint:
		head = order
	case bezier:
		head = min(2, repeatInner)
	}
	tail := 0
	switch {
	case cyclic:
		tail = 2*order - 1
	case endpoint:
		tail = order
	}
	count := KnotCount(pnts, order, flag)
	tail = min(tail, count)
	knots := make([]float64, count)

	current := 0.0
	offset := 0
	if endpoint && cyclic {
		offset = 1
		current = 1
	}
	r := max(head, 1)
	for i := offset; i < count-tail; i++ {
		knots[i] = current
		r--
		if r == 0 {
			current++
			r = repeatInner
		}
	}
	tailIndex := count - tail
	for i := range tail {
		knots[tailIndex+i] = current + (knots[i] - knots[0])
	}
	return knots
}

func (sp *Spline) clampOrderU() {
	if sp.Type == Bezier {
		return
	}
	if sp.Type == Poly {
		sp.OrderU = 1
		return
	}
	sp.OrderU = clampOrder(sp.OrderU, sp.PntsU)
}

func (sp *Spline) clampOrderV() {
	if sp.Type == Bezier {
		return
	}
	if sp.Type == Poly || sp.PntsV == 1 {
		sp.OrderV = 1
		return
	}
	sp.OrderV = clampOrder(sp.OrderV, sp.PntsV)
}

func clampOrder(order, pnts int) int {
	if order < 2 {
		order = 2
	}
	return max(min(order, pnts), 1)
}

// calcKnots recomputes both knot vectors of a NURBS spline. Other spline types
// carry no knots.
func (sp *Spline) calcKnots() {
	sp.calcKnotsU()
	sp.calcKnotsV()
}

func (sp *Spline) calcKnotsU() {
	if sp.Type != NURBS {
		sp.KnotsU = nil
		return
	}
	sp.KnotsU = CalcKnots(sp.PntsU, sp.OrderU, sp.FlagU)
}

func (sp *Spline) calcKnotsV() {
	if sp.Type != NURBS || sp.PntsV <= 1 {
		sp.KnotsV = nil
		return
	}
	sp.KnotsV = CalcKnots(sp.PntsV, sp.OrderV, sp.FlagV)
}
