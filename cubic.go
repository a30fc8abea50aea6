package spline

// CubicBez is a cubic Bézier segment in 3D.
type CubicBez struct {
	P0 Vec3
	P1 Vec3
	P2 Vec3
	P3 Vec3
}

// segmentBez returns the cubic Bézier segment that connects a to b, using a's
// right handle and b's left handle as its control points.
func segmentBez(a, b *BezTriple) CubicBez {
	return CubicBez{a.Vec[1], a.Vec[2], b.Vec[0], b.Vec[1]}
}

func (c CubicBez) IsInf() bool {
	return c.P0.IsInf() || c.P1.IsInf() || c.P2.IsInf() || c.P3.IsInf()
}

func (c CubicBez) IsNaN() bool {
	return c.P0.IsNaN() || c.P1.IsNaN() || c.P2.IsNaN() || c.P3.IsNaN()
}

func (c CubicBez) Eval(t float64) Vec3 {
	mt := 1.0 - t
	a := c.P0.Mul(mt * mt * mt)
	b := c.P1.Mul(mt * mt * 3.0)
	cc := c.P2.Mul(mt * 3.0)
	d := c.P3
	return a.Add(b.Add(cc.Add(d.Mul(t)).Mul(t)).Mul(t))
}

// Subdivide subdivides the cubic into halves, using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	return c.SplitAt(0.5)
}

// SplitAt splits the cubic at t, using de Casteljau. The two halves trace
// exactly the same curve as c.
func (c CubicBez) SplitAt(t float64) (CubicBez, CubicBez) {
	p01 := c.P0.Lerp(c.P1, t)
	p12 := c.P1.Lerp(c.P2, t)
	p23 := c.P2.Lerp(c.P3, t)
	p012 := p01.Lerp(p12, t)
	p123 := p12.Lerp(p23, t)
	pm := p012.Lerp(p123, t)
	return CubicBez{c.P0, p01, p012, pm}, CubicBez{pm, p123, p23, c.P3}
}

func (c CubicBez) Subsegment(t0, t1 float64) CubicBez {
	p0 := c.Eval(t0)
	p3 := c.Eval(t1)
	d0, d1 := c.Deriv(t0), c.Deriv(t1)
	scale := (t1 - t0) * (1.0 / 3.0)
	p1 := p0.Add(d0.Mul(scale))
	p2 := p3.Sub(d1.Mul(scale))
	return CubicBez{p0, p1, p2, p3}
}

// Deriv evaluates the first derivative at t.
func (c CubicBez) Deriv(t float64) Vec3 {
	mt := 1.0 - t
	d0 := c.P1.Sub(c.P0).Mul(3 * mt * mt)
	d1 := c.P2.Sub(c.P1).Mul(6 * mt * t)
	d2 := c.P3.Sub(c.P2).Mul(3 * t * t)
	return d0.Add(d1).Add(d2)
}

// Deriv2 evaluates the second derivative at t.
func (c CubicBez) Deriv2(t float64) Vec3 {
	a := c.P2.Sub(c.P1.Mul(2)).Add(c.P0).Mul(6 * (1 - t))
	b := c.P3.Sub(c.P2.Mul(2)).Add(c.P1).Mul(6 * t)
	return a.Add(b)
}

// Tangents returns the tangents at the start and end of the curve. Degenerate
// control arms fall back to the next control point that differs.
func (c CubicBez) Tangents() (Vec3, Vec3) {
	const epsilon = 1e-12
	var d0, d1 Vec3
	if d01 := c.P1.Sub(c.P0); d01.Hypot2() > epsilon {
		d0 = d01
	} else if d02 := c.P2.Sub(c.P0); d02.Hypot2() > epsilon {
		d0 = d02
	} else {
		d0 = c.P3.Sub(c.P0)
	}
	if d23 := c.P3.Sub(c.P2); d23.Hypot2() > epsilon {
		d1 = d23
	} else if d13 := c.P3.Sub(c.P1); d13.Hypot2() > epsilon {
		d1 = d13
	} else {
		d1 = c.P3.Sub(c.P0)
	}
	return d0, d1
}

// AppendSamples appends n evenly spaced (in t) samples of the curve to dst,
// starting at t = 0 and excluding t = 1.
func (c CubicBez) AppendSamples(dst []Vec3, n int) []Vec3 {
	for i := range n {
		dst = append(dst, c.Eval(float64(i)/float64(n)))
	}
	return dst
}

// Arclen approximates the arc length of the curve by flattening it into n
// line segments.
func (c CubicBez) Arclen(n int) float64 {
	var l float64
	prev := c.P0
	for i := 1; i <= n; i++ {
		p := c.Eval(float64(i) / float64(n))
		l += p.Distance(prev)
		prev = p
	}
	return l
}
