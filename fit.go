package spline

import (
	"math"
)

// The fit is refined by Newton reparameterization this many times at most.
const maxReparamIterations = 4

// CubicFitter fits a single cubic Bézier segment to a polyline.
//
// The first and last point of points are the segment's end points and are
// not moved. tanStart and tanEnd are unit tangents pointing in the direction
// of travel at the start and end of the polyline. The fitter returns the
// outgoing handle of the start point and the incoming handle of the end
// point.
//
// Curve fitting is used by [EditNurb.Dissolve]. Users with special needs can
// supply their own implementation via [DissolveOpts].
type CubicFitter interface {
	FitCubic(points []Vec3, tanStart, tanEnd Vec3, tolerance float64) (handleOut, handleIn Vec3)
}

// LeastSquaresFitter is the default [CubicFitter]. It solves for the two
// handle lengths that minimize the squared distance between the polyline and
// the cubic, with handle directions fixed by the tangents, then refines the
// parameterization with Newton steps until the error is below the
// tolerance.
type LeastSquaresFitter struct{}

var _ CubicFitter = LeastSquaresFitter{}

// FitCubic implements [CubicFitter].
func (LeastSquaresFitter) FitCubic(points []Vec3, tanStart, tanEnd Vec3, tolerance float64) (Vec3, Vec3) {
	c, _, _ := FitToCubic(points, tanStart, tanEnd, tolerance)
	return c.P1, c.P2
}

// FitToCubic fits a single cubic to points, with the end tangents fixed.
//
// Returns the cubic segment and the square of the maximum error. Returns false
// if the error couldn't be brought below tolerance, in which case the best
// cubic found is still returned.
func FitToCubic(points []Vec3, tanStart, tanEnd Vec3, tolerance float64) (CubicBez, float64, bool) {
	n := len(points)
	if n == 0 {
		return CubicBez{}, 0, true
	}
	p0, p3 := points[0], points[n-1]
	tanStart = tanStart.Normalize()
	tanEnd = tanEnd.Normalize()
	if n <= 2 {
		d := p0.Distance(p3) / 3.0
		return CubicBez{p0, p0.Add(tanStart.Mul(d)), p3.Sub(tanEnd.Mul(d)), p3}, 0, true
	}

	us := chordLengthParams(points)
	var best option[CubicBez]
	bestErr2 := math.Inf(1)
	tol2 := tolerance * tolerance
	for range maxReparamIterations + 1 {
		c := fitHandles(points, us, tanStart, tanEnd)
		err2 := maxError2(points, us, c)
		if !best.isSet || err2 < bestErr2 {
			best.set(c)
			bestErr2 = err2
		}
		if err2 <= tol2 {
			break
		}
		reparameterize(points, us, c)
	}
	return best.unwrap(), bestErr2, bestErr2 <= tol2
}

func chordLengthParams(points []Vec3) []float64 {
	us := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		us[i] = us[i-1] + points[i].Distance(points[i-1])
	}
	total := us[len(us)-1]
	if total == 0 {
		for i := range us {
			us[i] = float64(i) / float64(len(us)-1)
		}
		return us
	}
	for i := range us {
		us[i] /= total
	}
	return us
}

func fitHandles(points []Vec3, us []float64, tanStart, tanEnd Vec3) CubicBez {
	p0, p3 := points[0], points[len(points)-1]
	var c11, c12, c22, x1, x2 float64
	for i, u := range us {
		mu := 1 - u
		b0 := mu * mu * mu
		b1 := 3 * u * mu * mu
		b2 := 3 * u * u * mu
		b3 := u * u * u
		a1 := tanStart.Mul(b1)
		a2 := tanEnd.Mul(-b2)
		c11 += a1.Dot(a1)
		c12 += a1.Dot(a2)
		c22 += a2.Dot(a2)
		r := points[i].Sub(p0.Mul(b0 + b1)).Sub(p3.Mul(b2 + b3))
		x1 += r.Dot(a1)
		x2 += r.Dot(a2)
	}

	chord := p0.Distance(p3)
	eps := 1e-6 * chord
	det := c11*c22 - c12*c12
	var alpha1, alpha2 float64
	if math.Abs(det) > 1e-12 {
		alpha1 = (x1*c22 - x2*c12) / det
		alpha2 = (c11*x2 - c12*x1) / det
	}
	if alpha1 < eps || alpha2 < eps {
		// Fall back to the heuristic used for straight segments.
		alpha1 = chord / 3.0
		alpha2 = chord / 3.0
	}
	return CubicBez{p0, p0.Add(tanStart.Mul(alpha1)), p3.Sub(tanEnd.Mul(alpha2)), p3}
}

func maxError2(points []Vec3, us []float64, c CubicBez) float64 {
	var worst float64
	for i, u := range us {
		if d := c.Eval(u).Sub(points[i]).Hypot2(); d > worst {
			worst = d
		}
	}
	return worst
}

// reparameterize improves us in place with one Newton-Raphson step per sample.
func reparameterize(points []Vec3, us []float64, c CubicBez) {
	for i := 1; i < len(us)-1; i++ {
		u := us[i]
		d := c.Eval(u).Sub(points[i])
		d1 := c.Deriv(u)
		d2 := c.Deriv2(u)
		num := d.Dot(d1)
		den := d1.Dot(d1) + d.Dot(d2)
		if den == 0 {
			continue
		}
		u -= num / den
		us[i] = min(max(u, 0), 1)
	}
}
