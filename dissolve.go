package spline

import (
	"go.uber.org/zap"
)

// DissolveOpts configures [EditNurb.Dissolve].
type DissolveOpts struct {
	// Fitter fits the replacement segments. Defaults to LeastSquaresFitter.
	Fitter CubicFitter
	// Resolution is the number of samples taken per dissolved segment.
	// Defaults to the spline's ResolU.
	Resolution int
	// Tolerance is the largest acceptable distance between the fitted
	// segment and the dissolved geometry. Defaults to 1e-4.
	Tolerance float64
}

func (opts DissolveOpts) withDefaults() DissolveOpts {
	if opts.Fitter == nil {
		opts.Fitter = LeastSquaresFitter{}
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = 1e-4
	}
	return opts
}

// Dissolve removes the selected points while keeping the shape of Bézier
// curves as closely as possible. Every run of selected points between two
// unselected points is replaced by a single segment, fitted to the curve the
// run described, by moving the facing handles of the two neighbors. Those
// handles become aligned handles, or free handles if they were vector
// handles. Runs at the open end of a curve, and selected points on other
// spline types, are simply deleted.
func (ed *EditNurb) Dissolve(flag Flag, opts DissolveOpts) (bool, error) {
	if !ed.anySelected(flag) {
		return false, nil
	}
	opts = opts.withDefaults()
	for _, sp := range ed.Nurbs {
		if sp.IsBezier() && len(sp.Bezier) > 2 {
			dissolveBezier(sp, flag, opts)
		}
	}
	return ed.DeleteVertices(flag)
}

func dissolveBezier(sp *Spline, flag Flag, opts DissolveOpts) {
	n := len(sp.Bezier)
	sel := selectionMask(sp, flag)
	if countTrue(sel) == n {
		return
	}
	cyclic := sp.CyclicU()
	resol := opts.Resolution
	if resol < 1 {
		resol = max(sp.ResolU, 1)
	}
	for _, r := range selectedRuns(sel, cyclic) {
		first, last := r.start, r.start+r.n-1
		if !cyclic && (first == 0 || last == n-1) {
			continue
		}
		prev := &sp.Bezier[mod(first-1, n)]
		next := &sp.Bezier[(last+1)%n]

		// Sample the segments from prev over the run to next.
		samples := make([]Vec3, 0, (r.n+1)*resol+1)
		a := prev
		for k := range r.n + 1 {
			b := next
			if k < r.n {
				b = &sp.Bezier[r.at(k, n)]
			}
			samples = segmentBez(a, b).AppendSamples(samples, resol)
			a = b
		}
		samples = append(samples, next.Vec[1])

		tanStart := prev.Vec[2].Sub(prev.Vec[1]).Normalize()
		if tanStart == (Vec3{}) {
			tanStart = samples[1].Sub(samples[0]).Normalize()
		}
		tanEnd := next.Vec[1].Sub(next.Vec[0]).Normalize()
		if tanEnd == (Vec3{}) {
			tanEnd = samples[len(samples)-1].Sub(samples[len(samples)-2]).Normalize()
		}
		h1, h2 := opts.Fitter.FitCubic(samples, tanStart, tanEnd, opts.Tolerance)
		if c := (CubicBez{prev.Vec[1], h1, h2, next.Vec[1]}); c.IsNaN() || c.IsInf() {
			logger().Warn("dissolve: fitted segment is not finite, using chord handles",
				zap.Int("points", r.n))
			d := prev.Vec[1].Distance(next.Vec[1]) / 3.0
			h1 = prev.Vec[1].Add(tanStart.Mul(d))
			h2 = next.Vec[1].Sub(tanEnd.Mul(d))
		}
		prev.Vec[2], next.Vec[0] = h1, h2
		prev.H2 = dissolvedHandle(prev.H2)
		next.H1 = dissolvedHandle(next.H1)
	}
}

// dissolvedHandle returns the type of a handle that has been placed by
// fitting.
func dissolvedHandle(h HandleType) HandleType {
	switch h {
	case HandleFree, HandleAlign:
		return h
	case HandleVector:
		return HandleFree
	default:
		return HandleAlign
	}
}
