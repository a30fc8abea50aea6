package spline

import (
	"fmt"
)

// Field names a scalar attribute of a control point.
type Field uint8

const (
	FieldTilt Field = iota
	FieldRadius
	FieldWeight
)

func (f Field) String() string {
	switch f {
	case FieldTilt:
		return "tilt"
	case FieldRadius:
		return "radius"
	case FieldWeight:
		return "weight"
	default:
		return fmt.Sprintf("Field(%d)", f)
	}
}

// Scalar returns the value of field f.
func (b *BezTriple) Scalar(f Field) float64 {
	switch f {
	case FieldTilt:
		return b.Tilt
	case FieldRadius:
		return b.Radius
	default:
		return b.Weight
	}
}

// SetScalar sets the value of field f.
func (b *BezTriple) SetScalar(f Field, v float64) {
	switch f {
	case FieldTilt:
		b.Tilt = v
	case FieldRadius:
		b.Radius = v
	default:
		b.Weight = v
	}
}

// Scalar returns the value of field f.
func (p *GridPoint) Scalar(f Field) float64 {
	switch f {
	case FieldTilt:
		return p.Tilt
	case FieldRadius:
		return p.Radius
	default:
		return p.Weight
	}
}

// SetScalar sets the value of field f.
func (p *GridPoint) SetScalar(f Field, v float64) {
	switch f {
	case FieldTilt:
		p.Tilt = v
	case FieldRadius:
		p.Radius = v
	default:
		p.Weight = v
	}
}

type scalarer interface {
	Scalar(Field) float64
	SetScalar(Field, float64)
}

var (
	_ scalarer = (*BezTriple)(nil)
	_ scalarer = (*GridPoint)(nil)
)

func (sp *Spline) point(i int) scalarer {
	if sp.IsBezier() {
		return &sp.Bezier[i]
	}
	return &sp.Points[i]
}

// SmoothScalar smooths field over every run of selected curve points. The
// values of a run are replaced by a linear ramp between the values of the
// unselected points on either side of it; at the end of an open curve the
// run's own end value anchors the ramp. A run of a single point takes the
// mean of its neighbors.
func (ed *EditNurb) SmoothScalar(flag Flag, field Field) (bool, error) {
	changed := false
	for _, sp := range ed.Nurbs {
		if sp.IsSurface() || sp.Len() < 2 {
			continue
		}
		n := sp.Len()
		sel := selectionMask(sp, flag)
		for _, r := range selectedRuns(sel, sp.CyclicU()) {
			if r.n == n && sp.CyclicU() {
				// Nothing to anchor a ramp on.
				continue
			}
			smoothRun(sp, r, field, sp.CyclicU())
			changed = true
		}
	}
	return changed, nil
}

func smoothRun(sp *Spline, r run, field Field, cyclic bool) {
	n := sp.Len()
	at := func(k int) scalarer { return sp.point(mod(r.start+k, n)) }
	hasPrev := cyclic || r.start > 0
	hasNext := cyclic || r.start+r.n < n

	if r.n == 1 {
		switch {
		case hasPrev && hasNext:
			at(0).SetScalar(field, (at(-1).Scalar(field)+at(1).Scalar(field))/2)
		case hasPrev:
			at(0).SetScalar(field, at(-1).Scalar(field))
		case hasNext:
			at(0).SetScalar(field, at(1).Scalar(field))
		}
		return
	}

	// The ramp runs from index lo to hi of the run, anchored just outside
	// them.
	lo, hi := 0, r.n-1
	var startVal, endVal float64
	if hasPrev {
		startVal = at(-1).Scalar(field)
	} else {
		startVal = at(0).Scalar(field)
		lo++
	}
	if hasNext {
		endVal = at(r.n).Scalar(field)
	} else {
		endVal = at(r.n - 1).Scalar(field)
		hi--
	}
	steps := float64(hi - lo + 2)
	for k := lo; k <= hi; k++ {
		fac := float64(1+k-lo) / steps
		at(k).SetScalar(field, lerp(startVal, endVal, fac))
	}
}
