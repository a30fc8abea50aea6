package spline

import (
	"fmt"
)

// PointID is the stable identity of a control point. Ids are independent of
// the position of a point in its spline's storage; they travel with the
// point when arrays are rebuilt. The zero PointID means "not assigned".
type PointID uint32

// Flag is a bit set of per-point selection state.
type Flag uint8

const (
	// Select marks a selected point, or for Bézier triples a selected
	// handle or knot.
	Select Flag = 1 << iota
	// Active marks the active point of the edit session.
	Active
)

// HandleType describes how the handle on one side of a Bézier triple is
// maintained.
type HandleType uint8

const (
	// HandleFree handles are placed by the user and never recomputed.
	HandleFree HandleType = iota
	// HandleAuto handles are recomputed from neighboring knots.
	HandleAuto
	// HandleVector handles are user-authored straight handles.
	HandleVector
	// HandleAlign handles are user-authored and kept colinear with the
	// opposite handle.
	HandleAlign
	// HandleAutoAnim handles are auto handles that avoid overshoot.
	HandleAutoAnim
)

func (h HandleType) isAuto() bool {
	return h == HandleAuto || h == HandleAutoAnim
}

func (h HandleType) String() string {
	switch h {
	case HandleFree:
		return "FREE"
	case HandleAuto:
		return "AUTO"
	case HandleVector:
		return "VECTOR"
	case HandleAlign:
		return "ALIGNED"
	case HandleAutoAnim:
		return "AUTO_CLAMPED"
	default:
		return fmt.Sprintf("HandleType(%d)", h)
	}
}

// BezTriple is a Bézier control point: a knot with a handle on either side.
type BezTriple struct {
	ID PointID
	// Vec holds the left handle, the knot and the right handle.
	Vec [3]Vec3
	// F1, F2 and F3 are the flags of the left handle, the knot and the right
	// handle.
	F1, F2, F3 Flag
	Hide       bool
	// H1 and H2 are the handle types of the left and right handle.
	H1, H2 HandleType
	Tilt   float64
	Radius float64
	Weight float64
}

// Selected reports whether the knot or either handle has any bit of flag set.
func (b *BezTriple) Selected(flag Flag) bool {
	return (b.F1|b.F2|b.F3)&flag != 0
}

// SelectAll sets flag on the knot and both handles.
func (b *BezTriple) SelectAll(flag Flag) {
	b.F1 |= flag
	b.F2 |= flag
	b.F3 |= flag
}

// DeselectAll clears flag on the knot and both handles.
func (b *BezTriple) DeselectAll(flag Flag) {
	b.F1 &^= flag
	b.F2 &^= flag
	b.F3 &^= flag
}

// GridPoint is a weighted control point of a poly or NURBS curve or surface.
type GridPoint struct {
	ID  PointID
	Vec Vec3
	// W is the rational weight, the fourth homogeneous component.
	W      float64
	F      Flag
	Hide   bool
	Tilt   float64
	Radius float64
	Weight float64
}

func (p *GridPoint) Selected(flag Flag) bool {
	return p.F&flag != 0
}

// SplineType distinguishes the kinds of splines.
type SplineType uint8

const (
	Poly SplineType = iota
	Bezier
	NURBS
)

func (t SplineType) String() string {
	switch t {
	case Poly:
		return "POLY"
	case Bezier:
		return "BEZIER"
	case NURBS:
		return "NURBS"
	default:
		return fmt.Sprintf("SplineType(%d)", t)
	}
}

// KnotFlag describes one axis of a spline.
type KnotFlag uint8

const (
	// Cyclic splines connect their last point back to their first.
	Cyclic KnotFlag = 1 << iota
	// Endpoint knot vectors make NURBS interpolate their end points.
	Endpoint
	// BezierKnots make NURBS knot vectors behave like Bézier segments.
	BezierKnots
)

// Axis selects the U or V direction of a spline.
type Axis uint8

const (
	U Axis = iota
	V
)

func (a Axis) String() string {
	if a == U {
		return "U"
	}
	return "V"
}

// Spline is a Bézier curve, a poly or NURBS curve, or a NURBS surface.
//
// Bézier splines store their points in Bezier, all other splines store them in
// Points, row-major with PntsU points per row and PntsV rows. Plain curves
// have PntsV == 1.
type Spline struct {
	Type   SplineType
	FlagU  KnotFlag
	FlagV  KnotFlag
	PntsU  int
	PntsV  int
	OrderU int
	OrderV int
	ResolU int
	ResolV int
	KnotsU []float64
	KnotsV []float64

	Bezier []BezTriple
	Points []GridPoint
}

// NewBezier returns a Bézier spline owning pts.
func NewBezier(pts []BezTriple, cyclic bool) *Spline {
	sp := &Spline{
		Type:   Bezier,
		PntsU:  len(pts),
		PntsV:  1,
		OrderU: 4,
		OrderV: 1,
		ResolU: 12,
		ResolV: 12,
		Bezier: pts,
	}
	if cyclic {
		sp.FlagU |= Cyclic
	}
	return sp
}

// NewGrid returns a poly or NURBS spline owning pts, which must hold
// pntsu×pntsv points.
func NewGrid(typ SplineType, pts []GridPoint, pntsu, pntsv int) *Spline {
	if len(pts) != pntsu*pntsv {
		panic(fmt.Sprintf("NewGrid: got %d points, want %d×%d", len(pts), pntsu, pntsv))
	}
	sp := &Spline{
		Type:   typ,
		PntsU:  pntsu,
		PntsV:  pntsv,
		OrderU: 4,
		OrderV: 4,
		ResolU: 12,
		ResolV: 12,
		Points: pts,
	}
	if typ == Poly {
		sp.OrderU, sp.OrderV = 1, 1
	}
	if pntsv == 1 {
		sp.OrderV = 1
	}
	sp.clampOrderU()
	sp.clampOrderV()
	sp.calcKnots()
	return sp
}

// IsBezier reports whether sp stores Bézier triples.
func (sp *Spline) IsBezier() bool {
	return sp.Type == Bezier
}

// IsSurface reports whether sp is a two-dimensional grid.
func (sp *Spline) IsSurface() bool {
	return !sp.IsBezier() && sp.PntsV > 1
}

func (sp *Spline) CyclicU() bool { return sp.FlagU&Cyclic != 0 }
func (sp *Spline) CyclicV() bool { return sp.FlagV&Cyclic != 0 }

// Len returns the number of control points.
func (sp *Spline) Len() int {
	if sp.IsBezier() {
		return len(sp.Bezier)
	}
	return len(sp.Points)
}

// ID returns the id of the i-th point.
func (sp *Spline) ID(i int) PointID {
	if sp.IsBezier() {
		return sp.Bezier[i].ID
	}
	return sp.Points[i].ID
}

// Selected reports whether the i-th point has any bit of flag set.
func (sp *Spline) Selected(i int, flag Flag) bool {
	if sp.IsBezier() {
		return sp.Bezier[i].Selected(flag)
	}
	return sp.Points[i].Selected(flag)
}

// SetSelected sets or clears flag on the i-th point.
func (sp *Spline) SetSelected(i int, flag Flag, on bool) {
	if sp.IsBezier() {
		if on {
			sp.Bezier[i].SelectAll(flag)
		} else {
			sp.Bezier[i].DeselectAll(flag)
		}
		return
	}
	if on {
		sp.Points[i].F |= flag
	} else {
		sp.Points[i].F &^= flag
	}
}

// SelectCount returns the number of points with any bit of flag set.
func (sp *Spline) SelectCount(flag Flag) int {
	n := 0
	for i := range sp.Len() {
		if sp.Selected(i, flag) {
			n++
		}
	}
	return n
}

// Grid returns the point at column u and row v.
func (sp *Spline) Grid(u, v int) *GridPoint {
	return &sp.Points[v*sp.PntsU+u]
}

// Copy returns a deep copy of sp, preserving point ids.
func (sp *Spline) Copy() *Spline {
	out := *sp
	out.KnotsU = append([]float64(nil), sp.KnotsU...)
	out.KnotsV = append([]float64(nil), sp.KnotsV...)
	if sp.Bezier != nil {
		out.Bezier = append([]BezTriple(nil), sp.Bezier...)
	}
	if sp.Points != nil {
		out.Points = append([]GridPoint(nil), sp.Points...)
	}
	return &out
}

// copyShape returns a copy of sp's settings with no points, sized for
// pntsu×pntsv.
func (sp *Spline) copyShape(pntsu, pntsv int) *Spline {
	out := *sp
	out.PntsU = pntsu
	out.PntsV = pntsv
	out.KnotsU = nil
	out.KnotsV = nil
	out.Bezier = nil
	out.Points = nil
	return &out
}

// setBezier replaces the Bézier points and updates the point count.
func (sp *Spline) setBezier(pts []BezTriple) {
	sp.Bezier = pts
	sp.PntsU = len(pts)
	sp.PntsV = 1
}

// setGrid replaces the grid points and updates the point counts, order
// clamping and knots.
func (sp *Spline) setGrid(pts []GridPoint, pntsu, pntsv int) {
	if len(pts) != pntsu*pntsv {
		panic(fmt.Sprintf("setGrid: got %d points, want %d×%d", len(pts), pntsu, pntsv))
	}
	sp.Points = pts
	sp.PntsU = pntsu
	sp.PntsV = pntsv
	sp.clampOrderU()
	sp.clampOrderV()
	sp.calcKnots()
}

// CopySplines deep copies a list of splines.
func CopySplines(nurbs []*Spline) []*Spline {
	out := make([]*Spline, len(nurbs))
	for i, sp := range nurbs {
		out[i] = sp.Copy()
	}
	return out
}

// ElementCount returns the number of shape-key elements of nurbs: three per
// Bézier triple and one per grid point.
func ElementCount(nurbs []*Spline) int {
	n := 0
	for _, sp := range nurbs {
		if sp.IsBezier() {
			n += 3 * len(sp.Bezier)
		} else {
			n += len(sp.Points)
		}
	}
	return n
}
