package spline

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// EditNurb is the state of an edit session: the editable splines and the
// correspondence table that links them to the baseline geometry.
type EditNurb struct {
	Nurbs    []*Spline
	KeyIndex *KeyIndexMap
	// ShapeNr is the index of the active shape key block, or -1 if no shape
	// key is active.
	ShapeNr int

	lastID PointID

	// locs maps point ids to their current storage position. It is rebuilt
	// lazily after every topology change.
	locs      map[PointID]location
	locsValid bool
}

type location struct {
	nu, pt int
}

// NewEditNurb returns an edit session owning nurbs. Points without an id are
// assigned one. The correspondence table starts out uninitialized.
func NewEditNurb(nurbs []*Spline) *EditNurb {
	ed := &EditNurb{
		Nurbs:    nurbs,
		KeyIndex: NewKeyIndexMap(),
		ShapeNr:  -1,
	}
	for _, sp := range nurbs {
		for i := range sp.Len() {
			ed.lastID = max(ed.lastID, sp.ID(i))
		}
	}
	for _, sp := range nurbs {
		ed.assignIDs(sp)
	}
	return ed
}

func (ed *EditNurb) newID() PointID {
	ed.lastID++
	return ed.lastID
}

// assignIDs gives every point of sp without an id a fresh one.
func (ed *EditNurb) assignIDs(sp *Spline) {
	for i := range sp.Bezier {
		if sp.Bezier[i].ID == 0 {
			sp.Bezier[i].ID = ed.newID()
		}
	}
	for i := range sp.Points {
		if sp.Points[i].ID == 0 {
			sp.Points[i].ID = ed.newID()
		}
	}
}

// dupBezt returns a copy of b with a fresh id. The copy has no
// correspondence entry.
func (ed *EditNurb) dupBezt(b BezTriple) BezTriple {
	b.ID = ed.newID()
	return b
}

// dupBP returns a copy of p with a fresh id. The copy has no correspondence
// entry.
func (ed *EditNurb) dupBP(p GridPoint) GridPoint {
	p.ID = ed.newID()
	return p
}

// AddSpline appends sp to the session, assigning ids to its points.
func (ed *EditNurb) AddSpline(sp *Spline) {
	ed.assignIDs(sp)
	ed.Nurbs = append(ed.Nurbs, sp)
	ed.touch()
}

// touch invalidates the position index after a topology change.
func (ed *EditNurb) touch() {
	ed.locsValid = false
}

// Locate returns the spline and point index of the point with the given id.
func (ed *EditNurb) Locate(id PointID) (nu, pt int, ok bool) {
	if !ed.locsValid {
		if ed.locs == nil {
			ed.locs = make(map[PointID]location)
		} else {
			clear(ed.locs)
		}
		for nu, sp := range ed.Nurbs {
			for pt := range sp.Len() {
				ed.locs[sp.ID(pt)] = location{nu, pt}
			}
		}
		ed.locsValid = true
	}
	l, ok := ed.locs[id]
	return l.nu, l.pt, ok
}

// removeSplines deletes every spline for which drop returns true.
func (ed *EditNurb) removeSplines(drop func(*Spline) bool) {
	out := ed.Nurbs[:0]
	for _, sp := range ed.Nurbs {
		if drop(sp) {
			ed.KeyIndex.DeleteRun(sp)
			continue
		}
		out = append(out, sp)
	}
	clear(ed.Nurbs[len(out):])
	ed.Nurbs = out
	ed.touch()
}

// forgetDropped pops the entries of points of old that no longer exist in
// the session.
func (ed *EditNurb) forgetDropped(old ...*Spline) {
	ed.touch()
	for _, sp := range old {
		for i := range sp.Len() {
			id := sp.ID(i)
			if _, _, ok := ed.Locate(id); !ok {
				ed.KeyIndex.Pop(id)
			}
		}
	}
}

// Clone returns a deep copy of the session, including the correspondence
// table, for use by a duplicated object.
func (ed *EditNurb) Clone() *EditNurb {
	return &EditNurb{
		Nurbs:    CopySplines(ed.Nurbs),
		KeyIndex: ed.KeyIndex.Clone(),
		ShapeNr:  ed.ShapeNr,
		lastID:   ed.lastID,
	}
}

// Curve is the data block that owns splines, shape keys and animation
// curves, and the edit session while one is active.
type Curve struct {
	Nurbs    []*Spline
	Key      *Key
	FCurves  []*FCurve
	EditNurb *EditNurb
}

// MakeEditNurb starts an edit session. The editable splines are copies of
// the curve's splines. If shapeNr is not negative, it names the active shape
// key block, whose data is applied to the copies. The correspondence table
// pairs every copied point with the curve's point. An existing session is
// discarded.
func (cu *Curve) MakeEditNurb(shapeNr int) error {
	if shapeNr >= 0 && (cu.Key == nil || shapeNr >= len(cu.Key.Blocks)) {
		return errors.Wrapf(ErrNoShapeKeys, "shape %d", shapeNr)
	}
	nurbs := CopySplines(cu.Nurbs)
	for _, sp := range nurbs {
		for i := range sp.Bezier {
			sp.Bezier[i].ID = 0
		}
		for i := range sp.Points {
			sp.Points[i].ID = 0
		}
	}
	ed := NewEditNurb(nurbs)
	if shapeNr >= 0 {
		ed.ShapeNr = shapeNr
		cu.Key.Blocks[shapeNr].ApplyTo(nurbs)
	}
	ed.KeyIndex.Init(ed.Nurbs, cu.Nurbs)
	cu.EditNurb = ed
	logger().Info("edit session started",
		zap.Int("splines", len(nurbs)),
		zap.Int("entries", ed.KeyIndex.Len()),
		zap.Int("shape", ed.ShapeNr))
	return nil
}

// LoadResult describes the side effects of committing an edit session.
type LoadResult struct {
	// RemovedFCurves lists animation curves that referred to deleted
	// points or splines. Detaching them is up to the caller, for example
	// with [Curve.RemoveFCurves].
	RemovedFCurves []*FCurve
	// VertexMap maps old vertex indices to new ones, see [VertexIndexMap].
	VertexMap map[int]int
}

// LoadEditNurb commits the edit session to the curve: shape keys are
// resynthesized, animation paths remapped and the curve's splines replaced
// by copies of the edited ones. The session stays active, rebased on the
// committed geometry.
func (cu *Curve) LoadEditNurb() LoadResult {
	ed := cu.EditNurb
	if ed == nil {
		return LoadResult{}
	}
	live := CopySplines(ed.Nurbs)
	if cu.Key != nil {
		ResynthesizeShapeKeys(ed.Nurbs, ed.KeyIndex, cu.Key, ed.ShapeNr, live)
	}
	vmap := VertexIndexMap(ed.Nurbs, ed.KeyIndex)
	removed := RemapAnimPaths(ed.Nurbs, ed.KeyIndex, cu.FCurves)
	cu.Nurbs = live

	ed.KeyIndex = NewKeyIndexMap()
	ed.KeyIndex.Init(ed.Nurbs, cu.Nurbs)
	logger().Info("edit session loaded",
		zap.Int("splines", len(live)),
		zap.Int("removedFCurves", len(removed)))
	return LoadResult{RemovedFCurves: removed, VertexMap: vmap}
}

// FreeEditNurb ends the edit session without committing it.
func (cu *Curve) FreeEditNurb() {
	cu.EditNurb = nil
}

// RemoveFCurves detaches the given animation curves from the curve.
func (cu *Curve) RemoveFCurves(fcus []*FCurve) {
	if len(fcus) == 0 {
		return
	}
	drop := make(map[*FCurve]bool, len(fcus))
	for _, fcu := range fcus {
		drop[fcu] = true
	}
	out := cu.FCurves[:0]
	for _, fcu := range cu.FCurves {
		if !drop[fcu] {
			out = append(out, fcu)
		}
	}
	clear(cu.FCurves[len(out):])
	cu.FCurves = out
}
