package spline

// Number of floats a control point occupies in a shape key block.
const (
	// BezTripleKeyLen is three positions, tilt and radius.
	BezTripleKeyLen = 11
	// GridPointKeyLen is a position, tilt and radius.
	GridPointKeyLen = 5
)

// CVKeyIndex links a current control point to the point it was in the
// baseline geometry.
type CVKeyIndex struct {
	// Exactly one of OrigBezt and OrigBP is set: a private copy of the
	// baseline point.
	OrigBezt *BezTriple
	OrigBP   *GridPoint

	// KeyIndex is the offset of the point's data in a shape key block.
	KeyIndex int
	// NuIndex and PtIndex are the spline and point index of the baseline
	// point.
	NuIndex int
	PtIndex int
	// VertexIndex counts three vertices per Bézier triple and one per grid
	// point and is used to remap vertex parents and hooks.
	VertexIndex int
	// Switched records that the point's handle order has been reversed since
	// the baseline was taken.
	Switched bool
}

func (e *CVKeyIndex) clone() *CVKeyIndex {
	out := *e
	if e.OrigBezt != nil {
		bezt := *e.OrigBezt
		out.OrigBezt = &bezt
	}
	if e.OrigBP != nil {
		bp := *e.OrigBP
		out.OrigBP = &bp
	}
	return &out
}

// origBezt returns the baseline triple as seen in the point's current
// orientation: when the point has been switched, its handles are exchanged
// and its tilt negated.
func (e *CVKeyIndex) origBezt() BezTriple {
	b := *e.OrigBezt
	if e.Switched {
		b.Vec[0], b.Vec[2] = b.Vec[2], b.Vec[0]
		b.H1, b.H2 = b.H2, b.H1
		b.Tilt = -b.Tilt
	}
	return b
}

// origBP returns the baseline grid point as seen in the point's current
// orientation.
func (e *CVKeyIndex) origBP() GridPoint {
	bp := *e.OrigBP
	if e.Switched {
		bp.Tilt = -bp.Tilt
	}
	return bp
}

// KeyIndexMap is the correspondence table of an edit session. It maps the id
// of a current control point to its baseline counterpart. Points created
// during the session have no entry.
type KeyIndexMap struct {
	entries map[PointID]*CVKeyIndex
}

// NewKeyIndexMap returns an empty, uninitialized table.
func NewKeyIndexMap() *KeyIndexMap {
	return &KeyIndexMap{}
}

// Initialized reports whether Init has populated the table.
func (m *KeyIndexMap) Initialized() bool {
	return m.entries != nil
}

// Init pairs every point of current with the point at the same spline and
// point index in baseline. It does nothing if the table is already
// initialized. Splines of current without a counterpart in baseline, and
// points beyond the baseline spline's length, are left without entries.
func (m *KeyIndexMap) Init(current, baseline []*Spline) {
	if m.entries != nil {
		return
	}
	m.entries = make(map[PointID]*CVKeyIndex)
	keyIndex, vertexIndex := 0, 0
	for nuIndex, orig := range baseline {
		var cur *Spline
		if nuIndex < len(current) {
			cur = current[nuIndex]
		}
		if orig.IsBezier() {
			for ptIndex := range orig.Bezier {
				if cur != nil && cur.IsBezier() && ptIndex < len(cur.Bezier) {
					bezt := orig.Bezier[ptIndex]
					m.entries[cur.Bezier[ptIndex].ID] = &CVKeyIndex{
						OrigBezt:    &bezt,
						KeyIndex:    keyIndex,
						NuIndex:     nuIndex,
						PtIndex:     ptIndex,
						VertexIndex: vertexIndex,
					}
				}
				keyIndex += BezTripleKeyLen
				vertexIndex += 3
			}
		} else {
			for ptIndex := range orig.Points {
				if cur != nil && !cur.IsBezier() && ptIndex < len(cur.Points) {
					bp := orig.Points[ptIndex]
					m.entries[cur.Points[ptIndex].ID] = &CVKeyIndex{
						OrigBP:      &bp,
						KeyIndex:    keyIndex,
						NuIndex:     nuIndex,
						PtIndex:     ptIndex,
						VertexIndex: vertexIndex,
					}
				}
				keyIndex += GridPointKeyLen
				vertexIndex++
			}
		}
	}
}

// Len returns the number of entries.
func (m *KeyIndexMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Lookup returns the entry of the point with the given id, or nil.
func (m *KeyIndexMap) Lookup(id PointID) *CVKeyIndex {
	if m == nil {
		return nil
	}
	return m.entries[id]
}

// Pop removes and returns the entry of the point with the given id, or nil.
func (m *KeyIndexMap) Pop(id PointID) *CVKeyIndex {
	if m == nil {
		return nil
	}
	e, ok := m.entries[id]
	if ok {
		delete(m.entries, id)
	}
	return e
}

// Insert stores e for the point with the given id, replacing any existing
// entry.
func (m *KeyIndexMap) Insert(id PointID, e *CVKeyIndex) {
	if m == nil || m.entries == nil || e == nil {
		return
	}
	m.entries[id] = e
}

// Rekey moves the entry of from to to. It does nothing if from has no entry.
func (m *KeyIndexMap) Rekey(from, to PointID) {
	if e := m.Pop(from); e != nil {
		m.Insert(to, e)
	}
}

// RekeyRun moves the entries of a run of points to a second run of points of
// the same length.
func (m *KeyIndexMap) RekeyRun(from, to []PointID) {
	if len(from) != len(to) {
		panic("RekeyRun: runs differ in length")
	}
	// Pop everything first so that overlapping runs don't clobber each other.
	es := make([]*CVKeyIndex, len(from))
	for i, id := range from {
		es[i] = m.Pop(id)
	}
	for i, id := range to {
		m.Insert(id, es[i])
	}
}

// Swap exchanges the entries of a and b. A missing entry is swapped like
// any other.
func (m *KeyIndexMap) Swap(a, b PointID) {
	if m == nil || m.entries == nil || a == b {
		return
	}
	ea, okA := m.entries[a]
	eb, okB := m.entries[b]
	delete(m.entries, a)
	delete(m.entries, b)
	if okA {
		m.entries[b] = ea
	}
	if okB {
		m.entries[a] = eb
	}
}

// DeleteRun removes the entries of every point of sp.
func (m *KeyIndexMap) DeleteRun(sp *Spline) {
	if m == nil || m.entries == nil {
		return
	}
	for i := range sp.Len() {
		delete(m.entries, sp.ID(i))
	}
}

// Clone returns a deep copy of the table, including the baseline snapshots.
func (m *KeyIndexMap) Clone() *KeyIndexMap {
	if m == nil {
		return nil
	}
	out := &KeyIndexMap{}
	if m.entries != nil {
		out.entries = make(map[PointID]*CVKeyIndex, len(m.entries))
		for id, e := range m.entries {
			out.entries[id] = e.clone()
		}
	}
	return out
}
