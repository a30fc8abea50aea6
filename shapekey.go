package spline

import (
	"go.uber.org/zap"
)

// Key is a set of shape key blocks. Block 0 is the reference key.
type Key struct {
	// Relative keys store shapes blended on top of the block named by
	// their RelativeTo.
	Relative bool
	Blocks   []*KeyBlock
}

// KeyBlock is one shape. Data holds BezTripleKeyLen floats per Bézier triple
// and GridPointKeyLen floats per grid point, in spline order.
type KeyBlock struct {
	Name       string
	Data       []float64
	TotElem    int
	RelativeTo int
}

// NewKeyBlock returns a block holding the current shape of nurbs.
func NewKeyBlock(name string, nurbs []*Spline) *KeyBlock {
	var data []float64
	for _, sp := range nurbs {
		data = appendSplineKey(data, sp)
	}
	return &KeyBlock{Name: name, Data: data, TotElem: ElementCount(nurbs)}
}

// ApplyTo writes the block's shape into nurbs. Points the block has no data
// for are left alone.
func (kb *KeyBlock) ApplyTo(nurbs []*Spline) {
	off := 0
	for _, sp := range nurbs {
		for i := range sp.Len() {
			size := keyLen(sp)
			if off+size > len(kb.Data) {
				logger().Warn("shape key block is shorter than the geometry",
					zap.String("block", kb.Name),
					zap.Int("floats", len(kb.Data)),
					zap.Int("want", off+size))
				return
			}
			if sp.IsBezier() {
				beztFromKey(&sp.Bezier[i], kb.Data[off:])
			} else {
				bpFromKey(&sp.Points[i], kb.Data[off:])
			}
			off += size
		}
	}
}

// DependentKeys reports for every block whether it is relative, directly or
// through other blocks, to block index. The block itself is not counted. It
// returns nil if the key isn't relative or nothing depends on index.
func (k *Key) DependentKeys(index int) []bool {
	if k == nil || !k.Relative || index < 0 || index >= len(k.Blocks) {
		return nil
	}
	dep := make([]bool, len(k.Blocks))
	dep[index] = true
	for changed := true; changed; {
		changed = false
		for i, kb := range k.Blocks {
			if dep[i] || i == kb.RelativeTo {
				continue
			}
			if kb.RelativeTo >= 0 && kb.RelativeTo < len(dep) && dep[kb.RelativeTo] {
				dep[i] = true
				changed = true
			}
		}
	}
	dep[index] = false
	for _, d := range dep {
		if d {
			return dep
		}
	}
	return nil
}

func keyLen(sp *Spline) int {
	if sp.IsBezier() {
		return BezTripleKeyLen
	}
	return GridPointKeyLen
}

func appendBeztKey(dst []float64, b *BezTriple) []float64 {
	for _, v := range b.Vec {
		dst = v.appendFloats(dst)
	}
	return append(dst, b.Tilt, b.Radius)
}

func appendBPKey(dst []float64, p *GridPoint) []float64 {
	dst = p.Vec.appendFloats(dst)
	return append(dst, p.Tilt, p.Radius)
}

func appendSplineKey(dst []float64, sp *Spline) []float64 {
	for i := range sp.Bezier {
		dst = appendBeztKey(dst, &sp.Bezier[i])
	}
	for i := range sp.Points {
		dst = appendBPKey(dst, &sp.Points[i])
	}
	return dst
}

func beztFromKey(b *BezTriple, f []float64) {
	b.Vec[0] = vecFromFloats(f[0:])
	b.Vec[1] = vecFromFloats(f[3:])
	b.Vec[2] = vecFromFloats(f[6:])
	b.Tilt = f[9]
	b.Radius = f[10]
}

func bpFromKey(p *GridPoint, f []float64) {
	p.Vec = vecFromFloats(f)
	p.Tilt = f[3]
	p.Radius = f[4]
}

// appendOrigKey appends the stored key data src of a point, mirrored into
// the point's current orientation if it has been switched.
func appendOrigKey(dst, src []float64, bezier, switched bool) []float64 {
	start := len(dst)
	dst = append(dst, src...)
	if !switched {
		return dst
	}
	f := dst[start:]
	if bezier {
		for i := range 3 {
			f[i], f[6+i] = f[6+i], f[i]
		}
		f[9] = -f[9]
	} else {
		f[3] = -f[3]
	}
	return dst
}

// keyOffsets returns, in the key layout of current, how far every point with
// an entry has moved away from its baseline. Fresh points have no offset.
func keyOffsets(current []*Spline, keys *KeyIndexMap) []float64 {
	var ofs []float64
	for _, sp := range current {
		for i := range sp.Len() {
			start := len(ofs)
			e := keys.Lookup(sp.ID(i))
			if sp.IsBezier() {
				ofs = appendBeztKey(ofs, &sp.Bezier[i])
				if e != nil && e.OrigBezt != nil {
					orig := e.origBezt()
					subKey(ofs[start:], appendBeztKey(nil, &orig))
				} else {
					clear(ofs[start:])
				}
			} else {
				ofs = appendBPKey(ofs, &sp.Points[i])
				if e != nil && e.OrigBP != nil {
					orig := e.origBP()
					subKey(ofs[start:], appendBPKey(nil, &orig))
				} else {
					clear(ofs[start:])
				}
			}
		}
	}
	return ofs
}

func subKey(dst, src []float64) {
	for i := range dst {
		dst[i] -= src[i]
	}
}

func addKey(dst, src []float64) {
	for i := range dst {
		dst[i] += src[i]
	}
}

// ResynthesizeShapeKeys rebuilds the data of every block of key for the
// edited splines current.
//
// The active block takes the current geometry. Every other block keeps the
// value it had for each point that has a correspondence entry, found at the
// entry's key index; points without an entry take their current value. On
// relative keys, blocks that depend on the active block additionally move by
// as much as their points have been moved in the edit session, and the
// handles of their splines with moved points are recomputed afterwards.
//
// If active is not the reference block, live, which must have the same
// layout as current, receives the baseline values of all points with an
// entry, so that it holds the unkeyed shape.
//
// active may be -1 if no block is active. Nothing happens if key has no
// blocks.
func ResynthesizeShapeKeys(current []*Spline, keys *KeyIndexMap, key *Key, active int, live []*Spline) {
	if key == nil || len(key.Blocks) == 0 {
		return
	}
	totElem := ElementCount(current)
	var (
		dependent []bool
		ofs       []float64
	)
	if active >= 0 {
		dependent = key.DependentKeys(active)
	}
	if dependent != nil {
		ofs = keyOffsets(current, keys)
	}

	for bi, kb := range key.Blocks {
		applyOfs := dependent != nil && dependent[bi]
		data := make([]float64, 0, len(ofs))
		for ni, sp := range current {
			var lsp *Spline
			if ni < len(live) {
				lsp = live[ni]
			}
			for i := range sp.Len() {
				start := len(data)
				e := keys.Lookup(sp.ID(i))
				if bi == active {
					data = appendLiveKey(data, sp, i)
					if active != 0 && e != nil && lsp != nil {
						restoreOrig(lsp, i, e)
					}
					continue
				}
				size := keyLen(sp)
				if e == nil || e.KeyIndex+size > len(kb.Data) {
					data = appendLiveKey(data, sp, i)
				} else {
					data = appendOrigKey(data, kb.Data[e.KeyIndex:e.KeyIndex+size], sp.IsBezier(), e.Switched)
				}
				if applyOfs {
					addKey(data[start:], ofs[start:start+size])
				}
			}
		}
		if applyOfs {
			calcKeyHandles(current, data, ofs)
		}
		kb.Data = data
		kb.TotElem = totElem
	}
}

func appendLiveKey(dst []float64, sp *Spline, i int) []float64 {
	if sp.IsBezier() {
		return appendBeztKey(dst, &sp.Bezier[i])
	}
	return appendBPKey(dst, &sp.Points[i])
}

// restoreOrig writes the baseline position, tilt and radius of the point
// with entry e into point i of sp.
func restoreOrig(sp *Spline, i int, e *CVKeyIndex) {
	if sp.IsBezier() {
		if e.OrigBezt == nil || i >= len(sp.Bezier) {
			return
		}
		orig := e.origBezt()
		b := &sp.Bezier[i]
		b.Vec = orig.Vec
		b.Tilt = orig.Tilt
		b.Radius = orig.Radius
		return
	}
	if e.OrigBP == nil || i >= len(sp.Points) {
		return
	}
	orig := e.origBP()
	p := &sp.Points[i]
	p.Vec = orig.Vec
	p.Tilt = orig.Tilt
	p.Radius = orig.Radius
}

// calcKeyHandles recomputes the auto handles of Bézier splines inside key
// data laid out for nurbs. Splines none of whose points moved, according to
// ofs, are left as they are.
func calcKeyHandles(nurbs []*Spline, data, ofs []float64) {
	off := 0
	for _, sp := range nurbs {
		if !sp.IsBezier() {
			off += len(sp.Points) * GridPointKeyLen
			continue
		}
		size := len(sp.Bezier) * BezTripleKeyLen
		if allZero(ofs[off : off+size]) {
			off += size
			continue
		}
		tmp := &Spline{Type: Bezier, FlagU: sp.FlagU, Bezier: append([]BezTriple(nil), sp.Bezier...)}
		for i := range tmp.Bezier {
			beztFromKey(&tmp.Bezier[i], data[off+i*BezTripleKeyLen:])
		}
		tmp.CalcHandles()
		for i := range tmp.Bezier {
			b := &tmp.Bezier[i]
			f := data[off+i*BezTripleKeyLen:]
			b.Vec[0].putFloats(f[0:])
			b.Vec[2].putFloats(f[6:])
		}
		off += size
	}
}

func allZero(fs []float64) bool {
	for _, f := range fs {
		if f != 0 {
			return false
		}
	}
	return true
}
