package spline

import (
	"fmt"
	"strings"
)

// FCurve is an animation curve bound to a property of the curve data by its
// path, such as "splines[0].bezier_points[3].handle_left".
type FCurve struct {
	Path  string
	Index int
	Group string
}

func pointPath(nu, pt int, bezier bool) string {
	if bezier {
		return fmt.Sprintf("splines[%d].bezier_points[%d]", nu, pt)
	}
	return fmt.Sprintf("splines[%d].points[%d]", nu, pt)
}

func splinePath(nu int) string {
	return fmt.Sprintf("splines[%d]", nu)
}

// hasPathPrefix reports whether path is prefix or a property below it.
func hasPathPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '.'
}

// isPointPath reports whether path addresses a control point.
func isPointPath(path string) bool {
	if !strings.HasPrefix(path, "splines[") {
		return false
	}
	i := strings.IndexByte(path, ']')
	if i < 0 {
		return false
	}
	rest := path[i+1:]
	return strings.HasPrefix(rest, ".bezier_points[") || strings.HasPrefix(rest, ".points[")
}

type pathRenamer struct {
	fcurves   []*FCurve
	processed map[*FCurve]bool
}

// rename moves every unprocessed curve below from to the same property below
// to. Renamed curves are marked processed and never match again.
func (r *pathRenamer) rename(from, to string) {
	for _, fcu := range r.fcurves {
		if r.processed[fcu] || !hasPathPrefix(fcu.Path, from) {
			continue
		}
		fcu.Path = to + fcu.Path[len(from):]
		r.processed[fcu] = true
	}
}

// collect marks and returns every unprocessed curve for which match returns
// true.
func (r *pathRenamer) collect(match func(string) bool) []*FCurve {
	var out []*FCurve
	for _, fcu := range r.fcurves {
		if r.processed[fcu] || !match(fcu.Path) {
			continue
		}
		r.processed[fcu] = true
		out = append(out, fcu)
	}
	return out
}

// RemapAnimPaths rewrites the paths of fcurves so that they follow the
// points and splines they were bound to before the edit session.
//
// Every point with a correspondence entry renames the curves below its
// baseline path to its current path; if the point has been switched, its
// left and right handle paths are exchanged, and so are those of the handle
// types. Each curve is renamed at most once. Curves bound to points that no
// longer exist are returned for removal. Then every spline renames the
// curves below its baseline path, using the entry of its first point that
// has one, and curves bound to splines that no longer exist are returned for
// removal as well. Curves bound to anything else are left alone.
//
// Afterwards the spline and point index of every entry are updated to the
// point's current position.
func RemapAnimPaths(current []*Spline, keys *KeyIndexMap, fcurves []*FCurve) []*FCurve {
	r := &pathRenamer{fcurves: fcurves, processed: make(map[*FCurve]bool)}

	for nu, sp := range current {
		bezier := sp.IsBezier()
		for pt := range sp.Len() {
			e := keys.Lookup(sp.ID(pt))
			if e == nil {
				continue
			}
			from := pointPath(e.NuIndex, e.PtIndex, bezier)
			to := pointPath(nu, pt, bezier)
			if bezier && e.Switched {
				for _, prop := range [][2]string{
					{"handle_left", "handle_right"},
					{"handle_right", "handle_left"},
					{"handle_left_type", "handle_right_type"},
					{"handle_right_type", "handle_left_type"},
				} {
					r.rename(from+"."+prop[0], to+"."+prop[1])
				}
			}
			r.rename(from, to)
		}
	}
	removed := r.collect(isPointPath)

	for nu, sp := range current {
		for pt := range sp.Len() {
			if e := keys.Lookup(sp.ID(pt)); e != nil {
				r.rename(splinePath(e.NuIndex), splinePath(nu))
				break
			}
		}
	}
	removed = append(removed, r.collect(func(path string) bool {
		return strings.HasPrefix(path, "splines")
	})...)

	for nu, sp := range current {
		for pt := range sp.Len() {
			if e := keys.Lookup(sp.ID(pt)); e != nil {
				e.NuIndex, e.PtIndex = nu, pt
			}
		}
	}
	return removed
}
