// Package spline provides topology editing for Bézier curves, poly and NURBS
// curves, and NURBS surfaces, while keeping shape keys and animation curves
// bound to the control points they were authored for.
//
// # Splines
//
// A [Spline] stores either a list of [BezTriple] points or a row-major grid
// of [GridPoint] points. Plain curves are grids with a single row. Every
// control point carries a [PointID] that stays with it when a spline's
// storage is rebuilt, so code holding on to a point doesn't have to track its
// position.
//
// # Edit sessions
//
// Editing happens in an [EditNurb], usually started with
// [Curve.MakeEditNurb]. The session owns copies of the curve's splines and a
// [KeyIndexMap], the correspondence table that remembers, for every point
// that existed when the session started, what it looked like and where its
// data lives in the curve's shape keys. Points created during the session
// have no entry.
//
// The topology operations are methods on [EditNurb]:
//   - [EditNurb.DeleteVertices] and [EditNurb.DeleteSegments]
//   - [EditNurb.Dissolve]
//   - [EditNurb.Extrude]
//   - [EditNurb.Subdivide]
//   - [EditNurb.MakeSegment]
//   - [EditNurb.SwitchDirection] and [EditNurb.ToggleCyclic]
//   - [EditNurb.Duplicate] and [EditNurb.Split]
//   - [EditNurb.SmoothScalar] and [EditNurb.SetHandleType]
//
// [EditNurb.Invoke] dispatches them by name, and [InvokeAll] runs one on
// several sessions at once. Operations that check the selection do so before
// modifying anything; if they reject it, they return an error wrapping
// [ErrInvalidSelection] and the session is unchanged.
//
// # Committing
//
// [Curve.LoadEditNurb] writes the session back. Shape key blocks are rebuilt
// with [ResynthesizeShapeKeys], animation curve paths are rewritten with
// [RemapAnimPaths], and a [VertexIndexMap] is computed for remapping hooks
// and vertex parents.
//
// # Logging
//
// The package logs through a [go.uber.org/zap] logger, which discards
// everything unless one is configured with [SetLogger].
package spline
