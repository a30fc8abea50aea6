package spline

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Op names a topology operation for [EditNurb.Invoke].
type Op string

const (
	OpDelete          Op = "delete"
	OpDeleteSegments  Op = "delete_segments"
	OpDissolve        Op = "dissolve"
	OpExtrude         Op = "extrude"
	OpSubdivide       Op = "subdivide"
	OpMakeSegment     Op = "make_segment"
	OpSwitchDirection Op = "switch_direction"
	OpCyclicToggle    Op = "cyclic_toggle"
	OpDuplicate       Op = "duplicate"
	OpSplit           Op = "split"
	OpSmooth          Op = "smooth"
	OpHandleType      Op = "handle_type_set"
)

// Params holds the parameters of an operation. The zero value selects
// sensible defaults.
type Params struct {
	// Flag is the selection mask operated on. Defaults to Select.
	Flag Flag
	// Cuts is the number of points Subdivide inserts per segment. Defaults
	// to 1.
	Cuts int
	// Axis is the surface direction CyclicToggle acts on.
	Axis Axis
	// HandleType is the type HandleType assigns.
	HandleType HandleType
	// Field is the attribute Smooth acts on.
	Field    Field
	Dissolve DissolveOpts
}

// Invoke runs op on the session. It reports whether anything was changed.
// Operations that reject the selection return an error wrapping
// ErrInvalidSelection and leave the session untouched.
func (ed *EditNurb) Invoke(op Op, p Params) (changed bool, err error) {
	flag := p.Flag
	if flag == 0 {
		flag = Select
	}
	switch op {
	case OpDelete:
		changed, err = ed.DeleteVertices(flag)
	case OpDeleteSegments:
		changed, err = ed.DeleteSegments(flag)
	case OpDissolve:
		changed, err = ed.Dissolve(flag, p.Dissolve)
	case OpExtrude:
		changed, err = ed.Extrude(flag)
	case OpSubdivide:
		changed, err = ed.Subdivide(flag, p.Cuts)
	case OpMakeSegment:
		changed, err = ed.MakeSegment(flag)
	case OpSwitchDirection:
		changed, err = ed.SwitchDirection(flag)
	case OpCyclicToggle:
		changed, err = ed.ToggleCyclic(flag, p.Axis)
	case OpDuplicate:
		changed, err = ed.Duplicate(flag)
	case OpSplit:
		changed, err = ed.Split(flag)
	case OpSmooth:
		changed, err = ed.SmoothScalar(flag, p.Field)
	case OpHandleType:
		changed, err = ed.SetHandleType(flag, p.HandleType)
	default:
		return false, errors.Wrapf(ErrUnknownOp, "%q", op)
	}
	if err != nil {
		logger().Debug("operation rejected", zap.String("op", string(op)), zap.Error(err))
	}
	return changed, err
}

// InvokeAll runs op on every session, as when several objects are edited at
// once, and summarizes the outcome.
func InvokeAll(eds []*EditNurb, op Op, p Params) Report {
	changed := 0
	errs := make([]error, len(eds))
	for i, ed := range eds {
		ok, err := ed.Invoke(op, p)
		errs[i] = err
		if ok {
			changed++
		}
	}
	return aggregate(changed, errs)
}
