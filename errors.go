package spline

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidSelection is returned when the selection doesn't satisfy an
	// operation's preconditions. Nothing has been modified when it is
	// returned.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrResolutionMismatch is returned when surfaces can't be joined
	// because their row counts differ.
	ErrResolutionMismatch = errors.New("resolution does not match")
	// ErrNoShapeKeys is returned when a shape key block is requested that
	// doesn't exist.
	ErrNoShapeKeys = errors.New("no such shape key")
	// ErrUnknownOp is returned by Invoke for unknown operations.
	ErrUnknownOp = errors.New("unknown operation")
)

func invalidSelection(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidSelection, format, args...)
}

// Report summarizes the outcome of running an operation on several objects.
type Report struct {
	// Changed is the number of objects that were modified.
	Changed int
	// Failed is the number of objects the operation couldn't process.
	Failed int
	// Err is nil unless at least one object failed. If every object failed
	// for the same reason, Err is that reason; otherwise it is a generic
	// error that counts the failures.
	Err error
}

// aggregate computes a Report from per-object errors. Failures are grouped
// by their root cause.
func aggregate(changed int, errs []error) Report {
	r := Report{Changed: changed}
	var first error
	same := true
	for _, err := range errs {
		if err == nil {
			continue
		}
		r.Failed++
		if first == nil {
			first = err
		} else if errors.Cause(err) != errors.Cause(first) {
			same = false
		}
	}
	switch {
	case r.Failed == 0:
	case r.Failed == len(errs) && same:
		r.Err = first
	default:
		r.Err = errors.Errorf("%d object(s) could not be processed", r.Failed)
	}
	return r
}
