package spline

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// loggerPtr stores the active logger. Accessed atomically so that SetLogger
// can be called concurrently with an edit running on another goroutine.
var loggerPtr atomic.Pointer[zap.Logger]

func init() {
	loggerPtr.Store(zap.NewNop())
}

// SetLogger configures the logger used by the package. By default nothing is
// logged. Pass nil to restore the default.
//
// Log levels used:
//   - Debug: rejected selections and skipped splines
//   - Info: edit sessions starting and being committed
//   - Warn: inconsistent input that was repaired, such as key blocks that
//     are shorter than the geometry they describe
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	loggerPtr.Store(l)
}

// Logger returns the logger used by the package.
func Logger() *zap.Logger {
	return loggerPtr.Load()
}

func logger() *zap.Logger {
	return loggerPtr.Load()
}
