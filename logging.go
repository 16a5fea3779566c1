package broadcastring

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// pkgLogger holds the package-wide diagnostic logger behind an atomic
// pointer so SetLogger can be called concurrently with running queues
// without a race. It defaults to a no-op logger: callers who never wire
// in a logger still get a fully functional queue with zero logging
// overhead beyond the atomic load.
var pkgLogger atomic.Pointer[zap.SugaredLogger]

func init() {
	pkgLogger.Store(zap.NewNop().Sugar())
}

// SetLogger installs l as the package-wide diagnostic logger used for
// non-fatal warnings (slot CAS invariant violations, ring lifetime
// exhaustion) and debug-level overrun reporting. Passing nil restores
// the no-op logger.
func SetLogger(l *zap.SugaredLogger) {
	if l == nil {
		l = zap.NewNop().Sugar()
	}
	pkgLogger.Store(l)
}

func logger() *zap.SugaredLogger {
	return pkgLogger.Load()
}
