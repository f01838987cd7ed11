package occlcull

import (
	"fmt"
	"log"
	"os"
)

// LogCategory classifies a diagnostic message emitted by the subtraction
// engine or the cull context.
type LogCategory int

const (
	LogProgress LogCategory = 1 + iota // A progress log entry.
	LogWarning                         // A warning log entry.
	LogError                           // An error log entry.
)

func (c LogCategory) String() string {
	switch c {
	case LogProgress:
		return "PROG"
	case LogWarning:
		return "WARN"
	case LogError:
		return "ERR"
	default:
		return "????"
	}
}

// Context receives the side-channel diagnostics the library emits instead of
// propagating errors through return values: an odd intersection parity or an
// unmatched (M,S,I) case. Precondition violations are not logged; they are
// checked only by debug-build assertions.
// Implementations must not be called concurrently; the library is
// single-threaded.
type Context interface {
	Log(category LogCategory, format string, args ...interface{})
}

// nopContext discards every diagnostic.
type nopContext struct{}

func (nopContext) Log(LogCategory, string, ...interface{}) {}

// DefaultContext discards all diagnostics.
var DefaultContext Context = nopContext{}

// LogContext routes diagnostics through a standard *log.Logger, prefixed
// with their category.
type LogContext struct {
	logger *log.Logger
}

// NewLogContext returns a Context that writes through l. If l is nil, a
// logger writing to os.Stderr is created.
func NewLogContext(l *log.Logger) *LogContext {
	if l == nil {
		l = log.New(os.Stderr, "", log.LstdFlags)
	}
	return &LogContext{logger: l}
}

func (c *LogContext) Log(category LogCategory, format string, args ...interface{}) {
	c.logger.Output(2, fmt.Sprintf("%s %s", category, fmt.Sprintf(format, args...)))
}

// DebugContext is implemented by a Context that additionally wants the
// subtraction engine's verbose per-step tracing (which candidate
// intersections the toggle classification dropped, and when a low-confidence
// start makes the walk treat the minuend as fully inside) —
// the same detail the original source gated behind a compile-time DEBUG
// flag. Most callers don't implement it, so tracing stays off by default.
type DebugContext interface {
	Context
	DebugEnabled() bool
}

// debugTrace logs format/args at LogProgress if ctx opts into DebugContext
// and has tracing enabled; it's a silent no-op otherwise, so call sites
// don't need to branch on ctx's concrete type themselves.
func debugTrace(ctx Context, format string, args ...interface{}) {
	if dc, ok := ctx.(DebugContext); ok && dc.DebugEnabled() {
		dc.Log(LogProgress, format, args...)
	}
}

// LogContextWithTracing wraps a *LogContext and additionally satisfies
// DebugContext, enabling the subtraction engine's verbose tracing.
type LogContextWithTracing struct {
	*LogContext
}

// NewTracingLogContext returns a DebugContext that writes through l (see
// NewLogContext) with tracing enabled.
func NewTracingLogContext(l *log.Logger) *LogContextWithTracing {
	return &LogContextWithTracing{LogContext: NewLogContext(l)}
}

func (*LogContextWithTracing) DebugEnabled() bool { return true }
