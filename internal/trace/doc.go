// Package trace provides lightweight, structured tracing across the
// compiler's driver, pass, and module boundaries.
//
// Tracing is opt-in and near-zero-cost when disabled: the nop tracer
// short-circuits Enabled() before any allocation happens, so instrumented
// call sites (Begin/End) cost one interface check on the hot path.
//
// Typical usage:
//
//	sp := trace.Begin(t, trace.ScopePass, "sema", 0)
//	defer sp.End("ok")
//
// A Tracer is carried through a context.Context via WithTracer/FromContext
// so deeply nested calls (module loading, per-declaration analysis) can
// emit events without threading an explicit parameter everywhere.
package trace
