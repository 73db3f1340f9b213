// Package ifaces provides internal interface definitions shared by the
// iosched, sched, and mmu simulator packages. These are separate from
// each simulator's own Policy/Pager surface to avoid circular imports
// between a simulator package and the packages its CLI wires together.
package ifaces

// Logger is the trace/diagnostic sink every simulator accepts. It is
// satisfied by *internal/logging.Logger; tests pass a no-op or
// buffer-backed stand-in.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Trace(line string)
}

// RandomSource is the deterministic random-number source described in
// spec.md §3.1. NextBounded implements the SCHED semantics
// (1-based, modulus-wrapped); NextRaw implements the MMU semantics
// (the caller reduces modulo n_frames itself).
type RandomSource interface {
	NextBounded(modulus int) int
	NextRaw() int64
}
