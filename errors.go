package reactive

import (
	"fmt"
	"os"
)

// warn prints a diagnostic to stderr when LogWarnings is on. None of
// the conditions reported through it stop the caller: each degrades to
// a warning plus a best-effort fallback. (Assigning a value of an
// incompatible type into an Object slot is not one of them: coerce
// panics.)
func warn(format string, args ...any) {
	if !LogWarnings {
		return
	}
	fmt.Fprintf(os.Stderr, "reactive: "+format+"\n", args...)
}

// warnReadonlyWrite reports an attempted mutation through a readonly
// wrapper (§7, "Readonly violation"). The write is dropped; the
// wrapper's value is left unchanged.
func warnReadonlyWrite(target any, key any) {
	warn("set on key %v failed: target is readonly (%v)", key, target)
}

// warnUnsupportedTarget reports that Reactive/Readonly was called on
// a value that is not a struct pointer, map, or slice (§4.3,
// "Observable target kinds"). The original value is returned
// unwrapped, not panicked on, so callers that pass through arbitrary
// values (e.g. storing primitives in a wider state tree) keep working.
func warnUnsupportedTarget(v any) {
	warn("value of type %T is not an observable target (want struct pointer, map, or slice); returning it unwrapped", v)
}

// warnMissingSetter reports a write to a Computed that has no setter
// (§4.6, "Computed without a setter is read-only").
func warnMissingSetter() {
	warn("write to computed value ignored: no setter was supplied")
}
