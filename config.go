package reactive

// DebugMode gates the onTrack/onTrigger debug-event surface (§6) and
// the metrics/tracing wiring in metrics.go. Left off by default since
// both add per-track/per-trigger overhead.
var DebugMode = false

// DebugHooks holds the process-wide onTrack/onTrigger callbacks fired
// when DebugMode is on. Per-effect hooks (OnTrackHook/OnTriggerHook)
// fire independently of this global pair.
type DebugHooks struct {
	OnTrack   func(TrackEvent)
	OnTrigger func(TriggerEvent)
}

// Debug is the process-wide instance consulted by track()/trigger().
var Debug = DebugHooks{}

// LogWarnings gates the stderr diagnostics in errors.go (read-only
// write attempts, observing an unsupported target, setting a
// setter-less computed). On by default — these indicate a programming
// error, not a recoverable condition.
var LogWarnings = true
