package reactive

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Metrics wiring exists for the same reason the teacher instruments
// its own effect engine: the cost of a pathological dependency graph
// (an effect that tracks thousands of slots, a trigger that fans out
// to a storm of listeners) is invisible without counters, and a
// tracing backend turns "which effect re-ran, and because of what
// trigger" from a guess into a span tree. Both are gated by DebugMode
// so the hot path pays nothing when neither is in use.
var (
	tracksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reactive_tracks_total",
		Help: "Number of dependency-tracking reads recorded.",
	})
	triggersTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reactive_triggers_total",
		Help: "Number of dependency-triggering writes processed.",
	})
	effectRunsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reactive_effect_runs_total",
		Help: "Number of effect body executions.",
	})
)

func init() {
	prometheus.MustRegister(tracksTotal, triggersTotal, effectRunsTotal)
}

// Collectors returns the package's prometheus collectors, for callers
// that register against their own registry instead of the default one.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{tracksTotal, triggersTotal, effectRunsTotal}
}

func recordTrack() {
	if !DebugMode {
		return
	}
	tracksTotal.Inc()
}

func recordTrigger() {
	if !DebugMode {
		return
	}
	triggersTotal.Inc()
}

// tracer is the otel tracer used for effect-run and computed-recompute
// spans. The package name doubles as the instrumentation name.
var tracer = otel.Tracer("github.com/vango-dev/reactive")

// spanStack mirrors effectStack (§4.2, "nested runs compose as a
// stack"): a nested effect's span must become a child of its parent's
// span and must not clobber it, so each level of the effect stack gets
// its own entry here rather than a single shared variable.
var spanStack []spanFrame

type spanFrame struct {
	ctx  context.Context
	span trace.Span
}

// startEffectSpan opens a span around an effect body when DebugMode is
// on, parented to whichever effect span (if any) is currently open.
func startEffectSpan(e *ReactiveEffect) {
	if !DebugMode {
		return
	}
	parent := context.Background()
	if n := len(spanStack); n > 0 {
		parent = spanStack[n-1].ctx
	}
	ctx, span := tracer.Start(parent, "reactive.effect.run")
	spanStack = append(spanStack, spanFrame{ctx: ctx, span: span})
	effectRunsTotal.Inc()
}

func endEffectSpan() {
	if !DebugMode || len(spanStack) == 0 {
		return
	}
	last := len(spanStack) - 1
	spanStack[last].span.End()
	spanStack = spanStack[:last]
}
