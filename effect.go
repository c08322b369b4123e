package reactive

// Cleanup is returned by an effect body to be run before the effect
// re-runs, and once more when the effect is stopped.
type Cleanup func()

// EffectOption configures a ReactiveEffect at construction time.
type EffectOption func(*ReactiveEffect)

// Scheduler overrides how a triggered effect is re-run: instead of
// calling Run() directly, trigger calls fn. Computed uses this to mark
// itself dirty and propagate invalidation upward without eagerly
// recomputing (§4.6).
func Scheduler(fn func()) EffectOption {
	return func(e *ReactiveEffect) { e.scheduler = fn }
}

// AllowRecurse lets an effect re-dispatch itself: without it, an
// effect that writes one of its own dependencies during its body is
// skipped by its own trigger (§8 property 8).
func AllowRecurse() EffectOption {
	return func(e *ReactiveEffect) { e.allowRecurse = true }
}

// WithScope attaches the effect to scope instead of whatever scope is
// currently entered (§4.7): "creating an effect with a scope option
// records it in that scope regardless of the currently-entered scope."
func WithScope(scope *EffectScope) EffectOption {
	return func(e *ReactiveEffect) { e.scope = scope }
}

// OnStop, OnTrackHook and OnTriggerHook install the debug hooks named
// in §3 ("Effect") and §6 ("Debug events").
func OnStop(fn func()) EffectOption      { return func(e *ReactiveEffect) { e.onStop = fn } }
func OnTrackHook(fn func(TrackEvent)) EffectOption {
	return func(e *ReactiveEffect) { e.onTrack = fn }
}
func OnTriggerHook(fn func(TriggerEvent)) EffectOption {
	return func(e *ReactiveEffect) { e.onTrigger = fn }
}

// ReactiveEffect is the engine's computation entity (§3 "Effect", §4.2
// "Effect engine").
type ReactiveEffect struct {
	id uint64

	fn      func() Cleanup
	cleanup Cleanup

	scheduler    func()
	allowRecurse bool
	active       bool

	// deps is the set of Deps this effect currently belongs to. The
	// bidirectional link (§3 invariant: D contains E <=> D in E.deps)
	// is always restored together by Run.
	deps []*Dep

	// trackDepth is this effect's own recursion depth while its body
	// is running (§4.2 step 5); 0 when not running.
	trackDepth uint

	scope *EffectScope

	onStop    func()
	onTrack   func(TrackEvent)
	onTrigger func(TriggerEvent)
}

// CreateEffect constructs and immediately runs a ReactiveEffect,
// recording it in the current scope if one is entered or WithScope
// was given (§4.2, "Public wrapper").
func CreateEffect(fn func() Cleanup, opts ...EffectOption) *ReactiveEffect {
	e := &ReactiveEffect{id: nextID(), fn: fn, active: true}
	for _, opt := range opts {
		opt(e)
	}
	if e.scope == nil {
		e.scope = currentScope
	}
	if e.scope != nil {
		e.scope.record(e)
	}
	e.Run()
	return e
}

// LazyEffect constructs a ReactiveEffect without running it — the
// caller runs it the first time via the returned runner.
func LazyEffect(fn func() Cleanup, opts ...EffectOption) *ReactiveEffect {
	e := &ReactiveEffect{id: nextID(), fn: fn, active: true}
	for _, opt := range opts {
		opt(e)
	}
	if e.scope == nil {
		e.scope = currentScope
	}
	if e.scope != nil {
		e.scope.record(e)
	}
	return e
}

// Run executes the effect's run algorithm (§4.2, steps 1-10).
func (e *ReactiveEffect) Run() {
	if !e.active {
		// Step 1: inactive effects run their fn untracked.
		if e.fn != nil {
			e.fn()
		}
		return
	}

	if !e.allowRecurse {
		for _, s := range effectStack {
			if s == e {
				// Step 2: self-call without AllowRecurse.
				return
			}
		}
	}

	// Step 3-4: push, set active effect, save/enable shouldTrack.
	effectStack = append(effectStack, e)
	prevActive := activeEffect
	activeEffect = e
	prevShouldTrack := shouldTrack
	shouldTrack = true

	// Step 5: depth := len(effectStack); bits are 1-indexed per §4.2.
	depth := uint(len(effectStack))
	prevDepth := e.trackDepth
	e.trackDepth = depth
	bit := uint32(1) << depth

	// Step 6: mark existing deps wasTracked for this depth, or clear
	// outright past the bitmask ceiling.
	if depth <= maxTrackDepth {
		for _, d := range e.deps {
			d.wasTracked |= bit
		}
	} else {
		for _, d := range e.deps {
			d.remove(e)
		}
		e.deps = e.deps[:0]
	}

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	func() {
		defer func() {
			endEffectSpan()
			// Step 10: finalize runs even if fn panics, so bookkeeping
			// stays consistent (§7, "Propagation policy").
			e.finalize(depth, bit)

			e.trackDepth = prevDepth
			effectStack = effectStack[:len(effectStack)-1]
			activeEffect = prevActive
			shouldTrack = prevShouldTrack
		}()
		startEffectSpan(e)
		e.cleanup = e.fn()
	}()
}

// finalize is §4.2 step 8: remove E from any Dep that was tracked
// before this run but not reached during it, then clear both bits on
// every Dep this run touched, and rebuild e.deps to exactly the deps
// read during this run.
func (e *ReactiveEffect) finalize(depth uint, bit uint32) {
	if depth > maxTrackDepth {
		return
	}

	kept := e.deps[:0]
	for _, d := range e.deps {
		if d.wasTracked&bit != 0 && d.newTracked&bit == 0 {
			d.remove(e)
		} else {
			kept = append(kept, d)
		}
		d.wasTracked &^= bit
		d.newTracked &^= bit
	}
	e.deps = kept
}

// Stop removes e from every Dep it belongs to and marks it inactive
// (§4.2, "Stop"). Idempotent.
func (e *ReactiveEffect) Stop() {
	if !e.active {
		return
	}
	for _, d := range e.deps {
		d.remove(e)
	}
	e.deps = nil
	e.active = false
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
	if e.onStop != nil {
		e.onStop()
	}
}

// Active reports whether Stop has not yet been called.
func (e *ReactiveEffect) Active() bool { return e.active }

// ID returns the effect's unique identifier, used for dedup during
// dispatch/union (§4.1, §5).
func (e *ReactiveEffect) ID() uint64 { return e.id }

// Stop disposes the runner returned by CreateEffect/LazyEffect. Kept
// as a free function too, matching the spec's external-interface list
// ("stop(runner)") alongside the method form.
func Stop(e *ReactiveEffect) { e.Stop() }

// OnMount runs fn once, immediately, with no tracked dependencies —
// a plain effect whose body never reads an observed value.
func OnMount(fn func()) {
	CreateEffect(func() Cleanup {
		PauseTracking()
		defer ResetTracking()
		fn()
		return nil
	})
}
