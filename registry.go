package reactive

// depStore is the per-target portion of the registry: the (key -> Dep)
// map described in §3 "Registry". It is embedded directly in every
// concrete target type (Object, ReactiveMap, ReactiveSet) rather than
// kept in one process-wide table keyed by target identity.
//
// This still satisfies the registry's invariants: a Dep is created
// lazily on first track() of a slot (lives until the target itself is
// collected), and a target that nobody references any more drops its
// deps for free because there is no separate table holding them alive
// — the weak-map behavior the spec asks for falls out of ordinary Go
// GC instead of needing an explicit weak.Pointer per slot. The one
// place this module does need an explicit weak reference is the
// proxy cache in factory.go, where the *same* target must map back to
// the *same* wrapper without the cache keeping the target alive; see
// that file.
type depStore struct {
	deps map[any]*Dep
}

func (s *depStore) depFor(key any) *Dep {
	if s.deps == nil {
		s.deps = make(map[any]*Dep)
	}
	d, ok := s.deps[key]
	if !ok {
		d = newDep()
		s.deps[key] = d
	}
	return d
}

func (s *depStore) getDep(key any) (*Dep, bool) {
	d, ok := s.deps[key]
	return d, ok
}

func (s *depStore) allDeps() []*Dep {
	out := make([]*Dep, 0, len(s.deps))
	for _, d := range s.deps {
		out = append(out, d)
	}
	return out
}

// target is anything that owns a depStore and can report what kind of
// observed object it is, purely for onTrack/onTrigger debug events.
type target interface {
	depStoreOf() *depStore
	debugLabel() string
}

// track records the active effect's dependency on target's key slot.
// No-op if tracking is currently disabled or no effect is active —
// matching the spec's invariant that "a read performed outside any
// effect never mutates the registry."
func track(t target, kind TrackOpType, key any) {
	if !shouldTrack || activeEffect == nil {
		return
	}
	dep := t.depStoreOf().depFor(key)
	trackEffects(dep, activeEffect)

	if DebugMode {
		event := TrackEvent{Effect: activeEffect, Target: t, Type: kind, Key: key}
		if Debug.OnTrack != nil {
			Debug.OnTrack(event)
		}
		if activeEffect.onTrack != nil {
			activeEffect.onTrack(event)
		}
	}
	recordTrack()
}

// TrackEvent is the payload passed to Debug.OnTrack (§6).
type TrackEvent struct {
	Effect *ReactiveEffect
	Target target
	Type   TrackOpType
	Key    any
}

// TriggerEvent is the payload passed to Debug.OnTrigger (§6) and to
// each dispatched effect's own onTrigger hook. Effect identifies which
// subscriber is being notified; it is nil on the copy passed to the
// process-wide Debug.OnTrigger, which fires once per trigger() call
// rather than once per subscriber.
type TriggerEvent struct {
	Effect   *ReactiveEffect
	Target   target
	Type     TriggerOpType
	Key      any
	NewValue any
	OldValue any
}

// trigger collects every Dep implicated by a write to target's key
// slot (following the table in §4.1) and dispatches their effects.
//
// isCollection distinguishes plain structural targets from
// keyed collections (ReactiveMap/ReactiveSet), which additionally
// fire MAP_ITERATE on ADD/DELETE per the trigger table.
func trigger(t target, kind TriggerOpType, key any, newValue, oldValue any, isArray, isCollection bool) {
	store := t.depStoreOf()

	var deps []*Dep
	add := func(k any) {
		if d, ok := store.getDep(k); ok {
			deps = append(deps, d)
		}
	}

	switch kind {
	case TriggerClear:
		deps = store.allDeps()

	case TriggerSet:
		if isCollection {
			add(key)
			add(iterateKey)
		} else {
			add(key)
		}

	case TriggerAdd:
		if isArray {
			add(key)
			add(lengthKey)
		} else {
			add(key)
			add(iterateKey)
			if isCollection {
				add(mapIterateKey)
			}
		}

	case TriggerDelete:
		add(key)
		add(iterateKey)
		if isCollection {
			add(mapIterateKey)
		}
	}

	if isArray && key == lengthKey {
		// "key=length on array": every indexed key whose numeric index
		// >= newLength, plus "length" itself. newValue carries the new
		// length; deps for specific indices are collected by the caller
		// (Object.SetLength) via triggerLengthShrink, since only it
		// knows which indices exist in the dep store.
		add(lengthKey)
	}

	event := TriggerEvent{Target: t, Type: kind, Key: key, NewValue: newValue, OldValue: oldValue}
	if DebugMode && Debug.OnTrigger != nil {
		Debug.OnTrigger(event)
	}
	recordTrigger()

	dispatch(unionEffects(deps), event)
}

// triggerLengthShrink implements the array "length" row of the §4.1
// table precisely: every indexed key >= newLength, plus "length".
func triggerLengthShrink(t target, newLength int) {
	store := t.depStoreOf()
	var deps []*Dep
	for k, d := range store.deps {
		if ik, ok := k.(int); ok && ik >= newLength {
			deps = append(deps, d)
		}
	}
	if d, ok := store.getDep(lengthKey); ok {
		deps = append(deps, d)
	}
	dispatch(unionEffects(deps), TriggerEvent{Target: t, Type: TriggerSet, Key: lengthKey, NewValue: newLength})
}

// unionEffects deduplicates effects across multiple collected deps,
// preserving first-seen order (§5, "Ordering").
func unionEffects(deps []*Dep) []*ReactiveEffect {
	if len(deps) == 0 {
		return nil
	}
	seen := make(map[uint64]bool)
	var out []*ReactiveEffect
	for _, d := range deps {
		for _, e := range d.snapshot() {
			if !seen[e.id] {
				seen[e.id] = true
				out = append(out, e)
			}
		}
	}
	return out
}

// dispatch runs triggerEffects over a pre-unioned effect list (§4.2,
// "Dispatch (triggerEffects)"), firing each dispatched effect's own
// onTrigger hook (if any) first.
func dispatch(effects []*ReactiveEffect, event TriggerEvent) {
	for _, e := range effects {
		if e == activeEffect && !e.allowRecurse {
			continue
		}
		if DebugMode && e.onTrigger != nil {
			event.Effect = e
			e.onTrigger(event)
		}
		if e.scheduler != nil {
			e.scheduler()
		} else {
			e.Run()
		}
	}
}
