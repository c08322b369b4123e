package reactive

// Computed is a lazy, memoized derivation (§4.6): its value is
// produced by an internal effect whose scheduler marks the derivation
// dirty and propagates invalidation to its own subscribers, without
// eagerly recomputing. The next read is what actually recomputes.
type Computed[T any] struct {
	d *Dep

	dirty bool
	value T

	getter func() T
	setter func(T)

	effect *ReactiveEffect
}

// NewComputed builds a read-only derivation from getter.
func NewComputed[T any](getter func() T) *Computed[T] {
	return newComputed(getter, nil)
}

// NewWritableComputed builds a derivation with both a getter and a
// setter, so writes through Set forward to setter instead of warning
// (§4.6 "Write").
func NewWritableComputed[T any](getter func() T, setter func(T)) *Computed[T] {
	return newComputed(getter, setter)
}

func newComputed[T any](getter func() T, setter func(T)) *Computed[T] {
	c := &Computed[T]{d: newDep(), dirty: true, getter: getter, setter: setter}
	c.effect = LazyEffect(func() Cleanup {
		c.value = getter()
		return nil
	}, Scheduler(func() {
		if !c.dirty {
			c.dirty = true
			trigger(computedTarget[T]{c}, TriggerSet, "value", nil, nil, false, false)
		}
	}))
	return c
}

// Value reads the derivation (§4.6 "Read"): tracks this derivation's
// own dep, recomputing first if dirty.
func (c *Computed[T]) Value() T {
	track(computedTarget[T]{c}, TrackGet, "value")
	if c.dirty {
		c.dirty = false
		c.effect.Run()
	}
	return c.value
}

// Set writes the derivation if a setter was supplied (§4.6 "Write");
// otherwise it is a no-op with a debug warning.
func (c *Computed[T]) Set(v T) {
	if c.setter != nil {
		c.setter(v)
		return
	}
	warnMissingSetter()
}

// Stop tears down the internal effect, detaching the derivation from
// all of its sources.
func (c *Computed[T]) Stop() { c.effect.Stop() }

// computedTarget adapts *Computed[T] to the target interface the same
// way refTarget does for Ref, so a derivation's own subscribers are
// tracked/triggered through the ordinary single-key depStore path.
type computedTarget[T any] struct{ c *Computed[T] }

func (t computedTarget[T]) depStoreOf() *depStore {
	return &depStore{deps: map[any]*Dep{"value": t.c.d}}
}
func (t computedTarget[T]) debugLabel() string { return "computed" }
