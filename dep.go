package reactive

// maxTrackDepth is the recursion depth beyond which the bit-masked
// re-tracking optimization (§4.2) gives up and falls back to a full
// clear-and-rebuild of the effect's dep set. Bits are indexed 1..30;
// a uint32 leaves bit 31 unused so trackOpBit never overflows signed
// arithmetic on 32-bit platforms.
const maxTrackDepth = 30

// Dep is the set of effects registered against one observed slot —
// one (target, key) pair for a structural Object, or the private slot
// of a Ref/Computed.
//
// wasTracked/newTracked are bitmasks indexed by the current effect
// run's recursion depth (see ReactiveEffect.Run). Because the engine
// is single-threaded and effects run to completion before any nested
// effect's bits are reused, a given bit unambiguously belongs to
// whichever effect is currently executing at that depth.
type Dep struct {
	effects []*ReactiveEffect
	index   map[uint64]int // effect ID -> position in effects, for O(1) membership and position lookup

	wasTracked uint32
	newTracked uint32
}

func newDep() *Dep {
	return &Dep{index: make(map[uint64]int)}
}

// has reports whether e is currently registered in this dep.
func (d *Dep) has(e *ReactiveEffect) bool {
	_, ok := d.index[e.id]
	return ok
}

// add registers e, preserving insertion order for deterministic
// dispatch (§5, "Ordering").
func (d *Dep) add(e *ReactiveEffect) {
	if d.has(e) {
		return
	}
	d.index[e.id] = len(d.effects)
	d.effects = append(d.effects, e)
}

// remove deregisters e, shifting everything after it down one slot so
// the remaining effects keep their relative insertion order (§5,
// "insertion order within each dep").
func (d *Dep) remove(e *ReactiveEffect) {
	pos, ok := d.index[e.id]
	if !ok {
		return
	}
	copy(d.effects[pos:], d.effects[pos+1:])
	d.effects = d.effects[:len(d.effects)-1]
	delete(d.index, e.id)
	for i := pos; i < len(d.effects); i++ {
		d.index[d.effects[i].id] = i
	}
}

// snapshot returns a point-in-time copy of the subscriber list, safe
// to iterate while dispatch mutates the live dep (§5).
func (d *Dep) snapshot() []*ReactiveEffect {
	out := make([]*ReactiveEffect, len(d.effects))
	copy(out, d.effects)
	return out
}
