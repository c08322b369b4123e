// Package reactive is the reactivity core of a front-end-style state
// library: it turns ordinary data containers into observed data,
// records which computations read which pieces of data, and re-runs
// the affected computations when the data changes.
//
// # Core types
//
// Ref[T] is a single-slot observed value:
//
//	count := reactive.NewRef(0)
//	n := count.Value()       // read, subscribes the active effect
//	count.Set(5)              // write, notifies subscribers
//
// Object wraps a struct pointer, map, or slice so that reads and
// writes through it are tracked per key:
//
//	state := reactive.Reactive(map[string]any{"count": 0}).(*reactive.Object)
//	reactive.CreateEffect(func() reactive.Cleanup {
//	    fmt.Println("count is", state.Get("count"))
//	    return nil
//	})
//	state.Set("count", 1) // effect re-runs
//
// Computed[T] is a lazy, memoized derivation:
//
//	doubled := reactive.NewComputed(func() int { return count.Value() * 2 })
//
// # Tracking model
//
// Reading a Ref or an Object field during an effect's run (or a
// computed's recompute) subscribes that effect to the slot. Writing
// the slot triggers every effect currently subscribed to it.
// ReactiveEffect.Run and trackEffects implement the bit-masked
// re-tracking that keeps each effect's dep set equal to the slots it
// read during its latest run.
//
// # Concurrency
//
// The engine is single-threaded and cooperative: at most one effect
// runs at any instant, and the tracking stack is unsynchronized
// package state. Confine one engine instance to one goroutine, or
// guard every entry point with your own mutex — see the
// concurrency-model section of DESIGN.md.
package reactive
