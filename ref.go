package reactive

import (
	"fmt"
	"reflect"
)

// refMarker is the type-erased interface every atomic cell satisfies,
// used by the structural proxy (§4.3 "auto-unwrap") and by Unref/IsRef
// to recognize a cell without knowing its element type T.
type refMarker interface {
	isRef()
	rawAny() any
	getAny() any
	setAny(any)
	dep() *Dep
}

// Ref is a single-slot observed value — the atomic cell of §4.5. A Ref
// tracks its own private Dep on read and triggers it on write when the
// new raw value differs from the stored one by same-value-zero.
type Ref[T any] struct {
	raw     T
	wrapped any // reactive(raw) when raw is an object and !shallow; else unset
	d       *Dep
	shallow bool
	equal   func(a, b T) bool

	// customGet/customSet are set only by CustomRef; every other
	// constructor leaves them nil and Value/Set use the plain/shallow
	// path above.
	customGet func() T
	customSet func(T)
}

// NewRef wraps v in a plain Ref (§4.5 "plain"). When v is a struct
// pointer, a map, or a pointer to a slice, the Ref also holds
// Reactive(v), and Value returns that wrapper if T is an interface type
// such as any; for a concrete T, Value returns v itself, unwrapped.
func NewRef[T any](v T) *Ref[T] {
	r := &Ref[T]{raw: v, d: newDep(), equal: sameValueZero[T]}
	r.rewrap()
	return r
}

// ShallowRef wraps v without wrapping nested objects (§4.5 "shallow").
func ShallowRef[T any](v T) *Ref[T] {
	return &Ref[T]{raw: v, d: newDep(), shallow: true, equal: sameValueZero[T]}
}

func (r *Ref[T]) rewrap() {
	if r.shallow {
		return
	}
	rv := reflect.ValueOf(r.raw)
	if rv.IsValid() && isObjectKind(rv.Kind()) {
		r.wrapped = Reactive(any(r.raw))
	} else {
		r.wrapped = nil
	}
}

// Value reads the ref, tracking the active effect against its private
// dep (§4.5, "On read, it tracks itself").
func (r *Ref[T]) Value() T {
	track(refTarget{r}, TrackGet, "value")
	if r.customGet != nil {
		return r.customGet()
	}
	if !r.shallow && r.wrapped != nil {
		if w, ok := r.wrapped.(T); ok {
			return w
		}
	}
	return r.raw
}

// Peek reads the ref without tracking — used by code that must read
// the current value outside of any effect (e.g. a scheduler).
func (r *Ref[T]) Peek() T {
	if r.customGet != nil {
		PauseTracking()
		defer ResetTracking()
		return r.customGet()
	}
	return r.raw
}

// Set writes the ref. If the new value (compared against the stored
// raw by same-value-zero) differs, it updates both forms and triggers
// the dep (§4.5).
func (r *Ref[T]) Set(v T) {
	if r.customSet != nil {
		r.customSet(v)
		return
	}
	if r.equal(r.raw, v) {
		return
	}
	old := r.raw
	r.raw = v
	r.rewrap()
	trigger(refTarget{r}, TriggerSet, "value", v, old, false, false)
}

// Update reads, applies fn, and writes back — a convenience for the
// common read-modify-write pattern.
func (r *Ref[T]) Update(fn func(T) T) { r.Set(fn(r.Peek())) }

func (r *Ref[T]) isRef()      {}
func (r *Ref[T]) rawAny() any { return r.raw }
func (r *Ref[T]) getAny() any { return any(r.Value()) }
func (r *Ref[T]) dep() *Dep   { return r.d }
func (r *Ref[T]) setAny(v any) {
	if tv, ok := v.(T); ok {
		r.Set(tv)
	}
}

// refTarget adapts a *Ref[T] to the target interface so track/trigger
// can be reused verbatim for atomic cells: a single-key depStore whose
// only key is "value".
type refTarget struct{ holder interface{ dep() *Dep } }

func (t refTarget) depStoreOf() *depStore {
	return &depStore{deps: map[any]*Dep{"value": t.holder.dep()}}
}
func (t refTarget) debugLabel() string { return "ref" }

// CustomRef builds a Ref-like cell whose get/set are supplied by the
// caller, given bound track/trigger callbacks (§4.5 "custom"). Used to
// implement derived values with their own invalidation timing (e.g. a
// debounced ref) without engine changes.
type CustomRefHandle[T any] struct {
	d *Dep
}

// Track registers the active effect against this custom ref's dep.
func (h *CustomRefHandle[T]) Track() { track(refTarget{h}, TrackGet, "value") }

// Trigger fires every effect registered against this custom ref's dep.
func (h *CustomRefHandle[T]) Trigger() {
	trigger(refTarget{h}, TriggerSet, "value", nil, nil, false, false)
}

func (h *CustomRefHandle[T]) dep() *Dep { return h.d }

// CustomRef wraps factory(track, trigger)'s get/set pair into a Ref.
func CustomRef[T any](factory func(h *CustomRefHandle[T]) (get func() T, set func(T))) *Ref[T] {
	h := &CustomRefHandle[T]{d: newDep()}
	get, set := factory(h)
	r := &Ref[T]{
		raw: get(), d: h.d, equal: sameValueZero[T],
		// custom refs never auto-wrap: their get/set already decide
		// whatever semantics they need.
		shallow:   true,
		customGet: get,
		customSet: set,
	}
	return r
}

// IsRef reports whether v is any atomic cell produced by this package.
func IsRef(v any) bool {
	_, ok := v.(refMarker)
	return ok
}

// Unref returns v.Value() if v is a Ref, else v itself (§4.5, "unref").
func Unref[T any](v any) T {
	if r, ok := v.(*Ref[T]); ok {
		return r.Value()
	}
	if t, ok := v.(T); ok {
		return t
	}
	var zero T
	return zero
}

// TriggerRef forces r's dep to fire without changing its value — used
// after a deep in-place mutation of a shallow ref's contents.
func TriggerRef[T any](r *Ref[T]) {
	trigger(refTarget{r}, TriggerSet, "value", r.raw, r.raw, false, false)
}

// ObjectRef is an object-key ref (§4.5 "object-key ref"): a proxy over
// (obj, key) with no dep of its own — tracking happens on the host via
// the structural handlers in object.go.
type ObjectRef struct {
	obj *Object
	key any
}

// ToRef builds an ObjectRef bound to one key of a reactive Object.
func ToRef(obj *Object, key any) *ObjectRef { return &ObjectRef{obj: obj, key: key} }

// Value reads through to the host object.
func (r *ObjectRef) Value() any { return r.obj.Get(r.key) }

// Set writes through to the host object.
func (r *ObjectRef) Set(v any) { r.obj.Set(r.key, v) }

// ToRefs expands every own key of obj into an ObjectRef, so that
// destructuring a reactive object into individual bindings keeps each
// one live (§4.5 "toRefs").
func ToRefs(obj *Object) map[string]*ObjectRef {
	out := make(map[string]*ObjectRef)
	for _, k := range obj.OwnKeys() {
		out[fmt.Sprint(k)] = ToRef(obj, k)
	}
	return out
}

func isObjectKind(k reflect.Kind) bool {
	switch k {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Struct:
		return true
	default:
		return false
	}
}

// sameValueZero implements §3's "Same-value-zero" equality: ordinary
// == for comparable values, except NaN is equal to itself. Reflection
// is used only as a fallback for non-comparable T (e.g. a slice type
// parameter), matching the teacher's own defaultEquals dispatch.
func sameValueZero[T any](a, b T) bool {
	switch av := any(a).(type) {
	case float64:
		if bv, ok := any(b).(float64); ok {
			if av != av && bv != bv {
				return true
			}
			return av == bv
		}
	case float32:
		if bv, ok := any(b).(float32); ok {
			if av != av && bv != bv {
				return true
			}
			return av == bv
		}
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.IsValid() && ra.Comparable() && rb.IsValid() && rb.Comparable() {
		return any(a) == any(b)
	}
	return reflect.DeepEqual(a, b)
}
