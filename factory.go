package reactive

import (
	"reflect"
	"runtime"
	"weak"
)

// proxyCacheKey identifies one (target identity, readonly, shallow)
// quadrant (§3 invariant: "a target has at most one proxy per
// (flavor, readonly, shallow) quadrant, cached by the registry").
type proxyCacheKey struct {
	ptr      uintptr
	readonly bool
	shallow  bool
}

// proxyCache maps a quadrant key to a weak reference to its Object, so
// the cache itself never keeps a target's proxy (and transitively the
// target) alive. This is the one place the module uses weak.Pointer:
// everywhere else (registry.go's depStore) a target's deps live and
// die with the target by ordinary embedding, but the proxy cache is a
// genuine second structure whose whole point is to not extend
// anything's lifetime.
var proxyCache = map[proxyCacheKey]weak.Pointer[Object]{}

func targetPointer(v any) (uintptr, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map:
		if rv.IsNil() {
			return 0, false
		}
		return rv.Pointer(), true
	}
	return 0, false
}

// Reactive wraps v for deep, read-write observation (§4.4, §6
// "reactive"). v must be a struct pointer, a map, or a pointer to a
// slice; anything else is returned unwrapped with a debug warning.
func Reactive(v any) any { return createReactiveObject(v, false, false) }

// ShallowReactive wraps v so that only its top-level keys are tracked;
// nested objects are returned as-is instead of being auto-wrapped.
func ShallowReactive(v any) any { return createReactiveObject(v, false, true) }

// Readonly wraps v so that writes and deletes are refused (§4.4
// "readonly"). Applying Readonly over an already-Reactive value yields
// a read-only view of the same target, per the factory's step 2
// carve-out.
func Readonly(v any) any { return createReactiveObject(v, true, false) }

// ShallowReadonly combines both restrictions.
func ShallowReadonly(v any) any { return createReactiveObject(v, true, true) }

func createReactiveObject(v any, readonly, shallow bool) any {
	if obj, ok := v.(*Object); ok {
		if readonly && !obj.readonly {
			return createReactiveObject(obj.target, true, obj.shallow)
		}
		return obj
	}

	if _, ok := v.(refMarker); ok {
		return v
	}

	ptr, ok := targetPointer(v)
	if !ok {
		warnUnsupportedTarget(v)
		return v
	}

	if IsMarkedRaw(v) {
		return v
	}

	key := proxyCacheKey{ptr: ptr, readonly: readonly, shallow: shallow}
	if wp, ok := proxyCache[key]; ok {
		if obj := wp.Value(); obj != nil {
			return obj
		}
		delete(proxyCache, key)
	}

	obj, err := newObject(v, readonly, shallow)
	if err != nil {
		warnUnsupportedTarget(v)
		return v
	}

	proxyCache[key] = weak.Make(obj)
	runtime.AddCleanup(obj, func(k proxyCacheKey) {
		if wp, ok := proxyCache[k]; ok && wp.Value() == nil {
			delete(proxyCache, k)
		}
	}, key)

	return obj
}

// rawMarked tracks targets passed to MarkRaw (§4.4 "markRaw"), keyed
// by pointer identity like the proxy cache.
var rawMarked = map[uintptr]struct{}{}

// MarkRaw excludes v from ever being wrapped by Reactive/Readonly.
func MarkRaw(v any) any {
	if ptr, ok := targetPointer(v); ok {
		rawMarked[ptr] = struct{}{}
	}
	return v
}

// IsMarkedRaw reports whether MarkRaw was called on v's target.
func IsMarkedRaw(v any) bool {
	ptr, ok := targetPointer(v)
	if !ok {
		return false
	}
	_, marked := rawMarked[ptr]
	return marked
}

// ToRaw walks RAW links to fixpoint (§4.4 "toRaw").
func ToRaw(v any) any {
	for {
		obj, ok := v.(*Object)
		if !ok {
			return v
		}
		v = obj.target
	}
}

// IsReactive reports whether v is a non-readonly observed wrapper, or
// a readonly wrapper over a reactive target (§4.4: "recursing through
// RAW when checking reactivity of a read-only proxy").
func IsReactive(v any) bool {
	obj, ok := v.(*Object)
	if !ok {
		return false
	}
	if !obj.readonly {
		return true
	}
	// A readonly proxy is "reactive" if its own target also has a live
	// non-readonly proxy cached — i.e. readonly(reactive(x)) is
	// reactive, but readonly(x) on a target nobody ever wrapped
	// reactively is not.
	ptr, ok := targetPointer(obj.target)
	if !ok {
		return false
	}
	wp, ok := proxyCache[proxyCacheKey{ptr: ptr, readonly: false, shallow: obj.shallow}]
	return ok && wp.Value() != nil
}

// IsReadonly reports whether v is a readonly observed wrapper.
func IsReadonly(v any) bool {
	obj, ok := v.(*Object)
	return ok && obj.readonly
}

// IsProxy reports whether v is a structural Object wrapper or a Ref from
// this package. ReactiveMap, ReactiveSet and Computed values are not
// recognized.
func IsProxy(v any) bool {
	_, ok := v.(*Object)
	if ok {
		return true
	}
	_, ok = v.(refMarker)
	return ok
}
