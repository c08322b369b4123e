package reactive

import (
	"fmt"
	"reflect"
)

// objectKind classifies the three observable shapes this package
// understands (§4.3 "Observable target kinds"). Go has no structural
// Proxy, so Object stands in for the handler table the spec describes:
// one concrete wrapper, dispatching on the target's reflect.Kind
// instead of intercepting arbitrary property access.
type objectKind uint8

const (
	kindStruct objectKind = iota
	kindMap
	kindSlice
)

// Object is the structural proxy of §4.3: get/set/delete/has/ownKeys
// over a struct pointer, a map, or a pointer to a slice.
type Object struct {
	target   any
	kind     objectKind
	readonly bool
	shallow  bool
	store    depStore

	rv reflect.Value // addressable struct/slice value, or the map value itself
}

func newObject(v any, readonly, shallow bool) (*Object, error) {
	rv := reflect.ValueOf(v)
	switch {
	case rv.Kind() == reflect.Ptr && rv.Elem().Kind() == reflect.Struct:
		return &Object{target: v, kind: kindStruct, readonly: readonly, shallow: shallow, rv: rv.Elem()}, nil
	case rv.Kind() == reflect.Map:
		return &Object{target: v, kind: kindMap, readonly: readonly, shallow: shallow, rv: rv}, nil
	case rv.Kind() == reflect.Ptr && rv.Elem().Kind() == reflect.Slice:
		return &Object{target: v, kind: kindSlice, readonly: readonly, shallow: shallow, rv: rv.Elem()}, nil
	default:
		return nil, fmt.Errorf("reactive: unsupported target kind %s", rv.Kind())
	}
}

func (o *Object) depStoreOf() *depStore { return &o.store }

func (o *Object) debugLabel() string {
	switch o.kind {
	case kindStruct:
		return "struct"
	case kindMap:
		return "map"
	case kindSlice:
		return "slice"
	default:
		return "object"
	}
}

// IsArray reports whether o wraps a slice (§4.1 table branches on this).
func (o *Object) IsArray() bool { return o.kind == kindSlice }

// Len returns the current element count for a slice-backed Object.
func (o *Object) Len() int {
	if o.kind != kindSlice {
		return 0
	}
	track(o, TrackGet, lengthKey)
	return o.rv.Len()
}

func (o *Object) elemType() reflect.Type {
	return o.rv.Type().Elem()
}

// Get implements §4.3 "get": auto-unwrap of atomic cells, lazy wrapping
// of nested objects, and read-only exemption from tracking.
func (o *Object) Get(key any) any {
	res, found := o.rawGet(key)
	if !o.readonly {
		track(o, TrackGet, key)
	}
	if !found {
		return nil
	}

	if o.shallow {
		return res
	}

	isIntArrayKey := o.kind == kindSlice
	if rm, ok := res.(refMarker); ok && !isIntArrayKey {
		return rm.getAny()
	}

	if isObjectTarget(res) {
		if o.readonly {
			return Readonly(res)
		}
		return Reactive(res)
	}
	return res
}

func (o *Object) rawGet(key any) (any, bool) {
	switch o.kind {
	case kindStruct:
		name, ok := key.(string)
		if !ok {
			return nil, false
		}
		fv := o.rv.FieldByName(name)
		if !fv.IsValid() {
			return nil, false
		}
		return fv.Interface(), true
	case kindMap:
		mk := reflect.ValueOf(key)
		if !mk.IsValid() || !mk.Type().AssignableTo(o.rv.Type().Key()) {
			return nil, false
		}
		fv := o.rv.MapIndex(mk)
		if !fv.IsValid() {
			return nil, false
		}
		return fv.Interface(), true
	case kindSlice:
		idx, ok := key.(int)
		if !ok || idx < 0 || idx >= o.rv.Len() {
			return nil, false
		}
		return o.rv.Index(idx).Interface(), true
	}
	return nil, false
}

// Set implements §4.3 "set": cell-forwarding, hadKey/ADD-vs-SET
// classification, and same-value-zero change detection.
func (o *Object) Set(key any, value any) {
	if o.readonly {
		warnReadonlyWrite(o.target, key)
		return
	}

	oldValue, hadKey := o.rawGet(key)

	if !o.shallow {
		if rm, ok := oldValue.(refMarker); ok {
			// A slot that already holds a cell always forwards into
			// that cell, even when the incoming value is itself a ref
			// (§8 S2: assigning a new ref writes through the existing
			// one instead of replacing it).
			if incoming, ok := value.(refMarker); ok {
				rm.setAny(incoming.getAny())
			} else {
				rm.setAny(value)
			}
			return
		}
		value = ToRaw(value)
		oldValue = ToRaw(oldValue)
	}

	o.rawSet(key, value)

	kind := TriggerSet
	if !hadKey {
		kind = TriggerAdd
	}
	if hadKey && !hasChangedAny(value, oldValue) {
		return
	}
	trigger(o, kind, key, value, oldValue, o.kind == kindSlice, false)
}

func (o *Object) rawSet(key any, value any) {
	switch o.kind {
	case kindStruct:
		name := key.(string)
		fv := o.rv.FieldByName(name)
		if !fv.IsValid() || !fv.CanSet() {
			return
		}
		fv.Set(coerce(value, fv.Type()))
	case kindMap:
		mk := reflect.ValueOf(key)
		et := o.rv.Type().Elem()
		o.rv.SetMapIndex(mk, coerce(value, et))
	case kindSlice:
		idx := key.(int)
		if idx < 0 {
			return
		}
		if idx >= o.rv.Len() {
			o.growTo(idx + 1)
		}
		o.rv.Index(idx).Set(coerce(value, o.elemType()))
	}
}

// Delete implements §4.3 "delete" for maps; struct fields cannot be
// deleted (a struct has a fixed key set) and slice removal goes
// through Splice (or Pop/Shift) instead, matching the "length mutators"
// family rather than a single-key delete.
func (o *Object) Delete(key any) bool {
	if o.readonly {
		warnReadonlyWrite(o.target, key)
		return false
	}
	if o.kind != kindMap {
		return false
	}
	mk := reflect.ValueOf(key)
	old, had := o.rawGet(key)
	if !had {
		return false
	}
	o.rv.SetMapIndex(mk, reflect.Value{})
	trigger(o, TriggerDelete, key, nil, old, false, false)
	return true
}

// Has implements §4.3 "has".
func (o *Object) Has(key any) bool {
	_, found := o.rawGet(key)
	track(o, TrackHas, key)
	return found
}

// OwnKeys implements §4.3 "ownKeys": tracks ITERATE (or "length" for
// arrays) and returns the current key list.
func (o *Object) OwnKeys() []any {
	if o.kind == kindSlice {
		track(o, TrackIterate, lengthKey)
		keys := make([]any, o.rv.Len())
		for i := range keys {
			keys[i] = i
		}
		return keys
	}

	track(o, TrackIterate, iterateKey)
	switch o.kind {
	case kindStruct:
		t := o.rv.Type()
		keys := make([]any, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			keys[i] = t.Field(i).Name
		}
		return keys
	case kindMap:
		mkeys := o.rv.MapKeys()
		keys := make([]any, len(mkeys))
		for i, mk := range mkeys {
			keys[i] = mk.Interface()
		}
		return keys
	}
	return nil
}

// SetLength implements the array "length" row of §4.1: truncating
// drops elements and fires every index-dep ≥ newLength plus "length";
// growing fills with zero values and fires only "length" (§8 S4).
func (o *Object) SetLength(newLength int) {
	if o.kind != kindSlice || newLength < 0 {
		return
	}
	oldLength := o.rv.Len()
	if newLength == oldLength {
		return
	}

	PauseTracking()
	if newLength < oldLength {
		o.rv.Set(o.rv.Slice(0, newLength))
	} else {
		o.growTo(newLength)
	}
	ResetTracking()

	triggerLengthShrink(o, newLength)
}

func (o *Object) growTo(newLength int) {
	zero := reflect.Zero(o.elemType())
	for o.rv.Len() < newLength {
		o.rv.Set(reflect.Append(o.rv, zero))
	}
}

// Splice implements §4.3's "length mutators" family in terms of a
// single primitive: pause tracking around the raw slice surgery, then
// fire SET on every index from start onward (values downstream of the
// edit all shifted) plus the length row if the length changed.
func (o *Object) Splice(start, deleteCount int, insert ...any) []any {
	if o.kind != kindSlice {
		return nil
	}

	PauseTracking()
	oldLen := o.rv.Len()
	if start < 0 {
		start = 0
	}
	if start > oldLen {
		start = oldLen
	}
	if deleteCount < 0 {
		deleteCount = 0
	}
	if start+deleteCount > oldLen {
		deleteCount = oldLen - start
	}

	removed := make([]any, deleteCount)
	for i := 0; i < deleteCount; i++ {
		removed[i] = o.rv.Index(start + i).Interface()
	}

	et := o.elemType()
	tail := reflect.AppendSlice(reflect.MakeSlice(reflect.SliceOf(et), 0, oldLen-start-deleteCount), o.rv.Slice(start+deleteCount, oldLen))
	head := o.rv.Slice(0, start)
	newSlice := reflect.AppendSlice(reflect.New(reflect.SliceOf(et)).Elem(), head)
	for _, v := range insert {
		newSlice = reflect.Append(newSlice, coerce(v, et))
	}
	newSlice = reflect.AppendSlice(newSlice, tail)
	o.rv.Set(newSlice)
	newLen := o.rv.Len()
	ResetTracking()

	hi := oldLen
	if newLen > hi {
		hi = newLen
	}
	for i := start; i < hi; i++ {
		trigger(o, TriggerSet, i, nil, nil, true, false)
	}
	if newLen != oldLen {
		triggerLengthShrink(o, newLen)
	}
	return removed
}

// Push appends values and returns the new length.
func (o *Object) Push(values ...any) int {
	PauseTracking()
	defer ResetTracking()
	o.Splice(o.Len(), 0, values...)
	return o.Len()
}

// Pop removes and returns the last element.
func (o *Object) Pop() (any, bool) {
	PauseTracking()
	defer ResetTracking()
	n := o.Len()
	if n == 0 {
		return nil, false
	}
	removed := o.Splice(n-1, 1)
	return removed[0], true
}

// Shift removes and returns the first element.
func (o *Object) Shift() (any, bool) {
	PauseTracking()
	defer ResetTracking()
	if o.Len() == 0 {
		return nil, false
	}
	removed := o.Splice(0, 1)
	return removed[0], true
}

// Unshift prepends values and returns the new length.
func (o *Object) Unshift(values ...any) int {
	PauseTracking()
	defer ResetTracking()
	o.Splice(0, 0, values...)
	return o.Len()
}

// IndexOf is an "identity search" method (§4.3): it force-tracks every
// index before searching, then retries with v unwrapped to raw if the
// first pass does not find it (§8 S3).
func (o *Object) IndexOf(v any) int {
	return o.searchIndex(v, 1)
}

// LastIndexOf mirrors IndexOf, searching from the end.
func (o *Object) LastIndexOf(v any) int {
	return o.searchIndex(v, -1)
}

// Includes reports membership using the same identity-search protocol.
func (o *Object) Includes(v any) bool {
	return o.searchIndex(v, 1) != -1
}

func (o *Object) searchIndex(v any, dir int) int {
	if o.kind != kindSlice {
		return -1
	}
	n := o.rv.Len()
	for i := 0; i < n; i++ {
		track(o, TrackGet, i)
	}
	if idx := o.rawIndexOf(v, dir); idx != -1 {
		return idx
	}
	return o.rawIndexOf(ToRaw(v), dir)
}

func (o *Object) rawIndexOf(v any, dir int) int {
	n := o.rv.Len()
	start, end, step := 0, n, 1
	if dir < 0 {
		start, end, step = n-1, -1, -1
	}
	for i := start; i != end; i += step {
		if valuesEqual(o.rv.Index(i).Interface(), v) {
			return i
		}
	}
	return -1
}

func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	if av.Type() != bv.Type() {
		return false
	}
	if av.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

func isObjectTarget(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		return true
	case reflect.Ptr:
		return rv.Elem().Kind() == reflect.Struct || rv.Elem().Kind() == reflect.Slice
	default:
		return false
	}
}

// coerce assigns v into a value of type t, tolerating an untyped nil
// or an interface-erased value of the right dynamic type. Panics if v
// is fundamentally incompatible, mirroring a reflective language
// runtime's TypeError on an incompatible structural assignment.
func coerce(v any, t reflect.Type) reflect.Value {
	if v == nil {
		return reflect.Zero(t)
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return rv
	}
	if rv.Type().ConvertibleTo(t) {
		return rv.Convert(t)
	}
	panic(fmt.Sprintf("reactive: cannot assign value of type %s into slot of type %s", rv.Type(), t))
}

// hasChangedAny implements same-value-zero comparison (§3) for the
// type-erased values flowing through the structural proxy. Values that
// are not comparable (slices, maps) fall back to reflect.DeepEqual.
func hasChangedAny(a, b any) bool {
	if af, ok := a.(float64); ok {
		if bf, ok2 := b.(float64); ok2 {
			if af != af && bf != bf {
				return false
			}
			return af != bf
		}
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.IsValid() && ra.Comparable() && rb.IsValid() && rb.Comparable() {
		return a != b
	}
	return !reflect.DeepEqual(a, b)
}
