package reactive

import "testing"

func TestRefValueAndSet(t *testing.T) {
	r := NewRef(1)
	if r.Value() != 1 {
		t.Fatalf("expected 1, got %d", r.Value())
	}
	r.Set(5)
	if r.Value() != 5 {
		t.Fatalf("expected 5, got %d", r.Value())
	}
}

func TestRefUnwrapThroughStructural(t *testing.T) {
	r := NewRef(1)
	o := Reactive(map[string]any{"r": r}).(*Object)

	if got := o.Get("r"); got != 1 {
		t.Fatalf("expected unwrapped 1, got %v", got)
	}

	o.Set("r", 2)
	if r.Value() != 2 {
		t.Fatalf("write through structural slot should forward to the cell, got %d", r.Value())
	}

	o.Set("r", NewRef(3))
	if got := o.Get("r"); got != 3 {
		t.Fatalf("expected 3 after replacing with a new ref, got %v", got)
	}
	if r.Value() != 3 {
		t.Fatalf("original ref should have been written through (set-forwards-to-existing-cell), got %d", r.Value())
	}
}

func TestUnref(t *testing.T) {
	r := NewRef(7)
	if Unref[int](r) != 7 {
		t.Fatalf("expected 7")
	}
	if Unref[int](9) != 9 {
		t.Fatalf("expected unref of a plain value to return it unchanged")
	}
}

func TestIsRef(t *testing.T) {
	r := NewRef(1)
	if !IsRef(r) {
		t.Fatal("expected IsRef(r) to be true")
	}
	if IsRef(1) {
		t.Fatal("expected IsRef(1) to be false")
	}
}

func TestCustomRef(t *testing.T) {
	raw := 0
	var triggerCount int
	r := CustomRef[int](func(h *CustomRefHandle[int]) (func() int, func(int)) {
		get := func() int {
			h.Track()
			return raw
		}
		set := func(v int) {
			raw = v
			triggerCount++
			h.Trigger()
		}
		return get, set
	})

	log := 0
	CreateEffect(func() Cleanup {
		log = r.Value()
		return nil
	})
	r.Set(42)
	if log != 42 {
		t.Fatalf("expected effect to see 42 after custom ref fires, got %d", log)
	}
	if triggerCount != 1 {
		t.Fatalf("expected setter invoked once, got %d", triggerCount)
	}
}

func TestObjectRefToRefs(t *testing.T) {
	obj := Reactive(map[string]any{"a": 1, "b": 2}).(*Object)
	refs := ToRefs(obj)

	if refs["a"].Value() != 1 {
		t.Fatalf("expected ToRefs a to read through to 1")
	}
	refs["a"].Set(10)
	if obj.Get("a") != 10 {
		t.Fatalf("expected write through ObjectRef to reach host object")
	}
}
