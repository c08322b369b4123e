package reactive

import "testing"

type point struct {
	X, Y int
}

func TestReactiveStructGetSet(t *testing.T) {
	p := Reactive(&point{X: 1, Y: 2}).(*Object)

	var log []int
	CreateEffect(func() Cleanup {
		log = append(log, p.Get("X").(int))
		return nil
	})
	if len(log) != 1 || log[0] != 1 {
		t.Fatalf("expected [1], got %v", log)
	}

	p.Set("X", 9)
	if len(log) != 2 || log[1] != 9 {
		t.Fatalf("expected [1 9], got %v", log)
	}

	p.Set("X", 9)
	if len(log) != 2 {
		t.Fatalf("same-value write must not re-fire, got %v", log)
	}
}

func TestReactiveCaching(t *testing.T) {
	p := &point{X: 1}
	a := Reactive(p)
	b := Reactive(p)
	if a != b {
		t.Fatal("Reactive(x) must return the same proxy on repeated calls")
	}

	raw := ToRaw(a)
	if raw != p {
		t.Fatalf("ToRaw(Reactive(x)) must return x, got %v", raw)
	}

	if !IsReactive(a) {
		t.Fatal("expected IsReactive to be true")
	}
}

func TestReadonlyRefusesWrites(t *testing.T) {
	p := Reactive(&point{X: 1}).(*Object)
	ro := Readonly(p).(*Object)

	if !IsReadonly(ro) {
		t.Fatal("expected IsReadonly to be true")
	}
	if !IsReactive(ro) {
		t.Fatal("expected IsReactive to recurse through a readonly view of a reactive target")
	}

	ro.Set("X", 99)
	if p.Get("X") != 1 {
		t.Fatalf("readonly write must be a no-op, got %v", p.Get("X"))
	}
}

func TestMapAddSetDelete(t *testing.T) {
	m := Reactive(map[string]any{}).(*Object)

	var keys []any
	CreateEffect(func() Cleanup {
		keys = m.OwnKeys()
		return nil
	})
	if len(keys) != 0 {
		t.Fatalf("expected no keys yet, got %v", keys)
	}

	m.Set("a", 1)
	if len(keys) != 1 {
		t.Fatalf("expected ownKeys effect to re-run on ADD, got %v", keys)
	}

	m.Delete("a")
	if len(keys) != 0 {
		t.Fatalf("expected ownKeys effect to re-run on DELETE, got %v", keys)
	}
}

func TestArrayLengthShrinkAndGrow(t *testing.T) {
	a := Reactive(&[]any{1, 2, 3}).(*Object)

	var log []any
	CreateEffect(func() Cleanup {
		log = append(log, a.Get(2))
		return nil
	})
	if len(log) != 1 || log[0] != 3 {
		t.Fatalf("expected [3], got %v", log)
	}

	a.SetLength(2)
	if len(log) != 2 {
		t.Fatalf("shrinking past index 2 should re-fire its dep, got %v", log)
	}

	a.SetLength(5)
	if len(log) != 2 {
		t.Fatalf("growing must not spuriously re-fire index 2's dep, got %v", log)
	}
}

func TestArrayIndexOfUnwrapsReactiveElement(t *testing.T) {
	raw := &point{X: 1}
	arr := Reactive(&[]any{raw}).(*Object)

	if idx := arr.IndexOf(raw); idx != 0 {
		t.Fatalf("expected IndexOf(raw) == 0, got %d", idx)
	}

	wrapped := arr.Get(0)
	if idx := arr.IndexOf(wrapped); idx != 0 {
		t.Fatalf("expected IndexOf(wrapped) == 0 via unwrap-then-retry, got %d", idx)
	}
}

func TestArrayPushPop(t *testing.T) {
	a := Reactive(&[]any{1, 2}).(*Object)
	n := a.Push(3)
	if n != 3 || a.Len() != 3 {
		t.Fatalf("expected length 3 after push, got %d", n)
	}
	v, ok := a.Pop()
	if !ok || v != 3 {
		t.Fatalf("expected pop to return 3, got %v ok=%v", v, ok)
	}
	if a.Len() != 2 {
		t.Fatalf("expected length 2 after pop, got %d", a.Len())
	}
}
