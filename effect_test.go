package reactive

import "testing"

func TestBasicTracking(t *testing.T) {
	s := NewRef(0)
	var log []int

	CreateEffect(func() Cleanup {
		log = append(log, s.Value())
		return nil
	})
	if len(log) != 1 || log[0] != 0 {
		t.Fatalf("expected [0], got %v", log)
	}

	s.Set(1)
	if len(log) != 2 || log[1] != 1 {
		t.Fatalf("expected [0 1], got %v", log)
	}

	s.Set(1)
	if len(log) != 2 {
		t.Fatalf("same-value write must not re-fire, got %v", log)
	}
}

func TestEffectCleanupRunsBeforeRerun(t *testing.T) {
	s := NewRef(0)
	cleanups := 0

	CreateEffect(func() Cleanup {
		s.Value()
		return func() { cleanups++ }
	})
	if cleanups != 0 {
		t.Fatalf("cleanup should not run on first execution, got %d", cleanups)
	}

	s.Set(1)
	if cleanups != 1 {
		t.Fatalf("expected 1 cleanup before rerun, got %d", cleanups)
	}
}

func TestEffectStop(t *testing.T) {
	s := NewRef(0)
	runs := 0

	e := CreateEffect(func() Cleanup {
		s.Value()
		runs++
		return nil
	})
	if runs != 1 {
		t.Fatalf("expected 1 run, got %d", runs)
	}

	e.Stop()
	s.Set(1)
	if runs != 1 {
		t.Fatalf("stopped effect must not re-run, got %d runs", runs)
	}
}

func TestEffectSelfRecurseSkippedByDefault(t *testing.T) {
	s := NewRef(0)
	runs := 0

	CreateEffect(func() Cleanup {
		runs++
		if s.Value() == 0 {
			s.Set(1)
		}
		return nil
	})

	if runs != 1 {
		t.Fatalf("effect without AllowRecurse must not dispatch to itself, got %d runs", runs)
	}
}

func TestEffectAllowRecurse(t *testing.T) {
	s := NewRef(0)
	runs := 0

	CreateEffect(func() Cleanup {
		runs++
		if v := s.Value(); v == 0 {
			s.Set(1)
		}
		return nil
	}, AllowRecurse())

	if runs != 2 {
		t.Fatalf("AllowRecurse effect should dispatch to itself once, got %d runs", runs)
	}
}

func TestNestedEffectsKeepSeparateDeps(t *testing.T) {
	a := Reactive(map[string]any{"x": 1, "z": 10}).(*Object)
	b := Reactive(map[string]any{"y": 2}).(*Object)

	outerRuns, innerRuns := 0, 0
	var inner *ReactiveEffect

	CreateEffect(func() Cleanup {
		outerRuns++
		a.Get("x")
		inner = CreateEffect(func() Cleanup {
			innerRuns++
			b.Get("y")
			return nil
		})
		a.Get("z")
		return nil
	})

	if outerRuns != 1 || innerRuns != 1 {
		t.Fatalf("expected one run each, got outer=%d inner=%d", outerRuns, innerRuns)
	}

	b.Set("y", 3)
	if innerRuns != 2 || outerRuns != 1 {
		t.Fatalf("triggering b.y should only re-run inner, got outer=%d inner=%d", outerRuns, innerRuns)
	}
	_ = inner

	a.Set("x", 2)
	if outerRuns != 2 {
		t.Fatalf("triggering a.x should re-run outer, got %d", outerRuns)
	}
}

func TestLazyEffectDoesNotRunUntilCalled(t *testing.T) {
	ran := false
	e := LazyEffect(func() Cleanup {
		ran = true
		return nil
	})
	if ran {
		t.Fatal("LazyEffect must not run on construction")
	}
	e.Run()
	if !ran {
		t.Fatal("expected Run to execute the body")
	}
}
