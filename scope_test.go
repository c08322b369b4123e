package reactive

import "testing"

func TestEffectScopeStopsRecordedEffects(t *testing.T) {
	scope := NewEffectScope(false)
	s := NewRef(0)
	runs := 0

	scope.Run(func() {
		CreateEffect(func() Cleanup {
			s.Value()
			runs++
			return nil
		})
	})
	if runs != 1 {
		t.Fatalf("expected 1 run, got %d", runs)
	}

	scope.Stop()
	s.Set(1)
	if runs != 1 {
		t.Fatalf("stopped scope's effect must not re-run, got %d", runs)
	}
}

func TestNestedScopeStopsWithParent(t *testing.T) {
	parent := NewEffectScope(false)
	var child *EffectScope
	cleaned := false

	parent.Run(func() {
		child = NewEffectScope(false)
		child.Run(func() {
			child.OnScopeDispose(func() { cleaned = true })
		})
	})

	parent.Stop()
	if !cleaned {
		t.Fatal("expected parent.Stop() to cascade into the nested scope's cleanup")
	}
	if child.Active() {
		t.Fatal("expected nested scope to be inactive after parent stop")
	}
}

func TestDetachedScopeDoesNotStopWithParent(t *testing.T) {
	parent := NewEffectScope(false)
	var child *EffectScope

	parent.Run(func() {
		child = NewEffectScope(true)
	})

	parent.Stop()
	if !child.Active() {
		t.Fatal("detached scope must survive its parent's Stop()")
	}
}
