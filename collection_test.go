package reactive

import "testing"

func TestReactiveMapTracksPerKey(t *testing.T) {
	m := NewReactiveMap[string, int](nil)

	aRuns, bRuns := 0, 0
	CreateEffect(func() Cleanup {
		m.Get("a")
		aRuns++
		return nil
	})
	CreateEffect(func() Cleanup {
		m.Get("b")
		bRuns++
		return nil
	})

	m.Set("a", 1)
	if aRuns != 2 || bRuns != 1 {
		t.Fatalf("expected a-effect to re-run, b-effect untouched; got a=%d b=%d", aRuns, bRuns)
	}
}

func TestReactiveMapClearFiresEveryEffect(t *testing.T) {
	m := NewReactiveMap(map[string]int{"a": 1, "b": 2})

	aRuns, bRuns := 0, 0
	CreateEffect(func() Cleanup { m.Get("a"); aRuns++; return nil })
	CreateEffect(func() Cleanup { m.Get("b"); bRuns++; return nil })

	m.Clear()
	if aRuns != 2 || bRuns != 2 {
		t.Fatalf("expected CLEAR to fire every key's effect, got a=%d b=%d", aRuns, bRuns)
	}
}

func TestReactiveMapLenTracksIteration(t *testing.T) {
	m := NewReactiveMap[string, int](nil)
	runs := 0
	CreateEffect(func() Cleanup {
		m.Len()
		runs++
		return nil
	})
	m.Set("x", 1)
	if runs != 2 {
		t.Fatalf("expected Len() reader to re-run on ADD, got %d", runs)
	}
}

func TestReactiveSetAddDelete(t *testing.T) {
	s := NewReactiveSet[int]()
	runs := 0
	CreateEffect(func() Cleanup {
		s.Has(1)
		runs++
		return nil
	})
	s.Add(1)
	if runs != 2 {
		t.Fatalf("expected Has(1) effect to re-run after Add(1), got %d", runs)
	}
	s.Delete(1)
	if runs != 3 {
		t.Fatalf("expected Has(1) effect to re-run after Delete(1), got %d", runs)
	}
}
