package reactive

// activeEffect is the top of the effect stack: the effect (if any)
// whose body is currently executing. Reads performed while
// activeEffect is nil never grow any Dep (§3 invariant, §8 property 3).
var activeEffect *ReactiveEffect

// effectStack holds the ancestry of nested effect runs. Its length is
// also the "current recursion depth" d used to select trackOpBit in
// §4.2.
var effectStack []*ReactiveEffect

// shouldTrack is the current tracking-enabled flag. pauseTracking and
// resetTracking push/pop a stack of these so write-through mutators
// (array length mutators, §4.3) can disable tracking around an
// internal read without disturbing whatever the caller had set.
var shouldTrack = true
var trackStack []bool

// PauseTracking disables dependency tracking until the matching
// ResetTracking, saving the previous state on a stack so calls can
// nest.
func PauseTracking() {
	trackStack = append(trackStack, shouldTrack)
	shouldTrack = false
}

// EnableTracking re-enables dependency tracking (pushing the current
// state first), independent of whatever pauseTracking calls are still
// outstanding above it. Mirrors Vue's enableTracking/resetTracking
// pair: pause/enable nest like a nand-conscious stack, reset always
// unwinds exactly one level regardless of which of the two pushed it.
func EnableTracking() {
	trackStack = append(trackStack, shouldTrack)
	shouldTrack = true
}

// ResetTracking restores whatever shouldTrack was before the most
// recent PauseTracking/EnableTracking call. Popping past the bottom of
// an empty stack restores tracking (the engine's default state).
func ResetTracking() {
	if len(trackStack) == 0 {
		shouldTrack = true
		return
	}
	last := len(trackStack) - 1
	shouldTrack = trackStack[last]
	trackStack = trackStack[:last]
}

// trackEffects registers e against dep using the bit-masked
// re-tracking algorithm (§4.2, "Register (trackEffects)"). d is the
// recursion depth of e's own currently-running Run — not the global
// stack depth at the point of this call, which is always e's depth
// because e is activeEffect while its body executes.
func trackEffects(dep *Dep, e *ReactiveEffect) {
	if e.trackDepth > maxTrackDepth {
		if !dep.has(e) {
			dep.add(e)
			e.deps = append(e.deps, dep)
		}
		return
	}

	bit := uint32(1) << uint(e.trackDepth)
	if dep.newTracked&bit == 0 {
		dep.newTracked |= bit
		if dep.wasTracked&bit == 0 {
			dep.add(e)
			e.deps = append(e.deps, dep)
		}
	}
}
