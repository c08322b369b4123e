package reactive

// nextID returns the next unique identifier for a reactive primitive
// (effect, ref, computed, scope). IDs are monotonically increasing and
// never reused.
//
// The engine is single-threaded (see doc.go), so this is a plain
// counter rather than an atomic one — there is no concurrent caller to
// guard against.
var idCounter uint64

func nextID() uint64 {
	idCounter++
	return idCounter
}
