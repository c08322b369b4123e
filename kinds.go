package reactive

// TrackOpType identifies why a read is calling track(). It is carried
// only for diagnostics (onTrack events, debug logging); it never
// changes tracking behavior itself.
type TrackOpType uint8

const (
	TrackGet TrackOpType = iota + 1
	TrackHas
	TrackIterate
)

func (t TrackOpType) String() string {
	switch t {
	case TrackGet:
		return "GET"
	case TrackHas:
		return "HAS"
	case TrackIterate:
		return "ITERATE"
	default:
		return "UNKNOWN"
	}
}

// TriggerOpType identifies the kind of write that is calling
// trigger(). Unlike TrackOpType, this one does change behavior: the
// dep-collection rules in trigger() branch on it (see §4.1).
type TriggerOpType uint8

const (
	TriggerAdd TriggerOpType = iota + 1
	TriggerSet
	TriggerDelete
	TriggerClear
)

func (t TriggerOpType) String() string {
	switch t {
	case TriggerAdd:
		return "ADD"
	case TriggerSet:
		return "SET"
	case TriggerDelete:
		return "DELETE"
	case TriggerClear:
		return "CLEAR"
	default:
		return "UNKNOWN"
	}
}

// iterateKey is the sentinel key tracked by ownKeys() reads on
// non-array targets (ITERATE_KEY in the spec's vocabulary).
const iterateKey = "__reactive_iterate__"

// mapIterateKey is the sentinel tracked by ReactiveMap/ReactiveSet
// iteration reads (Len, Keys, Values). Keyed-collection ADD/DELETE
// trigger it alongside iterateKey; a keyed-collection SET triggers
// iterateKey but not this key, so those readers do not re-run when only
// a value changes.
const mapIterateKey = "__reactive_map_iterate__"

// lengthKey is the reserved key used to track/trigger an array's length.
const lengthKey = "length"
