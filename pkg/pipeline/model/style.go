package model

// Style is the processing style of one side of a stage.
type Style int

const (
	// Incremental processes one element at a time.
	Incremental Style = iota
	// Complete processes a whole aggregate at once.
	Complete
)

func (s Style) String() string {
	switch s {
	case Incremental:
		return "incremental"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// Accepts reports whether a stage declaring s as input can be fed by a predecessor producing from.
// A Complete output can feed an Incremental input by iterating it, never the reverse.
func (s Style) Accepts(from Style) bool {
	return s == from || (s == Incremental && from == Complete)
}

// Ownership tells how an aggregate relates to the storage it came from.
type Ownership int

const (
	// Owned values belong to the pipeline, which may consume them.
	Owned Ownership = iota
	// ConstAlias values are read-only views of caller storage.
	ConstAlias
	// MutableAlias values alias caller storage the pipeline may write to but not keep.
	MutableAlias
	// Moved values were taken from the caller, whose variable has been reset.
	Moved
)

func (o Ownership) String() string {
	switch o {
	case Owned:
		return "owned"
	case ConstAlias:
		return "const-alias"
	case MutableAlias:
		return "mutable-alias"
	case Moved:
		return "moved"
	default:
		return "unknown"
	}
}

// Aliased reports whether the value may still be reachable from caller storage.
func (o Ownership) Aliased() bool {
	return o == ConstAlias || o == MutableAlias
}
