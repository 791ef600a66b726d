package pipeline

// Group is an ordered record of stages, and optionally a leading source,
// spliced into a chain as if its items were written in place.
type Group struct {
	items []any
}

// Compose groups items so they can be reused as one fragment.
// Items are stages, groups, or for the first item a source.
func Compose(items ...any) Group {
	cp := make([]any, len(items))
	copy(cp, items)

	return Group{items: cp}
}

// Len returns the number of items of the group once flattened.
func (g Group) Len() int {
	return len(flatten(g.items))
}

// flatten inlines every group, recursively, keeping the order of the items.
func flatten(items []any) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		switch grp := item.(type) {
		case Group:
			out = append(out, flatten(grp.items)...)
		case *Group:
			out = append(out, flatten(grp.items)...)
		default:
			out = append(out, item)
		}
	}

	return out
}

// isSource reports whether item can only start a pipeline.
func isSource(item any) bool {
	switch item.(type) {
	case Source, *Source, Sequence:
		return true
	default:
		return false
	}
}
