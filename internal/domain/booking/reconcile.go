package booking

// ApplyResult folds the confirmed outcome of a remote operation into a
// session-owned stay collection and returns the new collection; the input
// slice is left untouched. The collection is an optimistic local mirror of
// the store so UIs reflect a mutation without refetching, and it feeds the
// next blocked-set build. It is never the system of record.
func ApplyResult(collection []*Stay, op Op, result *Stay) []*Stay {
	if result == nil {
		out := make([]*Stay, len(collection))
		copy(out, collection)
		return out
	}
	switch op {
	case OpCreate:
		out := make([]*Stay, 0, len(collection)+1)
		out = append(out, collection...)
		return append(out, result)
	case OpUpdate:
		out := make([]*Stay, 0, len(collection))
		replaced := false
		for _, s := range collection {
			if s.ID == result.ID {
				out = append(out, result)
				replaced = true
				continue
			}
			out = append(out, s)
		}
		if !replaced {
			// The collection was stale enough to miss the stay; adopt it.
			out = append(out, result)
		}
		return out
	case OpDelete:
		out := make([]*Stay, 0, len(collection))
		for _, s := range collection {
			if s.ID == result.ID {
				continue
			}
			out = append(out, s)
		}
		return out
	default:
		out := make([]*Stay, len(collection))
		copy(out, collection)
		return out
	}
}
