package resolve

import (
	"trackfort/internal/library"
	"trackfort/internal/query"
)

// InconsistencyError reports a violated internal invariant, such as a query
// that reached matching with no predicates. It marks a defect in this
// program, not a user error, and is never recovered from.
type InconsistencyError struct {
	Reason string
}

func (e *InconsistencyError) Error() string {
	return "index inconsistency: " + e.Reason
}

// Match returns the set of tracks satisfying every predicate of q.
//
// The result is the intersection of the per-predicate lookup sets; its order
// is unspecified (the resolver imposes the canonical order). Matching is
// pure: it never mutates the index and is safe to run concurrently.
func Match(ix *library.TagIndex, q query.Query) ([]library.Track, error) {
	if len(q.Predicates) == 0 {
		return nil, &InconsistencyError{Reason: "query has no predicates"}
	}

	candidates := ix.Lookup(q.Predicates[0].Tag, q.Predicates[0].Value, q.Predicates[0].Exact)
	for _, p := range q.Predicates[1:] {
		if len(candidates) == 0 {
			break
		}
		keep := make(map[string]struct{})
		for _, t := range ix.Lookup(p.Tag, p.Value, p.Exact) {
			keep[t.Path] = struct{}{}
		}
		next := candidates[:0:0]
		for _, t := range candidates {
			if _, ok := keep[t.Path]; ok {
				next = append(next, t)
			}
		}
		candidates = next
	}
	return candidates, nil
}
