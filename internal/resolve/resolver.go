package resolve

import (
	"fmt"
	"sort"
	"strings"

	"trackfort/internal/library"
	"trackfort/internal/query"
)

// ResolvedEntry is the outcome of resolving one query: exactly the tracks
// chosen for that playlist line, in canonical order, plus the query itself
// for grouping and diagnostics.
type ResolvedEntry struct {
	Query  query.Query
	Tracks []library.Track
}

// UnderMatchError reports a query whose predicates matched fewer tracks than
// its declared count. Actual 0 is the common "not found" case.
type UnderMatchError struct {
	Query    query.Query
	Expected int
	Actual   int
}

func (e *UnderMatchError) Error() string {
	return fmt.Sprintf("line %d: matched %d tracks, expected %d: %q",
		e.Query.Line, e.Actual, e.Expected, e.Query.Raw)
}

// OverMatchError reports an ambiguous query: more tracks matched than its
// declared count. Candidates carries the matched paths so the user can add a
// narrowing predicate.
type OverMatchError struct {
	Query      query.Query
	Expected   int
	Actual     int
	Candidates []string
}

func (e *OverMatchError) Error() string {
	return fmt.Sprintf("line %d: matched %d tracks, expected %d: %q\n  %s",
		e.Query.Line, e.Actual, e.Expected, e.Query.Raw,
		strings.Join(e.Candidates, "\n  "))
}

// Resolve matches q against the index and validates the match count.
//
// Matched tracks are returned sorted by path, ascending byte-wise. That order
// is a fixed contract: resolving the same playlist against the same index
// always produces the same output, regardless of scan or evaluation order.
func Resolve(ix *library.TagIndex, q query.Query) (*ResolvedEntry, error) {
	matched, err := Match(ix, q)
	if err != nil {
		return nil, err
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].Path < matched[j].Path })

	switch {
	case len(matched) < q.Count:
		return nil, &UnderMatchError{Query: q, Expected: q.Count, Actual: len(matched)}
	case len(matched) > q.Count:
		paths := make([]string, len(matched))
		for i, t := range matched {
			paths[i] = t.Path
		}
		return nil, &OverMatchError{Query: q, Expected: q.Count, Actual: len(matched), Candidates: paths}
	}

	return &ResolvedEntry{Query: q, Tracks: matched}, nil
}
