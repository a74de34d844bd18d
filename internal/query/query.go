package query

import (
	"strconv"
	"strings"

	"trackfort/internal/library"
)

// GroupOption marks a query whose tracks stay contiguous with neighbouring
// grouped queries under any later reordering.
const GroupOption = '+'

// Predicate is a single tag test: substring containment by default, full
// equality when Exact is set. Both modes are case-sensitive.
type Predicate struct {
	Tag   library.Tag
	Value string
	Exact bool
}

// Query is one parsed playlist line: option flags, an expected match count,
// and an ordered, non-empty list of predicates. A track matches the query
// only when it matches every predicate.
type Query struct {
	Line       int    // 1-based line number in the playlist file
	Raw        string // original line text, for diagnostics
	Count      int    // expected number of matched tracks, default 1
	Grouped    bool   // line carried the group option
	Predicates []Predicate
}

// String renders the query in canonical text form. Parsing the result yields
// a query with the same match semantics.
func (q Query) String() string {
	var b strings.Builder
	if q.Grouped {
		b.WriteByte(GroupOption)
	}
	if q.Count != 1 {
		b.WriteString(strconv.Itoa(q.Count))
		b.WriteByte(':')
	}
	for i, p := range q.Predicates {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(string(p.Tag))
		b.WriteByte('=')
		if p.Exact {
			b.WriteByte('"')
			b.WriteString(p.Value)
			b.WriteByte('"')
		} else {
			b.WriteString(p.Value)
		}
	}
	return b.String()
}
