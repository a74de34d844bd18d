package query

import (
	"fmt"
	"strconv"
	"strings"

	"trackfort/internal/library"
)

// ParseError describes one malformed playlist line.
type ParseError struct {
	Line   int    // 1-based line number
	Text   string // raw line text
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// Parse converts a single playlist line into a [Query].
//
// The line must already be trimmed and known to be neither blank nor a
// comment; [ParseLines] handles that filtering. Parsing never consults the
// track index and is deterministic.
func Parse(line string, lineNo int) (*Query, error) {
	fail := func(reason string) (*Query, error) {
		return nil, &ParseError{Line: lineNo, Text: line, Reason: reason}
	}

	q := &Query{Line: lineNo, Raw: line, Count: 1}

	// Leading option characters: anything before the first letter or digit.
	i := 0
	for i < len(line) && !isWord(line[i]) {
		if line[i] != GroupOption {
			return fail(fmt.Sprintf("unrecognized option %q", string(line[i])))
		}
		q.Grouped = true
		i++
	}

	// Optional count prefix "N:".
	j := i
	for j < len(line) && line[j] >= '0' && line[j] <= '9' {
		j++
	}
	if j > i {
		if j == len(line) || line[j] != ':' {
			return fail("malformed count prefix")
		}
		n, err := strconv.Atoi(line[i:j])
		if err != nil {
			return fail("invalid count")
		}
		if n < 1 {
			return fail("count must be positive")
		}
		q.Count = n
		i = j + 1
	}

	if i == len(line) {
		return fail("query has no clauses")
	}

	preds, reason := parseClauses(line[i:])
	if reason != "" {
		return fail(reason)
	}
	q.Predicates = preds
	return q, nil
}

// parseClauses scans "tag=value" clauses separated by pipes, honouring
// double quotes so quoted values may contain the separator. It returns a
// non-empty reason string on failure.
func parseClauses(s string) ([]Predicate, string) {
	var preds []Predicate
	pos := 0
	for {
		eq := strings.IndexByte(s[pos:], '=')
		if eq < 0 {
			return nil, "clause is missing '='"
		}
		name := s[pos : pos+eq]
		if name == "" {
			return nil, "clause has no tag name"
		}
		tag, ok := library.ParseTag(name)
		if !ok {
			return nil, fmt.Sprintf("unrecognized tag %q", name)
		}

		vstart := pos + eq + 1
		if vstart < len(s) && s[vstart] == '"' {
			end := strings.IndexByte(s[vstart+1:], '"')
			if end < 0 {
				return nil, "unterminated quote"
			}
			preds = append(preds, Predicate{Tag: tag, Value: s[vstart+1 : vstart+1+end], Exact: true})
			after := vstart + 2 + end
			if after == len(s) {
				return preds, ""
			}
			if s[after] != '|' {
				return nil, "unexpected text after closing quote"
			}
			pos = after + 1
		} else {
			pipe := strings.IndexByte(s[vstart:], '|')
			if pipe < 0 {
				preds = append(preds, Predicate{Tag: tag, Value: s[vstart:]})
				return preds, ""
			}
			preds = append(preds, Predicate{Tag: tag, Value: s[vstart : vstart+pipe]})
			pos = vstart + pipe + 1
		}
		if pos == len(s) {
			return nil, "trailing clause separator"
		}
	}
}

func isWord(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}
