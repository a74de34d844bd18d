package resolve

import (
	"sort"

	"trackfort/internal/query"
)

// Diagnostic ties one failure to its playlist line.
type Diagnostic struct {
	Line int    // 1-based playlist line number
	Text string // raw line text
	Err  error  // *query.ParseError, *UnderMatchError or *OverMatchError
}

// Report collects every per-line failure from one resolution run, in line
// order, so a single run surfaces all of a playlist's problems at once.
type Report struct {
	Diagnostics []Diagnostic
}

// Add records one failing line.
func (r *Report) Add(line int, text string, err error) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Line: line, Text: text, Err: err})
}

// AddParseErrors records parse failures from the playlist reader.
func (r *Report) AddParseErrors(errs []*query.ParseError) {
	for _, e := range errs {
		r.Add(e.Line, e.Text, e)
	}
}

// Failed reports whether any diagnostic was recorded.
func (r *Report) Failed() bool {
	return len(r.Diagnostics) > 0
}

// Sort orders diagnostics by line number.
func (r *Report) Sort() {
	sort.SliceStable(r.Diagnostics, func(i, j int) bool {
		return r.Diagnostics[i].Line < r.Diagnostics[j].Line
	})
}
