package query

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseFile reads a playlist file and parses every query line in it.
//
// Parse failures are collected per line rather than aborting at the first
// one, so a single run reports every problem in the playlist. The returned
// error covers I/O only.
func ParseFile(path string) ([]Query, []*ParseError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open playlist: %w", err)
	}
	defer f.Close()

	queries, parseErrs, err := ParseLines(f)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read playlist %s: %w", path, err)
	}
	return queries, parseErrs, nil
}

// ParseLines parses playlist text from r, one query per line.
//
// Blank lines and lines whose first non-whitespace character is '#' are
// skipped entirely; they are neither parsed nor counted as queries. Line
// numbers in queries and errors refer to the full file, comments included.
func ParseLines(r io.Reader) ([]Query, []*ParseError, error) {
	var queries []Query
	var parseErrs []*ParseError

	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		q, err := Parse(line, lineNo)
		if err != nil {
			parseErrs = append(parseErrs, err.(*ParseError))
			continue
		}
		queries = append(queries, *q)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	return queries, parseErrs, nil
}
