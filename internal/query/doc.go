// Package query implements the playlist line grammar.
//
// A playlist is plain text, one query per line. Each query is zero or more
// option characters, an optional expected-count prefix, and one or more
// AND-composed tag=value clauses separated by pipes:
//
//	+2:album=Demo|artist="Kal"
//
// Quoted values match exactly; bare values match as substrings. Blank lines
// and lines starting with "#" are skipped by the playlist reader.
package query
