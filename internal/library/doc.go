// Package library defines the track data model and the in-memory tag index
// that playlist queries are resolved against.
//
// A [Track] is one indexed music file: its path plus a mapping from the
// recognized tag names (title, artist, album, genre) to string values. The
// [TagIndex] is built once from the full set of scanned tracks and is
// read-only afterwards, so lookups are safe to run concurrently.
package library
