// Package store implements SQLite persistence for the scanned track index.
//
// The index is write-once per scan: [TrackStore.ReplaceAll] swaps the whole
// track set in one transaction, and [TrackStore.All] reads it back for
// resolution. Between scans the stored index is treated as read-only.
package store
