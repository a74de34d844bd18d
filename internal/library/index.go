package library

import (
	"fmt"
	"strings"
)

// TagIndex is an immutable-after-build collection of every indexed track,
// queryable by (tag, value, match mode).
//
// Exact lookups are served from per-tag hash maps; substring lookups scan the
// track list. Lookups never mutate the index, so a single TagIndex may be
// shared across concurrent resolutions.
type TagIndex struct {
	tracks []Track
	exact  map[Tag]map[string][]int
}

// NewTagIndex builds a TagIndex from the given tracks.
//
// Every track must appear exactly once; a duplicate path is an error since it
// would break the uniqueness guarantee match results rely on.
func NewTagIndex(tracks []Track) (*TagIndex, error) {
	ix := &TagIndex{
		tracks: make([]Track, len(tracks)),
		exact:  make(map[Tag]map[string][]int, len(Tags)),
	}
	copy(ix.tracks, tracks)

	seen := make(map[string]struct{}, len(tracks))
	for _, t := range ix.tracks {
		if _, dup := seen[t.Path]; dup {
			return nil, fmt.Errorf("duplicate track path in index: %s", t.Path)
		}
		seen[t.Path] = struct{}{}
	}

	for _, tag := range Tags {
		byValue := make(map[string][]int)
		for i, t := range ix.tracks {
			if v := t.Tag(tag); v != "" {
				byValue[v] = append(byValue[v], i)
			}
		}
		ix.exact[tag] = byValue
	}

	return ix, nil
}

// Len returns the number of indexed tracks.
func (ix *TagIndex) Len() int {
	return len(ix.tracks)
}

// Tracks returns a copy of every indexed track.
func (ix *TagIndex) Tracks() []Track {
	out := make([]Track, len(ix.tracks))
	copy(out, ix.tracks)
	return out
}

// Lookup returns the tracks whose value for tag matches value.
//
// With exact set, the track's value must equal value byte-for-byte; otherwise
// value must occur as a contiguous substring. Both modes are case-sensitive.
// A track missing the tag never matches a non-empty value.
func (ix *TagIndex) Lookup(tag Tag, value string, exact bool) []Track {
	if exact {
		indices := ix.exact[tag][value]
		out := make([]Track, 0, len(indices))
		for _, i := range indices {
			out = append(out, ix.tracks[i])
		}
		if value == "" {
			// The exact maps only hold non-empty values; an empty exact
			// value matches tracks where the tag is absent or empty.
			for _, t := range ix.tracks {
				if t.Tag(tag) == "" {
					out = append(out, t)
				}
			}
		}
		return out
	}

	var out []Track
	for _, t := range ix.tracks {
		v := t.Tag(tag)
		if v == "" && value != "" {
			continue
		}
		if strings.Contains(v, value) {
			out = append(out, t)
		}
	}
	return out
}
