package resolve

import "trackfort/internal/library"

// PlaylistTrack is one track in the final playlist, annotated with the group
// it belongs to. Group is metadata for reordering stages, not control flow:
// tracks sharing a group id must stay mutually contiguous and in relative
// order, even when groups themselves are permuted.
type PlaylistTrack struct {
	Track library.Track
	Group int
}

// Playlist is the flattened, ordered output of one resolution run.
//
// Complete is true only when every query in the source playlist resolved; an
// incomplete playlist still carries the tracks of the lines that did resolve,
// so callers choose between partial and all-or-nothing output.
type Playlist struct {
	Tracks   []PlaylistTrack
	Complete bool
}

// Paths returns the playlist's file paths in final order.
func (p *Playlist) Paths() []string {
	paths := make([]string, len(p.Tracks))
	for i, t := range p.Tracks {
		paths[i] = t.Track.Path
	}
	return paths
}

// Groups returns the playlist's tracks bucketed by group, preserving both
// group order and intra-group track order.
func (p *Playlist) Groups() [][]PlaylistTrack {
	var groups [][]PlaylistTrack
	for _, t := range p.Tracks {
		if n := len(groups); n > 0 && groups[n-1][0].Group == t.Group {
			groups[n-1] = append(groups[n-1], t)
			continue
		}
		groups = append(groups, []PlaylistTrack{t})
	}
	return groups
}

// Sequence flattens resolved entries, in source order, into a playlist.
//
// Consecutive entries whose queries carry the group option share one group
// id; every other entry forms a singleton group. Sequence performs no
// reordering itself; it only establishes the grouping contract.
func Sequence(entries []*ResolvedEntry) *Playlist {
	p := &Playlist{Complete: true}

	group := -1
	prevGrouped := false
	for _, e := range entries {
		if !e.Query.Grouped || !prevGrouped {
			group++
		}
		prevGrouped = e.Query.Grouped
		for _, t := range e.Tracks {
			p.Tracks = append(p.Tracks, PlaylistTrack{Track: t, Group: group})
		}
	}
	return p
}
