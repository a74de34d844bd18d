package resolve

import "math/rand"

// Shuffle returns a copy of p with its groups permuted at random.
//
// The grouping contract holds: tracks sharing a group stay mutually
// contiguous and in their original relative order; only the order of groups
// changes. Pass a seeded [rand.Rand] for reproducible output.
func Shuffle(p *Playlist, rng *rand.Rand) *Playlist {
	groups := p.Groups()
	rng.Shuffle(len(groups), func(i, j int) {
		groups[i], groups[j] = groups[j], groups[i]
	})

	out := &Playlist{Complete: p.Complete, Tracks: make([]PlaylistTrack, 0, len(p.Tracks))}
	for _, g := range groups {
		out.Tracks = append(out.Tracks, g...)
	}
	return out
}
