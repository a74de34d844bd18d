package library

// Tag names one of the recognized metadata fields on a track.
//
// The vocabulary is closed: query lines referencing any other tag name are
// rejected at parse time, never at match time.
type Tag string

const (
	TagTitle  Tag = "title"
	TagArtist Tag = "artist"
	TagAlbum  Tag = "album"
	TagGenre  Tag = "genre"
)

// Tags lists every recognized tag in canonical order.
var Tags = []Tag{TagTitle, TagArtist, TagAlbum, TagGenre}

// ParseTag returns the [Tag] named by s and whether s is a recognized tag name.
func ParseTag(s string) (Tag, bool) {
	for _, t := range Tags {
		if s == string(t) {
			return t, true
		}
	}
	return "", false
}

// Track represents one indexed music file.
//
// Tracks are immutable once indexed; they are created by the library scanner
// and live for the duration of the index.
type Track struct {
	ID   string         `json:"id"`
	Path string         `json:"path"`
	Tags map[Tag]string `json:"tags"`
}

// Tag returns the track's value for the given tag, or "" when the tag is
// absent or empty.
func (t Track) Tag(tag Tag) string {
	return t.Tags[tag]
}
