// package testing contains shared testing utilities
package testing

import (
	"os"
	"path/filepath"
	"testing"

	"trackfort/internal/library"
)

// TrackSpec is a compact track description for building synthetic indexes.
type TrackSpec struct {
	Path   string
	Title  string
	Artist string
	Album  string
	Genre  string
}

// NewTrack builds a [library.Track] from a spec, omitting empty tags.
func NewTrack(spec TrackSpec) library.Track {
	tags := make(map[library.Tag]string, 4)
	if spec.Title != "" {
		tags[library.TagTitle] = spec.Title
	}
	if spec.Artist != "" {
		tags[library.TagArtist] = spec.Artist
	}
	if spec.Album != "" {
		tags[library.TagAlbum] = spec.Album
	}
	if spec.Genre != "" {
		tags[library.TagGenre] = spec.Genre
	}
	return library.Track{ID: spec.Path, Path: spec.Path, Tags: tags}
}

// NewIndex builds a synthetic in-memory tag index from specs.
func NewIndex(t *testing.T, specs ...TrackSpec) *library.TagIndex {
	t.Helper()
	tracks := make([]library.Track, len(specs))
	for i, spec := range specs {
		tracks[i] = NewTrack(spec)
	}
	ix, err := library.NewTagIndex(tracks)
	if err != nil {
		t.Fatalf("failed to build index: %v", err)
	}
	return ix
}

// WriteFile writes content to a file under dir, creating parents, and
// returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// AssertFileExists fails the test when path does not exist.
func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); os.IsNotExist(err) {
		t.Errorf("file does not exist: %s", path)
	}
}

// MustReadFile reads a file or fails the test.
func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}
	return string(content)
}
