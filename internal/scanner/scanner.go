// Package scanner walks the configured library directories and reads tag
// metadata from audio files, producing the track records the index is built
// from. Files the tag reader cannot parse are skipped.
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/dhowden/tag"

	"trackfort/internal/library"
	"trackfort/internal/shared"
)

// Scanner reads track metadata from a music library on disk.
type Scanner struct {
	preferred []string
	workers   int
	logger    *log.Logger
}

// Opts contains configuration options for creating a [Scanner].
type Opts struct {
	// PreferredExtensions orders the extension kept when one track exists
	// in several encodings. Defaults to .oga, .ogg, .mp3, .flac.
	PreferredExtensions []string
	// Workers bounds the tag-reading pool; zero means one per CPU.
	Workers int
	Logger  *log.Logger
}

// New creates a Scanner.
func New(opts Opts) *Scanner {
	if len(opts.PreferredExtensions) == 0 {
		opts.PreferredExtensions = []string{".oga", ".ogg", ".mp3", ".flac"}
	}
	if opts.Workers < 1 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	return &Scanner{preferred: opts.PreferredExtensions, workers: opts.Workers, logger: opts.Logger}
}

// Scan walks every directory and returns the tracks found, sorted by path.
//
// Tag reading runs on parallel workers. Files without readable tags are
// logged at debug level and skipped; an unreadable directory fails the scan.
func (s *Scanner) Scan(ctx context.Context, dirs []string) ([]library.Track, error) {
	if len(dirs) == 0 {
		return nil, shared.ErrNoDirectories
	}

	var paths []string
	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if !d.IsDir() {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
		}
	}

	jobs := make(chan string)
	results := make(chan library.Track)

	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				track, err := s.readTrack(path)
				if err != nil {
					s.logger.Debugf("skipping %s: %v", path, err)
					continue
				}
				results <- track
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, path := range paths {
			select {
			case jobs <- path:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var tracks []library.Track
	for track := range results {
		tracks = append(tracks, track)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tracks = s.dedupeEncodings(tracks)
	sort.Slice(tracks, func(i, j int) bool { return tracks[i].Path < tracks[j].Path })
	return tracks, nil
}

// readTrack reads tag metadata from one file.
func (s *Scanner) readTrack(path string) (library.Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return library.Track{}, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return library.Track{}, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return library.Track{}, err
	}

	tags := make(map[library.Tag]string, 4)
	if v := m.Title(); v != "" {
		tags[library.TagTitle] = v
	}
	if v := m.Artist(); v != "" {
		tags[library.TagArtist] = v
	}
	if v := m.Album(); v != "" {
		tags[library.TagAlbum] = v
	}
	if v := m.Genre(); v != "" {
		tags[library.TagGenre] = v
	}

	return library.Track{ID: shared.GenerateID(), Path: abs, Tags: tags}, nil
}

// dedupeEncodings keeps one file per base name when a track exists in
// several encodings, choosing the first extension present in the preference
// order (lexicographic order breaks remaining ties deterministically).
func (s *Scanner) dedupeEncodings(tracks []library.Track) []library.Track {
	byBase := make(map[string][]library.Track)
	var bases []string
	for _, t := range tracks {
		base := strings.TrimSuffix(t.Path, filepath.Ext(t.Path))
		if _, ok := byBase[base]; !ok {
			bases = append(bases, base)
		}
		byBase[base] = append(byBase[base], t)
	}

	rank := func(path string) int {
		ext := strings.ToLower(filepath.Ext(path))
		for i, p := range s.preferred {
			if ext == p {
				return i
			}
		}
		return len(s.preferred)
	}

	deduped := make([]library.Track, 0, len(bases))
	for _, base := range bases {
		group := byBase[base]
		sort.Slice(group, func(i, j int) bool {
			ri, rj := rank(group[i].Path), rank(group[j].Path)
			if ri != rj {
				return ri < rj
			}
			return group[i].Path < group[j].Path
		})
		deduped = append(deduped, group[0])
	}
	return deduped
}
