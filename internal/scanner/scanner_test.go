package scanner

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"trackfort/internal/library"
)

func silentLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestScan(t *testing.T) {
	t.Run("requires directories", func(t *testing.T) {
		s := New(Opts{Logger: silentLogger()})
		if _, err := s.Scan(context.Background(), nil); err == nil {
			t.Error("expected error for empty directory list")
		}
	})

	t.Run("skips files without readable tags", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"notes.txt", "cover.jpg"} {
			if err := os.WriteFile(filepath.Join(dir, name), []byte("not audio"), 0644); err != nil {
				t.Fatalf("failed to write file: %v", err)
			}
		}

		s := New(Opts{Workers: 2, Logger: silentLogger()})
		tracks, err := s.Scan(context.Background(), []string{dir})
		if err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		if len(tracks) != 0 {
			t.Errorf("expected no tracks, got %d", len(tracks))
		}
	})

	t.Run("fails on missing directory", func(t *testing.T) {
		s := New(Opts{Logger: silentLogger()})
		if _, err := s.Scan(context.Background(), []string{"/does/not/exist"}); err == nil {
			t.Error("expected error for missing directory")
		}
	})
}

func TestDedupeEncodings(t *testing.T) {
	s := New(Opts{Logger: silentLogger()})

	track := func(path string) library.Track {
		return library.Track{Path: path, Tags: map[library.Tag]string{library.TagTitle: "T"}}
	}

	tests := []struct {
		name  string
		paths []string
		want  []string
	}{
		{
			name:  "prefers ogg over mp3",
			paths: []string{"/m/song.mp3", "/m/song.ogg"},
			want:  []string{"/m/song.ogg"},
		},
		{
			name:  "prefers oga over everything",
			paths: []string{"/m/song.flac", "/m/song.oga", "/m/song.mp3"},
			want:  []string{"/m/song.oga"},
		},
		{
			name:  "unknown extensions fall back deterministically",
			paths: []string{"/m/song.wav", "/m/song.aiff"},
			want:  []string{"/m/song.aiff"},
		},
		{
			name:  "distinct bases untouched",
			paths: []string{"/m/a.mp3", "/m/b.mp3"},
			want:  []string{"/m/a.mp3", "/m/b.mp3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tracks []library.Track
			for _, p := range tt.paths {
				tracks = append(tracks, track(p))
			}
			got := s.dedupeEncodings(tracks)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d tracks, got %d", len(tt.want), len(got))
			}
			for i, want := range tt.want {
				if got[i].Path != want {
					t.Errorf("track %d: expected %s, got %s", i, want, got[i].Path)
				}
			}
		})
	}
}
