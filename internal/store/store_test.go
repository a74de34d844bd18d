package store

import (
	"database/sql"
	"testing"

	"trackfort/internal/library"
	"trackfort/internal/shared"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("NewDatabase failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("RunMigrations failed: %v", err)
	}
	return db
}

func TestTrackStore(t *testing.T) {
	tracks := []library.Track{
		{Path: "/music/b.mp3", Tags: map[library.Tag]string{library.TagTitle: "B", library.TagArtist: "Gyn"}},
		{Path: "/music/a.ogg", Tags: map[library.Tag]string{library.TagTitle: "A", library.TagGenre: "ambient"}},
	}

	t.Run("replace and read back", func(t *testing.T) {
		s := NewTrackStore(testDB(t))
		if err := s.ReplaceAll(tracks); err != nil {
			t.Fatalf("ReplaceAll failed: %v", err)
		}

		got, err := s.All()
		if err != nil {
			t.Fatalf("All failed: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 tracks, got %d", len(got))
		}
		// All returns path order.
		if got[0].Path != "/music/a.ogg" || got[1].Path != "/music/b.mp3" {
			t.Errorf("unexpected order: %s, %s", got[0].Path, got[1].Path)
		}
		if got[0].Tag(library.TagGenre) != "ambient" {
			t.Errorf("expected genre ambient, got %q", got[0].Tag(library.TagGenre))
		}
		if got[0].ID == "" {
			t.Error("expected generated ID")
		}
		// Absent tags stay absent, not empty entries.
		if _, ok := got[0].Tags[library.TagArtist]; ok {
			t.Error("expected artist tag to be absent")
		}
	})

	t.Run("replace swaps the whole index", func(t *testing.T) {
		s := NewTrackStore(testDB(t))
		if err := s.ReplaceAll(tracks); err != nil {
			t.Fatalf("ReplaceAll failed: %v", err)
		}
		if err := s.ReplaceAll(tracks[:1]); err != nil {
			t.Fatalf("second ReplaceAll failed: %v", err)
		}

		count, err := s.Count()
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 track after replace, got %d", count)
		}
	})

	t.Run("rejects duplicate paths", func(t *testing.T) {
		s := NewTrackStore(testDB(t))
		dup := []library.Track{tracks[0], tracks[0]}
		if err := s.ReplaceAll(dup); err == nil {
			t.Error("expected unique constraint violation")
		}
	})
}
