package store

import (
	"database/sql"
	"fmt"
	"time"

	"trackfort/internal/library"
	"trackfort/internal/shared"
)

// TrackStore persists scanned tracks to SQLite.
type TrackStore struct {
	db *sql.DB
}

// NewTrackStore creates a new TrackStore with the given database connection
func NewTrackStore(db *sql.DB) *TrackStore {
	return &TrackStore{db: db}
}

// ReplaceAll replaces the entire stored index with tracks in one
// transaction. Tracks without an ID are assigned one.
func (s *TrackStore) ReplaceAll(tracks []library.Track) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM tracks"); err != nil {
		return fmt.Errorf("failed to clear tracks: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO tracks (id, path, title, artist, album, genre, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, t := range tracks {
		id := t.ID
		if id == "" {
			id = shared.GenerateID()
		}
		_, err := stmt.Exec(
			id,
			t.Path,
			t.Tag(library.TagTitle),
			t.Tag(library.TagArtist),
			t.Tag(library.TagAlbum),
			t.Tag(library.TagGenre),
			now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert track %s: %w", t.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// All retrieves every stored track ordered by path.
func (s *TrackStore) All() ([]library.Track, error) {
	rows, err := s.db.Query(`
		SELECT id, path, title, artist, album, genre
		FROM tracks
		ORDER BY path ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	var tracks []library.Track
	for rows.Next() {
		track, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return tracks, nil
}

// Count returns the number of stored tracks.
func (s *TrackStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM tracks").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tracks: %w", err)
	}
	return count, nil
}

// scanTrack scans a row from [sql.Rows] into a [library.Track]
func scanTrack(rows *sql.Rows) (library.Track, error) {
	var (
		id     string
		path   string
		title  string
		artist string
		album  string
		genre  string
	)

	if err := rows.Scan(&id, &path, &title, &artist, &album, &genre); err != nil {
		return library.Track{}, fmt.Errorf("failed to scan track: %w", err)
	}

	tags := make(map[library.Tag]string, 4)
	if title != "" {
		tags[library.TagTitle] = title
	}
	if artist != "" {
		tags[library.TagArtist] = artist
	}
	if album != "" {
		tags[library.TagAlbum] = album
	}
	if genre != "" {
		tags[library.TagGenre] = genre
	}

	return library.Track{ID: id, Path: path, Tags: tags}, nil
}
