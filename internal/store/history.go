package store

import (
	"context"
	"fmt"

	"musiclib/internal/models"
)

// AddToHistory appends a play to the listen history.
func (s *DB) AddToHistory(ctx context.Context, song models.SongInput) (Result, error) {
	return s.exec(ctx, "insert history", `
		INSERT INTO listen_history (song_title, song_artist, song_album, song_duration, album_art, preview_url)
		VALUES (?, ?, ?, ?, ?, ?)`,
		song.Title, song.Artist, song.Album, song.Duration, song.AlbumArt, song.PreviewURL)
}

// GetHistory returns at most limit entries, most recent play first.
func (s *DB) GetHistory(ctx context.Context, limit int) ([]models.HistoryEntry, error) {
	if limit < 0 {
		limit = 0
	}
	return s.listHistory(ctx, `
		SELECT id, song_title, song_artist, COALESCE(song_album, ''), COALESCE(song_duration, ''),
			COALESCE(album_art, ''), COALESCE(preview_url, ''), played_at
		FROM listen_history
		ORDER BY played_at DESC, id DESC
		LIMIT ?`, limit)
}

// ClearHistory deletes every history entry.
func (s *DB) ClearHistory(ctx context.Context) (Result, error) {
	return s.exec(ctx, "clear history", `DELETE FROM listen_history`)
}

// RemoveHistoryItem deletes one history entry.
func (s *DB) RemoveHistoryItem(ctx context.Context, id int64) (Result, error) {
	return s.exec(ctx, "delete history item", `DELETE FROM listen_history WHERE id = ?`, id)
}

func (s *DB) listHistory(ctx context.Context, query string, args ...any) ([]models.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	entries := make([]models.HistoryEntry, 0)
	for rows.Next() {
		var e models.HistoryEntry
		if err := rows.Scan(&e.ID, &e.Title, &e.Artist, &e.Album, &e.Duration,
			&e.AlbumArt, &e.PreviewURL, &e.PlayedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}
