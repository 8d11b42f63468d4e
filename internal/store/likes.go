package store

import (
	"context"
	"fmt"

	"musiclib/internal/models"
)

// AddLikedSong inserts the triple unless it is already present.
func (s *DB) AddLikedSong(ctx context.Context, userID string, song models.SongInput) (Result, error) {
	return s.exec(ctx, "insert liked song", s.dialect.insertLikedSong(),
		userID, song.Title, song.Artist, song.Album, song.Duration, song.AlbumArt, song.PreviewURL)
}

// RemoveLikedSong deletes the triple if present.
func (s *DB) RemoveLikedSong(ctx context.Context, userID, title, artist string) (Result, error) {
	return s.exec(ctx, "delete liked song", `
		DELETE FROM liked_songs
		WHERE user_id = ? AND song_title = ? AND song_artist = ?`, userID, title, artist)
}

// IsLikedSong reports whether the triple exists.
func (s *DB) IsLikedSong(ctx context.Context, userID, title, artist string) (bool, error) {
	return s.exists(ctx, "check liked song", `
		SELECT EXISTS(SELECT 1 FROM liked_songs WHERE user_id = ? AND song_title = ? AND song_artist = ?)`,
		userID, title, artist)
}

// GetLikedSongs lists one user's likes, newest first.
func (s *DB) GetLikedSongs(ctx context.Context, userID string) ([]models.LikedSong, error) {
	return s.listLikedSongs(ctx, `
		SELECT id, user_id, song_title, song_artist, COALESCE(song_album, ''), COALESCE(song_duration, ''),
			COALESCE(album_art, ''), COALESCE(preview_url, ''), liked_at
		FROM liked_songs
		WHERE user_id = ?
		ORDER BY liked_at DESC, id DESC`, userID)
}

func (s *DB) listLikedSongs(ctx context.Context, query string, args ...any) ([]models.LikedSong, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list liked songs: %w", err)
	}
	defer rows.Close()

	likes := make([]models.LikedSong, 0)
	for rows.Next() {
		var l models.LikedSong
		if err := rows.Scan(&l.ID, &l.UserID, &l.Title, &l.Artist, &l.Album, &l.Duration,
			&l.AlbumArt, &l.PreviewURL, &l.LikedAt); err != nil {
			return nil, fmt.Errorf("scan liked song: %w", err)
		}
		likes = append(likes, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate liked songs: %w", err)
	}
	return likes, nil
}
