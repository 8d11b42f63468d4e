package store

import (
	"context"
	"fmt"

	"musiclib/internal/models"
)

// AddFavorite inserts a favorite row. Repeated calls create duplicate rows.
func (s *DB) AddFavorite(ctx context.Context, song models.SongInput) (Result, error) {
	return s.exec(ctx, "insert favorite", `
		INSERT INTO favorites (song_title, song_artist, song_album, song_duration, album_art, preview_url)
		VALUES (?, ?, ?, ?, ?, ?)`,
		song.Title, song.Artist, song.Album, song.Duration, song.AlbumArt, song.PreviewURL)
}

// GetAllFavorites returns every favorite, newest first.
func (s *DB) GetAllFavorites(ctx context.Context) ([]models.Favorite, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, song_title, song_artist, COALESCE(song_album, ''), COALESCE(song_duration, ''),
			COALESCE(album_art, ''), COALESCE(preview_url, ''), added_at
		FROM favorites
		ORDER BY added_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	favorites := make([]models.Favorite, 0)
	for rows.Next() {
		var fav models.Favorite
		if err := rows.Scan(&fav.ID, &fav.Title, &fav.Artist, &fav.Album, &fav.Duration,
			&fav.AlbumArt, &fav.PreviewURL, &fav.AddedAt); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		favorites = append(favorites, fav)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorites: %w", err)
	}
	return favorites, nil
}

// RemoveFavorite deletes every favorite row matching the pair.
func (s *DB) RemoveFavorite(ctx context.Context, title, artist string) (Result, error) {
	return s.exec(ctx, "delete favorite", `
		DELETE FROM favorites
		WHERE song_title = ? AND song_artist = ?`, title, artist)
}

// IsFavorite reports whether at least one favorite row matches the pair.
func (s *DB) IsFavorite(ctx context.Context, title, artist string) (bool, error) {
	return s.exists(ctx, "check favorite", `
		SELECT EXISTS(SELECT 1 FROM favorites WHERE song_title = ? AND song_artist = ?)`, title, artist)
}
