package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"musiclib/internal/models"
)

// AddRating inserts a rating or overwrites the existing one for the same pair.
func (s *DB) AddRating(ctx context.Context, title, artist string, rating int) (Result, error) {
	return s.exec(ctx, "upsert rating", s.dialect.upsertRating(), title, artist, rating)
}

// GetRating returns nil when the pair has never been rated.
func (s *DB) GetRating(ctx context.Context, title, artist string) (*int, error) {
	var rating sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
		SELECT rating
		FROM ratings
		WHERE song_title = ? AND song_artist = ?
		LIMIT 1`, title, artist).Scan(&rating)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get rating: %w", err)
	}
	if !rating.Valid {
		return nil, nil
	}
	value := int(rating.Int64)
	return &value, nil
}

// GetAllRatings returns every rating, most recently rated first.
func (s *DB) GetAllRatings(ctx context.Context) ([]models.Rating, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, song_title, song_artist, COALESCE(rating, 0), rated_at
		FROM ratings
		ORDER BY rated_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	defer rows.Close()

	ratings := make([]models.Rating, 0)
	for rows.Next() {
		var r models.Rating
		if err := rows.Scan(&r.ID, &r.Title, &r.Artist, &r.Rating, &r.RatedAt); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		ratings = append(ratings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}
	return ratings, nil
}
