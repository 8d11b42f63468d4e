package ratings

import (
	"context"
	"strings"

	"musiclib/internal/models"
	"musiclib/internal/store"
)

// Store defines the persistence hooks for ratings workflows.
type Store interface {
	AddRating(ctx context.Context, title, artist string, rating int) (store.Result, error)
	GetRating(ctx context.Context, title, artist string) (*int, error)
	GetAllRatings(ctx context.Context) ([]models.Rating, error)
}

// Service coordinates rating updates and queries.
type Service interface {
	// Rate stores the rating for a song, replacing any previous one. A nil or zero
	// rating counts as missing.
	Rate(ctx context.Context, title, artist string, rating *int) error
	Get(ctx context.Context, title, artist string) (*int, error)
	List(ctx context.Context) ([]models.Rating, error)
}

type service struct {
	store Store
}

// New constructs a ratings Service backed by the given Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Rate(ctx context.Context, title, artist string, rating *int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	title, artist = strings.TrimSpace(title), strings.TrimSpace(artist)
	if title == "" || artist == "" || rating == nil || *rating == 0 {
		return models.Invalid("Song title, artist, and rating are required")
	}
	if *rating < models.MinRating || *rating > models.MaxRating {
		return models.Invalid("Rating must be between 1 and 5")
	}
	_, err := s.store.AddRating(ctx, title, artist, *rating)
	return err
}

func (s *service) Get(ctx context.Context, title, artist string) (*int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.GetRating(ctx, strings.TrimSpace(title), strings.TrimSpace(artist))
}

func (s *service) List(ctx context.Context) ([]models.Rating, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.GetAllRatings(ctx)
}
