package favorites

import (
	"context"
	"strings"

	"musiclib/internal/models"
	"musiclib/internal/store"
)

// Store defines the persistence hooks for favorites.
type Store interface {
	AddFavorite(ctx context.Context, song models.SongInput) (store.Result, error)
	GetAllFavorites(ctx context.Context) ([]models.Favorite, error)
	RemoveFavorite(ctx context.Context, title, artist string) (store.Result, error)
	IsFavorite(ctx context.Context, title, artist string) (bool, error)
}

// Service manages the global favorites list. Adding the same song twice creates
// two rows; callers that want set semantics check first.
type Service interface {
	List(ctx context.Context) ([]models.Favorite, error)
	Add(ctx context.Context, song models.SongInput) error
	Remove(ctx context.Context, title, artist string) error
	Check(ctx context.Context, title, artist string) (bool, error)
}

type service struct {
	store Store
}

// New constructs a favorites Service backed by the given Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) List(ctx context.Context) ([]models.Favorite, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.GetAllFavorites(ctx)
}

func (s *service) Add(ctx context.Context, song models.SongInput) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	song = song.Normalize()
	if err := song.Validate(); err != nil {
		return err
	}
	_, err := s.store.AddFavorite(ctx, song)
	return err
}

func (s *service) Remove(ctx context.Context, title, artist string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	title, artist = strings.TrimSpace(title), strings.TrimSpace(artist)
	if err := models.RequireSong(title, artist); err != nil {
		return err
	}
	_, err := s.store.RemoveFavorite(ctx, title, artist)
	return err
}

func (s *service) Check(ctx context.Context, title, artist string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	title, artist = strings.TrimSpace(title), strings.TrimSpace(artist)
	if title == "" || artist == "" {
		return false, models.Invalid("Title and artist are required")
	}
	return s.store.IsFavorite(ctx, title, artist)
}
