package history

import (
	"context"

	"musiclib/internal/models"
	"musiclib/internal/store"
)

// DefaultLimit applies when a caller asks for a non-positive number of entries.
const DefaultLimit = 50

// Store defines the persistence hooks for listen history.
type Store interface {
	AddToHistory(ctx context.Context, song models.SongInput) (store.Result, error)
	GetHistory(ctx context.Context, limit int) ([]models.HistoryEntry, error)
	ClearHistory(ctx context.Context) (store.Result, error)
	RemoveHistoryItem(ctx context.Context, id int64) (store.Result, error)
}

// Service manages the listen history. History is global; it is not partitioned
// by user.
type Service interface {
	Recent(ctx context.Context, limit int) ([]models.HistoryEntry, error)
	Record(ctx context.Context, song models.SongInput) error
	Remove(ctx context.Context, id int64) error
	Clear(ctx context.Context) error
}

type service struct {
	store Store
}

// New constructs a history Service backed by the given Store.
func New(store Store) Service {
	return &service{store: store}
}

// Recent returns at most limit entries, most recent first.
func (s *service) Recent(ctx context.Context, limit int) ([]models.HistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return s.store.GetHistory(ctx, limit)
}

func (s *service) Record(ctx context.Context, song models.SongInput) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	song = song.Normalize()
	if err := song.Validate(); err != nil {
		return err
	}
	_, err := s.store.AddToHistory(ctx, song)
	return err
}

func (s *service) Remove(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.store.RemoveHistoryItem(ctx, id)
	return err
}

func (s *service) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.store.ClearHistory(ctx)
	return err
}
