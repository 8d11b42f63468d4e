package likes

import (
	"context"
	"strings"

	"musiclib/internal/logging"
	"musiclib/internal/models"
	"musiclib/internal/store"
)

// Actions accepted by Toggle. An empty action flips the current state.
const (
	ActionLike   = "like"
	ActionUnlike = "unlike"
)

// Store defines the persistence hooks for per-user likes.
type Store interface {
	AddLikedSong(ctx context.Context, userID string, song models.SongInput) (store.Result, error)
	RemoveLikedSong(ctx context.Context, userID, title, artist string) (store.Result, error)
	IsLikedSong(ctx context.Context, userID, title, artist string) (bool, error)
	GetLikedSongs(ctx context.Context, userID string) ([]models.LikedSong, error)
}

// ToggleRequest identifies the song and the requested transition.
type ToggleRequest struct {
	UserID string
	Action string
	Song   models.SongInput
}

// Service manages liked songs.
type Service interface {
	// Toggle applies the requested transition and reports whether the song is
	// liked afterwards.
	Toggle(ctx context.Context, req ToggleRequest) (bool, error)
	List(ctx context.Context, userID string) ([]models.LikedSong, error)
}

type service struct {
	store Store
}

// New constructs a likes Service backed by the given Store.
func New(store Store) Service {
	return &service{store: store}
}

// UserOrDefault returns the trimmed id, or DefaultUserID when it is blank.
func UserOrDefault(userID string) string {
	if userID = strings.TrimSpace(userID); userID == "" {
		return models.DefaultUserID
	}
	return userID
}

// Toggle looks up the current state once, then performs at most one write:
//
//	action "like", or no action and not liked: insert, liked
//	action "unlike", or no action and liked:   delete, not liked
//	any other action:                          no write, current state
func (s *service) Toggle(ctx context.Context, req ToggleRequest) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	song := req.Song.Normalize()
	if err := song.Validate(); err != nil {
		return false, err
	}
	userID := UserOrDefault(req.UserID)
	action := strings.ToLower(strings.TrimSpace(req.Action))

	exists, err := s.store.IsLikedSong(ctx, userID, song.Title, song.Artist)
	if err != nil {
		return false, err
	}

	liked := exists
	switch {
	case action == ActionLike || (action == "" && !exists):
		if _, err := s.store.AddLikedSong(ctx, userID, song); err != nil {
			return false, err
		}
		liked = true
	case action == ActionUnlike || (action == "" && exists):
		if _, err := s.store.RemoveLikedSong(ctx, userID, song.Title, song.Artist); err != nil {
			return false, err
		}
		liked = false
	}

	logging.WithContext(ctx).Debug().
		Str("user_id", userID).
		Str("action", action).
		Bool("was_liked", exists).
		Bool("liked", liked).
		Msg("Like toggled")
	return liked, nil
}

func (s *service) List(ctx context.Context, userID string) ([]models.LikedSong, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.GetLikedSongs(ctx, UserOrDefault(userID))
}
