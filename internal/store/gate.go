package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"musiclib/internal/models"
)

// Gate is the one-shot readiness barrier in front of a Store. It is resolved exactly
// once, with either a ready store or the initialization error, and never reset.
// Every operation waits for resolution before delegating.
type Gate struct {
	ready chan struct{}
	once  sync.Once
	store Store
	err   error
}

var _ Store = (*Gate)(nil)

// NewGate returns an unresolved gate.
func NewGate() *Gate {
	return &Gate{ready: make(chan struct{})}
}

// Resolve records the initialization outcome. Only the first call has an effect;
// it reports whether this call was the one that resolved the gate.
func (g *Gate) Resolve(s Store, err error) bool {
	resolved := false
	g.once.Do(func() {
		if err == nil && s == nil {
			err = errors.New("no store")
		}
		g.store, g.err = s, err
		resolved = true
		close(g.ready)
	})
	return resolved
}

// Done is closed once the gate has been resolved.
func (g *Gate) Done() <-chan struct{} {
	return g.ready
}

// Wait blocks until the gate is resolved or ctx ends. After a failed
// initialization it returns an error matching ErrNotInitialized.
func (g *Gate) Wait(ctx context.Context) (Store, error) {
	select {
	case <-g.ready:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if g.err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotInitialized, g.err)
	}
	return g.store, nil
}

func (g *Gate) CreatePlaylist(ctx context.Context, name, description string) (Result, error) {
	s, err := g.Wait(ctx)
	if err != nil {
		return Result{}, err
	}
	return s.CreatePlaylist(ctx, name, description)
}

func (g *Gate) GetAllPlaylists(ctx context.Context) ([]models.Playlist, error) {
	s, err := g.Wait(ctx)
	if err != nil {
		return nil, err
	}
	return s.GetAllPlaylists(ctx)
}

func (g *Gate) GetPlaylistByID(ctx context.Context, id int64) (*models.Playlist, error) {
	s, err := g.Wait(ctx)
	if err != nil {
		return nil, err
	}
	return s.GetPlaylistByID(ctx, id)
}

func (g *Gate) DeletePlaylist(ctx context.Context, id int64) (Result, error) {
	s, err := g.Wait(ctx)
	if err != nil {
		return Result{}, err
	}
	return s.DeletePlaylist(ctx, id)
}

func (g *Gate) UpdatePlaylist(ctx context.Context, id int64, name, description string) (Result, error) {
	s, err := g.Wait(ctx)
	if err != nil {
		return Result{}, err
	}
	return s.UpdatePlaylist(ctx, id, name, description)
}

func (g *Gate) AddSongToPlaylist(ctx context.Context, playlistID int64, song models.SongInput) (Result, error) {
	s, err := g.Wait(ctx)
	if err != nil {
		return Result{}, err
	}
	return s.AddSongToPlaylist(ctx, playlistID, song)
}

func (g *Gate) GetPlaylistSongs(ctx context.Context, playlistID int64) ([]models.PlaylistSong, error) {
	s, err := g.Wait(ctx)
	if err != nil {
		return nil, err
	}
	return s.GetPlaylistSongs(ctx, playlistID)
}

func (g *Gate) RemoveSongFromPlaylist(ctx context.Context, songID int64) (Result, error) {
	s, err := g.Wait(ctx)
	if err != nil {
		return Result{}, err
	}
	return s.RemoveSongFromPlaylist(ctx, songID)
}

func (g *Gate) GetSongCountInPlaylist(ctx context.Context, playlistID int64) (int64, error) {
	s, err := g.Wait(ctx)
	if err != nil {
		return 0, err
	}
	return s.GetSongCountInPlaylist(ctx, playlistID)
}

func (g *Gate) AddFavorite(ctx context.Context, song models.SongInput) (Result, error) {
	s, err := g.Wait(ctx)
	if err != nil {
		return Result{}, err
	}
	return s.AddFavorite(ctx, song)
}

func (g *Gate) GetAllFavorites(ctx context.Context) ([]models.Favorite, error) {
	s, err := g.Wait(ctx)
	if err != nil {
		return nil, err
	}
	return s.GetAllFavorites(ctx)
}

func (g *Gate) RemoveFavorite(ctx context.Context, title, artist string) (Result, error) {
	s, err := g.Wait(ctx)
	if err != nil {
		return Result{}, err
	}
	return s.RemoveFavorite(ctx, title, artist)
}

func (g *Gate) IsFavorite(ctx context.Context, title, artist string) (bool, error) {
	s, err := g.Wait(ctx)
	if err != nil {
		return false, err
	}
	return s.IsFavorite(ctx, title, artist)
}

func (g *Gate) AddToHistory(ctx context.Context, song models.SongInput) (Result, error) {
	s, err := g.Wait(ctx)
	if err != nil {
		return Result{}, err
	}
	return s.AddToHistory(ctx, song)
}

func (g *Gate) GetHistory(ctx context.Context, limit int) ([]models.HistoryEntry, error) {
	s, err := g.Wait(ctx)
	if err != nil {
		return nil, err
	}
	return s.GetHistory(ctx, limit)
}

func (g *Gate) ClearHistory(ctx context.Context) (Result, error) {
	s, err := g.Wait(ctx)
	if err != nil {
		return Result{}, err
	}
	return s.ClearHistory(ctx)
}

func (g *Gate) RemoveHistoryItem(ctx context.Context, id int64) (Result, error) {
	s, err := g.Wait(ctx)
	if err != nil {
		return Result{}, err
	}
	return s.RemoveHistoryItem(ctx, id)
}

func (g *Gate) AddRating(ctx context.Context, title, artist string, rating int) (Result, error) {
	s, err := g.Wait(ctx)
	if err != nil {
		return Result{}, err
	}
	return s.AddRating(ctx, title, artist, rating)
}

func (g *Gate) GetRating(ctx context.Context, title, artist string) (*int, error) {
	s, err := g.Wait(ctx)
	if err != nil {
		return nil, err
	}
	return s.GetRating(ctx, title, artist)
}

func (g *Gate) GetAllRatings(ctx context.Context) ([]models.Rating, error) {
	s, err := g.Wait(ctx)
	if err != nil {
		return nil, err
	}
	return s.GetAllRatings(ctx)
}

func (g *Gate) AddLikedSong(ctx context.Context, userID string, song models.SongInput) (Result, error) {
	s, err := g.Wait(ctx)
	if err != nil {
		return Result{}, err
	}
	return s.AddLikedSong(ctx, userID, song)
}

func (g *Gate) RemoveLikedSong(ctx context.Context, userID, title, artist string) (Result, error) {
	s, err := g.Wait(ctx)
	if err != nil {
		return Result{}, err
	}
	return s.RemoveLikedSong(ctx, userID, title, artist)
}

func (g *Gate) IsLikedSong(ctx context.Context, userID, title, artist string) (bool, error) {
	s, err := g.Wait(ctx)
	if err != nil {
		return false, err
	}
	return s.IsLikedSong(ctx, userID, title, artist)
}

func (g *Gate) GetLikedSongs(ctx context.Context, userID string) ([]models.LikedSong, error) {
	s, err := g.Wait(ctx)
	if err != nil {
		return nil, err
	}
	return s.GetLikedSongs(ctx, userID)
}
