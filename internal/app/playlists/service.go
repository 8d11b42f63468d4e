package playlists

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"musiclib/internal/models"
	"musiclib/internal/store"
)

// countConcurrency bounds the per-playlist song count queries issued by List.
const countConcurrency = 8

// Store captures the persistence needs for playlist workflows.
type Store interface {
	CreatePlaylist(ctx context.Context, name, description string) (store.Result, error)
	GetAllPlaylists(ctx context.Context) ([]models.Playlist, error)
	GetPlaylistByID(ctx context.Context, id int64) (*models.Playlist, error)
	DeletePlaylist(ctx context.Context, id int64) (store.Result, error)
	UpdatePlaylist(ctx context.Context, id int64, name, description string) (store.Result, error)
	AddSongToPlaylist(ctx context.Context, playlistID int64, song models.SongInput) (store.Result, error)
	GetPlaylistSongs(ctx context.Context, playlistID int64) ([]models.PlaylistSong, error)
	RemoveSongFromPlaylist(ctx context.Context, songID int64) (store.Result, error)
	GetSongCountInPlaylist(ctx context.Context, playlistID int64) (int64, error)
}

// Detail is a playlist together with its songs.
type Detail struct {
	Playlist models.Playlist       `json:"playlist"`
	Songs    []models.PlaylistSong `json:"songs"`
}

// Service coordinates playlist-related operations.
type Service interface {
	List(ctx context.Context) ([]models.PlaylistSummary, error)
	Get(ctx context.Context, id int64) (*Detail, error)
	Create(ctx context.Context, name, description string) (int64, error)
	Update(ctx context.Context, id int64, name, description string) error
	Delete(ctx context.Context, id int64) error
	AddSong(ctx context.Context, playlistID int64, song models.SongInput) (int64, error)
	RemoveSong(ctx context.Context, songID int64) error
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

// List returns every playlist with its song count.
func (s *service) List(ctx context.Context) ([]models.PlaylistSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	playlists, err := s.store.GetAllPlaylists(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.PlaylistSummary, len(playlists))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(countConcurrency)
	for i, p := range playlists {
		summaries[i].Playlist = p
		g.Go(func() error {
			count, err := s.store.GetSongCountInPlaylist(gctx, p.ID)
			if err != nil {
				return err
			}
			summaries[i].SongCount = count
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (s *service) Get(ctx context.Context, id int64) (*Detail, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	playlist, err := s.store.GetPlaylistByID(ctx, id)
	if err != nil {
		return nil, err
	}
	songs, err := s.store.GetPlaylistSongs(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Detail{Playlist: *playlist, Songs: songs}, nil
}

func (s *service) Create(ctx context.Context, name, description string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	name, description, err := normalizePlaylist(name, description)
	if err != nil {
		return 0, err
	}
	res, err := s.store.CreatePlaylist(ctx, name, description)
	if err != nil {
		return 0, err
	}
	return res.InsertID, nil
}

// Update is a no-op for unknown ids.
func (s *service) Update(ctx context.Context, id int64, name, description string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name, description, err := normalizePlaylist(name, description)
	if err != nil {
		return err
	}
	_, err = s.store.UpdatePlaylist(ctx, id, name, description)
	return err
}

// Delete removes the playlist and its songs. Unknown ids are not an error.
func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.store.DeletePlaylist(ctx, id)
	return err
}

func (s *service) AddSong(ctx context.Context, playlistID int64, song models.SongInput) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	song = song.Normalize()
	if err := song.Validate(); err != nil {
		return 0, err
	}
	res, err := s.store.AddSongToPlaylist(ctx, playlistID, song)
	if err != nil {
		return 0, err
	}
	return res.InsertID, nil
}

func (s *service) RemoveSong(ctx context.Context, songID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.store.RemoveSongFromPlaylist(ctx, songID)
	return err
}

func normalizePlaylist(name, description string) (string, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", models.Invalid("Playlist name is required")
	}
	return name, strings.TrimSpace(description), nil
}
