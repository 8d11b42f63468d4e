// Package storetest provides an in-memory store.Store for tests.
package storetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"musiclib/internal/models"
	"musiclib/internal/store"
)

// Memory implements store.Store on maps. Every call is counted by operation name
// so tests can assert that a request never reached storage.
type Memory struct {
	mu sync.RWMutex

	nextID    int64
	playlists map[int64]models.Playlist
	songs     map[int64]models.PlaylistSong
	favorites map[int64]models.Favorite
	history   map[int64]models.HistoryEntry
	ratings   map[int64]models.Rating
	likes     map[int64]models.LikedSong

	calls    map[string]int
	failures map[string]error
	now      func() time.Time
}

var _ store.Store = (*Memory)(nil)

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{
		nextID:    1,
		playlists: make(map[int64]models.Playlist),
		songs:     make(map[int64]models.PlaylistSong),
		favorites: make(map[int64]models.Favorite),
		history:   make(map[int64]models.HistoryEntry),
		ratings:   make(map[int64]models.Rating),
		likes:     make(map[int64]models.LikedSong),
		calls:     make(map[string]int),
		failures:  make(map[string]error),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Calls reports how often the named operation was invoked.
func (m *Memory) Calls(op string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls[op]
}

// TotalCalls reports the number of operations invoked so far.
func (m *Memory) TotalCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}

// Fail makes every later call of op return err. A nil err clears the failure.
func (m *Memory) Fail(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failures, op)
		return
	}
	m.failures[op] = err
}

// enter records the call and returns the injected failure, if any. Callers hold mu.
func (m *Memory) enter(op string) error {
	m.calls[op]++
	return m.failures[op]
}

func (m *Memory) id() int64 {
	id := m.nextID
	m.nextID++
	return id
}

// newestFirst returns the map values ordered by descending id.
func newestFirst[T any](rows map[int64]T, keep func(T) bool) []T {
	ids := make([]int64, 0, len(rows))
	for id, row := range rows {
		if keep == nil || keep(row) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, rows[id])
	}
	return out
}

func (m *Memory) CreatePlaylist(_ context.Context, name, description string) (store.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("CreatePlaylist"); err != nil {
		return store.Result{}, err
	}
	id := m.id()
	m.playlists[id] = models.Playlist{ID: id, Name: name, Description: description, CreatedAt: m.now()}
	return store.Result{InsertID: id, RowsAffected: 1}, nil
}

func (m *Memory) GetAllPlaylists(_ context.Context) ([]models.Playlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("GetAllPlaylists"); err != nil {
		return nil, err
	}
	return newestFirst(m.playlists, nil), nil
}

func (m *Memory) GetPlaylistByID(_ context.Context, id int64) (*models.Playlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("GetPlaylistByID"); err != nil {
		return nil, err
	}
	p, ok := m.playlists[id]
	if !ok {
		return nil, store.ErrPlaylistNotFound
	}
	return &p, nil
}

func (m *Memory) DeletePlaylist(_ context.Context, id int64) (store.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("DeletePlaylist"); err != nil {
		return store.Result{}, err
	}
	for songID, song := range m.songs {
		if song.PlaylistID == id {
			delete(m.songs, songID)
		}
	}
	if _, ok := m.playlists[id]; !ok {
		return store.Result{}, nil
	}
	delete(m.playlists, id)
	return store.Result{RowsAffected: 1}, nil
}

func (m *Memory) UpdatePlaylist(_ context.Context, id int64, name, description string) (store.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("UpdatePlaylist"); err != nil {
		return store.Result{}, err
	}
	p, ok := m.playlists[id]
	if !ok {
		return store.Result{}, nil
	}
	p.Name, p.Description = name, description
	m.playlists[id] = p
	return store.Result{RowsAffected: 1}, nil
}

func (m *Memory) AddSongToPlaylist(_ context.Context, playlistID int64, song models.SongInput) (store.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("AddSongToPlaylist"); err != nil {
		return store.Result{}, err
	}
	if _, ok := m.playlists[playlistID]; !ok {
		return store.Result{}, store.ErrPlaylistNotFound
	}
	id := m.id()
	m.songs[id] = models.PlaylistSong{
		ID: id, PlaylistID: playlistID,
		Title: song.Title, Artist: song.Artist, Album: song.Album, Duration: song.Duration,
		AlbumArt: song.AlbumArt, PreviewURL: song.PreviewURL, AddedAt: m.now(),
	}
	return store.Result{InsertID: id, RowsAffected: 1}, nil
}

func (m *Memory) GetPlaylistSongs(_ context.Context, playlistID int64) ([]models.PlaylistSong, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("GetPlaylistSongs"); err != nil {
		return nil, err
	}
	return newestFirst(m.songs, func(s models.PlaylistSong) bool { return s.PlaylistID == playlistID }), nil
}

func (m *Memory) RemoveSongFromPlaylist(_ context.Context, songID int64) (store.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("RemoveSongFromPlaylist"); err != nil {
		return store.Result{}, err
	}
	if _, ok := m.songs[songID]; !ok {
		return store.Result{}, nil
	}
	delete(m.songs, songID)
	return store.Result{RowsAffected: 1}, nil
}

func (m *Memory) GetSongCountInPlaylist(_ context.Context, playlistID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("GetSongCountInPlaylist"); err != nil {
		return 0, err
	}
	var n int64
	for _, s := range m.songs {
		if s.PlaylistID == playlistID {
			n++
		}
	}
	return n, nil
}

func (m *Memory) AddFavorite(_ context.Context, song models.SongInput) (store.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("AddFavorite"); err != nil {
		return store.Result{}, err
	}
	id := m.id()
	m.favorites[id] = models.Favorite{
		ID: id, Title: song.Title, Artist: song.Artist, Album: song.Album, Duration: song.Duration,
		AlbumArt: song.AlbumArt, PreviewURL: song.PreviewURL, AddedAt: m.now(),
	}
	return store.Result{InsertID: id, RowsAffected: 1}, nil
}

func (m *Memory) GetAllFavorites(_ context.Context) ([]models.Favorite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("GetAllFavorites"); err != nil {
		return nil, err
	}
	return newestFirst(m.favorites, nil), nil
}

func (m *Memory) RemoveFavorite(_ context.Context, title, artist string) (store.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("RemoveFavorite"); err != nil {
		return store.Result{}, err
	}
	var n int64
	for id, f := range m.favorites {
		if f.Title == title && f.Artist == artist {
			delete(m.favorites, id)
			n++
		}
	}
	return store.Result{RowsAffected: n}, nil
}

func (m *Memory) IsFavorite(_ context.Context, title, artist string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("IsFavorite"); err != nil {
		return false, err
	}
	for _, f := range m.favorites {
		if f.Title == title && f.Artist == artist {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) AddToHistory(_ context.Context, song models.SongInput) (store.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("AddToHistory"); err != nil {
		return store.Result{}, err
	}
	id := m.id()
	m.history[id] = models.HistoryEntry{
		ID: id, Title: song.Title, Artist: song.Artist, Album: song.Album, Duration: song.Duration,
		AlbumArt: song.AlbumArt, PreviewURL: song.PreviewURL, PlayedAt: m.now(),
	}
	return store.Result{InsertID: id, RowsAffected: 1}, nil
}

func (m *Memory) GetHistory(_ context.Context, limit int) ([]models.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("GetHistory"); err != nil {
		return nil, err
	}
	entries := newestFirst(m.history, nil)
	if limit < 0 {
		limit = 0
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (m *Memory) ClearHistory(_ context.Context) (store.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("ClearHistory"); err != nil {
		return store.Result{}, err
	}
	n := int64(len(m.history))
	m.history = make(map[int64]models.HistoryEntry)
	return store.Result{RowsAffected: n}, nil
}

func (m *Memory) RemoveHistoryItem(_ context.Context, id int64) (store.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("RemoveHistoryItem"); err != nil {
		return store.Result{}, err
	}
	if _, ok := m.history[id]; !ok {
		return store.Result{}, nil
	}
	delete(m.history, id)
	return store.Result{RowsAffected: 1}, nil
}

func (m *Memory) AddRating(_ context.Context, title, artist string, rating int) (store.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("AddRating"); err != nil {
		return store.Result{}, err
	}
	for id, r := range m.ratings {
		if r.Title == title && r.Artist == artist {
			r.Rating, r.RatedAt = rating, m.now()
			m.ratings[id] = r
			return store.Result{InsertID: id, RowsAffected: 2}, nil
		}
	}
	id := m.id()
	m.ratings[id] = models.Rating{ID: id, Title: title, Artist: artist, Rating: rating, RatedAt: m.now()}
	return store.Result{InsertID: id, RowsAffected: 1}, nil
}

func (m *Memory) GetRating(_ context.Context, title, artist string) (*int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("GetRating"); err != nil {
		return nil, err
	}
	for _, r := range m.ratings {
		if r.Title == title && r.Artist == artist {
			value := r.Rating
			return &value, nil
		}
	}
	return nil, nil
}

func (m *Memory) GetAllRatings(_ context.Context) ([]models.Rating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("GetAllRatings"); err != nil {
		return nil, err
	}
	ratings := newestFirst(m.ratings, nil)
	sort.SliceStable(ratings, func(i, j int) bool { return ratings[i].RatedAt.After(ratings[j].RatedAt) })
	return ratings, nil
}

func (m *Memory) AddLikedSong(_ context.Context, userID string, song models.SongInput) (store.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("AddLikedSong"); err != nil {
		return store.Result{}, err
	}
	for _, l := range m.likes {
		if l.UserID == userID && l.Title == song.Title && l.Artist == song.Artist {
			return store.Result{}, nil
		}
	}
	id := m.id()
	m.likes[id] = models.LikedSong{
		ID: id, UserID: userID, Title: song.Title, Artist: song.Artist, Album: song.Album, Duration: song.Duration,
		AlbumArt: song.AlbumArt, PreviewURL: song.PreviewURL, LikedAt: m.now(),
	}
	return store.Result{InsertID: id, RowsAffected: 1}, nil
}

func (m *Memory) RemoveLikedSong(_ context.Context, userID, title, artist string) (store.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("RemoveLikedSong"); err != nil {
		return store.Result{}, err
	}
	for id, l := range m.likes {
		if l.UserID == userID && l.Title == title && l.Artist == artist {
			delete(m.likes, id)
			return store.Result{RowsAffected: 1}, nil
		}
	}
	return store.Result{}, nil
}

func (m *Memory) IsLikedSong(_ context.Context, userID, title, artist string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("IsLikedSong"); err != nil {
		return false, err
	}
	for _, l := range m.likes {
		if l.UserID == userID && l.Title == title && l.Artist == artist {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) GetLikedSongs(_ context.Context, userID string) ([]models.LikedSong, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("GetLikedSongs"); err != nil {
		return nil, err
	}
	return newestFirst(m.likes, func(l models.LikedSong) bool { return l.UserID == userID }), nil
}
