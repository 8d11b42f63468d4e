package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"musiclib/internal/models"
)

var (
	// ErrPlaylistNotFound signals a playlist id with no row behind it.
	ErrPlaylistNotFound = errors.New("playlist not found")
	// ErrNotInitialized is returned by every operation once initialization has failed.
	ErrNotInitialized = errors.New("database not initialized")
)

// Result reports the outcome of a write the same way for every engine.
type Result struct {
	InsertID     int64 `json:"insert_id"`
	RowsAffected int64 `json:"rows_affected"`
}

// Store is the persistence surface used by the application services.
type Store interface {
	CreatePlaylist(ctx context.Context, name, description string) (Result, error)
	GetAllPlaylists(ctx context.Context) ([]models.Playlist, error)
	GetPlaylistByID(ctx context.Context, id int64) (*models.Playlist, error)
	DeletePlaylist(ctx context.Context, id int64) (Result, error)
	UpdatePlaylist(ctx context.Context, id int64, name, description string) (Result, error)
	AddSongToPlaylist(ctx context.Context, playlistID int64, song models.SongInput) (Result, error)
	GetPlaylistSongs(ctx context.Context, playlistID int64) ([]models.PlaylistSong, error)
	RemoveSongFromPlaylist(ctx context.Context, songID int64) (Result, error)
	GetSongCountInPlaylist(ctx context.Context, playlistID int64) (int64, error)

	AddFavorite(ctx context.Context, song models.SongInput) (Result, error)
	GetAllFavorites(ctx context.Context) ([]models.Favorite, error)
	RemoveFavorite(ctx context.Context, title, artist string) (Result, error)
	IsFavorite(ctx context.Context, title, artist string) (bool, error)

	AddToHistory(ctx context.Context, song models.SongInput) (Result, error)
	GetHistory(ctx context.Context, limit int) ([]models.HistoryEntry, error)
	ClearHistory(ctx context.Context) (Result, error)
	RemoveHistoryItem(ctx context.Context, id int64) (Result, error)

	AddRating(ctx context.Context, title, artist string, rating int) (Result, error)
	GetRating(ctx context.Context, title, artist string) (*int, error)
	GetAllRatings(ctx context.Context) ([]models.Rating, error)

	AddLikedSong(ctx context.Context, userID string, song models.SongInput) (Result, error)
	RemoveLikedSong(ctx context.Context, userID, title, artist string) (Result, error)
	IsLikedSong(ctx context.Context, userID, title, artist string) (bool, error)
	GetLikedSongs(ctx context.Context, userID string) ([]models.LikedSong, error)
}

// Engine names a concrete storage engine.
type Engine string

const (
	// EngineSQLite is the embedded, file-based engine.
	EngineSQLite Engine = "sqlite"
	// EngineMySQL is the networked engine reached through a connection pool.
	EngineMySQL Engine = "mysql"
)

// DB implements Store over database/sql. Engine differences live in its dialect.
type DB struct {
	db      *sql.DB
	dialect dialect
}

var _ Store = (*DB)(nil)

// NewSQLite wraps a handle opened with the sqlite3 driver.
func NewSQLite(db *sql.DB) *DB {
	return &DB{db: db, dialect: sqliteDialect{}}
}

// NewMySQL wraps a handle opened with the mysql driver.
func NewMySQL(db *sql.DB) *DB {
	return &DB{db: db, dialect: mysqlDialect{}}
}

// Engine reports which engine backs the store.
func (s *DB) Engine() Engine {
	return s.dialect.engine()
}

// Close releases the underlying handle.
func (s *DB) Close() error {
	return s.db.Close()
}

// Migrate creates every table that does not exist yet. Existing data is never touched.
func (s *DB) Migrate(ctx context.Context) error {
	for _, stmt := range s.dialect.schema() {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema (%s): %w", s.dialect.engine(), err)
		}
	}
	return nil
}

func newResult(res sql.Result) (Result, error) {
	var out Result
	affected, err := res.RowsAffected()
	if err != nil {
		return Result{}, fmt.Errorf("rows affected: %w", err)
	}
	out.RowsAffected = affected
	// Deletes and updates have no meaningful insert id; drivers may return an error or 0.
	if id, err := res.LastInsertId(); err == nil {
		out.InsertID = id
	}
	return out, nil
}

func (s *DB) exec(ctx context.Context, what, query string, args ...any) (Result, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", what, err)
	}
	return newResult(res)
}

func (s *DB) exists(ctx context.Context, what, query string, args ...any) (bool, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", what, err)
	}
	return exists, nil
}
