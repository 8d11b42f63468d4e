package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"musiclib/internal/models"
)

// CreatePlaylist inserts a playlist and reports its generated id.
func (s *DB) CreatePlaylist(ctx context.Context, name, description string) (Result, error) {
	return s.exec(ctx, "insert playlist", `
		INSERT INTO playlists (name, description)
		VALUES (?, ?)`, name, description)
}

// GetAllPlaylists returns every playlist, newest first.
func (s *DB) GetAllPlaylists(ctx context.Context) ([]models.Playlist, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(description, ''), created_at
		FROM playlists
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	defer rows.Close()

	playlists := make([]models.Playlist, 0)
	for rows.Next() {
		var p models.Playlist
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		playlists = append(playlists, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlists: %w", err)
	}
	return playlists, nil
}

// GetPlaylistByID returns ErrPlaylistNotFound when no row matches.
func (s *DB) GetPlaylistByID(ctx context.Context, id int64) (*models.Playlist, error) {
	var p models.Playlist
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(description, ''), created_at
		FROM playlists
		WHERE id = ?`, id).Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlaylistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get playlist: %w", err)
	}
	return &p, nil
}

// DeletePlaylist removes a playlist together with its songs. The child delete is
// issued explicitly so the cascade holds even where foreign keys are not enforced.
func (s *DB) DeletePlaylist(ctx context.Context, id int64) (result Result, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Result{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM playlist_songs WHERE playlist_id = ?`, id); err != nil {
		return Result{}, fmt.Errorf("delete playlist songs: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM playlists WHERE id = ?`, id)
	if err != nil {
		return Result{}, fmt.Errorf("delete playlist: %w", err)
	}
	if result, err = newResult(res); err != nil {
		return Result{}, err
	}

	if err = tx.Commit(); err != nil {
		return Result{}, fmt.Errorf("commit playlist delete: %w", err)
	}
	return result, nil
}

// UpdatePlaylist renames a playlist and replaces its description.
func (s *DB) UpdatePlaylist(ctx context.Context, id int64, name, description string) (Result, error) {
	return s.exec(ctx, "update playlist", `
		UPDATE playlists
		SET name = ?, description = ?
		WHERE id = ?`, name, description, id)
}

// AddSongToPlaylist appends a song row. A missing parent playlist is reported as
// ErrPlaylistNotFound when the engine enforces the foreign key.
func (s *DB) AddSongToPlaylist(ctx context.Context, playlistID int64, song models.SongInput) (Result, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO playlist_songs (playlist_id, song_title, song_artist, song_album, song_duration, album_art, preview_url)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		playlistID, song.Title, song.Artist, song.Album, song.Duration, song.AlbumArt, song.PreviewURL)
	if err != nil {
		if s.dialect.isForeignKeyViolation(err) {
			return Result{}, ErrPlaylistNotFound
		}
		return Result{}, fmt.Errorf("insert playlist song: %w", err)
	}
	return newResult(res)
}

// GetPlaylistSongs lists a playlist's songs, most recently added first.
func (s *DB) GetPlaylistSongs(ctx context.Context, playlistID int64) ([]models.PlaylistSong, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, playlist_id, song_title, song_artist, COALESCE(song_album, ''), COALESCE(song_duration, ''),
			COALESCE(album_art, ''), COALESCE(preview_url, ''), added_at
		FROM playlist_songs
		WHERE playlist_id = ?
		ORDER BY added_at DESC, id DESC`, playlistID)
	if err != nil {
		return nil, fmt.Errorf("list playlist songs: %w", err)
	}
	defer rows.Close()

	songs := make([]models.PlaylistSong, 0)
	for rows.Next() {
		var song models.PlaylistSong
		if err := rows.Scan(&song.ID, &song.PlaylistID, &song.Title, &song.Artist, &song.Album, &song.Duration,
			&song.AlbumArt, &song.PreviewURL, &song.AddedAt); err != nil {
			return nil, fmt.Errorf("scan playlist song: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlist songs: %w", err)
	}
	return songs, nil
}

// RemoveSongFromPlaylist deletes one playlist song row by its own id.
func (s *DB) RemoveSongFromPlaylist(ctx context.Context, songID int64) (Result, error) {
	return s.exec(ctx, "delete playlist song", `DELETE FROM playlist_songs WHERE id = ?`, songID)
}

// GetSongCountInPlaylist counts the songs attached to a playlist.
func (s *DB) GetSongCountInPlaylist(ctx context.Context, playlistID int64) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM playlist_songs
		WHERE playlist_id = ?`, playlistID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count playlist songs: %w", err)
	}
	return count, nil
}
