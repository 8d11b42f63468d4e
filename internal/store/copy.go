package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// CopyStats counts the rows written to the destination per table.
type CopyStats struct {
	Playlists     int `json:"playlists"`
	PlaylistSongs int `json:"playlist_songs"`
	Favorites     int `json:"favorites"`
	ListenHistory int `json:"listen_history"`
	Ratings       int `json:"ratings"`
	LikedSongs    int `json:"liked_songs"`
}

// Copy writes every row of src into dst inside one destination transaction.
// Playlists receive new ids on the destination and their songs follow them.
// Timestamps are preserved, ratings are upserted and duplicate likes are skipped,
// so ratings and likes can be copied repeatedly.
func Copy(ctx context.Context, src, dst *DB) (stats CopyStats, err error) {
	tx, err := dst.db.BeginTx(ctx, nil)
	if err != nil {
		return CopyStats{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = copyPlaylists(ctx, src, tx, &stats); err != nil {
		return CopyStats{}, err
	}

	favorites, err := src.GetAllFavorites(ctx)
	if err != nil {
		return CopyStats{}, err
	}
	for _, f := range favorites {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO favorites (song_title, song_artist, song_album, song_duration, album_art, preview_url, added_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			f.Title, f.Artist, f.Album, f.Duration, f.AlbumArt, f.PreviewURL, timestamp(f.AddedAt)); err != nil {
			return CopyStats{}, fmt.Errorf("copy favorite %d: %w", f.ID, err)
		}
		stats.Favorites++
	}

	history, err := src.listHistory(ctx, `
		SELECT id, song_title, song_artist, COALESCE(song_album, ''), COALESCE(song_duration, ''),
			COALESCE(album_art, ''), COALESCE(preview_url, ''), played_at
		FROM listen_history
		ORDER BY id`)
	if err != nil {
		return CopyStats{}, err
	}
	for _, h := range history {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO listen_history (song_title, song_artist, song_album, song_duration, album_art, preview_url, played_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			h.Title, h.Artist, h.Album, h.Duration, h.AlbumArt, h.PreviewURL, timestamp(h.PlayedAt)); err != nil {
			return CopyStats{}, fmt.Errorf("copy history %d: %w", h.ID, err)
		}
		stats.ListenHistory++
	}

	ratings, err := src.GetAllRatings(ctx)
	if err != nil {
		return CopyStats{}, err
	}
	for _, r := range ratings {
		if _, err = tx.ExecContext(ctx, dst.dialect.upsertRatingAt(),
			r.Title, r.Artist, r.Rating, timestamp(r.RatedAt)); err != nil {
			return CopyStats{}, fmt.Errorf("copy rating %d: %w", r.ID, err)
		}
		stats.Ratings++
	}

	likes, err := src.listLikedSongs(ctx, `
		SELECT id, user_id, song_title, song_artist, COALESCE(song_album, ''), COALESCE(song_duration, ''),
			COALESCE(album_art, ''), COALESCE(preview_url, ''), liked_at
		FROM liked_songs
		ORDER BY id`)
	if err != nil {
		return CopyStats{}, err
	}
	for _, l := range likes {
		if _, err = tx.ExecContext(ctx, dst.dialect.insertLikedSongAt(),
			l.UserID, l.Title, l.Artist, l.Album, l.Duration, l.AlbumArt, l.PreviewURL, timestamp(l.LikedAt)); err != nil {
			return CopyStats{}, fmt.Errorf("copy liked song %d: %w", l.ID, err)
		}
		stats.LikedSongs++
	}

	if err = tx.Commit(); err != nil {
		return CopyStats{}, fmt.Errorf("commit copy: %w", err)
	}
	return stats, nil
}

func copyPlaylists(ctx context.Context, src *DB, tx *sql.Tx, stats *CopyStats) error {
	playlists, err := src.GetAllPlaylists(ctx)
	if err != nil {
		return err
	}
	// Oldest first so destination ids keep the source order.
	for i := len(playlists) - 1; i >= 0; i-- {
		p := playlists[i]
		res, err := tx.ExecContext(ctx, `
			INSERT INTO playlists (name, description, created_at)
			VALUES (?, ?, ?)`, p.Name, p.Description, timestamp(p.CreatedAt))
		if err != nil {
			return fmt.Errorf("copy playlist %d: %w", p.ID, err)
		}
		newID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("copy playlist %d: insert id: %w", p.ID, err)
		}

		songs, err := src.GetPlaylistSongs(ctx, p.ID)
		if err != nil {
			return err
		}
		for j := len(songs) - 1; j >= 0; j-- {
			s := songs[j]
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO playlist_songs (playlist_id, song_title, song_artist, song_album, song_duration, album_art, preview_url, added_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				newID, s.Title, s.Artist, s.Album, s.Duration, s.AlbumArt, s.PreviewURL, timestamp(s.AddedAt)); err != nil {
				return fmt.Errorf("copy playlist song %d: %w", s.ID, err)
			}
			stats.PlaylistSongs++
		}
		stats.Playlists++
	}
	return nil
}

// timestamp renders times in the DATETIME layout both engines accept and compare
// consistently with CURRENT_TIMESTAMP.
func timestamp(t time.Time) string {
	return t.UTC().Format(time.DateTime)
}
