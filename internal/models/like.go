package models

import "time"

// DefaultUserID is used when a caller does not identify itself.
const DefaultUserID = "guest"

// LikedSong is a per-user like keyed by (user_id, song_title, song_artist).
type LikedSong struct {
	ID         int64     `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	Title      string    `json:"song_title" db:"song_title"`
	Artist     string    `json:"song_artist" db:"song_artist"`
	Album      string    `json:"song_album" db:"song_album"`
	Duration   string    `json:"song_duration" db:"song_duration"`
	AlbumArt   string    `json:"album_art" db:"album_art"`
	PreviewURL string    `json:"preview_url" db:"preview_url"`
	LikedAt    time.Time `json:"liked_at" db:"liked_at"`
}
