package models

import "time"

// HistoryEntry records one play of a song.
type HistoryEntry struct {
	ID         int64     `json:"id" db:"id"`
	Title      string    `json:"song_title" db:"song_title"`
	Artist     string    `json:"song_artist" db:"song_artist"`
	Album      string    `json:"song_album" db:"song_album"`
	Duration   string    `json:"song_duration" db:"song_duration"`
	AlbumArt   string    `json:"album_art" db:"album_art"`
	PreviewURL string    `json:"preview_url" db:"preview_url"`
	PlayedAt   time.Time `json:"played_at" db:"played_at"`
}
