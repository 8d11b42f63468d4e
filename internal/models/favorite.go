package models

import "time"

// Favorite is a globally flagged song. The (title, artist) pair is not unique.
type Favorite struct {
	ID         int64     `json:"id" db:"id"`
	Title      string    `json:"song_title" db:"song_title"`
	Artist     string    `json:"song_artist" db:"song_artist"`
	Album      string    `json:"song_album" db:"song_album"`
	Duration   string    `json:"song_duration" db:"song_duration"`
	AlbumArt   string    `json:"album_art" db:"album_art"`
	PreviewURL string    `json:"preview_url" db:"preview_url"`
	AddedAt    time.Time `json:"added_at" db:"added_at"`
}
