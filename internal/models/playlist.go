package models

import "time"

// Playlist is a named container that owns its PlaylistSong rows.
type Playlist struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// PlaylistSummary is a playlist as returned by the list endpoint.
type PlaylistSummary struct {
	Playlist
	SongCount int64 `json:"song_count"`
}

// PlaylistSong is a denormalized copy of a song's metadata attached to one playlist.
type PlaylistSong struct {
	ID         int64     `json:"id" db:"id"`
	PlaylistID int64     `json:"playlist_id" db:"playlist_id"`
	Title      string    `json:"song_title" db:"song_title"`
	Artist     string    `json:"song_artist" db:"song_artist"`
	Album      string    `json:"song_album" db:"song_album"`
	Duration   string    `json:"song_duration" db:"song_duration"`
	AlbumArt   string    `json:"album_art" db:"album_art"`
	PreviewURL string    `json:"preview_url" db:"preview_url"`
	AddedAt    time.Time `json:"added_at" db:"added_at"`
}
