package models

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Rating is the single score held for a (title, artist) pair.
type Rating struct {
	ID      int64     `json:"id" db:"id"`
	Title   string    `json:"song_title" db:"song_title"`
	Artist  string    `json:"song_artist" db:"song_artist"`
	Rating  int       `json:"rating" db:"rating"`
	RatedAt time.Time `json:"rated_at" db:"rated_at"`
}
