package models

import "strings"

// SongInput carries the song fields accepted by every write endpoint.
type SongInput struct {
	Title      string `json:"song_title"`
	Artist     string `json:"song_artist"`
	Album      string `json:"song_album"`
	Duration   string `json:"song_duration"`
	AlbumArt   string `json:"album_art"`
	PreviewURL string `json:"preview_url"`
}

// Normalize trims surrounding whitespace from every field.
func (s SongInput) Normalize() SongInput {
	return SongInput{
		Title:      strings.TrimSpace(s.Title),
		Artist:     strings.TrimSpace(s.Artist),
		Album:      strings.TrimSpace(s.Album),
		Duration:   strings.TrimSpace(s.Duration),
		AlbumArt:   strings.TrimSpace(s.AlbumArt),
		PreviewURL: strings.TrimSpace(s.PreviewURL),
	}
}

// Validate reports a ValidationError when title or artist is blank.
func (s SongInput) Validate() error {
	return RequireSong(s.Title, s.Artist)
}

// RequireSong checks the identifying (title, artist) pair.
func RequireSong(title, artist string) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(artist) == "" {
		return &ValidationError{Message: "Song title and artist are required"}
	}
	return nil
}

// ValidationError describes bad client input. Message is safe to return to callers.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Invalid builds a ValidationError.
func Invalid(msg string) error {
	return &ValidationError{Message: msg}
}
