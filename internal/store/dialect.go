package store

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
)

// dialect captures the statements and error codes that differ between engines.
// Everything else is shared SQL using ? placeholders.
type dialect interface {
	engine() Engine
	schema() []string
	// upsertRating takes (song_title, song_artist, rating).
	upsertRating() string
	// upsertRatingAt takes (song_title, song_artist, rating, rated_at).
	upsertRatingAt() string
	// insertLikedSong takes (user_id, title, artist, album, duration, album_art, preview_url).
	insertLikedSong() string
	// insertLikedSongAt takes the insertLikedSong arguments followed by liked_at.
	insertLikedSongAt() string
	isForeignKeyViolation(err error) bool
}

type sqliteDialect struct{}

func (sqliteDialect) engine() Engine { return EngineSQLite }

func (sqliteDialect) schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS playlists (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS playlist_songs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			playlist_id INTEGER NOT NULL,
			song_title TEXT NOT NULL,
			song_artist TEXT NOT NULL,
			song_album TEXT,
			song_duration TEXT,
			album_art TEXT,
			preview_url TEXT,
			added_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (playlist_id) REFERENCES playlists(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS favorites (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			song_title TEXT NOT NULL,
			song_artist TEXT NOT NULL,
			song_album TEXT,
			song_duration TEXT,
			album_art TEXT,
			preview_url TEXT,
			added_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS listen_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			song_title TEXT NOT NULL,
			song_artist TEXT NOT NULL,
			song_album TEXT,
			song_duration TEXT,
			album_art TEXT,
			preview_url TEXT,
			played_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS ratings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			song_title TEXT NOT NULL,
			song_artist TEXT NOT NULL,
			rating INTEGER CHECK(rating >= 1 AND rating <= 5),
			rated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(song_title, song_artist)
		)`,
		`CREATE TABLE IF NOT EXISTS liked_songs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			song_title TEXT NOT NULL,
			song_artist TEXT NOT NULL,
			song_album TEXT,
			song_duration TEXT,
			album_art TEXT,
			preview_url TEXT,
			liked_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(user_id, song_title, song_artist)
		)`,
	}
}

func (sqliteDialect) upsertRating() string {
	return `INSERT INTO ratings (song_title, song_artist, rating) VALUES (?, ?, ?)
		ON CONFLICT(song_title, song_artist) DO UPDATE SET rating = excluded.rating, rated_at = CURRENT_TIMESTAMP`
}

func (sqliteDialect) upsertRatingAt() string {
	return `INSERT INTO ratings (song_title, song_artist, rating, rated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(song_title, song_artist) DO UPDATE SET rating = excluded.rating, rated_at = excluded.rated_at`
}

func (sqliteDialect) insertLikedSong() string {
	return `INSERT OR IGNORE INTO liked_songs (user_id, song_title, song_artist, song_album, song_duration, album_art, preview_url)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
}

func (sqliteDialect) insertLikedSongAt() string {
	return `INSERT OR IGNORE INTO liked_songs (user_id, song_title, song_artist, song_album, song_duration, album_art, preview_url, liked_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
}

func (sqliteDialect) isForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}

type mysqlDialect struct{}

func (mysqlDialect) engine() Engine { return EngineMySQL }

func (mysqlDialect) schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS playlists (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS playlist_songs (
			id INT AUTO_INCREMENT PRIMARY KEY,
			playlist_id INT NOT NULL,
			song_title VARCHAR(512) NOT NULL,
			song_artist VARCHAR(255) NOT NULL,
			song_album VARCHAR(255),
			song_duration VARCHAR(50),
			album_art VARCHAR(1024),
			preview_url VARCHAR(1024),
			added_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (playlist_id) REFERENCES playlists(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS favorites (
			id INT AUTO_INCREMENT PRIMARY KEY,
			song_title VARCHAR(512) NOT NULL,
			song_artist VARCHAR(255) NOT NULL,
			song_album VARCHAR(255),
			song_duration VARCHAR(50),
			album_art VARCHAR(1024),
			preview_url VARCHAR(1024),
			added_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS listen_history (
			id INT AUTO_INCREMENT PRIMARY KEY,
			song_title VARCHAR(512) NOT NULL,
			song_artist VARCHAR(255) NOT NULL,
			song_album VARCHAR(255),
			song_duration VARCHAR(50),
			album_art VARCHAR(1024),
			preview_url VARCHAR(1024),
			played_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS ratings (
			id INT AUTO_INCREMENT PRIMARY KEY,
			song_title VARCHAR(512) NOT NULL,
			song_artist VARCHAR(255) NOT NULL,
			rating INT,
			rated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY unique_song (song_title, song_artist)
		)`,
		`CREATE TABLE IF NOT EXISTS liked_songs (
			id INT AUTO_INCREMENT PRIMARY KEY,
			user_id VARCHAR(64) NOT NULL,
			song_title VARCHAR(255) NOT NULL,
			song_artist VARCHAR(255) NOT NULL,
			song_album VARCHAR(255),
			song_duration VARCHAR(50),
			album_art VARCHAR(512),
			preview_url VARCHAR(512),
			liked_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uniq_user_song (user_id(64), song_title(255), song_artist(255))
		)`,
	}
}

func (mysqlDialect) upsertRating() string {
	return `INSERT INTO ratings (song_title, song_artist, rating) VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE rating = VALUES(rating), rated_at = CURRENT_TIMESTAMP`
}

func (mysqlDialect) upsertRatingAt() string {
	return `INSERT INTO ratings (song_title, song_artist, rating, rated_at) VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE rating = VALUES(rating), rated_at = VALUES(rated_at)`
}

func (mysqlDialect) insertLikedSong() string {
	return `INSERT IGNORE INTO liked_songs (user_id, song_title, song_artist, song_album, song_duration, album_art, preview_url)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
}

func (mysqlDialect) insertLikedSongAt() string {
	return `INSERT IGNORE INTO liked_songs (user_id, song_title, song_artist, song_album, song_duration, album_art, preview_url, liked_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
}

// 1452: cannot add or update a child row, a foreign key constraint fails.
func (mysqlDialect) isForeignKeyViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1452
	}
	return false
}
