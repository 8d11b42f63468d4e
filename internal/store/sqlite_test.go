package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"musiclib/internal/models"
)

func openTestSQLite(t *testing.T) *DB {
	t.Helper()
	db, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "music.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLiteDeletePlaylistCascades(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)

	res, err := s.CreatePlaylist(ctx, "Road Trip", "")
	if err != nil {
		t.Fatalf("CreatePlaylist: %v", err)
	}
	for _, title := range []string{"A", "B", "C"} {
		if _, err := s.AddSongToPlaylist(ctx, res.InsertID, models.SongInput{Title: title, Artist: "X"}); err != nil {
			t.Fatalf("AddSongToPlaylist: %v", err)
		}
	}
	count, err := s.GetSongCountInPlaylist(ctx, res.InsertID)
	if err != nil || count != 3 {
		t.Fatalf("expected 3 songs, got %d (%v)", count, err)
	}

	if _, err := s.DeletePlaylist(ctx, res.InsertID); err != nil {
		t.Fatalf("DeletePlaylist: %v", err)
	}

	songs, err := s.GetPlaylistSongs(ctx, res.InsertID)
	if err != nil {
		t.Fatalf("GetPlaylistSongs: %v", err)
	}
	if len(songs) != 0 {
		t.Fatalf("expected no songs after delete, got %d", len(songs))
	}
	if _, err := s.GetPlaylistByID(ctx, res.InsertID); !errors.Is(err, ErrPlaylistNotFound) {
		t.Fatalf("expected ErrPlaylistNotFound, got %v", err)
	}
}

func TestSQLiteDeleteMissingIsNotAnError(t *testing.T) {
	s := openTestSQLite(t)

	res, err := s.DeletePlaylist(context.Background(), 404)
	if err != nil {
		t.Fatalf("DeletePlaylist: %v", err)
	}
	if res.RowsAffected != 0 {
		t.Fatalf("expected 0 rows affected, got %d", res.RowsAffected)
	}
}

func TestSQLiteAddSongToMissingPlaylist(t *testing.T) {
	s := openTestSQLite(t)

	_, err := s.AddSongToPlaylist(context.Background(), 99, models.SongInput{Title: "A", Artist: "B"})
	if !errors.Is(err, ErrPlaylistNotFound) {
		t.Fatalf("expected ErrPlaylistNotFound, got %v", err)
	}
}

func TestSQLiteRatingUpsert(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)

	for _, r := range []int{3, 3, 5} {
		if _, err := s.AddRating(ctx, "Song", "Artist", r); err != nil {
			t.Fatalf("AddRating(%d): %v", r, err)
		}
	}

	ratings, err := s.GetAllRatings(ctx)
	if err != nil {
		t.Fatalf("GetAllRatings: %v", err)
	}
	if len(ratings) != 1 || ratings[0].Rating != 5 {
		t.Fatalf("expected one rating of 5, got %+v", ratings)
	}
	got, err := s.GetRating(ctx, "Song", "Artist")
	if err != nil || got == nil || *got != 5 {
		t.Fatalf("expected rating 5, got %v (%v)", got, err)
	}
}

func TestSQLiteLikeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)
	song := models.SongInput{Title: "S", Artist: "A"}

	first, err := s.AddLikedSong(ctx, "guest", song)
	if err != nil {
		t.Fatalf("AddLikedSong: %v", err)
	}
	second, err := s.AddLikedSong(ctx, "guest", song)
	if err != nil {
		t.Fatalf("AddLikedSong again: %v", err)
	}
	if first.RowsAffected != 1 || second.RowsAffected != 0 {
		t.Fatalf("expected 1 then 0 rows affected, got %d then %d", first.RowsAffected, second.RowsAffected)
	}

	if _, err := s.AddLikedSong(ctx, "other", song); err != nil {
		t.Fatalf("AddLikedSong other user: %v", err)
	}
	likes, err := s.GetLikedSongs(ctx, "guest")
	if err != nil {
		t.Fatalf("GetLikedSongs: %v", err)
	}
	if len(likes) != 1 || likes[0].UserID != "guest" {
		t.Fatalf("expected one guest like, got %+v", likes)
	}

	if _, err := s.RemoveLikedSong(ctx, "guest", "S", "A"); err != nil {
		t.Fatalf("RemoveLikedSong: %v", err)
	}
	liked, err := s.IsLikedSong(ctx, "guest", "S", "A")
	if err != nil || liked {
		t.Fatalf("expected not liked, got %v (%v)", liked, err)
	}
}

func TestSQLiteHistoryLimitAndOrder(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)

	for _, title := range []string{"one", "two", "three", "four", "five"} {
		if _, err := s.AddToHistory(ctx, models.SongInput{Title: title, Artist: "X"}); err != nil {
			t.Fatalf("AddToHistory: %v", err)
		}
	}

	history, err := s.GetHistory(ctx, 3)
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(history))
	}
	if history[0].Title != "five" || history[2].Title != "three" {
		t.Fatalf("expected most recent first, got %q..%q", history[0].Title, history[2].Title)
	}

	if _, err := s.RemoveHistoryItem(ctx, history[0].ID); err != nil {
		t.Fatalf("RemoveHistoryItem: %v", err)
	}
	if _, err := s.ClearHistory(ctx); err != nil {
		t.Fatalf("ClearHistory: %v", err)
	}
	history, err = s.GetHistory(ctx, 50)
	if err != nil || len(history) != 0 {
		t.Fatalf("expected empty history, got %d (%v)", len(history), err)
	}
}

func TestSQLiteFavoritesAllowDuplicates(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)
	song := models.SongInput{Title: "S", Artist: "A"}

	for i := 0; i < 2; i++ {
		if _, err := s.AddFavorite(ctx, song); err != nil {
			t.Fatalf("AddFavorite: %v", err)
		}
	}
	favorites, err := s.GetAllFavorites(ctx)
	if err != nil || len(favorites) != 2 {
		t.Fatalf("expected 2 favorites, got %d (%v)", len(favorites), err)
	}

	res, err := s.RemoveFavorite(ctx, "S", "A")
	if err != nil {
		t.Fatalf("RemoveFavorite: %v", err)
	}
	if res.RowsAffected != 2 {
		t.Fatalf("expected both rows removed, got %d", res.RowsAffected)
	}
	ok, err := s.IsFavorite(ctx, "S", "A")
	if err != nil || ok {
		t.Fatalf("expected not favorite, got %v (%v)", ok, err)
	}
}

func TestSQLiteMigrateKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "music.db")

	first, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if _, err := first.CreatePlaylist(ctx, "Keep", ""); err != nil {
		t.Fatalf("CreatePlaylist: %v", err)
	}
	first.Close()

	second, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	playlists, err := second.GetAllPlaylists(ctx)
	if err != nil || len(playlists) != 1 || playlists[0].Name != "Keep" {
		t.Fatalf("expected preserved playlist, got %+v (%v)", playlists, err)
	}
}

func TestOpenWithoutMySQLUsesSQLite(t *testing.T) {
	db, err := Open(context.Background(), Options{SQLitePath: filepath.Join(t.TempDir(), "music.db")})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()
	if db.Engine() != EngineSQLite {
		t.Fatalf("expected sqlite engine, got %s", db.Engine())
	}
}

func TestOpenFallsBackToSQLite(t *testing.T) {
	opts := Options{
		SQLitePath: filepath.Join(t.TempDir(), "music.db"),
		// Nothing listens on port 1.
		MySQL: &MySQLOptions{Host: "127.0.0.1", Port: 1, User: "root", Database: "musiclibrary"},
	}

	db, err := Open(context.Background(), opts)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()
	if db.Engine() != EngineSQLite {
		t.Fatalf("expected fallback to sqlite, got %s", db.Engine())
	}
}

func TestCopyBetweenStores(t *testing.T) {
	ctx := context.Background()
	src := openTestSQLite(t)
	dst := openTestSQLite(t)

	// Occupy id 1 on the destination so copied playlists are re-keyed.
	if _, err := dst.CreatePlaylist(ctx, "Existing", ""); err != nil {
		t.Fatalf("CreatePlaylist dst: %v", err)
	}

	p, err := src.CreatePlaylist(ctx, "Road Trip", "summer")
	if err != nil {
		t.Fatalf("CreatePlaylist: %v", err)
	}
	song := models.SongInput{Title: "A", Artist: "B"}
	if _, err := src.AddSongToPlaylist(ctx, p.InsertID, song); err != nil {
		t.Fatalf("AddSongToPlaylist: %v", err)
	}
	if _, err := src.AddFavorite(ctx, song); err != nil {
		t.Fatalf("AddFavorite: %v", err)
	}
	if _, err := src.AddToHistory(ctx, song); err != nil {
		t.Fatalf("AddToHistory: %v", err)
	}
	if _, err := src.AddRating(ctx, "A", "B", 4); err != nil {
		t.Fatalf("AddRating: %v", err)
	}
	if _, err := src.AddLikedSong(ctx, "guest", song); err != nil {
		t.Fatalf("AddLikedSong: %v", err)
	}

	stats, err := Copy(ctx, src, dst)
	if err != nil {
		t.Fatalf("Copy: %v", err)
	}
	want := CopyStats{Playlists: 1, PlaylistSongs: 1, Favorites: 1, ListenHistory: 1, Ratings: 1, LikedSongs: 1}
	if stats != want {
		t.Fatalf("expected %+v, got %+v", want, stats)
	}

	playlists, err := dst.GetAllPlaylists(ctx)
	if err != nil || len(playlists) != 2 {
		t.Fatalf("expected 2 playlists on destination, got %d (%v)", len(playlists), err)
	}
	var copied *models.Playlist
	for i := range playlists {
		if playlists[i].Name == "Road Trip" {
			copied = &playlists[i]
		}
	}
	if copied == nil || copied.ID == p.InsertID {
		t.Fatalf("expected re-keyed copy, got %+v", copied)
	}
	songs, err := dst.GetPlaylistSongs(ctx, copied.ID)
	if err != nil || len(songs) != 1 {
		t.Fatalf("expected copied song, got %d (%v)", len(songs), err)
	}

	// Ratings and likes tolerate a second run.
	if _, err := Copy(ctx, src, dst); err != nil {
		t.Fatalf("second Copy: %v", err)
	}
	likes, err := dst.GetLikedSongs(ctx, "guest")
	if err != nil || len(likes) != 1 {
		t.Fatalf("expected one like after two copies, got %d (%v)", len(likes), err)
	}
	ratings, err := dst.GetAllRatings(ctx)
	if err != nil || len(ratings) != 1 {
		t.Fatalf("expected one rating after two copies, got %d (%v)", len(ratings), err)
	}
}
