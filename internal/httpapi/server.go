package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"musiclib/internal/app/likes"
	"musiclib/internal/app/playlists"
	"musiclib/internal/http/middleware"
	"musiclib/internal/logging"
	"musiclib/internal/models"
	"musiclib/internal/store"
)

// PlaylistService coordinates playlist-related operations.
type PlaylistService interface {
	List(ctx context.Context) ([]models.PlaylistSummary, error)
	Get(ctx context.Context, id int64) (*playlists.Detail, error)
	Create(ctx context.Context, name, description string) (int64, error)
	Update(ctx context.Context, id int64, name, description string) error
	Delete(ctx context.Context, id int64) error
	AddSong(ctx context.Context, playlistID int64, song models.SongInput) (int64, error)
	RemoveSong(ctx context.Context, songID int64) error
}

// FavoritesService manages the global favorites list.
type FavoritesService interface {
	List(ctx context.Context) ([]models.Favorite, error)
	Add(ctx context.Context, song models.SongInput) error
	Remove(ctx context.Context, title, artist string) error
	Check(ctx context.Context, title, artist string) (bool, error)
}

// HistoryService manages the listen history.
type HistoryService interface {
	Recent(ctx context.Context, limit int) ([]models.HistoryEntry, error)
	Record(ctx context.Context, song models.SongInput) error
	Remove(ctx context.Context, id int64) error
	Clear(ctx context.Context) error
}

// RatingsService describes rating workflows.
type RatingsService interface {
	Rate(ctx context.Context, title, artist string, rating *int) error
	Get(ctx context.Context, title, artist string) (*int, error)
	List(ctx context.Context) ([]models.Rating, error)
}

// LikesService manages per-user likes.
type LikesService interface {
	Toggle(ctx context.Context, req likes.ToggleRequest) (bool, error)
	List(ctx context.Context, userID string) ([]models.LikedSong, error)
}

// Options carries the settings the handlers report or serve from.
type Options struct {
	Host string
	Port int
	// StaticDir holds the single-page app. Empty disables static serving.
	StaticDir string
	// Metrics exposes /metrics and records per-route request metrics.
	Metrics bool
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	playlists PlaylistService
	favorites FavoritesService
	history   HistoryService
	ratings   RatingsService
	likes     LikesService
	opts      Options
}

// New configures a Server with the given services.
func New(
	playlists PlaylistService,
	favorites FavoritesService,
	history HistoryService,
	ratings RatingsService,
	likes LikesService,
	opts Options,
) *Server {
	return &Server{
		playlists: playlists,
		favorites: favorites,
		history:   history,
		ratings:   ratings,
		likes:     likes,
		opts:      opts,
	}
}

// Routes exposes the HTTP handlers for the music library.
func (s *Server) Routes() http.Handler {
	router := mux.NewRouter()
	if s.opts.Metrics {
		router.Use(middleware.Metrics())
		router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	}

	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	s.registerPlaylists(api)
	s.registerFavorites(api)
	s.registerHistory(api)
	s.registerRatings(api)
	s.registerLikes(api)
	api.NotFoundHandler = http.HandlerFunc(notFound)

	if s.opts.StaticDir != "" {
		router.PathPrefix("/").Handler(spaHandler(s.opts.StaticDir)).Methods(http.MethodGet, http.MethodHead)
	}
	router.NotFoundHandler = http.HandlerFunc(notFound)

	return router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":   true,
		"host": s.opts.Host,
		"port": s.opts.Port,
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Success bool `json:"success"`
}

var ok = successResponse{Success: true}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "Not found"})
}

// fail maps an error to a response. Validation messages are returned as is;
// storage failures are logged and replaced by fallback.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Message})
	case errors.Is(err, store.ErrPlaylistNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Playlist not found"})
	case errors.Is(err, store.ErrNotInitialized):
		logging.WithContext(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Storage unavailable")
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "Database not initialized"})
	default:
		logging.WithContext(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg(fallback)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: fallback})
	}
}

// decodeJSON reads the request body into dst. An empty body leaves dst untouched.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func badBody(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
}

// pathID parses the named path variable as a positive integer id.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func invalidID(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
