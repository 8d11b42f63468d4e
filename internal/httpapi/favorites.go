package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"musiclib/internal/models"
)

func (s *Server) registerFavorites(router *mux.Router) {
	router.HandleFunc("/favorites", s.listFavorites).Methods(http.MethodGet)
	router.HandleFunc("/favorites", s.addFavorite).Methods(http.MethodPost)
	router.HandleFunc("/favorites", s.removeFavorite).Methods(http.MethodDelete)
	router.HandleFunc("/favorites/check", s.checkFavorite).Methods(http.MethodGet)
}

func (s *Server) listFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := s.favorites.List(r.Context())
	if err != nil {
		s.fail(w, r, err, "Failed to fetch favorites")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"favorites": favorites})
}

func (s *Server) addFavorite(w http.ResponseWriter, r *http.Request) {
	var song models.SongInput
	if err := decodeJSON(r, &song); err != nil {
		badBody(w)
		return
	}

	if err := s.favorites.Add(r.Context(), song); err != nil {
		s.fail(w, r, err, "Failed to add favorite")
		return
	}
	writeJSON(w, http.StatusOK, ok)
}

func (s *Server) removeFavorite(w http.ResponseWriter, r *http.Request) {
	var song models.SongInput
	if err := decodeJSON(r, &song); err != nil {
		badBody(w)
		return
	}

	if err := s.favorites.Remove(r.Context(), song.Title, song.Artist); err != nil {
		s.fail(w, r, err, "Failed to remove favorite")
		return
	}
	writeJSON(w, http.StatusOK, ok)
}

func (s *Server) checkFavorite(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	isFavorite, err := s.favorites.Check(r.Context(), q.Get("title"), q.Get("artist"))
	if err != nil {
		s.fail(w, r, err, "Failed to check favorite")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"is_favorite": isFavorite})
}
