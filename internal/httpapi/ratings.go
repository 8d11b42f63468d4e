package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

type ratingRequest struct {
	Title  string `json:"song_title"`
	Artist string `json:"song_artist"`
	Rating *int   `json:"rating"`
}

func (s *Server) registerRatings(router *mux.Router) {
	router.HandleFunc("/ratings", s.rateSong).Methods(http.MethodPost)
	router.HandleFunc("/ratings", s.getRatings).Methods(http.MethodGet)
}

func (s *Server) rateSong(w http.ResponseWriter, r *http.Request) {
	var req ratingRequest
	if err := decodeJSON(r, &req); err != nil {
		badBody(w)
		return
	}

	if err := s.ratings.Rate(r.Context(), req.Title, req.Artist, req.Rating); err != nil {
		s.fail(w, r, err, "Failed to add rating")
		return
	}
	writeJSON(w, http.StatusOK, ok)
}

// getRatings returns one song's rating (null when unrated) when both title and
// artist are given, and every rating otherwise.
func (s *Server) getRatings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	title, artist := q.Get("title"), q.Get("artist")

	if title != "" && artist != "" {
		rating, err := s.ratings.Get(r.Context(), title, artist)
		if err != nil {
			s.fail(w, r, err, "Failed to fetch ratings")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"rating": rating})
		return
	}

	ratings, err := s.ratings.List(r.Context())
	if err != nil {
		s.fail(w, r, err, "Failed to fetch ratings")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ratings": ratings})
}
