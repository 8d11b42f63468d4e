package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"musiclib/internal/app/likes"
	"musiclib/internal/models"
)

type likeRequest struct {
	UserID string `json:"user_id"`
	Action string `json:"action"`
	models.SongInput
}

func (s *Server) registerLikes(router *mux.Router) {
	router.HandleFunc("/like", s.toggleLike).Methods(http.MethodPost)
	router.HandleFunc("/likes", s.listLikes).Methods(http.MethodGet)
}

func (s *Server) toggleLike(w http.ResponseWriter, r *http.Request) {
	var req likeRequest
	if err := decodeJSON(r, &req); err != nil {
		badBody(w)
		return
	}

	liked, err := s.likes.Toggle(r.Context(), likes.ToggleRequest{
		UserID: req.UserID,
		Action: req.Action,
		Song:   req.SongInput,
	})
	if err != nil {
		s.fail(w, r, err, "Failed to toggle like")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "liked": liked})
}

func (s *Server) listLikes(w http.ResponseWriter, r *http.Request) {
	rows, err := s.likes.List(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		s.fail(w, r, err, "Failed to fetch likes")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"likes": rows})
}
