package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"musiclib/internal/models"
)

// History is global. The {userId} routes are kept for clients that address it
// per user; they read and clear the same global list.
func (s *Server) registerHistory(router *mux.Router) {
	router.HandleFunc("/history", s.listHistory).Methods(http.MethodGet)
	router.HandleFunc("/history", s.recordHistory).Methods(http.MethodPost)
	router.HandleFunc("/history", s.clearHistory).Methods(http.MethodDelete)
	router.HandleFunc("/history/clear/{userId}", s.clearUserHistory).Methods(http.MethodDelete)
	router.HandleFunc("/history/{userId}", s.listUserHistory).Methods(http.MethodGet)
	router.HandleFunc("/history/{id}", s.removeHistoryItem).Methods(http.MethodDelete)
}

// historyLimit returns the limit query parameter, or 0 when it is absent or not a number.
func historyLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		return 0
	}
	return limit
}

func (s *Server) listHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.history.Recent(r.Context(), historyLimit(r))
	if err != nil {
		s.fail(w, r, err, "Failed to fetch history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": history})
}

func (s *Server) listUserHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.history.Recent(r.Context(), historyLimit(r))
	if err != nil {
		s.fail(w, r, err, "Failed to fetch history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": history, "userId": mux.Vars(r)["userId"]})
}

func (s *Server) recordHistory(w http.ResponseWriter, r *http.Request) {
	var song models.SongInput
	if err := decodeJSON(r, &song); err != nil {
		badBody(w)
		return
	}

	if err := s.history.Record(r.Context(), song); err != nil {
		s.fail(w, r, err, "Failed to add to history")
		return
	}
	writeJSON(w, http.StatusOK, ok)
}

func (s *Server) removeHistoryItem(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(r, "id")
	if !valid {
		invalidID(w)
		return
	}

	if err := s.history.Remove(r.Context(), id); err != nil {
		s.fail(w, r, err, "Failed to remove history item")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Song removed from history"})
}

func (s *Server) clearHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.history.Clear(r.Context()); err != nil {
		s.fail(w, r, err, "Failed to clear history")
		return
	}
	writeJSON(w, http.StatusOK, ok)
}

func (s *Server) clearUserHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.history.Clear(r.Context()); err != nil {
		s.fail(w, r, err, "Failed to clear history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "userId": mux.Vars(r)["userId"]})
}
