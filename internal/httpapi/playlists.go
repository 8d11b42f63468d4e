package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"musiclib/internal/models"
)

type playlistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) registerPlaylists(router *mux.Router) {
	router.HandleFunc("/playlists", s.listPlaylists).Methods(http.MethodGet)
	router.HandleFunc("/playlists", s.createPlaylist).Methods(http.MethodPost)
	router.HandleFunc("/playlists/songs/{songId}", s.removeSongFromPlaylist).Methods(http.MethodDelete)
	router.HandleFunc("/playlists/{id}", s.getPlaylist).Methods(http.MethodGet)
	router.HandleFunc("/playlists/{id}", s.updatePlaylist).Methods(http.MethodPut)
	router.HandleFunc("/playlists/{id}", s.deletePlaylist).Methods(http.MethodDelete)
	router.HandleFunc("/playlists/{id}/songs", s.addSongToPlaylist).Methods(http.MethodPost)
}

func (s *Server) listPlaylists(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.playlists.List(r.Context())
	if err != nil {
		s.fail(w, r, err, "Failed to fetch playlists")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"playlists": summaries})
}

func (s *Server) createPlaylist(w http.ResponseWriter, r *http.Request) {
	var req playlistRequest
	if err := decodeJSON(r, &req); err != nil {
		badBody(w)
		return
	}

	id, err := s.playlists.Create(r.Context(), req.Name, req.Description)
	if err != nil {
		s.fail(w, r, err, "Failed to create playlist")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "playlist_id": id})
}

func (s *Server) getPlaylist(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(r, "id")
	if !valid {
		invalidID(w)
		return
	}

	detail, err := s.playlists.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, "Failed to fetch playlist")
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) updatePlaylist(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(r, "id")
	if !valid {
		invalidID(w)
		return
	}
	var req playlistRequest
	if err := decodeJSON(r, &req); err != nil {
		badBody(w)
		return
	}

	if err := s.playlists.Update(r.Context(), id, req.Name, req.Description); err != nil {
		s.fail(w, r, err, "Failed to update playlist")
		return
	}
	writeJSON(w, http.StatusOK, ok)
}

func (s *Server) deletePlaylist(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(r, "id")
	if !valid {
		invalidID(w)
		return
	}

	if err := s.playlists.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err, "Failed to delete playlist")
		return
	}
	writeJSON(w, http.StatusOK, ok)
}

func (s *Server) addSongToPlaylist(w http.ResponseWriter, r *http.Request) {
	id, valid := pathID(r, "id")
	if !valid {
		invalidID(w)
		return
	}
	var song models.SongInput
	if err := decodeJSON(r, &song); err != nil {
		badBody(w)
		return
	}

	if _, err := s.playlists.AddSong(r.Context(), id, song); err != nil {
		s.fail(w, r, err, "Failed to add song to playlist")
		return
	}
	writeJSON(w, http.StatusOK, ok)
}

func (s *Server) removeSongFromPlaylist(w http.ResponseWriter, r *http.Request) {
	songID, valid := pathID(r, "songId")
	if !valid {
		invalidID(w)
		return
	}

	if err := s.playlists.RemoveSong(r.Context(), songID); err != nil {
		s.fail(w, r, err, "Failed to remove song")
		return
	}
	writeJSON(w, http.StatusOK, ok)
}
