package rest

import (
	"net/http"

	"github.com/dmitrijs2005/gophnotes/internal/server/auth"
)

func (s *Server) owner(w http.ResponseWriter, r *http.Request) (auth.Principal, bool) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		sendJSONError(w, http.StatusUnauthorized, "missing or invalid bearer token")
	}
	return p, ok
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}
	var req NoteRequest
	if err := s.decodeAndValidate(w, r, &req); err != nil {
		sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	note, err := s.notes.Create(r.Context(), owner, req.Title, req.Content)
	if err != nil {
		s.sendServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toNoteResponse(note))
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}
	notes, err := s.notes.List(r.Context(), owner)
	if err != nil {
		s.sendServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toNoteResponses(notes))
}

// handleSearchNotes treats an absent search_term like an empty one.
func (s *Server) handleSearchNotes(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}
	var term *string
	if q := r.URL.Query(); q.Has("search_term") {
		v := q.Get("search_term")
		term = &v
	}

	notes, err := s.notes.Search(r.Context(), owner, term)
	if err != nil {
		s.sendServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toNoteResponses(notes))
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	note, err := s.notes.Get(r.Context(), owner, id)
	if err != nil {
		s.sendServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toNoteResponse(note))
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req NoteRequest
	if err := s.decodeAndValidate(w, r, &req); err != nil {
		sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	note, err := s.notes.Update(r.Context(), owner, id, req.Title, req.Content)
	if err != nil {
		s.sendServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toNoteResponse(note))
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.owner(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.notes.Delete(r.Context(), owner, id); err != nil {
		s.sendServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
