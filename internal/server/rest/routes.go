package rest

import (
	"net/http"

	"github.com/dmitrijs2005/gophnotes/internal/common"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST "+common.APIPrefix+"/auth/register", s.handleRegister)
	mux.HandleFunc("POST "+common.APIPrefix+"/auth/login", s.handleLogin)

	protected := http.NewServeMux()
	protected.HandleFunc("GET "+common.APIPrefix+"/users/{id}", s.handleGetUser)
	protected.HandleFunc("POST "+common.APIPrefix+"/notes", s.handleCreateNote)
	protected.HandleFunc("GET "+common.APIPrefix+"/notes", s.handleListNotes)
	protected.HandleFunc("GET "+common.APIPrefix+"/notes/search", s.handleSearchNotes)
	protected.HandleFunc("GET "+common.APIPrefix+"/notes/{id}", s.handleGetNote)
	protected.HandleFunc("PUT "+common.APIPrefix+"/notes/{id}", s.handleUpdateNote)
	protected.HandleFunc("DELETE "+common.APIPrefix+"/notes/{id}", s.handleDeleteNote)

	gated := s.gate.Require(protected)
	mux.Handle(common.APIPrefix+"/users/", gated)
	mux.Handle(common.APIPrefix+"/notes", gated)
	mux.Handle(common.APIPrefix+"/notes/", gated)

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
