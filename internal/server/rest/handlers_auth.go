package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/server/auth"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := s.decodeAndValidate(w, r, &req); err != nil {
		sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.users.Register(r.Context(), req.Email, req.UserName, req.Password)
	if err != nil {
		s.sendServiceError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "user registered", "user_id", res.UserID.String())
	writeJSON(w, http.StatusOK, toAuthResponse(res))
}

// handleLogin answers an unknown email and a wrong password identically.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := s.decodeAndValidate(w, r, &req); err != nil {
		sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			err = common.ErrInvalidCredentials
		}
		s.sendServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toAuthResponse(res))
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		sendJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	caller, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		sendJSONError(w, http.StatusUnauthorized, "missing or invalid bearer token")
		return
	}

	user, err := s.users.GetUser(r.Context(), caller, id)
	if err != nil {
		s.sendServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}
