package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/server/auth"
)

var (
	errInvalidBody = errors.New("invalid JSON body")
	errInvalidID   = errors.New("id must be a positive 32-bit integer")
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// sendJSONError writes the standard error body.
func sendJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: http.StatusText(status), Message: message})
}

// sendServiceError maps a service error to a status. Unknown errors are
// logged with their full chain and answered with a generic 500.
func (s *Server) sendServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrDuplicateIdentifier):
		sendJSONError(w, http.StatusConflict, "email already registered")
	case errors.Is(err, common.ErrInvalidCredentials):
		sendJSONError(w, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, common.ErrForbidden):
		sendJSONError(w, http.StatusForbidden, "access to this resource is forbidden")
	case errors.Is(err, common.ErrNotFound):
		sendJSONError(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, auth.ErrPasswordTooLong):
		sendJSONError(w, http.StatusBadRequest, fmt.Sprintf("password must be at most %d bytes", auth.MaxPasswordBytes))
	case errors.Is(err, common.ErrInvalidInput):
		sendJSONError(w, http.StatusBadRequest, "invalid request")
	default:
		s.logger.Error(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		sendJSONError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeAndValidate reads a JSON body of at most maxBodyBytes into dst and
// runs the struct validator on it.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return errInvalidBody
	}
	if err := s.validate.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	parts := make([]string, 0, len(ve))
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			parts = append(parts, field+" is required")
		case "email":
			parts = append(parts, field+" must be a valid email address")
		case "min":
			parts = append(parts, fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
		case "max":
			parts = append(parts, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		case "maxbytes":
			parts = append(parts, fmt.Sprintf("%s must be at most %s bytes", field, fe.Param()))
		default:
			parts = append(parts, field+" is invalid")
		}
	}
	return errors.New(strings.Join(parts, "; "))
}

// maxBytes backs the "maxbytes" tag: the field's UTF-8 length must not
// exceed the parameter.
func maxBytes(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= n
}

// pathID parses the {id} segment. Ids are 32-bit in the Postgres schema, so a
// larger value can never name a row.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 32)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}
