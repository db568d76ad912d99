package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/netx"
)

var (
	ErrBadRequest  = errors.New("bad request")
	ErrNotLoggedIn = errors.New("not logged in")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}

	var se *netx.StatusError
	if !errors.As(err, &se) {
		return fmt.Errorf("%w: %w", common.ErrUnavailable, err)
	}

	switch se.StatusCode {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, se.Message)
	case http.StatusUnauthorized:
		return common.ErrUnauthorized
	case http.StatusForbidden:
		return common.ErrForbidden
	case http.StatusNotFound:
		return common.ErrNotFound
	case http.StatusConflict:
		return common.ErrDuplicateIdentifier
	default:
		return err
	}
}
