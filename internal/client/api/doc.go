// Package api is the HTTP client for the notes server.
//
// A Client keeps the session token of the last successful Register or
// Login in memory and sends it as a bearer token on every protected call.
// Server answers are mapped to sentinel errors from internal/common so
// callers can branch with errors.Is:
//
//	401 -> common.ErrUnauthorized
//	403 -> common.ErrForbidden
//	404 -> common.ErrNotFound
//	409 -> common.ErrDuplicateIdentifier
//	400 -> ErrBadRequest (wrapping the server's message)
//
// Transport failures are reported as common.ErrUnavailable.
package api
