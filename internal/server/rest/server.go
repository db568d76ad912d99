// Package rest exposes the users and notes services over a JSON HTTP API.
//
// Public routes (health, register, login) are registered on the root mux.
// Everything else lives on a protected mux that is wrapped as a whole by
// the auth gate.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/dmitrijs2005/gophnotes/internal/server/auth"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"github.com/dmitrijs2005/gophnotes/internal/server/services"
)

// UserService is the part of services.UserService the API needs.
type UserService interface {
	Register(ctx context.Context, email, userName, password string) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	GetUser(ctx context.Context, caller auth.Principal, id int64) (*models.User, error)
}

// NoteService is the part of services.NoteService the API needs.
type NoteService interface {
	Create(ctx context.Context, owner auth.Principal, title, content string) (*models.Note, error)
	List(ctx context.Context, owner auth.Principal) ([]models.Note, error)
	Get(ctx context.Context, owner auth.Principal, id int64) (*models.Note, error)
	Update(ctx context.Context, owner auth.Principal, id int64, title, content string) (*models.Note, error)
	Delete(ctx context.Context, owner auth.Principal, id int64) error
	Search(ctx context.Context, owner auth.Principal, term *string) ([]models.Note, error)
}

const (
	defaultShutdownTimeout = 5 * time.Second
	maxBodyBytes           = 1 << 20
)

type Server struct {
	address         string
	users           UserService
	notes           NoteService
	gate            *auth.Gate
	logger          logging.Logger
	validate        *validator.Validate
	shutdownTimeout time.Duration
}

type Option func(*Server)

// WithShutdownTimeout bounds how long Run waits for in-flight requests.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

func NewServer(address string, l logging.Logger, us UserService, ns NoteService, gate *auth.Gate, opts ...Option) *Server {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("maxbytes", maxBytes)

	s := &Server{
		address:         address,
		users:           us,
		notes:           ns,
		gate:            gate,
		logger:          l.With("module", "http_server"),
		validate:        v,
		shutdownTimeout: defaultShutdownTimeout,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Handler returns the fully wired router including middleware.
func (s *Server) Handler() http.Handler {
	return s.recoverer(s.requestLogger(permissiveCORS().Handler(s.routes())))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *Server) serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())
		errCh <- srv.Serve(listen)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
