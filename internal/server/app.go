// Package server wires configuration, storage, the auth core and the HTTP
// API into a runnable application and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/dmitrijs2005/gophnotes/internal/server/auth"
	"github.com/dmitrijs2005/gophnotes/internal/server/config"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophnotes/internal/server/rest"
	"github.com/dmitrijs2005/gophnotes/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *rest.Server
}

// NewApp opens the database, applies migrations and builds the HTTP server.
// Logs go to out.
func NewApp(ctx context.Context, c *config.Config, out io.Writer) (*App, error) {
	logger := logging.NewLogger(out, c.LogLevel, c.LogFormat)

	if c.EphemeralSecret() {
		logger.Warn(ctx, "no secret key configured, using a random one; tokens will not survive a restart",
			"environment", c.Environment)
	}

	db, m, err := repomanager.Open(ctx, c.DatabaseDSN, repomanager.PoolOptions{
		MaxOpenConns:    c.DBMaxOpenConns,
		MaxIdleConns:    c.DBMaxIdleConns,
		ConnMaxLifetime: c.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	hasher, err := auth.NewBcryptHasher(c.PasswordHashCost)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	codec, err := auth.NewTokenCodec([]byte(c.SecretKey))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	us := services.NewUserService(db, m, hasher, codec, c)
	ns := services.NewNoteService(db, m)
	gate := auth.NewGate(codec, logger.With("module", "auth_gate"))

	srv := rest.NewServer(c.EndpointAddrHTTP, logger, us, ns, gate,
		rest.WithShutdownTimeout(c.ShutdownTimeout))

	return &App{config: c, logger: logger, db: db, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "environment", app.config.Environment)
	app.initSignalHandler(cancelFunc)

	err := app.server.Run(ctx)

	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(ctx, "db close error", "error", cerr)
	}
	app.logger.Info(ctx, "App stopped")
	return err
}
