package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gophnotes/internal/client/api"
	"github.com/dmitrijs2005/gophnotes/internal/client/config"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

// notesAPI is the part of api.Client the commands use.
type notesAPI interface {
	Ping(ctx context.Context) error
	Register(ctx context.Context, userName, email, password string) (*models.Session, error)
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Logout()
	Session() *models.Session
	Me(ctx context.Context) (*models.User, error)
	ListNotes(ctx context.Context) ([]models.Note, error)
	SearchNotes(ctx context.Context, term string) ([]models.Note, error)
	GetNote(ctx context.Context, id int64) (*models.Note, error)
	CreateNote(ctx context.Context, title, content string) (*models.Note, error)
	UpdateNote(ctx context.Context, id int64, title, content string) (*models.Note, error)
	DeleteNote(ctx context.Context, id int64) error
}

type App struct {
	config *config.Config
	api    notesAPI
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    api.New(c.ServerURL, c.RequestTimeout),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

func (a *App) isLoggedIn() bool {
	return a.api.Session() != nil
}

func (a *App) getStatus() string {
	if s := a.api.Session(); s != nil {
		return fmt.Sprintf("(%s)", s.UserName)
	}
	return ""
}

// Run checks that the server answers and then starts the REPL on the
// app's reader.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Notes CLI (type 'help' for commands)")
	if err := a.api.Ping(ctx); err != nil {
		printError(a.out, fmt.Errorf("server %s: %w", a.config.ServerURL, err))
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}
