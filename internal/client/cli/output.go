package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/dmitrijs2005/gophnotes/internal/client/api"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/common"
)

var (
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
	cyan  = color.New(color.FgCyan)
	gray  = color.New(color.FgHiBlack)
)

func printSuccess(w io.Writer, msg string) {
	green.Fprint(w, "✓ ")
	fmt.Fprintln(w, msg)
}

func printError(w io.Writer, err error) {
	red.Fprint(w, "✗ ")
	fmt.Fprintln(w, describeError(err))
}

// describeError turns client errors into messages for the user.
func describeError(err error) string {
	switch {
	case errors.Is(err, api.ErrNotLoggedIn):
		return "you are not logged in; use 'login' or 'register'"
	case errors.Is(err, common.ErrUnauthorized):
		return "not authorized: wrong credentials or the session has expired"
	case errors.Is(err, common.ErrForbidden):
		return "access denied"
	case errors.Is(err, common.ErrNotFound):
		return "not found"
	case errors.Is(err, common.ErrDuplicateIdentifier):
		return "this email is already registered"
	case errors.Is(err, common.ErrUnavailable):
		return "server unavailable"
	default:
		return err.Error()
	}
}

func printNotes(w io.Writer, notes []models.Note) {
	if len(notes) == 0 {
		gray.Fprintln(w, "no notes")
		return
	}
	cyan.Fprintf(w, "%-6s %-40s %s\n", "ID", "TITLE", "UPDATED")
	for _, n := range notes {
		fmt.Fprintln(w, n)
	}
}

func printNote(w io.Writer, n *models.Note) {
	cyan.Fprintf(w, "#%d %s\n", n.ID, n.Title)
	gray.Fprintf(w, "created %s, updated %s\n",
		n.CreatedAt.Local().Format(time.DateTime), n.UpdatedAt.Local().Format(time.DateTime))
	if n.Content != "" {
		fmt.Fprintln(w, n.Content)
	}
}
