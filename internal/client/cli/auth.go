package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophnotes/internal/common"
)

// Indirections over the interactive input helpers, swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// Register prompts for a username, email and password and creates the
// account. The new session replaces any current one.
func (a *App) Register(ctx context.Context, _ []string) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.api.Register(ctx, userName, email, string(password))
	if err != nil {
		printError(a.out, err)
		return err
	}

	printSuccess(a.out, fmt.Sprintf("registered and logged in as %s", s.UserName))
	return nil
}

func (a *App) Login(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		printError(a.out, err)
		return err
	}

	printSuccess(a.out, fmt.Sprintf("logged in as %s", s.UserName))
	return nil
}

// Logout drops the in-memory session token.
func (a *App) Logout(context.Context, []string) error {
	a.api.Logout()
	printSuccess(a.out, "logged out")
	return nil
}

func (a *App) Me(ctx context.Context, _ []string) error {
	u, err := a.api.Me(ctx)
	if err != nil {
		printError(a.out, err)
		return err
	}
	fmt.Fprintf(a.out, "id:       %d\nusername: %s\nemail:    %s\nsince:    %s\n",
		u.ID, u.UserName, u.Email, u.CreatedAt.Local().Format("2006-01-02"))
	return nil
}
