package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errInvalidID = errors.New("note id must be a positive number")

// noteID takes the id from the first argument or asks for it.
func (a *App) noteID(args []string, prompt string) (int64, error) {
	raw := ""
	if len(args) > 0 {
		raw = args[0]
	} else {
		var err error
		if raw, err = getSimpleText(a.reader, prompt, a.out); err != nil {
			return 0, err
		}
	}
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

func (a *App) List(ctx context.Context, _ []string) error {
	notes, err := a.api.ListNotes(ctx)
	if err != nil {
		printError(a.out, err)
		return err
	}
	printNotes(a.out, notes)
	return nil
}

// Search matches the rest of the line case-insensitively; no argument
// lists everything.
func (a *App) Search(ctx context.Context, args []string) error {
	notes, err := a.api.SearchNotes(ctx, strings.Join(args, " "))
	if err != nil {
		printError(a.out, err)
		return err
	}
	printNotes(a.out, notes)
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := a.noteID(args, "Enter note id to show")
	if err != nil {
		printError(a.out, err)
		return err
	}
	n, err := a.api.GetNote(ctx, id)
	if err != nil {
		printError(a.out, err)
		return err
	}
	printNote(a.out, n)
	return nil
}

func (a *App) Add(ctx context.Context, _ []string) error {
	title, err := getSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Enter note text", a.out)
	if err != nil {
		return err
	}

	n, err := a.api.CreateNote(ctx, title, content)
	if err != nil {
		printError(a.out, err)
		return err
	}
	printSuccess(a.out, fmt.Sprintf("note #%d created", n.ID))
	return nil
}

// Edit replaces title and content. An empty title keeps the current one.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := a.noteID(args, "Enter note id to edit")
	if err != nil {
		printError(a.out, err)
		return err
	}
	cur, err := a.api.GetNote(ctx, id)
	if err != nil {
		printError(a.out, err)
		return err
	}

	title, err := getSimpleText(a.reader, fmt.Sprintf("Enter title [%s]", cur.Title), a.out)
	if err != nil {
		return err
	}
	if title == "" {
		title = cur.Title
	}
	content, err := getMultiline(a.reader, "Enter new note text", a.out)
	if err != nil {
		return err
	}

	n, err := a.api.UpdateNote(ctx, id, title, content)
	if err != nil {
		printError(a.out, err)
		return err
	}
	printSuccess(a.out, fmt.Sprintf("note #%d updated", n.ID))
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := a.noteID(args, "Enter note id to delete")
	if err != nil {
		printError(a.out, err)
		return err
	}
	if err := a.api.DeleteNote(ctx, id); err != nil {
		printError(a.out, err)
		return err
	}
	printSuccess(a.out, fmt.Sprintf("note #%d deleted", id))
	return nil
}
