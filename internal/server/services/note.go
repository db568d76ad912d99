package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/dbx"
	"github.com/dmitrijs2005/gophnotes/internal/server/auth"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/repomanager"
)

// NoteService manages the notes of an authenticated owner. Notes belonging
// to anyone else are reported as common.ErrNotFound.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewNoteService(db *sql.DB, m repomanager.RepositoryManager) *NoteService {
	return &NoteService{db: db, repomanager: m}
}

// Create stores a note and returns it as persisted.
func (s *NoteService) Create(ctx context.Context, owner auth.Principal, title, content string) (*models.Note, error) {
	var note *models.Note
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Notes(tx)
		id, err := repo.Create(ctx, &models.Note{UserID: int64(owner), Title: title, Content: content})
		if err != nil {
			return err
		}
		note, err = repo.GetByID(ctx, id, int64(owner))
		return err
	})
	if err != nil {
		return nil, storeError("create note", err)
	}
	return note, nil
}

// List returns the owner's notes, most recently updated first.
func (s *NoteService) List(ctx context.Context, owner auth.Principal) ([]models.Note, error) {
	notes, err := s.repomanager.Notes(s.db).ListByOwner(ctx, int64(owner))
	if err != nil {
		return nil, storeError("list notes", err)
	}
	return notes, nil
}

func (s *NoteService) Get(ctx context.Context, owner auth.Principal, id int64) (*models.Note, error) {
	note, err := s.repomanager.Notes(s.db).GetByID(ctx, id, int64(owner))
	if err != nil {
		return nil, storeError("get note", err)
	}
	return note, nil
}

// Update replaces title and content and returns the refreshed note.
func (s *NoteService) Update(ctx context.Context, owner auth.Principal, id int64, title, content string) (*models.Note, error) {
	var note *models.Note
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Notes(tx)
		n, err := repo.Update(ctx, &models.Note{ID: id, UserID: int64(owner), Title: title, Content: content})
		if err != nil {
			return err
		}
		if n == 0 {
			return common.ErrNotFound
		}
		note, err = repo.GetByID(ctx, id, int64(owner))
		return err
	})
	if err != nil {
		return nil, storeError("update note", err)
	}
	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, owner auth.Principal, id int64) error {
	n, err := s.repomanager.Notes(s.db).Delete(ctx, id, int64(owner))
	if err != nil {
		return storeError("delete note", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

// Search matches term case-insensitively in title or content. A nil or
// empty term returns every note of the owner.
func (s *NoteService) Search(ctx context.Context, owner auth.Principal, term *string) ([]models.Note, error) {
	notes, err := s.repomanager.Notes(s.db).Search(ctx, int64(owner), term)
	if err != nil {
		return nil, storeError("search notes", err)
	}
	return notes, nil
}

func storeError(op string, err error) error {
	if errors.Is(err, common.ErrNotFound) {
		return common.ErrNotFound
	}
	return fmt.Errorf("%w: %s: %w", common.ErrStoreFailure, op, err)
}
