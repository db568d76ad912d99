package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/dbx"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
)

// PostgresRepository calls the note stored procedures.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, note *models.Note) (int64, error) {
	query := `SELECT noteid FROM sp_create_or_update_note($1, $2, $3, $4)`

	var id int64
	err := r.db.QueryRowContext(ctx, query, nil, note.Title, note.Content, note.UserID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, userID int64) ([]models.Note, error) {
	query := `SELECT id, title, content, createdat, updatedat FROM sp_get_user_notes($1)`
	return r.selectNotes(ctx, userID, query, userID)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id, userID int64) (*models.Note, error) {
	query := `SELECT id, title, content, createdat, updatedat FROM sp_get_note_by_id($1, $2)`

	n := models.Note{UserID: userID}
	err := r.db.QueryRowContext(ctx, query, id, userID).
		Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &n, nil
}

func (r *PostgresRepository) Update(ctx context.Context, note *models.Note) (int64, error) {
	query := `SELECT sp_update_note($1, $2, $3, $4) AS updated`

	var updated int64
	err := r.db.QueryRowContext(ctx, query, note.ID, note.Title, note.Content, note.UserID).Scan(&updated)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID int64) (int64, error) {
	query := `SELECT sp_delete_note($1, $2) AS deleted`

	var deleted int64
	if err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&deleted); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return deleted, nil
}

// Search matches term literally; LIKE wildcards in it are escaped before
// the procedure wraps it in %...%.
func (r *PostgresRepository) Search(ctx context.Context, userID int64, term *string) ([]models.Note, error) {
	query := `SELECT id, title, content, createdat, updatedat FROM sp_search_notes($1, $2)`

	var arg any
	if term != nil {
		arg = escapeLike(*term)
	}
	return r.selectNotes(ctx, userID, query, userID, arg)
}

func (r *PostgresRepository) selectNotes(ctx context.Context, userID int64, query string, args ...any) ([]models.Note, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select notes: %w", err)
	}
	defer rows.Close()

	result := []models.Note{}
	for rows.Next() {
		n := models.Note{UserID: userID}
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
