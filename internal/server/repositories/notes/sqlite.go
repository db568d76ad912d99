package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/dbx"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
)

// SQLiteRepository implements the same contract as the stored procedures
// with plain SQL. Case-insensitive search folds ASCII letters only.
type SQLiteRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

const selectColumns = `SELECT id, title, content, created_at, updated_at FROM notes`

func (r *SQLiteRepository) Create(ctx context.Context, note *models.Note) (int64, error) {
	query := `INSERT INTO notes (user_id, title, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`

	ts := dbx.FormatTime(r.now())
	res, err := r.db.ExecContext(ctx, query, note.UserID, note.Title, note.Content, ts, ts)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) ListByOwner(ctx context.Context, userID int64) ([]models.Note, error) {
	query := selectColumns + ` WHERE user_id = ? ORDER BY updated_at DESC, id DESC`
	return r.selectNotes(ctx, userID, query, userID)
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id, userID int64) (*models.Note, error) {
	query := selectColumns + ` WHERE id = ? AND user_id = ?`

	n, err := scanNote(r.db.QueryRowContext(ctx, query, id, userID), userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, note *models.Note) (int64, error) {
	query := `UPDATE notes SET title = ?, content = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`

	res, err := r.db.ExecContext(ctx, query,
		note.Title, note.Content, dbx.FormatTime(r.now()), note.ID, note.UserID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return res.RowsAffected()
}

func (r *SQLiteRepository) Delete(ctx context.Context, id, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return res.RowsAffected()
}

func (r *SQLiteRepository) Search(ctx context.Context, userID int64, term *string) ([]models.Note, error) {
	if term == nil || *term == "" {
		return r.ListByOwner(ctx, userID)
	}

	query := selectColumns + ` WHERE user_id = ?
		AND (title LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\')
		ORDER BY updated_at DESC, id DESC`

	pattern := "%" + escapeLike(*term) + "%"
	return r.selectNotes(ctx, userID, query, userID, pattern, pattern)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner, userID int64) (*models.Note, error) {
	var (
		n                    = models.Note{UserID: userID}
		createdAt, updatedAt string
	)
	if err := row.Scan(&n.ID, &n.Title, &n.Content, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if n.CreatedAt, err = dbx.ParseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if n.UpdatedAt, err = dbx.ParseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &n, nil
}

func (r *SQLiteRepository) selectNotes(ctx context.Context, userID int64, query string, args ...any) ([]models.Note, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select notes: %w", err)
	}
	defer rows.Close()

	result := []models.Note{}
	for rows.Next() {
		n, err := scanNote(rows, userID)
		if err != nil {
			return nil, err
		}
		result = append(result, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
