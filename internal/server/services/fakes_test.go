package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophnotes/internal/dbx"
	"github.com/dmitrijs2005/gophnotes/internal/server/auth"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/notes"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error
	created   *models.User

	getOut   *models.User
	getErr   error
	getEmail string
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.created = u
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeUsersRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.getEmail = email
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) GetUserByID(context.Context, int64) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

type fakeNotesRepo struct {
	createID  int64
	createErr error

	getOut *models.Note
	getErr error

	listOut []models.Note
	listErr error

	affected  int64
	mutateErr error

	searchTerm *string
}

func (f *fakeNotesRepo) Create(context.Context, *models.Note) (int64, error) {
	return f.createID, f.createErr
}

func (f *fakeNotesRepo) ListByOwner(context.Context, int64) ([]models.Note, error) {
	return f.listOut, f.listErr
}

func (f *fakeNotesRepo) GetByID(context.Context, int64, int64) (*models.Note, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeNotesRepo) Update(context.Context, *models.Note) (int64, error) {
	return f.affected, f.mutateErr
}

func (f *fakeNotesRepo) Delete(context.Context, int64, int64) (int64, error) {
	return f.affected, f.mutateErr
}

func (f *fakeNotesRepo) Search(_ context.Context, _ int64, term *string) ([]models.Note, error) {
	f.searchTerm = term
	return f.listOut, f.listErr
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	n *fakeNotesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository            { return m.u }
func (m *fakeRepoManager) Notes(dbx.DBTX) notes.Repository            { return m.n }

// plainHasher makes service tests independent of bcrypt cost.
type plainHasher struct{ err error }

func (h plainHasher) Hash(s string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + s, nil
}

func (h plainHasher) Verify(s, hashed string) bool { return hashed == "hashed:"+s }

type failingIssuer struct{}

func (failingIssuer) Issue(auth.Principal, time.Duration) (string, error) { return "", errBoom }
