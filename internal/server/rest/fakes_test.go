package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/dmitrijs2005/gophnotes/internal/server/auth"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"github.com/dmitrijs2005/gophnotes/internal/server/services"
)

var (
	errBoom = errors.New("boom")
	fixedAt = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
)

type fakeUsers struct {
	registerRes *services.AuthResult
	registerErr error
	loginRes    *services.AuthResult
	loginErr    error
	user        *models.User
	userErr     error

	gotEmail, gotName, gotPassword string
	gotCaller                      auth.Principal
	gotID                          int64
}

func (f *fakeUsers) Register(_ context.Context, email, userName, password string) (*services.AuthResult, error) {
	f.gotEmail, f.gotName, f.gotPassword = email, userName, password
	return f.registerRes, f.registerErr
}

func (f *fakeUsers) Login(_ context.Context, email, password string) (*services.AuthResult, error) {
	f.gotEmail, f.gotPassword = email, password
	return f.loginRes, f.loginErr
}

func (f *fakeUsers) GetUser(_ context.Context, caller auth.Principal, id int64) (*models.User, error) {
	f.gotCaller, f.gotID = caller, id
	if f.userErr != nil {
		return nil, f.userErr
	}
	if err := auth.CheckOwner(caller, auth.Principal(id)); err != nil {
		return nil, err
	}
	return f.user, nil
}

type fakeNotes struct {
	notes map[int64]models.Note
	err   error

	gotOwner auth.Principal
	gotTerm  *string
	searched bool
	nextID   int64
}

func newFakeNotes() *fakeNotes {
	return &fakeNotes{notes: map[int64]models.Note{}, nextID: 1}
}

func (f *fakeNotes) Create(_ context.Context, owner auth.Principal, title, content string) (*models.Note, error) {
	f.gotOwner = owner
	if f.err != nil {
		return nil, f.err
	}
	n := models.Note{ID: f.nextID, UserID: int64(owner), Title: title, Content: content, CreatedAt: fixedAt, UpdatedAt: fixedAt}
	f.notes[n.ID] = n
	f.nextID++
	return &n, nil
}

func (f *fakeNotes) List(_ context.Context, owner auth.Principal) ([]models.Note, error) {
	f.gotOwner = owner
	if f.err != nil {
		return nil, f.err
	}
	out := []models.Note{}
	for _, n := range f.notes {
		if n.UserID == int64(owner) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotes) Get(_ context.Context, owner auth.Principal, id int64) (*models.Note, error) {
	f.gotOwner = owner
	if f.err != nil {
		return nil, f.err
	}
	n, ok := f.notes[id]
	if !ok || n.UserID != int64(owner) {
		return nil, common.ErrNotFound
	}
	return &n, nil
}

func (f *fakeNotes) Update(ctx context.Context, owner auth.Principal, id int64, title, content string) (*models.Note, error) {
	n, err := f.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	n.Title, n.Content = title, content
	f.notes[id] = *n
	return n, nil
}

func (f *fakeNotes) Delete(ctx context.Context, owner auth.Principal, id int64) error {
	if _, err := f.Get(ctx, owner, id); err != nil {
		return err
	}
	delete(f.notes, id)
	return nil
}

func (f *fakeNotes) Search(_ context.Context, owner auth.Principal, term *string) ([]models.Note, error) {
	f.gotOwner, f.gotTerm, f.searched = owner, term, true
	if f.err != nil {
		return nil, f.err
	}
	return []models.Note{}, nil
}

type harness struct {
	handler http.Handler
	users   *fakeUsers
	notes   *fakeNotes
	codec   *auth.TokenCodec
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	codec, err := auth.NewTokenCodec([]byte("rest-test-secret"))
	require.NoError(t, err)

	h := &harness{users: &fakeUsers{}, notes: newFakeNotes(), codec: codec}
	log := logging.NewNop()
	srv := NewServer(":0", log, h.users, h.notes, auth.NewGate(codec, log))
	h.handler = srv.Handler()
	return h
}

func (h *harness) token(t *testing.T, p auth.Principal) string {
	t.Helper()
	tok, err := h.codec.Issue(p, time.Hour)
	require.NoError(t, err)
	return tok
}

// do sends a request; an empty token sends no Authorization header.
func (h *harness) do(method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+token)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}
