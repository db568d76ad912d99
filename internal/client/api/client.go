package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/netx"
)

type Client struct {
	baseURL string
	http    *http.Client

	mu      sync.RWMutex
	session *models.Session
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Session returns the current session or nil.
func (c *Client) Session() *models.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// Logout forgets the session token. The server keeps no session state.
func (c *Client) Logout() {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()
}

func (c *Client) setSession(s *models.Session) {
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
}

func (c *Client) Ping(ctx context.Context) error {
	return mapError(netx.DoJSON(ctx, c.http, http.MethodGet, c.baseURL+"/health", nil, nil, nil))
}

func (c *Client) Register(ctx context.Context, userName, email, password string) (*models.Session, error) {
	in := map[string]string{"username": userName, "email": email, "password": password}
	return c.authenticate(ctx, "/auth/register", in)
}

func (c *Client) Login(ctx context.Context, email, password string) (*models.Session, error) {
	in := map[string]string{"email": email, "password": password}
	return c.authenticate(ctx, "/auth/login", in)
}

func (c *Client) authenticate(ctx context.Context, path string, in any) (*models.Session, error) {
	var s models.Session
	err := netx.DoJSON(ctx, c.http, http.MethodPost, c.url(path), nil, in, &s)
	if err != nil {
		return nil, mapError(err)
	}
	c.setSession(&s)
	return &s, nil
}

// Me fetches the profile of the logged-in user.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	s := c.Session()
	if s == nil {
		return nil, ErrNotLoggedIn
	}
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/users/"+strconv.FormatInt(s.UserID, 10), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) ListNotes(ctx context.Context) ([]models.Note, error) {
	var notes []models.Note
	if err := c.do(ctx, http.MethodGet, "/notes", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// SearchNotes returns every note when term is empty.
func (c *Client) SearchNotes(ctx context.Context, term string) ([]models.Note, error) {
	path := "/notes/search"
	if term != "" {
		path += "?" + url.Values{"search_term": {term}}.Encode()
	}
	var notes []models.Note
	if err := c.do(ctx, http.MethodGet, path, nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) GetNote(ctx context.Context, id int64) (*models.Note, error) {
	var n models.Note
	if err := c.do(ctx, http.MethodGet, notePath(id), nil, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *Client) CreateNote(ctx context.Context, title, content string) (*models.Note, error) {
	var n models.Note
	in := map[string]string{"title": title, "content": content}
	if err := c.do(ctx, http.MethodPost, "/notes", in, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *Client) UpdateNote(ctx context.Context, id int64, title, content string) (*models.Note, error) {
	var n models.Note
	in := map[string]string{"title": title, "content": content}
	if err := c.do(ctx, http.MethodPut, notePath(id), in, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *Client) DeleteNote(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, notePath(id), nil, nil)
}

// do performs an authenticated call against the API prefix.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	s := c.Session()
	if s == nil {
		return ErrNotLoggedIn
	}
	h := http.Header{}
	h.Set(common.AuthorizationHeaderName, common.BearerScheme+s.Token)

	return mapError(netx.DoJSON(ctx, c.http, method, c.url(path), h, in, out))
}

func (c *Client) url(path string) string {
	return c.baseURL + common.APIPrefix + path
}

func notePath(id int64) string {
	return "/notes/" + strconv.FormatInt(id, 10)
}
