package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	authentity "lead_backend/internal/feature/auth/domain/entity"
	platformhttp "lead_backend/internal/platform/http"
)

// DefaultTimeout bounds every request when no http.Client is supplied.
const DefaultTimeout = 15 * time.Second

// Client talks to the lead management API on behalf of one session.
type Client struct {
	baseURL string
	http    *http.Client
	store   TokenStore

	mu             sync.RWMutex
	session        Session
	onUnauthorized func()
}

// New returns a client for baseURL, restoring the token held by store.
// A nil httpClient gets one with DefaultTimeout. A nil store keeps the
// token in memory only.
func New(baseURL string, httpClient *http.Client, store TokenStore) (*Client, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if httpClient == nil {
		httpClient = platformhttp.NewHTTPClient(DefaultTimeout)
	}
	if store == nil {
		store = &MemoryTokenStore{}
	}
	token, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		store:   store,
		session: Session{Token: token},
	}, nil
}

// Session returns a copy of the current session.
func (c *Client) Session() Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

func (c *Client) setSession(s Session) error {
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
	return c.store.Save(s.Token)
}

func (c *Client) setUser(u *authentity.PublicUser) {
	c.mu.Lock()
	c.session.User = u
	c.mu.Unlock()
}

// clearSession forgets the token locally and in the store.
func (c *Client) clearSession() {
	c.mu.Lock()
	c.session = Session{}
	hook := c.onUnauthorized
	c.mu.Unlock()

	if err := c.store.Clear(); err != nil {
		slog.Warn("failed to clear stored token", "error", err)
	}
	if hook != nil {
		hook()
	}
}

type authRes struct {
	Token string `json:"token"`
	Data  struct {
		User authentity.PublicUser `json:"user"`
	} `json:"data"`
}

// Register creates an account and starts a session for it.
func (c *Client) Register(ctx context.Context, name, email, password string) (Session, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	return c.authenticate(ctx, "/api/auth/register", body)
}

// Login starts a session for existing credentials.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	body := map[string]string{"email": email, "password": password}
	return c.authenticate(ctx, "/api/auth/login", body)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (Session, error) {
	var res authRes
	if err := c.do(ctx, http.MethodPost, path, nil, body, &res); err != nil {
		return Session{}, err
	}
	user := res.Data.User
	s := Session{Token: res.Token, User: &user}
	if err := c.setSession(s); err != nil {
		return Session{}, err
	}
	return s, nil
}

// Logout revokes the token on the server and clears the session.
// The local session is cleared even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	if !c.Session().Valid() {
		return nil
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil)
	c.clearSession()
	if errors.Is(err, ErrUnauthorized) {
		return nil
	}
	return err
}

// Me fetches the signed-in user and records it on the session.
func (c *Client) Me(ctx context.Context) (*authentity.PublicUser, error) {
	var res struct {
		Data struct {
			User authentity.PublicUser `json:"user"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &res); err != nil {
		return nil, err
	}
	user := res.Data.User
	c.setUser(&user)
	return &user, nil
}

// errorBody is the failure envelope.
type errorBody struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

// do sends one request. A 2xx body is decoded into out when out is non-nil.
// Anything else becomes an *APIError; a 401 also clears the session.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Session().Token; token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil {
			apiErr.Message = eb.Message
			apiErr.Fields = eb.Errors
		}
		if resp.StatusCode == http.StatusUnauthorized {
			slog.Debug("session rejected by server", "path", path)
			c.clearSession()
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
