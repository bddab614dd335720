// Package apiclient is a typed client for the SpaceFun word, score and
// account service. Every response is decoded into an explicit struct and
// checked before it is handed to callers.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"spacefun/internal/models"
	"spacefun/internal/words"
)

var (
	ErrBadResponse        = errors.New("unexpected response from server")
	ErrLoginFailed        = errors.New("login failed")
	ErrRegistrationFailed = errors.New("registration failed")
	ErrNotFound           = errors.New("not found")
)

// StatusError is a non-2xx reply. Message is the server's {error} text
// when it sent one.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.Code)
}

// Client talks to the service at a base URL. After Login the bearer token
// is attached to every request.
type Client struct {
	baseURL string
	timeout time.Duration
	base    *http.Client

	mu     sync.RWMutex
	token  string
	authed *http.Client
}

// New creates a client. A non-positive timeout defaults to 10 seconds.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		base:    &http.Client{Timeout: timeout},
	}
}

// SetToken installs the bearer token used for later requests. An empty
// token switches back to anonymous requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	if token == "" {
		c.authed = nil
		return
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, c.base)
	authed := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	}))
	authed.Timeout = c.timeout
	c.authed = authed
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) httpClient() *http.Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.authed != nil {
		return c.authed
	}
	return c.base
}

// do sends a request and decodes a 2xx JSON body into out. Non-2xx replies
// become *StatusError.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, wantStatus ...int) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if !statusOK(resp.StatusCode, wantStatus) {
		se := &StatusError{Code: resp.StatusCode}
		var er models.ErrorResponse
		if json.Unmarshal(raw, &er) == nil {
			se.Message = er.Error
		}
		return se
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return nil
}

func statusOK(code int, want []int) bool {
	if len(want) == 0 {
		return code >= 200 && code < 300
	}
	for _, w := range want {
		if code == w {
			return true
		}
	}
	return false
}

// DailyWord fetches the word of the day.
func (c *Client) DailyWord(ctx context.Context) (models.WordRecord, error) {
	var w models.WordRecord
	if err := c.do(ctx, http.MethodGet, "/words/daily", nil, &w); err != nil {
		return models.WordRecord{}, err
	}
	if err := w.Validate(); err != nil {
		return models.WordRecord{}, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return w, nil
}

// WordForLevel fetches a random word tagged with level. A level with no
// words yields an error wrapping words.ErrNoWordsForLevel.
func (c *Client) WordForLevel(ctx context.Context, level string) (models.WordRecord, error) {
	var w models.WordRecord
	err := c.do(ctx, http.MethodGet, "/words/level/"+url.PathEscape(level), nil, &w)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return models.WordRecord{}, fmt.Errorf("%w: %s", words.ErrNoWordsForLevel, level)
		}
		return models.WordRecord{}, err
	}
	if err := w.Validate(); err != nil {
		return models.WordRecord{}, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if w.Level != level {
		return models.WordRecord{}, fmt.Errorf("%w: asked for level %s, got %s", ErrBadResponse, level, w.Level)
	}
	return w, nil
}

// UpdateScore adds delta to the user's score on the server.
func (c *Client) UpdateScore(ctx context.Context, userID string, delta int) error {
	var msg models.MessageResponse
	return c.do(ctx, http.MethodPost, "/update", models.ScoreUpdate{UserID: userID, Score: delta}, &msg)
}

// Login authenticates and installs the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (models.User, string, error) {
	var out models.LoginResponse
	err := c.do(ctx, http.MethodPost, "/login", models.LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) {
			msg := se.Message
			if msg == "" {
				msg = http.StatusText(se.Code)
			}
			return models.User{}, "", fmt.Errorf("%w: %s", ErrLoginFailed, msg)
		}
		return models.User{}, "", err
	}
	if err := out.User.Validate(); err != nil {
		return models.User{}, "", fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if out.Token == "" {
		return models.User{}, "", fmt.Errorf("%w: missing token", ErrBadResponse)
	}
	c.SetToken(out.Token)
	return out.User, out.Token, nil
}

// Register creates an account. Only a 201 reply counts as success.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	var out struct {
		User models.User `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/register", req, &out, http.StatusCreated)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) {
			msg := se.Message
			if msg == "" {
				msg = http.StatusText(se.Code)
			}
			return models.User{}, fmt.Errorf("%w: %s", ErrRegistrationFailed, msg)
		}
		return models.User{}, err
	}
	if err := out.User.Validate(); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return out.User, nil
}

// UserInfo fetches a profile with score and achievement titles.
func (c *Client) UserInfo(ctx context.Context, userID string) (models.User, error) {
	var u models.User
	err := c.do(ctx, http.MethodGet, "/userInfo?userId="+url.QueryEscape(userID), nil, &u)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return models.User{}, fmt.Errorf("%w: user %s", ErrNotFound, userID)
		}
		return models.User{}, err
	}
	if err := u.Validate(); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return u, nil
}

// Leaderboard fetches the top players, highest score first.
func (c *Client) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	if err := c.do(ctx, http.MethodGet, "/leaderboard", nil, &entries); err != nil {
		return nil, err
	}
	for i, e := range entries {
		if e.ChildName == "" || e.Score < 0 {
			return nil, fmt.Errorf("%w: leaderboard entry %d", ErrBadResponse, i)
		}
	}
	return entries, nil
}
