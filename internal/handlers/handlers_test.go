package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spacefun/internal/apiclient"
	"spacefun/internal/database"
	"spacefun/internal/models"
	"spacefun/internal/repository"
	"spacefun/internal/security"
	"spacefun/internal/service"
	"spacefun/internal/words"
)

const loginBudget = 20

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := database.Initialize(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations())

	users := repository.NewUserRepository(db)
	authService := service.NewAuthService(users, security.NewTokenIssuer("test-secret", time.Hour), db, nil)
	scoreService := service.NewScoreService(users, nil)
	wordService := service.NewWordService(repository.NewWordRepository(db), "salt")
	require.NoError(t, wordService.SeedCatalog())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	srv := httptest.NewServer(NewRouter(Handlers{
		Auth:       NewAuthHandler(authService),
		Words:      NewWordHandler(wordService),
		Scores:     NewScoreHandler(scoreService),
		Middleware: NewMiddleware(authService, security.NewRateLimiter(ctx, loginBudget, time.Minute)),
		DB:         db,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func register(t *testing.T, c *apiclient.Client, email string) models.User {
	t.Helper()
	u, err := c.Register(context.Background(), models.RegisterRequest{
		ChildName: "Ada",
		ChildAge:  7,
		Email:     email,
		Password:  "rocket",
		Avatar:    "astronaut",
	})
	require.NoError(t, err)
	return u
}

func postJSON(t *testing.T, url, token string, body interface{}) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(buf))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestAccountAndScoreFlow(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	c := apiclient.New(srv.URL, 5*time.Second)

	user := register(t, c, "ada@example.com")
	assert.Equal(t, 0, user.Score)

	_, _, err := c.Login(ctx, "ada@example.com", "nope!!")
	assert.ErrorIs(t, err, apiclient.ErrLoginFailed)

	got, token, err := c.Login(ctx, "ada@example.com", "rocket")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.NotEmpty(t, token)

	require.NoError(t, c.UpdateScore(ctx, user.ID, 1))

	info, err := c.UserInfo(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, info.Score)
	assert.Equal(t, []string{"Mercury Explorer"}, info.Achievements)

	board, err := c.Leaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, "Ada", board[0].ChildName)

	_, err = c.UserInfo(ctx, "ghost")
	assert.ErrorIs(t, err, apiclient.ErrNotFound)
}

func TestRegisterErrors(t *testing.T) {
	srv := newTestServer(t)
	c := apiclient.New(srv.URL, 5*time.Second)
	register(t, c, "ada@example.com")

	tests := []struct {
		name string
		req  models.RegisterRequest
		want int
	}{
		{"duplicate email", models.RegisterRequest{ChildName: "Bo", ChildAge: 8, Email: "ada@example.com", Password: "rocket", Avatar: "alien"}, http.StatusConflict},
		{"too young", models.RegisterRequest{ChildName: "Bo", ChildAge: 2, Email: "bo@example.com", Password: "rocket", Avatar: "alien"}, http.StatusBadRequest},
		{"short password", models.RegisterRequest{ChildName: "Bo", ChildAge: 8, Email: "bo@example.com", Password: "abc", Avatar: "alien"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, srv.URL+"/register", "", tt.req)
			assert.Equal(t, tt.want, resp.StatusCode)

			var body models.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body.Error)
		})
	}

	resp := postJSON(t, srv.URL+"/register", "", "not an object")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateChecks(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	c := apiclient.New(srv.URL, 5*time.Second)
	ada := register(t, c, "ada@example.com")
	bo := register(t, c, "bo@example.com")
	_, token, err := c.Login(ctx, "ada@example.com", "rocket")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		body  models.ScoreUpdate
		want  int
	}{
		{"anonymous", "", models.ScoreUpdate{UserID: ada.ID, Score: 1}, http.StatusOK},
		{"own token", token, models.ScoreUpdate{UserID: ada.ID, Score: 1}, http.StatusOK},
		{"other user", token, models.ScoreUpdate{UserID: bo.ID, Score: 1}, http.StatusForbidden},
		{"bad token", "garbage", models.ScoreUpdate{UserID: ada.ID, Score: 1}, http.StatusUnauthorized},
		{"unknown user", "", models.ScoreUpdate{UserID: "ghost", Score: 1}, http.StatusNotFound},
		{"zero delta", "", models.ScoreUpdate{UserID: ada.ID, Score: 0}, http.StatusBadRequest},
		{"missing user", "", models.ScoreUpdate{Score: 1}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, srv.URL+"/update", tt.token, tt.body)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}

	info, err := c.UserInfo(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, info.Score)
	info, err = c.UserInfo(ctx, bo.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, info.Score)
}

func TestWordRoutes(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	c := apiclient.New(srv.URL, 5*time.Second)

	first, err := c.DailyWord(ctx)
	require.NoError(t, err)
	again, err := c.DailyWord(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	w, err := c.WordForLevel(ctx, models.LevelPreK)
	require.NoError(t, err)
	assert.Equal(t, models.LevelPreK, w.Level)

	_, err = c.WordForLevel(ctx, "7th")
	assert.ErrorIs(t, err, words.ErrNoWordsForLevel)
}

func TestLoginRateLimit(t *testing.T) {
	srv := newTestServer(t)
	creds := models.LoginRequest{Email: "ada@example.com", Password: "rocket"}

	for i := 0; i < loginBudget; i++ {
		resp := postJSON(t, srv.URL+"/login", "", creds)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
	resp := postJSON(t, srv.URL+"/login", "", creds)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestHealthAndUnknownRoute(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])

	resp2, err := http.Get(srv.URL + "/nowhere")
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
}
