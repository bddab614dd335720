package service

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spacefun/internal/database"
	"spacefun/internal/models"
	"spacefun/internal/repository"
	"spacefun/internal/security"
	"spacefun/internal/validation"
	"spacefun/internal/words"
)

type fakeSES struct {
	mu   sync.Mutex
	sent []*sesv2.SendEmailInput
}

func (f *fakeSES) SendEmail(ctx context.Context, in *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, in)
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func (f *fakeSES) subjects() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.sent))
	for i, in := range f.sent {
		out[i] = aws.ToString(in.Content.Simple.Subject.Data)
	}
	return out
}

type stack struct {
	db     *database.DB
	users  *repository.UserRepository
	auth   *AuthService
	scores *ScoreService
	words  *WordService
	ses    *fakeSES
}

func newStack(t *testing.T) *stack {
	t.Helper()
	db, err := database.Initialize(filepath.Join(t.TempDir(), "svc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations())

	_, err = db.LoadBadWords(strings.NewReader("meanie\n"))
	require.NoError(t, err)

	ses := &fakeSES{}
	email := NewEmailServiceWithClient(ses, "noreply@spacefun.test", "SpaceFun", "http://localhost:5000")
	users := repository.NewUserRepository(db)
	return &stack{
		db:     db,
		users:  users,
		auth:   NewAuthService(users, security.NewTokenIssuer("test-secret", time.Hour), db, email),
		scores: NewScoreService(users, email),
		words:  NewWordService(repository.NewWordRepository(db), "salt"),
		ses:    ses,
	}
}

func validRequest() models.RegisterRequest {
	return models.RegisterRequest{
		ChildName: "Ada",
		ChildAge:  7,
		Email:     "Ada@Example.com",
		Password:  "rocket",
		Avatar:    "astronaut",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	user, err := s.auth.Register(ctx, validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, []string{"Welcome to SpaceFun!"}, s.ses.subjects())

	_, err = s.auth.Register(ctx, validRequest())
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, _, err = s.auth.Login("ada@example.com", "wrong!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = s.auth.Login("nobody@example.com", "rocket")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	got, token, err := s.auth.Login("ADA@example.com", "rocket")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	sub, err := s.auth.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, sub)
}

func TestRegisterValidation(t *testing.T) {
	s := newStack(t)
	tests := []struct {
		name   string
		mutate func(*models.RegisterRequest)
	}{
		{"too young", func(r *models.RegisterRequest) { r.ChildAge = 2 }},
		{"too old", func(r *models.RegisterRequest) { r.ChildAge = 13 }},
		{"bad email", func(r *models.RegisterRequest) { r.Email = "ada" }},
		{"short password", func(r *models.RegisterRequest) { r.Password = "abc" }},
		{"no name", func(r *models.RegisterRequest) { r.ChildName = " " }},
		{"no avatar", func(r *models.RegisterRequest) { r.Avatar = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			_, err := s.auth.Register(context.Background(), req)
			var ve validation.ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}
}

func TestRegisterRejectsBadName(t *testing.T) {
	s := newStack(t)
	req := validRequest()
	req.ChildName = "Big Meanie"
	_, err := s.auth.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrInappropriateName)
}

func TestAddScoreUnlocksOnce(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	user, err := s.auth.Register(ctx, validRequest())
	require.NoError(t, err)

	score, unlocked, err := s.scores.AddScore(ctx, user.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, score)
	require.Len(t, unlocked, 1)
	assert.Equal(t, "mercury-explorer", unlocked[0].ID)

	for i := 0; i < 8; i++ {
		_, unlocked, err = s.scores.AddScore(ctx, user.ID, 1)
		require.NoError(t, err)
		assert.Empty(t, unlocked)
	}
	score, unlocked, err = s.scores.AddScore(ctx, user.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, score)
	require.Len(t, unlocked, 1)
	assert.Equal(t, "Venus Voyager", unlocked[0].Title)

	got, err := s.scores.GetUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mercury Explorer", "Venus Voyager"}, got.Achievements)

	assert.Contains(t, s.ses.subjects(), "Ada unlocked Venus Voyager!")
}

func TestAddScoreErrors(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	_, _, err := s.scores.AddScore(ctx, "ghost", 1)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, _, err = s.scores.AddScore(ctx, "ghost", 0)
	assert.ErrorIs(t, err, ErrInvalidDelta)
	_, _, err = s.scores.AddScore(ctx, "ghost", MaxScoreDelta+1)
	assert.ErrorIs(t, err, ErrInvalidDelta)

	_, err = s.scores.GetUser("ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestWordService(t *testing.T) {
	s := newStack(t)

	_, err := s.words.Daily()
	assert.ErrorIs(t, err, words.ErrNoWordsForLevel)

	require.NoError(t, s.words.SeedCatalog())
	require.NoError(t, s.words.SeedCatalog())

	day := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	s.words.now = func() time.Time { return day }
	first, err := s.words.Daily()
	require.NoError(t, err)
	s.words.now = func() time.Time { return day.Add(10 * time.Hour) }
	again, err := s.words.Daily()
	require.NoError(t, err)
	assert.Equal(t, first.Word, again.Word)

	w, err := s.words.RandomForLevel(models.Level3rd)
	require.NoError(t, err)
	assert.Equal(t, models.Level3rd, w.Level)

	_, err = s.words.RandomForLevel("7th")
	assert.ErrorIs(t, err, ErrUnknownLevel)
}

func TestBackupRoundTrip(t *testing.T) {
	src := newStack(t)
	ctx := context.Background()
	require.NoError(t, src.words.SeedCatalog())
	user, err := src.auth.Register(ctx, validRequest())
	require.NoError(t, err)
	_, _, err = src.scores.AddScore(ctx, user.ID, 3)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewBackupService(src.db).ExportTo(&buf))

	dst := newStack(t)
	stats, err := NewBackupService(dst.db).ImportFrom(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Users)
	assert.Equal(t, len(words.Catalog()), stats.Words)

	got, err := dst.scores.GetUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Score)
	assert.Equal(t, []string{"Mercury Explorer"}, got.Achievements)

	_, _, err = dst.auth.Login("ada@example.com", "rocket")
	assert.NoError(t, err, "password hash survives the round trip")

	stats, err = NewBackupService(dst.db).ImportFrom(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Zero(t, stats.Users)
	assert.Zero(t, stats.Words)

	require.NoError(t, NewBackupService(dst.db).Clear())
	_, err = dst.scores.GetUser(user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDisabledEmailSkips(t *testing.T) {
	svc, err := NewEmailService(context.Background(), "us-east-1", "", "", "")
	require.NoError(t, err)
	assert.False(t, svc.IsEnabled())
	assert.NoError(t, svc.SendWelcomeEmail(context.Background(), "a@example.com", "Ada"))
}
