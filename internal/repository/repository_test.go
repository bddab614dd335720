package repository

import (
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spacefun/internal/database"
	"spacefun/internal/models"
)

func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Initialize(filepath.Join(t.TempDir(), "repo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations())
	return db
}

func newUser(id, email string, score int) *models.User {
	return &models.User{
		ID:           id,
		ChildName:    "Kid " + id,
		ChildAge:     7,
		Email:        email,
		PasswordHash: "hash",
		Avatar:       "rocket",
		Score:        score,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
}

func TestUserLifecycle(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))

	require.NoError(t, repo.CreateUser(newUser("u1", "a@example.com", 0)))
	assert.Error(t, repo.CreateUser(newUser("u2", "a@example.com", 0)), "email must be unique")

	u, err := repo.GetUserByEmail("a@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "hash", u.PasswordHash)

	missing, err := repo.GetUserByID("nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	exists, err := repo.EmailExists("a@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestAddScoreRecordsAchievements(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	require.NoError(t, repo.CreateUser(newUser("u1", "a@example.com", 9)))

	var gotBefore, gotAfter int
	score, err := repo.AddScore("u1", 1, func(before, after int) []string {
		gotBefore, gotAfter = before, after
		return []string{"venus-voyager"}
	})
	require.NoError(t, err)
	assert.Equal(t, 10, score)
	assert.Equal(t, 9, gotBefore)
	assert.Equal(t, 10, gotAfter)

	// Recording the same achievement twice is harmless.
	_, err = repo.AddScore("u1", 1, func(int, int) []string { return []string{"venus-voyager"} })
	require.NoError(t, err)

	u, err := repo.GetUserByID("u1")
	require.NoError(t, err)
	assert.Equal(t, 11, u.Score)
	assert.Equal(t, []string{"venus-voyager"}, u.Achievements)

	_, err = repo.AddScore("ghost", 1, nil)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestAddScoreConcurrent(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	require.NoError(t, repo.CreateUser(newUser("u1", "a@example.com", 0)))

	var wg sync.WaitGroup
	var mu sync.Mutex
	failures := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.AddScore("u1", 1, nil); err != nil {
				mu.Lock()
				failures++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	u, err := repo.GetUserByID("u1")
	require.NoError(t, err)
	assert.Zero(t, failures)
	assert.Equal(t, 20, u.Score)
}

func TestLeaderboardOrder(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	require.NoError(t, repo.CreateUser(newUser("u1", "a@example.com", 5)))
	require.NoError(t, repo.CreateUser(newUser("u2", "b@example.com", 50)))
	require.NoError(t, repo.CreateUser(newUser("u3", "c@example.com", 20)))

	board, err := repo.GetLeaderboard(2)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, 50, board[0].Score)
	assert.Equal(t, 20, board[1].Score)
}

func TestImportUserSkipsExisting(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	u := newUser("u1", "a@example.com", 3)
	u.Achievements = []string{"mercury-explorer"}

	inserted, err := repo.ImportUser(*u)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.ImportUser(*u)
	require.NoError(t, err)
	assert.False(t, inserted)

	users, err := repo.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, []string{"mercury-explorer"}, users[0].Achievements)
}

func TestWordRepository(t *testing.T) {
	repo := NewWordRepository(openTestDB(t))
	records := []models.WordRecord{
		{Word: "cat", Hint: "pet", Level: models.LevelPreK},
		{Word: "dog", Hint: "pet", Level: models.LevelPreK},
		{Word: "orbit", Hint: "path", Level: models.Level2nd},
	}

	added, err := repo.SeedWords(records)
	require.NoError(t, err)
	assert.Equal(t, 3, added)

	added, err = repo.SeedWords(records)
	require.NoError(t, err)
	assert.Zero(t, added)

	n, err := repo.CountWords()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	w, err := repo.GetWordAt(2)
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, "orbit", w.Word)

	w, err = repo.GetWordAt(3)
	require.NoError(t, err)
	assert.Nil(t, w)

	prek, err := repo.GetWordsByLevel(models.LevelPreK)
	require.NoError(t, err)
	assert.Len(t, prek, 2)

	none, err := repo.GetWordsByLevel(models.Level6th)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSettings(t *testing.T) {
	repo := NewSettingsRepository(openTestDB(t))

	_, err := repo.GetSetting("missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	require.NoError(t, repo.SetSetting("user", "a"))
	require.NoError(t, repo.SetSetting("user", "b"))
	v, ok, err := repo.LookupSetting("user")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "b", v)

	require.NoError(t, repo.DeleteSettings("user", "missing"))
	_, ok, err = repo.LookupSetting("user")
	require.NoError(t, err)
	assert.False(t, ok)
}
