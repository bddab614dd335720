package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spacefun/internal/models"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "local.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoadClear(t *testing.T) {
	s := openStore(t)

	_, _, ok, err := s.LoadUser()
	require.NoError(t, err)
	assert.False(t, ok)

	u := models.User{ID: "u-1", ChildName: "Ada", Score: 7, Achievements: []string{"Mercury Explorer"}}
	require.NoError(t, s.SaveUser(u, "tok"))

	got, token, ok, err := s.LoadUser()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Ada", got.ChildName)
	assert.Equal(t, 7, got.Score)
	assert.Equal(t, "tok", token)

	id, err := s.UserID()
	require.NoError(t, err)
	assert.Equal(t, "u-1", id)

	require.NoError(t, s.Clear())
	_, _, ok, err = s.LoadUser()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCorruptUserIsReadFailure(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Set(KeyUser, "{not json"))

	_, _, ok, err := s.LoadUser()
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrStorageReadFailed)
}

func TestReopenKeepsUser(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveUser(models.User{ID: "u-9", ChildName: "Sam"}, ""))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	u, _, ok, err := s.LoadUser()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "u-9", u.ID)
}

func TestStoreHoldsOnlySettings(t *testing.T) {
	s := openStore(t)

	rows, err := s.db.Query("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	require.NoError(t, err)
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		tables = append(tables, name)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"migrations", "settings"}, tables)
}
