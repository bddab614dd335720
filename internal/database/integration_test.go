package database

import (
	"database/sql"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T, local bool) *DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	var (
		db  *DB
		err error
	)
	if local {
		db, err = InitializeLocal(dbPath)
	} else {
		db, err = Initialize(dbPath)
	}
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.RunMigrations())
	return db
}

// TestDatabaseIntegration tests the complete database lifecycle on both SQLite drivers
func TestDatabaseIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, local := range []bool{false, true} {
		db := openTestDB(t, local)

		tables := []string{"users", "user_achievements", "words", "bad_words", "settings"}
		for _, table := range tables {
			var name string
			err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
			if local && table != "settings" {
				assert.ErrorIs(t, err, sql.ErrNoRows, "table %s should not exist locally", table)
				continue
			}
			assert.NoError(t, err, "table %s (local=%v)", table, local)
		}

		// Running again must be a no-op.
		require.NoError(t, db.RunMigrations())
	}
}

// TestDatabaseTransactions tests transaction support
func TestDatabaseTransactions(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t, false)

	insert := "INSERT INTO words (word, hint, level) VALUES (?, ?, ?)"

	err := db.WithTx(func(tx *Tx) error {
		_, err := tx.Exec(insert, "cat", "A small pet", "prek")
		return err
	})
	require.NoError(t, err)

	err = db.WithTx(func(tx *Tx) error {
		if _, err := tx.Exec(insert, "dog", "Another pet", "prek"); err != nil {
			return err
		}
		// Duplicate word violates the unique constraint and rolls back "dog".
		_, err := tx.Exec(insert, "cat", "dup", "prek")
		return err
	})
	require.Error(t, err)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM words").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestBadWords(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t, false)

	added, err := db.LoadBadWords(strings.NewReader("Darn\n\nheck\nheck\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	bad, err := db.IsBadWord("  DARN ")
	require.NoError(t, err)
	assert.True(t, bad)

	bad, err = db.ContainsBadWord("Little heck")
	require.NoError(t, err)
	assert.True(t, bad)

	bad, err = db.ContainsBadWord("Lily")
	require.NoError(t, err)
	assert.False(t, bad)
}

// TestConcurrentAccess tests concurrent database access
func TestConcurrentAccess(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t, false)

	_, err := db.Exec("INSERT INTO words (word, hint, level) VALUES (?, ?, ?)", "moon", "Earth's satellite", "prek")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var level string
			if err := db.QueryRow("SELECT level FROM words WHERE word = ?", "moon").Scan(&level); err != nil {
				t.Errorf("Concurrent read failed: %v", err)
				return
			}
			if level != "prek" {
				t.Errorf("Expected level 'prek', got '%s'", level)
			}
		}()
	}
	wg.Wait()
}
