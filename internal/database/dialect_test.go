package database

import (
	"testing"
)

func TestDialectSQLite(t *testing.T) {
	t.Run("DriverName", func(t *testing.T) {
		if got := NewSQLiteDialect().DriverName(); got != "sqlite3" {
			t.Errorf("DriverName() = %v, want %v", got, "sqlite3")
		}
		if got := NewPureSQLiteDialect().DriverName(); got != "sqlite" {
			t.Errorf("pure DriverName() = %v, want %v", got, "sqlite")
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		if got := NewPureSQLiteDialect().MigrationsSubdir(); got != "local" {
			t.Errorf("MigrationsSubdir() = %v, want %v", got, "local")
		}
		if got := NewSQLiteDialect().MigrationsSubdir(); got != "sqlite" {
			t.Errorf("MigrationsSubdir() = %v, want %v", got, "sqlite")
		}
	})
}

func TestDialectPostgreSQL(t *testing.T) {
	dialect := NewPostgresDialect()

	t.Run("DriverName", func(t *testing.T) {
		if got := dialect.DriverName(); got != "postgres" {
			t.Errorf("DriverName() = %v, want %v", got, "postgres")
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		if got := dialect.MigrationsSubdir(); got != "postgres" {
			t.Errorf("MigrationsSubdir() = %v, want %v", got, "postgres")
		}
	})
}

func TestDialectMySQL(t *testing.T) {
	dialect := NewMySQLDialect()

	t.Run("DriverName", func(t *testing.T) {
		if got := dialect.DriverName(); got != "mysql" {
			t.Errorf("DriverName() = %v, want %v", got, "mysql")
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		if got := dialect.MigrationsSubdir(); got != "mysql" {
			t.Errorf("MigrationsSubdir() = %v, want %v", got, "mysql")
		}
	})
}

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "SQLite no change",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT * FROM users WHERE id = ?",
			expected: "SELECT * FROM users WHERE id = ?",
		},
		{
			name:     "PostgreSQL single placeholder",
			dialect:  NewPostgresDialect(),
			query:    "SELECT * FROM users WHERE id = ?",
			expected: "SELECT * FROM users WHERE id = $1",
		},
		{
			name:     "PostgreSQL multiple placeholders",
			dialect:  NewPostgresDialect(),
			query:    "UPDATE users SET score = score + ? WHERE id = ?",
			expected: "UPDATE users SET score = score + $1 WHERE id = $2",
		},
		{
			name:     "MySQL no change",
			dialect:  NewMySQLDialect(),
			query:    "UPDATE users SET child_name = ?, avatar = ? WHERE id = ?",
			expected: "UPDATE users SET child_name = ?, avatar = ? WHERE id = ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.dialect.RewriteQuery(tt.query)
			if result != tt.expected {
				t.Errorf("RewriteQuery() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestInsertIgnore(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		expected string
	}{
		{
			name:     "SQLite",
			dialect:  NewSQLiteDialect(),
			expected: "INSERT OR IGNORE INTO words (word, hint, level) VALUES (?, ?, ?)",
		},
		{
			name:     "PostgreSQL",
			dialect:  NewPostgresDialect(),
			expected: "INSERT INTO words (word, hint, level) VALUES (?, ?, ?) ON CONFLICT DO NOTHING",
		},
		{
			name:     "MySQL",
			dialect:  NewMySQLDialect(),
			expected: "INSERT IGNORE INTO words (word, hint, level) VALUES (?, ?, ?)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.dialect.InsertIgnore("words", "word", "hint", "level")
			if got != tt.expected {
				t.Errorf("InsertIgnore() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSplitStatements(t *testing.T) {
	content := `-- leading comment
CREATE TABLE a (id INTEGER);

CREATE TABLE b (id INTEGER);
`
	stmts := splitStatements(content)
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d: %q", len(stmts), stmts)
	}
	if stmts[0] != "CREATE TABLE a (id INTEGER)" {
		t.Errorf("unexpected first statement %q", stmts[0])
	}
}
