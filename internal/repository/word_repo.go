package repository

import (
	"database/sql"
	"fmt"

	"spacefun/internal/database"
	"spacefun/internal/models"
)

// WordRepository handles the puzzle word table
type WordRepository struct {
	db *database.DB
}

// NewWordRepository creates a new word repository
func NewWordRepository(db *database.DB) *WordRepository {
	return &WordRepository{db: db}
}

// SeedWords inserts records that are not present yet and returns how many
// were added.
func (r *WordRepository) SeedWords(records []models.WordRecord) (int, error) {
	added := 0
	err := r.db.WithTx(func(tx *database.Tx) error {
		insert := tx.GetDialect().InsertIgnore("words", "word", "hint", "level")
		for _, w := range records {
			res, err := tx.Exec(insert, w.Word, w.Hint, w.Level)
			if err != nil {
				return fmt.Errorf("failed to insert word %s: %w", w.Word, err)
			}
			if n, _ := res.RowsAffected(); n > 0 {
				added++
			}
		}
		return nil
	})
	return added, err
}

// CountWords returns the number of words in the table
func (r *WordRepository) CountWords() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM words`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count words: %w", err)
	}
	return n, nil
}

// GetWordAt returns the word at a zero-based position in insertion order.
// Returns nil, nil when index is out of range.
func (r *WordRepository) GetWordAt(index int) (*models.WordRecord, error) {
	query := `SELECT word, hint, level FROM words ORDER BY id LIMIT 1 OFFSET ?`
	w := &models.WordRecord{}
	err := r.db.QueryRow(query, index).Scan(&w.Word, &w.Hint, &w.Level)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word: %w", err)
	}
	return w, nil
}

// GetWordsByLevel returns every word tagged with level
func (r *WordRepository) GetWordsByLevel(level string) ([]models.WordRecord, error) {
	query := `SELECT word, hint, level FROM words WHERE level = ? ORDER BY id`
	return r.queryWords(query, level)
}

// ListWords returns every word in insertion order
func (r *WordRepository) ListWords() ([]models.WordRecord, error) {
	return r.queryWords(`SELECT word, hint, level FROM words ORDER BY id`)
}

func (r *WordRepository) queryWords(query string, args ...interface{}) ([]models.WordRecord, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query words: %w", err)
	}
	defer rows.Close()

	var out []models.WordRecord
	for rows.Next() {
		var w models.WordRecord
		if err := rows.Scan(&w.Word, &w.Hint, &w.Level); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
