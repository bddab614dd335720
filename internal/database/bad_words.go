package database

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultBadWordsURL is the public list used to screen child display names.
const DefaultBadWordsURL = "https://raw.githubusercontent.com/LDNOOBW/List-of-Dirty-Naughty-Obscene-and-Otherwise-Bad-Words/refs/heads/master/en"

// SeedBadWords downloads the bad words list once; later calls are no-ops
// while the table is populated.
func (db *DB) SeedBadWords(ctx context.Context, url string) error {
	if url == "" {
		url = DefaultBadWordsURL
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM bad_words").Scan(&count); err != nil {
		return fmt.Errorf("failed to check bad words count: %w", err)
	}
	if count > 0 {
		log.Debug().Int("count", count).Msg("bad words filter already populated")
		return nil
	}

	log.Info().Str("url", url).Msg("downloading bad words list")

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build bad words request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download bad words list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status code from bad words URL: %d", resp.StatusCode)
	}

	added, err := db.LoadBadWords(resp.Body)
	if err != nil {
		return err
	}

	log.Info().Int("count", added).Msg("bad words filter populated")
	return nil
}

// LoadBadWords inserts one word per line from r, skipping blanks and duplicates.
func (db *DB) LoadBadWords(r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	added := 0

	err := db.WithTx(func(tx *Tx) error {
		query := db.Dialect.InsertIgnore("bad_words", "word")
		for scanner.Scan() {
			word := strings.TrimSpace(strings.ToLower(scanner.Text()))
			if word == "" {
				continue
			}
			res, err := tx.Exec(query, word)
			if err != nil {
				return fmt.Errorf("failed to insert bad word: %w", err)
			}
			if n, _ := res.RowsAffected(); n > 0 {
				added++
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("error reading bad words: %w", err)
		}
		return nil
	})
	return added, err
}

// IsBadWord checks if a word is in the bad words list
func (db *DB) IsBadWord(word string) (bool, error) {
	cleanWord := strings.TrimSpace(strings.ToLower(word))

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM bad_words WHERE word = ?", cleanWord).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check bad word: %w", err)
	}

	if count > 0 {
		log.Warn().Str("word", word).Msg("bad word detected")
	}

	return count > 0, nil
}

// ContainsBadWord reports whether any whitespace-separated token of text is
// on the bad words list.
func (db *DB) ContainsBadWord(text string) (bool, error) {
	for _, token := range strings.Fields(text) {
		bad, err := db.IsBadWord(token)
		if err != nil {
			return false, err
		}
		if bad {
			return true, nil
		}
	}
	return false, nil
}
