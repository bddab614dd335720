package service

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"spacefun/internal/database"
	"spacefun/internal/models"
	"spacefun/internal/repository"
)

// BackupVersion is written into every export.
const BackupVersion = "1.0"

// BackupData represents the complete database backup structure
type BackupData struct {
	Version      string              `json:"version"`
	ExportedAt   time.Time           `json:"exported_at"`
	DatabaseType string              `json:"database_type"`
	Users        []UserBackup        `json:"users"`
	Words        []models.WordRecord `json:"words"`
}

// UserBackup is a user row including the password hash and achievement ids
type UserBackup struct {
	ID           string    `json:"id"`
	ChildName    string    `json:"child_name"`
	ChildAge     int       `json:"child_age"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Avatar       string    `json:"avatar"`
	Score        int       `json:"score"`
	Achievements []string  `json:"achievements"`
	CreatedAt    time.Time `json:"created_at"`
}

// ImportStats counts what an import added
type ImportStats struct {
	Users int
	Words int
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db       *database.DB
	userRepo *repository.UserRepository
	wordRepo *repository.WordRepository
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{
		db:       db,
		userRepo: repository.NewUserRepository(db),
		wordRepo: repository.NewWordRepository(db),
	}
}

// Export writes a complete backup to outputPath
func (s *BackupService) Export(outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer f.Close()

	if err := s.ExportTo(f); err != nil {
		return err
	}
	return f.Close()
}

// ExportTo writes a complete backup as JSON to w
func (s *BackupService) ExportTo(w io.Writer) error {
	log.Info().Msg("Starting database export")

	backup := &BackupData{
		Version:      BackupVersion,
		ExportedAt:   time.Now().UTC(),
		DatabaseType: s.db.Dialect.MigrationsSubdir(),
	}

	users, err := s.userRepo.ListUsers()
	if err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}
	for _, u := range users {
		backup.Users = append(backup.Users, UserBackup{
			ID:           u.ID,
			ChildName:    u.ChildName,
			ChildAge:     u.ChildAge,
			Email:        u.Email,
			PasswordHash: u.PasswordHash,
			Avatar:       u.Avatar,
			Score:        u.Score,
			Achievements: u.Achievements,
			CreatedAt:    u.CreatedAt,
		})
	}

	backup.Words, err = s.wordRepo.ListWords()
	if err != nil {
		return fmt.Errorf("failed to export words: %w", err)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(backup); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}

	log.Info().Int("users", len(backup.Users)).Int("words", len(backup.Words)).Msg("Export complete")
	return nil
}

// Import merges a backup file into the database
func (s *BackupService) Import(inputPath string) (ImportStats, error) {
	f, err := os.Open(inputPath)
	if err != nil {
		return ImportStats{}, fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()
	return s.ImportFrom(f)
}

// ImportFrom merges a JSON backup into the database. Existing users and
// words are kept.
func (s *BackupService) ImportFrom(r io.Reader) (ImportStats, error) {
	var backup BackupData
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return ImportStats{}, fmt.Errorf("failed to parse backup: %w", err)
	}
	if backup.Version != BackupVersion {
		return ImportStats{}, fmt.Errorf("unsupported backup version %q", backup.Version)
	}

	log.Info().Str("exported_at", backup.ExportedAt.Format(time.RFC3339)).Str("source", backup.DatabaseType).Msg("Starting database import")

	var stats ImportStats
	for _, w := range backup.Words {
		if err := w.Validate(); err != nil {
			return stats, fmt.Errorf("invalid word in backup: %w", err)
		}
	}
	added, err := s.wordRepo.SeedWords(backup.Words)
	if err != nil {
		return stats, err
	}
	stats.Words = added

	for _, u := range backup.Users {
		inserted, err := s.userRepo.ImportUser(models.User{
			ID:           u.ID,
			ChildName:    u.ChildName,
			ChildAge:     u.ChildAge,
			Email:        u.Email,
			PasswordHash: u.PasswordHash,
			Avatar:       u.Avatar,
			Score:        u.Score,
			Achievements: u.Achievements,
			CreatedAt:    u.CreatedAt,
		})
		if err != nil {
			return stats, err
		}
		if inserted {
			stats.Users++
		}
	}

	log.Info().Int("users", stats.Users).Int("words", stats.Words).Msg("Import complete")
	return stats, nil
}

// Clear deletes every user and word
func (s *BackupService) Clear() error {
	return s.db.WithTx(func(tx *database.Tx) error {
		for _, table := range []string{"user_achievements", "users", "words"} {
			if _, err := tx.Exec("DELETE FROM " + table); err != nil {
				return fmt.Errorf("failed to clear table %s: %w", table, err)
			}
			log.Info().Str("table", table).Msg("Cleared table")
		}
		return nil
	})
}
