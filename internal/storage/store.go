// Package storage persists the signed-in user on the device.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"spacefun/internal/database"
	"spacefun/internal/models"
	"spacefun/internal/repository"
)

// Keys written by the store.
const (
	KeyUser   = "user"
	KeyUserID = "userId"
	KeyToken  = "token"
)

var ErrStorageReadFailed = errors.New("failed to read local storage")

// Store is a key-value store in a local SQLite file.
type Store struct {
	db       *database.DB
	settings *repository.SettingsRepository
}

// Open opens (creating if needed) the store at path.
func Open(path string) (*Store, error) {
	db, err := database.InitializeLocal(path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate local store: %w", err)
	}
	return &Store{db: db, settings: repository.NewSettingsRepository(db)}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveUser stores the user, its id and the session token.
func (s *Store) SaveUser(user models.User, token string) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	return s.db.WithTx(func(tx *database.Tx) error {
		upsert := tx.GetDialect().UpsertSettings()
		for _, kv := range [][2]string{{KeyUser, string(raw)}, {KeyUserID, user.ID}, {KeyToken, token}} {
			if _, err := tx.Exec(upsert, kv[0], kv[1]); err != nil {
				return fmt.Errorf("failed to save %s: %w", kv[0], err)
			}
		}
		return nil
	})
}

// LoadUser returns the stored user and token. ok is false when nobody is
// signed in. Read and decode failures wrap ErrStorageReadFailed.
func (s *Store) LoadUser() (user models.User, token string, ok bool, err error) {
	raw, found, err := s.settings.LookupSetting(KeyUser)
	if err != nil {
		return models.User{}, "", false, fmt.Errorf("%w: %v", ErrStorageReadFailed, err)
	}
	if !found {
		return models.User{}, "", false, nil
	}
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return models.User{}, "", false, fmt.Errorf("%w: %v", ErrStorageReadFailed, err)
	}
	if err := user.Validate(); err != nil {
		return models.User{}, "", false, fmt.Errorf("%w: %v", ErrStorageReadFailed, err)
	}
	token, _, err = s.settings.LookupSetting(KeyToken)
	if err != nil {
		return models.User{}, "", false, fmt.Errorf("%w: %v", ErrStorageReadFailed, err)
	}
	return user, token, true, nil
}

// UserID returns the stored user id, or "" when nobody is signed in.
func (s *Store) UserID() (string, error) {
	id, _, err := s.settings.LookupSetting(KeyUserID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageReadFailed, err)
	}
	return id, nil
}

// Clear forgets the signed-in user.
func (s *Store) Clear() error {
	return s.settings.DeleteSettings(KeyUser, KeyUserID, KeyToken)
}

// Set stores an arbitrary value.
func (s *Store) Set(key, value string) error {
	return s.settings.SetSetting(key, value)
}
