package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"spacefun/internal/database"
)

// SettingsRepository is a string key-value table. The server keeps runtime
// flags in it and the client device store keeps the signed-in user.
type SettingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetSetting retrieves a setting value by key. A missing key returns
// sql.ErrNoRows.
func (r *SettingsRepository) GetSetting(key string) (string, error) {
	var value string
	query := `SELECT setting_value FROM settings WHERE setting_key = ?`
	err := r.db.QueryRow(query, key).Scan(&value)
	return value, err
}

// LookupSetting is GetSetting with the missing case folded into ok.
func (r *SettingsRepository) LookupSetting(key string) (string, bool, error) {
	value, err := r.GetSetting(key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, true, nil
}

// SetSetting updates or inserts a setting
func (r *SettingsRepository) SetSetting(key, value string) error {
	query := r.db.Dialect.UpsertSettings()
	_, err := r.db.Exec(query, key, value)
	return err
}

// DeleteSettings removes the given keys. Missing keys are ignored.
func (r *SettingsRepository) DeleteSettings(keys ...string) error {
	return r.db.WithTx(func(tx *database.Tx) error {
		for _, key := range keys {
			if _, err := tx.Exec(`DELETE FROM settings WHERE setting_key = ?`, key); err != nil {
				return fmt.Errorf("failed to delete setting %s: %w", key, err)
			}
		}
		return nil
	})
}
