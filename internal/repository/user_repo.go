package repository

import (
	"database/sql"
	"fmt"
	"time"

	"spacefun/internal/database"
	"spacefun/internal/models"
)

// UserRepository handles database operations for player accounts
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, child_name, child_age, email, password_hash, avatar, score, created_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.ChildName,
		&user.ChildAge,
		&user.Email,
		&user.PasswordHash,
		&user.Avatar,
		&user.Score,
		&user.CreatedAt,
	)
	return user, err
}

// CreateUser inserts a new user. The caller assigns the ID.
func (r *UserRepository) CreateUser(user *models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO users (id, child_name, child_age, email, password_hash, avatar, score, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query, user.ID, user.ChildName, user.ChildAge, user.Email,
		user.PasswordHash, user.Avatar, user.Score, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves a user by email address. Returns nil, nil when
// there is no such user.
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	user, err := scanUser(r.db.QueryRow(query, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves a user with their achievement ids. Returns nil, nil
// when there is no such user.
func (r *UserRepository) GetUserByID(id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	user, err := scanUser(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	ids, err := r.GetAchievementIDs(id)
	if err != nil {
		return nil, err
	}
	user.Achievements = ids
	return user, nil
}

// EmailExists reports whether an account uses email
func (r *UserRepository) EmailExists(email string) (bool, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

// AddScore adds delta to a user's score and records the given achievement
// ids in one transaction. unlock is called with the score before and after
// the update and returns the achievement ids to record. Returns the new
// score, or sql.ErrNoRows when the user does not exist.
func (r *UserRepository) AddScore(id string, delta int, unlock func(before, after int) []string) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Increment in SQL; the row stays locked until commit.
	query := `UPDATE users SET score = CASE WHEN score + ? < 0 THEN 0 ELSE score + ? END, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := tx.Exec(query, delta, delta, id)
	if err != nil {
		return 0, fmt.Errorf("failed to update score: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return 0, sql.ErrNoRows
	}

	var after int
	if err := tx.QueryRow(`SELECT score FROM users WHERE id = ?`, id).Scan(&after); err != nil {
		return 0, err
	}
	before := after - delta
	if before < 0 {
		before = 0
	}

	if unlock != nil {
		insert := tx.GetDialect().InsertIgnore("user_achievements", "user_id", "achievement_id")
		for _, achievementID := range unlock(before, after) {
			if _, err := tx.Exec(insert, id, achievementID); err != nil {
				return 0, fmt.Errorf("failed to record achievement: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return after, nil
}

// GetAchievementIDs lists a user's unlocked achievement ids, oldest first
func (r *UserRepository) GetAchievementIDs(userID string) ([]string, error) {
	query := `
		SELECT achievement_id FROM user_achievements
		WHERE user_id = ?
		ORDER BY unlocked_at, achievement_id
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get achievements: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetLeaderboard returns the top players by score
func (r *UserRepository) GetLeaderboard(limit int) ([]models.LeaderboardEntry, error) {
	query := `
		SELECT child_name, score, avatar FROM users
		ORDER BY score DESC, created_at ASC
		LIMIT ?
	`
	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []models.LeaderboardEntry{}
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.ChildName, &e.Score, &e.Avatar); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ListUsers returns every user with achievement ids, for backups
func (r *UserRepository) ListUsers() ([]models.User, error) {
	rows, err := r.db.Query(`SELECT ` + userColumns + ` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range users {
		ids, err := r.GetAchievementIDs(users[i].ID)
		if err != nil {
			return nil, err
		}
		users[i].Achievements = ids
	}
	return users, nil
}

// ImportUser inserts a user with its achievement ids, skipping rows that
// already exist. Reports whether the user row was new.
func (r *UserRepository) ImportUser(user models.User) (bool, error) {
	var inserted bool
	err := r.db.WithTx(func(tx *database.Tx) error {
		insert := tx.GetDialect().InsertIgnore("users",
			"id", "child_name", "child_age", "email", "password_hash", "avatar", "score", "created_at")
		res, err := tx.Exec(insert, user.ID, user.ChildName, user.ChildAge, user.Email,
			user.PasswordHash, user.Avatar, user.Score, user.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import user %s: %w", user.ID, err)
		}
		n, _ := res.RowsAffected()
		inserted = n > 0

		achInsert := tx.GetDialect().InsertIgnore("user_achievements", "user_id", "achievement_id")
		for _, id := range user.Achievements {
			if _, err := tx.Exec(achInsert, user.ID, id); err != nil {
				return fmt.Errorf("failed to import achievement %s: %w", id, err)
			}
		}
		return nil
	})
	return inserted, err
}
