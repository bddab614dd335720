package security

import "github.com/google/uuid"

// NewUserID creates a new UUID for a player account
func NewUserID() string {
	return uuid.New().String()
}

// NewTokenID creates a unique id for a login token
func NewTokenID() string {
	return uuid.New().String()
}
