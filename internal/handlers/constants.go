package handlers

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 1 << 16

const (
	ErrInvalidBody           = "Invalid request body"
	ErrUnauthorized          = "Unauthorized"
	ErrForbidden             = "Forbidden"
	ErrTooManyRequests       = "Too many requests. Please try again later."
	ErrInternalServerError   = "Internal server error"
	ErrUserNotFound          = "User not found"
	ErrNoWordsAvailable      = "No words available"
	ErrInvalidEmailPassword  = "Invalid email or password"
	ErrMissingUserID         = "userId is required"
	MsgScoreUpdated          = "Score updated"
	MsgRegistrationSucceeded = "Registration successful"
)
