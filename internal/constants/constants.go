package constants

import "time"

// Context and session keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyUserEmail = "user_email"
	SessionCookieName   = "tasktrack_session"
)

// Authentication
const (
	MinPasswordLength  = 6
	DefaultTokenExpiry = 24 * time.Hour
	BearerPrefix       = "Bearer "
)

// Statistics
const (
	RecentUsersWindow = 30 * 24 * time.Hour
)
