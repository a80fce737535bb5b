package constants

// Session
const (
	SessionCookieName   = "taskboard_session"
	SessionMaxAge       = 86400 * 30 // 30 days
	ContextKeyUserID    = "user_id"
	ContextKeyRequestID = "request_id"
)

// Pagination
const (
	MinPage         = 1
	DefaultPageSize = 10
	MaxPageSize     = 1000
)

// Validation bounds
const (
	MinPasswordLength    = 8
	MaxPasswordLength    = 100
	MaxNameLength        = 255
	MaxDescriptionLength = 1000
	MaxDisplayNameLength = 100
)
