package constants

// Context keys
const (
	ContextKeyUserID = "user_id"
	ContextKeyUser   = "current_user"
)

// Pagination
const (
	DefaultPageSize = 100
	MaxPageSize     = 500
)

// Validation
const (
	MinPasswordLength = 8
)

// AI task generation
const (
	MaxGeneratedTasks = 20
)
