package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by agents.
const (
	// Config errors
	ErrConfigInvalid = "CONFIG_INVALID"

	// Dataset errors
	ErrDataNotFound  = "DATA_NOT_FOUND"
	ErrDataInvalid   = "DATA_INVALID"
	ErrFileReadError = "FILE_READ_ERROR"

	// Database errors
	ErrDatabaseError = "DATABASE_ERROR"

	// Query errors
	ErrQueryNotFound = "QUERY_NOT_FOUND"
	ErrQueryInvalid  = "QUERY_INVALID"
	ErrDuplicateName = "DUPLICATE_NAME"

	// Docs errors
	ErrTopicNotFound = "TOPIC_NOT_FOUND"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnInvalidStatement   = "INVALID_STATEMENT"
	WarnMalformedReference = "MALFORMED_REFERENCE"
	WarnDanglingReference  = "DANGLING_REFERENCE"
	WarnDuplicateStatement = "DUPLICATE_STATEMENT"
	WarnShadowedAttribute  = "SHADOWED_ATTRIBUTE"
)
