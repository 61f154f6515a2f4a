package server

const (
	// Validation (1xxx)
	ErrCodeInvalidArgument = 1000
	ErrCodeInvalidJSON     = 1001
	ErrCodeRequestTooLarge = 1002
	ErrCodeInvalidID       = 1003
	ErrCodeInvalidStatus   = 1004
	ErrCodeInvalidType     = 1005
	ErrCodeInvalidPriority = 1006
	ErrCodeMissingRequired = 1007
	ErrCodeInvalidItems    = 1008
	ErrCodeInvalidYear     = 1009

	// Domain state (2xxx)
	ErrCodeProjectNotFound = 2001
	ErrCodeProjectIDExists = 2101
	ErrCodeConflict        = 2102

	// Auth & limits (3xxx)
	ErrCodeUnauthorized      = 3001
	ErrCodeResourceExhausted = 3003

	// Internal/system (4xxx)
	ErrCodeInternal       = 4001
	ErrCodeStoreFailure   = 4002
	ErrCodeNotImplemented = 4005
	ErrCodeJiraUpstream   = 4006
)

func defaultErrorCodeByStatus(status int) int {
	switch status {
	case 400:
		return ErrCodeInvalidArgument
	case 401:
		return ErrCodeUnauthorized
	case 404:
		return ErrCodeProjectNotFound
	case 409:
		return ErrCodeConflict
	case 429:
		return ErrCodeResourceExhausted
	case 500:
		return ErrCodeInternal
	case 501:
		return ErrCodeNotImplemented
	case 502:
		return ErrCodeJiraUpstream
	default:
		return 0
	}
}
