package internal

import "fmt"

// Error kinds, matched with errors.As/Is by callers that need to map a
// failure onto an HTTP status or a user-facing notice.
const (
	KindConfiguration  = "configuration"
	KindAuthentication = "authentication"
	KindValidation     = "validation"
	KindSync           = "sync"
)

type AppError struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return e.Message
}

func NewAppError(code int, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}

func ConfigurationError(msg string) *AppError {
	return &AppError{Code: 500, Kind: KindConfiguration, Message: msg}
}

func AuthenticationError(msg string) *AppError {
	return &AppError{Code: 401, Kind: KindAuthentication, Message: msg}
}

func ValidationError(msg string) *AppError {
	return &AppError{Code: 400, Kind: KindValidation, Message: msg}
}

// SyncError wraps a remote push/pull failure. Sync failures are surfaced as
// transient notices and never roll back local state.
func SyncError(msg string) *AppError {
	return &AppError{Code: 502, Kind: KindSync, Message: msg}
}
