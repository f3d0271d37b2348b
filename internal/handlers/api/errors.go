package api

// HandlerError is a custom error type for request-level errors
type HandlerError string

// Error implements the error interface
func (e HandlerError) Error() string {
	return string(e)
}

// Define errors
const (
	errInvalidCredentials HandlerError = "invalid password"
	errSessionRequired    HandlerError = "session token required"
	errWrongCelebration   HandlerError = "session belongs to a different celebration"
	errAdminRequired      HandlerError = "admin session required"
	errCodenameRequired   HandlerError = "codename not chosen for this session"
	errBadRequest         HandlerError = "invalid request"
)
