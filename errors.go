package gatehouse

// Error codes attached to AuthError values
const (
	ErrCodeMissingField      = "missing_field"
	ErrCodeIncorrectUsername = "incorrect_username"
	ErrCodeIncorrectPassword = "incorrect_password"
	ErrCodeUsernameTaken     = "username_taken"
)

// AuthError is a terminal authentication/signup failure with a machine
// readable code.  The code distinguishes "incorrect username" from
// "incorrect password" for operator logs only - the HTTP layer never shows
// the distinction to the end user (both redirect identically), to avoid
// user-enumeration leakage.
type AuthError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *AuthError) Error() string {
	return e.Message
}

// NewAuthError creates an AuthError with the given code, message and field
func NewAuthError(code, message, field string) *AuthError {
	return &AuthError{Code: code, Message: message, Field: field}
}
