package driver

import "fmt"

// ValidationError reports a missing or malformed payload field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s is required", e.Field)
}

// ConflictError reports a duplicate unique handle.
type ConflictError struct {
	Message string
}

func (e ConflictError) Error() string { return e.Message }

// AuthError reports bad credentials or an invalid reset code.
type AuthError struct {
	Message string
}

func (e AuthError) Error() string { return e.Message }

// UnverifiedError blocks sign-in until an administrator verifies the driver.
type UnverifiedError struct{}

func (e UnverifiedError) Error() string {
	return "your account is pending verification; you will be notified once approved"
}

// NotFoundError reports an unknown record.
type NotFoundError struct {
	Message string
}

func (e NotFoundError) Error() string { return e.Message }
