package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs an error code with a user-facing message.
type ErrorInfo struct {
	Code    string
	Message string
}

// IsDuplicateKey reports whether err is a unique-constraint violation, from
// either Postgres (23505) or the SQLite driver used in tests. The payout
// processor relies on this to turn a double confirmation into a conflict.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique failed")
}

// ParseError converts a low-level error to a code + message safe to show.
// Sensitive driver details stay out of the response.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "Something went wrong"}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: notFoundMessage(context)}
	}

	if IsDuplicateKey(err) {
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "This record already exists"}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "foreign key constraint") {
		return ErrorInfo{Code: ResourceConflict, Message: "A related record prevents this operation"}
	}
	if strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "timeout") {
		return ErrorInfo{Code: InternalDatabaseError, Message: "Storage backend is unavailable. Please try again later"}
	}

	return ErrorInfo{Code: InternalServerError, Message: "Something went wrong"}
}

// ParseAndRespond maps err through ParseError and writes the response.
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}

func notFoundMessage(context string) string {
	switch context {
	case "franchise":
		return "Franchise not found"
	case "payout":
		return "Payout record not found"
	case "content":
		return "Content section not found"
	case "training":
		return "Training module not found"
	case "lead":
		return "Lead not found"
	default:
		return "Requested record not found"
	}
}
