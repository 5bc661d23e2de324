package errors

import "fmt"

// ErrorCode represents a linkboard error code.
type ErrorCode string

const (
	ErrInvalidRequest   ErrorCode = "INVALID_REQUEST"   // 400
	ErrPageNotFound     ErrorCode = "PAGE_NOT_FOUND"    // 404
	ErrMissingContainer ErrorCode = "MISSING_CONTAINER" // 404
	ErrMissingCategory  ErrorCode = "MISSING_CATEGORY"  // 404
	ErrDuplicateKey     ErrorCode = "DUPLICATE_KEY"     // 409
	ErrConflict         ErrorCode = "CONFLICT"          // 409 (opt-in last-modified guard)
	ErrMarkerNotFound   ErrorCode = "MARKER_NOT_FOUND"  // 422
	ErrTransport        ErrorCode = "TRANSPORT_FAILURE" // 502
	ErrRemote           ErrorCode = "REMOTE_ERROR"      // 502
	ErrUpdateRejected   ErrorCode = "UPDATE_REJECTED"   // 502
	ErrInternal         ErrorCode = "INTERNAL"          // 500
)

// BoardError represents a structured error with code, status, and details.
// Every failure is scoped to a single operation; there is no fatal class.
type BoardError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *BoardError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *BoardError {
	return &BoardError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewPageNotFound creates a 404 error for a missing wiki page.
func NewPageNotFound(pageID int) *BoardError {
	return &BoardError{
		Code:    ErrPageNotFound,
		Status:  404,
		Message: fmt.Sprintf("wiki page not found: %d", pageID),
		Details: map[string]any{"page_id": pageID},
	}
}

// NewMissingContainer creates a 404 error for a category creation whose
// target container does not exist.
func NewMissingContainer(key string) *BoardError {
	return &BoardError{
		Code:    ErrMissingContainer,
		Status:  404,
		Message: fmt.Sprintf("container %q does not exist", key),
		Details: map[string]any{"container_key": key},
	}
}

// NewMissingCategory creates a 404 error for a link targeting an absent
// or underivable category.
func NewMissingCategory(key string) *BoardError {
	return &BoardError{
		Code:    ErrMissingCategory,
		Status:  404,
		Message: fmt.Sprintf("category %q does not exist", key),
		Details: map[string]any{"category_key": key},
	}
}

// NewDuplicateKey creates a 409 error for container/category key collisions.
func NewDuplicateKey(kind, key string) *BoardError {
	return &BoardError{
		Code:    ErrDuplicateKey,
		Status:  409,
		Message: fmt.Sprintf("%s with key %q already exists", kind, key),
		Details: map[string]any{"kind": kind, "key": key},
	}
}

// NewConflict creates a 409 error when the remote page changed since it was
// last seen locally.
func NewConflict(msg string) *BoardError {
	return &BoardError{
		Code:    ErrConflict,
		Status:  409,
		Message: msg,
	}
}

// NewMarkerNotFound creates a 422 error for a structural marker absent from
// the document. Usually means the page was hand-edited outside linkboard's
// conventions.
func NewMarkerNotFound(marker string) *BoardError {
	return &BoardError{
		Code:    ErrMarkerNotFound,
		Status:  422,
		Message: fmt.Sprintf("expected marker %q not found in document", marker),
		Details: map[string]any{"marker": marker},
	}
}

// NewTransport creates a 502 error for non-2xx HTTP or malformed responses.
func NewTransport(msg string) *BoardError {
	return &BoardError{
		Code:    ErrTransport,
		Status:  502,
		Message: msg,
	}
}

// NewRemote creates a 502 error carrying a GraphQL-level error list.
func NewRemote(messages []string) *BoardError {
	msg := "remote API returned errors"
	if len(messages) > 0 {
		msg = messages[0]
	}
	return &BoardError{
		Code:    ErrRemote,
		Status:  502,
		Message: msg,
		Details: map[string]any{"errors": messages},
	}
}

// NewUpdateRejected creates a 502 error with the remote-supplied message.
func NewUpdateRejected(code int, msg string) *BoardError {
	if msg == "" {
		msg = "page update rejected"
	}
	return &BoardError{
		Code:    ErrUpdateRejected,
		Status:  502,
		Message: msg,
		Details: map[string]any{"error_code": code},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *BoardError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &BoardError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a BoardError with the given code.
func Is(err error, code ErrorCode) bool {
	if bErr, ok := err.(*BoardError); ok {
		return bErr.Code == code
	}
	return false
}
