package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error codes form a closed set; handlers and usecases match on these
// instead of inspecting messages.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeInvalidID        = "INVALID_ID"
	CodeEmptyPayload     = "EMPTY_PAYLOAD"
	CodeInvalidUpdate    = "INVALID_UPDATE"
	CodeEmptyText        = "EMPTY_TEXT"
	CodeAlreadyLiked     = "ALREADY_LIKED"
	CodeNotLiked         = "NOT_LIKED"
	CodeCommentNotFound  = "COMMENT_NOT_FOUND"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeObjectNotFound   = "OBJECT_NOT_FOUND"
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
	CodePartialDelete    = "PARTIAL_DELETE"
	CodeBadRequest       = "BAD_REQUEST"
	CodeValidation       = "VALIDATION_ERROR"
	CodeInternal         = "INTERNAL_ERROR"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code string, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// Is reports whether err is an AppError carrying the given code.
func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

func NotFound(resource string, err error) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound, err)
}

func InvalidID(id string) *AppError {
	return New(CodeInvalidID, fmt.Sprintf("%q is not a valid identifier", id), http.StatusNotFound, nil)
}

func EmptyPayload() *AppError {
	return New(CodeEmptyPayload, "Request payload is empty", http.StatusBadRequest, nil)
}

func InvalidUpdate(field string) *AppError {
	return New(CodeInvalidUpdate, fmt.Sprintf("Field %q is not updatable", field), http.StatusBadRequest, nil)
}

func EmptyText() *AppError {
	return New(CodeEmptyText, "Text is required", http.StatusBadRequest, nil)
}

func AlreadyLiked() *AppError {
	return New(CodeAlreadyLiked, "Product is liked already", http.StatusBadRequest, nil)
}

func NotLiked() *AppError {
	return New(CodeNotLiked, "Product has not been liked yet", http.StatusBadRequest, nil)
}

func CommentNotFound() *AppError {
	return New(CodeCommentNotFound, "Comment not found", http.StatusNotFound, nil)
}

func Unauthorized(message string, err error) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized, err)
}

func ObjectNotFound(object string, err error) *AppError {
	return New(CodeObjectNotFound, fmt.Sprintf("Stored object %s no longer exists", object), http.StatusNotFound, err)
}

func StoreUnavailable(message string, err error) *AppError {
	return New(CodeStoreUnavailable, message, http.StatusInternalServerError, err)
}

func BadRequest(message string, err error) *AppError {
	return New(CodeBadRequest, message, http.StatusBadRequest, err)
}

func Internal(message string, err error) *AppError {
	return New(CodeInternal, message, http.StatusInternalServerError, err)
}

// PartialDeleteError reports which objects a best-effort batch delete could
// not remove. Callers log it; it never surfaces in responses.
type PartialDeleteError struct {
	Failed []string
}

func (e *PartialDeleteError) Error() string {
	return fmt.Sprintf("failed to delete %d object(s): %s", len(e.Failed), strings.Join(e.Failed, ", "))
}

func PartialDelete(failed []string) *AppError {
	return New(CodePartialDelete, "Some stored objects could not be deleted", http.StatusInternalServerError, &PartialDeleteError{Failed: failed})
}
