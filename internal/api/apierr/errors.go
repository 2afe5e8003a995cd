package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/exhibitkit/showroom/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodeUsernameExists       = "USERNAME_EXISTS"
	CodeWrongScreen          = "WRONG_SCREEN"
	CodeResourceNotFound     = "RESOURCE_NOT_FOUND"
	CodeBundleTransfer       = "BUNDLE_TRANSFER_FAILED"
	CodeLibraryNotReady      = "LIBRARY_NOT_READY"
	CodeIndexOutOfRange      = "INDEX_OUT_OF_RANGE"
	CodeNoMediaBound         = "NO_MEDIA_BOUND"
	CodeSceneNotBuilt        = "SCENE_NOT_BUILT"
	CodeTransitionInProgress = "TRANSITION_IN_PROGRESS"
	CodeInternalError        = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrCredentialMissing):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "User doesn't exist"}}
	case errors.Is(err, model.ErrCredentialMismatch):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Incorrect password"}}
	case errors.Is(err, model.ErrUnresolvedHandle):
		return &httpError{http.StatusNotFound, APIError{CodeResourceNotFound, "No catalog entry for resource"}}
	case errors.Is(err, model.ErrResourceNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeResourceNotFound, "Resource not found"}}
	case errors.Is(err, model.ErrBundleTransfer):
		return &httpError{http.StatusBadGateway, APIError{CodeBundleTransfer, "Bundle transfer failed"}}
	case errors.Is(err, model.ErrLibraryNotReady):
		return &httpError{http.StatusConflict, APIError{CodeLibraryNotReady, "Library catalog is not ready"}}
	case errors.Is(err, model.ErrIndexOutOfRange):
		return &httpError{http.StatusBadRequest, APIError{CodeIndexOutOfRange, "Catalog index out of range"}}
	case errors.Is(err, model.ErrNoMediaBound):
		return &httpError{http.StatusConflict, APIError{CodeNoMediaBound, "No media item bound"}}
	case errors.Is(err, model.ErrSceneNotBuilt):
		return &httpError{http.StatusConflict, APIError{CodeSceneNotBuilt, "Showroom scene has not been built"}}
	case errors.Is(err, model.ErrTransitionInProgress):
		return &httpError{http.StatusConflict, APIError{CodeTransitionInProgress, "Teleport transition in progress"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewUsernameExistsError creates a conflict error for duplicate sign-ups
func NewUsernameExistsError() error {
	return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}
}

// NewWrongScreenError creates a conflict error for actions taken on the
// wrong screen
func NewWrongScreenError(message string) error {
	return &httpError{http.StatusConflict, APIError{CodeWrongScreen, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
