package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthorized is returned when a request carries no session token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidToken is returned when a token has a bad signature or is expired.
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden is returned when the caller's role is not allowed.
	ErrForbidden = errors.New("forbidden")

	// ErrPostNotFound is returned when a post id or slug is unknown.
	ErrPostNotFound = errors.New("post not found")
	// ErrProjectNotFound is returned when a project id is unknown.
	ErrProjectNotFound = errors.New("project not found")
	// ErrUserNotFound is returned when a user id is unknown.
	ErrUserNotFound = errors.New("user not found")

	// ErrSlugTaken is returned when another post already owns the derived slug.
	ErrSlugTaken = errors.New("slug already exists")
	// ErrEmailTaken is returned when another user already owns the email.
	ErrEmailTaken = errors.New("email already exists")

	// ErrInvalidID is returned when a path id is not a positive integer.
	ErrInvalidID = errors.New("invalid id")
	// ErrInvalidPayload is returned when a request body is not valid JSON.
	ErrInvalidPayload = errors.New("invalid request body")
	// ErrInvalidDataField is returned when the multipart data field is not valid JSON.
	ErrInvalidDataField = errors.New("invalid json in data field")

	// ErrUnsupportedMedia is returned when an uploaded file type is not allowed.
	ErrUnsupportedMedia = errors.New("unsupported file type")
	// ErrFileTooLarge is returned when an uploaded file exceeds the size limit.
	ErrFileTooLarge = errors.New("file too large")
	// ErrUpload is returned when the media host rejects an upload.
	ErrUpload = errors.New("upload failed")
)

// FieldError describes one schema violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field level violation of a payload.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	return "validation failed: " + e.Errors[0].Field + " " + e.Errors[0].Message
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// RouteNotFoundResponse is the body returned for unmatched routes.
type RouteNotFoundResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{Message: e.Message}
}

var mappings = []struct {
	err     error
	status  int
	message string
}{
	{ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
	{ErrInvalidToken, http.StatusUnauthorized, "Invalid token"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{ErrForbidden, http.StatusForbidden, "Forbidden"},
	{ErrPostNotFound, http.StatusNotFound, "Post not found"},
	{ErrProjectNotFound, http.StatusNotFound, "Project not found"},
	{ErrUserNotFound, http.StatusNotFound, "User not found"},
	{ErrSlugTaken, http.StatusConflict, "A post with this slug already exists"},
	{ErrEmailTaken, http.StatusConflict, "A user with this email already exists"},
	{ErrInvalidID, http.StatusBadRequest, "Invalid id"},
	{ErrInvalidPayload, http.StatusBadRequest, "Invalid request body"},
	{ErrInvalidDataField, http.StatusBadRequest, "Invalid JSON in 'data' field"},
	{ErrUnsupportedMedia, http.StatusBadRequest, "Unsupported file type"},
	{ErrFileTooLarge, http.StatusRequestEntityTooLarge, "File too large"},
	{ErrUpload, http.StatusInternalServerError, "Failed to upload file"},
}

// MapErrorToHTTP maps domain errors to HTTP errors.
// Anything unrecognised becomes a generic 500 so internals never leak.
func MapErrorToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	for _, m := range mappings {
		if errors.Is(err, m.err) {
			return NewHTTPError(m.status, m.message)
		}
	}
	return NewHTTPError(http.StatusInternalServerError, "Internal server error")
}
