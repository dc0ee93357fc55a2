// Package errors provides custom error types for the FitTrack API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// FieldError is a single named field failure produced by input validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
// Fields is populated for validation failures only.
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"message"`
	StatusCode int          `json:"-"`
	Internal   error        `json:"-"`
	Fields     []FieldError `json:"errors,omitempty"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// WithFields creates a new AppError carrying the given field failures.
func WithFields(sentinel *AppError, fields []FieldError) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
		Fields:     fields,
	}
}

// Response is the JSON error envelope written to clients. Errors is only
// present for validation failures.
type Response struct {
	Error  string       `json:"error"`
	Code   string       `json:"code"`
	Errors []FieldError `json:"errors,omitempty"`
}

// Response builds the client-facing envelope for e.
func (e *AppError) Response() Response {
	return Response{Error: e.Message, Code: e.Code, Errors: e.Fields}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrInvalidToken       = &AppError{Code: "INVALID_TOKEN", Message: "Invalid or expired token", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrValidation     = &AppError{Code: "VALIDATION_FAILED", Message: "One or more fields are invalid", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "The server encountered an error and cannot complete your request", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
	ErrPasswordHash   = &AppError{Code: "HASHING_FAILED", Message: "The server encountered an error and cannot complete your request", StatusCode: http.StatusInternalServerError}
)

// Goal errors.
var (
	ErrGoalNotFound = &AppError{Code: "GOAL_NOT_FOUND", Message: "Goal not found", StatusCode: http.StatusNotFound}
)

// Exercise errors.
var (
	ErrExerciseNotFound = &AppError{Code: "EXERCISE_NOT_FOUND", Message: "Exercise not found", StatusCode: http.StatusNotFound}
	ErrSystemExercise   = &AppError{Code: "SYSTEM_EXERCISE", Message: "System exercises cannot be modified", StatusCode: http.StatusForbidden}
)

// Workout errors.
var (
	ErrWorkoutNotFound         = &AppError{Code: "WORKOUT_NOT_FOUND", Message: "Workout not found", StatusCode: http.StatusNotFound}
	ErrWorkoutExerciseNotFound = &AppError{Code: "WORKOUT_EXERCISE_NOT_FOUND", Message: "Workout exercise not found", StatusCode: http.StatusNotFound}
	ErrTemplateNotFound        = &AppError{Code: "TEMPLATE_NOT_FOUND", Message: "Workout template not found", StatusCode: http.StatusNotFound}
)

// Nutrition errors.
var (
	ErrNutritionLogNotFound = &AppError{Code: "NUTRITION_LOG_NOT_FOUND", Message: "Nutrition log not found", StatusCode: http.StatusNotFound}
	ErrMealNotFound         = &AppError{Code: "MEAL_NOT_FOUND", Message: "Meal not found", StatusCode: http.StatusNotFound}
)

// Progress photo errors.
var (
	ErrPhotoNotFound = &AppError{Code: "PHOTO_NOT_FOUND", Message: "Progress photo not found", StatusCode: http.StatusNotFound}
)
