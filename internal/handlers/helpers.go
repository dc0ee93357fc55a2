package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	apperrors "fittrack/internal/errors"
	"fittrack/internal/middleware"
	"fittrack/internal/uuid"
	"fittrack/internal/validator"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error  string                 `json:"error" example:"One or more fields are invalid"`
	Code   string                 `json:"code" example:"VALIDATION_FAILED"`
	Errors []apperrors.FieldError `json:"errors,omitempty"`
}

// MessageResponse represents a plain confirmation response.
type MessageResponse struct {
	Message string `json:"message" example:"User created successfully"`
}

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// parsePathID reads a UUID path parameter.
func parsePathID(c *gin.Context, param string) (string, error) {
	id := c.Param(param)
	if !uuid.IsValid(id) {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// parsePathDate reads a YYYY-MM-DD path parameter.
func parsePathDate(c *gin.Context, param string) (time.Time, error) {
	d, err := validator.ParseDate(c.Param(param))
	if err != nil {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, param+" must be a date in YYYY-MM-DD format")
	}
	return d, nil
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter.
func parseDateQuery(c *gin.Context, name string) (*time.Time, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	d, err := validator.ParseDate(v)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, name+" must be a date in YYYY-MM-DD format")
	}
	return &d, nil
}

// parseBoolQuery reads an optional true/false query parameter.
func parseBoolQuery(c *gin.Context, name string) (*bool, error) {
	switch c.Query(name) {
	case "":
		return nil, nil
	case "true":
		b := true
		return &b, nil
	case "false":
		b := false
		return &b, nil
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, name+" must be 'true' or 'false'")
	}
}

// optionalDate parses a date field that binding already checked with iso_date.
func optionalDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	d, err := validator.ParseDate(*s)
	if err != nil {
		return nil
	}
	return &d
}

// requiredDate parses a date field that binding already checked with iso_date.
func requiredDate(s string) time.Time {
	d, _ := validator.ParseDate(s)
	return d
}

// bindJSON binds the request body, mapping failures to the error envelope.
func bindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return validator.FromBindingError(err)
	}
	return nil
}

// bindQuery binds query parameters, mapping failures to the error envelope.
func bindQuery(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindQuery(req); err != nil {
		return validator.FromBindingError(err)
	}
	return nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	middleware.WriteError(c, err)
}
