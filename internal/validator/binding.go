package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	apperrors "fittrack/internal/errors"
	"fittrack/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("account_type", enumValidator(models.AccountTypes))
		_ = v.RegisterValidation("unit_system", enumValidator(models.UnitSystems))
		_ = v.RegisterValidation("gender", enumValidator(models.Genders))
		_ = v.RegisterValidation("goal_type", enumValidator(models.GoalTypes))
		_ = v.RegisterValidation("workout_type", enumValidator(models.WorkoutTypes))
		_ = v.RegisterValidation("exercise_category", enumValidator(models.ExerciseCategories))
		_ = v.RegisterValidation("meal_type", enumValidator(models.MealTypes))
		_ = v.RegisterValidation("photo_category", enumValidator(models.PhotoCategories))
		_ = v.RegisterValidation("iso_date", validateISODate)
	}
}

// enumValidator accepts only members of a closed string set.
func enumValidator[T ~string](permitted []T) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return models.IsOneOf(T(fl.Field().String()), permitted)
	}
}

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := ParseDate(fl.Field().String())
	return err == nil
}

// jsonFieldName reports JSON names in validation errors so they line up
// with the request body the client sent.
func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "" {
		name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
	}
	if name == "-" {
		return ""
	}
	return name
}

// FromBindingError converts a binding failure into an AppError. Field-level
// validation failures become ErrValidation with one entry per field, in
// struct order; anything else (malformed JSON, wrong types) is ErrInvalidInput.
func FromBindingError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}

	v := New()
	for _, fe := range verrs {
		v.Check(true, fe.Field(), describe(fe))
	}
	return v.Err()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "url":
		return "must be a valid URL"
	case "iso_date":
		return "must be a date in YYYY-MM-DD format"
	case "account_type", "unit_system", "gender", "goal_type", "workout_type",
		"exercise_category", "meal_type", "photo_category":
		return "is not a permitted value"
	default:
		return "is invalid"
	}
}
