package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "fittrack/internal/errors"
	"fittrack/internal/models"
	"fittrack/internal/pagination"
	"fittrack/internal/validator"
)

// exerciseService handles the shared exercise library and users' custom entries.
type exerciseService struct {
	db *gorm.DB
}

// NewExerciseService creates a new ExerciseServicer.
func NewExerciseService(db *gorm.DB) ExerciseServicer {
	return &exerciseService{db: db}
}

// visibleTo restricts a query to system exercises and the user's own.
func visibleTo(userID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("(creator_id IS NULL OR creator_id = ?)", userID)
	}
}

// CreateExercise adds a custom exercise authored by the user.
func (s *exerciseService) CreateExercise(userID string, input ExerciseInput) (*models.Exercise, error) {
	v := validator.New()
	v.Check(input.Name == "", "name", "is required")
	v.Check(!validator.MaxChars(input.Name, 100), "name", "must not be more than 100 characters")
	v.Check(!models.IsOneOf(input.Category, models.ExerciseCategories), "category", "is not a permitted value")
	v.Check(validator.OutOfRange(input.Difficulty, 1, 5), "difficulty", "must be between 1 and 5")
	if err := v.Err(); err != nil {
		return nil, err
	}

	creator := userID
	exercise := &models.Exercise{
		Name:             input.Name,
		Description:      input.Description,
		Instructions:     input.Instructions,
		Category:         input.Category,
		PrimaryMuscles:   nonNil(input.PrimaryMuscles),
		SecondaryMuscles: nonNil(input.SecondaryMuscles),
		Equipment:        nonNil(input.Equipment),
		Difficulty:       input.Difficulty,
		VideoURL:         input.VideoURL,
		ImageURL:         input.ImageURL,
		IsCustom:         true,
		CreatorID:        &creator,
	}

	if err := s.db.Create(exercise).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return exercise, nil
}

// GetExercises lists the exercises the user can see, optionally by category.
func (s *exerciseService) GetExercises(userID string, page pagination.PageRequest, category *models.ExerciseCategory) (*pagination.PageResponse[models.Exercise], error) {
	page.Defaults()

	base := s.db.Model(&models.Exercise{}).Scopes(visibleTo(userID))
	if category != nil {
		base = base.Where("category = ?", *category)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var exercises []models.Exercise
	if err := base.Order("name ASC").Scopes(pagination.Paginate(page)).Find(&exercises).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(exercises, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetExerciseByID returns an exercise the user can see.
func (s *exerciseService) GetExerciseByID(userID, exerciseID string) (*models.Exercise, error) {
	var exercise models.Exercise
	if err := s.db.Scopes(visibleTo(userID)).Where("id = ?", exerciseID).First(&exercise).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExerciseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &exercise, nil
}

// DeleteExercise removes one of the user's custom exercises. System
// exercises cannot be deleted.
func (s *exerciseService) DeleteExercise(userID, exerciseID string) error {
	exercise, err := s.GetExerciseByID(userID, exerciseID)
	if err != nil {
		return err
	}
	if exercise.IsSystem() {
		return apperrors.ErrSystemExercise
	}

	if err := s.db.Delete(exercise).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
