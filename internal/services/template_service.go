package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fittrack/internal/errors"
	"fittrack/internal/models"
	"fittrack/internal/pagination"
	"fittrack/internal/validator"
)

// templateService handles reusable workout templates.
type templateService struct {
	db *gorm.DB
}

// NewTemplateService creates a new TemplateServicer.
func NewTemplateService(db *gorm.DB) TemplateServicer {
	return &templateService{db: db}
}

// CreateTemplate stores a template and its ordered exercises.
func (s *templateService) CreateTemplate(userID string, input TemplateInput) (*models.WorkoutTemplate, error) {
	v := validator.New()
	v.Check(input.Name == "", "name", "is required")
	v.Check(!validator.MaxChars(input.Name, 100), "name", "must not be more than 100 characters")
	v.Check(!models.IsOneOf(input.WorkoutType, models.WorkoutTypes), "workoutType", "is not a permitted value")
	v.Check(validator.OutOfRange(input.Difficulty, 1, 5), "difficulty", "must be between 1 and 5")
	v.Check(input.EstimatedDuration != nil && *input.EstimatedDuration < 0, "estimatedDuration", "must not be negative")
	checkExerciseItems(v, input.Exercises)
	if err := v.Err(); err != nil {
		return nil, err
	}

	if err := ensureExercisesVisible(s.db, userID, input.Exercises); err != nil {
		return nil, err
	}

	template := &models.WorkoutTemplate{
		UserID:            userID,
		Name:              input.Name,
		Description:       input.Description,
		WorkoutType:       input.WorkoutType,
		EstimatedDuration: input.EstimatedDuration,
		Difficulty:        input.Difficulty,
		IsPublic:          input.IsPublic,
	}
	for _, item := range input.Exercises {
		template.Exercises = append(template.Exercises, models.TemplateExercise{
			ExerciseID:      item.ExerciseID,
			Position:        item.Order,
			Sets:            item.Sets,
			TargetReps:      item.TargetReps,
			TargetDuration:  item.TargetDuration,
			RestBetweenSets: item.RestBetweenSets,
			Notes:           item.Notes,
		})
	}

	if err := s.db.Create(template).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetTemplateByID(userID, template.ID)
}

// GetTemplates lists the user's own templates together with public ones.
func (s *templateService) GetTemplates(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.WorkoutTemplate], error) {
	page.Defaults()

	base := s.db.Model(&models.WorkoutTemplate{}).Where("(user_id = ? OR is_public = ?)", userID, true)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var templates []models.WorkoutTemplate
	if err := base.Order("name ASC").Scopes(pagination.Paginate(page)).Find(&templates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(templates, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTemplateByID returns a template the user owns or that is public.
func (s *templateService) GetTemplateByID(userID, templateID string) (*models.WorkoutTemplate, error) {
	var template models.WorkoutTemplate
	err := s.db.
		Preload("Exercises", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Exercises.Exercise").
		Where("id = ? AND (user_id = ? OR is_public = ?)", templateID, userID, true).
		First(&template).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTemplateNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &template, nil
}

// DeleteTemplate removes one of the user's templates. Public templates of
// other users are not the caller's to delete.
func (s *templateService) DeleteTemplate(userID, templateID string) error {
	result := s.db.Where("id = ? AND user_id = ?", templateID, userID).Delete(&models.WorkoutTemplate{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTemplateNotFound
	}
	return nil
}

// StartWorkout creates a workout for the user on date, copying the template's
// exercises and their targets in order.
func (s *templateService) StartWorkout(userID, templateID string, date time.Time) (*models.Workout, error) {
	v := validator.New()
	v.Check(date.IsZero(), "date", "is required")
	if err := v.Err(); err != nil {
		return nil, err
	}

	template, err := s.GetTemplateByID(userID, templateID)
	if err != nil {
		return nil, err
	}

	workout := &models.Workout{
		UserID:      userID,
		Name:        template.Name,
		Description: template.Description,
		WorkoutType: template.WorkoutType,
		Duration:    template.EstimatedDuration,
		Date:        dateOnly(date),
	}
	for _, item := range template.Exercises {
		workout.Exercises = append(workout.Exercises, models.WorkoutExercise{
			ExerciseID:      item.ExerciseID,
			Position:        item.Position,
			Sets:            item.Sets,
			TargetReps:      item.TargetReps,
			TargetDuration:  item.TargetDuration,
			RestBetweenSets: item.RestBetweenSets,
			Notes:           item.Notes,
		})
	}

	if err := s.db.Create(workout).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return loadWorkout(s.db, userID, workout.ID)
}
