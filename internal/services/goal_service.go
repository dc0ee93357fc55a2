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

// goalService handles goal-related business logic.
type goalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db}
}

// CreateGoal creates an open goal for the user.
func (s *goalService) CreateGoal(userID string, input GoalInput) (*models.Goal, error) {
	v := validator.New()
	v.Check(input.Name == "", "name", "is required")
	v.Check(!validator.MaxChars(input.Name, 100), "name", "must not be more than 100 characters")
	v.Check(!models.IsOneOf(input.GoalType, models.GoalTypes), "goalType", "is not a permitted value")
	v.Check(input.StartDate.IsZero(), "startDate", "is required")
	if input.TargetDate != nil && !input.StartDate.IsZero() {
		v.Check(dateOnly(*input.TargetDate).Before(dateOnly(input.StartDate)), "targetDate", "must not be before startDate")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	goal := &models.Goal{
		UserID:       userID,
		Name:         input.Name,
		Description:  input.Description,
		GoalType:     input.GoalType,
		TargetValue:  input.TargetValue,
		CurrentValue: input.CurrentValue,
		StartDate:    dateOnly(input.StartDate),
	}
	if input.TargetDate != nil {
		target := dateOnly(*input.TargetDate)
		goal.TargetDate = &target
	}

	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return goal, nil
}

// GetUserGoals returns a paginated list of the user's goals, optionally
// filtered by completion.
func (s *goalService) GetUserGoals(userID string, page pagination.PageRequest, completed *bool) (*pagination.PageResponse[models.Goal], error) {
	page.Defaults()

	base := s.db.Model(&models.Goal{}).Where("user_id = ?", userID)
	if completed != nil {
		base = base.Where("completed = ?", *completed)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var goals []models.Goal
	if err := base.Order("start_date DESC, created_at DESC").Scopes(pagination.Paginate(page)).Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(goals, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetGoalByID returns a goal by ID if it belongs to the user.
func (s *goalService) GetGoalByID(userID, goalID string) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// UpdateGoalProgress records the latest measured value of a goal.
func (s *goalService) UpdateGoalProgress(userID, goalID string, currentValue float64) (*models.Goal, error) {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(goal).Update("current_value", currentValue).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	goal.CurrentValue = &currentValue

	return goal, nil
}

// CompleteGoal marks a goal completed. Completing an already completed goal
// leaves it and its completion time untouched.
func (s *goalService) CompleteGoal(userID, goalID string) (*models.Goal, error) {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}
	if goal.Completed {
		return goal, nil
	}

	now := time.Now().UTC()
	result := s.db.Model(&models.Goal{}).
		Where("id = ? AND completed = ?", goal.ID, false).
		Updates(map[string]interface{}{"completed": true, "completed_at": now})
	if result.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		// Lost a race with another completion; report what was stored.
		return s.GetGoalByID(userID, goalID)
	}

	goal.Completed = true
	goal.CompletedAt = &now
	return goal, nil
}

// DeleteGoal removes a goal.
func (s *goalService) DeleteGoal(userID, goalID string) error {
	result := s.db.Where("id = ? AND user_id = ?", goalID, userID).Delete(&models.Goal{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrGoalNotFound
	}
	return nil
}
