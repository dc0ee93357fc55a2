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

// workoutService handles workout-related business logic.
type workoutService struct {
	db *gorm.DB
}

// NewWorkoutService creates a new WorkoutServicer.
func NewWorkoutService(db *gorm.DB) WorkoutServicer {
	return &workoutService{db: db}
}

// checkExerciseItems validates positioned exercise items shared by workouts
// and templates. Positions must be positive and unique.
func checkExerciseItems(v *validator.Validator, items []ExerciseItemInput) {
	seen := make(map[int]bool, len(items))
	for _, item := range items {
		v.Check(item.ExerciseID == "", "exercises", "exerciseId is required")
		v.Check(item.Order < 1, "exercises", "order must be at least 1")
		v.Check(seen[item.Order], "exercises", "order values must be unique")
		seen[item.Order] = true
		v.Check(item.Sets != nil && *item.Sets < 0, "exercises", "sets must not be negative")
		v.Check(item.TargetReps != nil && *item.TargetReps < 0, "exercises", "targetReps must not be negative")
		v.Check(item.TargetDuration != nil && *item.TargetDuration < 0, "exercises", "targetDuration must not be negative")
		v.Check(item.RestBetweenSets != nil && *item.RestBetweenSets < 0, "exercises", "restBetweenSets must not be negative")
	}
}

// ensureExercisesVisible fails with ErrExerciseNotFound unless every
// referenced exercise is a system exercise or one of the user's own.
func ensureExercisesVisible(db *gorm.DB, userID string, items []ExerciseItemInput) error {
	ids := make([]string, 0, len(items))
	unique := make(map[string]bool, len(items))
	for _, item := range items {
		if !unique[item.ExerciseID] {
			unique[item.ExerciseID] = true
			ids = append(ids, item.ExerciseID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	var count int64
	if err := db.Model(&models.Exercise{}).Scopes(visibleTo(userID)).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count != int64(len(ids)) {
		return apperrors.ErrExerciseNotFound
	}
	return nil
}

// loadWorkout fetches a workout with its exercises in position order and
// their performed sets in set order.
func loadWorkout(db *gorm.DB, userID, workoutID string) (*models.Workout, error) {
	var workout models.Workout
	err := db.
		Preload("Exercises", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Exercises.Exercise").
		Preload("Exercises.PerformedSets", func(db *gorm.DB) *gorm.DB { return db.Order("set_number ASC") }).
		Where("id = ? AND user_id = ?", workoutID, userID).
		First(&workout).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWorkoutNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &workout, nil
}

// CreateWorkout records a workout and its ordered exercises atomically.
func (s *workoutService) CreateWorkout(userID string, input WorkoutInput) (*models.Workout, error) {
	v := validator.New()
	v.Check(input.Name == "", "name", "is required")
	v.Check(!validator.MaxChars(input.Name, 100), "name", "must not be more than 100 characters")
	v.Check(!models.IsOneOf(input.WorkoutType, models.WorkoutTypes), "workoutType", "is not a permitted value")
	v.Check(input.Date.IsZero(), "date", "is required")
	v.Check(validator.OutOfRange(input.Rating, 1, 5), "rating", "must be between 1 and 5")
	v.Check(input.Duration != nil && *input.Duration < 0, "duration", "must not be negative")
	v.Check(input.CaloriesBurned != nil && *input.CaloriesBurned < 0, "caloriesBurned", "must not be negative")
	if input.StartTime != nil && input.EndTime != nil {
		v.Check(input.EndTime.Before(*input.StartTime), "endTime", "must not be before startTime")
	}
	checkExerciseItems(v, input.Exercises)
	if err := v.Err(); err != nil {
		return nil, err
	}

	if err := ensureExercisesVisible(s.db, userID, input.Exercises); err != nil {
		return nil, err
	}

	workout := &models.Workout{
		UserID:         userID,
		Name:           input.Name,
		Description:    input.Description,
		WorkoutType:    input.WorkoutType,
		Duration:       input.Duration,
		CaloriesBurned: input.CaloriesBurned,
		Date:           dateOnly(input.Date),
		StartTime:      input.StartTime,
		EndTime:        input.EndTime,
		Notes:          input.Notes,
		Rating:         input.Rating,
	}
	for _, item := range input.Exercises {
		workout.Exercises = append(workout.Exercises, models.WorkoutExercise{
			ExerciseID:      item.ExerciseID,
			Position:        item.Order,
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

// GetUserWorkouts returns the user's workouts, newest first, optionally
// limited to an inclusive date range.
func (s *workoutService) GetUserWorkouts(userID string, page pagination.PageRequest, from, to *time.Time) (*pagination.PageResponse[models.Workout], error) {
	page.Defaults()

	base := s.db.Model(&models.Workout{}).Where("user_id = ?", userID)
	if from != nil {
		base = base.Where("date >= ?", dateOnly(*from))
	}
	if to != nil {
		base = base.Where("date <= ?", dateOnly(*to))
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var workouts []models.Workout
	if err := base.Order("date DESC, created_at DESC").Scopes(pagination.Paginate(page)).Find(&workouts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(workouts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetWorkoutByID returns a workout with its exercises and sets.
func (s *workoutService) GetWorkoutByID(userID, workoutID string) (*models.Workout, error) {
	return loadWorkout(s.db, userID, workoutID)
}

// AddSet records a performed set against one exercise of the user's workout.
func (s *workoutService) AddSet(userID, workoutID, workoutExerciseID string, input SetInput) (*models.ExerciseSet, error) {
	v := validator.New()
	v.Check(input.SetNumber < 0, "setNumber", "must not be negative")
	v.Check(validator.OutOfRange(input.RPE, 1, 10), "rpe", "must be between 1 and 10")
	v.Check(input.Reps != nil && *input.Reps < 0, "reps", "must not be negative")
	v.Check(input.Duration != nil && *input.Duration < 0, "duration", "must not be negative")
	v.Check(input.Weight != nil && *input.Weight < 0, "weight", "must not be negative")
	v.Check(input.Distance != nil && *input.Distance < 0, "distance", "must not be negative")
	if err := v.Err(); err != nil {
		return nil, err
	}

	var item models.WorkoutExercise
	err := s.db.Joins("JOIN workouts ON workouts.id = workout_exercises.workout_id").
		Where("workout_exercises.id = ? AND workouts.id = ? AND workouts.user_id = ?", workoutExerciseID, workoutID, userID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWorkoutExerciseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	set := &models.ExerciseSet{
		WorkoutExerciseID: item.ID,
		SetNumber:         input.SetNumber,
		Weight:            input.Weight,
		Reps:              input.Reps,
		Duration:          input.Duration,
		Distance:          input.Distance,
		Completed:         true,
		RPE:               input.RPE,
		Notes:             input.Notes,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if set.SetNumber == 0 {
			var last int
			if err := tx.Model(&models.ExerciseSet{}).
				Where("workout_exercise_id = ?", item.ID).
				Select("COALESCE(MAX(set_number), 0)").
				Scan(&last).Error; err != nil {
				return err
			}
			set.SetNumber = last + 1
		}

		if err := tx.Create(set).Error; err != nil {
			return err
		}

		// A false default is skipped on insert, so store it explicitly.
		if input.Completed != nil && !*input.Completed {
			if err := tx.Model(set).Update("completed", false).Error; err != nil {
				return err
			}
			set.Completed = false
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return set, nil
}

// DeleteWorkout removes a workout along with its exercises and sets.
func (s *workoutService) DeleteWorkout(userID, workoutID string) error {
	result := s.db.Where("id = ? AND user_id = ?", workoutID, userID).Delete(&models.Workout{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrWorkoutNotFound
	}
	return nil
}
