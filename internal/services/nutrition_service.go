package services

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	apperrors "fittrack/internal/errors"
	"fittrack/internal/logger"
	"fittrack/internal/models"
	"fittrack/internal/pagination"
	"fittrack/internal/validator"
)

// nutritionService handles daily nutrition logs and their meals.
type nutritionService struct {
	db *gorm.DB
}

// NewNutritionService creates a new NutritionServicer.
func NewNutritionService(db *gorm.DB) NutritionServicer {
	return &nutritionService{db: db}
}

// GetLog returns the user's log for date with its meals.
func (s *nutritionService) GetLog(userID string, date time.Time) (*models.NutritionLog, error) {
	var log models.NutritionLog
	err := s.db.
		Preload("Meals", func(db *gorm.DB) *gorm.DB { return db.Order("time ASC, name ASC") }).
		Where("user_id = ? AND date = ?", userID, dateOnly(date)).
		First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNutritionLogNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &log, nil
}

// getOrCreateLog returns the log for (user, date), creating it when missing.
// A concurrent creator losing on the unique index re-reads the winner's row.
func (s *nutritionService) getOrCreateLog(userID string, date time.Time) (*models.NutritionLog, error) {
	day := dateOnly(date)

	var log models.NutritionLog
	err := s.db.Where("user_id = ? AND date = ?", userID, day).First(&log).Error
	if err == nil {
		return &log, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	log = models.NutritionLog{UserID: userID, Date: day}
	if err := s.db.Create(&log).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		logger.Get().Debugw("nutrition log created concurrently", "user_id", userID, "date", day)
		if err := s.db.Where("user_id = ? AND date = ?", userID, day).First(&log).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return &log, nil
}

// GetUserLogs returns the user's logs, newest first, within an optional
// inclusive date range.
func (s *nutritionService) GetUserLogs(userID string, page pagination.PageRequest, from, to *time.Time) (*pagination.PageResponse[models.NutritionLog], error) {
	page.Defaults()

	base := s.db.Model(&models.NutritionLog{}).Where("user_id = ?", userID)
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

	var logs []models.NutritionLog
	if err := base.Order("date DESC").Scopes(pagination.Paginate(page)).Find(&logs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(logs, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// UpdateLog sets water intake and notes on the day's log, creating it if needed.
func (s *nutritionService) UpdateLog(userID string, date time.Time, waterIntake *int, notes *string) (*models.NutritionLog, error) {
	v := validator.New()
	v.Check(waterIntake != nil && *waterIntake < 0, "waterIntake", "must not be negative")
	if err := v.Err(); err != nil {
		return nil, err
	}

	log, err := s.getOrCreateLog(userID, date)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if waterIntake != nil {
		updates["water_intake"] = *waterIntake
	}
	if notes != nil {
		updates["notes"] = *notes
	}
	if len(updates) > 0 {
		if err := s.db.Model(log).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetLog(userID, date)
}

// AddMeal adds a meal to the day's log, creating the log on first use, and
// refreshes the log's totals.
func (s *nutritionService) AddMeal(userID string, date time.Time, input MealInput) (*models.Meal, error) {
	v := validator.New()
	v.Check(input.Name == "", "name", "is required")
	v.Check(!validator.MaxChars(input.Name, 100), "name", "must not be more than 100 characters")
	v.Check(!models.IsOneOf(input.MealType, models.MealTypes), "mealType", "is not a permitted value")
	v.Check(input.Calories != nil && *input.Calories < 0, "calories", "must not be negative")
	v.Check(input.Protein != nil && *input.Protein < 0, "protein", "must not be negative")
	v.Check(input.Carbs != nil && *input.Carbs < 0, "carbs", "must not be negative")
	v.Check(input.Fat != nil && *input.Fat < 0, "fat", "must not be negative")
	if err := v.Err(); err != nil {
		return nil, err
	}

	log, err := s.getOrCreateLog(userID, date)
	if err != nil {
		return nil, err
	}

	meal := &models.Meal{
		NutritionLogID: log.ID,
		MealType:       input.MealType,
		Name:           input.Name,
		Calories:       input.Calories,
		Protein:        input.Protein,
		Carbs:          input.Carbs,
		Fat:            input.Fat,
		Time:           input.Time,
		Notes:          input.Notes,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(meal).Error; err != nil {
			return err
		}
		return recomputeTotals(tx, log.ID)
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return meal, nil
}

// DeleteMeal removes a meal from one of the user's logs and refreshes the totals.
func (s *nutritionService) DeleteMeal(userID, mealID string) error {
	var meal models.Meal
	err := s.db.Joins("JOIN nutrition_logs ON nutrition_logs.id = meals.nutrition_log_id").
		Where("meals.id = ? AND nutrition_logs.user_id = ?", mealID, userID).
		First(&meal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrMealNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&meal).Error; err != nil {
			return err
		}
		return recomputeTotals(tx, meal.NutritionLogID)
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// DeleteLog removes the day's log and its meals.
func (s *nutritionService) DeleteLog(userID string, date time.Time) error {
	result := s.db.Where("user_id = ? AND date = ?", userID, dateOnly(date)).Delete(&models.NutritionLog{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNutritionLogNotFound
	}
	return nil
}

// recomputeTotals rewrites a log's totals from its meals. Macros are summed
// as decimals and rounded once to whole grams.
func recomputeTotals(tx *gorm.DB, logID string) error {
	var meals []models.Meal
	if err := tx.Where("nutrition_log_id = ?", logID).Find(&meals).Error; err != nil {
		return err
	}

	var calories int
	var protein, carbs, fat float64
	for _, m := range meals {
		if m.Calories != nil {
			calories += *m.Calories
		}
		if m.Protein != nil {
			protein += *m.Protein
		}
		if m.Carbs != nil {
			carbs += *m.Carbs
		}
		if m.Fat != nil {
			fat += *m.Fat
		}
	}

	return tx.Model(&models.NutritionLog{}).Where("id = ?", logID).Updates(map[string]interface{}{
		"total_calories": calories,
		"total_protein":  int(math.Round(protein)),
		"total_carbs":    int(math.Round(carbs)),
		"total_fat":      int(math.Round(fat)),
	}).Error
}
