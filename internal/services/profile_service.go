package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "fittrack/internal/errors"
	"fittrack/internal/models"
	"fittrack/internal/pagination"
	"fittrack/internal/validator"
)

// profileService handles the per-user profile and weight history.
type profileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileServicer.
func NewProfileService(db *gorm.DB) ProfileServicer {
	return &profileService{db: db}
}

// dateOnly truncates t to midnight UTC of its calendar date.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// GetProfile returns the user's profile. A user who never saved one gets an
// empty profile rather than an error.
func (s *profileService) GetProfile(userID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.UserProfile{UserID: userID}, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &profile, nil
}

// UpsertProfile creates the profile on first save and applies the non-nil
// fields of input afterwards.
func (s *profileService) UpsertProfile(userID string, input ProfileInput) (*models.UserProfile, error) {
	v := validator.New()
	if input.Gender != nil {
		v.Check(!models.IsOneOf(*input.Gender, models.Genders), "gender", "is not a permitted value")
	}
	v.Check(validator.OutOfRange(input.ActivityLevel, 1, 5), "activityLevel", "must be between 1 and 5")
	checkPositive(v, "height", input.Height)
	checkPositive(v, "currentWeight", input.CurrentWeight)
	checkPositive(v, "targetWeight", input.TargetWeight)
	if input.DateOfBirth != nil {
		v.Check(input.DateOfBirth.After(time.Now()), "dateOfBirth", "must not be in the future")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	var profile models.UserProfile
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.UserProfile{UserID: userID}).Error; err != nil {
			return err
		}

		updates := make(map[string]interface{})
		if input.DateOfBirth != nil {
			updates["date_of_birth"] = dateOnly(*input.DateOfBirth)
		}
		if input.Gender != nil {
			updates["gender"] = *input.Gender
		}
		if input.Height != nil {
			updates["height"] = *input.Height
		}
		if input.CurrentWeight != nil {
			updates["current_weight"] = *input.CurrentWeight
		}
		if input.TargetWeight != nil {
			updates["target_weight"] = *input.TargetWeight
		}
		if input.ActivityLevel != nil {
			updates["activity_level"] = *input.ActivityLevel
		}
		if input.Bio != nil {
			updates["bio"] = *input.Bio
		}
		if input.ProfilePictureURL != nil {
			updates["profile_picture_url"] = *input.ProfilePictureURL
		}
		if len(updates) > 0 {
			if err := tx.Model(&models.UserProfile{}).Where("user_id = ?", userID).Updates(updates).Error; err != nil {
				return err
			}
		}

		return tx.Where("user_id = ?", userID).First(&profile).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &profile, nil
}

// AddWeight records a weight observation. The profile's current weight follows
// the entry so the two never disagree.
func (s *profileService) AddWeight(userID string, weight float64, date time.Time, notes string) (*models.WeightHistory, error) {
	v := validator.New()
	v.Check(weight <= 0, "weight", "must be greater than 0")
	v.Check(date.IsZero(), "date", "is required")
	if err := v.Err(); err != nil {
		return nil, err
	}

	entry := &models.WeightHistory{
		UserID: userID,
		Weight: weight,
		Date:   dateOnly(date),
		Notes:  notes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.UserProfile{UserID: userID}).Error; err != nil {
			return err
		}
		return tx.Model(&models.UserProfile{}).Where("user_id = ?", userID).Update("current_weight", weight).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return entry, nil
}

// GetWeightHistory returns the user's weight entries, newest first.
func (s *profileService) GetWeightHistory(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.WeightHistory], error) {
	page.Defaults()

	base := s.db.Model(&models.WeightHistory{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.WeightHistory
	if err := base.Order("date DESC").Scopes(pagination.Paginate(page)).Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func checkPositive(v *validator.Validator, field string, value *float64) {
	v.Check(value != nil && *value <= 0, field, "must be greater than 0")
}
