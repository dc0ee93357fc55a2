package services

import (
	"net/url"

	"gorm.io/gorm"

	apperrors "fittrack/internal/errors"
	"fittrack/internal/models"
	"fittrack/internal/pagination"
	"fittrack/internal/validator"
)

// photoService handles progress photo references.
type photoService struct {
	db *gorm.DB
}

// NewPhotoService creates a new PhotoServicer.
func NewPhotoService(db *gorm.DB) PhotoServicer {
	return &photoService{db: db}
}

// CreatePhoto stores a reference to an already uploaded photo.
func (s *photoService) CreatePhoto(userID string, input PhotoInput) (*models.ProgressPhoto, error) {
	v := validator.New()
	v.Check(input.PhotoURL == "", "photoUrl", "is required")
	v.Check(input.PhotoURL != "" && !isAbsoluteURL(input.PhotoURL), "photoUrl", "must be a valid URL")
	v.Check(!validator.MaxChars(input.PhotoURL, 255), "photoUrl", "must not be more than 255 characters")
	v.Check(input.Date.IsZero(), "date", "is required")
	if input.Category != nil {
		v.Check(!models.IsOneOf(*input.Category, models.PhotoCategories), "category", "is not a permitted value")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	photo := &models.ProgressPhoto{
		UserID:   userID,
		PhotoURL: input.PhotoURL,
		Date:     dateOnly(input.Date),
		Category: input.Category,
		Notes:    input.Notes,
	}
	if err := s.db.Create(photo).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return photo, nil
}

// GetUserPhotos returns the user's photos, newest first.
func (s *photoService) GetUserPhotos(userID string, page pagination.PageRequest, category *models.PhotoCategory) (*pagination.PageResponse[models.ProgressPhoto], error) {
	page.Defaults()

	base := s.db.Model(&models.ProgressPhoto{}).Where("user_id = ?", userID)
	if category != nil {
		base = base.Where("category = ?", *category)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var photos []models.ProgressPhoto
	if err := base.Order("date DESC, created_at DESC").Scopes(pagination.Paginate(page)).Find(&photos).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(photos, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// DeletePhoto removes one of the user's photos.
func (s *photoService) DeletePhoto(userID, photoID string) error {
	result := s.db.Where("id = ? AND user_id = ?", photoID, userID).Delete(&models.ProgressPhoto{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrPhotoNotFound
	}
	return nil
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}
