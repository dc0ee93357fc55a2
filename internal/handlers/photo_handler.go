package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fittrack/internal/errors"
	"fittrack/internal/models"
	"fittrack/internal/pagination"
	"fittrack/internal/services"
)

// PhotoHandler handles progress photo references.
type PhotoHandler struct {
	photoService services.PhotoServicer
}

// NewPhotoHandler creates a new PhotoHandler.
func NewPhotoHandler(photoService services.PhotoServicer) *PhotoHandler {
	return &PhotoHandler{photoService: photoService}
}

// CreatePhotoRequest represents the request payload for a progress photo.
type CreatePhotoRequest struct {
	PhotoURL string                `json:"photoUrl" binding:"required" example:"https://cdn.example.com/p/1.jpg"`
	Date     string                `json:"date" binding:"required,iso_date" example:"2024-03-01"`
	Category *models.PhotoCategory `json:"category" binding:"omitempty,photo_category" example:"front"`
	Notes    string                `json:"notes"`
}

// CreatePhoto records a progress photo
// @Summary     Add progress photo
// @Tags        photos
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreatePhotoRequest true "Photo details"
// @Success     201 {object} models.ProgressPhoto "Photo recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/photos [post]
func (h *PhotoHandler) CreatePhoto(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreatePhotoRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	photo, err := h.photoService.CreatePhoto(userID, services.PhotoInput{
		PhotoURL: req.PhotoURL,
		Date:     requiredDate(req.Date),
		Category: req.Category,
		Notes:    req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"photo": photo})
}

// GetPhotos lists progress photos, newest first
// @Summary     Get progress photos
// @Tags        photos
// @Produce     json
// @Security    BearerAuth
// @Param       category query string false "Filter by category (front/back/side)"
// @Param       page     query int    false "Page number (default 1)"
// @Param       pageSize query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.ProgressPhoto] "Paginated photos"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/photos [get]
func (h *PhotoHandler) GetPhotos(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := bindQuery(c, &page); err != nil {
		respondWithError(c, err)
		return
	}

	var category *models.PhotoCategory
	if v := c.Query("category"); v != "" {
		cat := models.PhotoCategory(v)
		if !models.IsOneOf(cat, models.PhotoCategories) {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "category must be 'front', 'back' or 'side'"))
			return
		}
		category = &cat
	}

	result, err := h.photoService.GetUserPhotos(userID, page, category)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeletePhoto handles deleting a progress photo
// @Summary     Delete progress photo
// @Tags        photos
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Photo ID"
// @Success     200 {object} MessageResponse "Photo deleted"
// @Failure     400 {object} ErrorResponse "Invalid photo ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Photo not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/photos/{id} [delete]
func (h *PhotoHandler) DeletePhoto(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	photoID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.photoService.DeletePhoto(userID, photoID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Progress photo deleted successfully"})
}
