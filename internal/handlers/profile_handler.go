package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fittrack/internal/models"
	"fittrack/internal/pagination"
	"fittrack/internal/services"
)

// ProfileHandler handles the current user's profile and weight history.
type ProfileHandler struct {
	profileService services.ProfileServicer
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService services.ProfileServicer) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// UpdateProfileRequest represents the request payload for updating the profile.
// Omitted fields are left unchanged.
type UpdateProfileRequest struct {
	DateOfBirth       *string        `json:"dateOfBirth" binding:"omitempty,iso_date" example:"1990-04-12"`
	Gender            *models.Gender `json:"gender" binding:"omitempty,gender"`
	Height            *float64       `json:"height" binding:"omitempty,gt=0"`
	CurrentWeight     *float64       `json:"currentWeight" binding:"omitempty,gt=0"`
	TargetWeight      *float64       `json:"targetWeight" binding:"omitempty,gt=0"`
	ActivityLevel     *int           `json:"activityLevel" binding:"omitempty,min=1,max=5"`
	Bio               *string        `json:"bio"`
	ProfilePictureURL *string        `json:"profilePictureUrl" binding:"omitempty,max=255"`
}

// AddWeightRequest represents the request payload for recording a weight.
type AddWeightRequest struct {
	Weight float64 `json:"weight" binding:"required,gt=0" example:"72.5"`
	Date   string  `json:"date" binding:"required,iso_date" example:"2024-03-01"`
	Notes  string  `json:"notes"`
}

// GetProfile returns the current user's profile
// @Summary     Get profile
// @Tags        profile
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.UserProfile "Profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	profile, err := h.profileService.GetProfile(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateProfile creates or updates the current user's profile
// @Summary     Update profile
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateProfileRequest true "Profile fields"
// @Success     200 {object} models.UserProfile "Updated profile"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateProfileRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	profile, err := h.profileService.UpsertProfile(userID, services.ProfileInput{
		DateOfBirth:       optionalDate(req.DateOfBirth),
		Gender:            req.Gender,
		Height:            req.Height,
		CurrentWeight:     req.CurrentWeight,
		TargetWeight:      req.TargetWeight,
		ActivityLevel:     req.ActivityLevel,
		Bio:               req.Bio,
		ProfilePictureURL: req.ProfilePictureURL,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// AddWeight records a weight observation
// @Summary     Record weight
// @Description Adds a weight entry and updates the profile's current weight
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AddWeightRequest true "Weight entry"
// @Success     201 {object} models.WeightHistory "Weight recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/profile/weights [post]
func (h *ProfileHandler) AddWeight(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddWeightRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.profileService.AddWeight(userID, req.Weight, requiredDate(req.Date), req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"weight": entry})
}

// GetWeightHistory lists weight observations, newest first
// @Summary     Get weight history
// @Tags        profile
// @Produce     json
// @Security    BearerAuth
// @Param       page     query int false "Page number (default 1)"
// @Param       pageSize query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.WeightHistory] "Paginated weights"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/profile/weights [get]
func (h *ProfileHandler) GetWeightHistory(c *gin.Context) {
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

	result, err := h.profileService.GetWeightHistory(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
