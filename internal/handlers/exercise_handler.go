package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fittrack/internal/errors"
	"fittrack/internal/models"
	"fittrack/internal/pagination"
	"fittrack/internal/services"
)

// ExerciseHandler handles the exercise library.
type ExerciseHandler struct {
	exerciseService services.ExerciseServicer
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService services.ExerciseServicer) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// CreateExerciseRequest represents the request payload for a custom exercise.
type CreateExerciseRequest struct {
	Name             string                  `json:"name" binding:"required,max=100" example:"Bulgarian split squat"`
	Description      string                  `json:"description"`
	Instructions     string                  `json:"instructions"`
	Category         models.ExerciseCategory `json:"category" binding:"required,exercise_category" example:"lower_body"`
	PrimaryMuscles   []string                `json:"primaryMuscles"`
	SecondaryMuscles []string                `json:"secondaryMuscles"`
	Equipment        []string                `json:"equipment"`
	Difficulty       *int                    `json:"difficulty" binding:"omitempty,min=1,max=5"`
	VideoURL         string                  `json:"videoUrl" binding:"omitempty,url,max=255"`
	ImageURL         string                  `json:"imageUrl" binding:"omitempty,url,max=255"`
}

// CreateExercise adds a custom exercise owned by the caller
// @Summary     Create a custom exercise
// @Tags        exercises
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateExerciseRequest true "Exercise details"
// @Success     201 {object} models.Exercise "Exercise created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExerciseRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	exercise, err := h.exerciseService.CreateExercise(userID, services.ExerciseInput{
		Name:             req.Name,
		Description:      req.Description,
		Instructions:     req.Instructions,
		Category:         req.Category,
		PrimaryMuscles:   req.PrimaryMuscles,
		SecondaryMuscles: req.SecondaryMuscles,
		Equipment:        req.Equipment,
		Difficulty:       req.Difficulty,
		VideoURL:         req.VideoURL,
		ImageURL:         req.ImageURL,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"exercise": exercise})
}

// GetExercises lists system exercises and the caller's custom ones
// @Summary     Get exercises
// @Tags        exercises
// @Produce     json
// @Security    BearerAuth
// @Param       category query string false "Filter by category"
// @Param       page     query int    false "Page number (default 1)"
// @Param       pageSize query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Exercise] "Paginated exercises"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/exercises [get]
func (h *ExerciseHandler) GetExercises(c *gin.Context) {
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

	var category *models.ExerciseCategory
	if v := c.Query("category"); v != "" {
		cat := models.ExerciseCategory(v)
		if !models.IsOneOf(cat, models.ExerciseCategories) {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is not a permitted value"))
			return
		}
		category = &cat
	}

	result, err := h.exerciseService.GetExercises(userID, page, category)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetExercise handles retrieving a visible exercise
// @Summary     Get exercise by ID
// @Tags        exercises
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Exercise ID"
// @Success     200 {object} models.Exercise "Exercise details"
// @Failure     400 {object} ErrorResponse "Invalid exercise ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Exercise not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/exercises/{id} [get]
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	exerciseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	exercise, err := h.exerciseService.GetExerciseByID(userID, exerciseID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"exercise": exercise})
}

// DeleteExercise deletes one of the caller's custom exercises
// @Summary     Delete exercise
// @Tags        exercises
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Exercise ID"
// @Success     200 {object} MessageResponse "Exercise deleted"
// @Failure     400 {object} ErrorResponse "Invalid exercise ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "System exercise"
// @Failure     404 {object} ErrorResponse "Exercise not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/exercises/{id} [delete]
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	exerciseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.exerciseService.DeleteExercise(userID, exerciseID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Exercise deleted successfully"})
}
