package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fittrack/internal/models"
	"fittrack/internal/pagination"
	"fittrack/internal/services"
)

// TemplateHandler handles workout templates.
type TemplateHandler struct {
	templateService services.TemplateServicer
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templateService services.TemplateServicer) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// CreateTemplateRequest represents the request payload for creating a template.
type CreateTemplateRequest struct {
	Name              string                `json:"name" binding:"required,max=100" example:"Push day"`
	Description       string                `json:"description"`
	WorkoutType       models.WorkoutType    `json:"workoutType" binding:"required,workout_type" example:"strength"`
	EstimatedDuration *int                  `json:"estimatedDuration" binding:"omitempty,min=0"`
	Difficulty        *int                  `json:"difficulty" binding:"omitempty,min=1,max=5"`
	IsPublic          bool                  `json:"isPublic"`
	Exercises         []ExerciseItemRequest `json:"exercises"`
}

// StartWorkoutRequest picks the date of the workout created from a template.
type StartWorkoutRequest struct {
	Date *string `json:"date" binding:"omitempty,iso_date" example:"2024-03-01"`
}

// CreateTemplate handles the creation of a new template
// @Summary     Create a workout template
// @Tags        templates
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTemplateRequest true "Template details"
// @Success     201 {object} models.WorkoutTemplate "Template created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Exercise not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/templates [post]
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTemplateRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	template, err := h.templateService.CreateTemplate(userID, services.TemplateInput{
		Name:              req.Name,
		Description:       req.Description,
		WorkoutType:       req.WorkoutType,
		EstimatedDuration: req.EstimatedDuration,
		Difficulty:        req.Difficulty,
		IsPublic:          req.IsPublic,
		Exercises:         toItemInputs(req.Exercises),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"template": template})
}

// GetTemplates lists the caller's templates and public ones
// @Summary     Get workout templates
// @Tags        templates
// @Produce     json
// @Security    BearerAuth
// @Param       page     query int false "Page number (default 1)"
// @Param       pageSize query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.WorkoutTemplate] "Paginated templates"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/templates [get]
func (h *TemplateHandler) GetTemplates(c *gin.Context) {
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

	result, err := h.templateService.GetTemplates(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTemplate returns an owned or public template
// @Summary     Get template by ID
// @Tags        templates
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Template ID"
// @Success     200 {object} models.WorkoutTemplate "Template details"
// @Failure     400 {object} ErrorResponse "Invalid template ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Template not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/templates/{id} [get]
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	templateID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	template, err := h.templateService.GetTemplateByID(userID, templateID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"template": template})
}

// DeleteTemplate deletes one of the caller's templates
// @Summary     Delete template
// @Tags        templates
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Template ID"
// @Success     200 {object} MessageResponse "Template deleted"
// @Failure     400 {object} ErrorResponse "Invalid template ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Template not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/templates/{id} [delete]
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	templateID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.templateService.DeleteTemplate(userID, templateID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Template deleted successfully"})
}

// StartWorkout creates a workout from a template
// @Summary     Start a workout from a template
// @Description Copies the template's exercises into a new workout. Date defaults to today (UTC).
// @Tags        templates
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string              true  "Template ID"
// @Param       request body StartWorkoutRequest false "Workout date"
// @Success     201 {object} models.Workout "Workout created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Template not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/templates/{id}/workouts [post]
func (h *TemplateHandler) StartWorkout(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	templateID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req StartWorkoutRequest
	if c.Request.ContentLength != 0 {
		if err := bindJSON(c, &req); err != nil {
			respondWithError(c, err)
			return
		}
	}

	date := time.Now().UTC()
	if d := optionalDate(req.Date); d != nil {
		date = *d
	}

	workout, err := h.templateService.StartWorkout(userID, templateID, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"workout": workout})
}
