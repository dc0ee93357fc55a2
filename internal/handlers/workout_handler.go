package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fittrack/internal/models"
	"fittrack/internal/pagination"
	"fittrack/internal/services"
)

// WorkoutHandler handles workout-related requests.
type WorkoutHandler struct {
	workoutService services.WorkoutServicer
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService services.WorkoutServicer) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// ExerciseItemRequest places an exercise in a workout or template. Item rules
// (order uniqueness, visibility) are checked by the service.
type ExerciseItemRequest struct {
	ExerciseID      string `json:"exerciseId" example:"0190f0c8-0000-7000-8000-000000000001"`
	Order           int    `json:"order" example:"1"`
	Sets            *int   `json:"sets"`
	TargetReps      *int   `json:"targetReps"`
	TargetDuration  *int   `json:"targetDuration"`
	RestBetweenSets *int   `json:"restBetweenSets"`
	Notes           string `json:"notes"`
}

// CreateWorkoutRequest represents the request payload for creating a workout.
type CreateWorkoutRequest struct {
	Name           string                `json:"name" binding:"required,max=100" example:"Leg day"`
	Description    string                `json:"description"`
	WorkoutType    models.WorkoutType    `json:"workoutType" binding:"required,workout_type" example:"strength"`
	Duration       *int                  `json:"duration" binding:"omitempty,min=0"`
	CaloriesBurned *int                  `json:"caloriesBurned" binding:"omitempty,min=0"`
	Date           string                `json:"date" binding:"required,iso_date" example:"2024-03-01"`
	StartTime      *time.Time            `json:"startTime"`
	EndTime        *time.Time            `json:"endTime"`
	Notes          string                `json:"notes"`
	Rating         *int                  `json:"rating" binding:"omitempty,min=1,max=5"`
	Exercises      []ExerciseItemRequest `json:"exercises"`
}

// AddSetRequest represents one performed set. setNumber defaults to the next number.
type AddSetRequest struct {
	SetNumber int      `json:"setNumber" binding:"omitempty,min=1"`
	Weight    *float64 `json:"weight" binding:"omitempty,gte=0"`
	Reps      *int     `json:"reps" binding:"omitempty,min=0"`
	Duration  *int     `json:"duration" binding:"omitempty,min=0"`
	Distance  *float64 `json:"distance" binding:"omitempty,gte=0"`
	Completed *bool    `json:"completed"`
	RPE       *int     `json:"rpe" binding:"omitempty,min=1,max=10"`
	Notes     string   `json:"notes"`
}

func toItemInputs(items []ExerciseItemRequest) []services.ExerciseItemInput {
	out := make([]services.ExerciseItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, services.ExerciseItemInput{
			ExerciseID:      it.ExerciseID,
			Order:           it.Order,
			Sets:            it.Sets,
			TargetReps:      it.TargetReps,
			TargetDuration:  it.TargetDuration,
			RestBetweenSets: it.RestBetweenSets,
			Notes:           it.Notes,
		})
	}
	return out
}

// CreateWorkout handles the creation of a new workout
// @Summary     Create a workout
// @Description Create a workout with an ordered list of exercises
// @Tags        workouts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateWorkoutRequest true "Workout details"
// @Success     201 {object} models.Workout "Workout created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Exercise not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/workouts [post]
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateWorkoutRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	workout, err := h.workoutService.CreateWorkout(userID, services.WorkoutInput{
		Name:           req.Name,
		Description:    req.Description,
		WorkoutType:    req.WorkoutType,
		Duration:       req.Duration,
		CaloriesBurned: req.CaloriesBurned,
		Date:           requiredDate(req.Date),
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Notes:          req.Notes,
		Rating:         req.Rating,
		Exercises:      toItemInputs(req.Exercises),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"workout": workout})
}

// GetWorkouts handles listing workouts for the authenticated user
// @Summary     Get workouts
// @Tags        workouts
// @Produce     json
// @Security    BearerAuth
// @Param       from     query string false "Earliest date (YYYY-MM-DD)"
// @Param       to       query string false "Latest date (YYYY-MM-DD)"
// @Param       page     query int    false "Page number (default 1)"
// @Param       pageSize query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Workout] "Paginated workouts"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/workouts [get]
func (h *WorkoutHandler) GetWorkouts(c *gin.Context) {
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

	from, err := parseDateQuery(c, "from")
	if err != nil {
		respondWithError(c, err)
		return
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.workoutService.GetUserWorkouts(userID, page, from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetWorkout returns a workout with its exercises and sets
// @Summary     Get workout by ID
// @Tags        workouts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Workout ID"
// @Success     200 {object} models.Workout "Workout details"
// @Failure     400 {object} ErrorResponse "Invalid workout ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Workout not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/workouts/{id} [get]
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	workoutID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	workout, err := h.workoutService.GetWorkoutByID(userID, workoutID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"workout": workout})
}

// AddSet records a performed set for an exercise in a workout
// @Summary     Add a set
// @Tags        workouts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id             path string        true "Workout ID"
// @Param       exerciseItemId path string        true "Workout exercise ID"
// @Param       request        body AddSetRequest true "Set details"
// @Success     201 {object} models.ExerciseSet "Set recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Workout exercise not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/workouts/{id}/exercises/{exerciseItemId}/sets [post]
func (h *WorkoutHandler) AddSet(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	workoutID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	itemID, err := parsePathID(c, "exerciseItemId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddSetRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	set, err := h.workoutService.AddSet(userID, workoutID, itemID, services.SetInput{
		SetNumber: req.SetNumber,
		Weight:    req.Weight,
		Reps:      req.Reps,
		Duration:  req.Duration,
		Distance:  req.Distance,
		Completed: req.Completed,
		RPE:       req.RPE,
		Notes:     req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"set": set})
}

// DeleteWorkout handles deleting a workout
// @Summary     Delete workout
// @Tags        workouts
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Workout ID"
// @Success     200 {object} MessageResponse "Workout deleted"
// @Failure     400 {object} ErrorResponse "Invalid workout ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Workout not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/workouts/{id} [delete]
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	workoutID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.workoutService.DeleteWorkout(userID, workoutID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Workout deleted successfully"})
}
