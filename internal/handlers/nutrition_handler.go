package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fittrack/internal/models"
	"fittrack/internal/pagination"
	"fittrack/internal/services"
)

// NutritionHandler handles daily nutrition logs and meals.
type NutritionHandler struct {
	nutritionService services.NutritionServicer
}

// NewNutritionHandler creates a new NutritionHandler.
func NewNutritionHandler(nutritionService services.NutritionServicer) *NutritionHandler {
	return &NutritionHandler{nutritionService: nutritionService}
}

// UpdateLogRequest represents the request payload for a day's log.
type UpdateLogRequest struct {
	WaterIntake *int    `json:"waterIntake" binding:"omitempty,min=0" example:"2000"`
	Notes       *string `json:"notes"`
}

// AddMealRequest represents the request payload for adding a meal.
type AddMealRequest struct {
	MealType models.MealType `json:"mealType" binding:"required,meal_type" example:"lunch"`
	Name     string          `json:"name" binding:"required,max=100" example:"Chicken salad"`
	Calories *int            `json:"calories" binding:"omitempty,min=0"`
	Protein  *float64        `json:"protein" binding:"omitempty,gte=0"`
	Carbs    *float64        `json:"carbs" binding:"omitempty,gte=0"`
	Fat      *float64        `json:"fat" binding:"omitempty,gte=0"`
	Time     *time.Time      `json:"time"`
	Notes    string          `json:"notes"`
}

// GetLogs lists nutrition logs in a date range
// @Summary     Get nutrition logs
// @Tags        nutrition
// @Produce     json
// @Security    BearerAuth
// @Param       from     query string false "Earliest date (YYYY-MM-DD)"
// @Param       to       query string false "Latest date (YYYY-MM-DD)"
// @Param       page     query int    false "Page number (default 1)"
// @Param       pageSize query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.NutritionLog] "Paginated logs"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/nutrition [get]
func (h *NutritionHandler) GetLogs(c *gin.Context) {
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

	result, err := h.nutritionService.GetUserLogs(userID, page, from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetLog returns the log for one date with its meals
// @Summary     Get nutrition log
// @Tags        nutrition
// @Produce     json
// @Security    BearerAuth
// @Param       date path string true "Date (YYYY-MM-DD)"
// @Success     200 {object} models.NutritionLog "Nutrition log"
// @Failure     400 {object} ErrorResponse "Invalid date"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Nutrition log not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/nutrition/{date} [get]
func (h *NutritionHandler) GetLog(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	date, err := parsePathDate(c, "date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	log, err := h.nutritionService.GetLog(userID, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"nutritionLog": log})
}

// UpdateLog sets water intake and notes for a date
// @Summary     Update nutrition log
// @Description Creates the day's log on first use
// @Tags        nutrition
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       date    path string           true "Date (YYYY-MM-DD)"
// @Param       request body UpdateLogRequest true "Log fields"
// @Success     200 {object} models.NutritionLog "Updated log"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/nutrition/{date} [put]
func (h *NutritionHandler) UpdateLog(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	date, err := parsePathDate(c, "date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateLogRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	log, err := h.nutritionService.UpdateLog(userID, date, req.WaterIntake, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"nutritionLog": log})
}

// AddMeal adds a meal to the log for a date
// @Summary     Add meal
// @Description Creates the day's log on first use and recomputes its totals
// @Tags        nutrition
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       date    path string         true "Date (YYYY-MM-DD)"
// @Param       request body AddMealRequest true "Meal details"
// @Success     201 {object} models.Meal "Meal added"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/nutrition/{date}/meals [post]
func (h *NutritionHandler) AddMeal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	date, err := parsePathDate(c, "date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddMealRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	meal, err := h.nutritionService.AddMeal(userID, date, services.MealInput{
		MealType: req.MealType,
		Name:     req.Name,
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
		Time:     req.Time,
		Notes:    req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"meal": meal})
}

// DeleteMeal removes a meal and recomputes its log's totals
// @Summary     Delete meal
// @Tags        nutrition
// @Produce     json
// @Security    BearerAuth
// @Param       mealId path string true "Meal ID"
// @Success     200 {object} MessageResponse "Meal deleted"
// @Failure     400 {object} ErrorResponse "Invalid meal ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Meal not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/nutrition/meals/{mealId} [delete]
func (h *NutritionHandler) DeleteMeal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	mealID, err := parsePathID(c, "mealId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.nutritionService.DeleteMeal(userID, mealID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Meal deleted successfully"})
}

// DeleteLog removes a day's log and its meals
// @Summary     Delete nutrition log
// @Tags        nutrition
// @Produce     json
// @Security    BearerAuth
// @Param       date path string true "Date (YYYY-MM-DD)"
// @Success     200 {object} MessageResponse "Log deleted"
// @Failure     400 {object} ErrorResponse "Invalid date"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Nutrition log not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /v1/nutrition/{date} [delete]
func (h *NutritionHandler) DeleteLog(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	date, err := parsePathDate(c, "date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.nutritionService.DeleteLog(userID, date); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Nutrition log deleted successfully"})
}
