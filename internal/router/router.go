// Package router assembles services, handlers and middleware into the HTTP API.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"fittrack/internal/config"
	_ "fittrack/internal/docs" // registers the swagger document
	apperrors "fittrack/internal/errors"
	"fittrack/internal/handlers"
	"fittrack/internal/middleware"
	"fittrack/internal/services"
	"fittrack/internal/validator"
)

// New builds the gin engine for the API backed by db.
func New(db *gorm.DB, cfg *config.Config) *gin.Engine {
	validator.Register()

	// Services
	userService := services.NewUserService(db, cfg.BcryptCost)
	tokenService := services.NewTokenService(db)
	auditService := services.NewAuditService(db)
	profileService := services.NewProfileService(db)
	goalService := services.NewGoalService(db)
	exerciseService := services.NewExerciseService(db)
	workoutService := services.NewWorkoutService(db)
	templateService := services.NewTemplateService(db)
	nutritionService := services.NewNutritionService(db)
	photoService := services.NewPhotoService(db)

	// Handlers
	userHandler := handlers.NewUserHandler(userService, tokenService, auditService, cfg.AuthTokenTTL, cfg.ResetTokenTTL)
	profileHandler := handlers.NewProfileHandler(profileService)
	goalHandler := handlers.NewGoalHandler(goalService)
	exerciseHandler := handlers.NewExerciseHandler(exerciseService)
	workoutHandler := handlers.NewWorkoutHandler(workoutService)
	templateHandler := handlers.NewTemplateHandler(templateService)
	nutritionHandler := handlers.NewNutritionHandler(nutritionService)
	photoHandler := handlers.NewPhotoHandler(photoService)

	router := gin.New()
	router.Use(middleware.RequestLogging())
	router.Use(middleware.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, apperrors.ErrNotFound.Response())
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "environment": cfg.Env})
	})

	v1 := router.Group("/v1")
	requireAuth := middleware.Authenticate(tokenService)

	// Account routes
	v1.POST("/user", userHandler.Register)
	v1.POST("/user/login", userHandler.Login)
	v1.POST("/user/password-reset", userHandler.RequestPasswordReset)
	v1.PUT("/user/password", userHandler.ResetPassword)
	v1.GET("/user", requireAuth, userHandler.GetCurrentUser)
	v1.PUT("/user", requireAuth, userHandler.UpdateCurrentUser)
	v1.DELETE("/user", requireAuth, userHandler.DeleteCurrentUser)

	protected := v1.Group("/")
	protected.Use(requireAuth)

	profile := protected.Group("/profile")
	profile.GET("", profileHandler.GetProfile)
	profile.PUT("", profileHandler.UpdateProfile)
	profile.POST("/weights", profileHandler.AddWeight)
	profile.GET("/weights", profileHandler.GetWeightHistory)

	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/:id", goalHandler.GetGoal)
	goals.PUT("/:id/progress", goalHandler.UpdateGoalProgress)
	goals.POST("/:id/complete", goalHandler.CompleteGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	exercises := protected.Group("/exercises")
	exercises.POST("", exerciseHandler.CreateExercise)
	exercises.GET("", exerciseHandler.GetExercises)
	exercises.GET("/:id", exerciseHandler.GetExercise)
	exercises.DELETE("/:id", exerciseHandler.DeleteExercise)

	workouts := protected.Group("/workouts")
	workouts.POST("", workoutHandler.CreateWorkout)
	workouts.GET("", workoutHandler.GetWorkouts)
	workouts.GET("/:id", workoutHandler.GetWorkout)
	workouts.DELETE("/:id", workoutHandler.DeleteWorkout)
	workouts.POST("/:id/exercises/:exerciseItemId/sets", workoutHandler.AddSet)

	templates := protected.Group("/templates")
	templates.POST("", templateHandler.CreateTemplate)
	templates.GET("", templateHandler.GetTemplates)
	templates.GET("/:id", templateHandler.GetTemplate)
	templates.DELETE("/:id", templateHandler.DeleteTemplate)
	templates.POST("/:id/workouts", templateHandler.StartWorkout)

	nutrition := protected.Group("/nutrition")
	nutrition.GET("", nutritionHandler.GetLogs)
	nutrition.DELETE("/meals/:mealId", nutritionHandler.DeleteMeal)
	nutrition.GET("/:date", nutritionHandler.GetLog)
	nutrition.PUT("/:date", nutritionHandler.UpdateLog)
	nutrition.DELETE("/:date", nutritionHandler.DeleteLog)
	nutrition.POST("/:date/meals", nutritionHandler.AddMeal)

	photos := protected.Group("/photos")
	photos.POST("", photoHandler.CreatePhoto)
	photos.GET("", photoHandler.GetPhotos)
	photos.DELETE("/:id", photoHandler.DeletePhoto)

	return router
}
