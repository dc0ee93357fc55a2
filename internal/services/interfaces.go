package services

import (
	"time"

	"fittrack/internal/models"
	"fittrack/internal/pagination"
)

// CreateUserInput is a registration request. AccountType is accepted but
// ignored: new accounts are always created as regular users.
type CreateUserInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	AccountType string
}

// UpdateUserInput holds optional changes to the current user.
type UpdateUserInput struct {
	FirstName           *string
	LastName            *string
	PreferredUnitSystem *models.UnitSystem
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(input CreateUserInput) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	UpdateUser(id string, input UpdateUserInput) (*models.User, error)
	DeleteUser(id string) error
	ResetPassword(userID, newPassword string) error
}

// TokenServicer defines the contract for issuing and resolving opaque tokens.
type TokenServicer interface {
	Issue(userID string, ttl time.Duration, scope models.TokenScope) (string, *models.Token, error)
	UserForToken(scope models.TokenScope, plaintext string) (*models.User, error)
	DeleteAllForUser(scope models.TokenScope, userID string) error
	DeleteExpired(userID string) (int64, error)
}

// ProfileInput holds optional profile fields; nil leaves a field unchanged.
type ProfileInput struct {
	DateOfBirth       *time.Time
	Gender            *models.Gender
	Height            *float64
	CurrentWeight     *float64
	TargetWeight      *float64
	ActivityLevel     *int
	Bio               *string
	ProfilePictureURL *string
}

// ProfileServicer defines the contract for profile and weight tracking.
type ProfileServicer interface {
	GetProfile(userID string) (*models.UserProfile, error)
	UpsertProfile(userID string, input ProfileInput) (*models.UserProfile, error)
	AddWeight(userID string, weight float64, date time.Time, notes string) (*models.WeightHistory, error)
	GetWeightHistory(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.WeightHistory], error)
}

// GoalInput describes a new goal.
type GoalInput struct {
	Name         string
	Description  string
	GoalType     models.GoalType
	TargetValue  *float64
	CurrentValue *float64
	StartDate    time.Time
	TargetDate   *time.Time
}

// GoalServicer defines the contract for goal-related business logic.
type GoalServicer interface {
	CreateGoal(userID string, input GoalInput) (*models.Goal, error)
	GetUserGoals(userID string, page pagination.PageRequest, completed *bool) (*pagination.PageResponse[models.Goal], error)
	GetGoalByID(userID, goalID string) (*models.Goal, error)
	UpdateGoalProgress(userID, goalID string, currentValue float64) (*models.Goal, error)
	CompleteGoal(userID, goalID string) (*models.Goal, error)
	DeleteGoal(userID, goalID string) error
}

// ExerciseInput describes a custom exercise.
type ExerciseInput struct {
	Name             string
	Description      string
	Instructions     string
	Category         models.ExerciseCategory
	PrimaryMuscles   []string
	SecondaryMuscles []string
	Equipment        []string
	Difficulty       *int
	VideoURL         string
	ImageURL         string
}

// ExerciseServicer defines the contract for the exercise library.
type ExerciseServicer interface {
	CreateExercise(userID string, input ExerciseInput) (*models.Exercise, error)
	GetExercises(userID string, page pagination.PageRequest, category *models.ExerciseCategory) (*pagination.PageResponse[models.Exercise], error)
	GetExerciseByID(userID, exerciseID string) (*models.Exercise, error)
	DeleteExercise(userID, exerciseID string) error
}

// ExerciseItemInput places an exercise at a position in a workout or template.
type ExerciseItemInput struct {
	ExerciseID      string
	Order           int
	Sets            *int
	TargetReps      *int
	TargetDuration  *int
	RestBetweenSets *int
	Notes           string
}

// WorkoutInput describes a new workout and its ordered exercises.
type WorkoutInput struct {
	Name           string
	Description    string
	WorkoutType    models.WorkoutType
	Duration       *int
	CaloriesBurned *int
	Date           time.Time
	StartTime      *time.Time
	EndTime        *time.Time
	Notes          string
	Rating         *int
	Exercises      []ExerciseItemInput
}

// SetInput describes one performed set. A zero SetNumber appends after the last set.
type SetInput struct {
	SetNumber int
	Weight    *float64
	Reps      *int
	Duration  *int
	Distance  *float64
	Completed *bool
	RPE       *int
	Notes     string
}

// WorkoutServicer defines the contract for workout-related business logic.
type WorkoutServicer interface {
	CreateWorkout(userID string, input WorkoutInput) (*models.Workout, error)
	GetUserWorkouts(userID string, page pagination.PageRequest, from, to *time.Time) (*pagination.PageResponse[models.Workout], error)
	GetWorkoutByID(userID, workoutID string) (*models.Workout, error)
	AddSet(userID, workoutID, workoutExerciseID string, input SetInput) (*models.ExerciseSet, error)
	DeleteWorkout(userID, workoutID string) error
}

// TemplateInput describes a new workout template.
type TemplateInput struct {
	Name              string
	Description       string
	WorkoutType       models.WorkoutType
	EstimatedDuration *int
	Difficulty        *int
	IsPublic          bool
	Exercises         []ExerciseItemInput
}

// TemplateServicer defines the contract for workout templates.
type TemplateServicer interface {
	CreateTemplate(userID string, input TemplateInput) (*models.WorkoutTemplate, error)
	GetTemplates(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.WorkoutTemplate], error)
	GetTemplateByID(userID, templateID string) (*models.WorkoutTemplate, error)
	DeleteTemplate(userID, templateID string) error
	StartWorkout(userID, templateID string, date time.Time) (*models.Workout, error)
}

// MealInput describes a meal added to a day's nutrition log.
type MealInput struct {
	MealType models.MealType
	Name     string
	Calories *int
	Protein  *float64
	Carbs    *float64
	Fat      *float64
	Time     *time.Time
	Notes    string
}

// NutritionServicer defines the contract for nutrition tracking.
type NutritionServicer interface {
	GetLog(userID string, date time.Time) (*models.NutritionLog, error)
	GetUserLogs(userID string, page pagination.PageRequest, from, to *time.Time) (*pagination.PageResponse[models.NutritionLog], error)
	UpdateLog(userID string, date time.Time, waterIntake *int, notes *string) (*models.NutritionLog, error)
	AddMeal(userID string, date time.Time, input MealInput) (*models.Meal, error)
	DeleteMeal(userID, mealID string) error
	DeleteLog(userID string, date time.Time) error
}

// PhotoInput describes a new progress photo.
type PhotoInput struct {
	PhotoURL string
	Date     time.Time
	Category *models.PhotoCategory
	Notes    string
}

// PhotoServicer defines the contract for progress photos.
type PhotoServicer interface {
	CreatePhoto(userID string, input PhotoInput) (*models.ProgressPhoto, error)
	GetUserPhotos(userID string, page pagination.PageRequest, category *models.PhotoCategory) (*pagination.PageResponse[models.ProgressPhoto], error)
	DeletePhoto(userID, photoID string) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
