package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fittrack/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// TestPassword is the plaintext password of every fixture user.
const TestPassword = "password123"

// Day returns midnight UTC of the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "Test",
		LastName:     "User",
		AccountType:  models.AccountTypeUser,
		Active:       true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestExercise creates an exercise. A nil creatorID makes it a system exercise.
func CreateTestExercise(t *testing.T, db *gorm.DB, creatorID *string) *models.Exercise {
	t.Helper()

	exercise := &models.Exercise{
		Name:           fmt.Sprintf("Test Exercise %d", nextID()),
		Category:       models.ExerciseCategoryUpperBody,
		PrimaryMuscles: []string{"chest"},
		Equipment:      []string{"barbell"},
		IsCustom:       creatorID != nil,
		CreatorID:      creatorID,
	}
	if err := db.Create(exercise).Error; err != nil {
		t.Fatalf("failed to create test exercise: %v", err)
	}
	return exercise
}

// CreateTestWorkout creates a strength workout with one exercise at position 1.
func CreateTestWorkout(t *testing.T, db *gorm.DB, userID, exerciseID string) *models.Workout {
	t.Helper()

	workout := &models.Workout{
		UserID:      userID,
		Name:        fmt.Sprintf("Test Workout %d", nextID()),
		WorkoutType: models.WorkoutTypeStrength,
		Date:        Day(2024, time.March, 1),
		Exercises: []models.WorkoutExercise{
			{ExerciseID: exerciseID, Position: 1},
		},
	}
	if err := db.Create(workout).Error; err != nil {
		t.Fatalf("failed to create test workout: %v", err)
	}
	return workout
}

// CreateTestGoal creates an open weight-loss goal.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID string) *models.Goal {
	t.Helper()

	target := 70.0
	goal := &models.Goal{
		UserID:      userID,
		Name:        fmt.Sprintf("Test Goal %d", nextID()),
		GoalType:    models.GoalTypeWeightLoss,
		TargetValue: &target,
		StartDate:   Day(2024, time.January, 1),
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestProfile creates an empty profile row for the user.
func CreateTestProfile(t *testing.T, db *gorm.DB, userID string) *models.UserProfile {
	t.Helper()

	profile := &models.UserProfile{UserID: userID}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}
	return profile
}

// CreateTestToken stores a token row with the given hash and expiry.
func CreateTestToken(t *testing.T, db *gorm.DB, userID, hash string, scope models.TokenScope, expiry time.Time) *models.Token {
	t.Helper()

	token := &models.Token{
		Hash:   hash,
		UserID: userID,
		Scope:  scope,
		Expiry: expiry,
	}
	if err := db.Create(token).Error; err != nil {
		t.Fatalf("failed to create test token: %v", err)
	}
	return token
}
