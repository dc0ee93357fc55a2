package testutil_test

import (
	"testing"
	"time"

	"fittrack/internal/errors"
	"fittrack/internal/models"
	"fittrack/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{
		"users", "tokens", "user_profiles", "weight_histories", "goals", "exercises",
		"workouts", "workout_exercises", "exercise_sets", "workout_templates",
		"template_exercises", "nutrition_logs", "meals", "progress_photos", "audit_logs",
	} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDB_enforcesForeignKeys(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	goal := &models.Goal{
		UserID:    "0190f0c8-dead-7000-8000-000000000000",
		Name:      "Orphan",
		GoalType:  models.GoalTypeStrength,
		StartDate: testutil.Day(2024, time.January, 1),
	}
	if err := db.Create(goal).Error; err == nil {
		t.Fatal("expected foreign key violation for a goal without a user")
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == "" {
		t.Fatal("user should have an ID")
	}

	system := testutil.CreateTestExercise(t, db, nil)
	if !system.IsSystem() || system.IsCustom {
		t.Error("exercise without creator should be a system exercise")
	}

	custom := testutil.CreateTestExercise(t, db, &user.ID)
	if custom.IsSystem() || !custom.IsCustom {
		t.Error("exercise with creator should be custom")
	}

	workout := testutil.CreateTestWorkout(t, db, user.ID, system.ID)
	if n := testutil.CountRows(t, db, &models.WorkoutExercise{}, "workout_id = ?", workout.ID); n != 1 {
		t.Errorf("expected 1 workout exercise, got %d", n)
	}

	goal := testutil.CreateTestGoal(t, db, user.ID)
	if goal.Completed {
		t.Error("new goal should not be completed")
	}

	testutil.CreateTestProfile(t, db, user.ID)
	testutil.CreateTestToken(t, db, user.ID, "abc123", models.ScopeAuthentication, time.Now().Add(time.Hour))
	if n := testutil.CountRows(t, db, &models.Token{}, "user_id = ?", user.ID); n != 1 {
		t.Errorf("expected 1 token, got %d", n)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrGoalNotFound, "custom message")
	testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
}

func TestAssertFieldError(t *testing.T) {
	err := errors.WithFields(errors.ErrValidation, []errors.FieldError{{Field: "email", Message: "is required"}})
	testutil.AssertFieldError(t, err, "email")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
