package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fittrack/internal/models"
	"fittrack/internal/pagination"
	"fittrack/internal/testutil"
)

func floatPtr(v float64) *float64 { return &v }

func TestAddMeal_recomputesTotals(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewNutritionService(db)
	user := testutil.CreateTestUser(t, db)
	day := testutil.Day(2024, time.June, 10)

	_, err := svc.AddMeal(user.ID, day, MealInput{
		MealType: models.MealTypeBreakfast,
		Name:     "Oats",
		Calories: intPtr(350),
		Protein:  floatPtr(12.4),
		Carbs:    floatPtr(60),
		Fat:      floatPtr(6.2),
	})
	require.NoError(t, err)

	lunch, err := svc.AddMeal(user.ID, day.Add(13*time.Hour), MealInput{
		MealType: models.MealTypeLunch,
		Name:     "Chicken rice",
		Calories: intPtr(650),
		Protein:  floatPtr(45.3),
		Carbs:    floatPtr(70),
	})
	require.NoError(t, err)

	log, err := svc.GetLog(user.ID, day)
	require.NoError(t, err)
	assert.Len(t, log.Meals, 2, "both meals land in the same day's log")
	assert.Equal(t, 1000, log.TotalCalories)
	assert.Equal(t, 58, log.TotalProtein)
	assert.Equal(t, 130, log.TotalCarbs)
	assert.Equal(t, 6, log.TotalFat)
	assert.EqualValues(t, 1, testutil.CountRows(t, db, &models.NutritionLog{}, "user_id = ?", user.ID))

	require.NoError(t, svc.DeleteMeal(user.ID, lunch.ID))
	log, err = svc.GetLog(user.ID, day)
	require.NoError(t, err)
	assert.Equal(t, 350, log.TotalCalories)
	assert.Equal(t, 12, log.TotalProtein)
}

func TestAddMeal_invalid(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewNutritionService(db)
	user := testutil.CreateTestUser(t, db)

	_, err := svc.AddMeal(user.ID, testutil.Day(2024, time.June, 10), MealInput{MealType: "brunch", Calories: intPtr(-1)})
	testutil.AssertFieldError(t, err, "name")
	testutil.AssertFieldError(t, err, "mealType")
	testutil.AssertFieldError(t, err, "calories")
	assert.EqualValues(t, 0, testutil.CountRows(t, db, &models.NutritionLog{}, "user_id = ?", user.ID))
}

func TestNutritionLog_onePerUserAndDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	user := testutil.CreateTestUser(t, db)
	day := testutil.Day(2024, time.June, 11)

	require.NoError(t, db.Create(&models.NutritionLog{UserID: user.ID, Date: day}).Error)
	err := db.Create(&models.NutritionLog{UserID: user.ID, Date: day}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	svc := NewNutritionService(db)
	_, err = svc.AddMeal(user.ID, day, MealInput{MealType: models.MealTypeSnack, Name: "Nuts"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, testutil.CountRows(t, db, &models.NutritionLog{}, "user_id = ?", user.ID))
}

func TestUpdateLog(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewNutritionService(db)
	user := testutil.CreateTestUser(t, db)
	day := testutil.Day(2024, time.June, 12)

	notes := "hydrated"
	log, err := svc.UpdateLog(user.ID, day, intPtr(2500), &notes)
	require.NoError(t, err)
	require.NotNil(t, log.WaterIntake)
	assert.Equal(t, 2500, *log.WaterIntake)
	assert.Equal(t, "hydrated", log.Notes)

	_, err = svc.UpdateLog(user.ID, day, intPtr(-5), nil)
	testutil.AssertFieldError(t, err, "waterIntake")
}

func TestGetUserLogs_range(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewNutritionService(db)
	user := testutil.CreateTestUser(t, db)

	for _, d := range []int{1, 2, 3} {
		_, err := svc.AddMeal(user.ID, testutil.Day(2024, time.July, d), MealInput{MealType: models.MealTypeSnack, Name: "Apple"})
		require.NoError(t, err)
	}

	from, to := testutil.Day(2024, time.July, 2), testutil.Day(2024, time.July, 3)
	result, err := svc.GetUserLogs(user.ID, pagination.PageRequest{}, &from, &to)
	require.NoError(t, err)
	require.EqualValues(t, 2, result.TotalItems)
	assert.Equal(t, 3, result.Data[0].Date.Day())
}

func TestDeleteLog(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewNutritionService(db)
	user := testutil.CreateTestUser(t, db)
	day := testutil.Day(2024, time.August, 1)

	meal, err := svc.AddMeal(user.ID, day, MealInput{MealType: models.MealTypeDinner, Name: "Soup"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteLog(user.ID, day))
	assert.EqualValues(t, 0, testutil.CountRows(t, db, &models.Meal{}, "id = ?", meal.ID))

	testutil.AssertAppError(t, svc.DeleteLog(user.ID, day), "NUTRITION_LOG_NOT_FOUND")
	testutil.AssertAppError(t, svc.DeleteMeal(user.ID, meal.ID), "MEAL_NOT_FOUND")
	_, err = svc.GetLog(user.ID, day)
	testutil.AssertAppError(t, err, "NUTRITION_LOG_NOT_FOUND")
}
