package router_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fittrack/internal/config"
	"fittrack/internal/logger"
	"fittrack/internal/models"
	"fittrack/internal/router"
	"fittrack/internal/services"
	"fittrack/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
}

// testApp holds the full application stack for flow tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	cfg := &config.Config{
		Env:           "test",
		BcryptCost:    bcrypt.MinCost,
		AuthTokenTTL:  time.Hour,
		ResetTokenTTL: 45 * time.Minute,
	}
	return &testApp{DB: db, Router: router.New(db, cfg)}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result), "body: %s", rec.Body.String())
	return result
}

// registerAndLogin creates an account and returns a bearer token for it.
func (app *testApp) registerAndLogin(t *testing.T, email string) string {
	t.Helper()

	body := fmt.Sprintf(`{"firstName":"Alice","lastName":"Smith","email":%q,"password":"password123"}`, email)
	rec := app.request("POST", "/v1/user", body, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body = fmt.Sprintf(`{"email":%q,"password":"password123"}`, email)
	rec = app.request("POST", "/v1/user/login", body, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	tok := parseJSON(t, rec)["authenticationToken"].(map[string]interface{})
	return tok["token"].(string)
}

func TestHealth(t *testing.T) {
	app := setupApp(t)

	rec := app.request("GET", "/api/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", parseJSON(t, rec)["status"])
}

func TestUnknownRoute(t *testing.T) {
	app := setupApp(t)

	rec := app.request("GET", "/v1/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", parseJSON(t, rec)["code"])
}

func TestRegistrationFlow(t *testing.T) {
	app := setupApp(t)

	t.Run("success stores a regular active user", func(t *testing.T) {
		rec := app.request("POST", "/v1/user",
			`{"firstName":"Alice","lastName":"Smith","email":"Alice@Example.com","password":"password123","accountType":"admin"}`, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "User created successfully", parseJSON(t, rec)["message"])

		var user models.User
		require.NoError(t, app.DB.Where("lower(email) = ?", "alice@example.com").First(&user).Error)
		assert.Equal(t, models.AccountTypeUser, user.AccountType)
		assert.True(t, user.Active)
		assert.NotEqual(t, "password123", user.PasswordHash)
		assert.Equal(t, int64(1), testutil.CountRows(t, app.DB, &models.AuditLog{}, "action = ?", services.AuditUserRegister))
	})

	t.Run("case-insensitive duplicate is a conflict", func(t *testing.T) {
		rec := app.request("POST", "/v1/user",
			`{"firstName":"Alice","lastName":"Smith","email":"alice@example.com","password":"password123"}`, "")
		require.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "DUPLICATE_EMAIL", parseJSON(t, rec)["code"])
		assert.Equal(t, int64(1), testutil.CountRows(t, app.DB, &models.User{}, "lower(email) = ?", "alice@example.com"))
	})

	t.Run("empty body reports every field in order", func(t *testing.T) {
		rec := app.request("POST", "/v1/user", `{}`, "")
		require.Equal(t, http.StatusBadRequest, rec.Code)

		result := parseJSON(t, rec)
		assert.Equal(t, "VALIDATION_FAILED", result["code"])
		errs := result["errors"].([]interface{})
		var fields []string
		for _, e := range errs {
			fields = append(fields, e.(map[string]interface{})["field"].(string))
		}
		assert.Equal(t, []string{
			"firstName", "firstName", "lastName", "lastName", "email", "email", "password", "password",
		}, fields)
	})

	t.Run("short first name yields exactly one error", func(t *testing.T) {
		rec := app.request("POST", "/v1/user",
			`{"firstName":"Jo","lastName":"Smith","email":"jo@example.com","password":"password123"}`, "")
		require.Equal(t, http.StatusBadRequest, rec.Code)

		errs := parseJSON(t, rec)["errors"].([]interface{})
		require.Len(t, errs, 1)
		assert.Equal(t, map[string]interface{}{"field": "firstName", "message": "must be at least 3 characters"}, errs[0])
	})
}

func TestAuthenticationFlow(t *testing.T) {
	app := setupApp(t)
	token := app.registerAndLogin(t, "bob@example.com")

	rec := app.request("GET", "/v1/user", "", token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	user := parseJSON(t, rec)["user"].(map[string]interface{})
	assert.Equal(t, "bob@example.com", user["email"])
	assert.NotContains(t, rec.Body.String(), "passwordHash")

	rec = app.request("GET", "/v1/user", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.request("GET", "/v1/goals", "", "NOTAREALTOKEN")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_TOKEN", parseJSON(t, rec)["code"])

	rec = app.request("POST", "/v1/user/login", `{"email":"bob@example.com","password":"wrongpassword"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", parseJSON(t, rec)["code"])
}

func TestPasswordResetFlow(t *testing.T) {
	app := setupApp(t)
	oldToken := app.registerAndLogin(t, "carol@example.com")

	rec := app.request("POST", "/v1/user/password-reset", `{"email":"carol@example.com"}`, "")
	require.Equal(t, http.StatusAccepted, rec.Code)
	rec = app.request("POST", "/v1/user/password-reset", `{"email":"nobody@example.com"}`, "")
	require.Equal(t, http.StatusAccepted, rec.Code)

	var user models.User
	require.NoError(t, app.DB.Where("email = ?", "carol@example.com").First(&user).Error)
	resetToken, _, err := services.NewTokenService(app.DB).Issue(user.ID, time.Hour, models.ScopePasswordReset)
	require.NoError(t, err)

	rec = app.request("PUT", "/v1/user/password",
		fmt.Sprintf(`{"token":%q,"password":"brandnewpassword"}`, resetToken), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Sessions issued before the reset are revoked.
	rec = app.request("GET", "/v1/user", "", oldToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// The reset token is single use.
	rec = app.request("PUT", "/v1/user/password",
		fmt.Sprintf(`{"token":%q,"password":"anotherpassword"}`, resetToken), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.request("POST", "/v1/user/login", `{"email":"carol@example.com","password":"brandnewpassword"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWorkoutFlow(t *testing.T) {
	app := setupApp(t)
	token := app.registerAndLogin(t, "dave@example.com")
	squat := testutil.CreateTestExercise(t, app.DB, nil)

	body := fmt.Sprintf(`{
		"name":"Leg day","workoutType":"strength","date":"2024-03-01","rating":4,
		"exercises":[{"exerciseId":%q,"order":1,"sets":3,"targetReps":5}]
	}`, squat.ID)
	rec := app.request("POST", "/v1/workouts", body, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	workout := parseJSON(t, rec)["workout"].(map[string]interface{})
	workoutID := workout["id"].(string)
	items := workout["exercises"].([]interface{})
	require.Len(t, items, 1)
	itemID := items[0].(map[string]interface{})["id"].(string)

	for i := 0; i < 2; i++ {
		rec = app.request("POST", fmt.Sprintf("/v1/workouts/%s/exercises/%s/sets", workoutID, itemID),
			`{"weight":100,"reps":5,"rpe":8}`, token)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/v1/workouts/"+workoutID, "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	got := parseJSON(t, rec)["workout"].(map[string]interface{})
	sets := got["exercises"].([]interface{})[0].(map[string]interface{})["performedSets"].([]interface{})
	require.Len(t, sets, 2)
	assert.Equal(t, float64(1), sets[0].(map[string]interface{})["setNumber"])
	assert.Equal(t, float64(2), sets[1].(map[string]interface{})["setNumber"])

	// Duplicate positions are rejected.
	body = fmt.Sprintf(`{"name":"Bad","workoutType":"strength","date":"2024-03-02",
		"exercises":[{"exerciseId":%q,"order":1},{"exerciseId":%q,"order":1}]}`, squat.ID, squat.ID)
	rec = app.request("POST", "/v1/workouts", body, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Another user cannot see the workout.
	other := app.registerAndLogin(t, "erin@example.com")
	rec = app.request("GET", "/v1/workouts/"+workoutID, "", other)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.request("DELETE", "/v1/workouts/"+workoutID, "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(0), testutil.CountRows(t, app.DB, &models.ExerciseSet{}, "workout_exercise_id = ?", itemID))
}

func TestNutritionFlow(t *testing.T) {
	app := setupApp(t)
	token := app.registerAndLogin(t, "frank@example.com")

	rec := app.request("POST", "/v1/nutrition/2024-03-01/meals",
		`{"mealType":"breakfast","name":"Oats","calories":400,"protein":20.4,"carbs":60,"fat":8}`, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	mealID := parseJSON(t, rec)["meal"].(map[string]interface{})["id"].(string)

	rec = app.request("POST", "/v1/nutrition/2024-03-01/meals",
		`{"mealType":"lunch","name":"Salad","calories":350,"protein":15,"carbs":20,"fat":12}`, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = app.request("PUT", "/v1/nutrition/2024-03-01", `{"waterIntake":1500}`, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = app.request("GET", "/v1/nutrition/2024-03-01", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	log := parseJSON(t, rec)["nutritionLog"].(map[string]interface{})
	assert.Equal(t, float64(750), log["totalCalories"])
	assert.Equal(t, float64(35), log["totalProtein"])
	assert.Equal(t, float64(1500), log["waterIntake"])
	assert.Len(t, log["meals"], 2)

	rec = app.request("DELETE", "/v1/nutrition/meals/"+mealID, "", token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.request("GET", "/v1/nutrition/2024-03-01", "", token)
	log = parseJSON(t, rec)["nutritionLog"].(map[string]interface{})
	assert.Equal(t, float64(350), log["totalCalories"])

	rec = app.request("GET", "/v1/nutrition/not-a-date", "", token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.request("GET", "/v1/nutrition?from=2024-01-01&to=2024-12-31", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), parseJSON(t, rec)["totalItems"])
}

func TestDeleteAccountFlow(t *testing.T) {
	app := setupApp(t)
	token := app.registerAndLogin(t, "gina@example.com")

	rec := app.request("POST", "/v1/goals",
		`{"name":"Lose weight","goalType":"weight_loss","startDate":"2024-01-01","targetValue":70}`, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = app.request("DELETE", "/v1/user", "", token)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, int64(0), testutil.CountRows(t, app.DB, &models.User{}, "email = ?", "gina@example.com"))
	assert.Equal(t, int64(0), testutil.CountRows(t, app.DB, &models.Goal{}, "1 = 1"))

	rec = app.request("GET", "/v1/user", "", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
