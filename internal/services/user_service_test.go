package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "fittrack/internal/errors"
	"fittrack/internal/models"
	"fittrack/internal/testutil"
)

func validInput(email string) CreateUserInput {
	return CreateUserInput{
		FirstName: "Alice",
		LastName:  "Smith",
		Email:     email,
		Password:  "password123",
	}
}

func TestCreateUser(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, bcrypt.MinCost)

		user, err := svc.CreateUser(validInput("alice@example.com"))
		testutil.AssertNoError(t, err)

		if user.ID == "" {
			t.Fatal("expected a generated user ID")
		}
		if user.Email != "alice@example.com" {
			t.Errorf("expected email alice@example.com, got %s", user.Email)
		}
		if user.FirstName != "Alice" {
			t.Errorf("expected first name Alice, got %s", user.FirstName)
		}
		if !user.Active {
			t.Error("expected user to be active")
		}
		if testutil.CountRows(t, db, &models.User{}, "email = ?", "alice@example.com") != 1 {
			t.Error("expected exactly one stored user")
		}
	})

	t.Run("short_first_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, bcrypt.MinCost)

		input := validInput("jo@example.com")
		input.FirstName = "Jo"
		_, err := svc.CreateUser(input)

		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			t.Fatalf("expected AppError, got %v", err)
		}
		if appErr.Code != "VALIDATION_FAILED" {
			t.Fatalf("expected VALIDATION_FAILED, got %s", appErr.Code)
		}
		if len(appErr.Fields) != 1 {
			t.Fatalf("expected exactly one field error, got %+v", appErr.Fields)
		}
		if appErr.Fields[0].Field != "firstName" || appErr.Fields[0].Message != "must be at least 3 characters" {
			t.Errorf("unexpected field error %+v", appErr.Fields[0])
		}
		if testutil.CountRows(t, db, &models.User{}, "1 = 1") != 0 {
			t.Error("expected no user to be stored")
		}
	})

	t.Run("all_fields_empty", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, bcrypt.MinCost)

		_, err := svc.CreateUser(CreateUserInput{})

		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			t.Fatalf("expected AppError, got %v", err)
		}
		want := []apperrors.FieldError{
			{Field: "firstName", Message: "is required"},
			{Field: "firstName", Message: "must be at least 3 characters"},
			{Field: "lastName", Message: "is required"},
			{Field: "lastName", Message: "must be at least 3 characters"},
			{Field: "email", Message: "is required"},
			{Field: "email", Message: "must be a valid email address"},
			{Field: "password", Message: "is required"},
			{Field: "password", Message: "must be at least 8 characters"},
		}
		if len(appErr.Fields) != len(want) {
			t.Fatalf("expected %d field errors, got %+v", len(want), appErr.Fields)
		}
		for i := range want {
			if appErr.Fields[i] != want[i] {
				t.Errorf("field error %d: expected %+v, got %+v", i, want[i], appErr.Fields[i])
			}
		}
	})

	t.Run("invalid_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, bcrypt.MinCost)

		_, err := svc.CreateUser(validInput("not-an-email"))
		testutil.AssertFieldError(t, err, "email")
	})

	t.Run("short_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, bcrypt.MinCost)

		input := validInput("pw@example.com")
		input.Password = "short"
		_, err := svc.CreateUser(input)
		testutil.AssertFieldError(t, err, "password")
	})

	t.Run("password_too_long_for_bcrypt", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, bcrypt.MinCost)

		input := validInput("long@example.com")
		input.Password = strings.Repeat("a", 73)
		_, err := svc.CreateUser(input)
		testutil.AssertFieldError(t, err, "password")
	})

	t.Run("name_length_counts_characters", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, bcrypt.MinCost)

		input := validInput("zoe@example.com")
		input.FirstName = "Zoë"
		_, err := svc.CreateUser(input)
		testutil.AssertNoError(t, err)
	})

	t.Run("duplicate_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, bcrypt.MinCost)

		_, err := svc.CreateUser(validInput("dup@example.com"))
		testutil.AssertNoError(t, err)

		_, err = svc.CreateUser(validInput("dup@example.com"))
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("duplicate_email_differs_in_case", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, bcrypt.MinCost)

		first, err := svc.CreateUser(validInput("A@B.com"))
		testutil.AssertNoError(t, err)
		if first.Email != "A@B.com" {
			t.Errorf("expected email case to be preserved, got %s", first.Email)
		}

		_, err = svc.CreateUser(validInput("a@b.com"))
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")

		if testutil.CountRows(t, db, &models.User{}, "1 = 1") != 1 {
			t.Error("expected only the first user to be stored")
		}
	})

	t.Run("requested_account_type_is_ignored", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, bcrypt.MinCost)

		input := validInput("admin@example.com")
		input.AccountType = "admin"
		user, err := svc.CreateUser(input)
		testutil.AssertNoError(t, err)

		stored, err := svc.GetUserByID(user.ID)
		testutil.AssertNoError(t, err)
		if stored.AccountType != models.AccountTypeUser {
			t.Errorf("expected account type user, got %s", stored.AccountType)
		}
	})

	t.Run("unique_index_backstops_precheck", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		testutil.CreateTestUserWithEmail(t, db, "race@example.com")
		dup := &models.User{Email: "RACE@example.com", PasswordHash: "x", FirstName: "Dup", LastName: "User"}
		err := db.Create(dup).Error
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			t.Errorf("expected duplicated key error from the unique index, got %v", err)
		}
	})
}

func TestCreateUser_password_is_hashed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db, bcrypt.MinCost)

	input := validInput("hash@example.com")
	input.Password = "mypassword"
	user, err := svc.CreateUser(input)
	testutil.AssertNoError(t, err)

	// Password should be bcrypt hash, not plaintext
	if user.PasswordHash == "mypassword" {
		t.Error("password should be hashed, not stored as plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("mypassword")); err != nil {
		t.Error("password hash should be valid bcrypt")
	}
	cost, err := bcrypt.Cost([]byte(user.PasswordHash))
	testutil.AssertNoError(t, err)
	if cost != bcrypt.MinCost {
		t.Errorf("expected configured cost %d, got %d", bcrypt.MinCost, cost)
	}
}

func TestGetUserByEmail(t *testing.T) {
	t.Run("found_ignoring_case", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, bcrypt.MinCost)

		created := testutil.CreateTestUserWithEmail(t, db, "Found@Example.com")
		user, err := svc.GetUserByEmail("found@example.com")
		testutil.AssertNoError(t, err)

		if user.ID != created.ID {
			t.Errorf("expected user ID %s, got %s", created.ID, user.ID)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, bcrypt.MinCost)

		_, err := svc.GetUserByEmail("nonexistent@example.com")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})

	t.Run("inactive_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, bcrypt.MinCost)

		user := testutil.CreateTestUserWithEmail(t, db, "inactive@example.com")
		db.Model(user).Update("active", false)

		_, err := svc.GetUserByEmail("inactive@example.com")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestGetUserByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, bcrypt.MinCost)

		created := testutil.CreateTestUser(t, db)
		user, err := svc.GetUserByID(created.ID)
		testutil.AssertNoError(t, err)

		if user.Email != created.Email {
			t.Errorf("expected email %s, got %s", created.Email, user.Email)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, bcrypt.MinCost)

		_, err := svc.GetUserByID("01890a5d-ac96-774b-bcce-b302099a8057")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestVerifyPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db, bcrypt.MinCost)

	user := testutil.CreateTestUser(t, db)
	if !svc.VerifyPassword(user, testutil.TestPassword) {
		t.Error("expected password verification to succeed")
	}
	if svc.VerifyPassword(user, "wrongpassword") {
		t.Error("expected password verification to fail")
	}
}

func TestAttemptLogin(t *testing.T) {
	t.Run("success_records_last_login", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, bcrypt.MinCost)

		testutil.CreateTestUserWithEmail(t, db, "login@example.com")

		user, err := svc.AttemptLogin("LOGIN@example.com", testutil.TestPassword)
		testutil.AssertNoError(t, err)

		if user.LastLogin == nil {
			t.Error("expected LastLogin to be set after successful login")
		}
	})

	t.Run("wrong_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, bcrypt.MinCost)

		testutil.CreateTestUserWithEmail(t, db, "fail@example.com")

		_, err := svc.AttemptLogin("fail@example.com", "wrongpassword")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("nonexistent_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, bcrypt.MinCost)

		_, err := svc.AttemptLogin("nobody@example.com", testutil.TestPassword)
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})
}

func TestUpdateUser(t *testing.T) {
	t.Run("updates_given_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, bcrypt.MinCost)
		created := testutil.CreateTestUser(t, db)

		name := "Bobby"
		imperial := models.UnitSystemImperial
		_, err := svc.UpdateUser(created.ID, UpdateUserInput{FirstName: &name, PreferredUnitSystem: &imperial})
		testutil.AssertNoError(t, err)

		stored, err := svc.GetUserByID(created.ID)
		testutil.AssertNoError(t, err)
		if stored.FirstName != "Bobby" {
			t.Errorf("expected first name Bobby, got %s", stored.FirstName)
		}
		if stored.LastName != "User" {
			t.Errorf("expected last name to be unchanged, got %s", stored.LastName)
		}
		if stored.PreferredUnitSystem != models.UnitSystemImperial {
			t.Errorf("expected imperial, got %s", stored.PreferredUnitSystem)
		}
	})

	t.Run("invalid_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, bcrypt.MinCost)
		created := testutil.CreateTestUser(t, db)

		name := "Al"
		_, err := svc.UpdateUser(created.ID, UpdateUserInput{LastName: &name})
		testutil.AssertFieldError(t, err, "lastName")
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("cascades_owned_rows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, bcrypt.MinCost)

		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestToken(t, db, user.ID, HashToken("plain"), models.ScopeAuthentication, time.Now().UTC().Add(time.Hour))
		testutil.CreateTestProfile(t, db, user.ID)
		testutil.CreateTestGoal(t, db, user.ID)
		authored := testutil.CreateTestExercise(t, db, &user.ID)
		system := testutil.CreateTestExercise(t, db, nil)
		workout := testutil.CreateTestWorkout(t, db, user.ID, system.ID)

		testutil.AssertNoError(t, svc.DeleteUser(user.ID))

		checks := []struct {
			name  string
			model interface{}
			query string
		}{
			{"tokens", &models.Token{}, "user_id = ?"},
			{"profiles", &models.UserProfile{}, "user_id = ?"},
			{"goals", &models.Goal{}, "user_id = ?"},
			{"workouts", &models.Workout{}, "user_id = ?"},
		}
		for _, c := range checks {
			if n := testutil.CountRows(t, db, c.model, c.query, user.ID); n != 0 {
				t.Errorf("expected %s to be removed, found %d", c.name, n)
			}
		}
		if n := testutil.CountRows(t, db, &models.WorkoutExercise{}, "workout_id = ?", workout.ID); n != 0 {
			t.Errorf("expected workout exercises to be removed, found %d", n)
		}

		var kept models.Exercise
		if err := db.Where("id = ?", authored.ID).First(&kept).Error; err != nil {
			t.Fatalf("expected authored exercise to remain: %v", err)
		}
		if kept.CreatorID != nil {
			t.Errorf("expected creator to be cleared, got %v", *kept.CreatorID)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, bcrypt.MinCost)

		err := svc.DeleteUser("01890a5d-ac96-774b-bcce-b302099a8057")
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}

func TestResetPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewUserService(db, bcrypt.MinCost)

	user := testutil.CreateTestUser(t, db)
	expiry := time.Now().UTC().Add(time.Hour)
	testutil.CreateTestToken(t, db, user.ID, HashToken("auth"), models.ScopeAuthentication, expiry)
	testutil.CreateTestToken(t, db, user.ID, HashToken("reset"), models.ScopePasswordReset, expiry)

	err := svc.ResetPassword(user.ID, "brand-new-password")
	testutil.AssertNoError(t, err)

	stored, err := svc.GetUserByID(user.ID)
	testutil.AssertNoError(t, err)
	if !svc.VerifyPassword(stored, "brand-new-password") {
		t.Error("expected new password to verify")
	}
	if n := testutil.CountRows(t, db, &models.Token{}, "user_id = ?", user.ID); n != 0 {
		t.Errorf("expected all tokens to be revoked, found %d", n)
	}

	err = svc.ResetPassword(user.ID, "short")
	testutil.AssertFieldError(t, err, "password")
}
