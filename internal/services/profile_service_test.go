package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/internal/models"
	"fittrack/internal/pagination"
	"fittrack/internal/testutil"
)

func TestGetProfile_missingIsEmpty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewProfileService(db)
	user := testutil.CreateTestUser(t, db)

	profile, err := svc.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, profile.UserID)
	assert.Nil(t, profile.Height)
}

func TestUpsertProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewProfileService(db)
	user := testutil.CreateTestUser(t, db)

	gender := models.GenderFemale
	profile, err := svc.UpsertProfile(user.ID, ProfileInput{Gender: &gender, Height: floatPtr(168.5), ActivityLevel: intPtr(3)})
	require.NoError(t, err)
	require.NotNil(t, profile.Height)
	assert.Equal(t, 168.5, *profile.Height)

	bio := "Marathon in the spring"
	profile, err = svc.UpsertProfile(user.ID, ProfileInput{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, bio, profile.Bio)
	require.NotNil(t, profile.Height, "fields not given stay as they were")
	assert.EqualValues(t, 1, testutil.CountRows(t, db, &models.UserProfile{}, "user_id = ?", user.ID))
}

func TestUpsertProfile_invalid(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewProfileService(db)
	user := testutil.CreateTestUser(t, db)

	gender := models.Gender("unknown")
	future := time.Now().AddDate(1, 0, 0)
	_, err := svc.UpsertProfile(user.ID, ProfileInput{
		Gender:        &gender,
		ActivityLevel: intPtr(7),
		Height:        floatPtr(-1),
		DateOfBirth:   &future,
	})
	testutil.AssertFieldError(t, err, "gender")
	testutil.AssertFieldError(t, err, "activityLevel")
	testutil.AssertFieldError(t, err, "height")
	testutil.AssertFieldError(t, err, "dateOfBirth")
}

func TestAddWeight_updatesCurrentWeight(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewProfileService(db)
	user := testutil.CreateTestUser(t, db)

	_, err := svc.AddWeight(user.ID, 82.4, testutil.Day(2024, time.March, 1), "")
	require.NoError(t, err)
	_, err = svc.AddWeight(user.ID, 81.9, testutil.Day(2024, time.March, 8), "after deload")
	require.NoError(t, err)

	profile, err := svc.GetProfile(user.ID)
	require.NoError(t, err)
	require.NotNil(t, profile.CurrentWeight)
	assert.Equal(t, 81.9, *profile.CurrentWeight)

	history, err := svc.GetWeightHistory(user.ID, pagination.PageRequest{Page: 1, PageSize: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, history.TotalItems)
	assert.Equal(t, 2, history.TotalPages)
	require.Len(t, history.Data, 1)
	assert.Equal(t, 81.9, history.Data[0].Weight, "newest first")

	_, err = svc.AddWeight(user.ID, 0, testutil.Day(2024, time.March, 9), "")
	testutil.AssertFieldError(t, err, "weight")
}
