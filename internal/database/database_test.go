package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/internal/config"
	"fittrack/internal/logger"
	"fittrack/internal/models"
)

func init() {
	logger.Init("test")
}

func TestDialector_rejectsUnknownDriver(t *testing.T) {
	_, err := dialector(&config.Config{DBDriver: "mysql"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"mysql"`)

	_, err = NewManager(&config.Config{DBDriver: ""})
	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &config.Config{
		DBHost: "db", DBPort: "5432", DBUser: "fit", DBPassword: "secret", DBName: "fittrack", DBSSLMode: "require",
	}
	assert.Equal(t, "host=db port=5432 user=fit password=secret dbname=fittrack sslmode=require", PostgresDSN(cfg))
	assert.Equal(t, "postgres://fit:secret@db:5432/fittrack?sslmode=require", cfg.PostgresURL())
}

func TestManager_SQLite(t *testing.T) {
	cfg := &config.Config{
		DBDriver:   DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "fittrack.db"),
	}

	m, err := NewManager(cfg)
	require.NoError(t, err)
	defer func() { assert.NoError(t, m.Close()) }()

	require.NoError(t, m.Migrate())
	// Migrating an up-to-date schema is a no-op.
	require.NoError(t, m.Migrate())

	user := &models.User{FirstName: "Ann", LastName: "Lee", Email: "ann@example.com", PasswordHash: "x", Active: true}
	require.NoError(t, m.DB().Create(user).Error)
	assert.NotEmpty(t, user.ID)

	t.Run("foreign keys are enforced", func(t *testing.T) {
		err := m.DB().Create(&models.WeightHistory{UserID: "0190f0c8-dead-7000-8000-000000000000", Weight: 70}).Error
		assert.Error(t, err)
	})

	t.Run("deleting a user cascades", func(t *testing.T) {
		require.NoError(t, m.DB().Create(&models.WeightHistory{UserID: user.ID, Weight: 70}).Error)
		require.NoError(t, m.DB().Delete(user).Error)

		var count int64
		require.NoError(t, m.DB().Model(&models.WeightHistory{}).Count(&count).Error)
		assert.Zero(t, count)
	})
}
