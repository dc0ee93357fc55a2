package database

import (
	"fmt"

	"fittrack/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Supported values for DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// PostgresDSN returns the PostgreSQL connection string
func PostgresDSN(c *config.Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// SQLiteDSN returns a SQLite DSN with foreign key enforcement enabled.
// Cascading deletes depend on it.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_foreign_keys=1&_busy_timeout=5000", path)
}

// dialector picks the GORM dialector for the configured driver.
func dialector(c *config.Config) (gorm.Dialector, error) {
	switch c.DBDriver {
	case DriverPostgres:
		return postgres.New(postgres.Config{
			DSN:                  PostgresDSN(c),
			PreferSimpleProtocol: true,
		}), nil
	case DriverSQLite:
		return sqlite.Open(SQLiteDSN(c.SQLitePath)), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
}
