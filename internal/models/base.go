package models

import (
	"time"

	"fittrack/internal/uuid"

	"gorm.io/gorm"
)

// Key is the UUID primary key shared by every table that has a surrogate id.
type Key struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (k *Key) BeforeCreate(tx *gorm.DB) error {
	if k.ID == "" {
		k.ID = uuid.New()
	}
	return nil
}

// Base contains common columns for tables with timestamps. Rows are hard
// deleted so that foreign key cascades apply.
type Base struct {
	Key
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

// All lists every model in dependency order for auto-migration.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Token{},
		&UserProfile{},
		&WeightHistory{},
		&Goal{},
		&Exercise{},
		&Workout{},
		&WorkoutExercise{},
		&ExerciseSet{},
		&WorkoutTemplate{},
		&TemplateExercise{},
		&NutritionLog{},
		&Meal{},
		&ProgressPhoto{},
		&AuditLog{},
	}
}
