package models

// Exercise is a library entry. CreatorID is nil for system exercises.
// Deleting the creator nulls CreatorID rather than removing the exercise.
type Exercise struct {
	Base
	Name             string           `gorm:"size:100;not null" json:"name"`
	Description      string           `gorm:"type:text" json:"description,omitempty"`
	Instructions     string           `gorm:"type:text" json:"instructions,omitempty"`
	Category         ExerciseCategory `gorm:"size:30;not null;index" json:"category"`
	PrimaryMuscles   []string         `gorm:"type:text;serializer:json" json:"primaryMuscles"`
	SecondaryMuscles []string         `gorm:"type:text;serializer:json" json:"secondaryMuscles"`
	Difficulty       *int             `gorm:"check:chk_exercises_difficulty,difficulty BETWEEN 1 AND 5" json:"difficulty,omitempty"`
	Equipment        []string         `gorm:"type:text;serializer:json" json:"equipment"`
	VideoURL         string           `gorm:"size:255" json:"videoUrl,omitempty"`
	ImageURL         string           `gorm:"size:255" json:"imageUrl,omitempty"`
	IsCustom         bool             `gorm:"not null;default:false" json:"isCustom"`
	CreatorID        *string          `gorm:"type:uuid;index" json:"creatorId,omitempty"`
	Creator          *User            `gorm:"foreignKey:CreatorID;constraint:OnDelete:SET NULL" json:"-"`
}

// IsSystem reports whether the exercise belongs to the built-in library.
func (e *Exercise) IsSystem() bool {
	return e.CreatorID == nil
}
