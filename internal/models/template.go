package models

// WorkoutTemplate is a reusable workout blueprint.
type WorkoutTemplate struct {
	Base
	UserID            string             `gorm:"type:uuid;not null;index" json:"userId"`
	Name              string             `gorm:"size:100;not null" json:"name"`
	Description       string             `gorm:"type:text" json:"description,omitempty"`
	WorkoutType       WorkoutType        `gorm:"size:20;not null" json:"workoutType"`
	EstimatedDuration *int               `json:"estimatedDuration,omitempty"` // minutes
	Difficulty        *int               `gorm:"check:chk_workout_templates_difficulty,difficulty BETWEEN 1 AND 5" json:"difficulty,omitempty"`
	IsPublic          bool               `gorm:"not null;default:false" json:"isPublic"`
	User              *User              `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Exercises         []TemplateExercise `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE" json:"exercises,omitempty"`
}

// TemplateExercise places an exercise at a position within a template.
type TemplateExercise struct {
	Key
	TemplateID      string    `gorm:"type:uuid;not null;uniqueIndex:idx_template_exercises_position" json:"templateId"`
	ExerciseID      string    `gorm:"type:uuid;not null;index" json:"exerciseId"`
	Position        int       `gorm:"not null;uniqueIndex:idx_template_exercises_position" json:"order"`
	Sets            *int      `json:"sets,omitempty"`
	TargetReps      *int      `json:"targetReps,omitempty"`
	TargetDuration  *int      `json:"targetDuration,omitempty"`
	RestBetweenSets *int      `json:"restBetweenSets,omitempty"`
	Notes           string    `gorm:"type:text" json:"notes,omitempty"`
	Exercise        *Exercise `gorm:"constraint:OnDelete:CASCADE" json:"exercise,omitempty"`
}
