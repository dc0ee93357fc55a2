package models

import "time"

// Workout is a performed (or planned) training session.
type Workout struct {
	Base
	UserID         string            `gorm:"type:uuid;not null;index" json:"userId"`
	Name           string            `gorm:"size:100;not null" json:"name"`
	Description    string            `gorm:"type:text" json:"description,omitempty"`
	WorkoutType    WorkoutType       `gorm:"size:20;not null" json:"workoutType"`
	Duration       *int              `json:"duration,omitempty"` // minutes
	CaloriesBurned *int              `json:"caloriesBurned,omitempty"`
	Date           time.Time         `gorm:"type:date;not null;index" json:"date"`
	StartTime      *time.Time        `json:"startTime,omitempty"`
	EndTime        *time.Time        `json:"endTime,omitempty"`
	Notes          string            `gorm:"type:text" json:"notes,omitempty"`
	Rating         *int              `gorm:"check:chk_workouts_rating,rating BETWEEN 1 AND 5" json:"rating,omitempty"`
	User           *User             `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Exercises      []WorkoutExercise `gorm:"foreignKey:WorkoutID;constraint:OnDelete:CASCADE" json:"exercises,omitempty"`
}

// WorkoutExercise places an exercise at a position within a workout.
// Positions are unique per workout.
type WorkoutExercise struct {
	Key
	WorkoutID       string        `gorm:"type:uuid;not null;uniqueIndex:idx_workout_exercises_position" json:"workoutId"`
	ExerciseID      string        `gorm:"type:uuid;not null;index" json:"exerciseId"`
	Position        int           `gorm:"not null;uniqueIndex:idx_workout_exercises_position" json:"order"`
	Sets            *int          `json:"sets,omitempty"`
	TargetReps      *int          `json:"targetReps,omitempty"`
	TargetDuration  *int          `json:"targetDuration,omitempty"`  // seconds
	RestBetweenSets *int          `json:"restBetweenSets,omitempty"` // seconds
	Notes           string        `gorm:"type:text" json:"notes,omitempty"`
	Exercise        *Exercise     `gorm:"constraint:OnDelete:CASCADE" json:"exercise,omitempty"`
	PerformedSets   []ExerciseSet `gorm:"foreignKey:WorkoutExerciseID;constraint:OnDelete:CASCADE" json:"performedSets,omitempty"`
}

// ExerciseSet is one set actually performed.
type ExerciseSet struct {
	Key
	WorkoutExerciseID string   `gorm:"type:uuid;not null;index" json:"workoutExerciseId"`
	SetNumber         int      `gorm:"not null" json:"setNumber"`
	Weight            *float64 `gorm:"type:decimal(6,2)" json:"weight,omitempty"` // kg
	Reps              *int     `json:"reps,omitempty"`
	Duration          *int     `json:"duration,omitempty"`                          // seconds
	Distance          *float64 `gorm:"type:decimal(6,2)" json:"distance,omitempty"` // km or miles
	Completed         bool     `gorm:"not null;default:true" json:"completed"`
	RPE               *int     `gorm:"column:rpe;check:chk_exercise_sets_rpe,rpe BETWEEN 1 AND 10" json:"rpe,omitempty"`
	Notes             string   `gorm:"type:text" json:"notes,omitempty"`
}
