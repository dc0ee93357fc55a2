package models

import "time"

// UserProfile holds optional health metrics, one row per user.
type UserProfile struct {
	UserID            string     `gorm:"type:uuid;primaryKey" json:"userId"`
	DateOfBirth       *time.Time `gorm:"type:date" json:"dateOfBirth,omitempty"`
	Gender            *Gender    `gorm:"size:20" json:"gender,omitempty"`
	Height            *float64   `gorm:"type:decimal(5,2)" json:"height,omitempty"`        // cm
	CurrentWeight     *float64   `gorm:"type:decimal(5,2)" json:"currentWeight,omitempty"` // kg
	TargetWeight      *float64   `gorm:"type:decimal(5,2)" json:"targetWeight,omitempty"`  // kg
	ActivityLevel     *int       `gorm:"check:chk_user_profiles_activity_level,activity_level BETWEEN 1 AND 5" json:"activityLevel,omitempty"`
	Bio               string     `gorm:"type:text" json:"bio,omitempty"`
	ProfilePictureURL string     `gorm:"size:255" json:"profilePictureUrl,omitempty"`
	UpdatedAt         time.Time  `gorm:"not null" json:"updatedAt"`
	User              *User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// WeightHistory is one dated weight observation.
type WeightHistory struct {
	Key
	UserID string    `gorm:"type:uuid;not null;index" json:"userId"`
	Weight float64   `gorm:"type:decimal(5,2);not null" json:"weight"` // kg
	Date   time.Time `gorm:"type:date;not null" json:"date"`
	Notes  string    `gorm:"type:text" json:"notes,omitempty"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
