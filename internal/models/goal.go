package models

import "time"

// Goal is a user's fitness target. Completion only ever moves from
// not completed to completed.
type Goal struct {
	Base
	UserID       string     `gorm:"type:uuid;not null;index" json:"userId"`
	Name         string     `gorm:"size:100;not null" json:"name"`
	Description  string     `gorm:"type:text" json:"description,omitempty"`
	GoalType     GoalType   `gorm:"size:30;not null" json:"goalType"`
	TargetValue  *float64   `gorm:"type:decimal(8,2)" json:"targetValue,omitempty"`
	CurrentValue *float64   `gorm:"type:decimal(8,2)" json:"currentValue,omitempty"`
	StartDate    time.Time  `gorm:"type:date;not null" json:"startDate"`
	TargetDate   *time.Time `gorm:"type:date" json:"targetDate,omitempty"`
	Completed    bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	User         *User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
