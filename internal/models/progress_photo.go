package models

import "time"

// ProgressPhoto is a dated body photo reference.
type ProgressPhoto struct {
	Key
	UserID    string         `gorm:"type:uuid;not null;index" json:"userId"`
	PhotoURL  string         `gorm:"size:255;not null" json:"photoUrl"`
	Date      time.Time      `gorm:"type:date;not null" json:"date"`
	Category  *PhotoCategory `gorm:"size:50" json:"category,omitempty"`
	Notes     string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"createdAt"`
	User      *User          `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
