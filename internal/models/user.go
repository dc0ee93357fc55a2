package models

import "time"

// User represents an account holder. Email uniqueness is case-insensitive
// through the unique index on lower(email); the stored value keeps its case.
type User struct {
	Base
	Email               string      `gorm:"size:255;not null;uniqueIndex:idx_users_email_lower,expression:lower(email)" json:"email"`
	PasswordHash        string      `gorm:"size:255;not null" json:"-"`
	FirstName           string      `gorm:"size:100;not null" json:"firstName"`
	LastName            string      `gorm:"size:100;not null" json:"lastName"`
	AccountType         AccountType `gorm:"size:20;not null;default:user" json:"accountType"`
	Active              bool        `gorm:"not null;default:true" json:"active"`
	PreferredUnitSystem UnitSystem  `gorm:"size:20;default:metric" json:"preferredUnitSystem"`
	LastLogin           *time.Time  `json:"lastLogin,omitempty"`
}
