package models

import "time"

// Token is an opaque credential bound to a user and a scope. Only the
// SHA-256 hex digest of the plaintext is stored, and it doubles as the key.
type Token struct {
	Hash   string     `gorm:"size:64;primaryKey" json:"-"`
	UserID string     `gorm:"type:uuid;not null;index" json:"-"`
	Expiry time.Time  `gorm:"not null" json:"expiry"`
	Scope  TokenScope `gorm:"size:50;not null" json:"-"`
	User   *User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Expired reports whether the token is past its expiry at the given instant.
func (t *Token) Expired(now time.Time) bool {
	return !now.Before(t.Expiry)
}
