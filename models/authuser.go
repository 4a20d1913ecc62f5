package models

import "time"

// AuthUser is an authenticated account. Identity for Google sign-ins is keyed
// on GoogleSub, never on email: two Google identities sharing an email get two
// separate rows. Email is only unique for password-created accounts, which is
// enforced in the registration flow rather than by a DB constraint.
type AuthUser struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Email        string  `gorm:"size:255;index;not null" json:"email"`
	PasswordHash []byte  `gorm:"not null" json:"-"`
	GoogleSub    *string `gorm:"size:255;uniqueIndex" json:"-"`
}
