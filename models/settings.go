package models

import "time"

// AccountSettings holds per-account company details (one-to-one with AuthUser).
// Lazily created on first read. Email always mirrors the AuthUser email and is
// never editable through the API.
type AccountSettings struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	UserID      uint   `gorm:"uniqueIndex;not null" json:"userId"`
	CompanyName string `gorm:"size:255;not null" json:"companyName"`
	Email       string `gorm:"size:255" json:"email"`
	Phone       string `gorm:"size:64" json:"phone"`
	Address     string `gorm:"size:512" json:"address"`
	LogoURL     string `gorm:"size:512" json:"logoUrl"`
}
