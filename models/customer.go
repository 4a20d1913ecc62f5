package models

import "time"

// Customer is a client of the owning account.
type Customer struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	UserID    uint   `gorm:"index;not null" json:"userId"`
	Name      string `gorm:"size:255;not null" json:"name"`
	Phone     string `gorm:"size:64" json:"phone"`
	Email     string `gorm:"size:255" json:"email"`
	Address   string `gorm:"size:512" json:"address"`
	Notes     string `gorm:"size:1024" json:"notes"`
}
