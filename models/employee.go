package models

import "time"

// Employee belongs to the owning account. Labor expenses reference employees
// by name, so deleting an employee also deletes that account's matching
// labor expense rows.
type Employee struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	UserID    uint   `gorm:"index;not null" json:"userId"`
	Name      string `gorm:"size:255;not null" json:"name"`
	Phone     string `gorm:"size:64" json:"phone"`
	Email     string `gorm:"size:255" json:"email"`
	Address   string `gorm:"size:512" json:"address"`
	Notes     string `gorm:"size:1024" json:"notes"`
	Active    bool   `gorm:"default:true;not null" json:"active"`
}
