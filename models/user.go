package models

import (
	"time"
)

// User is the GORM model for a registered customer account.
type User struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	FirstName   string     `gorm:"type:varchar(128);not null" json:"first_name"`
	LastName    string     `gorm:"type:varchar(128);not null" json:"last_name"`
	Email       string     `gorm:"type:varchar(256);not null;uniqueIndex" json:"email"`
	Password    string     `gorm:"type:varchar(256);not null" json:"-"`
	Phone       string     `gorm:"type:varchar(32)" json:"phone"`
	Address     string     `gorm:"type:varchar(512)" json:"address"`
	City        string     `gorm:"type:varchar(128)" json:"city"`
	ZipCode     string     `gorm:"type:varchar(16)" json:"zip_code"`
	Active      bool       `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// CreateUserRequest is the payload for registering a new user.
type CreateUserRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Phone     string `json:"phone"`
}

// UpdateUserRequest is the payload for updating profile fields.
type UpdateUserRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	ZipCode   string `json:"zip_code"`
}
