package models

import (
	"time"

	"gorm.io/gorm"
)

// UserRole represents what a user can do on the platform
type UserRole string

const (
	RoleViewer  UserRole = "viewer"
	RoleCreator UserRole = "creator"
	RoleAdmin   UserRole = "admin"
)

// User represents an account. Creators are users with RoleCreator.
type User struct {
	ID            string         `json:"id" gorm:"primaryKey"`
	Username      string         `json:"username" gorm:"uniqueIndex;not null"`
	DisplayName   string         `json:"displayName"`
	AvatarURL     string         `json:"avatarUrl"`
	Role          UserRole       `json:"role" gorm:"not null;default:'viewer';index"`
	IsActive      bool           `json:"isActive" gorm:"not null;index"`
	IsSuspended   bool           `json:"isSuspended" gorm:"not null;index"`
	FollowerCount int64          `json:"followerCount" gorm:"not null;default:0"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name for User Model
func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(*gorm.DB) error {
	u.ID = ensureID(u.ID)
	return nil
}
