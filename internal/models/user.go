package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID              uint64         `gorm:"primarykey" json:"id"`
	Email           string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	PasswordHash    string         `gorm:"type:varchar(255);not null" json:"-"`
	FullName        string         `gorm:"type:varchar(255)" json:"full_name"`
	IsActive        bool           `gorm:"not null;default:true" json:"is_active"`
	IsSuperuser     bool           `gorm:"not null;default:false" json:"is_superuser"`
	EmailVerifiedAt *time.Time     `json:"email_verified_at"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// GitHub integration
	GithubID          *string `gorm:"type:varchar(255);uniqueIndex" json:"-"`
	GithubAccessToken *string `gorm:"type:varchar(255)" json:"-"`

	// Relations
	Rooms []Room `gorm:"foreignKey:OwnerID" json:"-"`
	Tasks []Task `gorm:"foreignKey:AssigneeID" json:"-"`
}
