package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	ProfileImage    string `gorm:"default:''"`
	Name            string `gorm:"default:''"`
	Email           string `json:"email" gorm:"unique;not null"`
	Mobile          string `gorm:"default:''"`
	Role            string `gorm:"default:'USER'"` // USER, ADMIN
	Password        string `json:"-" gorm:"not null"`
	IsEmailVerified bool   `gorm:"default:false"`
	LastLogin       *time.Time
	IsDeleted       bool `gorm:"default:false"`
}
