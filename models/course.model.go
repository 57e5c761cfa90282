package models

import "gorm.io/gorm"

// Course represents a learning course
type Course struct {
	gorm.Model
	Title       string `json:"title"`
	Description string `json:"description"`
	Author      string `json:"author"`
	CoverURL    string `json:"cover_url"`
	Status      string `json:"status" gorm:"default:'DRAFT'"` // DRAFT, ACTIVE, INACTIVE
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}

// Video represents a single lecture video within a course
type Video struct {
	gorm.Model
	CourseID   uint    `json:"course_id" gorm:"index;not null"`
	Title      string  `json:"title"`
	VideoURL   string  `json:"video_url"`
	Duration   float64 `json:"duration" gorm:"default:0"` // seconds
	OrderIndex int     `json:"order_index" gorm:"default:0"`
	IsDeleted  bool    `gorm:"default:false"`
}
