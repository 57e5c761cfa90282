package models

import "gorm.io/gorm"

// ProgressRecord tracks a user's watch state for one video in one course.
// WatchedDuration is a high-water mark: it never moves backwards, and the
// derived Percentage never decreases either.
type ProgressRecord struct {
	gorm.Model
	UserID          uint    `json:"user_id" gorm:"uniqueIndex:idx_progress_user_course_video;not null"`
	CourseID        uint    `json:"course_id" gorm:"uniqueIndex:idx_progress_user_course_video;index;not null"`
	VideoID         uint    `json:"video_id" gorm:"uniqueIndex:idx_progress_user_course_video;not null"`
	WatchedDuration float64 `json:"watched_duration" gorm:"default:0"` // seconds
	TotalDuration   float64 `json:"total_duration" gorm:"default:0"`   // seconds, latest authoritative length
	Percentage      float64 `json:"percentage" gorm:"default:0"`       // 0-100
}
