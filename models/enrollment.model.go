package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment links a user to a course and tracks aggregate completion state
type Enrollment struct {
	gorm.Model
	UserID            uint       `json:"user_id" gorm:"uniqueIndex:idx_enrollment_user_course;not null"`
	CourseID          uint       `json:"course_id" gorm:"uniqueIndex:idx_enrollment_user_course;not null"`
	Status            string     `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, IN_PROGRESS, COMPLETED
	Progress          float64    `json:"progress" gorm:"default:0"`        // completed videos / total videos (0-100)
	IsCompleted       bool       `json:"is_completed" gorm:"default:false"`
	CompletedAt       *time.Time `json:"completed_at"`
	CertificateIssued bool       `json:"certificate_issued" gorm:"default:false"`
	CertificateID     *uint      `json:"certificate_id"`
}
