package models

import (
	"time"

	"gorm.io/gorm"
)

// Certificate is an issued course-completion certificate. CertificateNumber is
// the public lookup key; the (user, course) unique index is what makes
// check-then-insert issuance safe under concurrency.
type Certificate struct {
	gorm.Model
	UserID            uint      `json:"user_id" gorm:"uniqueIndex:idx_certificate_user_course;not null"`
	CourseID          uint      `json:"course_id" gorm:"uniqueIndex:idx_certificate_user_course;not null"`
	CertificateNumber string    `json:"certificate_number" gorm:"uniqueIndex;not null"`
	CertificateURL    string    `json:"certificate_url"`
	IssuedAt          time.Time `json:"issued_at"`
}
