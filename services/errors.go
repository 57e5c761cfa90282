package services

import "errors"

// Service errors are sentinels so controllers can map them to HTTP statuses
// with errors.Is instead of matching message strings.
var (
	ErrStudentNotFound     = errors.New("student not found")
	ErrCourseNotFound      = errors.New("course not found or not active")
	ErrVideoNotFound       = errors.New("video not found in this course")
	ErrAlreadyEnrolled     = errors.New("student already enrolled in this course")
	ErrNotEnrolled         = errors.New("student not enrolled in this course")
	ErrCourseNotCompleted  = errors.New("course not completed yet")
	ErrCertificateExists   = errors.New("certificate already exists for this student and course")
	ErrCertificateNotFound = errors.New("certificate not found")
	ErrInvalidDuration     = errors.New("watched and total duration must be non-negative")
	ErrInvalidImageData    = errors.New("invalid certificate image payload")
)
