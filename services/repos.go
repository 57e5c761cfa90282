package services

import "lms/models"

// Repository interfaces are injected into the services instead of reaching for
// a shared database handle. Lookups return (nil, nil) when no row matches; an
// error always means the store itself failed.

type ProgressRepo interface {
	Get(userID, courseID, videoID uint) (*models.ProgressRecord, error)
	// Merge upserts the record in a single atomic statement. Watched duration
	// and percentage keep their stored high-water values even when a stale
	// lower report lands last; total duration takes the incoming value.
	Merge(rec *models.ProgressRecord) error
	// CompletedVideoIDs returns the video ids whose percentage meets the threshold.
	CompletedVideoIDs(userID, courseID uint, threshold float64) ([]uint, error)
}

type EnrollmentRepo interface {
	Get(userID, courseID uint) (*models.Enrollment, error)
	// CreateWithProgress inserts the enrollment and its zero-initialized
	// progress records in a single transaction.
	CreateWithProgress(e *models.Enrollment, recs []models.ProgressRecord) error
	// DeleteWithProgress removes the progress records and then the enrollment,
	// in a single transaction. Irreversible.
	DeleteWithProgress(e *models.Enrollment) error
	Save(e *models.Enrollment) error
	ListForUser(userID uint) ([]models.Enrollment, error)
}

type CertificateRepo interface {
	GetByPair(userID, courseID uint) (*models.Certificate, error)
	GetByNumber(number string) (*models.Certificate, error)
	NumberExists(number string) (bool, error)
	// CreateAndLink inserts the certificate and flags the enrollment in one
	// transaction. Returns ErrCertificateExists when the (user, course) or
	// number unique index rejects the insert.
	CreateAndLink(cert *models.Certificate, e *models.Enrollment) error
	ListForUser(userID uint) ([]models.Certificate, error)
}

type CourseRepo interface {
	Get(courseID uint) (*models.Course, error)
	Videos(courseID uint) ([]models.Video, error)
	Video(videoID uint) (*models.Video, error)
}

type UserRepo interface {
	Get(userID uint) (*models.User, error)
}
