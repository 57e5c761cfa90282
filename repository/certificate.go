package repository

import (
	"errors"

	"lms/models"
	"lms/services"

	"gorm.io/gorm"
)

type GormCertificateRepo struct {
	db *gorm.DB
}

func NewCertificateRepo(db *gorm.DB) *GormCertificateRepo {
	return &GormCertificateRepo{db: db}
}

func (r *GormCertificateRepo) GetByPair(userID, courseID uint) (*models.Certificate, error) {
	var cert models.Certificate
	err := r.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&cert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

func (r *GormCertificateRepo) GetByNumber(number string) (*models.Certificate, error) {
	var cert models.Certificate
	err := r.db.Where("certificate_number = ?", number).First(&cert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

func (r *GormCertificateRepo) NumberExists(number string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Certificate{}).Where("certificate_number = ?", number).Count(&count).Error
	return count > 0, err
}

func (r *GormCertificateRepo) CreateAndLink(cert *models.Certificate, e *models.Enrollment) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(cert).Error; err != nil {
			return err
		}
		e.CertificateIssued = true
		e.CertificateID = &cert.ID
		return tx.Save(e).Error
	})
	// The unique indexes on certificate_number and (user_id, course_id) are
	// the real guard against a concurrent check-then-insert race.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return services.ErrCertificateExists
	}
	return err
}

func (r *GormCertificateRepo) ListForUser(userID uint) ([]models.Certificate, error) {
	var certs []models.Certificate
	err := r.db.Where("user_id = ?", userID).Order("issued_at desc").Find(&certs).Error
	return certs, err
}
