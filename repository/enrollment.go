package repository

import (
	"errors"

	"lms/models"

	"gorm.io/gorm"
)

type GormEnrollmentRepo struct {
	db *gorm.DB
}

func NewEnrollmentRepo(db *gorm.DB) *GormEnrollmentRepo {
	return &GormEnrollmentRepo{db: db}
}

func (r *GormEnrollmentRepo) Get(userID, courseID uint) (*models.Enrollment, error) {
	var e models.Enrollment
	err := r.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *GormEnrollmentRepo) CreateWithProgress(e *models.Enrollment, recs []models.ProgressRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(e).Error; err != nil {
			return err
		}
		if len(recs) > 0 {
			if err := tx.Create(&recs).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormEnrollmentRepo) DeleteWithProgress(e *models.Enrollment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("user_id = ? AND course_id = ?", e.UserID, e.CourseID).
			Delete(&models.ProgressRecord{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(e).Error
	})
}

func (r *GormEnrollmentRepo) Save(e *models.Enrollment) error {
	return r.db.Save(e).Error
}

func (r *GormEnrollmentRepo) ListForUser(userID uint) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&enrollments).Error
	return enrollments, err
}
