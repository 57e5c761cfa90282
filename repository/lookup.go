package repository

import (
	"errors"

	"lms/models"

	"gorm.io/gorm"
)

// GormCourseRepo serves the read-only course and video lookups the progress
// and certificate services need.
type GormCourseRepo struct {
	db *gorm.DB
}

func NewCourseRepo(db *gorm.DB) *GormCourseRepo {
	return &GormCourseRepo{db: db}
}

func (r *GormCourseRepo) Get(courseID uint) (*models.Course, error) {
	var course models.Course
	err := r.db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *GormCourseRepo) Videos(courseID uint) ([]models.Video, error) {
	var videos []models.Video
	err := r.db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc").Find(&videos).Error
	return videos, err
}

func (r *GormCourseRepo) Video(videoID uint) (*models.Video, error) {
	var video models.Video
	err := r.db.Where("id = ? AND is_deleted = ?", videoID, false).First(&video).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &video, nil
}

type GormUserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *GormUserRepo {
	return &GormUserRepo{db: db}
}

func (r *GormUserRepo) Get(userID uint) (*models.User, error) {
	var user models.User
	err := r.db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
