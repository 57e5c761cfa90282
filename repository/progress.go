package repository

import (
	"errors"

	"lms/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormProgressRepo struct {
	db *gorm.DB
}

func NewProgressRepo(db *gorm.DB) *GormProgressRepo {
	return &GormProgressRepo{db: db}
}

func (r *GormProgressRepo) Get(userID, courseID, videoID uint) (*models.ProgressRecord, error) {
	var rec models.ProgressRecord
	err := r.db.Where("user_id = ? AND course_id = ? AND video_id = ?", userID, courseID, videoID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Merge relies on the (user_id, course_id, video_id) unique index so two
// concurrent reports cannot lose the higher value: the high-water comparison
// happens inside the upsert, not in application memory. CASE WHEN instead of
// GREATEST keeps the statement valid on sqlite as well as postgres.
func (r *GormProgressRepo) Merge(rec *models.ProgressRecord) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "course_id"}, {Name: "video_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"watched_duration": gorm.Expr("CASE WHEN progress_records.watched_duration > excluded.watched_duration THEN progress_records.watched_duration ELSE excluded.watched_duration END"),
			"percentage":       gorm.Expr("CASE WHEN progress_records.percentage > excluded.percentage THEN progress_records.percentage ELSE excluded.percentage END"),
			"total_duration":   gorm.Expr("excluded.total_duration"),
			"updated_at":       gorm.Expr("excluded.updated_at"),
		}),
	}).Create(rec).Error
}

func (r *GormProgressRepo) CompletedVideoIDs(userID, courseID uint, threshold float64) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.ProgressRecord{}).
		Where("user_id = ? AND course_id = ? AND percentage >= ?", userID, courseID, threshold).
		Pluck("video_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
