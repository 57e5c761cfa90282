package services

import (
	"time"

	"lms/models"
)

// CompletionThreshold is the percentage at or above which a video counts as
// watched. Kept below 100 to tolerate trailing-buffer rounding in player
// watch-time reports.
const CompletionThreshold = 95.0

// ProgressService owns per-video watch state and the course completion
// decision that follows every progress mutation.
type ProgressService struct {
	progress    ProgressRepo
	enrollments EnrollmentRepo
	courses     CourseRepo
}

func NewProgressService(progress ProgressRepo, enrollments EnrollmentRepo, courses CourseRepo) *ProgressService {
	return &ProgressService{
		progress:    progress,
		enrollments: enrollments,
		courses:     courses,
	}
}

// ProgressReport is the outcome of a single watch-time mutation.
type ProgressReport struct {
	WatchedDuration float64 `json:"watched_duration"`
	TotalDuration   float64 `json:"total_duration"`
	Percentage      float64 `json:"percentage"`
	VideoDone       bool    `json:"video_done"`
	CourseCompleted bool    `json:"course_completed"`
}

// ReportWatchTime records a watch-time tick for one video. The stored watched
// duration is a high-water mark and the percentage never regresses, so
// repeated or out-of-order reports converge to the same state. The total
// duration is overwritten with the latest reported value, since the player is
// the authoritative source for the video length.
func (s *ProgressService) ReportWatchTime(userID, courseID, videoID uint, watched, total float64) (*ProgressReport, error) {
	if watched < 0 || total < 0 {
		return nil, ErrInvalidDuration
	}

	enrollment, err := s.enrollments.Get(userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, ErrNotEnrolled
	}

	// The high-water comparison lives in the store's atomic upsert, so two
	// interleaved reports cannot overwrite each other's higher value.
	rec := &models.ProgressRecord{
		UserID:          userID,
		CourseID:        courseID,
		VideoID:         videoID,
		WatchedDuration: watched,
		TotalDuration:   total,
		Percentage:      computePercentage(watched, total),
	}
	if err := s.progress.Merge(rec); err != nil {
		return nil, err
	}

	stored, err := s.progress.Get(userID, courseID, videoID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		stored = rec
	}

	completed, err := s.evaluate(enrollment)
	if err != nil {
		return nil, err
	}

	return &ProgressReport{
		WatchedDuration: stored.WatchedDuration,
		TotalDuration:   stored.TotalDuration,
		Percentage:      stored.Percentage,
		VideoDone:       stored.Percentage >= CompletionThreshold,
		CourseCompleted: completed,
	}, nil
}

// MarkVideoComplete forces the record to 100% and the full video duration,
// bypassing partial-watch accounting. Used when the player signals natural
// video end.
func (s *ProgressService) MarkVideoComplete(userID, courseID, videoID uint) (*ProgressReport, error) {
	enrollment, err := s.enrollments.Get(userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, ErrNotEnrolled
	}

	video, err := s.courses.Video(videoID)
	if err != nil {
		return nil, err
	}
	if video == nil || video.CourseID != courseID {
		return nil, ErrVideoNotFound
	}

	rec := &models.ProgressRecord{
		UserID:          userID,
		CourseID:        courseID,
		VideoID:         videoID,
		WatchedDuration: video.Duration,
		TotalDuration:   video.Duration,
		Percentage:      100,
	}
	if err := s.progress.Merge(rec); err != nil {
		return nil, err
	}

	stored, err := s.progress.Get(userID, courseID, videoID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		stored = rec
	}

	completed, err := s.evaluate(enrollment)
	if err != nil {
		return nil, err
	}

	return &ProgressReport{
		WatchedDuration: stored.WatchedDuration,
		TotalDuration:   stored.TotalDuration,
		Percentage:      stored.Percentage,
		VideoDone:       true,
		CourseCompleted: completed,
	}, nil
}

// GetProgress returns the current record, or (nil, nil) when the video has
// never been watched. Absence is an empty result, not an error.
func (s *ProgressService) GetProgress(userID, courseID, videoID uint) (*models.ProgressRecord, error) {
	return s.progress.Get(userID, courseID, videoID)
}

// CompletedVideoIDs returns the ids of videos this student has finished in the
// course.
func (s *ProgressService) CompletedVideoIDs(userID, courseID uint) ([]uint, error) {
	ids, err := s.progress.CompletedVideoIDs(userID, courseID, CompletionThreshold)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []uint{}
	}
	return ids, nil
}

// evaluate re-checks course completion for the enrollment against the
// course's current video list. The completed flip is one-directional: once an
// enrollment is completed it stays completed, even if videos are added to the
// course afterwards.
func (s *ProgressService) evaluate(e *models.Enrollment) (bool, error) {
	videos, err := s.courses.Videos(e.CourseID)
	if err != nil {
		return false, err
	}

	doneIDs, err := s.progress.CompletedVideoIDs(e.UserID, e.CourseID, CompletionThreshold)
	if err != nil {
		return false, err
	}
	done := make(map[uint]bool, len(doneIDs))
	for _, id := range doneIDs {
		done[id] = true
	}

	doneCount := 0
	for _, v := range videos {
		if done[v.ID] {
			doneCount++
		}
	}
	// A course with no videos never completes; there is nothing to certify.
	allDone := len(videos) > 0 && doneCount == len(videos)

	if len(videos) > 0 {
		e.Progress = float64(doneCount) / float64(len(videos)) * 100
	}
	if doneCount > 0 && e.Status == "ENROLLED" {
		e.Status = "IN_PROGRESS"
	}

	if allDone && !e.IsCompleted {
		now := time.Now()
		e.IsCompleted = true
		e.CompletedAt = &now
	}
	if e.IsCompleted {
		e.Status = "COMPLETED"
	}

	if err := s.enrollments.Save(e); err != nil {
		return false, err
	}
	return e.IsCompleted, nil
}

func computePercentage(watched, total float64) float64 {
	if total <= 0 {
		return 0
	}
	p := watched / total * 100
	if p > 100 {
		p = 100
	}
	return p
}
