package services_test

import (
	"testing"
	"time"

	"lms/models"
	"lms/repository"
	"lms/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportWatchTimeNeverRegresses(t *testing.T) {
	f := newFixture(t)
	student := f.createStudent(t, "Ada", "ada@example.com")
	course, videos := f.createCourse(t, "Go Basics", 100)
	_, err := f.enrollments.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	// Interleaved reports, including out-of-order and regressing ticks
	sequence := []float64{10, 40, 25, 96, 50, 96, 3}
	prev := 0.0
	for _, watched := range sequence {
		report, err := f.progress.ReportWatchTime(student.ID, course.ID, videos[0].ID, watched, 100)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, report.Percentage, prev, "percentage regressed")
		prev = report.Percentage
	}

	rec, err := f.progress.GetProgress(student.ID, course.ID, videos[0].ID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 96.0, rec.WatchedDuration)
	assert.Equal(t, 96.0, rec.Percentage)
}

func TestStaleLowerReportCannotRegressStoredState(t *testing.T) {
	f := newFixture(t)
	student := f.createStudent(t, "Ada", "ada@example.com")
	course, videos := f.createCourse(t, "Go Basics", 100)
	_, err := f.enrollments.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	// Two racing reports that both read before either write: the lower one
	// lands last. The upsert itself must keep the high-water values, so the
	// merges are replayed directly against the store.
	repo := repository.NewProgressRepo(f.db)
	high := &models.ProgressRecord{
		UserID: student.ID, CourseID: course.ID, VideoID: videos[0].ID,
		WatchedDuration: 96, TotalDuration: 100, Percentage: 96,
	}
	require.NoError(t, repo.Merge(high))

	stale := &models.ProgressRecord{
		UserID: student.ID, CourseID: course.ID, VideoID: videos[0].ID,
		WatchedDuration: 50, TotalDuration: 100, Percentage: 50,
	}
	require.NoError(t, repo.Merge(stale))

	rec, err := repo.Get(student.ID, course.ID, videos[0].ID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 96.0, rec.WatchedDuration, "stale lower write must not clobber the stored watch time")
	assert.Equal(t, 96.0, rec.Percentage)
	assert.Equal(t, 100.0, rec.TotalDuration)

	var count int64
	f.db.Model(&models.ProgressRecord{}).
		Where("user_id = ? AND course_id = ? AND video_id = ?", student.ID, course.ID, videos[0].ID).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestReportWatchTimeIdempotent(t *testing.T) {
	f := newFixture(t)
	student := f.createStudent(t, "Ada", "ada@example.com")
	course, videos := f.createCourse(t, "Go Basics", 200)
	_, err := f.enrollments.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	first, err := f.progress.ReportWatchTime(student.ID, course.ID, videos[0].ID, 120, 200)
	require.NoError(t, err)
	second, err := f.progress.ReportWatchTime(student.ID, course.ID, videos[0].ID, 120, 200)
	require.NoError(t, err)

	assert.Equal(t, first.WatchedDuration, second.WatchedDuration)
	assert.Equal(t, first.Percentage, second.Percentage)

	var count int64
	f.db.Model(&models.ProgressRecord{}).
		Where("user_id = ? AND course_id = ? AND video_id = ?", student.ID, course.ID, videos[0].ID).
		Count(&count)
	assert.Equal(t, int64(1), count, "repeated reports must not create extra records")
}

func TestCompletionThresholdBoundary(t *testing.T) {
	f := newFixture(t)
	student := f.createStudent(t, "Ada", "ada@example.com")
	course, videos := f.createCourse(t, "Go Basics", 1000)
	_, err := f.enrollments.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	report, err := f.progress.ReportWatchTime(student.ID, course.ID, videos[0].ID, 949.99, 1000)
	require.NoError(t, err)
	assert.InDelta(t, 94.999, report.Percentage, 1e-9)
	assert.False(t, report.VideoDone, "94.999 must not count as done")

	report, err = f.progress.ReportWatchTime(student.ID, course.ID, videos[0].ID, 950, 1000)
	require.NoError(t, err)
	assert.Equal(t, 95.0, report.Percentage)
	assert.True(t, report.VideoDone, "exactly 95.0 counts as done")
}

func TestCourseCompletionTransition(t *testing.T) {
	f := newFixture(t)
	student := f.createStudent(t, "Ada", "ada@example.com")
	course, videos := f.createCourse(t, "Go Basics", 100, 200, 300)
	_, err := f.enrollments.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	// Video 1 watched past the threshold: course still incomplete
	report, err := f.progress.ReportWatchTime(student.ID, course.ID, videos[0].ID, 96, 100)
	require.NoError(t, err)
	assert.Equal(t, 96.0, report.Percentage)
	assert.True(t, report.VideoDone)
	assert.False(t, report.CourseCompleted)

	// Videos 2 and 3 via explicit mark-complete
	report, err = f.progress.MarkVideoComplete(student.ID, course.ID, videos[1].ID)
	require.NoError(t, err)
	assert.False(t, report.CourseCompleted)

	before := time.Now()
	report, err = f.progress.MarkVideoComplete(student.ID, course.ID, videos[2].ID)
	require.NoError(t, err)
	assert.True(t, report.CourseCompleted)

	e := f.enrollment(t, student.ID, course.ID)
	assert.True(t, e.IsCompleted)
	assert.Equal(t, "COMPLETED", e.Status)
	require.NotNil(t, e.CompletedAt)
	assert.False(t, e.CompletedAt.Before(before.Add(-time.Second)))
	firstCompletedAt := *e.CompletedAt

	// Further reports must not move the completion timestamp
	time.Sleep(10 * time.Millisecond)
	_, err = f.progress.ReportWatchTime(student.ID, course.ID, videos[0].ID, 100, 100)
	require.NoError(t, err)

	e = f.enrollment(t, student.ID, course.ID)
	require.NotNil(t, e.CompletedAt)
	assert.WithinDuration(t, firstCompletedAt, *e.CompletedAt, 5*time.Millisecond,
		"completedAt must be set exactly once")
}

func TestLateAddedVideoKeepsCompletion(t *testing.T) {
	f := newFixture(t)
	student := f.createStudent(t, "Ada", "ada@example.com")
	course, videos := f.createCourse(t, "Go Basics", 100)
	_, err := f.enrollments.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	report, err := f.progress.MarkVideoComplete(student.ID, course.ID, videos[0].ID)
	require.NoError(t, err)
	require.True(t, report.CourseCompleted)

	// A video added after completion does not reopen the enrollment
	extra := models.Video{CourseID: course.ID, Title: "bonus", Duration: 500}
	require.NoError(t, f.db.Create(&extra).Error)

	report, err = f.progress.ReportWatchTime(student.ID, course.ID, extra.ID, 10, 500)
	require.NoError(t, err)
	assert.True(t, report.CourseCompleted, "completed enrollments stay completed")

	e := f.enrollment(t, student.ID, course.ID)
	assert.True(t, e.IsCompleted)
	assert.Equal(t, "COMPLETED", e.Status)
}

func TestTotalDurationOverwrite(t *testing.T) {
	f := newFixture(t)
	student := f.createStudent(t, "Ada", "ada@example.com")
	course, videos := f.createCourse(t, "Go Basics", 100)
	_, err := f.enrollments.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	_, err = f.progress.ReportWatchTime(student.ID, course.ID, videos[0].ID, 90, 100)
	require.NoError(t, err)

	// The player corrects the video length upwards; percentage keeps its
	// high-water value even though the recomputed one would be lower.
	report, err := f.progress.ReportWatchTime(student.ID, course.ID, videos[0].ID, 90, 120)
	require.NoError(t, err)
	assert.Equal(t, 120.0, report.TotalDuration)
	assert.Equal(t, 90.0, report.Percentage)
}

func TestMarkVideoComplete(t *testing.T) {
	f := newFixture(t)
	student := f.createStudent(t, "Ada", "ada@example.com")
	course, videos := f.createCourse(t, "Go Basics", 300, 100)
	_, otherVideos := f.createCourse(t, "Other", 50)
	_, err := f.enrollments.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	report, err := f.progress.MarkVideoComplete(student.ID, course.ID, videos[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, report.Percentage)
	assert.Equal(t, 300.0, report.WatchedDuration)
	assert.True(t, report.VideoDone)

	// A video from another course is rejected
	_, err = f.progress.MarkVideoComplete(student.ID, course.ID, otherVideos[0].ID)
	assert.ErrorIs(t, err, services.ErrVideoNotFound)
}

func TestReportWatchTimeValidation(t *testing.T) {
	f := newFixture(t)
	student := f.createStudent(t, "Ada", "ada@example.com")
	course, videos := f.createCourse(t, "Go Basics", 100)

	// Not enrolled yet
	_, err := f.progress.ReportWatchTime(student.ID, course.ID, videos[0].ID, 10, 100)
	assert.ErrorIs(t, err, services.ErrNotEnrolled)

	_, err = f.enrollments.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	_, err = f.progress.ReportWatchTime(student.ID, course.ID, videos[0].ID, -1, 100)
	assert.ErrorIs(t, err, services.ErrInvalidDuration)
	_, err = f.progress.ReportWatchTime(student.ID, course.ID, videos[0].ID, 10, -1)
	assert.ErrorIs(t, err, services.ErrInvalidDuration)

	// Zero total never divides by zero
	report, err := f.progress.ReportWatchTime(student.ID, course.ID, videos[0].ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, report.Percentage)
}

func TestGetProgressAbsentIsEmptyNotError(t *testing.T) {
	f := newFixture(t)
	student := f.createStudent(t, "Ada", "ada@example.com")
	course, videos := f.createCourse(t, "Go Basics", 100)

	rec, err := f.progress.GetProgress(student.ID, course.ID, videos[0].ID)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestCompletedVideoIDs(t *testing.T) {
	f := newFixture(t)
	student := f.createStudent(t, "Ada", "ada@example.com")
	course, videos := f.createCourse(t, "Go Basics", 100, 100, 100)
	_, err := f.enrollments.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	_, err = f.progress.ReportWatchTime(student.ID, course.ID, videos[0].ID, 96, 100)
	require.NoError(t, err)
	_, err = f.progress.ReportWatchTime(student.ID, course.ID, videos[1].ID, 50, 100)
	require.NoError(t, err)

	ids, err := f.progress.CompletedVideoIDs(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{videos[0].ID}, ids)

	// No progress at all yields an empty set, not nil
	other := f.createStudent(t, "Bob", "bob@example.com")
	ids, err = f.progress.CompletedVideoIDs(other.ID, course.ID)
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
}
