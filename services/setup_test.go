package services_test

import (
	"fmt"
	"testing"

	"lms/models"
	"lms/repository"
	"lms/services"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens a per-test in-memory database with the same schema the app
// migrates.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Video{},
		&models.Enrollment{},
		&models.ProgressRecord{},
		&models.Certificate{},
	))
	return db
}

type fixture struct {
	db          *gorm.DB
	progress    *services.ProgressService
	enrollments *services.EnrollmentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testDB(t)

	progressRepo := repository.NewProgressRepo(db)
	enrollmentRepo := repository.NewEnrollmentRepo(db)
	courseRepo := repository.NewCourseRepo(db)
	userRepo := repository.NewUserRepo(db)

	return &fixture{
		db:          db,
		progress:    services.NewProgressService(progressRepo, enrollmentRepo, courseRepo),
		enrollments: services.NewEnrollmentService(enrollmentRepo, courseRepo, userRepo),
	}
}

func (f *fixture) createStudent(t *testing.T, name, email string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, Password: "x", Role: "USER"}
	require.NoError(t, f.db.Create(user).Error)
	return user
}

// createCourse makes a published course with one video per duration given.
func (f *fixture) createCourse(t *testing.T, title string, durations ...float64) (*models.Course, []models.Video) {
	t.Helper()
	course := &models.Course{Title: title, Description: "test course", Status: "ACTIVE", IsPublished: true}
	require.NoError(t, f.db.Create(course).Error)

	videos := make([]models.Video, 0, len(durations))
	for i, d := range durations {
		v := models.Video{CourseID: course.ID, Title: fmt.Sprintf("video %d", i+1), Duration: d, OrderIndex: i}
		require.NoError(t, f.db.Create(&v).Error)
		videos = append(videos, v)
	}
	return course, videos
}

func (f *fixture) enrollment(t *testing.T, userID, courseID uint) *models.Enrollment {
	t.Helper()
	var e models.Enrollment
	require.NoError(t, f.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&e).Error)
	return &e
}
