package services

import "lms/models"

// EnrollmentService manages the (student, course) aggregate. Enrollment
// creates one zero-initialized progress record per video currently in the
// course; unenrollment cascades their deletion.
type EnrollmentService struct {
	enrollments EnrollmentRepo
	courses     CourseRepo
	users       UserRepo
}

func NewEnrollmentService(enrollments EnrollmentRepo, courses CourseRepo, users UserRepo) *EnrollmentService {
	return &EnrollmentService{
		enrollments: enrollments,
		courses:     courses,
		users:       users,
	}
}

// EnrollmentDetail is an enrollment with course fields denormalized in for
// listing screens.
type EnrollmentDetail struct {
	models.Enrollment
	CourseTitle       string `json:"course_title"`
	CourseDescription string `json:"course_description"`
	CourseAuthor      string `json:"course_author"`
}

func (s *EnrollmentService) Enroll(userID, courseID uint) (*models.Enrollment, error) {
	user, err := s.users.Get(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrStudentNotFound
	}

	course, err := s.courses.Get(courseID)
	if err != nil {
		return nil, err
	}
	if course == nil || !course.IsPublished {
		return nil, ErrCourseNotFound
	}

	existing, err := s.enrollments.Get(userID, courseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyEnrolled
	}

	videos, err := s.courses.Videos(courseID)
	if err != nil {
		return nil, err
	}

	enrollment := &models.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Status:   "ENROLLED",
	}

	records := make([]models.ProgressRecord, 0, len(videos))
	for _, v := range videos {
		records = append(records, models.ProgressRecord{
			UserID:        userID,
			CourseID:      courseID,
			VideoID:       v.ID,
			TotalDuration: v.Duration,
		})
	}

	if err := s.enrollments.CreateWithProgress(enrollment, records); err != nil {
		return nil, err
	}
	return enrollment, nil
}

// Unenroll deletes the aggregate and all of its progress records. This is
// destructive and non-recoverable.
func (s *EnrollmentService) Unenroll(userID, courseID uint) error {
	enrollment, err := s.enrollments.Get(userID, courseID)
	if err != nil {
		return err
	}
	if enrollment == nil {
		return ErrNotEnrolled
	}
	return s.enrollments.DeleteWithProgress(enrollment)
}

func (s *EnrollmentService) ListForStudent(userID uint) ([]EnrollmentDetail, error) {
	enrollments, err := s.enrollments.ListForUser(userID)
	if err != nil {
		return nil, err
	}

	details := make([]EnrollmentDetail, 0, len(enrollments))
	for _, e := range enrollments {
		d := EnrollmentDetail{Enrollment: e}
		if course, err := s.courses.Get(e.CourseID); err == nil && course != nil {
			d.CourseTitle = course.Title
			d.CourseDescription = course.Description
			d.CourseAuthor = course.Author
		}
		details = append(details, d)
	}
	return details, nil
}
