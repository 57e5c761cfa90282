package services

import (
	"encoding/base64"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"lms/models"

	"github.com/google/uuid"
)

// numberAttempts bounds the collision-retry loop. With an 8-digit keyspace a
// second draw is already vanishingly rare.
const numberAttempts = 50

// Renderer composes a certificate image for a student and course.
type Renderer interface {
	Compose(displayName, courseTitle string) ([]byte, error)
}

// BlobStore persists an image and returns a retrievable URL. Delete is the
// best-effort cleanup path for blobs whose database record never landed.
type BlobStore interface {
	Upload(data []byte, folder, publicID string) (string, error)
	Delete(folder, publicID string) error
}

// Notifier is told about issued certificates. Notification is best-effort and
// never gates issuance.
type Notifier interface {
	CertificateIssued(email, name, courseTitle, number, url string)
}

// CertificateService issues completion certificates and serves the public
// validation lookup.
type CertificateService struct {
	certificates CertificateRepo
	enrollments  EnrollmentRepo
	courses      CourseRepo
	users        UserRepo
	renderer     Renderer
	store        BlobStore
	notifier     Notifier
}

func NewCertificateService(
	certificates CertificateRepo,
	enrollments EnrollmentRepo,
	courses CourseRepo,
	users UserRepo,
	renderer Renderer,
	store BlobStore,
	notifier Notifier,
) *CertificateService {
	return &CertificateService{
		certificates: certificates,
		enrollments:  enrollments,
		courses:      courses,
		users:        users,
		renderer:     renderer,
		store:        store,
		notifier:     notifier,
	}
}

// CertificateDetail is a certificate with student and course fields
// denormalized in, as returned to callers and by the public validator.
type CertificateDetail struct {
	models.Certificate
	StudentName       string `json:"student_name"`
	StudentEmail      string `json:"student_email"`
	CourseTitle       string `json:"course_title"`
	CourseDescription string `json:"course_description"`
}

// Issue mints a certificate for a completed enrollment. When imageDataURL is
// set the client-composed image is stored as-is; otherwise the renderer
// composes one from the template. The insert and the enrollment link happen in
// one transaction, and the unique indexes make concurrent issuance for the
// same pair collapse to a single winner.
func (s *CertificateService) Issue(userID, courseID uint, imageDataURL string) (*CertificateDetail, error) {
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
	if course == nil {
		return nil, ErrCourseNotFound
	}

	enrollment, err := s.enrollments.Get(userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, ErrNotEnrolled
	}
	if !enrollment.IsCompleted {
		return nil, ErrCourseNotCompleted
	}

	existing, err := s.certificates.GetByPair(userID, courseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCertificateExists
	}

	number, err := s.generateNumber()
	if err != nil {
		return nil, err
	}

	var image []byte
	if imageDataURL != "" {
		image, err = decodeDataURL(imageDataURL)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidImageData, err)
		}
	} else {
		image, err = s.renderer.Compose(user.Name, course.Title)
		if err != nil {
			return nil, fmt.Errorf("compose certificate image: %w", err)
		}
	}

	publicID := uuid.NewString()
	url, err := s.store.Upload(image, "certificates", publicID)
	if err != nil {
		return nil, fmt.Errorf("upload certificate image: %w", err)
	}

	cert := &models.Certificate{
		UserID:            userID,
		CourseID:          courseID,
		CertificateNumber: number,
		CertificateURL:    url,
		IssuedAt:          time.Now(),
	}
	if err := s.certificates.CreateAndLink(cert, enrollment); err != nil {
		// The blob is already out; reclaim it so a failed insert leaves no
		// visible state. The insert error wins over any cleanup failure.
		_ = s.store.Delete("certificates", publicID)
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.CertificateIssued(user.Email, user.Name, course.Title, number, url)
	}

	return &CertificateDetail{
		Certificate:       *cert,
		StudentName:       user.Name,
		StudentEmail:      user.Email,
		CourseTitle:       course.Title,
		CourseDescription: course.Description,
	}, nil
}

// Validate is the public lookup by certificate number. Read-only and
// unauthenticated: third-party verification is the whole point.
func (s *CertificateService) Validate(number string) (*CertificateDetail, error) {
	cert, err := s.certificates.GetByNumber(number)
	if err != nil {
		return nil, err
	}
	if cert == nil {
		return nil, ErrCertificateNotFound
	}

	// A vanished student or course leaves the denormalized fields empty, but a
	// failing store must not pass the certificate off as verified.
	detail := &CertificateDetail{Certificate: *cert}
	user, err := s.users.Get(cert.UserID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		detail.StudentName = user.Name
		detail.StudentEmail = user.Email
	}
	course, err := s.courses.Get(cert.CourseID)
	if err != nil {
		return nil, err
	}
	if course != nil {
		detail.CourseTitle = course.Title
		detail.CourseDescription = course.Description
	}
	return detail, nil
}

// ListForStudent returns the student's certificates with course titles filled
// in.
func (s *CertificateService) ListForStudent(userID uint) ([]CertificateDetail, error) {
	certs, err := s.certificates.ListForUser(userID)
	if err != nil {
		return nil, err
	}

	details := make([]CertificateDetail, 0, len(certs))
	for _, cert := range certs {
		d := CertificateDetail{Certificate: cert}
		course, err := s.courses.Get(cert.CourseID)
		if err != nil {
			return nil, err
		}
		if course != nil {
			d.CourseTitle = course.Title
			d.CourseDescription = course.Description
		}
		details = append(details, d)
	}
	return details, nil
}

// generateNumber draws random 8-digit numbers until one is free.
func (s *CertificateService) generateNumber() (string, error) {
	for i := 0; i < numberAttempts; i++ {
		number := fmt.Sprintf("%d", 10000000+rand.Intn(90000000))
		exists, err := s.certificates.NumberExists(number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique certificate number after %d attempts", numberAttempts)
}

// decodeDataURL accepts either a data URL or bare base64 image payload.
func decodeDataURL(s string) ([]byte, error) {
	payload := s
	if strings.HasPrefix(s, "data:") {
		idx := strings.Index(s, ",")
		if idx < 0 {
			return nil, fmt.Errorf("malformed data url")
		}
		payload = s[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode image payload: %w", err)
	}
	return data, nil
}
