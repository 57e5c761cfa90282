package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	"lms/services"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up course management routes (admin only)
func SetupAdminCourseRoutes(app *fiber.App, enrollmentSvc *services.EnrollmentService) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.AdminOnly)

	adminGroup.Post("/course", validators.CreateCourse(), controllers.AdminCreateCourse)
	adminGroup.Put("/course/:id", validators.CourseID(), validators.UpdateCourse(), controllers.AdminUpdateCourse)
	adminGroup.Post("/course/:id/publish", validators.CourseID(), controllers.AdminPublishCourse)
	adminGroup.Post("/course/:id/video", validators.CourseID(), validators.CreateVideo(), controllers.AdminAddVideo)

	// Enrollment management; unenroll is irreversible and cascades progress deletion
	adminGroup.Post("/course/:id/enroll", validators.CourseID(), validators.Student(), controllers.AdminEnrollStudent(enrollmentSvc))
	adminGroup.Post("/course/:id/unenroll", validators.CourseID(), validators.Student(), controllers.AdminUnenrollStudent(enrollmentSvc))
}
