package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists published courses with pagination
func GetAllCourses(c *fiber.Ctx) error {
	page := c.Locals("page").(int)
	limit := c.Locals("limit").(int)
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.Course{}).Where("is_deleted = ? AND is_published = ?", false, true)

	var total int64
	db.Count(&total)

	var courses []models.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// VideoWithStatus decorates a video with the caller's completion badge
type VideoWithStatus struct {
	models.Video
	IsCompleted bool `json:"is_completed"`
}

// GetCourseDetails returns the course, its videos with per-video completion
// badges for the caller, and the caller's enrollment when one exists.
func GetCourseDetails(progressSvc *services.ProgressService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		courseID := c.Locals("courseID").(int)

		var course models.Course
		if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}

		var videos []models.Video
		database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc").Find(&videos)

		completedIDs, err := progressSvc.CompletedVideoIDs(userID, uint(courseID))
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course details!", nil)
		}
		completed := make(map[uint]bool, len(completedIDs))
		for _, id := range completedIDs {
			completed[id] = true
		}

		result := make([]VideoWithStatus, len(videos))
		for i, v := range videos {
			result[i] = VideoWithStatus{Video: v, IsCompleted: completed[v.ID]}
		}

		var enrollment models.Enrollment
		isEnrolled := database.Database.Db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error == nil

		response := fiber.Map{
			"course":      course,
			"videos":      result,
			"is_enrolled": isEnrolled,
		}
		if isEnrolled {
			response["enrollment"] = enrollment
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", response)
	}
}

// GetMyEnrollments lists the authenticated student's enrollments with course
// details denormalized in.
func GetMyEnrollments(svc *services.EnrollmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		enrollments, err := svc.ListForStudent(userID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
			"enrollments": enrollments,
			"total":       len(enrollments),
		})
	}
}
