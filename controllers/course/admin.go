package controllers

import (
	"errors"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateCourse creates a new course in DRAFT state
func AdminCreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := models.Course{
		Title:       reqData.Title,
		Description: reqData.Description,
		Author:      reqData.Author,
		CoverURL:    reqData.CoverURL,
		Status:      "DRAFT",
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// AdminUpdateCourse updates provided course fields only
func AdminUpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*courseValidator.UpdateCourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		course.Title = reqData.Title
	}
	if reqData.Description != "" {
		course.Description = reqData.Description
	}
	if reqData.Author != "" {
		course.Author = reqData.Author
	}
	if reqData.CoverURL != "" {
		course.CoverURL = reqData.CoverURL
	}
	if reqData.Status != "" {
		course.Status = reqData.Status
	}

	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// AdminPublishCourse makes a course visible and enrollable
func AdminPublishCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.IsPublished = true
	course.Status = "ACTIVE"

	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", course)
}

// AdminAddVideo adds a lecture video to a course. Enrollments that are
// already completed stay completed; everyone else now has one more video to
// finish.
func AdminAddVideo(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedVideo").(*courseValidator.CreateVideoRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	video := models.Video{
		CourseID:   uint(courseID),
		Title:      reqData.Title,
		VideoURL:   reqData.VideoURL,
		Duration:   *reqData.Duration,
		OrderIndex: reqData.OrderIndex,
	}

	if err := database.Database.Db.Create(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add video!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Video added successfully!", video)
}

// AdminEnrollStudent enrolls a student into a course, creating one
// zero-initialized progress record per video.
func AdminEnrollStudent(svc *services.EnrollmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID := c.Locals("courseID").(int)

		reqData, ok := c.Locals("validatedStudent").(*courseValidator.StudentRequest)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
		}

		enrollment, err := svc.Enroll(reqData.StudentID, uint(courseID))
		if err != nil {
			return enrollmentError(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusCreated, true, "Student enrolled successfully!", enrollment)
	}
}

// AdminUnenrollStudent removes an enrollment and all of its progress records.
// Irreversible.
func AdminUnenrollStudent(svc *services.EnrollmentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID := c.Locals("courseID").(int)

		reqData, ok := c.Locals("validatedStudent").(*courseValidator.StudentRequest)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
		}

		if err := svc.Unenroll(reqData.StudentID, uint(courseID)); err != nil {
			return enrollmentError(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Student unenrolled successfully!", nil)
	}
}

func enrollmentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrStudentNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	case errors.Is(err, services.ErrCourseNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not active!", nil)
	case errors.Is(err, services.ErrAlreadyEnrolled):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Student already enrolled in this course!", nil)
	case errors.Is(err, services.ErrNotEnrolled):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not enrolled in this course!", nil)
	default:
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process enrollment!", nil)
	}
}
