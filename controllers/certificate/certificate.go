package controllers

import (
	"errors"

	"lms/middleware"
	"lms/services"
	certificateValidator "lms/validators/certificate"

	"github.com/gofiber/fiber/v2"
)

// Generate issues a certificate for a completed enrollment.
func Generate(svc *services.CertificateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData, ok := c.Locals("validatedGenerate").(*certificateValidator.GenerateRequest)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
		}

		cert, err := svc.Issue(reqData.StudentID, reqData.CourseID, reqData.ImageDataURL)
		if err != nil {
			return certificateError(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate issued successfully!", fiber.Map{
			"certificate": cert,
		})
	}
}

// Validate is the public, unauthenticated lookup by certificate number.
func Validate(svc *services.CertificateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		number, ok := c.Locals("certificateNumber").(string)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate number is required!", nil)
		}

		cert, err := svc.Validate(number)
		if err != nil {
			return certificateError(c, err)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate is valid!", fiber.Map{
			"certificate": cert,
		})
	}
}

// MyCertificates lists the authenticated student's certificates.
func MyCertificates(svc *services.CertificateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		certs, err := svc.ListForStudent(userID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
			"certificates": certs,
			"total":        len(certs),
		})
	}
}

func certificateError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrStudentNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	case errors.Is(err, services.ErrCourseNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	case errors.Is(err, services.ErrNotEnrolled):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Student not enrolled in this course!", nil)
	case errors.Is(err, services.ErrCourseNotCompleted):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Please complete the course before requesting a certificate!", nil)
	case errors.Is(err, services.ErrCertificateExists):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate already exists for this student and course!", nil)
	case errors.Is(err, services.ErrInvalidImageData):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid certificate image payload!", nil)
	case errors.Is(err, services.ErrCertificateNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	default:
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process certificate request!", nil)
	}
}
