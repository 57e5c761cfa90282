package progressValidator

import (
	"lms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ReportWatchTimeRequest is the watch-time tick payload
type ReportWatchTimeRequest struct {
	StudentID       uint     `json:"student_id" validate:"required"`
	CourseID        uint     `json:"course_id" validate:"required"`
	VideoID         uint     `json:"video_id" validate:"required"`
	WatchedDuration *float64 `json:"watched_duration" validate:"required,gte=0"`
	TotalDuration   *float64 `json:"total_duration" validate:"required,gte=0"`
}

// MarkCompleteRequest marks one video as fully watched
type MarkCompleteRequest struct {
	StudentID uint `json:"student_id" validate:"required"`
	CourseID  uint `json:"course_id" validate:"required"`
	VideoID   uint `json:"video_id" validate:"required"`
}

func ReportWatchTime() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ReportWatchTimeRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedWatchTime", reqData)
		return c.Next()
	}
}

func MarkComplete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(MarkCompleteRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedMarkComplete", reqData)
		return c.Next()
	}
}

// ProgressQuery identifies one (student, course, video) record
type ProgressQuery struct {
	StudentID uint `query:"student_id" validate:"required"`
	CourseID  uint `query:"course_id" validate:"required"`
	VideoID   uint `query:"video_id" validate:"required"`
}

// CompletedQuery identifies one (student, course) pair
type CompletedQuery struct {
	StudentID uint `query:"student_id" validate:"required"`
	CourseID  uint `query:"course_id" validate:"required"`
}

func GetProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ProgressQuery)

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedProgressQuery", reqData)
		return c.Next()
	}
}

func CompletedList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CompletedQuery)

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedCompletedQuery", reqData)
		return c.Next()
	}
}

func validationErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range verrs {
			errors[e.Field()] = "failed on the '" + e.Tag() + "' rule"
		}
	}
	return errors
}
