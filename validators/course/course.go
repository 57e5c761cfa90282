package courseValidator

import (
	"lms/middleware"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CourseID validates the :id route param and stores it as an int
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// CreateCourseRequest is the admin course-creation payload
type CreateCourseRequest struct {
	Title       string `json:"title" validate:"required,min=3"`
	Description string `json:"description" validate:"required,min=5"`
	Author      string `json:"author"`
	CoverURL    string `json:"cover_url"`
}

// UpdateCourseRequest carries optional course field updates
type UpdateCourseRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Author      string `json:"author"`
	CoverURL    string `json:"cover_url"`
	Status      string `json:"status" validate:"omitempty,oneof=DRAFT ACTIVE INACTIVE"`
}

// CreateVideoRequest adds one lecture video to a course
type CreateVideoRequest struct {
	Title      string   `json:"title" validate:"required,min=3"`
	VideoURL   string   `json:"video_url" validate:"required"`
	Duration   *float64 `json:"duration" validate:"required,gt=0"`
	OrderIndex int      `json:"order_index"`
}

// StudentRequest names the student an admin enrolls or unenrolls
type StudentRequest struct {
	StudentID uint `json:"student_id" validate:"required"`
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return validateBody(c, new(CreateCourseRequest), "validatedCourse")
	}
}

func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return validateBody(c, new(UpdateCourseRequest), "validatedCourseUpdate")
	}
}

func CreateVideo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return validateBody(c, new(CreateVideoRequest), "validatedVideo")
	}
}

func Student() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return validateBody(c, new(StudentRequest), "validatedStudent")
	}
}

// validateBody parses the body into dst, runs the struct rules, and stashes
// the result under the given locals key.
func validateBody(c *fiber.Ctx, dst interface{}, key string) error {
	if err := c.BodyParser(dst); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if err := validate.Struct(dst); err != nil {
		errors := make(map[string]string)
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, e := range verrs {
				errors[e.Field()] = "failed on the '" + e.Tag() + "' rule"
			}
		}
		return middleware.ValidationErrorResponse(c, errors)
	}

	c.Locals(key, dst)
	return c.Next()
}

// CourseList validates optional pagination query params
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `query:"page"`
			Limit *int `query:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)
		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit != nil && *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		page, limit := 1, 10
		if reqData.Page != nil {
			page = *reqData.Page
		}
		if reqData.Limit != nil {
			limit = *reqData.Limit
		}

		c.Locals("page", page)
		c.Locals("limit", limit)
		return c.Next()
	}
}
