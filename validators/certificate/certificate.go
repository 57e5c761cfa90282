package certificateValidator

import (
	"lms/middleware"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// GenerateRequest asks for a certificate for a completed enrollment. The
// image data URL is optional: when absent the server composes the image.
type GenerateRequest struct {
	StudentID    uint   `json:"student_id" validate:"required"`
	CourseID     uint   `json:"course_id" validate:"required"`
	ImageDataURL string `json:"image_data_url"`
}

func Generate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(GenerateRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			if verrs, ok := err.(validator.ValidationErrors); ok {
				for _, e := range verrs {
					errors[e.Field()] = "failed on the '" + e.Tag() + "' rule"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedGenerate", reqData)
		return c.Next()
	}
}

func CertificateNumber() fiber.Handler {
	return func(c *fiber.Ctx) error {
		number := strings.TrimSpace(c.Params("certificateNumber"))
		if number == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate number is required!", nil)
		}

		c.Locals("certificateNumber", number)
		return c.Next()
	}
}
