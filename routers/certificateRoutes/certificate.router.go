package certificateRoutes

import (
	controllers "lms/controllers/certificate"
	"lms/middleware"
	"lms/services"
	validators "lms/validators/certificate"

	"github.com/gofiber/fiber/v2"
)

// SetupCertificateRoutes sets up certificate issuance and the public
// validation lookup
func SetupCertificateRoutes(app *fiber.App, certSvc *services.CertificateService) {
	certGroup := app.Group("/certificate")

	certGroup.Post("/generate", middleware.JWTMiddleware, validators.Generate(), controllers.Generate(certSvc))

	// Public by design: third-party verification by certificate number
	app.Get("/certificates/validate/:certificateNumber", validators.CertificateNumber(), controllers.Validate(certSvc))

	userGroup := app.Group("/user")
	userGroup.Get("/certificates", middleware.JWTMiddleware, controllers.MyCertificates(certSvc))
}
