package progressRoutes

import (
	controllers "lms/controllers/progress"
	"lms/middleware"
	"lms/services"
	validators "lms/validators/progress"

	"github.com/gofiber/fiber/v2"
)

// SetupProgressRoutes sets up watch-time reporting and progress reads
func SetupProgressRoutes(app *fiber.App, progressSvc *services.ProgressService) {
	progressGroup := app.Group("/progress", middleware.JWTMiddleware)

	progressGroup.Post("/", validators.ReportWatchTime(), controllers.ReportWatchTime(progressSvc))
	progressGroup.Post("/complete", validators.MarkComplete(), controllers.MarkComplete(progressSvc))
	progressGroup.Get("/", validators.GetProgress(), controllers.GetProgress(progressSvc))
	progressGroup.Get("/completed", validators.CompletedList(), controllers.GetCompletedVideos(progressSvc))
}
