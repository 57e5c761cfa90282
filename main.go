package main

import (
	"log"

	"lms/certimage"
	"lms/config"
	"lms/database"
	"lms/mailer"
	"lms/repository"
	"lms/routers/authRoutes"
	"lms/routers/certificateRoutes"
	"lms/routers/courseRoutes"
	"lms/routers/progressRoutes"
	"lms/services"
	"lms/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	db := database.Database.Db

	// Repositories behind the service interfaces
	progressRepo := repository.NewProgressRepo(db)
	enrollmentRepo := repository.NewEnrollmentRepo(db)
	certificateRepo := repository.NewCertificateRepo(db)
	courseRepo := repository.NewCourseRepo(db)
	userRepo := repository.NewUserRepo(db)

	renderer, err := certimage.NewRenderer(config.AppConfig.CertTemplatePath, config.AppConfig.CertFontPath)
	if err != nil {
		log.Fatalf("Failed to set up certificate renderer: %v", err)
	}

	var blobStore services.BlobStore
	if config.AppConfig.StorageURL != "" {
		blobStore = storage.NewHTTPStore(config.AppConfig.StorageURL, config.AppConfig.StorageKey)
	} else {
		blobStore = storage.NewLocalStore(config.AppConfig.UploadDir, config.AppConfig.UploadBaseURL)
	}

	progressSvc := services.NewProgressService(progressRepo, enrollmentRepo, courseRepo)
	enrollmentSvc := services.NewEnrollmentService(enrollmentRepo, courseRepo, userRepo)
	certificateSvc := services.NewCertificateService(
		certificateRepo, enrollmentRepo, courseRepo, userRepo,
		renderer, blobStore, mailer.New(),
	)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve locally stored certificate images
	app.Static(config.AppConfig.UploadBaseURL, config.AppConfig.UploadDir)

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app, progressSvc, enrollmentSvc)
	courseRoutes.SetupAdminCourseRoutes(app, enrollmentSvc)
	progressRoutes.SetupProgressRoutes(app, progressSvc)
	certificateRoutes.SetupCertificateRoutes(app, certificateSvc)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
