package main

import (
	"log"

	"lms/certificate"
	"lms/config"
	"lms/database"
	"lms/mailer"
	authRoutes "lms/routers/authRoutes"
	certificateRoutes "lms/routers/certificateRoutes"
	courseRoutes "lms/routers/courseRoutes"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	// Email collaborator: sendgrid when configured, console otherwise
	var sender mailer.Sender = mailer.ConsoleSender{}
	if config.AppConfig.SendgridApiKey != "" {
		sender = mailer.NewSendgridSender(config.AppConfig.SendgridApiKey, config.AppConfig.PlatformName, config.AppConfig.EmailSender)
	}
	dispatcher := mailer.NewDispatcher(sender, 64)
	dispatcher.Start()

	notifier := mailer.NewCertificateNotifier(dispatcher, config.AppConfig.PlatformName, config.AppConfig.BaseURL)
	renderer := certificate.NewRenderer(config.AppConfig.StaticDir, config.AppConfig.BaseURL, config.AppConfig.PlatformName)
	certificate.Setup(database.Database.Db, renderer, notifier)

	// Nightly repair of missing certificate files
	utils.InitializeCertificateScheduler()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files (uploads, generated certificates)
	app.Static("/static", config.AppConfig.StaticDir)

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	certificateRoutes.SetupCertificateRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	err := app.Listen(":" + config.AppConfig.Port)

	// Drain queued emails before exiting; log.Fatal would skip deferred calls
	dispatcher.Stop()
	log.Fatal(err)
}
