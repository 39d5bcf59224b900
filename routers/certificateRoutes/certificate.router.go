package certificateRoutes

import (
	controllers "lms/controllers/certificate"
	"lms/middleware"
	validators "lms/validators/certificate"

	"github.com/gofiber/fiber/v2"
)

// SetupCertificateRoutes sets up public verification, user certificate and
// admin template/settings routes
func SetupCertificateRoutes(app *fiber.App) {
	certGroup := app.Group("/certificates")

	// Public trust-verification endpoint, no authentication by design
	certGroup.Get("/verify/:certificate_id", validators.VerifyCertificate(), controllers.VerifyCertificate)

	// User-facing certificate routes
	certGroup.Get("/", middleware.JWTMiddleware, controllers.GetUserCertificates)
	certGroup.Get("/:certificate_id/download", middleware.JWTMiddleware, validators.DownloadCertificate(), controllers.DownloadCertificate)

	// Admin template and settings management
	adminGroup := app.Group("/admin/certificates", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))
	adminGroup.Get("/templates", controllers.GetTemplates)
	adminGroup.Post("/templates", validators.TemplateBody(), controllers.CreateTemplate)
	adminGroup.Put("/templates/:template_id", validators.TemplateID(), validators.TemplateBody(), controllers.UpdateTemplate)
	adminGroup.Post("/templates/:template_id/default", validators.TemplateID(), controllers.SetDefaultTemplate)
	adminGroup.Post("/templates/:template_id/assets/:asset_type", validators.UploadTemplateAsset(), controllers.UploadTemplateAsset)
	adminGroup.Get("/templates/:template_id/preview", validators.TemplateID(), controllers.PreviewTemplate)
	adminGroup.Get("/settings", controllers.GetCertificateSettings)
	adminGroup.Put("/settings", validators.SettingsBody(), controllers.UpdateCertificateSettings)
}
