package certificateValidator

import (
	"strconv"
	"strings"

	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// VerifyCertificate validates the public verification identifier. The
// identifier is an opaque token; only shape is checked, existence is decided
// by the lookup itself.
func VerifyCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		certificateID := strings.TrimSpace(c.Params("certificate_id"))
		if certificateID == "" || len(certificateID) > 50 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid certificate ID!", nil)
		}

		c.Locals("certificateID", certificateID)
		return c.Next()
	}
}

// DownloadCertificate validates the certificate identifier for downloads
func DownloadCertificate() fiber.Handler {
	return VerifyCertificate()
}

// TemplateID validates the template id route parameter
func TemplateID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("template_id"))
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid template ID!", nil)
		}

		c.Locals("templateID", id)
		return c.Next()
	}
}

// UploadTemplateAsset validates the asset upload parameters
func UploadTemplateAsset() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("template_id"))
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid template ID!", nil)
		}

		assetType := c.Params("asset_type")
		if assetType != "logo" && assetType != "signature" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Asset type must be logo or signature!", nil)
		}

		c.Locals("templateID", id)
		c.Locals("assetType", assetType)
		return c.Next()
	}
}

// TemplateBody validates a template create/update payload
func TemplateBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		template := new(courseModels.CertificateTemplate)
		if err := c.BodyParser(template); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(template.Name) == "" {
			errors["name"] = "Name is required!"
		}
		if strings.TrimSpace(template.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if strings.TrimSpace(template.BodyText) == "" {
			errors["body_text"] = "Body text is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		// The default flag is only changed through the set-default endpoint
		template.IsDefault = false

		c.Locals("validatedTemplate", template)
		return c.Next()
	}
}

// SettingsBody validates a certificate settings update payload
func SettingsBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		settings := new(courseModels.CertificateSettings)
		if err := c.BodyParser(settings); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(settings.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if strings.TrimSpace(settings.BodyText) == "" {
			errors["body_text"] = "Body text is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSettings", settings)
		return c.Next()
	}
}
