package controllers

import (
	"time"

	"lms/certificate"
	"lms/config"
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetTemplates lists all certificate templates
func GetTemplates(c *fiber.Ctx) error {
	var templates []courseModels.CertificateTemplate
	if err := database.Database.Db.Order("is_default desc, name asc").Find(&templates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch templates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Templates fetched successfully!", fiber.Map{
		"templates": templates,
		"total":     len(templates),
	})
}

// CreateTemplate creates a new certificate template
func CreateTemplate(c *fiber.Ctx) error {
	template, ok := c.Locals("validatedTemplate").(*courseModels.CertificateTemplate)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if err := database.Database.Db.Create(template).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create template!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Template created successfully!", template)
}

// UpdateTemplate updates an existing certificate template
func UpdateTemplate(c *fiber.Ctx) error {
	templateID := c.Locals("templateID").(int)
	updated, ok := c.Locals("validatedTemplate").(*courseModels.CertificateTemplate)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	var template courseModels.CertificateTemplate
	if err := database.Database.Db.First(&template, templateID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Template not found!", nil)
	}

	template.Name = updated.Name
	template.Description = updated.Description
	template.BackgroundColor = updated.BackgroundColor
	template.BorderColor = updated.BorderColor
	template.TextColor = updated.TextColor
	template.Title = updated.Title
	template.BodyText = updated.BodyText
	template.FooterText = updated.FooterText
	template.InstructorName = updated.InstructorName
	template.Font = updated.Font

	if err := database.Database.Db.Save(&template).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update template!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Template updated successfully!", template)
}

// SetDefaultTemplate marks a template as the system default
func SetDefaultTemplate(c *fiber.Ctx) error {
	templateID := c.Locals("templateID").(int)

	if err := certificate.SetDefaultTemplate(database.Database.Db, uint(templateID)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Failed to set default template!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Default template updated successfully!", nil)
}

// UploadTemplateAsset uploads a logo or signature image for a template
func UploadTemplateAsset(c *fiber.Ctx) error {
	templateID := c.Locals("templateID").(int)
	assetType := c.Locals("assetType").(string) // "logo" or "signature"

	var template courseModels.CertificateTemplate
	if err := database.Database.Db.First(&template, templateID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Template not found!", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No file uploaded!", nil)
	}

	relPath, err := utils.SaveUploadedFile(file, config.AppConfig.StaticDir, "uploads/certificate_assets")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save uploaded file!", nil)
	}

	if assetType == "logo" {
		template.LogoPath = relPath
	} else {
		template.SignaturePath = relPath
	}

	if err := database.Database.Db.Save(&template).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update template!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Asset uploaded successfully!", template)
}

// PreviewTemplate renders a sample certificate PDF for a template
func PreviewTemplate(c *fiber.Ctx) error {
	templateID := c.Locals("templateID").(int)

	var template courseModels.CertificateTemplate
	if err := database.Database.Db.First(&template, templateID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Template not found!", nil)
	}

	renderer := certificate.NewRenderer(config.AppConfig.StaticDir, config.AppConfig.BaseURL, config.AppConfig.PlatformName)
	pdf, err := renderer.RenderPreview(certificate.Data{
		HolderName:    "Student Name",
		CourseTitle:   "Course Title",
		IssuedAt:      time.Now(),
		CertificateID: uuid.NewString(),
	}, certificate.StyleFromTemplate(&template))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to render preview!", nil)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="template_preview.pdf"`)
	return c.Send(pdf)
}

// GetCertificateSettings returns the global certificate settings
func GetCertificateSettings(c *fiber.Ctx) error {
	settings, err := certificate.LoadSettings(database.Database.Db)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load certificate settings!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Settings fetched successfully!", settings)
}

// UpdateCertificateSettings updates the global certificate settings
func UpdateCertificateSettings(c *fiber.Ctx) error {
	updated, ok := c.Locals("validatedSettings").(*courseModels.CertificateSettings)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	settings, err := certificate.LoadSettings(database.Database.Db)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load certificate settings!", nil)
	}

	settings.BackgroundColor = updated.BackgroundColor
	settings.BorderColor = updated.BorderColor
	settings.TextColor = updated.TextColor
	settings.Title = updated.Title
	settings.BodyText = updated.BodyText
	settings.FooterText = updated.FooterText
	settings.InstructorName = updated.InstructorName
	settings.Font = updated.Font
	settings.AutoIssue = updated.AutoIssue
	settings.SendEmail = updated.SendEmail

	if err := certificate.SaveSettings(database.Database.Db, settings); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update certificate settings!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Settings updated successfully!", settings)
}
