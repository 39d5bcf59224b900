package controllers

import (
	"path/filepath"

	"lms/certificate"
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// VerifyCertificate is the public, unauthenticated verification endpoint.
// An unknown identifier is a normal outcome and still answers 200 with
// valid=false; it never reveals anything beyond the certificate itself.
func VerifyCertificate(c *fiber.Ctx) error {
	certificateID := c.Locals("certificateID").(string)

	result, err := certificate.Verify(database.Database.Db, certificateID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify certificate!", nil)
	}

	if !result.Valid {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate not found!", result)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate verified successfully!", result)
}

// DownloadCertificate serves the current user's certificate PDF, regenerating
// the file first if it has gone missing from storage.
func DownloadCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	certificateID := c.Locals("certificateID").(string)

	var cert courseModels.Certificate
	if err := database.Database.Db.Where("certificate_id = ? AND user_id = ?", certificateID, userID).First(&cert).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	if err := certificate.Default.EnsureFile(&cert); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate certificate file!", nil)
	}

	fullPath := filepath.Join(config.AppConfig.StaticDir, filepath.FromSlash(cert.FilePath))
	return c.Download(fullPath, "certificate_"+cert.CertificateID+".pdf")
}

// GetUserCertificates gets all certificates for the current user
func GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	type CertificateWithCourse struct {
		courseModels.Certificate
		CourseName string `json:"course_name"`
	}

	var certificates []courseModels.Certificate
	if err := database.Database.Db.Where("user_id = ?", userID).Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	result := make([]CertificateWithCourse, len(certificates))
	for i, cert := range certificates {
		var course courseModels.Course
		database.Database.Db.Where("id = ?", cert.CourseID).First(&course)
		result[i] = CertificateWithCourse{
			Certificate: cert,
			CourseName:  course.Title,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": result,
		"total":        len(result),
	})
}
