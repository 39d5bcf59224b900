package controllers

import (
	"time"

	"lms/certificate"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// MarkContentComplete marks a content item as completed for the current user.
// Completing the last item completes the enrollment, which is the automatic
// certificate issuance trigger.
func MarkContentComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	// Retrieve validated IDs
	courseID := c.Locals("courseID").(int)
	contentID := c.Locals("contentID").(int)

	// Check if course exists and is published
	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	// Check if course content exists
	var content courseModels.CourseContent
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ? AND is_published = ?", contentID, courseID, false, true).First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course content not found!", nil)
	}

	// Check if user is enrolled in the course
	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	// Check if content is already marked as completed
	var existingCompletion courseModels.ContentCompletion
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND course_content_id = ? AND is_deleted = ?", userID, courseID, contentID, false).First(&existingCompletion).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Content already marked as completed!", nil)
	}

	completion := courseModels.ContentCompletion{
		UserID:          userID,
		CourseID:        uint(courseID),
		CourseContentID: uint(contentID),
		Status:          "COMPLETED",
	}

	if err := database.Database.Db.Create(&completion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark content as completed!", nil)
	}

	// Update enrollment progress; completion triggers certificate issuance
	updateEnrollmentProgress(userID, uint(courseID))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content marked as completed successfully!", completion)
}

// updateEnrollmentProgress recalculates enrollment progress from completed
// content and, on full completion, hands off to the certificate issuer.
func updateEnrollmentProgress(userID, courseID uint) {
	db := database.Database.Db

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return
	}

	var totalContents int64
	db.Model(&courseModels.CourseContent{}).
		Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Count(&totalContents)

	var completedContents int64
	db.Model(&courseModels.ContentCompletion{}).
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		Count(&completedContents)

	enrollment.TotalContents = int(totalContents)
	enrollment.CompletedContents = int(completedContents)
	if totalContents > 0 {
		enrollment.Progress = float64(completedContents) / float64(totalContents) * 100
	}

	if totalContents > 0 && completedContents >= totalContents {
		if enrollment.Status != courseModels.EnrollmentCompleted {
			now := time.Now()
			enrollment.Status = courseModels.EnrollmentCompleted
			enrollment.CompletedAt = &now
		}
	} else if completedContents > 0 {
		enrollment.Status = courseModels.EnrollmentInProgress
	}

	db.Save(&enrollment)

	if enrollment.Status == courseModels.EnrollmentCompleted && certificate.Default != nil {
		// Idempotent: re-invocations return the existing certificate
		certificate.Default.IssueOnCompletion(userID, courseID)
	}
}

// GetUserProgress returns the current user's progress for a course
func GetUserProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"status":             enrollment.Status,
		"progress":           enrollment.Progress,
		"completed_contents": enrollment.CompletedContents,
		"total_contents":     enrollment.TotalContents,
		"completed_at":       enrollment.CompletedAt,
	})
}
