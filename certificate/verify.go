package certificate

import (
	"errors"
	"time"

	"lms/models"
	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// VerificationResult is the minimal public disclosure for a certificate
// lookup. Internal row ids and user ids are deliberately absent.
type VerificationResult struct {
	Valid       bool       `json:"valid"`
	HolderName  string     `json:"holder_name,omitempty"`
	CourseTitle string     `json:"course_title,omitempty"`
	IssuedAt    *time.Time `json:"issued_at,omitempty"`
}

// Verify looks up a certificate by its public identifier. An unknown
// identifier is a normal outcome, reported as Valid=false, never as an error.
func Verify(db *gorm.DB, certificateID string) (VerificationResult, error) {
	var cert courseModels.Certificate
	err := db.Where("certificate_id = ?", certificateID).First(&cert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return VerificationResult{Valid: false}, nil
	}
	if err != nil {
		return VerificationResult{Valid: false}, err
	}

	var user models.User
	var course courseModels.Course
	if err := db.First(&user, cert.UserID).Error; err != nil {
		return VerificationResult{Valid: false}, err
	}
	if err := db.First(&course, cert.CourseID).Error; err != nil {
		return VerificationResult{Valid: false}, err
	}

	return VerificationResult{
		Valid:       true,
		HolderName:  user.Name,
		CourseTitle: course.Title,
		IssuedAt:    &cert.IssuedAt,
	}, nil
}
