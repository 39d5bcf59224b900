package certificate

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Outcome tells callers why issuance did or did not produce a certificate.
// Ineligibility is a normal result, not an error.
type Outcome string

const (
	OutcomeIssued               Outcome = "ISSUED"
	OutcomeAlreadyIssued        Outcome = "ALREADY_ISSUED"
	OutcomeCertificatesDisabled Outcome = "CERTIFICATES_DISABLED"
	OutcomeNotCompleted         Outcome = "NOT_COMPLETED"
	OutcomeAutoIssueDisabled    Outcome = "AUTO_ISSUE_DISABLED"
)

// idAllocationRetries bounds how many fresh identifiers are tried when an
// insert hits the unique index on certificate_id. With UUIDv4 identifiers a
// single retry is already astronomically unlikely.
const idAllocationRetries = 3

// Notifier receives the issued certificate and its rendered document.
// Delivery is fire-and-forget; failures must never roll back issuance.
type Notifier interface {
	NotifyCertificateIssued(user models.User, course courseModels.Course, cert courseModels.Certificate, pdf []byte)
}

// Issuer decides when a course completion produces a certificate, allocates
// its identifier, persists the record and writes the rendered document.
type Issuer struct {
	db       *gorm.DB
	renderer *Renderer
	notifier Notifier // may be nil
}

// Default is the process-wide issuer wired during bootstrap.
var Default *Issuer

// NewIssuer creates an issuance engine.
func NewIssuer(db *gorm.DB, renderer *Renderer, notifier Notifier) *Issuer {
	return &Issuer{db: db, renderer: renderer, notifier: notifier}
}

// Setup wires the process-wide issuer used by controllers and the
// reconciliation scheduler.
func Setup(db *gorm.DB, renderer *Renderer, notifier Notifier) {
	Default = NewIssuer(db, renderer, notifier)
}

// IssueOnCompletion checks whether a certificate should be issued for the
// (user, course) pair and issues it if so. Safe to call repeatedly and from
// concurrent completion triggers: the unique constraint on (user_id,
// course_id) guarantees at most one certificate, and the loser of a race gets
// the winner's row back.
func (i *Issuer) IssueOnCompletion(userID, courseID uint) (*courseModels.Certificate, Outcome, error) {
	var course courseModels.Course
	if err := i.db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Course %d not found, no certificate issued", courseID)
			return nil, OutcomeCertificatesDisabled, nil
		}
		return nil, "", err
	}
	if !course.HasCertificate {
		log.Printf("Course %q does not have certificates enabled", course.Title)
		return nil, OutcomeCertificatesDisabled, nil
	}

	var existing courseModels.Certificate
	err := i.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error
	if err == nil {
		// Idempotent path; heal a missing document file while we're here.
		if err := i.EnsureFile(&existing); err != nil {
			log.Printf("Failed to regenerate PDF for certificate %s: %v", existing.CertificateID, err)
		}
		return &existing, OutcomeAlreadyIssued, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	var enrollment courseModels.Enrollment
	err = i.db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}
	if err != nil || enrollment.Status != courseModels.EnrollmentCompleted {
		log.Printf("User %d has not completed course %d, no certificate issued", userID, courseID)
		return nil, OutcomeNotCompleted, nil
	}

	settings, err := LoadSettings(i.db)
	if err != nil {
		return nil, "", err
	}
	if !settings.AutoIssue {
		log.Println("Auto-issue certificates is disabled in settings")
		return nil, OutcomeAutoIssueDisabled, nil
	}

	var user models.User
	if err := i.db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return nil, "", fmt.Errorf("user %d not found for certificate issuance: %w", userID, err)
	}

	cert, outcome, err := i.create(userID, courseID)
	if err != nil || outcome != OutcomeIssued {
		return cert, outcome, err
	}
	log.Printf("Certificate %s issued for user %s for course %q", cert.CertificateID, user.Email, course.Title)

	pdf := i.writeDocument(cert, &user, &course)

	if settings.SendEmail && i.notifier != nil {
		i.notifier.NotifyCertificateIssued(user, course, *cert, pdf)
	}

	return cert, OutcomeIssued, nil
}

// create persists the certificate row, retrying with fresh identifiers on the
// (unlikely) identifier collision and resolving a lost (user, course) race to
// the winner's row.
func (i *Issuer) create(userID, courseID uint) (*courseModels.Certificate, Outcome, error) {
	for attempt := 0; attempt < idAllocationRetries; attempt++ {
		certificateID := uuid.NewString()
		cert := courseModels.Certificate{
			UserID:        userID,
			CourseID:      courseID,
			CertificateID: certificateID,
			FilePath:      fmt.Sprintf("uploads/certificates/certificate_%s.pdf", certificateID),
			IssuedAt:      time.Now().UTC(),
		}

		err := i.db.Create(&cert).Error
		if err == nil {
			return &cert, OutcomeIssued, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", err
		}

		// Either a concurrent issuance won the (user, course) insert, or the
		// fresh identifier collided. Only the former produces a row to return.
		var winner courseModels.Certificate
		if lookupErr := i.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&winner).Error; lookupErr == nil {
			return &winner, OutcomeAlreadyIssued, nil
		}
		log.Printf("Certificate identifier collision on %s, retrying with a fresh identifier", certificateID)
	}
	return nil, "", fmt.Errorf("failed to allocate a unique certificate identifier after %d attempts", idAllocationRetries)
}

// writeDocument renders the certificate and writes it to the stored path.
// The record has already been committed; a render or write failure is logged
// and repaired lazily via EnsureFile, never surfaced to the caller.
func (i *Issuer) writeDocument(cert *courseModels.Certificate, user *models.User, course *courseModels.Course) []byte {
	style := ResolveStyle(i.db, course)
	pdf, err := i.renderer.Render(Data{
		HolderName:    user.Name,
		CourseTitle:   course.Title,
		IssuedAt:      cert.IssuedAt,
		CertificateID: cert.CertificateID,
	}, style)
	if err != nil {
		log.Printf("Failed to render certificate %s: %v", cert.CertificateID, err)
		return nil
	}

	fullPath := filepath.Join(i.renderer.StaticDir, filepath.FromSlash(cert.FilePath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		log.Printf("Failed to create certificates directory for %s: %v", cert.CertificateID, err)
		return pdf
	}
	if err := os.WriteFile(fullPath, pdf, 0644); err != nil {
		log.Printf("Failed to write certificate PDF at %s: %v", fullPath, err)
	}
	return pdf
}

// EnsureFile regenerates the certificate's document at its recorded path if
// the file has gone missing from storage. The record itself is never touched,
// so the public identifier and path stay stable.
func (i *Issuer) EnsureFile(cert *courseModels.Certificate) error {
	fullPath := filepath.Join(i.renderer.StaticDir, filepath.FromSlash(cert.FilePath))
	if _, err := os.Stat(fullPath); err == nil {
		return nil
	}

	var user models.User
	if err := i.db.First(&user, cert.UserID).Error; err != nil {
		return fmt.Errorf("user %d for certificate %s: %w", cert.UserID, cert.CertificateID, err)
	}
	var course courseModels.Course
	if err := i.db.First(&course, cert.CourseID).Error; err != nil {
		return fmt.Errorf("course %d for certificate %s: %w", cert.CourseID, cert.CertificateID, err)
	}

	if pdf := i.writeDocument(cert, &user, &course); pdf == nil {
		return fmt.Errorf("failed to regenerate document for certificate %s", cert.CertificateID)
	}
	if _, err := os.Stat(fullPath); err != nil {
		return fmt.Errorf("regenerated document for certificate %s was not written: %w", cert.CertificateID, err)
	}
	log.Printf("Regenerated missing PDF for certificate %s", cert.CertificateID)
	return nil
}
