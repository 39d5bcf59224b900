package certificate

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens an isolated in-memory database migrated with the models the
// certificate subsystem touches. TranslateError is on, as in production, so
// unique-constraint violations surface as gorm.ErrDuplicatedKey.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&courseModels.Course{},
		&courseModels.Enrollment{},
		&courseModels.Certificate{},
		&courseModels.CertificateTemplate{},
		&courseModels.CertificateSettings{},
	))
	return db
}

// testIssuer wires an issuer against a temp static dir and a recording
// notifier.
func testIssuer(t *testing.T, db *gorm.DB) (*Issuer, *recordingNotifier, string) {
	t.Helper()

	staticDir := t.TempDir()
	notifier := &recordingNotifier{}
	renderer := NewRenderer(staticDir, "https://lms.example.com", "Learning Platform")
	return NewIssuer(db, renderer, notifier), notifier, staticDir
}

// seedCompletion creates a user, a certificate-enabled course and a completed
// enrollment, the baseline eligible state for issuance.
var seedSeq atomic.Uint32

func seedCompletion(t *testing.T, db *gorm.DB) (models.User, courseModels.Course) {
	t.Helper()

	user := models.User{
		Name:     "Ada Lovelace",
		Email:    fmt.Sprintf("ada+%d@example.com", seedSeq.Add(1)),
		Password: "x",
	}
	require.NoError(t, db.Create(&user).Error)

	course := courseModels.Course{
		Title:          "Numerical Analysis",
		HasCertificate: true,
		IsPublished:    true,
	}
	require.NoError(t, db.Create(&course).Error)

	now := time.Now()
	enrollment := courseModels.Enrollment{
		UserID:      user.ID,
		CourseID:    course.ID,
		Status:      courseModels.EnrollmentCompleted,
		Progress:    100,
		CompletedAt: &now,
	}
	require.NoError(t, db.Create(&enrollment).Error)

	return user, course
}

// recordingNotifier captures notifications instead of sending email.
type recordingNotifier struct {
	calls    int
	lastCert courseModels.Certificate
	lastPDF  []byte
}

func (r *recordingNotifier) NotifyCertificateIssued(user models.User, course courseModels.Course, cert courseModels.Certificate, pdf []byte) {
	r.calls++
	r.lastCert = cert
	r.lastPDF = pdf
}
