package certificate

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	courseModels "lms/models/course"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func certificateCount(t *testing.T, issuer *Issuer) int64 {
	t.Helper()
	var count int64
	require.NoError(t, issuer.db.Model(&courseModels.Certificate{}).Count(&count).Error)
	return count
}

func certificateFile(issuer *Issuer, cert *courseModels.Certificate) string {
	return filepath.Join(issuer.renderer.StaticDir, filepath.FromSlash(cert.FilePath))
}

func TestIssueOnCompletionIssues(t *testing.T) {
	db := testDB(t)
	issuer, notifier, _ := testIssuer(t, db)
	user, course := seedCompletion(t, db)

	cert, outcome, err := issuer.IssueOnCompletion(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeIssued, outcome)
	require.NotNil(t, cert)

	assert.Len(t, cert.CertificateID, 36) // uuid string
	assert.Equal(t, "uploads/certificates/certificate_"+cert.CertificateID+".pdf", cert.FilePath)
	assert.False(t, cert.IssuedAt.IsZero())

	// The document exists at the exact recorded path
	data, err := os.ReadFile(certificateFile(issuer, cert))
	require.NoError(t, err)
	assert.True(t, len(data) > 0)
	assert.Equal(t, "%PDF", string(data[:4]))

	// Email collaborator got the certificate and its document
	assert.Equal(t, 1, notifier.calls)
	assert.Equal(t, cert.CertificateID, notifier.lastCert.CertificateID)
	assert.NotEmpty(t, notifier.lastPDF)
}

func TestIssueOnCompletionIsIdempotent(t *testing.T) {
	db := testDB(t)
	issuer, _, _ := testIssuer(t, db)
	user, course := seedCompletion(t, db)

	first, outcome, err := issuer.IssueOnCompletion(user.ID, course.ID)
	require.NoError(t, err)
	require.Equal(t, OutcomeIssued, outcome)

	for i := 0; i < 3; i++ {
		again, outcome, err := issuer.IssueOnCompletion(user.ID, course.ID)
		require.NoError(t, err)
		assert.Equal(t, OutcomeAlreadyIssued, outcome)
		require.NotNil(t, again)
		assert.Equal(t, first.CertificateID, again.CertificateID)
	}

	assert.EqualValues(t, 1, certificateCount(t, issuer))
}

func TestIssueOnCompletionCertificatesDisabled(t *testing.T) {
	db := testDB(t)
	issuer, notifier, _ := testIssuer(t, db)
	user, course := seedCompletion(t, db)

	require.NoError(t, db.Model(&course).Update("has_certificate", false).Error)

	cert, outcome, err := issuer.IssueOnCompletion(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCertificatesDisabled, outcome)
	assert.Nil(t, cert)
	assert.EqualValues(t, 0, certificateCount(t, issuer))
	assert.Zero(t, notifier.calls)
}

func TestIssueOnCompletionEnrollmentNotCompleted(t *testing.T) {
	db := testDB(t)
	issuer, _, _ := testIssuer(t, db)
	user, course := seedCompletion(t, db)

	require.NoError(t, db.Model(&courseModels.Enrollment{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).
		Update("status", courseModels.EnrollmentInProgress).Error)

	cert, outcome, err := issuer.IssueOnCompletion(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNotCompleted, outcome)
	assert.Nil(t, cert)
	assert.EqualValues(t, 0, certificateCount(t, issuer))
}

func TestIssueOnCompletionWithoutEnrollment(t *testing.T) {
	db := testDB(t)
	issuer, _, _ := testIssuer(t, db)
	user, course := seedCompletion(t, db)

	require.NoError(t, db.Where("user_id = ? AND course_id = ?", user.ID, course.ID).
		Delete(&courseModels.Enrollment{}).Error)

	cert, outcome, err := issuer.IssueOnCompletion(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNotCompleted, outcome)
	assert.Nil(t, cert)
}

func TestIssueOnCompletionAutoIssueDisabled(t *testing.T) {
	db := testDB(t)
	issuer, notifier, _ := testIssuer(t, db)
	user, course := seedCompletion(t, db)

	settings, err := LoadSettings(db)
	require.NoError(t, err)
	require.NoError(t, db.Model(settings).Update("auto_issue", false).Error)

	cert, outcome, err := issuer.IssueOnCompletion(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAutoIssueDisabled, outcome)
	assert.Nil(t, cert)
	assert.EqualValues(t, 0, certificateCount(t, issuer))
	assert.Zero(t, notifier.calls)
}

func TestIssueOnCompletionEmailDisabled(t *testing.T) {
	db := testDB(t)
	issuer, notifier, _ := testIssuer(t, db)
	user, course := seedCompletion(t, db)

	settings, err := LoadSettings(db)
	require.NoError(t, err)
	require.NoError(t, db.Model(settings).Update("send_email", false).Error)

	cert, outcome, err := issuer.IssueOnCompletion(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeIssued, outcome)
	require.NotNil(t, cert)
	assert.Zero(t, notifier.calls)
}

func TestEnsureFileRegeneratesMissingDocument(t *testing.T) {
	db := testDB(t)
	issuer, _, _ := testIssuer(t, db)
	user, course := seedCompletion(t, db)

	cert, _, err := issuer.IssueOnCompletion(user.ID, course.ID)
	require.NoError(t, err)

	fullPath := certificateFile(issuer, cert)
	require.NoError(t, os.Remove(fullPath))

	require.NoError(t, issuer.EnsureFile(cert))

	_, err = os.Stat(fullPath)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, certificateCount(t, issuer))
}

func TestRepeatedIssuanceHealsMissingDocument(t *testing.T) {
	db := testDB(t)
	issuer, _, _ := testIssuer(t, db)
	user, course := seedCompletion(t, db)

	cert, _, err := issuer.IssueOnCompletion(user.ID, course.ID)
	require.NoError(t, err)

	fullPath := certificateFile(issuer, cert)
	require.NoError(t, os.Remove(fullPath))

	again, outcome, err := issuer.IssueOnCompletion(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyIssued, outcome)
	assert.Equal(t, cert.CertificateID, again.CertificateID)

	_, err = os.Stat(fullPath)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, certificateCount(t, issuer))
}

func TestCreateResolvesLostRaceToWinner(t *testing.T) {
	db := testDB(t)
	issuer, _, _ := testIssuer(t, db)
	user, course := seedCompletion(t, db)

	// A concurrent issuance already won the (user, course) insert; our
	// attempt hits the unique index and must come back with the winner's row.
	winner := courseModels.Certificate{
		UserID:        user.ID,
		CourseID:      course.ID,
		CertificateID: uuid.NewString(),
		FilePath:      "uploads/certificates/certificate_winner.pdf",
		IssuedAt:      time.Now().UTC(),
	}
	require.NoError(t, db.Create(&winner).Error)

	cert, outcome, err := issuer.create(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyIssued, outcome)
	require.NotNil(t, cert)
	assert.Equal(t, winner.CertificateID, cert.CertificateID)
	assert.EqualValues(t, 1, certificateCount(t, issuer))
}

func TestIssueOnCompletionAfterConcurrentWinner(t *testing.T) {
	db := testDB(t)
	issuer, _, _ := testIssuer(t, db)
	user, course := seedCompletion(t, db)

	winner := courseModels.Certificate{
		UserID:        user.ID,
		CourseID:      course.ID,
		CertificateID: uuid.NewString(),
		FilePath:      "uploads/certificates/certificate_winner.pdf",
		IssuedAt:      time.Now().UTC(),
	}
	require.NoError(t, db.Create(&winner).Error)

	cert, outcome, err := issuer.IssueOnCompletion(user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyIssued, outcome)
	assert.Equal(t, winner.CertificateID, cert.CertificateID)
	assert.EqualValues(t, 1, certificateCount(t, issuer))
}

func TestIssuedIdentifiersAreUnique(t *testing.T) {
	db := testDB(t)
	issuer, _, _ := testIssuer(t, db)

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		user, course := seedCompletion(t, db)
		cert, outcome, err := issuer.IssueOnCompletion(user.ID, course.ID)
		require.NoError(t, err)
		require.Equal(t, OutcomeIssued, outcome)
		assert.False(t, seen[cert.CertificateID])
		seen[cert.CertificateID] = true
	}
}
