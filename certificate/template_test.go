package certificate

import (
	"testing"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsCreatesSingleRow(t *testing.T) {
	db := testDB(t)

	first, err := LoadSettings(db)
	require.NoError(t, err)
	assert.True(t, first.AutoIssue)
	assert.True(t, first.SendEmail)
	assert.Equal(t, "#294767", first.BorderColor)

	second, err := LoadSettings(db)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&courseModels.CertificateSettings{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDefaultTemplateSynthesizedOnce(t *testing.T) {
	db := testDB(t)

	first, err := DefaultTemplate(db)
	require.NoError(t, err)
	assert.True(t, first.IsDefault)
	assert.Equal(t, "Default Certificate", first.Name)

	second, err := DefaultTemplate(db)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&courseModels.CertificateTemplate{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSetDefaultTemplateKeepsExactlyOneDefault(t *testing.T) {
	db := testDB(t)

	original, err := DefaultTemplate(db)
	require.NoError(t, err)

	other := courseModels.CertificateTemplate{
		Name:  "Gold Border",
		Title: "CERTIFICATE OF ACHIEVEMENT",
	}
	require.NoError(t, db.Create(&other).Error)

	require.NoError(t, SetDefaultTemplate(db, other.ID))

	var defaults []courseModels.CertificateTemplate
	require.NoError(t, db.Where("is_default = ?", true).Find(&defaults).Error)
	require.Len(t, defaults, 1)
	assert.Equal(t, other.ID, defaults[0].ID)

	// Flip back and the invariant still holds
	require.NoError(t, SetDefaultTemplate(db, original.ID))
	require.NoError(t, db.Where("is_default = ?", true).Find(&defaults).Error)
	require.Len(t, defaults, 1)
	assert.Equal(t, original.ID, defaults[0].ID)
}

func TestSetDefaultTemplateUnknownID(t *testing.T) {
	db := testDB(t)
	assert.Error(t, SetDefaultTemplate(db, 9999))
}

func TestResolveStyleUsesCourseTemplate(t *testing.T) {
	db := testDB(t)

	tpl := courseModels.CertificateTemplate{
		Name:        "Course Specific",
		Title:       "AWARDED FOR EXCELLENCE",
		BorderColor: "#AA0000",
	}
	require.NoError(t, db.Create(&tpl).Error)

	course := courseModels.Course{Title: "Compilers", CertificateTemplateID: &tpl.ID}
	require.NoError(t, db.Create(&course).Error)

	style := ResolveStyle(db, &course)
	assert.Equal(t, "AWARDED FOR EXCELLENCE", style.Title)
	assert.Equal(t, "#AA0000", style.BorderColor)
}

func TestResolveStyleFallsBackToDefaultTemplate(t *testing.T) {
	db := testDB(t)

	course := courseModels.Course{Title: "Compilers"}
	require.NoError(t, db.Create(&course).Error)

	style := ResolveStyle(db, &course)
	assert.Equal(t, "CERTIFICATE OF COMPLETION", style.Title)

	// The lookup synthesized the system default
	var count int64
	require.NoError(t, db.Model(&courseModels.CertificateTemplate{}).Where("is_default = ?", true).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestResolveStyleSurvivesDanglingTemplateReference(t *testing.T) {
	db := testDB(t)

	missing := uint(4242)
	course := courseModels.Course{Title: "Compilers", CertificateTemplateID: &missing}
	require.NoError(t, db.Create(&course).Error)

	style := ResolveStyle(db, &course)
	assert.Equal(t, "CERTIFICATE OF COMPLETION", style.Title)
	assert.Equal(t, "#294767", style.BorderColor)
}
