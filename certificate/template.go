package certificate

import (
	"errors"
	"log"

	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// LoadSettings returns the global certificate settings, creating the row with
// defaults on first access. There is exactly one settings row per deployment.
func LoadSettings(db *gorm.DB) (*courseModels.CertificateSettings, error) {
	var settings courseModels.CertificateSettings
	err := db.First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	settings = courseModels.CertificateSettings{
		BackgroundColor: "#FFFFFF",
		BorderColor:     "#294767",
		TextColor:       "#000000",
		Title:           "CERTIFICATE OF COMPLETION",
		BodyText:        "has successfully completed the course",
		InstructorName:  "Course Instructor",
		Font:            "Helvetica",
		AutoIssue:       true,
		SendEmail:       true,
	}
	if err := db.Create(&settings).Error; err != nil {
		return nil, err
	}
	log.Println("Created default certificate settings")
	return &settings, nil
}

// SaveSettings persists changes made through the admin settings form.
func SaveSettings(db *gorm.DB, settings *courseModels.CertificateSettings) error {
	return db.Save(settings).Error
}

// DefaultTemplate returns the system default template, synthesizing one with
// baseline values if none exists yet.
func DefaultTemplate(db *gorm.DB) (*courseModels.CertificateTemplate, error) {
	var tpl courseModels.CertificateTemplate
	err := db.Where("is_default = ?", true).First(&tpl).Error
	if err == nil {
		return &tpl, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tpl = courseModels.CertificateTemplate{
		Name:            "Default Certificate",
		Description:     "Default certificate template for all courses",
		BackgroundColor: "#FFFFFF",
		BorderColor:     "#294767",
		TextColor:       "#000000",
		Title:           "CERTIFICATE OF COMPLETION",
		BodyText:        "has successfully completed the course",
		InstructorName:  "Course Instructor",
		Font:            "Helvetica",
		IsDefault:       true,
	}
	if err := db.Create(&tpl).Error; err != nil {
		return nil, err
	}
	log.Println("Created default certificate template")
	return &tpl, nil
}

// SetDefaultTemplate marks one template as the system default, unsetting any
// previous default in the same transaction so at most one row ever has the
// flag.
func SetDefaultTemplate(db *gorm.DB, templateID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var tpl courseModels.CertificateTemplate
		if err := tx.First(&tpl, templateID).Error; err != nil {
			return err
		}

		if err := tx.Model(&courseModels.CertificateTemplate{}).
			Where("is_default = ?", true).
			Update("is_default", false).Error; err != nil {
			return err
		}

		return tx.Model(&tpl).Update("is_default", true).Error
	})
}

// ResolveStyle picks the visual configuration for a course's certificates:
// the course's assigned template, then the system default template, then the
// global settings. A dangling template reference falls through to the default
// rather than failing issuance.
func ResolveStyle(db *gorm.DB, course *courseModels.Course) Style {
	if course.CertificateTemplateID != nil {
		var tpl courseModels.CertificateTemplate
		if err := db.First(&tpl, *course.CertificateTemplateID).Error; err == nil {
			return StyleFromTemplate(&tpl)
		}
		log.Printf("Certificate template %d for course %d not found, falling back to default", *course.CertificateTemplateID, course.ID)
	}

	if tpl, err := DefaultTemplate(db); err == nil {
		return StyleFromTemplate(tpl)
	}

	if settings, err := LoadSettings(db); err == nil {
		return StyleFromSettings(settings)
	}

	return fallbackStyle()
}
