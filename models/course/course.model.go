package course

import "gorm.io/gorm"

// Course represents a learning course
type Course struct {
	gorm.Model
	Title                 string `json:"title"`
	Description           string `json:"description"`
	Author                string `json:"author"`
	Duration              int64  `json:"duration" gorm:"default:0"`     // duration in hours
	Status                string `json:"status" gorm:"default:'DRAFT'"` // DRAFT, ACTIVE, INACTIVE
	ThumbnailURL          string `json:"thumbnail_url"`
	HasCertificate        bool   `json:"has_certificate" gorm:"default:false"`
	CertificateTemplateID *uint  `json:"certificate_template_id"` // nil means use the system default template
	IsPublished           bool   `json:"is_published" gorm:"default:false"`
	IsDeleted             bool   `gorm:"default:false"`
}
