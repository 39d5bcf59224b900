package course

import (
	"time"

	"gorm.io/gorm"
)

// Certificate represents an issued certificate for course completion.
// Rows are never updated or deleted once written; the unique constraint on
// (user_id, course_id) is what makes issuance idempotent under concurrency.
type Certificate struct {
	gorm.Model
	UserID        uint      `json:"user_id" gorm:"not null;index;uniqueIndex:idx_user_course_cert"`
	CourseID      uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_user_course_cert"`
	CertificateID string    `json:"certificate_id" gorm:"size:50;not null;uniqueIndex"` // public verification token, never the row id
	FilePath      string    `json:"file_path" gorm:"size:255;not null"`
	IssuedAt      time.Time `json:"issued_at"`
}

// CertificateTemplate is a named, reusable visual configuration for
// certificates. Courses reference one by id; a nil reference means
// "use the system default at render time". At most one template has
// IsDefault set.
type CertificateTemplate struct {
	gorm.Model
	Name            string `json:"name" gorm:"size:100;not null"`
	Description     string `json:"description" gorm:"type:text"`
	BackgroundColor string `json:"background_color" gorm:"size:20;default:'#FFFFFF'"`
	BorderColor     string `json:"border_color" gorm:"size:20;default:'#294767'"`
	TextColor       string `json:"text_color" gorm:"size:20;default:'#000000'"`
	LogoPath        string `json:"logo_path" gorm:"size:255"`
	SignaturePath   string `json:"signature_path" gorm:"size:255"`
	Title           string `json:"title" gorm:"size:255;default:'CERTIFICATE OF COMPLETION'"`
	BodyText        string `json:"body_text" gorm:"default:'has successfully completed the course'"`
	FooterText      string `json:"footer_text" gorm:"default:''"`
	InstructorName  string `json:"instructor_name" gorm:"size:100;default:'Course Instructor'"`
	Font            string `json:"font" gorm:"size:100;default:'Helvetica'"`
	IsDefault       bool   `json:"is_default" gorm:"default:false"`
}

// CertificateSettings is the single global fallback configuration used when a
// course has no template assigned. Created lazily on first read; never deleted.
type CertificateSettings struct {
	gorm.Model
	BackgroundColor string `json:"background_color" gorm:"size:20;default:'#FFFFFF'"`
	BorderColor     string `json:"border_color" gorm:"size:20;default:'#294767'"`
	TextColor       string `json:"text_color" gorm:"size:20;default:'#000000'"`
	LogoPath        string `json:"logo_path" gorm:"size:255"`
	SignaturePath   string `json:"signature_path" gorm:"size:255"`
	Title           string `json:"title" gorm:"size:255;default:'CERTIFICATE OF COMPLETION'"`
	BodyText        string `json:"body_text" gorm:"default:'has successfully completed the course'"`
	FooterText      string `json:"footer_text" gorm:"default:''"`
	InstructorName  string `json:"instructor_name" gorm:"size:100;default:'Course Instructor'"`
	Font            string `json:"font" gorm:"size:100;default:'Helvetica'"`
	AutoIssue       bool   `json:"auto_issue" gorm:"default:true"`
	SendEmail       bool   `json:"send_email" gorm:"default:true"`
}
