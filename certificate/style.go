package certificate

import (
	"strings"

	courseModels "lms/models/course"
)

// Style is the resolved visual configuration for a certificate render.
// Both CertificateTemplate and CertificateSettings flatten into it, so the
// renderer never needs to know which one a value came from.
type Style struct {
	BackgroundColor string
	BorderColor     string
	TextColor       string
	LogoPath        string // relative to the static dir; empty means no logo
	SignaturePath   string // relative to the static dir; empty means no signature
	Title           string
	BodyText        string
	FooterText      string
	InstructorName  string
	Font            string
}

// StyleFromTemplate flattens a template into a renderable style.
func StyleFromTemplate(t *courseModels.CertificateTemplate) Style {
	return Style{
		BackgroundColor: t.BackgroundColor,
		BorderColor:     t.BorderColor,
		TextColor:       t.TextColor,
		LogoPath:        t.LogoPath,
		SignaturePath:   t.SignaturePath,
		Title:           t.Title,
		BodyText:        t.BodyText,
		FooterText:      t.FooterText,
		InstructorName:  t.InstructorName,
		Font:            t.Font,
	}
}

// StyleFromSettings flattens the global settings into a renderable style.
func StyleFromSettings(s *courseModels.CertificateSettings) Style {
	return Style{
		BackgroundColor: s.BackgroundColor,
		BorderColor:     s.BorderColor,
		TextColor:       s.TextColor,
		LogoPath:        s.LogoPath,
		SignaturePath:   s.SignaturePath,
		Title:           s.Title,
		BodyText:        s.BodyText,
		FooterText:      s.FooterText,
		InstructorName:  s.InstructorName,
		Font:            s.Font,
	}
}

// fallbackStyle is the hard-coded baseline used when neither a template nor
// settings could be loaded.
func fallbackStyle() Style {
	return Style{
		BackgroundColor: "#FFFFFF",
		BorderColor:     "#294767",
		TextColor:       "#000000",
		Title:           "CERTIFICATE OF COMPLETION",
		BodyText:        "has successfully completed the course",
		InstructorName:  "Course Instructor",
		Font:            "Helvetica",
	}
}

// pdfFontFamily maps a stored font selector (possibly a CSS-ish family list
// like "Times New Roman, serif") onto one of the built-in PDF core fonts.
// Anything unrecognized degrades to Helvetica.
func pdfFontFamily(font string) string {
	f := strings.ToLower(font)
	switch {
	case strings.Contains(f, "times"), strings.Contains(f, "georgia"):
		return "Times"
	case strings.Contains(f, "courier"), strings.Contains(f, "mono"):
		return "Courier"
	default:
		return "Helvetica"
	}
}
