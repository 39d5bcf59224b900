package certificate

import (
	"bytes"
	"fmt"
	"log"

	"time"

	"github.com/jung-kurt/gofpdf"
)

// Watermark text drawn diagonally across the page.
const (
	watermarkIssued  = "CERTIFIED"
	watermarkPreview = "PREVIEW"
)

// Data is the payload rendered into a certificate document.
type Data struct {
	HolderName    string
	CourseTitle   string
	IssuedAt      time.Time
	CertificateID string
}

// Renderer produces certificate PDFs on a fixed landscape Letter canvas.
type Renderer struct {
	StaticDir    string // root dir for logo/signature assets and generated files
	BaseURL      string // public base URL used to build verification links
	PlatformName string
}

// NewRenderer creates a certificate renderer.
func NewRenderer(staticDir, baseURL, platformName string) *Renderer {
	return &Renderer{
		StaticDir:    staticDir,
		BaseURL:      baseURL,
		PlatformName: platformName,
	}
}

// VerificationURL builds the public verification link embedded in every
// certificate. The format is part of the external contract; changing it
// invalidates links printed on already-issued documents.
func (r *Renderer) VerificationURL(certificateID string) string {
	return fmt.Sprintf("%s/certificates/verify/%s", r.BaseURL, certificateID)
}

// Render produces the final PDF for an issued certificate. A defective style
// (bad colors, missing images, unknown font) degrades gracefully; only if the
// whole pipeline fails does it fall back to a minimal plain layout. It never
// returns an empty document together with a nil error.
func (r *Renderer) Render(data Data, style Style) ([]byte, error) {
	return r.render(data, style, watermarkIssued)
}

// RenderPreview produces a sample certificate for a template, marked with a
// PREVIEW watermark instead of CERTIFIED.
func (r *Renderer) RenderPreview(data Data, style Style) ([]byte, error) {
	return r.render(data, style, watermarkPreview)
}

func (r *Renderer) render(data Data, style Style, watermark string) ([]byte, error) {
	out, err := r.draw(data, style, watermark)
	if err == nil {
		return out, nil
	}

	// Issuance must not fail over a cosmetic rendering defect.
	log.Printf("Error creating certificate PDF for %s, using fallback layout: %v", data.CertificateID, err)
	return r.drawFallback(data)
}

// draw lays out the full certificate. Coordinates transliterate the fixed
// landscape-letter layout: the canvas is 11in wide and 8.5in tall with the
// origin at the top-left.
func (r *Renderer) draw(data Data, style Style, watermark string) ([]byte, error) {
	pdf := gofpdf.New("L", "in", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pageW, pageH := pdf.GetPageSize()

	bg := parseHexColor(style.BackgroundColor, colorWhite)
	border := parseHexColor(style.BorderColor, colorBlack)
	text := parseHexColor(style.TextColor, colorBlack)
	family := pdfFontFamily(style.Font)

	// Background fill
	pdf.SetFillColor(bg.R, bg.G, bg.B)
	pdf.Rect(0, 0, pageW, pageH, "F")

	// Border: 3pt line inset half an inch from the edges
	pdf.SetDrawColor(border.R, border.G, border.B)
	pdf.SetLineWidth(3.0 / 72.0)
	pdf.Rect(0.5, 0.5, pageW-1, pageH-1, "D")

	// Diagonal watermark, light gray at 30% opacity
	pdf.SetFont(family, "", 80)
	pdf.SetTextColor(199, 199, 199)
	pdf.SetAlpha(0.3, "Normal")
	pdf.TransformBegin()
	pdf.TransformRotate(30, pageW/2, pageH/2)
	pdf.Text(pageW/2-pdf.GetStringWidth(watermark)/2, pageH/2, watermark)
	pdf.TransformEnd()
	pdf.SetAlpha(1, "Normal")

	// Platform name at the top
	pdf.SetTextColor(text.R, text.G, text.B)
	r.centeredText(pdf, pageW, family, "B", 24, 1.5, r.PlatformName)

	// Optional logo, scaled to fit a 2in x 1.5in box near the top
	if logo, ok := tryLoadImage(r.StaticDir, style.LogoPath); ok {
		w, h := logo.fitWithin(2, 1.5)
		opts := gofpdf.ImageOptions{ImageType: logo.Type}
		pdf.ImageOptions(logo.Path, (pageW-w)/2, 2.0-h, w, h, false, opts, 0, "")
	}

	// Verification QR code in the top-right corner
	verifyURL := r.VerificationURL(data.CertificateID)
	if png, err := verificationQR(verifyURL); err == nil {
		opts := gofpdf.ImageOptions{ImageType: "png"}
		pdf.RegisterImageOptionsReader("verification-qr", opts, bytes.NewReader(png))
		pdf.ImageOptions("verification-qr", pageW-1.6, 0.6, 1.0, 1.0, false, opts, 0, "")
	} else {
		log.Printf("Failed to generate verification QR code for %s: %v", data.CertificateID, err)
	}

	// Title, holder name, body text, course title, issue date
	r.centeredText(pdf, pageW, family, "B", 36, 2.5, style.Title)
	r.centeredText(pdf, pageW, family, "B", 32, pageH/2, data.HolderName)
	r.centeredText(pdf, pageW, family, "", 18, pageH/2+0.5, style.BodyText)
	r.centeredText(pdf, pageW, family, "B", 24, pageH/2+1.1, data.CourseTitle)
	r.centeredText(pdf, pageW, family, "", 14, pageH/2+1.6, "Issued on "+data.IssuedAt.Format("January 02, 2006"))

	// Signature line near the bottom third
	pdf.Line(pageW/2-1.5, 6.0, pageW/2+1.5, 6.0)

	// Optional signature image above the line, fit to 3in x 1in
	if sig, ok := tryLoadImage(r.StaticDir, style.SignaturePath); ok {
		w, h := sig.fitWithin(3, 1)
		opts := gofpdf.ImageOptions{ImageType: sig.Type}
		pdf.ImageOptions(sig.Path, (pageW-w)/2, 5.9-h, w, h, false, opts, 0, "")
	}

	instructor := style.InstructorName
	if instructor == "" {
		instructor = "Course Instructor"
	}
	r.centeredText(pdf, pageW, family, "", 12, 6.2, instructor)

	if style.FooterText != "" {
		r.centeredText(pdf, pageW, family, "", 10, 7.0, style.FooterText)
	}

	// Verification link and the identifier itself at the very bottom
	r.centeredText(pdf, pageW, family, "", 10, 7.3, "To verify this certificate, please visit:")
	r.centeredText(pdf, pageW, family, "", 10, 7.6, verifyURL)
	r.centeredText(pdf, pageW, family, "", 8, 7.9, "Certificate ID: "+data.CertificateID)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawFallback produces a minimal plain certificate when the full layout
// could not be rendered.
func (r *Renderer) drawFallback(data Data) ([]byte, error) {
	pdf := gofpdf.New("L", "in", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pageW, pageH := pdf.GetPageSize()

	r.centeredText(pdf, pageW, "Helvetica", "B", 30, pageH/2-1, "CERTIFICATE OF COMPLETION")
	r.centeredText(pdf, pageW, "Helvetica", "B", 24, pageH/2, data.HolderName)
	r.centeredText(pdf, pageW, "Helvetica", "", 18, pageH/2+1, "has completed "+data.CourseTitle)
	r.centeredText(pdf, pageW, "Helvetica", "", 12, pageH/2+2, "Certificate ID: "+data.CertificateID)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to create fallback certificate: %w", err)
	}
	return buf.Bytes(), nil
}

// centeredText draws a single horizontally centered line with y as the
// baseline measured from the top of the page.
func (r *Renderer) centeredText(pdf *gofpdf.Fpdf, pageW float64, family, styleStr string, size, y float64, s string) {
	pdf.SetFont(family, styleStr, size)
	pdf.Text(pageW/2-pdf.GetStringWidth(s)/2, y, s)
}
