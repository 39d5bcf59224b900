package certificate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRenderData() Data {
	return Data{
		HolderName:    "Ada Lovelace",
		CourseTitle:   "Numerical Analysis",
		IssuedAt:      time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC),
		CertificateID: "11111111-2222-3333-4444-555555555555",
	}
}

func TestRenderProducesPDF(t *testing.T) {
	r := NewRenderer(t.TempDir(), "https://lms.example.com", "Learning Platform")

	out, err := r.Render(testRenderData(), fallbackStyle())
	require.NoError(t, err)
	require.True(t, len(out) > 4)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderPreviewProducesPDF(t *testing.T) {
	r := NewRenderer(t.TempDir(), "https://lms.example.com", "Learning Platform")

	out, err := r.RenderPreview(testRenderData(), fallbackStyle())
	require.NoError(t, err)
	require.True(t, len(out) > 4)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderDegradesOnDefectiveStyle(t *testing.T) {
	r := NewRenderer(t.TempDir(), "https://lms.example.com", "Learning Platform")

	style := Style{
		BackgroundColor: "not-a-color",
		BorderColor:     "#zzzzzz",
		TextColor:       "",
		LogoPath:        "uploads/templates/missing-logo.png",
		SignaturePath:   "uploads/templates/missing-signature.png",
		Title:           "CERTIFICATE OF COMPLETION",
		BodyText:        "has successfully completed the course",
		Font:            "Comic Sans MS",
	}

	out, err := r.Render(testRenderData(), style)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestVerificationURLFormat(t *testing.T) {
	r := NewRenderer(t.TempDir(), "https://lms.example.com", "Learning Platform")

	url := r.VerificationURL("abc-123")
	assert.Equal(t, "https://lms.example.com/certificates/verify/abc-123", url)
}

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		in   string
		want RGB
	}{
		{"#FFFFFF", RGB{255, 255, 255}},
		{"#000000", RGB{0, 0, 0}},
		{"#294767", RGB{41, 71, 103}},
		{"294767", RGB{41, 71, 103}},
		{"  #AA0000  ", RGB{170, 0, 0}},
		{"", colorBlack},
		{"#FFF", colorBlack},
		{"#zzzzzz", colorBlack},
		{"#abcdeg", colorBlack},
		{"#abcde ", colorBlack},
		{"not-a-color", colorBlack},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, parseHexColor(tc.in, colorBlack), "input %q", tc.in)
	}
}

func TestPDFFontFamily(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Helvetica", "Helvetica"},
		{"Times New Roman, serif", "Times"},
		{"Georgia", "Times"},
		{"Courier New", "Courier"},
		{"JetBrains Mono", "Courier"},
		{"Comic Sans MS", "Helvetica"},
		{"", "Helvetica"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, pdfFontFamily(tc.in), "input %q", tc.in)
	}
}

func TestFitWithin(t *testing.T) {
	wide := imageAsset{Width: 400, Height: 100}
	w, h := wide.fitWithin(2, 1.5)
	assert.InDelta(t, 2.0, w, 0.001)
	assert.InDelta(t, 0.5, h, 0.001)

	tall := imageAsset{Width: 100, Height: 400}
	w, h = tall.fitWithin(2, 1.5)
	assert.InDelta(t, 0.375, w, 0.001)
	assert.InDelta(t, 1.5, h, 0.001)
}
