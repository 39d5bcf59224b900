package utils

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadedFile(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestSaveUploadedFile(t *testing.T) {
	staticDir := t.TempDir()

	relPath, err := SaveUploadedFile(uploadedFile(t, "logo.png", "png-bytes"), staticDir, "uploads/certificate_assets")
	require.NoError(t, err)

	// Path is static-relative with forward slashes and keeps the extension
	assert.Equal(t, "uploads/certificate_assets/", relPath[:len("uploads/certificate_assets/")])
	assert.Equal(t, ".png", filepath.Ext(relPath))

	data, err := os.ReadFile(filepath.Join(staticDir, filepath.FromSlash(relPath)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestSaveUploadedFileSameSecondNoOverwrite(t *testing.T) {
	staticDir := t.TempDir()

	first, err := SaveUploadedFile(uploadedFile(t, "sig.png", "first"), staticDir, "uploads/certificate_assets")
	require.NoError(t, err)
	second, err := SaveUploadedFile(uploadedFile(t, "sig.png", "second"), staticDir, "uploads/certificate_assets")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	data, err := os.ReadFile(filepath.Join(staticDir, filepath.FromSlash(first)))
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	data, err = os.ReadFile(filepath.Join(staticDir, filepath.FromSlash(second)))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}
