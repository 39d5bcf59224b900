package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// SaveUploadedFile stores an uploaded file under staticDir/subDir with a
// timestamped name and returns the path relative to staticDir (the form
// stored on models and resolved again at render time).
func SaveUploadedFile(file *multipart.FileHeader, staticDir, subDir string) (string, error) {
	// Open the uploaded file
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	destDir := filepath.Join(staticDir, filepath.FromSlash(subDir))
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	// Timestamp for readability, random suffix so concurrent uploads in the
	// same second cannot overwrite each other
	ext := filepath.Ext(file.Filename)
	newFilename := fmt.Sprintf("%s_%s%s", time.Now().Format("20060102150405"), uuid.NewString()[:8], ext)
	filePath := filepath.Join(destDir, newFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return subDir + "/" + newFilename, nil
}
