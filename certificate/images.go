package certificate

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
)

// imageAsset is an optional image that resolved successfully on disk.
type imageAsset struct {
	Path   string // absolute path on disk
	Width  int    // pixel width
	Height int    // pixel height
	Type   string // pdf image type: "png", "jpg" or "gif"
}

// tryLoadImage resolves an optional image reference relative to the static
// dir. A missing file or undecodable image returns ok=false and is logged;
// it never fails the render.
func tryLoadImage(staticDir, relPath string) (imageAsset, bool) {
	if relPath == "" {
		return imageAsset{}, false
	}

	fullPath := filepath.Join(staticDir, filepath.FromSlash(relPath))
	f, err := os.Open(fullPath)
	if err != nil {
		log.Printf("Certificate image not found at %s: %v", fullPath, err)
		return imageAsset{}, false
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		log.Printf("Failed to decode certificate image %s: %v", fullPath, err)
		return imageAsset{}, false
	}

	imgType := format
	if format == "jpeg" {
		imgType = "jpg"
	}

	return imageAsset{
		Path:   fullPath,
		Width:  cfg.Width,
		Height: cfg.Height,
		Type:   imgType,
	}, true
}

// fitWithin scales the image's pixel dimensions to fit inside a maxW x maxH
// box (canvas units) preserving aspect ratio.
func (a imageAsset) fitWithin(maxW, maxH float64) (w, h float64) {
	if a.Width <= 0 || a.Height <= 0 {
		return 0, 0
	}
	scale := maxW / float64(a.Width)
	if s := maxH / float64(a.Height); s < scale {
		scale = s
	}
	return float64(a.Width) * scale, float64(a.Height) * scale
}
