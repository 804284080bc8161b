package images

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

const thumbnailQuality = 85

// ThumbnailPath returns where the thumbnail of a cached image is stored.
func ThumbnailPath(imagePath string) string {
	ext := filepath.Ext(imagePath)
	return strings.TrimSuffix(imagePath, ext) + "_thumb" + ext
}

// Thumbnail returns a JPEG copy of the image at imagePath whose longest side
// is at most maxSize. An existing thumbnail is reused. Images smaller than
// maxSize are not upscaled.
func Thumbnail(imagePath string, maxSize int) (string, error) {
	if maxSize <= 0 {
		return "", fmt.Errorf("invalid thumbnail size %d", maxSize)
	}

	thumbPath := ThumbnailPath(imagePath)
	if _, err := os.Stat(thumbPath); err == nil {
		return thumbPath, nil
	}

	img, err := imaging.Open(imagePath, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	thumb := imaging.Fit(img, maxSize, maxSize, imaging.Lanczos)

	tmpFile, err := os.CreateTemp(filepath.Dir(thumbPath), filepath.Base(thumbPath)+".tmp_")
	if err != nil {
		return "", err
	}
	tmpPath := tmpFile.Name()
	defer func() {
		tmpFile.Close()
		os.Remove(tmpPath)
	}()

	if err := imaging.Encode(tmpFile, thumb, imaging.JPEG, imaging.JPEGQuality(thumbnailQuality)); err != nil {
		return "", fmt.Errorf("encode thumbnail: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmpPath, thumbPath); err != nil {
		return "", err
	}
	return thumbPath, nil
}
