package http

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/dogspotter/internal/images"
)

// ImagesController serves cached breed images.
type ImagesController struct {
	breeds    BreedReader
	resolver  ImageResolver
	thumbSize int
}

// NewImagesController creates a new ImagesController.
func NewImagesController(breeds BreedReader, resolver ImageResolver, thumbSize int) *ImagesController {
	return &ImagesController{
		breeds:    breeds,
		resolver:  resolver,
		thumbSize: thumbSize,
	}
}

// GetImage serves the breed image, downloading it on first request.
// GET /api/breeds/:id/image[?size=thumb]
func (ic *ImagesController) GetImage(c *gin.Context) {
	breed, err := ic.breeds.GetBreed(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondInternalError(c, err, "get breed image")
		return
	}
	if breed == nil {
		respondNotFound(c, "breed")
		return
	}

	paths := ic.resolver.Resolve(c.Request.Context(), breed.Name)
	if len(paths) == 0 {
		respondNotFound(c, "image")
		return
	}
	path := paths[0]

	if c.Query("size") == "thumb" && ic.thumbSize > 0 {
		thumb, err := images.Thumbnail(path, ic.thumbSize)
		if err == nil {
			path = thumb
		} else {
			// Serve the original when the cached file cannot be decoded
			logrus.WithError(err).WithField("breed_id", breed.ID).Warn("Thumbnail generation failed")
		}
	}

	c.Header("Cache-Control", "public, max-age=86400")
	c.File(path)
}
