package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/dogspotter/internal/services"
)

type SightingsController struct {
	service SightingService
}

func NewSightingsController(service SightingService) *SightingsController {
	return &SightingsController{service: service}
}

// ListSightings handles GET /api/sightings
// Returns every sighting, most recent first.
func (sc *SightingsController) ListSightings(c *gin.Context) {
	list, err := sc.service.ListSightings(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list sightings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sightings": list, "count": len(list)})
}

// CreateSighting handles POST /api/sightings
func (sc *SightingsController) CreateSighting(c *gin.Context) {
	var in services.SightingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	sighting, err := sc.service.RecordSighting(c.Request.Context(), in)
	if errors.Is(err, services.ErrInvalidSighting) {
		respondValidationError(c, err)
		return
	}
	if err != nil {
		respondInternalError(c, err, "record sighting")
		return
	}

	respondCreated(c, sighting)
}

// GetStats handles GET /api/stats
func (sc *SightingsController) GetStats(c *gin.Context) {
	stats, err := sc.service.Stats(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
