package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/dogspotter/internal/matcher"
)

type MatcherController struct {
	breeds BreedReader
}

func NewMatcherController(breeds BreedReader) *MatcherController {
	return &MatcherController{breeds: breeds}
}

// GetSteps handles GET /api/matcher/steps
func (mc *MatcherController) GetSteps(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"steps": matcher.Steps()})
}

// Match handles POST /api/matcher
// Body: {"size": "...", "coat_length": "...", "ears": "..."}, every field optional.
func (mc *MatcherController) Match(c *gin.Context) {
	var sel matcher.Selections
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&sel); err != nil {
			respondBadRequest(c, "invalid request body: "+err.Error())
			return
		}
	}
	if err := sel.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	all, err := mc.breeds.ListBreeds(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "match breeds")
		return
	}

	found := matcher.Match(all, sel)
	c.JSON(http.StatusOK, gin.H{"selections": sel, "breeds": found, "count": len(found)})
}
