package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/dogspotter/internal/matcher"
)

type BreedsController struct {
	breeds BreedReader
}

func NewBreedsController(breeds BreedReader) *BreedsController {
	return &BreedsController{breeds: breeds}
}

// ListBreeds handles GET /api/breeds?q=
// Returns the catalog ordered by name, filtered by name or alternative name.
func (bc *BreedsController) ListBreeds(c *gin.Context) {
	all, err := bc.breeds.ListBreeds(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list breeds")
		return
	}

	found := matcher.Search(all, c.Query("q"))
	c.JSON(http.StatusOK, gin.H{"breeds": found, "count": len(found)})
}

// GetBreed handles GET /api/breeds/:id
func (bc *BreedsController) GetBreed(c *gin.Context) {
	breed, err := bc.breeds.GetBreed(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondInternalError(c, err, "get breed")
		return
	}
	if breed == nil {
		respondNotFound(c, "breed")
		return
	}
	c.JSON(http.StatusOK, breed)
}
