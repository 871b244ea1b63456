package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hkhalifa/deen-companion/internal/content/hadith"
)

// HadithController serves the static collection catalogue and pages of
// hadiths proxied from HadithAPI.com.
type HadithController struct {
	hadith *hadith.Client
}

func NewHadithController(client *hadith.Client) *HadithController {
	return &HadithController{hadith: client}
}

func (hc *HadithController) ListCollections(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"collections": hadith.Collections()})
}

func (hc *HadithController) ListHadiths(c *gin.Context) {
	collection := c.Param("collection")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := hc.hadith.ListHadiths(c.Request.Context(), collection, page, limit)
	if err != nil {
		switch {
		case errors.Is(err, hadith.ErrUnknownCollection):
			respondNotFound(c, "hadith collection")
		case errors.Is(err, hadith.ErrMissingAPIKey):
			respondError(c, http.StatusServiceUnavailable, "hadith provider is not configured")
		default:
			respondBadGateway(c, err, "list hadiths")
		}
		return
	}
	c.JSON(http.StatusOK, result)
}
