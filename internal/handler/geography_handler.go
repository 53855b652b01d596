package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/algoreed/crs/internal/geography"
	"github.com/algoreed/crs/pkg/model"
)

// GeographyHandler serves the cascading region lookups
type GeographyHandler struct {
	lookup geography.Lookup
	logger *zap.Logger
}

// NewGeographyHandler creates a new geography handler
func NewGeographyHandler(lookup geography.Lookup, logger *zap.Logger) *GeographyHandler {
	return &GeographyHandler{
		lookup: lookup,
		logger: logger,
	}
}

// Children returns a handler answering GET ?<rel.Param>=<id> with the child regions of id.
// A missing, malformed or unknown id is answered with an empty array.
func (h *GeographyHandler) Children(rel geography.Relation) gin.HandlerFunc {
	return func(c *gin.Context) {
		parentID, ok := geography.ParseParentID(c.Query(rel.Param))
		if !ok {
			c.JSON(http.StatusOK, []model.LookupItem{})
			return
		}

		items, err := h.lookup.Children(c.Request.Context(), rel, parentID)
		if err != nil {
			h.logger.Error("region lookup failed",
				zap.String("relation", rel.Name),
				zap.Int64("parent_id", parentID),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch regions"})
			return
		}

		c.JSON(http.StatusOK, items)
	}
}

// GetTrustRegions handles GET /get_trust_regions/
func (h *GeographyHandler) GetTrustRegions(c *gin.Context) {
	regions, err := h.lookup.TrustRegions(c.Request.Context())
	if err != nil {
		h.logger.Error("trust region lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trust regions"})
		return
	}

	c.JSON(http.StatusOK, regions)
}
