package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/algoreed/crs/internal/directory"
	"github.com/algoreed/crs/pkg/model"
)

// DirectoryHandler serves the organization and company registers
type DirectoryHandler struct {
	directoryService *directory.Service
	logger           *zap.Logger
}

// NewDirectoryHandler creates a new directory handler
func NewDirectoryHandler(directoryService *directory.Service, logger *zap.Logger) *DirectoryHandler {
	return &DirectoryHandler{
		directoryService: directoryService,
		logger:           logger,
	}
}

// List returns a handler for GET /api/organizations or /api/companies
func (h *DirectoryHandler) List(kind directory.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := model.DirectoryFilter{
			Search:  c.Query("q"),
			Page:    queryInt(c, "page"),
			PerPage: queryInt(c, "per_page"),
		}

		response, err := h.directoryService.List(c.Request.Context(), kind, filter)
		if err != nil {
			h.logger.Error("list directory failed", zap.String("kind", kind.Name), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch " + kind.Name})
			return
		}

		c.JSON(http.StatusOK, response)
	}
}
