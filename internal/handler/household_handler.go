package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/algoreed/crs/internal/household"
	"github.com/algoreed/crs/pkg/model"
)

// HouseholdHandler handles household, person and dwelling requests
type HouseholdHandler struct {
	householdService *household.Service
	logger           *zap.Logger
}

// NewHouseholdHandler creates a new household handler
func NewHouseholdHandler(householdService *household.Service, logger *zap.Logger) *HouseholdHandler {
	return &HouseholdHandler{
		householdService: householdService,
		logger:           logger,
	}
}

// GetHouseholds handles GET /api/households
func (h *HouseholdHandler) GetHouseholds(c *gin.Context) {
	filter := model.HouseholdFilter{
		TrustRegionID:  queryInt64(c, "trust_region_id"),
		TrustVillageID: queryInt64(c, "trust_village_id"),
		DwellingID:     queryInt64(c, "dwelling_id"),
		Search:         c.Query("q"),
		Page:           queryInt(c, "page"),
		PerPage:        queryInt(c, "per_page"),
	}

	response, err := h.householdService.ListHouseholds(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("list households failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch households"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetHousehold handles GET /api/households/:id
func (h *HouseholdHandler) GetHousehold(c *gin.Context) {
	householdID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid household ID"})
		return
	}

	detail, err := h.householdService.GetHouseholdDetail(c.Request.Context(), householdID)
	if err != nil {
		if errors.Is(err, household.ErrHouseholdNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Household not found"})
			return
		}
		h.logger.Error("get household failed", zap.Int64("household_id", householdID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch household"})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// GetPersons handles GET /api/persons
func (h *HouseholdHandler) GetPersons(c *gin.Context) {
	filter := model.PersonFilter{
		HouseholdID:        queryInt64(c, "household_id"),
		TrustVillageID:     queryInt64(c, "trust_village_id"),
		RelationshipToHead: c.Query("relationship_to_head"),
		Page:               queryInt(c, "page"),
		PerPage:            queryInt(c, "per_page"),
	}

	response, err := h.householdService.ListPersons(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, household.ErrInvalidRelationship) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid relationship_to_head"})
			return
		}
		h.logger.Error("list persons failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch persons"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// DwellingAutocomplete handles GET /dwelling-autocomplete
func (h *HouseholdHandler) DwellingAutocomplete(c *gin.Context) {
	options, err := h.householdService.DwellingAutocomplete(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.logger.Error("dwelling autocomplete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dwellings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": options})
}
