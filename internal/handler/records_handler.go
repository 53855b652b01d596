package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/algoreed/crs/internal/benefit"
	"github.com/algoreed/crs/internal/land"
	"github.com/algoreed/crs/pkg/model"
)

// RecordsHandler handles benefit allocation and tenement registers
type RecordsHandler struct {
	benefitService *benefit.Service
	landService    *land.Service
	logger         *zap.Logger
}

// NewRecordsHandler creates a new records handler
func NewRecordsHandler(benefitService *benefit.Service, landService *land.Service, logger *zap.Logger) *RecordsHandler {
	return &RecordsHandler{
		benefitService: benefitService,
		landService:    landService,
		logger:         logger,
	}
}

// GetBenefitAllocations handles GET /api/benefit-allocations
func (h *RecordsHandler) GetBenefitAllocations(c *gin.Context) {
	filter := model.BenefitFilter{
		TrustRegionID: queryInt64(c, "trust_region_id"),
		CategoryID:    queryInt64(c, "category_id"),
		Year:          queryInt(c, "year"),
		Page:          queryInt(c, "page"),
		PerPage:       queryInt(c, "per_page"),
	}

	response, err := h.benefitService.ListAllocations(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("list benefit allocations failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch benefit allocations"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// Tenements returns a handler for GET /api/land-tenements or /api/mining-tenements
func (h *RecordsHandler) Tenements(kind land.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := model.TenementFilter{
			TypeOfTenement: c.Query("type_of_tenement"),
			ProvinceID:     queryInt64(c, "province_id"),
			DistrictID:     queryInt64(c, "district_id"),
			LLGID:          queryInt64(c, "llg_id"),
			Search:         c.Query("q"),
			Page:           queryInt(c, "page"),
			PerPage:        queryInt(c, "per_page"),
		}

		response, err := h.landService.ListTenements(c.Request.Context(), kind, filter)
		if err != nil {
			h.logger.Error("list tenements failed", zap.String("kind", kind.Name), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tenements"})
			return
		}

		c.JSON(http.StatusOK, response)
	}
}

// GetAllocationDistributions handles GET /api/allocation-distributions
func (h *RecordsHandler) GetAllocationDistributions(c *gin.Context) {
	filter := model.DistributionFilter{
		TrustRegionID:     queryInt64(c, "trust_region_id"),
		TrustVillageID:    queryInt64(c, "trust_village_id"),
		BenefitCategoryID: queryInt64(c, "benefit_category_id"),
		Page:              queryInt(c, "page"),
		PerPage:           queryInt(c, "per_page"),
	}

	response, err := h.benefitService.ListDistributions(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("list allocation distributions failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch allocation distributions"})
		return
	}

	c.JSON(http.StatusOK, response)
}

// Rentals returns a handler for GET /api/land-tenement-rentals or /api/mining-tenement-rentals
func (h *RecordsHandler) Rentals(kind land.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := model.RentalFilter{
			TenementID:    queryInt64(c, "tenement_id"),
			PaymentMethod: c.Query("payment_method"),
			PaymentStatus: c.Query("payment_status"),
			Search:        c.Query("q"),
			Page:          queryInt(c, "page"),
			PerPage:       queryInt(c, "per_page"),
		}

		response, err := h.landService.ListRentals(c.Request.Context(), kind, filter)
		if err != nil {
			if errors.Is(err, land.ErrInvalidPaymentFilter) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment_method or payment_status"})
				return
			}
			h.logger.Error("list rentals failed", zap.String("kind", kind.Name), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rentals"})
			return
		}

		c.JSON(http.StatusOK, response)
	}
}

// GetLandOwners handles GET /api/land-owners
func (h *RecordsHandler) GetLandOwners(c *gin.Context) {
	filter := model.DirectoryFilter{
		Search:  c.Query("q"),
		Page:    queryInt(c, "page"),
		PerPage: queryInt(c, "per_page"),
	}

	response, err := h.landService.ListLandOwners(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("list land owners failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch land owners"})
		return
	}

	c.JSON(http.StatusOK, response)
}
