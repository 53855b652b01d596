package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/algoreed/crs/internal/auth"
	"github.com/algoreed/crs/internal/directory"
	"github.com/algoreed/crs/internal/geography"
	"github.com/algoreed/crs/internal/land"
	"github.com/algoreed/crs/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by RegisterRoutes
type Handlers struct {
	Geography  *GeographyHandler
	Households *HouseholdHandler
	Records    *RecordsHandler
	Directory  *DirectoryHandler
}

// RegisterRoutes mounts the public lookup routes and the token-protected record routes
func RegisterRoutes(router *gin.Engine, h Handlers, tokens *auth.TokenService) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public lookups for dependent selection controls
	router.GET("/get_districts_by_province/", h.Geography.Children(geography.DistrictsByProvince))
	router.GET("/get_llgs_by_district/", h.Geography.Children(geography.LLGsByDistrict))
	router.GET("/get_villages_by_district/", h.Geography.Children(geography.VillagesByDistrict))
	router.GET("/get_trust_villages_by_district/", h.Geography.Children(geography.TrustVillagesByDistrict))
	router.GET("/get_villages_by_llg/", h.Geography.Children(geography.VillagesByLLG))
	router.GET("/get_trust_villages_by_llg/", h.Geography.Children(geography.TrustVillagesByLLG))
	router.GET("/get_trust_regions/", h.Geography.GetTrustRegions)

	// Protected routes
	protected := router.Group("/")
	protected.Use(middleware.JWTAuthMiddleware(tokens))
	{
		protected.GET("/dwelling-autocomplete", h.Households.DwellingAutocomplete)

		api := protected.Group("/api")
		api.GET("/households", h.Households.GetHouseholds)
		api.GET("/households/:id", h.Households.GetHousehold)
		api.GET("/persons", h.Households.GetPersons)

		api.GET("/benefit-allocations", h.Records.GetBenefitAllocations)
		api.GET("/land-tenements", h.Records.Tenements(land.Land))
		api.GET("/mining-tenements", h.Records.Tenements(land.Mining))
		api.GET("/allocation-distributions", h.Records.GetAllocationDistributions)
		api.GET("/land-tenement-rentals", h.Records.Rentals(land.Land))
		api.GET("/mining-tenement-rentals", h.Records.Rentals(land.Mining))
		api.GET("/land-owners", h.Records.GetLandOwners)

		api.GET("/organizations", h.Directory.List(directory.Organizations))
		api.GET("/companies", h.Directory.List(directory.Companies))
	}
}
