package model

// BenefitAllocation is an amount of community benefit allocated to a trust region for a year
type BenefitAllocation struct {
	ID              int64   `db:"id" json:"id"`
	CategoryID      *int64  `db:"category_id" json:"category_id"`
	CategoryName    *string `db:"category_name" json:"category_name"`
	TrustRegionID   *int64  `db:"trust_region_id" json:"trust_region_id"`
	TrustRegionName *string `db:"trust_region_name" json:"trust_region_name"`
	Amount          float64 `db:"amount" json:"amount"`
	Year            *int    `db:"year" json:"year"`
	FormattedAmount string  `db:"-" json:"formatted_amount"`
	Display         string  `db:"-" json:"display"`
}

// BenefitFilter narrows the allocation list
type BenefitFilter struct {
	TrustRegionID int64
	CategoryID    int64
	Year          int
	Page          int
	PerPage       int
}

// BenefitListResponse is a page of allocations
type BenefitListResponse struct {
	Allocations []BenefitAllocation `json:"allocations"`
	Pagination
}

// AllocationDistribution links a benefit allocation to the trust village it is paid out in
type AllocationDistribution struct {
	ID                  int64    `db:"id" json:"id"`
	TrustRegionID       *int64   `db:"trust_region_id" json:"trust_region_id"`
	TrustRegionName     *string  `db:"trust_region_name" json:"trust_region_name"`
	TrustVillageID      *int64   `db:"trust_village_id" json:"trust_village_id"`
	TrustVillageName    *string  `db:"trust_village_name" json:"trust_village_name"`
	BenefitCategoryID   *int64   `db:"benefit_category_id" json:"benefit_category_id"`
	BenefitCategoryName *string  `db:"benefit_category_name" json:"benefit_category_name"`
	BenefitAllocationID *int64   `db:"benefit_allocation_id" json:"benefit_allocation_id"`
	AllocationAmount    *float64 `db:"allocation_amount" json:"allocation_amount"`
	AllocationYear      *int     `db:"allocation_year" json:"allocation_year"`
	FormattedAmount     string   `db:"-" json:"formatted_amount"`
}

// DistributionFilter narrows the distribution list
type DistributionFilter struct {
	TrustRegionID     int64
	TrustVillageID    int64
	BenefitCategoryID int64
	Page              int
	PerPage           int
}

// DistributionListResponse is a page of distributions
type DistributionListResponse struct {
	Distributions []AllocationDistribution `json:"distributions"`
	Pagination
}
