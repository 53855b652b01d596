package benefit

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/algoreed/crs/pkg/model"
)

// DefaultPerPage matches the page size of the allocation register
const DefaultPerPage = 25

// Currency is the code appended to displayed amounts
const Currency = "PGK"

const unassigned = "Unassigned"

// Service reads community benefit allocations
type Service struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewService creates a new benefit service
func NewService(db *sqlx.DB, logger *zap.Logger) *Service {
	return &Service{
		db:     db,
		logger: logger,
	}
}

// FormatAmount renders an amount with thousands separators and two decimals, e.g. "1,234.50"
func FormatAmount(amount float64) string {
	return humanize.FormatFloat("#,###.##", amount)
}

// Describe renders "<category> - <amount> PGK - <trust region>"
func Describe(a model.BenefitAllocation) string {
	category, region := unassigned, unassigned
	if a.CategoryName != nil {
		category = *a.CategoryName
	}
	if a.TrustRegionName != nil {
		region = *a.TrustRegionName
	}
	return fmt.Sprintf("%s - %s %s - %s", category, FormatAmount(a.Amount), Currency, region)
}

// ListAllocations returns a page of allocations, newest year first, then by category name
func (s *Service) ListAllocations(ctx context.Context, f model.BenefitFilter) (*model.BenefitListResponse, error) {
	page, perPage := model.NormalizePage(f.Page, f.PerPage, DefaultPerPage)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if f.TrustRegionID > 0 {
		whereClause += fmt.Sprintf(" AND a.trust_region_id = $%d", argIndex)
		args = append(args, f.TrustRegionID)
		argIndex++
	}
	if f.CategoryID > 0 {
		whereClause += fmt.Sprintf(" AND a.category_id = $%d", argIndex)
		args = append(args, f.CategoryID)
		argIndex++
	}
	if f.Year > 0 {
		whereClause += fmt.Sprintf(" AND a.year = $%d", argIndex)
		args = append(args, f.Year)
		argIndex++
	}

	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM community_benefit_allocations a "+whereClause, args...); err != nil {
		return nil, fmt.Errorf("count allocations: %w", err)
	}

	query := fmt.Sprintf(`
        SELECT a.id, a.category_id, c.name AS category_name, a.trust_region_id, tr.name AS trust_region_name,
               a.amount, a.year
        FROM community_benefit_allocations a
        LEFT JOIN community_benefit_categories c ON c.id = a.category_id
        LEFT JOIN trust_regions tr ON tr.id = a.trust_region_id
        %s
        ORDER BY a.year DESC NULLS LAST, c.name, a.id
        LIMIT $%d OFFSET $%d`, whereClause, argIndex, argIndex+1)
	args = append(args, perPage, (page-1)*perPage)

	allocations := make([]model.BenefitAllocation, 0)
	if err := s.db.SelectContext(ctx, &allocations, query, args...); err != nil {
		return nil, fmt.Errorf("select allocations: %w", err)
	}

	for i := range allocations {
		allocations[i].FormattedAmount = FormatAmount(allocations[i].Amount)
		allocations[i].Display = Describe(allocations[i])
	}

	return &model.BenefitListResponse{
		Allocations: allocations,
		Pagination:  model.NewPagination(total, page, perPage),
	}, nil
}

// ListDistributions returns a page of allocation distributions ordered by trust region,
// trust village and benefit category name
func (s *Service) ListDistributions(ctx context.Context, f model.DistributionFilter) (*model.DistributionListResponse, error) {
	page, perPage := model.NormalizePage(f.Page, f.PerPage, DefaultPerPage)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if f.TrustRegionID > 0 {
		whereClause += fmt.Sprintf(" AND d.trust_region_id = $%d", argIndex)
		args = append(args, f.TrustRegionID)
		argIndex++
	}
	if f.TrustVillageID > 0 {
		whereClause += fmt.Sprintf(" AND d.trust_village_id = $%d", argIndex)
		args = append(args, f.TrustVillageID)
		argIndex++
	}
	if f.BenefitCategoryID > 0 {
		whereClause += fmt.Sprintf(" AND d.benefit_category_id = $%d", argIndex)
		args = append(args, f.BenefitCategoryID)
		argIndex++
	}

	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM allocation_distributions d "+whereClause, args...); err != nil {
		return nil, fmt.Errorf("count distributions: %w", err)
	}

	query := fmt.Sprintf(`
        SELECT d.id, d.trust_region_id, tr.name AS trust_region_name,
               d.trust_village_id, tv.name AS trust_village_name,
               d.benefit_category_id, c.name AS benefit_category_name,
               d.benefit_allocation_id, a.amount AS allocation_amount, a.year AS allocation_year
        FROM allocation_distributions d
        LEFT JOIN trust_regions tr ON tr.id = d.trust_region_id
        LEFT JOIN trust_villages tv ON tv.id = d.trust_village_id
        LEFT JOIN community_benefit_categories c ON c.id = d.benefit_category_id
        LEFT JOIN community_benefit_allocations a ON a.id = d.benefit_allocation_id
        %s
        ORDER BY tr.name NULLS LAST, tv.name NULLS LAST, c.name NULLS LAST, d.id
        LIMIT $%d OFFSET $%d`, whereClause, argIndex, argIndex+1)
	args = append(args, perPage, (page-1)*perPage)

	distributions := make([]model.AllocationDistribution, 0)
	if err := s.db.SelectContext(ctx, &distributions, query, args...); err != nil {
		return nil, fmt.Errorf("select distributions: %w", err)
	}

	for i := range distributions {
		if amount := distributions[i].AllocationAmount; amount != nil {
			distributions[i].FormattedAmount = FormatAmount(*amount)
		}
	}

	return &model.DistributionListResponse{
		Distributions: distributions,
		Pagination:    model.NewPagination(total, page, perPage),
	}, nil
}
