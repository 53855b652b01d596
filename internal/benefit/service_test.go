package benefit

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/algoreed/crs/pkg/model"
)

func strPtr(s string) *string { return &s }

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{0, "0.00"},
		{5.5, "5.50"},
		{999.99, "999.99"},
		{1234.5, "1,234.50"},
		{1000000, "1,000,000.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatAmount(tt.amount))
	}
}

func TestDescribe(t *testing.T) {
	a := model.BenefitAllocation{
		CategoryName:    strPtr("Education"),
		TrustRegionName: strPtr("Lihir"),
		Amount:          25000,
	}
	assert.Equal(t, "Education - 25,000.00 PGK - Lihir", Describe(a))

	a.TrustRegionName = nil
	assert.Equal(t, "Education - 25,000.00 PGK - Unassigned", Describe(a))
}

func TestListAllocations(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	svc := NewService(sqlx.NewDb(db, "postgres"), zap.NewNop())

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM community_benefit_allocations a WHERE 1=1 AND a.year = \$1`).
		WithArgs(2024).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(`ORDER BY a.year DESC NULLS LAST, c.name, a.id`).
		WithArgs(2024, 25, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "category_id", "category_name", "trust_region_id", "trust_region_name", "amount", "year"}).
			AddRow(1, 3, "Health", 2, "Lihir", "1500.75", 2024))

	resp, err := svc.ListAllocations(context.Background(), model.BenefitFilter{Year: 2024})
	require.NoError(t, err)
	require.Len(t, resp.Allocations, 1)

	got := resp.Allocations[0]
	assert.Equal(t, 1500.75, got.Amount)
	assert.Equal(t, "1,500.75", got.FormattedAmount)
	assert.Equal(t, "Health - 1,500.75 PGK - Lihir", got.Display)
	assert.Equal(t, 1, resp.TotalPages)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListDistributions(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewService(sqlx.NewDb(db, "postgres"), zap.NewNop())

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM allocation_distributions d WHERE 1=1 AND d.trust_village_id = \$1 AND d.benefit_category_id = \$2`).
		WithArgs(int64(3), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	cols := []string{
		"id", "trust_region_id", "trust_region_name", "trust_village_id", "trust_village_name",
		"benefit_category_id", "benefit_category_name", "benefit_allocation_id", "allocation_amount", "allocation_year",
	}
	mock.ExpectQuery(`LEFT JOIN community_benefit_allocations a ON a.id = d.benefit_allocation_id`).
		WithArgs(int64(3), int64(7), 25, 0).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(1, 1, "Lihir", 3, "Putput", 7, "Education", 4, "25000.5", 2023).
			AddRow(2, 1, "Lihir", 3, "Putput", 7, "Education", nil, nil, nil))

	resp, err := svc.ListDistributions(context.Background(), model.DistributionFilter{
		TrustVillageID:    3,
		BenefitCategoryID: 7,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Distributions, 2)
	assert.Equal(t, "25,000.50", resp.Distributions[0].FormattedAmount)
	assert.Equal(t, 2023, *resp.Distributions[0].AllocationYear)
	assert.Nil(t, resp.Distributions[1].BenefitAllocationID)
	assert.Empty(t, resp.Distributions[1].FormattedAmount)

	assert.NoError(t, mock.ExpectationsWereMet())
}
