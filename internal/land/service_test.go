package land

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/algoreed/crs/pkg/model"
)

func TestListTenements_ComputesRentalDue(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewService(sqlx.NewDb(db, "postgres"), zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC) }

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM mining_tenements t WHERE 1=1 AND t.district_id = \$1`).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	cols := []string{"id", "title", "land_name", "type_of_tenement", "lease_holder_id", "lease_holder",
		"province_name", "district_name", "llg_name", "rental_amount", "rental_due_date"}
	mock.ExpectQuery(`LEFT JOIN companies lh ON lh.id = t.lease_holder_id[\s\S]+LEFT JOIN mining_tenement_acquisitions a ON a.tenement_id = t.id`).
		WithArgs(int64(4), 50, 0).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(1, "SML 6", "Ladolam", "Special Mining Lease (SML)", 9, "Lihir Gold Limited", "New Ireland", "Namatanai", nil, "1200.00", time.Date(2024, time.June, 11, 0, 0, 0, 0, time.UTC)).
			AddRow(2, "EL 485", "Kapit", "Exploration Lease", nil, nil, nil, nil, nil, nil, nil))

	resp, err := svc.ListTenements(context.Background(), Mining, model.TenementFilter{DistrictID: 4})
	require.NoError(t, err)
	require.Len(t, resp.Tenements, 2)

	first := resp.Tenements[0]
	require.NotNil(t, first.DaysUntilRentalDue)
	assert.Equal(t, 10, *first.DaysUntilRentalDue)
	assert.Equal(t, "Due in 10 days", first.RentalDueAlert)
	assert.Equal(t, 1200.0, *first.RentalAmount)
	assert.Equal(t, "Lihir Gold Limited", *first.LeaseHolder)

	second := resp.Tenements[1]
	assert.Nil(t, second.DaysUntilRentalDue)
	assert.Equal(t, "No due date set", second.RentalDueAlert)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTenements_UnknownKind(t *testing.T) {
	svc := NewService(nil, zap.NewNop())
	_, err := svc.ListTenements(context.Background(), Kind{Name: "users", Table: "users"}, model.TenementFilter{})
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, *Service) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return mock, NewService(sqlx.NewDb(db, "postgres"), zap.NewNop())
}

func TestListTenements_EscapesSearchWildcards(t *testing.T) {
	mock, svc := setupMockDB(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM land_tenements t`).
		WithArgs(`%SML\_6%`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`ORDER BY t.title, t.id`).
		WithArgs(`%SML\_6%`, 50, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}))

	resp, err := svc.ListTenements(context.Background(), Land, model.TenementFilter{Search: "SML_6"})
	require.NoError(t, err)
	assert.Empty(t, resp.Tenements)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRentals(t *testing.T) {
	mock, svc := setupMockDB(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\)\s+FROM land_tenement_rentals r\s+LEFT JOIN land_tenements t ON t.id = r.tenement_id WHERE 1=1 AND r.tenement_id = \$1 AND r.payment_method = \$2`).
		WithArgs(int64(1), "Cheque").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	cols := []string{"id", "tenement_id", "tenement_title", "payment_date", "amount_paid",
		"payment_method", "receipt_number", "payer_details", "payment_status", "notes"}
	mock.ExpectQuery(`ORDER BY r.payment_date DESC, r.id DESC`).
		WithArgs(int64(1), "Cheque", 50, 0).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(8, 1, "Portion 12", time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC), "600.00", "Cheque", "R-118", nil, "Completed", nil).
			AddRow(5, 1, "Portion 12", time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), "600.00", "Cheque", nil, nil, "Pending", nil))

	resp, err := svc.ListRentals(context.Background(), Land, model.RentalFilter{TenementID: 1, PaymentMethod: "Cheque"})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Rentals, 2)
	assert.Equal(t, int64(8), resp.Rentals[0].ID)
	assert.Equal(t, 600.0, resp.Rentals[0].AmountPaid)
	assert.Equal(t, "R-118", *resp.Rentals[0].ReceiptNumber)
	assert.Nil(t, resp.Rentals[1].ReceiptNumber)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRentals_RejectsUnknownFilters(t *testing.T) {
	mock, svc := setupMockDB(t)

	_, err := svc.ListRentals(context.Background(), Mining, model.RentalFilter{PaymentMethod: "Barter"})
	assert.ErrorIs(t, err, ErrInvalidPaymentFilter)

	_, err = svc.ListRentals(context.Background(), Mining, model.RentalFilter{PaymentStatus: "Lost"})
	assert.ErrorIs(t, err, ErrInvalidPaymentFilter)

	_, err = svc.ListRentals(context.Background(), Kind{Name: "users", Table: "users"}, model.RentalFilter{})
	assert.ErrorIs(t, err, ErrUnknownKind)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListLandOwners(t *testing.T) {
	mock, svc := setupMockDB(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM land_owners WHERE 1=1 AND name ILIKE \$1`).
		WithArgs("%kap%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`ORDER BY name, id`).
		WithArgs("%kap%", 50, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(3, "Kapit Clan"))

	resp, err := svc.ListLandOwners(context.Background(), model.DirectoryFilter{Search: "kap"})
	require.NoError(t, err)
	assert.Equal(t, []model.LookupItem{{ID: 3, Name: "Kapit Clan"}}, resp.LandOwners)

	assert.NoError(t, mock.ExpectationsWereMet())
}
