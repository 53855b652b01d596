package land

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/algoreed/crs/internal/database"
	"github.com/algoreed/crs/pkg/model"
)

// DefaultPerPage matches the page size of the tenement registers
const DefaultPerPage = 50

// ErrUnknownKind is returned for a tenement kind other than Land or Mining
var ErrUnknownKind = errors.New("unknown tenement kind")

// ErrInvalidPaymentFilter is returned for a payment method or status outside the accepted values
var ErrInvalidPaymentFilter = errors.New("invalid payment filter")

// Kind selects the land or the mining tenement register
type Kind struct {
	Name             string
	Table            string
	AcquisitionTable string
	RentalTable      string
}

var (
	Land = Kind{
		Name:             "land",
		Table:            "land_tenements",
		AcquisitionTable: "land_tenement_acquisitions",
		RentalTable:      "land_tenement_rentals",
	}
	Mining = Kind{
		Name:             "mining",
		Table:            "mining_tenements",
		AcquisitionTable: "mining_tenement_acquisitions",
		RentalTable:      "mining_tenement_rentals",
	}
)

// Service reads tenements and computes their rental due state
type Service struct {
	db     *sqlx.DB
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new tenement service
func NewService(db *sqlx.DB, logger *zap.Logger) *Service {
	return &Service{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// ListTenements returns a page of tenements of the given kind ordered by title
func (s *Service) ListTenements(ctx context.Context, kind Kind, f model.TenementFilter) (*model.TenementListResponse, error) {
	if kind != Land && kind != Mining {
		return nil, ErrUnknownKind
	}
	page, perPage := model.NormalizePage(f.Page, f.PerPage, DefaultPerPage)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if f.TypeOfTenement != "" {
		whereClause += fmt.Sprintf(" AND t.type_of_tenement = $%d", argIndex)
		args = append(args, f.TypeOfTenement)
		argIndex++
	}
	if f.ProvinceID > 0 {
		whereClause += fmt.Sprintf(" AND t.province_id = $%d", argIndex)
		args = append(args, f.ProvinceID)
		argIndex++
	}
	if f.DistrictID > 0 {
		whereClause += fmt.Sprintf(" AND t.district_id = $%d", argIndex)
		args = append(args, f.DistrictID)
		argIndex++
	}
	if f.LLGID > 0 {
		whereClause += fmt.Sprintf(" AND t.llg_id = $%d", argIndex)
		args = append(args, f.LLGID)
		argIndex++
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		whereClause += fmt.Sprintf(" AND (t.land_name ILIKE $%d OR t.type_of_tenement ILIKE $%d)", argIndex, argIndex)
		args = append(args, database.ContainsPattern(search))
		argIndex++
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s t %s", kind.Table, whereClause)
	if err := s.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("count %s tenements: %w", kind.Name, err)
	}

	query := fmt.Sprintf(`
        SELECT t.id, t.title, t.land_name, t.type_of_tenement,
               t.lease_holder_id, lh.name AS lease_holder,
               p.name AS province_name, d.name AS district_name, l.name AS llg_name,
               a.rental_amount, a.rental_due_date
        FROM %s t
        LEFT JOIN companies lh ON lh.id = t.lease_holder_id
        LEFT JOIN provinces p ON p.id = t.province_id
        LEFT JOIN districts d ON d.id = t.district_id
        LEFT JOIN local_level_governments l ON l.id = t.llg_id
        LEFT JOIN %s a ON a.tenement_id = t.id
        %s
        ORDER BY t.title, t.id
        LIMIT $%d OFFSET $%d`, kind.Table, kind.AcquisitionTable, whereClause, argIndex, argIndex+1)
	args = append(args, perPage, (page-1)*perPage)

	tenements := make([]model.Tenement, 0)
	if err := s.db.SelectContext(ctx, &tenements, query, args...); err != nil {
		return nil, fmt.Errorf("select %s tenements: %w", kind.Name, err)
	}

	now := s.now()
	for i := range tenements {
		days := DaysUntilRentalDue(tenements[i].RentalDueDate, now)
		tenements[i].DaysUntilRentalDue = days
		tenements[i].RentalDueAlert = RentalDueAlert(days)
	}

	return &model.TenementListResponse{
		Tenements:  tenements,
		Pagination: model.NewPagination(total, page, perPage),
	}, nil
}

// ListRentals returns a page of rental payments of the given kind, most recent payment first
func (s *Service) ListRentals(ctx context.Context, kind Kind, f model.RentalFilter) (*model.RentalListResponse, error) {
	if kind != Land && kind != Mining {
		return nil, ErrUnknownKind
	}
	if f.PaymentMethod != "" && !slices.Contains(model.PaymentMethods, f.PaymentMethod) {
		return nil, ErrInvalidPaymentFilter
	}
	if f.PaymentStatus != "" && !slices.Contains(model.PaymentStatuses, f.PaymentStatus) {
		return nil, ErrInvalidPaymentFilter
	}
	page, perPage := model.NormalizePage(f.Page, f.PerPage, DefaultPerPage)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if f.TenementID > 0 {
		whereClause += fmt.Sprintf(" AND r.tenement_id = $%d", argIndex)
		args = append(args, f.TenementID)
		argIndex++
	}
	if f.PaymentMethod != "" {
		whereClause += fmt.Sprintf(" AND r.payment_method = $%d", argIndex)
		args = append(args, f.PaymentMethod)
		argIndex++
	}
	if f.PaymentStatus != "" {
		whereClause += fmt.Sprintf(" AND r.payment_status = $%d", argIndex)
		args = append(args, f.PaymentStatus)
		argIndex++
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		whereClause += fmt.Sprintf(" AND t.land_name ILIKE $%d", argIndex)
		args = append(args, database.ContainsPattern(search))
		argIndex++
	}

	from := fmt.Sprintf(`
        FROM %s r
        LEFT JOIN %s t ON t.id = r.tenement_id`, kind.RentalTable, kind.Table)

	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*)"+from+" "+whereClause, args...); err != nil {
		return nil, fmt.Errorf("count %s rentals: %w", kind.Name, err)
	}

	query := fmt.Sprintf(`
        SELECT r.id, r.tenement_id, t.title AS tenement_title, r.payment_date, r.amount_paid,
               r.payment_method, r.receipt_number, r.payer_details, r.payment_status, r.notes
        %s
        %s
        ORDER BY r.payment_date DESC, r.id DESC
        LIMIT $%d OFFSET $%d`, from, whereClause, argIndex, argIndex+1)
	args = append(args, perPage, (page-1)*perPage)

	rentals := make([]model.TenementRental, 0)
	if err := s.db.SelectContext(ctx, &rentals, query, args...); err != nil {
		return nil, fmt.Errorf("select %s rentals: %w", kind.Name, err)
	}

	return &model.RentalListResponse{
		Rentals:    rentals,
		Pagination: model.NewPagination(total, page, perPage),
	}, nil
}

// ListLandOwners returns a page of land owners ordered by name
func (s *Service) ListLandOwners(ctx context.Context, f model.DirectoryFilter) (*model.LandOwnerListResponse, error) {
	page, perPage := model.NormalizePage(f.Page, f.PerPage, DefaultPerPage)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if search := strings.TrimSpace(f.Search); search != "" {
		whereClause += fmt.Sprintf(" AND name ILIKE $%d", argIndex)
		args = append(args, database.ContainsPattern(search))
		argIndex++
	}

	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM land_owners "+whereClause, args...); err != nil {
		return nil, fmt.Errorf("count land owners: %w", err)
	}

	query := fmt.Sprintf(`
        SELECT id, name
        FROM land_owners
        %s
        ORDER BY name, id
        LIMIT $%d OFFSET $%d`, whereClause, argIndex, argIndex+1)
	args = append(args, perPage, (page-1)*perPage)

	owners := make([]model.LookupItem, 0)
	if err := s.db.SelectContext(ctx, &owners, query, args...); err != nil {
		return nil, fmt.Errorf("select land owners: %w", err)
	}

	return &model.LandOwnerListResponse{
		LandOwners: owners,
		Pagination: model.NewPagination(total, page, perPage),
	}, nil
}
