package household

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/algoreed/crs/internal/database"
	"github.com/algoreed/crs/pkg/model"
)

// ErrHouseholdNotFound is returned when no household has the requested id
var ErrHouseholdNotFound = errors.New("household not found")

// ErrInvalidRelationship is returned for a relationship_to_head outside model.Relationships
var ErrInvalidRelationship = errors.New("invalid relationship to head")

// ErrAccountNumberLength is returned when an account number does not match its bank's length
var ErrAccountNumberLength = errors.New("account number length does not match bank")

const (
	// DefaultPerPage matches the page size of the household and person registers
	DefaultPerPage = 50

	// DefaultAutocompleteLimit caps dwelling autocomplete results
	DefaultAutocompleteLimit = 20
)

const householdFrom = `
        FROM households h
        LEFT JOIN trust_regions tr ON tr.id = h.trust_region_id
        LEFT JOIN trust_villages tv ON tv.id = h.trust_village_id
        LEFT JOIN dwellings d ON d.id = h.dwelling_id
        LEFT JOIN community_persons hp ON hp.id = h.head_of_household_id`

const householdColumns = `
        SELECT h.id, h.trust_region_id, h.trust_village_id, h.dwelling_id, h.household_number,
               h.head_of_household_id, h.primary_income_source,
               tr.name AS trust_region_name, tv.name AS trust_village_name,
               d.dwelling_number AS dwelling_number,
               CASE WHEN hp.id IS NULL THEN NULL ELSE hp.first_name || ' ' || hp.last_name END AS head_of_household_name,
               (SELECT COUNT(*) FROM community_persons cp WHERE cp.household_id = h.id) AS member_count`

const personColumns = `
        SELECT id, first_name, last_name, sex, relationship_to_head, age_group, date_of_birth,
               trust_region_id, trust_village_id, dwelling_id, household_id, occupation, education_level`

// Service reads households, their persons and dwellings
type Service struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewService creates a new household service
func NewService(db *sqlx.DB, logger *zap.Logger) *Service {
	return &Service{
		db:     db,
		logger: logger,
	}
}

// ListHouseholds returns a page of households ordered by dwelling number then household number
func (s *Service) ListHouseholds(ctx context.Context, f model.HouseholdFilter) (*model.HouseholdListResponse, error) {
	page, perPage := model.NormalizePage(f.Page, f.PerPage, DefaultPerPage)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if f.TrustRegionID > 0 {
		whereClause += fmt.Sprintf(" AND h.trust_region_id = $%d", argIndex)
		args = append(args, f.TrustRegionID)
		argIndex++
	}
	if f.TrustVillageID > 0 {
		whereClause += fmt.Sprintf(" AND h.trust_village_id = $%d", argIndex)
		args = append(args, f.TrustVillageID)
		argIndex++
	}
	if f.DwellingID > 0 {
		whereClause += fmt.Sprintf(" AND h.dwelling_id = $%d", argIndex)
		args = append(args, f.DwellingID)
		argIndex++
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		whereClause += fmt.Sprintf(" AND (hp.first_name ILIKE $%d OR tv.name ILIKE $%d OR tr.name ILIKE $%d)", argIndex, argIndex, argIndex)
		args = append(args, database.ContainsPattern(search))
		argIndex++
	}

	var total int
	countQuery := "SELECT COUNT(*)" + householdFrom + " " + whereClause
	if err := s.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("count households: %w", err)
	}

	query := fmt.Sprintf(`%s%s
        %s
        ORDER BY d.dwelling_number NULLS LAST, h.household_number NULLS LAST, h.id
        LIMIT $%d OFFSET $%d`, householdColumns, householdFrom, whereClause, argIndex, argIndex+1)
	args = append(args, perPage, (page-1)*perPage)

	households := make([]model.HouseholdSummary, 0)
	if err := s.db.SelectContext(ctx, &households, query, args...); err != nil {
		return nil, fmt.Errorf("select households: %w", err)
	}

	return &model.HouseholdListResponse{
		Households: households,
		Pagination: model.NewPagination(total, page, perPage),
	}, nil
}

// GetHousehold fetches a single household summary by id
func (s *Service) GetHousehold(ctx context.Context, id int64) (*model.HouseholdSummary, error) {
	var h model.HouseholdSummary
	err := s.db.GetContext(ctx, &h, householdColumns+householdFrom+" WHERE h.id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHouseholdNotFound
		}
		return nil, fmt.Errorf("get household %d: %w", id, err)
	}
	return &h, nil
}

// LinkedPersons returns every person whose household reference is householdID
func (s *Service) LinkedPersons(ctx context.Context, householdID int64) ([]model.Person, error) {
	persons := make([]model.Person, 0)
	err := s.db.SelectContext(ctx, &persons, personColumns+`
        FROM community_persons
        WHERE household_id = $1
        ORDER BY id`, householdID)
	if err != nil {
		return nil, fmt.Errorf("select persons of household %d: %w", householdID, err)
	}
	return persons, nil
}

// GetHouseholdDetail returns the household together with its head and ordered members
func (s *Service) GetHouseholdDetail(ctx context.Context, id int64) (*model.HouseholdDetail, error) {
	h, err := s.GetHousehold(ctx, id)
	if err != nil {
		return nil, err
	}

	persons, err := s.LinkedPersons(ctx, id)
	if err != nil {
		return nil, err
	}

	comp := Compose(h.Household, persons)
	for _, w := range comp.Warnings {
		s.logger.Warn("household head inconsistency",
			zap.Int64("household_id", id),
			zap.String("detail", w))
	}

	account, err := s.BankAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	if account != nil && !account.AccountNumberValid {
		s.logger.Warn("household bank account inconsistency",
			zap.Int64("household_id", id),
			zap.String("detail", account.Warning))
	}

	return &model.HouseholdDetail{
		HouseholdSummary: *h,
		Composition:      comp,
		BankAccount:      account,
	}, nil
}

// BankAccount returns the household's bank account, or nil when none is recorded.
// A household holds at most one account; the oldest wins if more exist.
func (s *Service) BankAccount(ctx context.Context, householdID int64) (*model.BankAccount, error) {
	var account model.BankAccount
	err := s.db.GetContext(ctx, &account, `
        SELECT ba.id, ba.account_name, ba.account_number, ba.bank_id,
               b.bank_name, b.bank_initials, b.account_number_length,
               ba.branch, ba.status
        FROM household_bank_accounts ba
        LEFT JOIN banks b ON b.id = ba.bank_id
        WHERE ba.household_id = $1
        ORDER BY ba.id
        LIMIT 1`, householdID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bank account of household %d: %w", householdID, err)
	}

	account.AccountNumberValid = true
	if err := CheckAccountNumber(account); err != nil {
		account.AccountNumberValid = false
		account.Warning = err.Error()
	}
	return &account, nil
}

// CheckAccountNumber verifies the account number has exactly the digits its bank requires.
// Accounts without a bank are not checked.
func CheckAccountNumber(account model.BankAccount) error {
	if account.AccountNumberLength == nil {
		return nil
	}
	if len(account.AccountNumber) != *account.AccountNumberLength {
		bank := "bank"
		if account.BankInitials != nil {
			bank = *account.BankInitials
		}
		return fmt.Errorf("%w: account number for %s should be %d digits long",
			ErrAccountNumberLength, bank, *account.AccountNumberLength)
	}
	return nil
}

// ListPersons returns a page of persons, heads first, then by first and last name
func (s *Service) ListPersons(ctx context.Context, f model.PersonFilter) (*model.PersonListResponse, error) {
	page, perPage := model.NormalizePage(f.Page, f.PerPage, DefaultPerPage)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if f.HouseholdID > 0 {
		whereClause += fmt.Sprintf(" AND household_id = $%d", argIndex)
		args = append(args, f.HouseholdID)
		argIndex++
	}
	if f.TrustVillageID > 0 {
		whereClause += fmt.Sprintf(" AND trust_village_id = $%d", argIndex)
		args = append(args, f.TrustVillageID)
		argIndex++
	}
	if f.RelationshipToHead != "" {
		if !model.ValidRelationship(f.RelationshipToHead) {
			return nil, ErrInvalidRelationship
		}
		whereClause += fmt.Sprintf(" AND relationship_to_head = $%d", argIndex)
		args = append(args, f.RelationshipToHead)
		argIndex++
	}

	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM community_persons "+whereClause, args...); err != nil {
		return nil, fmt.Errorf("count persons: %w", err)
	}

	query := fmt.Sprintf(`%s
        FROM community_persons
        %s
        ORDER BY CASE WHEN relationship_to_head = 'Head' THEN 1 ELSE 0 END DESC, first_name COLLATE "C", last_name COLLATE "C", id
        LIMIT $%d OFFSET $%d`, personColumns, whereClause, argIndex, argIndex+1)
	args = append(args, perPage, (page-1)*perPage)

	persons := make([]model.Person, 0)
	if err := s.db.SelectContext(ctx, &persons, query, args...); err != nil {
		return nil, fmt.Errorf("select persons: %w", err)
	}

	return &model.PersonListResponse{
		Persons:    persons,
		Pagination: model.NewPagination(total, page, perPage),
	}, nil
}

// DwellingAutocomplete returns dwellings ordered by number, narrowed to numbers containing q
func (s *Service) DwellingAutocomplete(ctx context.Context, q string) ([]model.DwellingOption, error) {
	options := make([]model.DwellingOption, 0)

	query := `
        SELECT id, CAST(dwelling_number AS TEXT) AS text
        FROM dwellings`
	args := []interface{}{}
	if q = strings.TrimSpace(q); q != "" {
		query += " WHERE CAST(dwelling_number AS TEXT) ILIKE $1"
		args = append(args, database.ContainsPattern(q))
	}
	query += fmt.Sprintf(" ORDER BY dwelling_number, id LIMIT %d", DefaultAutocompleteLimit)

	if err := s.db.SelectContext(ctx, &options, query, args...); err != nil {
		return nil, fmt.Errorf("select dwellings: %w", err)
	}
	return options, nil
}
