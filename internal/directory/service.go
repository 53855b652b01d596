package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/algoreed/crs/internal/database"
	"github.com/algoreed/crs/pkg/model"
)

// DefaultPerPage matches the page size of the organization and company registers
const DefaultPerPage = 50

// ErrUnknownKind is returned for a directory other than Organizations or Companies
var ErrUnknownKind = errors.New("unknown directory kind")

// Kind selects the organization or the company register
type Kind struct {
	Name  string
	Table string
}

var (
	Organizations = Kind{Name: "organizations", Table: "organizations"}
	Companies     = Kind{Name: "companies", Table: "companies"}
)

// Service reads organizations and companies
type Service struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewService creates a new directory service
func NewService(db *sqlx.DB, logger *zap.Logger) *Service {
	return &Service{
		db:     db,
		logger: logger,
	}
}

// List returns a page of the given register ordered by name, searching name and contact details
func (s *Service) List(ctx context.Context, kind Kind, f model.DirectoryFilter) (*model.OrganizationListResponse, error) {
	if kind != Organizations && kind != Companies {
		return nil, ErrUnknownKind
	}
	page, perPage := model.NormalizePage(f.Page, f.PerPage, DefaultPerPage)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if search := strings.TrimSpace(f.Search); search != "" {
		whereClause += fmt.Sprintf(" AND (name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d OR address ILIKE $%d)",
			argIndex, argIndex, argIndex, argIndex)
		args = append(args, database.ContainsPattern(search))
		argIndex++
	}

	var total int
	if err := s.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) FROM %s %s", kind.Table, whereClause), args...); err != nil {
		return nil, fmt.Errorf("count %s: %w", kind.Name, err)
	}

	query := fmt.Sprintf(`
        SELECT id, name, address, phone, email
        FROM %s
        %s
        ORDER BY name, id
        LIMIT $%d OFFSET $%d`, kind.Table, whereClause, argIndex, argIndex+1)
	args = append(args, perPage, (page-1)*perPage)

	organizations := make([]model.Organization, 0)
	if err := s.db.SelectContext(ctx, &organizations, query, args...); err != nil {
		return nil, fmt.Errorf("select %s: %w", kind.Name, err)
	}

	return &model.OrganizationListResponse{
		Organizations: organizations,
		Pagination:    model.NewPagination(total, page, perPage),
	}, nil
}
