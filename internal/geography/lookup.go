package geography

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/algoreed/crs/pkg/model"
)

// Lookup resolves child regions for dependent selection controls
type Lookup interface {
	Children(ctx context.Context, rel Relation, parentID int64) ([]model.LookupItem, error)
	TrustRegions(ctx context.Context) ([]model.TrustRegion, error)
}

// LookupService reads region hierarchies from the database
type LookupService struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewLookupService creates a new lookup service
func NewLookupService(db *sqlx.DB, logger *zap.Logger) *LookupService {
	return &LookupService{
		db:     db,
		logger: logger,
	}
}

// Children returns the id/name of every row of rel.Table whose parent column equals parentID,
// ordered by name. An unknown parent yields an empty, non-nil slice.
func (s *LookupService) Children(ctx context.Context, rel Relation, parentID int64) ([]model.LookupItem, error) {
	if !rel.known() {
		return nil, fmt.Errorf("unknown relation %q", rel.Name)
	}

	items := make([]model.LookupItem, 0)
	query := fmt.Sprintf("SELECT id, name FROM %s WHERE %s = $1 ORDER BY name, id", rel.Table, rel.Column)
	if err := s.db.SelectContext(ctx, &items, query, parentID); err != nil {
		return nil, fmt.Errorf("select %s: %w", rel.Name, err)
	}

	s.logger.Debug("region lookup",
		zap.String("relation", rel.Name),
		zap.Int64("parent_id", parentID),
		zap.Int("count", len(items)))
	return items, nil
}

// TrustRegions returns every trust region ordered by name
func (s *LookupService) TrustRegions(ctx context.Context) ([]model.TrustRegion, error) {
	regions := make([]model.TrustRegion, 0)
	if err := s.db.SelectContext(ctx, &regions, "SELECT id, name FROM trust_regions ORDER BY name, id"); err != nil {
		return nil, fmt.Errorf("select trust regions: %w", err)
	}
	return regions, nil
}

// ParseParentID parses a parent id query value. Absent, non-numeric and
// non-positive values are reported as not ok; callers answer those with an empty list.
func ParseParentID(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
