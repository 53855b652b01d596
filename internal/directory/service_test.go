package directory

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

func TestList_Companies(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewService(sqlx.NewDb(db, "postgres"), zap.NewNop())

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM companies WHERE 1=1 AND \(name ILIKE \$1 OR email ILIKE \$1 OR phone ILIKE \$1 OR address ILIKE \$1\)`).
		WithArgs("%gold%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`FROM companies WHERE 1=1 .* ORDER BY name, id LIMIT \$2 OFFSET \$3`).
		WithArgs("%gold%", 50, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "address", "phone", "email"}).
			AddRow(9, "Lihir Gold Limited", nil, "+675 986 5000", nil))

	resp, err := svc.List(context.Background(), Companies, model.DirectoryFilter{Search: "gold"})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Organizations, 1)
	assert.Equal(t, "Lihir Gold Limited", resp.Organizations[0].Name)
	assert.Nil(t, resp.Organizations[0].Email)
	assert.Equal(t, "+675 986 5000", *resp.Organizations[0].Phone)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_OrganizationsPaging(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewService(sqlx.NewDb(db, "postgres"), zap.NewNop())

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM organizations WHERE 1=1$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(`FROM organizations`).
		WithArgs(5, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "address", "phone", "email"}))

	resp, err := svc.List(context.Background(), Organizations, model.DirectoryFilter{Page: 3, PerPage: 5})
	require.NoError(t, err)

	assert.Empty(t, resp.Organizations)
	assert.NotNil(t, resp.Organizations)
	assert.Equal(t, 3, resp.TotalPages)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_UnknownKind(t *testing.T) {
	svc := NewService(nil, zap.NewNop())
	_, err := svc.List(context.Background(), Kind{Name: "users", Table: "users"}, model.DirectoryFilter{})
	assert.ErrorIs(t, err, ErrUnknownKind)
}
