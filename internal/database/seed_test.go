package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureYAML = `
country: Papua New Guinea
trust_regions: [Lihir]
provinces:
  - name: New Ireland
    districts:
      - name: Namatanai
        villages: [Kono]
        llgs:
          - name: Nimamar Rural
            villages: [Londolovit]
            trust_villages:
              - name: Putput
                trust_region: Lihir
`

func TestParseFixture(t *testing.T) {
	f, err := ParseFixture([]byte(fixtureYAML))
	require.NoError(t, err)

	assert.Equal(t, "Papua New Guinea", f.Country)
	require.Len(t, f.Provinces, 1)
	d := f.Provinces[0].Districts[0]
	assert.Equal(t, "Namatanai", d.Name)
	assert.Equal(t, []string{"Kono"}, d.Villages)
	require.Len(t, d.LLGs, 1)
	assert.Equal(t, "Lihir", d.LLGs[0].TrustVillages[0].TrustRegion)
}

func TestParseFixture_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "malformed", yaml: "provinces: [unterminated"},
		{name: "unnamed province", yaml: "provinces:\n  - districts: []\n"},
		{name: "undeclared trust region", yaml: `
provinces:
  - name: New Ireland
    districts:
      - name: Namatanai
        llgs:
          - name: Nimamar Rural
            trust_villages:
              - name: Putput
                trust_region: Simberi
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFixture([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geography.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixtureYAML), 0o600))

	f, err := LoadFixture(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Lihir"}, f.TrustRegions)

	_, err = LoadFixture(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSeed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	f, err := ParseFixture([]byte(fixtureYAML))
	require.NoError(t, err)

	idRow := func(id int64) *sqlmock.Rows { return sqlmock.NewRows([]string{"id"}).AddRow(id) }

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO countries`).WithArgs("Papua New Guinea").WillReturnRows(idRow(1))
	mock.ExpectQuery(`INSERT INTO trust_regions`).WithArgs("Lihir").WillReturnRows(idRow(2))
	mock.ExpectQuery(`INSERT INTO provinces`).WithArgs("New Ireland", int64(1)).WillReturnRows(idRow(3))
	mock.ExpectQuery(`INSERT INTO districts`).WithArgs("Namatanai", int64(3)).WillReturnRows(idRow(4))
	mock.ExpectQuery(`INSERT INTO villages`).WithArgs("Kono", int64(3), int64(4), nil).WillReturnRows(idRow(5))
	mock.ExpectQuery(`INSERT INTO local_level_governments`).WithArgs("Nimamar Rural", int64(3), int64(4)).WillReturnRows(idRow(6))
	mock.ExpectQuery(`INSERT INTO villages`).WithArgs("Londolovit", int64(3), int64(4), int64(6)).WillReturnRows(idRow(7))
	mock.ExpectQuery(`INSERT INTO trust_villages`).WithArgs("Putput", int64(3), int64(4), int64(6), int64(2)).WillReturnRows(idRow(8))
	mock.ExpectCommit()

	stats, err := Seed(context.Background(), sqlx.NewDb(db, "postgres"), f)
	require.NoError(t, err)

	assert.Equal(t, &SeedStats{TrustRegions: 1, Provinces: 1, Districts: 1, LLGs: 1, Villages: 2, TrustVillages: 1}, stats)
	assert.NoError(t, mock.ExpectationsWereMet())
}
