package database

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"gopkg.in/yaml.v3"
)

// Fixture is a geography tree loaded from YAML, e.g.
//
//	country: Papua New Guinea
//	trust_regions: [Lihir]
//	provinces:
//	  - name: New Ireland
//	    districts:
//	      - name: Namatanai
//	        llgs:
//	          - name: Nimamar Rural
//	            villages: [Londolovit]
//	            trust_villages:
//	              - name: Putput
//	                trust_region: Lihir
type Fixture struct {
	Country      string            `yaml:"country"`
	TrustRegions []string          `yaml:"trust_regions"`
	Provinces    []ProvinceFixture `yaml:"provinces"`
}

type ProvinceFixture struct {
	Name      string            `yaml:"name"`
	Districts []DistrictFixture `yaml:"districts"`
}

type DistrictFixture struct {
	Name string       `yaml:"name"`
	LLGs []LLGFixture `yaml:"llgs"`
	// Villages not assigned to any LLG
	Villages []string `yaml:"villages"`
}

type LLGFixture struct {
	Name          string                `yaml:"name"`
	Villages      []string              `yaml:"villages"`
	TrustVillages []TrustVillageFixture `yaml:"trust_villages"`
}

type TrustVillageFixture struct {
	Name        string `yaml:"name"`
	TrustRegion string `yaml:"trust_region"`
}

// SeedStats counts the rows written by Seed
type SeedStats struct {
	TrustRegions  int
	Provinces     int
	Districts     int
	LLGs          int
	Villages      int
	TrustVillages int
}

// LoadFixture reads and validates a YAML fixture
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture decodes and validates YAML fixture data
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks names are present and trust villages reference declared trust regions
func (f *Fixture) Validate() error {
	regions := make(map[string]bool, len(f.TrustRegions))
	for _, r := range f.TrustRegions {
		if r == "" {
			return errors.New("trust region without a name")
		}
		regions[r] = true
	}

	for _, p := range f.Provinces {
		if p.Name == "" {
			return errors.New("province without a name")
		}
		for _, d := range p.Districts {
			if d.Name == "" {
				return fmt.Errorf("district without a name in province %q", p.Name)
			}
			for _, l := range d.LLGs {
				if l.Name == "" {
					return fmt.Errorf("llg without a name in district %q", d.Name)
				}
				for _, tv := range l.TrustVillages {
					if tv.Name == "" {
						return fmt.Errorf("trust village without a name in llg %q", l.Name)
					}
					if tv.TrustRegion != "" && !regions[tv.TrustRegion] {
						return fmt.Errorf("trust village %q references undeclared trust region %q", tv.Name, tv.TrustRegion)
					}
				}
			}
		}
	}
	return nil
}

// Seed upserts the fixture by name inside one transaction
func Seed(ctx context.Context, db *sqlx.DB, f *Fixture) (*SeedStats, error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	stats := &SeedStats{}
	upsert := func(query string, args ...interface{}) (int64, error) {
		var id int64
		err := tx.GetContext(ctx, &id, query, args...)
		return id, err
	}

	var countryID *int64
	if f.Country != "" {
		id, err := upsert(`INSERT INTO countries (name) VALUES ($1)
            ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id`, f.Country)
		if err != nil {
			return nil, fmt.Errorf("seed country %q: %w", f.Country, err)
		}
		countryID = &id
	}

	regionIDs := make(map[string]int64, len(f.TrustRegions))
	for _, name := range f.TrustRegions {
		id, err := upsert(`INSERT INTO trust_regions (name) VALUES ($1)
            ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id`, name)
		if err != nil {
			return nil, fmt.Errorf("seed trust region %q: %w", name, err)
		}
		regionIDs[name] = id
		stats.TrustRegions++
	}

	for _, p := range f.Provinces {
		provinceID, err := upsert(`INSERT INTO provinces (name, country_id) VALUES ($1, $2)
            ON CONFLICT (name) DO UPDATE SET country_id = EXCLUDED.country_id RETURNING id`, p.Name, countryID)
		if err != nil {
			return nil, fmt.Errorf("seed province %q: %w", p.Name, err)
		}
		stats.Provinces++

		for _, d := range p.Districts {
			districtID, err := upsert(`INSERT INTO districts (name, province_id) VALUES ($1, $2)
                ON CONFLICT (name) DO UPDATE SET province_id = EXCLUDED.province_id RETURNING id`, d.Name, provinceID)
			if err != nil {
				return nil, fmt.Errorf("seed district %q: %w", d.Name, err)
			}
			stats.Districts++

			for _, v := range d.Villages {
				if err := seedVillage(upsert, v, provinceID, districtID, nil); err != nil {
					return nil, err
				}
				stats.Villages++
			}

			for _, l := range d.LLGs {
				llgID, err := upsert(`INSERT INTO local_level_governments (name, province_id, district_id) VALUES ($1, $2, $3)
                    ON CONFLICT (name) DO UPDATE SET province_id = EXCLUDED.province_id, district_id = EXCLUDED.district_id
                    RETURNING id`, l.Name, provinceID, districtID)
				if err != nil {
					return nil, fmt.Errorf("seed llg %q: %w", l.Name, err)
				}
				stats.LLGs++

				for _, v := range l.Villages {
					if err := seedVillage(upsert, v, provinceID, districtID, &llgID); err != nil {
						return nil, err
					}
					stats.Villages++
				}

				for _, tv := range l.TrustVillages {
					var regionID *int64
					if id, ok := regionIDs[tv.TrustRegion]; ok {
						regionID = &id
					}
					_, err := upsert(`INSERT INTO trust_villages (name, province_id, district_id, llg_id, trust_region_id)
                        VALUES ($1, $2, $3, $4, $5)
                        ON CONFLICT (name) DO UPDATE SET province_id = EXCLUDED.province_id, district_id = EXCLUDED.district_id,
                            llg_id = EXCLUDED.llg_id, trust_region_id = EXCLUDED.trust_region_id
                        RETURNING id`, tv.Name, provinceID, districtID, llgID, regionID)
					if err != nil {
						return nil, fmt.Errorf("seed trust village %q: %w", tv.Name, err)
					}
					stats.TrustVillages++
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit seed: %w", err)
	}
	return stats, nil
}

func seedVillage(upsert func(string, ...interface{}) (int64, error), name string, provinceID, districtID int64, llgID *int64) error {
	_, err := upsert(`INSERT INTO villages (name, province_id, district_id, llg_id) VALUES ($1, $2, $3, $4)
        ON CONFLICT (name) DO UPDATE SET province_id = EXCLUDED.province_id, district_id = EXCLUDED.district_id,
            llg_id = EXCLUDED.llg_id
        RETURNING id`, name, provinceID, districtID, llgID)
	if err != nil {
		return fmt.Errorf("seed village %q: %w", name, err)
	}
	return nil
}
