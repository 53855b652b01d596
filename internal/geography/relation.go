package geography

// Relation names a parent -> child region pair and the column holding the parent reference
type Relation struct {
	Name   string
	Table  string
	Column string
	// Param is the query parameter carrying the parent id
	Param string
}

var (
	DistrictsByProvince = Relation{Name: "districts_by_province", Table: "districts", Column: "province_id", Param: "province_id"}
	LLGsByDistrict      = Relation{Name: "llgs_by_district", Table: "local_level_governments", Column: "district_id", Param: "district_id"}

	VillagesByDistrict      = Relation{Name: "villages_by_district", Table: "villages", Column: "district_id", Param: "district_id"}
	TrustVillagesByDistrict = Relation{Name: "trust_villages_by_district", Table: "trust_villages", Column: "district_id", Param: "district_id"}

	VillagesByLLG      = Relation{Name: "villages_by_llg", Table: "villages", Column: "llg_id", Param: "llg_id"}
	TrustVillagesByLLG = Relation{Name: "trust_villages_by_llg", Table: "trust_villages", Column: "llg_id", Param: "llg_id"}
)

// Relations lists every supported parent -> child lookup
var Relations = []Relation{
	DistrictsByProvince,
	LLGsByDistrict,
	VillagesByDistrict,
	TrustVillagesByDistrict,
	VillagesByLLG,
	TrustVillagesByLLG,
}

func (r Relation) known() bool {
	for _, rel := range Relations {
		if rel == r {
			return true
		}
	}
	return false
}
