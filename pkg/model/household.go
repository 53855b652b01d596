package model

import "time"

// RelationshipHead is the relationship_to_head value that marks a person as head
const RelationshipHead = "Head"

// Relationships lists the accepted relationship_to_head values
var Relationships = []string{
	RelationshipHead,
	"Wife",
	"Husband",
	"Son",
	"Daughter",
	"Grandchild",
	"Parent",
	"Parent In-Law",
	"Daughter In-Law",
	"Son In-Law",
	"Sister In-Law",
	"Brother In-Law",
	"Brother",
	"Sister",
	"Uncle",
	"Aunt",
	"Niece",
	"Nephew",
	"Cousin",
	"Grandparent",
	"Adopted child",
	"Non relative",
}

// ValidRelationship reports whether value is one of Relationships
func ValidRelationship(value string) bool {
	for _, r := range Relationships {
		if r == value {
			return true
		}
	}
	return false
}

// Person is a community person, linked to at most one household
type Person struct {
	ID                 int64      `db:"id" json:"id"`
	FirstName          string     `db:"first_name" json:"first_name"`
	LastName           string     `db:"last_name" json:"last_name"`
	Sex                string     `db:"sex" json:"sex"`
	RelationshipToHead string     `db:"relationship_to_head" json:"relationship_to_head"`
	AgeGroup           string     `db:"age_group" json:"age_group"`
	DateOfBirth        *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	TrustRegionID      *int64     `db:"trust_region_id" json:"trust_region_id"`
	TrustVillageID     *int64     `db:"trust_village_id" json:"trust_village_id"`
	DwellingID         *int64     `db:"dwelling_id" json:"dwelling_id"`
	HouseholdID        *int64     `db:"household_id" json:"household_id"`
	Occupation         string     `db:"occupation" json:"occupation"`
	EducationLevel     string     `db:"education_level" json:"education_level"`
}

// IsHead reports whether the person's own relationship_to_head says "Head"
func (p Person) IsHead() bool {
	return p.RelationshipToHead == RelationshipHead
}

// FullName returns "First Last"
func (p Person) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Household groups persons under an optional head of household
type Household struct {
	ID                  int64  `db:"id" json:"id"`
	TrustRegionID       *int64 `db:"trust_region_id" json:"trust_region_id"`
	TrustVillageID      *int64 `db:"trust_village_id" json:"trust_village_id"`
	DwellingID          *int64 `db:"dwelling_id" json:"dwelling_id"`
	HouseholdNumber     *int   `db:"household_number" json:"household_number"`
	HeadOfHouseholdID   *int64 `db:"head_of_household_id" json:"head_of_household_id"`
	PrimaryIncomeSource string `db:"primary_income_source" json:"primary_income_source"`
}

// HouseholdSummary is a household row as shown in the household list
type HouseholdSummary struct {
	Household
	TrustRegionName     *string `db:"trust_region_name" json:"trust_region_name"`
	TrustVillageName    *string `db:"trust_village_name" json:"trust_village_name"`
	DwellingNumber      *int    `db:"dwelling_number" json:"dwelling_number"`
	HeadOfHouseholdName *string `db:"head_of_household_name" json:"head_of_household_name"`
	MemberCount         int     `db:"member_count" json:"member_count"`
}

// Composition splits a household's persons into the head and the remaining members
type Composition struct {
	Head        *Person  `json:"head"`
	Members     []Person `json:"members"`
	MemberCount int      `json:"member_count"`
	Warnings    []string `json:"warnings"`
}

// HouseholdDetail is the household detail response
type HouseholdDetail struct {
	HouseholdSummary
	Composition Composition  `json:"composition"`
	BankAccount *BankAccount `json:"bank_account"`
}

// HouseholdFilter narrows the household list
type HouseholdFilter struct {
	TrustRegionID  int64
	TrustVillageID int64
	DwellingID     int64
	Search         string
	Page           int
	PerPage        int
}

// HouseholdListResponse is a page of households
type HouseholdListResponse struct {
	Households []HouseholdSummary `json:"households"`
	Pagination
}

// PersonFilter narrows the person list
type PersonFilter struct {
	HouseholdID        int64
	TrustVillageID     int64
	RelationshipToHead string
	Page               int
	PerPage            int
}

// PersonListResponse is a page of persons
type PersonListResponse struct {
	Persons []Person `json:"persons"`
	Pagination
}

// DwellingOption is an autocomplete entry for dwelling selection
type DwellingOption struct {
	ID   int64  `db:"id" json:"id"`
	Text string `db:"text" json:"text"`
}
