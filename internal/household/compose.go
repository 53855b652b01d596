package household

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/algoreed/crs/pkg/model"
)

// Compose splits the persons linked to h into the head view and the members view.
//
// The head view is the person whose id equals h.HeadOfHouseholdID. The members view is
// every other linked person, ordered with relationship_to_head == "Head" first, then
// by first name and last name. The two "head" signals are independent in the data;
// disagreements between them are reported in Warnings and left as they are.
func Compose(h model.Household, persons []model.Person) model.Composition {
	comp := model.Composition{
		Members:  make([]model.Person, 0, len(persons)),
		Warnings: make([]string, 0),
	}

	for _, p := range persons {
		if p.HouseholdID == nil || *p.HouseholdID != h.ID {
			continue
		}
		comp.MemberCount++

		if h.HeadOfHouseholdID != nil && p.ID == *h.HeadOfHouseholdID {
			head := p
			comp.Head = &head
			if !p.IsHead() {
				comp.Warnings = append(comp.Warnings, fmt.Sprintf(
					"head_of_household %d has relationship_to_head %q", p.ID, p.RelationshipToHead))
			}
			continue
		}

		if p.IsHead() {
			comp.Warnings = append(comp.Warnings, fmt.Sprintf(
				"person %d has relationship_to_head %q but is not the household's head_of_household",
				p.ID, model.RelationshipHead))
		}
		comp.Members = append(comp.Members, p)
	}

	if h.HeadOfHouseholdID != nil && comp.Head == nil {
		comp.Warnings = append(comp.Warnings, fmt.Sprintf(
			"head_of_household %d is not linked to household %d", *h.HeadOfHouseholdID, h.ID))
	}

	SortMembers(comp.Members)
	return comp
}

// SortMembers orders persons with relationship_to_head == "Head" first, then by
// first name, last name and id. Names compare bytewise, matching the COLLATE "C"
// ordering of ListPersons.
func SortMembers(persons []model.Person) {
	slices.SortStableFunc(persons, func(a, b model.Person) int {
		if a.IsHead() != b.IsHead() {
			if a.IsHead() {
				return -1
			}
			return 1
		}
		return cmp.Or(
			strings.Compare(a.FirstName, b.FirstName),
			strings.Compare(a.LastName, b.LastName),
			cmp.Compare(a.ID, b.ID),
		)
	})
}
