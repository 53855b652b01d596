package model

// Organization is a named party with contact details. Companies share the shape
// and act as tenement lease holders.
type Organization struct {
	ID      int64   `db:"id" json:"id"`
	Name    string  `db:"name" json:"name"`
	Address *string `db:"address" json:"address"`
	Phone   *string `db:"phone" json:"phone"`
	Email   *string `db:"email" json:"email"`
}

// DirectoryFilter narrows a directory list by a search term
type DirectoryFilter struct {
	Search  string
	Page    int
	PerPage int
}

// OrganizationListResponse is a page of organizations or companies
type OrganizationListResponse struct {
	Organizations []Organization `json:"organizations"`
	Pagination
}

// LandOwnerListResponse is a page of land owners
type LandOwnerListResponse struct {
	LandOwners []LookupItem `json:"land_owners"`
	Pagination
}
