package model

// LookupItem is the id/name pair served to dependent selection controls
type LookupItem struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// TrustRegion is a non-geographic grouping of trust villages used for
// benefit-distribution bookkeeping
type TrustRegion struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
