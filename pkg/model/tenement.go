package model

import "time"

// Tenement is a land or mining tenement together with its acquisition's rental terms
type Tenement struct {
	ID             int64      `db:"id" json:"id"`
	Title          string     `db:"title" json:"title"`
	LandName       string     `db:"land_name" json:"land_name"`
	TypeOfTenement string     `db:"type_of_tenement" json:"type_of_tenement"`
	LeaseHolderID  *int64     `db:"lease_holder_id" json:"lease_holder_id"`
	LeaseHolder    *string    `db:"lease_holder" json:"lease_holder"`
	ProvinceName   *string    `db:"province_name" json:"province_name"`
	DistrictName   *string    `db:"district_name" json:"district_name"`
	LLGName        *string    `db:"llg_name" json:"llg_name"`
	RentalAmount   *float64   `db:"rental_amount" json:"rental_amount"`
	RentalDueDate  *time.Time `db:"rental_due_date" json:"rental_due_date"`

	DaysUntilRentalDue *int   `db:"-" json:"days_until_rental_due"`
	RentalDueAlert     string `db:"-" json:"rental_due_alert"`
}

// TenementFilter narrows the tenement list
type TenementFilter struct {
	TypeOfTenement string
	ProvinceID     int64
	DistrictID     int64
	LLGID          int64
	Search         string
	Page           int
	PerPage        int
}

// TenementListResponse is a page of tenements
type TenementListResponse struct {
	Tenements []Tenement `json:"tenements"`
	Pagination
}

// Payment methods and statuses accepted on tenement rental payments
var (
	PaymentMethods  = []string{"Bank Transfer", "Cash", "Cheque", "Online Payment"}
	PaymentStatuses = []string{"Pending", "Completed", "Failed"}
)

// TenementRental is a rental payment made against a tenement
type TenementRental struct {
	ID            int64     `db:"id" json:"id"`
	TenementID    *int64    `db:"tenement_id" json:"tenement_id"`
	TenementTitle *string   `db:"tenement_title" json:"tenement_title"`
	PaymentDate   time.Time `db:"payment_date" json:"payment_date"`
	AmountPaid    float64   `db:"amount_paid" json:"amount_paid"`
	PaymentMethod *string   `db:"payment_method" json:"payment_method"`
	ReceiptNumber *string   `db:"receipt_number" json:"receipt_number"`
	PayerDetails  *string   `db:"payer_details" json:"payer_details"`
	PaymentStatus *string   `db:"payment_status" json:"payment_status"`
	Notes         *string   `db:"notes" json:"notes"`
}

// RentalFilter narrows the rental payment list
type RentalFilter struct {
	TenementID    int64
	PaymentMethod string
	PaymentStatus string
	Search        string
	Page          int
	PerPage       int
}

// RentalListResponse is a page of rental payments
type RentalListResponse struct {
	Rentals []TenementRental `json:"rentals"`
	Pagination
}
