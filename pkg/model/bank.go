package model

// BankAccount is the bank account recorded for a household, joined to its bank
type BankAccount struct {
	ID                  int64   `db:"id" json:"id"`
	AccountName         string  `db:"account_name" json:"account_name"`
	AccountNumber       string  `db:"account_number" json:"account_number"`
	BankID              *int64  `db:"bank_id" json:"bank_id"`
	BankName            *string `db:"bank_name" json:"bank_name"`
	BankInitials        *string `db:"bank_initials" json:"bank_initials"`
	AccountNumberLength *int    `db:"account_number_length" json:"account_number_length"`
	Branch              string  `db:"branch" json:"branch"`
	Status              string  `db:"status" json:"status"`

	AccountNumberValid bool   `db:"-" json:"account_number_valid"`
	Warning            string `db:"-" json:"warning,omitempty"`
}
