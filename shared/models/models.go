package models

import "time"

// AccountType is the closed set of account kinds a BankAccount can have.
type AccountType string

const (
	CurrentAccount AccountType = "CURRENT_ACCOUNT"
	SavingAccount  AccountType = "SAVING_ACCOUNT"
)

// AccountTypes lists every AccountType in declaration order.
var AccountTypes = []AccountType{CurrentAccount, SavingAccount}

// Valid reports whether t is one of the declared account types.
func (t AccountType) Valid() bool {
	switch t {
	case CurrentAccount, SavingAccount:
		return true
	default:
		return false
	}
}

func (t AccountType) String() string { return string(t) }

type Customer struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BankAccount is the write model of an account. CustomerID is set once at
// creation and never changes afterwards.
type BankAccount struct {
	ID         string      `json:"id"`
	CreatedAt  time.Time   `json:"createdAt"`
	Balance    float64     `json:"balance"`
	Currency   string      `json:"currency"`
	Type       AccountType `json:"type"`
	CustomerID int64       `json:"customerId"`
}
