package cqrs

import "github.com/eaglebank/bank-account-service/shared/models"

type CreateCustomerCommand struct {
	Name string
}

type DeleteCustomerCommand struct {
	CustomerID int64
}

// AddAccountCommand opens an account for CustomerID. The owner travels beside
// the request rather than inside it so it can never be set through an update.
type AddAccountCommand struct {
	CustomerID int64
	Request    models.BankAccountRequest
}

type UpdateAccountCommand struct {
	AccountID string
	Request   models.BankAccountRequest
}

type DeleteAccountCommand struct {
	AccountID string
}
