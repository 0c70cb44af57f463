package repository

import (
	"context"
	"strconv"

	"github.com/eaglebank/bank-account-service/shared/models"
)

// CustomerRepository persists customers. Implementations return
// *models.NotFoundError for unknown ids and *models.ConflictError when a
// customer that still owns accounts is deleted.
type CustomerRepository interface {
	SaveCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	FindAllCustomers(ctx context.Context) ([]models.Customer, error)
	FindCustomerByID(ctx context.Context, id int64) (*models.Customer, error)
	DeleteCustomerByID(ctx context.Context, id int64) error
}

// AccountRepository persists bank accounts. SaveAccount returns
// *models.ValidationError when the owning customer does not resolve and
// never overwrites CreatedAt or CustomerID of an existing record.
// DeleteAccountByID is a no-op for unknown ids.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account *models.BankAccount) (*models.BankAccount, error)
	FindAllAccounts(ctx context.Context) ([]models.BankAccount, error)
	FindAccountByID(ctx context.Context, id string) (*models.BankAccount, error)
	FindAccountsByCustomerID(ctx context.Context, customerID int64) ([]models.BankAccount, error)
	DeleteAccountByID(ctx context.Context, id string) error
}

func missingCustomer(id int64) error {
	if id == 0 {
		return &models.ValidationError{Field: "customerId", Message: "an owning customer is required"}
	}
	return &models.ValidationError{Field: "customerId", Message: models.CustomerNotFound(id).Error()}
}

func customerHasAccounts(id int64) error {
	return &models.ConflictError{
		Resource: "Customer",
		ID:       strconv.FormatInt(id, 10),
		Message:  "customer still owns accounts",
	}
}
