package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"github.com/eaglebank/bank-account-service/shared/cqrs"
	"github.com/eaglebank/bank-account-service/shared/models"
)

// SampleCustomers are created, in order, by Run.
var SampleCustomers = []string{"Merouane", "Yassine", "Hanae", "Imane"}

const (
	AccountsPerCustomer = 10
	MaxBalance          = 9000
	Currency            = "MAD"
)

type CustomerCreator interface {
	CreateCustomer(context.Context, cqrs.CreateCustomerCommand) (*models.Customer, error)
}

type AccountCreator interface {
	AddAccount(context.Context, cqrs.AddAccountCommand) (*models.BankAccountResponse, error)
}

// Seeder loads sample customers and accounts through the command services so
// events and cache entries are produced exactly as for API writes.
type Seeder struct {
	customers CustomerCreator
	accounts  AccountCreator
	rnd       *rand.Rand
}

func NewSeeder(customers CustomerCreator, accounts AccountCreator, rnd *rand.Rand) *Seeder {
	return &Seeder{customers: customers, accounts: accounts, rnd: rnd}
}

// Run creates every sample customer with AccountsPerCustomer accounts of a
// random type and a balance in [0, MaxBalance). It stops at the first error.
func (s *Seeder) Run(ctx context.Context) error {
	for _, name := range SampleCustomers {
		customer, err := s.customers.CreateCustomer(ctx, cqrs.CreateCustomerCommand{Name: name})
		if err != nil {
			return fmt.Errorf("seed customer %s: %w", name, err)
		}
		for i := 0; i < AccountsPerCustomer; i++ {
			req := models.BankAccountRequest{
				Balance:  s.rnd.Float64() * MaxBalance,
				Currency: Currency,
				Type:     models.AccountTypes[s.rnd.Intn(len(models.AccountTypes))],
			}
			if _, err := s.accounts.AddAccount(ctx, cqrs.AddAccountCommand{CustomerID: customer.ID, Request: req}); err != nil {
				return fmt.Errorf("seed account for %s: %w", name, err)
			}
		}
	}
	log.Printf("Seeded %d customers with %d accounts each", len(SampleCustomers), AccountsPerCustomer)
	return nil
}
