package query

import (
	"context"

	"github.com/eaglebank/bank-account-service/internal/repository"
	"github.com/eaglebank/bank-account-service/shared/cqrs"
	"github.com/eaglebank/bank-account-service/shared/models"
)

type CustomerQueryService struct {
	customers repository.CustomerRepository
}

func NewCustomerQueryService(customers repository.CustomerRepository) *CustomerQueryService {
	return &CustomerQueryService{customers: customers}
}

func (s *CustomerQueryService) ListCustomers(ctx context.Context, q cqrs.ListCustomersQuery) ([]models.Customer, error) {
	return s.customers.FindAllCustomers(ctx)
}

func (s *CustomerQueryService) GetCustomer(ctx context.Context, q cqrs.GetCustomerQuery) (*models.Customer, error) {
	return s.customers.FindCustomerByID(ctx, q.CustomerID)
}
