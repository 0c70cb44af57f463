package query

import (
	"context"

	"github.com/eaglebank/bank-account-service/internal/repository"
	"github.com/eaglebank/bank-account-service/shared/cqrs"
	"github.com/eaglebank/bank-account-service/shared/models"
)

type AccountQueryService struct {
	readRepo *repository.AccountReadRepository
}

func NewAccountQueryService(readRepo *repository.AccountReadRepository) *AccountQueryService {
	return &AccountQueryService{readRepo: readRepo}
}

// GetAccount fetches a single account, failing with *models.NotFoundError
// when the id is unknown.
func (s *AccountQueryService) GetAccount(ctx context.Context, q cqrs.GetAccountQuery) (*models.BankAccount, error) {
	return s.readRepo.GetByID(ctx, q.AccountID)
}

func (s *AccountQueryService) ListAccounts(ctx context.Context, q cqrs.ListAccountsQuery) ([]models.BankAccount, error) {
	return s.readRepo.List(ctx)
}

func (s *AccountQueryService) ListCustomerAccounts(ctx context.Context, q cqrs.ListCustomerAccountsQuery) ([]models.BankAccount, error) {
	return s.readRepo.ListByCustomer(ctx, q.CustomerID)
}
