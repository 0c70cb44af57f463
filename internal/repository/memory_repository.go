package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/eaglebank/bank-account-service/shared/models"
)

// MemoryStore keeps customers and accounts in process memory. It implements
// both CustomerRepository and AccountRepository so the ownership rules can be
// checked under a single lock. Values are copied in and out.
type MemoryStore struct {
	mu        sync.RWMutex
	customers map[int64]models.Customer
	accounts  map[string]models.BankAccount
	nextID    int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		customers: make(map[int64]models.Customer),
		accounts:  make(map[string]models.BankAccount),
	}
}

func (s *MemoryStore) SaveCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *customer
	if c.ID == 0 {
		s.nextID++
		c.ID = s.nextID
	} else if c.ID > s.nextID {
		s.nextID = c.ID
	}
	s.customers[c.ID] = c
	return &c, nil
}

func (s *MemoryStore) FindAllCustomers(ctx context.Context) ([]models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]models.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (s *MemoryStore) FindCustomerByID(ctx context.Context, id int64) (*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers[id]
	if !ok {
		return nil, models.CustomerNotFound(id)
	}
	return &c, nil
}

func (s *MemoryStore) DeleteCustomerByID(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.CustomerID == id {
			return customerHasAccounts(id)
		}
	}
	delete(s.customers, id)
	return nil
}

func (s *MemoryStore) SaveAccount(ctx context.Context, account *models.BankAccount) (*models.BankAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := *account
	if existing, ok := s.accounts[a.ID]; ok {
		a.CreatedAt = existing.CreatedAt
		a.CustomerID = existing.CustomerID
	} else if _, ok := s.customers[a.CustomerID]; !ok {
		return nil, missingCustomer(a.CustomerID)
	}
	s.accounts[a.ID] = a
	return &a, nil
}

func (s *MemoryStore) FindAllAccounts(ctx context.Context) ([]models.BankAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collectAccounts(func(models.BankAccount) bool { return true }), nil
}

func (s *MemoryStore) FindAccountByID(ctx context.Context, id string) (*models.BankAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[id]
	if !ok {
		return nil, models.AccountNotFound(id)
	}
	return &a, nil
}

func (s *MemoryStore) FindAccountsByCustomerID(ctx context.Context, customerID int64) ([]models.BankAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collectAccounts(func(a models.BankAccount) bool { return a.CustomerID == customerID }), nil
}

func (s *MemoryStore) DeleteAccountByID(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.accounts, id)
	return nil
}

// collectAccounts returns matching accounts ordered by creation time then id,
// the same order the Postgres repository uses. Callers hold s.mu.
func (s *MemoryStore) collectAccounts(keep func(models.BankAccount) bool) []models.BankAccount {
	list := make([]models.BankAccount, 0, len(s.accounts))
	for _, a := range s.accounts {
		if keep(a) {
			list = append(list, a)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list
}
