package command

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/eaglebank/bank-account-service/internal/repository"
	"github.com/eaglebank/bank-account-service/shared/cqrs"
	"github.com/eaglebank/bank-account-service/shared/events"
	"github.com/eaglebank/bank-account-service/shared/models"
	"github.com/eaglebank/bank-account-service/shared/utils"
)

// EventPublisher appends domain events to a stream. *events.Publisher
// implements it.
type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// AccountCache is the part of the read model the write side keeps current.
// *repository.AccountReadRepository implements it.
type AccountCache interface {
	CacheAccount(ctx context.Context, account *models.BankAccount)
	InvalidateAccount(ctx context.Context, id string)
}

// ProcessedTransactions records which ledger transactions were applied.
// *repository.ProcessedTransactions implements it.
type ProcessedTransactions interface {
	IsProcessed(ctx context.Context, transactionID string) bool
	MarkProcessed(ctx context.Context, transactionID string)
}

// AccountCommandService writes account state and keeps the read model in sync.
type AccountCommandService struct {
	accounts  repository.AccountRepository
	customers repository.CustomerRepository
	cache     AccountCache
	publisher EventPublisher
	processed ProcessedTransactions

	now   func() time.Time
	newID func() string
}

// NewAccountCommandService wires the write side. processed may be nil when
// the ledger consumer is not running.
func NewAccountCommandService(
	accounts repository.AccountRepository,
	customers repository.CustomerRepository,
	cache AccountCache,
	publisher EventPublisher,
	processed ProcessedTransactions,
) *AccountCommandService {
	return &AccountCommandService{
		accounts:  accounts,
		customers: customers,
		cache:     cache,
		publisher: publisher,
		processed: processed,
		now:       microsecondNow,
		newID:     utils.GenerateAccountID,
	}
}

// AddAccount opens a new account for an existing customer.
func (s *AccountCommandService) AddAccount(ctx context.Context, cmd cqrs.AddAccountCommand) (*models.BankAccountResponse, error) {
	if err := validateAccountRequest(cmd.Request); err != nil {
		return nil, err
	}
	if err := s.requireCustomer(ctx, cmd.CustomerID); err != nil {
		return nil, err
	}

	account := &models.BankAccount{
		ID:         s.newID(),
		CreatedAt:  s.now(),
		CustomerID: cmd.CustomerID,
	}
	cmd.Request.Apply(account)

	saved, err := s.accounts.SaveAccount(ctx, account)
	if err != nil {
		return nil, err
	}
	s.cache.CacheAccount(ctx, saved)
	if err := s.publisher.Publish(ctx, events.AccountEventsStream, events.AccountCreated, events.AccountCreatedEvent{
		AccountID:   saved.ID,
		CustomerID:  saved.CustomerID,
		AccountType: saved.Type.String(),
		Balance:     saved.Balance,
		Currency:    saved.Currency,
	}); err != nil {
		log.Printf("Failed to publish account.created event: %v", err)
	}
	return models.NewBankAccountResponse(saved), nil
}

// UpdateAccount overwrites balance, currency and type. Identity, creation
// time and owner are left as stored.
func (s *AccountCommandService) UpdateAccount(ctx context.Context, cmd cqrs.UpdateAccountCommand) (*models.BankAccountResponse, error) {
	if err := validateAccountRequest(cmd.Request); err != nil {
		return nil, err
	}
	account, err := s.accounts.FindAccountByID(ctx, cmd.AccountID)
	if err != nil {
		return nil, err
	}
	cmd.Request.Apply(account)

	saved, err := s.accounts.SaveAccount(ctx, account)
	if err != nil {
		return nil, err
	}
	s.cache.CacheAccount(ctx, saved)
	if err := s.publisher.Publish(ctx, events.AccountEventsStream, events.AccountUpdated, events.AccountUpdatedEvent{
		AccountID:   saved.ID,
		CustomerID:  saved.CustomerID,
		AccountType: saved.Type.String(),
		Balance:     saved.Balance,
		Currency:    saved.Currency,
	}); err != nil {
		log.Printf("Failed to publish account.updated event: %v", err)
	}
	return models.NewBankAccountResponse(saved), nil
}

// DeleteAccount removes an account. Deleting an unknown id succeeds and
// publishes nothing.
func (s *AccountCommandService) DeleteAccount(ctx context.Context, cmd cqrs.DeleteAccountCommand) error {
	account, err := s.accounts.FindAccountByID(ctx, cmd.AccountID)
	if err != nil && !models.IsNotFound(err) {
		return err
	}
	if err := s.accounts.DeleteAccountByID(ctx, cmd.AccountID); err != nil {
		return err
	}
	s.cache.InvalidateAccount(ctx, cmd.AccountID)
	if account == nil {
		return nil
	}
	if err := s.publisher.Publish(ctx, events.AccountEventsStream, events.AccountDeleted, events.AccountDeletedEvent{
		AccountID:  account.ID,
		CustomerID: account.CustomerID,
	}); err != nil {
		log.Printf("Failed to publish account.deleted event: %v", err)
	}
	return nil
}

// HandleTransactionEvent reacts to transaction.created events from the
// ledger by adjusting the account balance. Duplicate delivery of the same
// transaction ID is detected and skipped without touching the balance.
func (s *AccountCommandService) HandleTransactionEvent(ctx context.Context, event events.Event) error {
	if event.Type != events.TransactionCreated {
		return nil
	}
	var data events.TransactionCreatedEvent
	if err := events.Decode(event, &data); err != nil {
		return err
	}
	if s.processed != nil && s.processed.IsProcessed(ctx, data.TransactionID) {
		log.Printf("Transaction %s already processed, skipping duplicate event", data.TransactionID)
		return nil
	}

	var change float64
	switch data.Type {
	case events.TransactionDeposit:
		change = data.Amount
	case events.TransactionWithdrawal:
		change = -data.Amount
	default:
		log.Printf("Transaction %s has unknown type %q, skipping", data.TransactionID, data.Type)
		return nil
	}

	account, err := s.accounts.FindAccountByID(ctx, data.AccountID)
	if err != nil {
		if models.IsNotFound(err) {
			log.Printf("Transaction %s targets unknown account %s, skipping", data.TransactionID, data.AccountID)
			return nil
		}
		return fmt.Errorf("failed to get account for balance update: %w", err)
	}
	oldBalance := account.Balance
	account.Balance += change

	saved, err := s.accounts.SaveAccount(ctx, account)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}
	// Record the transaction before refreshing the cache so any redelivery
	// after this point is skipped.
	if s.processed != nil {
		s.processed.MarkProcessed(ctx, data.TransactionID)
	}
	s.cache.CacheAccount(ctx, saved)
	if err := s.publisher.Publish(ctx, events.AccountEventsStream, events.BalanceUpdated, events.BalanceUpdatedEvent{
		AccountID:  saved.ID,
		NewBalance: saved.Balance,
		Change:     change,
	}); err != nil {
		log.Printf("Failed to publish balance.updated event: %v", err)
	}
	log.Printf("Balance updated for account %s: %.2f -> %.2f", saved.ID, oldBalance, saved.Balance)
	return nil
}

func (s *AccountCommandService) requireCustomer(ctx context.Context, customerID int64) error {
	if customerID <= 0 {
		return &models.ValidationError{Field: "customerId", Message: "an owning customer is required"}
	}
	if _, err := s.customers.FindCustomerByID(ctx, customerID); err != nil {
		if models.IsNotFound(err) {
			return &models.ValidationError{Field: "customerId", Message: err.Error()}
		}
		return err
	}
	return nil
}

// maxCurrencyLength matches the max=10 tag on the REST request body.
const maxCurrencyLength = 10

// microsecondNow returns the current UTC time rounded up to the microsecond,
// the resolution of TIMESTAMPTZ, so a stored creation time is never earlier
// than the call.
func microsecondNow() time.Time {
	now := time.Now().UTC()
	if t := now.Truncate(time.Microsecond); !t.Equal(now) {
		return t.Add(time.Microsecond)
	}
	return now
}

func validateAccountRequest(req models.BankAccountRequest) error {
	if !req.Type.Valid() {
		return &models.ValidationError{Field: "type", Message: fmt.Sprintf("unknown account type %q", req.Type)}
	}
	if strings.TrimSpace(req.Currency) == "" {
		return &models.ValidationError{Field: "currency", Message: "currency is required"}
	}
	if utf8.RuneCountInString(req.Currency) > maxCurrencyLength {
		return &models.ValidationError{Field: "currency", Message: fmt.Sprintf("currency must be at most %d characters", maxCurrencyLength)}
	}
	if math.IsNaN(req.Balance) || math.IsInf(req.Balance, 0) {
		return &models.ValidationError{Field: "balance", Message: "balance must be a finite number"}
	}
	return nil
}
