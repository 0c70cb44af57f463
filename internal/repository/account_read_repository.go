package repository

import (
	"context"
	"log"
	"time"

	"github.com/eaglebank/bank-account-service/shared/models"
	sharedredis "github.com/eaglebank/bank-account-service/shared/redis"
	goredis "github.com/redis/go-redis/v9"
)

const accountViewKeyPrefix = "account:view:"

// AccountReadRepository serves account reads. With Redis configured it uses
// the cache as the first read store and falls back to the write store.
// Reads never write the cache; entries come only from CacheAccount, which the
// command side calls after each write. Without Redis it reads straight
// through.
type AccountReadRepository struct {
	store AccountRepository
	cache *sharedredis.ViewCache[models.AccountView]
}

// NewAccountReadRepository builds a read repository over store. redisClient
// may be nil.
func NewAccountReadRepository(store AccountRepository, redisClient *goredis.Client, ttl time.Duration) *AccountReadRepository {
	r := &AccountReadRepository{store: store}
	if redisClient != nil {
		r.cache = sharedredis.NewViewCache[models.AccountView](redisClient, accountViewKeyPrefix, ttl)
	}
	return r
}

// GetByID returns an account, trying Redis first then the write store.
func (r *AccountReadRepository) GetByID(ctx context.Context, id string) (*models.BankAccount, error) {
	if r.cache != nil {
		if view, ok := r.cache.Get(ctx, id); ok {
			return view.Account(), nil
		}
	}

	return r.store.FindAccountByID(ctx, id)
}

// List always reads the write store; the cache only holds single accounts.
func (r *AccountReadRepository) List(ctx context.Context) ([]models.BankAccount, error) {
	return r.store.FindAllAccounts(ctx)
}

func (r *AccountReadRepository) ListByCustomer(ctx context.Context, customerID int64) ([]models.BankAccount, error) {
	return r.store.FindAccountsByCustomerID(ctx, customerID)
}

// CacheAccount stores or refreshes the read model for an account. Called by
// the command side after every write so reads never see a stale entry.
func (r *AccountReadRepository) CacheAccount(ctx context.Context, account *models.BankAccount) {
	if r.cache == nil {
		return
	}
	r.cache.Set(ctx, account.ID, models.NewAccountView(account))
}

// InvalidateAccount removes the read model entry for a deleted account.
func (r *AccountReadRepository) InvalidateAccount(ctx context.Context, id string) {
	if r.cache == nil {
		return
	}
	r.cache.Delete(ctx, id)
}

const processedTxnKeyPrefix = "processed:txn:"

// ProcessedTransactions remembers which ledger transactions have already been
// applied to a balance.
type ProcessedTransactions struct {
	redis *goredis.Client
	ttl   time.Duration
}

// NewProcessedTransactions keeps markers for 72 hours.
func NewProcessedTransactions(redisClient *goredis.Client) *ProcessedTransactions {
	return &ProcessedTransactions{redis: redisClient, ttl: 72 * time.Hour}
}

func (p *ProcessedTransactions) IsProcessed(ctx context.Context, transactionID string) bool {
	val, err := p.redis.Exists(ctx, processedTxnKeyPrefix+transactionID).Result()
	return err == nil && val > 0
}

func (p *ProcessedTransactions) MarkProcessed(ctx context.Context, transactionID string) {
	key := processedTxnKeyPrefix + transactionID
	if err := p.redis.Set(ctx, key, "1", p.ttl).Err(); err != nil {
		log.Printf("Failed to mark transaction %s as processed: %v", transactionID, err)
	}
}
