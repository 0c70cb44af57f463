package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/eaglebank/bank-account-service/shared/models"
	goredis "github.com/redis/go-redis/v9"
)

// countingStore counts FindAccountByID calls so tests can tell cache hits
// from store reads.
type countingStore struct {
	*MemoryStore
	finds int
}

func (s *countingStore) FindAccountByID(ctx context.Context, id string) (*models.BankAccount, error) {
	s.finds++
	return s.MemoryStore.FindAccountByID(ctx, id)
}

func newReadFixture(t *testing.T) (*AccountReadRepository, *countingStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := &countingStore{MemoryStore: NewMemoryStore()}
	owner, _ := store.SaveCustomer(context.Background(), &models.Customer{Name: "Yassine"})
	_, err := store.SaveAccount(context.Background(), &models.BankAccount{
		ID: "acc-1", CreatedAt: time.Now().UTC(), Balance: 10, Currency: "MAD",
		Type: models.CurrentAccount, CustomerID: owner.ID,
	})
	if err != nil {
		t.Fatal(err)
	}
	return NewAccountReadRepository(store, client, 0), store, mr
}

func TestReadRepositoryColdReadDoesNotWriteCache(t *testing.T) {
	repo, store, mr := newReadFixture(t)
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, "acc-1"); err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if mr.Exists(accountViewKeyPrefix + "acc-1") {
		t.Fatal("expected a cold read to leave the cache untouched")
	}
	if store.finds != 1 {
		t.Fatalf("expected cold read from the store, got %d reads", store.finds)
	}
}

func TestReadRepositoryServesCachedView(t *testing.T) {
	repo, store, mr := newReadFixture(t)
	ctx := context.Background()

	acc, _ := store.MemoryStore.FindAccountByID(ctx, "acc-1")
	repo.CacheAccount(ctx, acc)
	if !mr.Exists(accountViewKeyPrefix + "acc-1") {
		t.Fatal("expected CacheAccount to write the view")
	}

	got, err := repo.GetByID(ctx, "acc-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if store.finds != 0 {
		t.Fatalf("expected cache hit, store read %d times", store.finds)
	}
	if got.Balance != 10 || got.CustomerID == 0 {
		t.Fatalf("unexpected cached account %+v", got)
	}
}

func TestReadRepositoryInvalidate(t *testing.T) {
	repo, store, mr := newReadFixture(t)
	ctx := context.Background()

	acc, _ := store.MemoryStore.FindAccountByID(ctx, "acc-1")
	repo.CacheAccount(ctx, acc)
	repo.InvalidateAccount(ctx, acc.ID)
	if mr.Exists(accountViewKeyPrefix + "acc-1") {
		t.Fatal("expected cache entry to be removed")
	}

	_ = store.DeleteAccountByID(ctx, "acc-1")
	if _, err := repo.GetByID(ctx, "acc-1"); !models.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestReadRepositoryWithoutRedis(t *testing.T) {
	store := NewMemoryStore()
	repo := NewAccountReadRepository(store, nil, 0)
	ctx := context.Background()

	repo.CacheAccount(ctx, &models.BankAccount{ID: "x"})
	repo.InvalidateAccount(ctx, "x")
	if _, err := repo.GetByID(ctx, "x"); !models.IsNotFound(err) {
		t.Fatalf("expected pass-through NotFoundError, got %v", err)
	}
	list, err := repo.List(ctx)
	if err != nil || len(list) != 0 {
		t.Fatalf("unexpected list %v, %v", list, err)
	}
}

func TestProcessedTransactions(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()
	ctx := context.Background()

	p := NewProcessedTransactions(client)
	if p.IsProcessed(ctx, "tx-1") {
		t.Fatal("expected unseen transaction")
	}
	p.MarkProcessed(ctx, "tx-1")
	if !p.IsProcessed(ctx, "tx-1") {
		t.Fatal("expected transaction to be marked")
	}

	mr.FastForward(73 * time.Hour)
	if p.IsProcessed(ctx, "tx-1") {
		t.Fatal("expected marker to expire")
	}
}
