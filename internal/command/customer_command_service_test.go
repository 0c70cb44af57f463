package command

import (
	"context"
	"testing"

	"github.com/eaglebank/bank-account-service/internal/repository"
	"github.com/eaglebank/bank-account-service/shared/cqrs"
	"github.com/eaglebank/bank-account-service/shared/events"
	"github.com/eaglebank/bank-account-service/shared/models"
)

func TestCreateCustomer(t *testing.T) {
	store := repository.NewMemoryStore()
	pub := &recordingPublisher{}
	svc := NewCustomerCommandService(store, pub)

	c, err := svc.CreateCustomer(context.Background(), cqrs.CreateCustomerCommand{Name: "  Hanae "})
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	if c.ID == 0 || c.Name != "Hanae" {
		t.Fatalf("unexpected customer %+v", c)
	}
	if len(pub.events) != 1 || pub.events[0].eventType != events.CustomerCreated {
		t.Fatalf("unexpected events %v", pub.types())
	}

	if _, err := svc.CreateCustomer(context.Background(), cqrs.CreateCustomerCommand{Name: " "}); !models.IsValidation(err) {
		t.Fatalf("expected ValidationError for blank name, got %v", err)
	}
}

func TestDeleteCustomer(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	pub := &recordingPublisher{}
	customers := NewCustomerCommandService(store, pub)
	accounts := NewAccountCommandService(store, store, &mapCache{entries: map[string]models.BankAccount{}}, pub, nil)

	c, _ := customers.CreateCustomer(ctx, cqrs.CreateCustomerCommand{Name: "Imane"})
	acc, err := accounts.AddAccount(ctx, cqrs.AddAccountCommand{CustomerID: c.ID, Request: savingRequest})
	if err != nil {
		t.Fatal(err)
	}

	if err := customers.DeleteCustomer(ctx, cqrs.DeleteCustomerCommand{CustomerID: c.ID}); !models.IsConflict(err) {
		t.Fatalf("expected ConflictError while accounts exist, got %v", err)
	}

	if err := accounts.DeleteAccount(ctx, cqrs.DeleteAccountCommand{AccountID: acc.ID}); err != nil {
		t.Fatal(err)
	}
	if err := customers.DeleteCustomer(ctx, cqrs.DeleteCustomerCommand{CustomerID: c.ID}); err != nil {
		t.Fatalf("DeleteCustomer: %v", err)
	}
	if err := customers.DeleteCustomer(ctx, cqrs.DeleteCustomerCommand{CustomerID: c.ID}); err != nil {
		t.Fatalf("second delete should be a no-op, got %v", err)
	}

	deletes := 0
	for _, e := range pub.events {
		if e.eventType == events.CustomerDeleted {
			deletes++
		}
	}
	if deletes != 1 {
		t.Fatalf("expected exactly one customer.deleted event, got %d", deletes)
	}
}
