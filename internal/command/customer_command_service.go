package command

import (
	"context"
	"log"
	"strings"

	"github.com/eaglebank/bank-account-service/internal/repository"
	"github.com/eaglebank/bank-account-service/shared/cqrs"
	"github.com/eaglebank/bank-account-service/shared/events"
	"github.com/eaglebank/bank-account-service/shared/models"
)

// CustomerCommandService writes customer state.
type CustomerCommandService struct {
	customers repository.CustomerRepository
	publisher EventPublisher
}

func NewCustomerCommandService(customers repository.CustomerRepository, publisher EventPublisher) *CustomerCommandService {
	return &CustomerCommandService{customers: customers, publisher: publisher}
}

func (s *CustomerCommandService) CreateCustomer(ctx context.Context, cmd cqrs.CreateCustomerCommand) (*models.Customer, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, &models.ValidationError{Field: "name", Message: "name is required"}
	}
	customer, err := s.customers.SaveCustomer(ctx, &models.Customer{Name: name})
	if err != nil {
		return nil, err
	}
	if err := s.publisher.Publish(ctx, events.CustomerEventsStream, events.CustomerCreated, events.CustomerCreatedEvent{
		CustomerID: customer.ID,
		Name:       customer.Name,
	}); err != nil {
		log.Printf("Failed to publish customer.created event: %v", err)
	}
	return customer, nil
}

// DeleteCustomer removes a customer that owns no accounts. A customer with
// accounts yields *models.ConflictError; an unknown id succeeds silently.
func (s *CustomerCommandService) DeleteCustomer(ctx context.Context, cmd cqrs.DeleteCustomerCommand) error {
	_, err := s.customers.FindCustomerByID(ctx, cmd.CustomerID)
	if models.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := s.customers.DeleteCustomerByID(ctx, cmd.CustomerID); err != nil {
		return err
	}
	if err := s.publisher.Publish(ctx, events.CustomerEventsStream, events.CustomerDeleted, events.CustomerDeletedEvent{
		CustomerID: cmd.CustomerID,
	}); err != nil {
		log.Printf("Failed to publish customer.deleted event: %v", err)
	}
	return nil
}
