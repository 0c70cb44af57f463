package events

import "time"

// Event types
const (
	CustomerCreated = "customer.created"
	CustomerDeleted = "customer.deleted"

	AccountCreated = "account.created"
	AccountUpdated = "account.updated"
	AccountDeleted = "account.deleted"

	TransactionCreated = "transaction.created"
	BalanceUpdated     = "balance.updated"
)

// Stream names
const (
	CustomerEventsStream    = "customer.events"
	AccountEventsStream     = "account.events"
	TransactionEventsStream = "transaction.events"
)

// Ledger transaction kinds carried by TransactionCreatedEvent.
const (
	TransactionDeposit    = "deposit"
	TransactionWithdrawal = "withdrawal"
)

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Customer events
type CustomerCreatedEvent struct {
	CustomerID int64  `json:"customerId"`
	Name       string `json:"name"`
}

type CustomerDeletedEvent struct {
	CustomerID int64 `json:"customerId"`
}

// Account events
type AccountCreatedEvent struct {
	AccountID   string  `json:"accountId"`
	CustomerID  int64   `json:"customerId"`
	AccountType string  `json:"type"`
	Balance     float64 `json:"balance"`
	Currency    string  `json:"currency"`
}

type AccountUpdatedEvent struct {
	AccountID   string  `json:"accountId"`
	CustomerID  int64   `json:"customerId"`
	AccountType string  `json:"type"`
	Balance     float64 `json:"balance"`
	Currency    string  `json:"currency"`
}

type AccountDeletedEvent struct {
	AccountID  string `json:"accountId"`
	CustomerID int64  `json:"customerId"`
}

// Transaction events, produced by the ledger and consumed here.
type TransactionCreatedEvent struct {
	TransactionID string  `json:"transactionId"`
	AccountID     string  `json:"accountId"`
	Amount        float64 `json:"amount"`
	Type          string  `json:"type"`
	Currency      string  `json:"currency"`
}

type BalanceUpdatedEvent struct {
	AccountID  string  `json:"accountId"`
	NewBalance float64 `json:"newBalance"`
	Change     float64 `json:"change"`
}
