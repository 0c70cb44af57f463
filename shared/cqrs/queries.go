package cqrs

// ---------- Customer queries ----------

// ListCustomersQuery fetches every customer.
type ListCustomersQuery struct{}

// GetCustomerQuery fetches a single customer by ID.
type GetCustomerQuery struct {
	CustomerID int64
}

// ---------- Account queries ----------

// ListAccountsQuery fetches every account.
type ListAccountsQuery struct{}

// GetAccountQuery fetches a single account by ID.
type GetAccountQuery struct {
	AccountID string
}

// ListCustomerAccountsQuery fetches the accounts owned by a customer.
type ListCustomerAccountsQuery struct {
	CustomerID int64
}
