package models

import "time"

// BankAccountRequest is the mutable part of an account as accepted on add and
// update. It has no customer field: ownership is fixed at creation.
type BankAccountRequest struct {
	Balance  float64     `json:"balance"`
	Currency string      `json:"currency"`
	Type     AccountType `json:"type"`
}

// BankAccountResponse is the projection returned from add and update.
type BankAccountResponse struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"createdAt"`
	Balance   float64     `json:"balance"`
	Currency  string      `json:"currency"`
	Type      AccountType `json:"type"`
}

// NewBankAccountResponse projects a stored account onto the response shape.
func NewBankAccountResponse(a *BankAccount) *BankAccountResponse {
	return &BankAccountResponse{
		ID:        a.ID,
		CreatedAt: a.CreatedAt,
		Balance:   a.Balance,
		Currency:  a.Currency,
		Type:      a.Type,
	}
}

// Apply overwrites the mutable fields of a with the request values.
func (r BankAccountRequest) Apply(a *BankAccount) {
	a.Balance = r.Balance
	a.Currency = r.Currency
	a.Type = r.Type
}

// AccountView is the read-model projection of an account held in the Redis
// cache. CustomerID is kept so GraphQL can resolve the owner without a
// second account lookup.
type AccountView struct {
	ID         string      `json:"id"`
	CreatedAt  time.Time   `json:"createdAt"`
	Balance    float64     `json:"balance"`
	Currency   string      `json:"currency"`
	Type       AccountType `json:"type"`
	CustomerID int64       `json:"customerId"`
}

func NewAccountView(a *BankAccount) *AccountView {
	return &AccountView{
		ID:         a.ID,
		CreatedAt:  a.CreatedAt,
		Balance:    a.Balance,
		Currency:   a.Currency,
		Type:       a.Type,
		CustomerID: a.CustomerID,
	}
}

// Account converts the view back to the write model shape.
func (v *AccountView) Account() *BankAccount {
	return &BankAccount{
		ID:         v.ID,
		CreatedAt:  v.CreatedAt,
		Balance:    v.Balance,
		Currency:   v.Currency,
		Type:       v.Type,
		CustomerID: v.CustomerID,
	}
}
