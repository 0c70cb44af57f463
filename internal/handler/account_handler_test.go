package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/eaglebank/bank-account-service/shared/cqrs"
	"github.com/eaglebank/bank-account-service/shared/models"
	"github.com/gin-gonic/gin"
)

// ---- mock implementations ----

type mockAccountCommander struct {
	addFn    func(cqrs.AddAccountCommand) (*models.BankAccountResponse, error)
	updateFn func(cqrs.UpdateAccountCommand) (*models.BankAccountResponse, error)
	deleteFn func(cqrs.DeleteAccountCommand) error
}

func (m *mockAccountCommander) AddAccount(_ context.Context, cmd cqrs.AddAccountCommand) (*models.BankAccountResponse, error) {
	if m.addFn != nil {
		return m.addFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockAccountCommander) UpdateAccount(_ context.Context, cmd cqrs.UpdateAccountCommand) (*models.BankAccountResponse, error) {
	if m.updateFn != nil {
		return m.updateFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockAccountCommander) DeleteAccount(_ context.Context, cmd cqrs.DeleteAccountCommand) error {
	if m.deleteFn != nil {
		return m.deleteFn(cmd)
	}
	return fmt.Errorf("not configured")
}

type mockAccountQuerier struct {
	getFn      func(cqrs.GetAccountQuery) (*models.BankAccount, error)
	listFn     func(cqrs.ListAccountsQuery) ([]models.BankAccount, error)
	customerFn func(cqrs.ListCustomerAccountsQuery) ([]models.BankAccount, error)
}

func (m *mockAccountQuerier) GetAccount(_ context.Context, q cqrs.GetAccountQuery) (*models.BankAccount, error) {
	if m.getFn != nil {
		return m.getFn(q)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockAccountQuerier) ListAccounts(_ context.Context, q cqrs.ListAccountsQuery) ([]models.BankAccount, error) {
	if m.listFn != nil {
		return m.listFn(q)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockAccountQuerier) ListCustomerAccounts(_ context.Context, q cqrs.ListCustomerAccountsQuery) ([]models.BankAccount, error) {
	if m.customerFn != nil {
		return m.customerFn(q)
	}
	return nil, fmt.Errorf("not configured")
}

// ---- helpers ----

func newAccountTestRouter(cmds AccountCommander, qrys AccountQuerier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAccountHandler(cmds, qrys)
	v1 := r.Group("/v1")
	v1.POST("/customers/:customerId/accounts", h.AddAccount)
	v1.GET("/customers/:customerId/accounts", h.ListCustomerAccounts)
	v1.GET("/accounts", h.ListAccounts)
	v1.GET("/accounts/:accountId", h.GetAccount)
	v1.PATCH("/accounts/:accountId", h.UpdateAccount)
	v1.DELETE("/accounts/:accountId", h.DeleteAccount)
	return r
}

func doRequest(router http.Handler, method, url string, body interface{}) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, nil)
	if body != nil {
		b, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, url, strings.NewReader(string(b)))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ---- test data ----

var aTestAccount = &models.BankAccount{
	ID: "0b7c1b8e-9f64-4a61-9b0e-1f3c9a6c2d11", CreatedAt: time.Now().UTC(),
	Balance: 100, Currency: "MAD", Type: models.SavingAccount, CustomerID: 1,
}

var aTestResponse = models.NewBankAccountResponse(aTestAccount)

func aValidAccountBody() map[string]interface{} {
	return map[string]interface{}{"balance": 100.0, "currency": "MAD", "type": "SAVING_ACCOUNT"}
}

// ---- tests ----

func TestAddAccount(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		body           interface{}
		addFn          func(cqrs.AddAccountCommand) (*models.BankAccountResponse, error)
		expectedStatus int
	}{
		{
			name: "success - add account for customer",
			url:  "/v1/customers/1/accounts",
			body: aValidAccountBody(),
			addFn: func(cmd cqrs.AddAccountCommand) (*models.BankAccountResponse, error) {
				if cmd.CustomerID != 1 || cmd.Request.Type != models.SavingAccount || cmd.Request.Balance != 100 {
					return nil, fmt.Errorf("unexpected command %+v", cmd)
				}
				return aTestResponse, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "bad request - invalid customer id",
			url:            "/v1/customers/abc/accounts",
			body:           aValidAccountBody(),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - missing required fields",
			url:            "/v1/customers/1/accounts",
			body:           map[string]interface{}{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad request - invalid account type",
			url:            "/v1/customers/1/accounts",
			body:           map[string]interface{}{"balance": 1.0, "currency": "MAD", "type": "LOAN_ACCOUNT"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "bad request - unknown customer",
			url:  "/v1/customers/99/accounts",
			body: aValidAccountBody(),
			addFn: func(cmd cqrs.AddAccountCommand) (*models.BankAccountResponse, error) {
				return nil, &models.ValidationError{Field: "customerId", Message: "Customer 99 not found"}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "server error - store failure",
			url:  "/v1/customers/1/accounts",
			body: aValidAccountBody(),
			addFn: func(cmd cqrs.AddAccountCommand) (*models.BankAccountResponse, error) {
				return nil, fmt.Errorf("connection refused")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAccountTestRouter(&mockAccountCommander{addFn: tt.addFn}, &mockAccountQuerier{})
			w := doRequest(router, http.MethodPost, tt.url, tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestAddAccountResponseHidesCustomer(t *testing.T) {
	cmds := &mockAccountCommander{addFn: func(cqrs.AddAccountCommand) (*models.BankAccountResponse, error) { return aTestResponse, nil }}
	w := doRequest(newAccountTestRouter(cmds, &mockAccountQuerier{}), http.MethodPost, "/v1/customers/1/accounts", aValidAccountBody())

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, ok := body["customerId"]; ok {
		t.Errorf("response must not expose the owner: %s", w.Body.String())
	}
	for _, k := range []string{"id", "createdAt", "balance", "currency", "type"} {
		if _, ok := body[k]; !ok {
			t.Errorf("response missing %q: %s", k, w.Body.String())
		}
	}
}

func TestListAccounts(t *testing.T) {
	listFn := func(cqrs.ListAccountsQuery) ([]models.BankAccount, error) {
		return []models.BankAccount{*aTestAccount}, nil
	}
	router := newAccountTestRouter(&mockAccountCommander{}, &mockAccountQuerier{listFn: listFn})
	w := doRequest(router, http.MethodGet, "/v1/accounts", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body: %s", w.Code, w.Body.String())
	}
	var resp ListAccountsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || len(resp.Accounts) != 1 {
		t.Fatalf("unexpected body %s (%v)", w.Body.String(), err)
	}
}

func TestListCustomerAccounts(t *testing.T) {
	var seen int64
	fn := func(q cqrs.ListCustomerAccountsQuery) ([]models.BankAccount, error) {
		seen = q.CustomerID
		return []models.BankAccount{}, nil
	}
	router := newAccountTestRouter(&mockAccountCommander{}, &mockAccountQuerier{customerFn: fn})
	w := doRequest(router, http.MethodGet, "/v1/customers/5/accounts", nil)
	if w.Code != http.StatusOK || seen != 5 {
		t.Fatalf("expected 200 for customer 5, got %d (customer %d)", w.Code, seen)
	}
}

func TestGetAccount(t *testing.T) {
	tests := []struct {
		name           string
		accountID      string
		getFn          func(cqrs.GetAccountQuery) (*models.BankAccount, error)
		expectedStatus int
	}{
		{
			name:           "success - fetch account",
			accountID:      aTestAccount.ID,
			getFn:          func(q cqrs.GetAccountQuery) (*models.BankAccount, error) { return aTestAccount, nil },
			expectedStatus: http.StatusOK,
		},
		{
			name:      "not found - account does not exist",
			accountID: "missing",
			getFn: func(q cqrs.GetAccountQuery) (*models.BankAccount, error) {
				return nil, models.AccountNotFound(q.AccountID)
			},
			expectedStatus: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAccountTestRouter(&mockAccountCommander{}, &mockAccountQuerier{getFn: tt.getFn})
			w := doRequest(router, http.MethodGet, "/v1/accounts/"+tt.accountID, nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestUpdateAccount(t *testing.T) {
	tests := []struct {
		name           string
		accountID      string
		body           interface{}
		updateFn       func(cqrs.UpdateAccountCommand) (*models.BankAccountResponse, error)
		expectedStatus int
	}{
		{
			name:           "success - update account",
			accountID:      aTestAccount.ID,
			body:           aValidAccountBody(),
			updateFn:       func(cmd cqrs.UpdateAccountCommand) (*models.BankAccountResponse, error) { return aTestResponse, nil },
			expectedStatus: http.StatusOK,
		},
		{
			name:           "bad request - balance missing",
			accountID:      aTestAccount.ID,
			body:           map[string]interface{}{"currency": "MAD", "type": "CURRENT_ACCOUNT"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:      "not found - account does not exist",
			accountID: "missing",
			body:      aValidAccountBody(),
			updateFn: func(cmd cqrs.UpdateAccountCommand) (*models.BankAccountResponse, error) {
				return nil, models.AccountNotFound(cmd.AccountID)
			},
			expectedStatus: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAccountTestRouter(&mockAccountCommander{updateFn: tt.updateFn}, &mockAccountQuerier{})
			w := doRequest(router, http.MethodPatch, "/v1/accounts/"+tt.accountID, tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestDeleteAccount(t *testing.T) {
	tests := []struct {
		name           string
		deleteFn       func(cqrs.DeleteAccountCommand) error
		expectedStatus int
	}{
		{
			name:           "success - delete account",
			deleteFn:       func(cmd cqrs.DeleteAccountCommand) error { return nil },
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "server error - store failure",
			deleteFn:       func(cmd cqrs.DeleteAccountCommand) error { return fmt.Errorf("connection reset") },
			expectedStatus: http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAccountTestRouter(&mockAccountCommander{deleteFn: tt.deleteFn}, &mockAccountQuerier{})
			w := doRequest(router, http.MethodDelete, "/v1/accounts/"+aTestAccount.ID, nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestMalformedAccountIDNeverReachesServices(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		body           interface{}
		expectedStatus int
	}{
		{"get - not found", http.MethodGet, nil, http.StatusNotFound},
		{"update - not found", http.MethodPatch, aValidAccountBody(), http.StatusNotFound},
		{"delete - no-op", http.MethodDelete, nil, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			cmds := &mockAccountCommander{
				updateFn: func(cqrs.UpdateAccountCommand) (*models.BankAccountResponse, error) {
					called = true
					return aTestResponse, nil
				},
				deleteFn: func(cqrs.DeleteAccountCommand) error { called = true; return nil },
			}
			qrys := &mockAccountQuerier{
				getFn: func(cqrs.GetAccountQuery) (*models.BankAccount, error) { called = true; return aTestAccount, nil },
			}
			w := doRequest(newAccountTestRouter(cmds, qrys), tt.method, "/v1/accounts/not-a-uuid", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
			if called {
				t.Errorf("[%s] service called for a malformed id", tt.name)
			}
			if tt.expectedStatus == http.StatusNotFound && !strings.Contains(w.Body.String(), "Account not-a-uuid not found") {
				t.Errorf("[%s] unexpected body %s", tt.name, w.Body.String())
			}
		})
	}
}
