package handler

import (
	"context"
	"net/http"

	"github.com/eaglebank/bank-account-service/shared/cqrs"
	"github.com/eaglebank/bank-account-service/shared/middleware"
	"github.com/eaglebank/bank-account-service/shared/models"
	"github.com/eaglebank/bank-account-service/shared/utils"
	"github.com/gin-gonic/gin"
)

// AccountCommander defines the write-side operations used by the handlers.
type AccountCommander interface {
	AddAccount(context.Context, cqrs.AddAccountCommand) (*models.BankAccountResponse, error)
	UpdateAccount(context.Context, cqrs.UpdateAccountCommand) (*models.BankAccountResponse, error)
	DeleteAccount(context.Context, cqrs.DeleteAccountCommand) error
}

// AccountQuerier defines the read-side operations used by the handlers.
type AccountQuerier interface {
	GetAccount(context.Context, cqrs.GetAccountQuery) (*models.BankAccount, error)
	ListAccounts(context.Context, cqrs.ListAccountsQuery) ([]models.BankAccount, error)
	ListCustomerAccounts(context.Context, cqrs.ListCustomerAccountsQuery) ([]models.BankAccount, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	commands AccountCommander
	queries  AccountQuerier
}

// AccountRequest is the REST body for add and update. Every field is
// required because update overwrites all of them.
type AccountRequest struct {
	Balance  *float64 `json:"balance" validate:"required"`
	Currency string   `json:"currency" validate:"required,max=10"`
	Type     string   `json:"type" validate:"required,oneof=CURRENT_ACCOUNT SAVING_ACCOUNT"`
}

func (r AccountRequest) toModel() models.BankAccountRequest {
	return models.BankAccountRequest{
		Balance:  *r.Balance,
		Currency: r.Currency,
		Type:     models.AccountType(r.Type),
	}
}

type ListAccountsResponse struct {
	Accounts []models.BankAccount `json:"accounts"`
}

func NewAccountHandler(commands AccountCommander, queries AccountQuerier) *AccountHandler {
	return &AccountHandler{commands: commands, queries: queries}
}

func (h *AccountHandler) AddAccount(c *gin.Context) {
	customerID, ok := utils.ParseCustomerID(c.Param("customerId"))
	if !ok {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid customer id")
		return
	}
	req, ok := bindAccountRequest(c)
	if !ok {
		return
	}

	resp, err := h.commands.AddAccount(c.Request.Context(), cqrs.AddAccountCommand{
		CustomerID: customerID,
		Request:    req.toModel(),
	})
	if err != nil {
		middleware.RespondWithDomainError(c, err, "Failed to create account")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *AccountHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.queries.ListAccounts(c.Request.Context(), cqrs.ListAccountsQuery{})
	if err != nil {
		middleware.RespondWithDomainError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, ListAccountsResponse{Accounts: accounts})
}

func (h *AccountHandler) ListCustomerAccounts(c *gin.Context) {
	customerID, ok := utils.ParseCustomerID(c.Param("customerId"))
	if !ok {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid customer id")
		return
	}
	accounts, err := h.queries.ListCustomerAccounts(c.Request.Context(), cqrs.ListCustomerAccountsQuery{CustomerID: customerID})
	if err != nil {
		middleware.RespondWithDomainError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, ListAccountsResponse{Accounts: accounts})
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	accountID := c.Param("accountId")
	if err := checkAccountID(accountID); err != nil {
		middleware.RespondWithDomainError(c, err, "Failed to get account")
		return
	}
	account, err := h.queries.GetAccount(c.Request.Context(), cqrs.GetAccountQuery{AccountID: accountID})
	if err != nil {
		middleware.RespondWithDomainError(c, err, "Failed to get account")
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	accountID := c.Param("accountId")
	if err := checkAccountID(accountID); err != nil {
		middleware.RespondWithDomainError(c, err, "Failed to update account")
		return
	}
	req, ok := bindAccountRequest(c)
	if !ok {
		return
	}

	resp, err := h.commands.UpdateAccount(c.Request.Context(), cqrs.UpdateAccountCommand{
		AccountID: accountID,
		Request:   req.toModel(),
	})
	if err != nil {
		middleware.RespondWithDomainError(c, err, "Failed to update account")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteAccount answers 204 for unknown and malformed ids alike.
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	accountID := c.Param("accountId")
	if checkAccountID(accountID) != nil {
		c.Status(http.StatusNoContent)
		return
	}
	err := h.commands.DeleteAccount(c.Request.Context(), cqrs.DeleteAccountCommand{AccountID: accountID})
	if err != nil {
		middleware.RespondWithDomainError(c, err, "Failed to delete account")
		return
	}
	c.Status(http.StatusNoContent)
}

func bindAccountRequest(c *gin.Context) (AccountRequest, bool) {
	var req AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return req, false
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return req, false
	}
	return req, true
}

// checkAccountID reports an id that is not a UUID as not found. Account ids
// are always generated UUIDs, so such an id cannot exist.
func checkAccountID(id string) error {
	if !utils.ValidateAccountID(id) {
		return models.AccountNotFound(id)
	}
	return nil
}
