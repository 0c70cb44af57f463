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

type CustomerCommander interface {
	CreateCustomer(context.Context, cqrs.CreateCustomerCommand) (*models.Customer, error)
	DeleteCustomer(context.Context, cqrs.DeleteCustomerCommand) error
}

type CustomerQuerier interface {
	ListCustomers(context.Context, cqrs.ListCustomersQuery) ([]models.Customer, error)
	GetCustomer(context.Context, cqrs.GetCustomerQuery) (*models.Customer, error)
}

// CustomerHandler handles customer-related HTTP requests.
type CustomerHandler struct {
	commands CustomerCommander
	queries  CustomerQuerier
}

type CreateCustomerRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type ListCustomersResponse struct {
	Customers []models.Customer `json:"customers"`
}

func NewCustomerHandler(commands CustomerCommander, queries CustomerQuerier) *CustomerHandler {
	return &CustomerHandler{commands: commands, queries: queries}
}

func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	customer, err := h.commands.CreateCustomer(c.Request.Context(), cqrs.CreateCustomerCommand{Name: req.Name})
	if err != nil {
		middleware.RespondWithDomainError(c, err, "Failed to create customer")
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	customers, err := h.queries.ListCustomers(c.Request.Context(), cqrs.ListCustomersQuery{})
	if err != nil {
		middleware.RespondWithDomainError(c, err, "Failed to list customers")
		return
	}
	c.JSON(http.StatusOK, ListCustomersResponse{Customers: customers})
}

func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	customerID, ok := utils.ParseCustomerID(c.Param("customerId"))
	if !ok {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid customer id")
		return
	}
	customer, err := h.queries.GetCustomer(c.Request.Context(), cqrs.GetCustomerQuery{CustomerID: customerID})
	if err != nil {
		middleware.RespondWithDomainError(c, err, "Failed to get customer")
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	customerID, ok := utils.ParseCustomerID(c.Param("customerId"))
	if !ok {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid customer id")
		return
	}
	if err := h.commands.DeleteCustomer(c.Request.Context(), cqrs.DeleteCustomerCommand{CustomerID: customerID}); err != nil {
		middleware.RespondWithDomainError(c, err, "Failed to delete customer")
		return
	}
	c.Status(http.StatusNoContent)
}
