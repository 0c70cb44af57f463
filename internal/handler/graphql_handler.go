package handler

import (
	"net/http"

	"github.com/eaglebank/bank-account-service/shared/middleware"
	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
)

// GraphQLHandler executes GraphQL operations against the account and
// customer services.
type GraphQLHandler struct {
	schema graphql.Schema
}

type GraphQLRequest struct {
	Query         string                 `json:"query" validate:"required"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

func NewGraphQLHandler(
	accountCommands AccountCommander,
	accountQueries AccountQuerier,
	customerCommands CustomerCommander,
	customerQueries CustomerQuerier,
) (*GraphQLHandler, error) {
	resolvers := &graphQLResolvers{
		accountCommands:  accountCommands,
		accountQueries:   accountQueries,
		customerCommands: customerCommands,
		customerQueries:  customerQueries,
	}
	schema, err := resolvers.schema()
	if err != nil {
		return nil, err
	}
	return &GraphQLHandler{schema: schema}, nil
}

// Serve handles POST /graphql. Operation errors are reported in the
// "errors" member with status 200; only malformed requests get a 400.
func (h *GraphQLHandler) Serve(c *gin.Context) {
	var req GraphQLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        c.Request.Context(),
	})
	c.JSON(http.StatusOK, result)
}
