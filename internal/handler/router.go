package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the health check, the GraphQL endpoint and the REST
// resources on router.
func RegisterRoutes(router gin.IRouter, accounts *AccountHandler, customers *CustomerHandler, gql *GraphQLHandler) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/graphql", gql.Serve)

	v1 := router.Group("/v1")
	{
		v1.GET("/customers", customers.ListCustomers)
		v1.POST("/customers", customers.CreateCustomer)
		v1.GET("/customers/:customerId", customers.GetCustomer)
		v1.DELETE("/customers/:customerId", customers.DeleteCustomer)
		v1.GET("/customers/:customerId/accounts", accounts.ListCustomerAccounts)
		v1.POST("/customers/:customerId/accounts", accounts.AddAccount)

		v1.GET("/accounts", accounts.ListAccounts)
		v1.GET("/accounts/:accountId", accounts.GetAccount)
		v1.PATCH("/accounts/:accountId", accounts.UpdateAccount)
		v1.DELETE("/accounts/:accountId", accounts.DeleteAccount)
	}
}
