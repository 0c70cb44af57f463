package handler

import (
	"fmt"
	"log"
	"strconv"

	"github.com/eaglebank/bank-account-service/shared/cqrs"
	"github.com/eaglebank/bank-account-service/shared/models"
	"github.com/eaglebank/bank-account-service/shared/utils"
	"github.com/graphql-go/graphql"
)

// graphQLResolvers binds the schema's fields to the command and query sides.
type graphQLResolvers struct {
	accountCommands  AccountCommander
	accountQueries   AccountQuerier
	customerCommands CustomerCommander
	customerQueries  CustomerQuerier
}

func (r *graphQLResolvers) schema() (graphql.Schema, error) {
	accountTypeEnum := graphql.NewEnum(graphql.EnumConfig{
		Name: "AccountType",
		Values: graphql.EnumValueConfigMap{
			string(models.CurrentAccount): &graphql.EnumValueConfig{Value: models.CurrentAccount},
			string(models.SavingAccount):  &graphql.EnumValueConfig{Value: models.SavingAccount},
		},
	})

	customerType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Customer",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return strconv.FormatInt(p.Source.(*models.Customer).ID, 10), nil
				},
			},
			"name": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	accountFields := func() graphql.Fields {
		return graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"balance":   &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"currency":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"type":      &graphql.Field{Type: graphql.NewNonNull(accountTypeEnum)},
		}
	}

	bankAccountFields := accountFields()
	bankAccountFields["customer"] = &graphql.Field{
		Type: customerType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			account := p.Source.(*models.BankAccount)
			customer, err := r.customerQueries.GetCustomer(p.Context, cqrs.GetCustomerQuery{CustomerID: account.CustomerID})
			if err != nil {
				return nil, resolverError(err)
			}
			return customer, nil
		},
	}
	bankAccountType := graphql.NewObject(graphql.ObjectConfig{
		Name:   "BankAccount",
		Fields: bankAccountFields,
	})

	customerType.AddFieldConfig("bankAccounts", &graphql.Field{
		Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(bankAccountType))),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			customer := p.Source.(*models.Customer)
			accounts, err := r.accountQueries.ListCustomerAccounts(p.Context, cqrs.ListCustomerAccountsQuery{CustomerID: customer.ID})
			if err != nil {
				return nil, resolverError(err)
			}
			return accountPointers(accounts), nil
		},
	})

	responseType := graphql.NewObject(graphql.ObjectConfig{
		Name:   "BankAccountResponse",
		Fields: accountFields(),
	})

	requestInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "BankAccountDTO",
		Fields: graphql.InputObjectConfigFieldMap{
			"balance":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"currency": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"type":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(accountTypeEnum)},
		},
	})

	idArg := graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
	}

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"accountsList": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(bankAccountType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					accounts, err := r.accountQueries.ListAccounts(p.Context, cqrs.ListAccountsQuery{})
					if err != nil {
						return nil, resolverError(err)
					}
					return accountPointers(accounts), nil
				},
			},
			"bankAccountById": &graphql.Field{
				Type: bankAccountType,
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := stringArg(p, "id")
					if err := checkAccountID(id); err != nil {
						return nil, err
					}
					account, err := r.accountQueries.GetAccount(p.Context, cqrs.GetAccountQuery{AccountID: id})
					if err != nil {
						return nil, resolverError(err)
					}
					return account, nil
				},
			},
			"customers": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(customerType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					customers, err := r.customerQueries.ListCustomers(p.Context, cqrs.ListCustomersQuery{})
					if err != nil {
						return nil, resolverError(err)
					}
					out := make([]*models.Customer, len(customers))
					for i := range customers {
						out[i] = &customers[i]
					}
					return out, nil
				},
			},
			"customerById": &graphql.Field{
				Type: customerType,
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := customerIDArg(p, "id")
					if err != nil {
						return nil, err
					}
					customer, err := r.customerQueries.GetCustomer(p.Context, cqrs.GetCustomerQuery{CustomerID: id})
					if err != nil {
						return nil, resolverError(err)
					}
					return customer, nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"addAccount": &graphql.Field{
				Type: responseType,
				Args: graphql.FieldConfigArgument{
					"customerId":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"bankAccount": &graphql.ArgumentConfig{Type: graphql.NewNonNull(requestInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					customerID, err := customerIDArg(p, "customerId")
					if err != nil {
						return nil, err
					}
					req, err := requestArg(p, "bankAccount")
					if err != nil {
						return nil, err
					}
					resp, err := r.accountCommands.AddAccount(p.Context, cqrs.AddAccountCommand{CustomerID: customerID, Request: req})
					if err != nil {
						return nil, resolverError(err)
					}
					return resp, nil
				},
			},
			"updateAccount": &graphql.Field{
				Type: responseType,
				Args: graphql.FieldConfigArgument{
					"id":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"bankAccount": &graphql.ArgumentConfig{Type: graphql.NewNonNull(requestInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := stringArg(p, "id")
					if err := checkAccountID(id); err != nil {
						return nil, err
					}
					req, err := requestArg(p, "bankAccount")
					if err != nil {
						return nil, err
					}
					resp, err := r.accountCommands.UpdateAccount(p.Context, cqrs.UpdateAccountCommand{AccountID: id, Request: req})
					if err != nil {
						return nil, resolverError(err)
					}
					return resp, nil
				},
			},
			"deleteAccount": &graphql.Field{
				Type: graphql.Boolean,
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := stringArg(p, "id")
					if checkAccountID(id) != nil {
						return true, nil
					}
					if err := r.accountCommands.DeleteAccount(p.Context, cqrs.DeleteAccountCommand{AccountID: id}); err != nil {
						return nil, resolverError(err)
					}
					return true, nil
				},
			},
			"addCustomer": &graphql.Field{
				Type: customerType,
				Args: graphql.FieldConfigArgument{
					"name": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					customer, err := r.customerCommands.CreateCustomer(p.Context, cqrs.CreateCustomerCommand{Name: stringArg(p, "name")})
					if err != nil {
						return nil, resolverError(err)
					}
					return customer, nil
				},
			},
			"deleteCustomer": &graphql.Field{
				Type: graphql.Boolean,
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, err := customerIDArg(p, "id")
					if err != nil {
						return nil, err
					}
					if err := r.customerCommands.DeleteCustomer(p.Context, cqrs.DeleteCustomerCommand{CustomerID: id}); err != nil {
						return nil, resolverError(err)
					}
					return true, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

func accountPointers(accounts []models.BankAccount) []*models.BankAccount {
	out := make([]*models.BankAccount, len(accounts))
	for i := range accounts {
		out[i] = &accounts[i]
	}
	return out
}

func stringArg(p graphql.ResolveParams, name string) string {
	s, _ := p.Args[name].(string)
	return s
}

func customerIDArg(p graphql.ResolveParams, name string) (int64, error) {
	id, ok := utils.ParseCustomerID(stringArg(p, name))
	if !ok {
		return 0, &models.ValidationError{Field: name, Message: "customer id must be a positive integer"}
	}
	return id, nil
}

// requestArg decodes a BankAccountDTO input object.
func requestArg(p graphql.ResolveParams, name string) (models.BankAccountRequest, error) {
	var req models.BankAccountRequest
	in, ok := p.Args[name].(map[string]interface{})
	if !ok {
		return req, &models.ValidationError{Field: name, Message: "input object is required"}
	}
	switch v := in["balance"].(type) {
	case float64:
		req.Balance = v
	case int:
		req.Balance = float64(v)
	default:
		return req, &models.ValidationError{Field: "balance", Message: "balance must be a number"}
	}
	req.Currency, _ = in["currency"].(string)
	switch v := in["type"].(type) {
	case models.AccountType:
		req.Type = v
	case string:
		req.Type = models.AccountType(v)
	}
	return req, nil
}

// resolverError passes domain errors through to the client and hides
// infrastructure failures behind a generic message.
func resolverError(err error) error {
	if models.IsNotFound(err) || models.IsValidation(err) || models.IsConflict(err) {
		return err
	}
	log.Printf("graphql resolver: %v", err)
	return fmt.Errorf("internal error")
}
