package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eaglebank/bank-account-service/shared/models"
	"github.com/lib/pq"
)

// Postgres error codes this package reacts to.
const (
	pqForeignKeyViolation = "23503"
)

// PostgresCustomerRepository stores customers in the customers table.
type PostgresCustomerRepository struct {
	db *sql.DB
}

func NewPostgresCustomerRepository(db *sql.DB) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{db: db}
}

func (r *PostgresCustomerRepository) SaveCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	saved := *customer
	if saved.ID == 0 {
		query := `INSERT INTO customers (name) VALUES ($1) RETURNING id`
		if err := r.db.QueryRowContext(ctx, query, saved.Name).Scan(&saved.ID); err != nil {
			return nil, fmt.Errorf("failed to create customer: %w", err)
		}
		return &saved, nil
	}

	query := `
		INSERT INTO customers (id, name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
	`
	if _, err := r.db.ExecContext(ctx, query, saved.ID, saved.Name); err != nil {
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}
	return &saved, nil
}

func (r *PostgresCustomerRepository) FindAllCustomers(ctx context.Context) ([]models.Customer, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM customers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	customers := []models.Customer{}
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

func (r *PostgresCustomerRepository) FindCustomerByID(ctx context.Context, id int64) (*models.Customer, error) {
	var c models.Customer
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM customers WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.CustomerNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &c, nil
}

// DeleteCustomerByID relies on the RESTRICT foreign key of accounts.customer_id
// to refuse deleting a customer that still owns accounts.
func (r *PostgresCustomerRepository) DeleteCustomerByID(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		if isPQCode(err, pqForeignKeyViolation) {
			return customerHasAccounts(id)
		}
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

func isPQCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}
