package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eaglebank/bank-account-service/shared/models"
)

const accountColumns = `id, created_at, balance, currency, type, customer_id`

// PostgresAccountRepository handles account persistence against the
// PostgreSQL write store (source of truth).
type PostgresAccountRepository struct {
	db *sql.DB
}

func NewPostgresAccountRepository(db *sql.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

// upsertAccountSQL writes created_at and customer_id on insert only.
const upsertAccountSQL = `
	INSERT INTO accounts (` + accountColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO UPDATE
	SET balance = EXCLUDED.balance,
		currency = EXCLUDED.currency,
		type = EXCLUDED.type
	RETURNING ` + accountColumns

// SaveAccount upserts by id. A replace keeps the stored creation time and
// owner; the returned row reflects them.
func (r *PostgresAccountRepository) SaveAccount(ctx context.Context, account *models.BankAccount) (*models.BankAccount, error) {
	if account.CustomerID == 0 {
		return nil, missingCustomer(0)
	}
	saved, err := scanAccount(r.db.QueryRowContext(ctx, upsertAccountSQL,
		account.ID, account.CreatedAt, account.Balance, account.Currency,
		string(account.Type), account.CustomerID,
	))
	if err != nil {
		if isPQCode(err, pqForeignKeyViolation) {
			return nil, missingCustomer(account.CustomerID)
		}
		return nil, fmt.Errorf("failed to save account: %w", err)
	}
	return saved, nil
}

func (r *PostgresAccountRepository) FindAllAccounts(ctx context.Context) ([]models.BankAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY created_at, id`
	return r.queryAccounts(ctx, query)
}

func (r *PostgresAccountRepository) FindAccountByID(ctx context.Context, id string) (*models.BankAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.AccountNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

func (r *PostgresAccountRepository) FindAccountsByCustomerID(ctx context.Context, customerID int64) ([]models.BankAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE customer_id = $1 ORDER BY created_at, id`
	return r.queryAccounts(ctx, query, customerID)
}

// DeleteAccountByID does not check rows affected: deleting an absent account
// succeeds.
func (r *PostgresAccountRepository) DeleteAccountByID(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

func (r *PostgresAccountRepository) queryAccounts(ctx context.Context, query string, args ...any) ([]models.BankAccount, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []models.BankAccount{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanAccount maps one accounts row onto the domain entity.
func scanAccount(row rowScanner) (*models.BankAccount, error) {
	var (
		a       models.BankAccount
		accType string
	)
	if err := row.Scan(&a.ID, &a.CreatedAt, &a.Balance, &a.Currency, &accType, &a.CustomerID); err != nil {
		return nil, err
	}
	a.Type = models.AccountType(accType)
	if !a.Type.Valid() {
		return nil, fmt.Errorf("account %s has unknown type %q", a.ID, accType)
	}
	a.CreatedAt = a.CreatedAt.UTC()
	return &a, nil
}
