package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/atletica-scoreboard/models"
)

var (
	ErrCategoryNotFound     = errors.New("finance category not found")
	ErrCategoryNameConflict = errors.New("finance category name conflict")
	ErrCategoryInUse        = errors.New("finance category is used by transactions")
	ErrTransactionNotFound  = errors.New("transaction not found")
)

type FinanceRepository interface {
	ListCategories(ctx context.Context) ([]models.FinanceCategory, error)
	CreateCategory(ctx context.Context, category *models.FinanceCategory) error
	RenameCategory(ctx context.Context, id int, name string) error
	DeleteCategory(ctx context.Context, id int) error

	// ListTransactions returns the ledger newest first.
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	CreateTransaction(ctx context.Context, tx *models.Transaction) error
	DeleteTransaction(ctx context.Context, id int) error
}

type sqlFinanceRepository struct {
	db *sql.DB
}

func NewFinanceRepository(db *sql.DB) FinanceRepository {
	return &sqlFinanceRepository{db: db}
}

func (r *sqlFinanceRepository) ListCategories(ctx context.Context) ([]models.FinanceCategory, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, is_default FROM finance_categories ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]models.FinanceCategory, 0)
	for rows.Next() {
		var c models.FinanceCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.IsDefault); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *sqlFinanceRepository) CreateCategory(ctx context.Context, category *models.FinanceCategory) error {
	query := `INSERT INTO finance_categories (name, is_default) VALUES ($1, $2) RETURNING id`

	err := r.db.QueryRowContext(ctx, query, category.Name, category.IsDefault).Scan(&category.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrCategoryNameConflict
		}
		return err
	}
	return nil
}

func (r *sqlFinanceRepository) RenameCategory(ctx context.Context, id int, name string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE finance_categories SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrCategoryNameConflict
		}
		return err
	}
	return checkAffectedRows(result, ErrCategoryNotFound)
}

// DeleteCategory fails with ErrCategoryInUse while transactions reference
// the category (ON DELETE RESTRICT).
func (r *sqlFinanceRepository) DeleteCategory(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM finance_categories WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrCategoryInUse
		}
		return err
	}
	return checkAffectedRows(result, ErrCategoryNotFound)
}

func (r *sqlFinanceRepository) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	query := `
		SELECT id, type, amount_cents, description, category_id, account, occurred_on, created_at
		FROM transactions
		ORDER BY occurred_on DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]models.Transaction, 0)
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.Type, &t.AmountCents, &t.Description, &t.CategoryID, &t.Account, &t.Date, &t.CreatedAt); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return transactions, nil
}

func (r *sqlFinanceRepository) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	query := `
		INSERT INTO transactions (type, amount_cents, description, category_id, account, occurred_on)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		t.Type, t.AmountCents, t.Description, t.CategoryID, t.Account, t.Date,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}

func (r *sqlFinanceRepository) DeleteTransaction(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTransactionNotFound)
}
