package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/atletica-scoreboard/models"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id int) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	// AdjustStock adds delta to the quantity and returns the new quantity.
	AdjustStock(ctx context.Context, id, delta int) (int, error)
	Delete(ctx context.Context, id int) error
}

type sqlProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) ProductRepository {
	return &sqlProductRepository{db: db}
}

const productColumns = `id, name, size, quantity, price_member_cents, price_non_member_cents, image_url`

func scanProduct(row interface{ Scan(...any) error }, p *models.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Size, &p.Quantity, &p.PriceMemberCents, &p.PriceNonMemberCents, &p.ImageURL)
}

func (r *sqlProductRepository) Create(ctx context.Context, p *models.Product) error {
	query := `
		INSERT INTO products (name, size, quantity, price_member_cents, price_non_member_cents, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	return r.db.QueryRowContext(ctx, query,
		p.Name, p.Size, p.Quantity, p.PriceMemberCents, p.PriceNonMemberCents, p.ImageURL,
	).Scan(&p.ID)
}

func (r *sqlProductRepository) GetByID(ctx context.Context, id int) (*models.Product, error) {
	var p models.Product
	err := scanProduct(r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id), &p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *sqlProductRepository) List(ctx context.Context) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *sqlProductRepository) Update(ctx context.Context, p *models.Product) error {
	query := `
		UPDATE products
		SET name = $1, size = $2, quantity = $3, price_member_cents = $4, price_non_member_cents = $5, image_url = $6
		WHERE id = $7`

	result, err := r.db.ExecContext(ctx, query,
		p.Name, p.Size, p.Quantity, p.PriceMemberCents, p.PriceNonMemberCents, p.ImageURL, p.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrProductNotFound)
}

func (r *sqlProductRepository) AdjustStock(ctx context.Context, id, delta int) (int, error) {
	query := `
		UPDATE products
		SET quantity = quantity + $1
		WHERE id = $2 AND quantity + $1 >= 0
		RETURNING quantity`

	var quantity int
	err := r.db.QueryRowContext(ctx, query, delta, id).Scan(&quantity)
	if errors.Is(err, sql.ErrNoRows) {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return 0, getErr
		}
		return 0, ErrInsufficientStock
	}
	if err != nil {
		return 0, err
	}
	return quantity, nil
}

func (r *sqlProductRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrProductNotFound)
}
