package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/atletica-scoreboard/models"
)

var (
	ErrAthleticNotFound     = errors.New("athletic not found")
	ErrAthleticNameConflict = errors.New("athletic name conflict")
)

type AthleticRepository interface {
	Create(ctx context.Context, athletic *models.Athletic) error
	GetByID(ctx context.Context, id int) (*models.Athletic, error)
	// List returns the roster ordered by name. Standings ties keep this order.
	List(ctx context.Context) ([]models.Athletic, error)
	Update(ctx context.Context, athletic *models.Athletic) error
	Delete(ctx context.Context, id int) error
}

type sqlAthleticRepository struct {
	db *sql.DB
}

func NewAthleticRepository(db *sql.DB) AthleticRepository {
	return &sqlAthleticRepository{db: db}
}

func (r *sqlAthleticRepository) Create(ctx context.Context, athletic *models.Athletic) error {
	query := `INSERT INTO athletics (name, logo_url) VALUES ($1, $2) RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, athletic.Name, athletic.LogoURL).Scan(&athletic.ID, &athletic.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAthleticNameConflict
		}
		return err
	}
	return nil
}

func (r *sqlAthleticRepository) GetByID(ctx context.Context, id int) (*models.Athletic, error) {
	query := `SELECT id, name, logo_url, created_at FROM athletics WHERE id = $1`

	var a models.Athletic
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.Name, &a.LogoURL, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAthleticNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *sqlAthleticRepository) List(ctx context.Context) ([]models.Athletic, error) {
	query := `SELECT id, name, logo_url, created_at FROM athletics ORDER BY name ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	athletics := make([]models.Athletic, 0)
	for rows.Next() {
		var a models.Athletic
		if err := rows.Scan(&a.ID, &a.Name, &a.LogoURL, &a.CreatedAt); err != nil {
			return nil, err
		}
		athletics = append(athletics, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return athletics, nil
}

func (r *sqlAthleticRepository) Update(ctx context.Context, athletic *models.Athletic) error {
	query := `UPDATE athletics SET name = $1, logo_url = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, athletic.Name, athletic.LogoURL, athletic.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAthleticNameConflict
		}
		return err
	}
	return checkAffectedRows(result, ErrAthleticNotFound)
}

func (r *sqlAthleticRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM athletics WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrAthleticNotFound)
}
