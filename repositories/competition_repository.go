package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/atletica-scoreboard/models"
)

var (
	ErrCompetitionNotFound = errors.New("competition not found")
	ErrNoActiveCompetition = errors.New("no active competition")
)

type CompetitionRepository interface {
	Create(ctx context.Context, exec SQLExecutor, competition *models.Competition) error
	GetByID(ctx context.Context, id int) (*models.Competition, error)
	GetActive(ctx context.Context) (*models.Competition, error)
	List(ctx context.Context) ([]models.Competition, error)
	DeactivateAll(ctx context.Context, exec SQLExecutor) error
	Activate(ctx context.Context, exec SQLExecutor, id int) error
	Delete(ctx context.Context, id int) error
}

type sqlCompetitionRepository struct {
	db *sql.DB
}

func NewCompetitionRepository(db *sql.DB) CompetitionRepository {
	return &sqlCompetitionRepository{db: db}
}

const competitionColumns = `id, name, year, is_active, created_at`

func scanCompetition(row interface{ Scan(...any) error }, c *models.Competition) error {
	return row.Scan(&c.ID, &c.Name, &c.Year, &c.IsActive, &c.CreatedAt)
}

func (r *sqlCompetitionRepository) Create(ctx context.Context, exec SQLExecutor, competition *models.Competition) error {
	query := `INSERT INTO competitions (name, year, is_active) VALUES ($1, $2, $3) RETURNING id, created_at`
	return getExecutor(r.db, exec).QueryRowContext(ctx, query, competition.Name, competition.Year, competition.IsActive).
		Scan(&competition.ID, &competition.CreatedAt)
}

func (r *sqlCompetitionRepository) GetByID(ctx context.Context, id int) (*models.Competition, error) {
	query := `SELECT ` + competitionColumns + ` FROM competitions WHERE id = $1`

	var competition models.Competition
	if err := scanCompetition(r.db.QueryRowContext(ctx, query, id), &competition); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCompetitionNotFound
		}
		return nil, err
	}
	return &competition, nil
}

func (r *sqlCompetitionRepository) GetActive(ctx context.Context) (*models.Competition, error) {
	query := `SELECT ` + competitionColumns + ` FROM competitions WHERE is_active = TRUE`

	var competition models.Competition
	if err := scanCompetition(r.db.QueryRowContext(ctx, query), &competition); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoActiveCompetition
		}
		return nil, err
	}
	return &competition, nil
}

func (r *sqlCompetitionRepository) List(ctx context.Context) ([]models.Competition, error) {
	query := `SELECT ` + competitionColumns + ` FROM competitions ORDER BY year DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	competitions := make([]models.Competition, 0)
	for rows.Next() {
		var c models.Competition
		if err := scanCompetition(rows, &c); err != nil {
			return nil, err
		}
		competitions = append(competitions, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return competitions, nil
}

func (r *sqlCompetitionRepository) DeactivateAll(ctx context.Context, exec SQLExecutor) error {
	_, err := getExecutor(r.db, exec).ExecContext(ctx, `UPDATE competitions SET is_active = FALSE WHERE is_active = TRUE`)
	return err
}

func (r *sqlCompetitionRepository) Activate(ctx context.Context, exec SQLExecutor, id int) error {
	result, err := getExecutor(r.db, exec).ExecContext(ctx, `UPDATE competitions SET is_active = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrCompetitionNotFound)
}

// Delete removes the competition together with its modalities, results and
// penalties (ON DELETE CASCADE).
func (r *sqlCompetitionRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM competitions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrCompetitionNotFound)
}
