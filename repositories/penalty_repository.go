package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/atletica-scoreboard/models"
)

var ErrPenaltyNotFound = errors.New("penalty not found")

type PenaltyRepository interface {
	Create(ctx context.Context, penalty *models.Penalty) error
	ListByCompetition(ctx context.Context, competitionID int) ([]models.Penalty, error)
	Delete(ctx context.Context, competitionID, id int) error
}

type sqlPenaltyRepository struct {
	db *sql.DB
}

func NewPenaltyRepository(db *sql.DB) PenaltyRepository {
	return &sqlPenaltyRepository{db: db}
}

func (r *sqlPenaltyRepository) Create(ctx context.Context, penalty *models.Penalty) error {
	query := `
		INSERT INTO penalties (competition_id, athletic_id, points, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		penalty.CompetitionID, penalty.AthleticID, penalty.Points, penalty.Reason,
	).Scan(&penalty.ID, &penalty.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrCompetitionNotFound
		}
		return err
	}
	return nil
}

func (r *sqlPenaltyRepository) ListByCompetition(ctx context.Context, competitionID int) ([]models.Penalty, error) {
	query := `
		SELECT id, competition_id, athletic_id, points, reason, created_at
		FROM penalties
		WHERE competition_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, competitionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	penalties := make([]models.Penalty, 0)
	for rows.Next() {
		var p models.Penalty
		if err := rows.Scan(&p.ID, &p.CompetitionID, &p.AthleticID, &p.Points, &p.Reason, &p.CreatedAt); err != nil {
			return nil, err
		}
		penalties = append(penalties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return penalties, nil
}

func (r *sqlPenaltyRepository) Delete(ctx context.Context, competitionID, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM penalties WHERE competition_id = $1 AND id = $2`, competitionID, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPenaltyNotFound)
}
