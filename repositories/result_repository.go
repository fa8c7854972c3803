package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dosada05/atletica-scoreboard/models"
)

var (
	ErrResultNotFound        = errors.New("result not found")
	ErrResultModalityInvalid = errors.New("result competition or modality does not exist")
)

type ResultRepository interface {
	// Upsert stores the ranking of a modality, replacing any previous one.
	Upsert(ctx context.Context, exec SQLExecutor, result *models.Result) error
	GetByModality(ctx context.Context, competitionID, modalityID int) (*models.Result, error)
	ListByCompetition(ctx context.Context, competitionID int) ([]models.Result, error)
	DeleteByModality(ctx context.Context, exec SQLExecutor, competitionID, modalityID int) error
}

type sqlResultRepository struct {
	db *sql.DB
}

func NewResultRepository(db *sql.DB) ResultRepository {
	return &sqlResultRepository{db: db}
}

func (r *sqlResultRepository) Upsert(ctx context.Context, exec SQLExecutor, result *models.Result) error {
	rankingJSON, err := json.Marshal(result.Ranking)
	if err != nil {
		return fmt.Errorf("failed to encode ranking: %w", err)
	}

	query := `
		INSERT INTO results (competition_id, modality_id, ranking_json)
		VALUES ($1, $2, $3)
		ON CONFLICT (competition_id, modality_id)
		DO UPDATE SET ranking_json = EXCLUDED.ranking_json, updated_at = CURRENT_TIMESTAMP
		RETURNING id, updated_at`

	err = getExecutor(r.db, exec).QueryRowContext(ctx, query,
		result.CompetitionID, result.ModalityID, string(rankingJSON),
	).Scan(&result.ID, &result.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrResultModalityInvalid
		}
		return err
	}
	return nil
}

func scanResult(row interface{ Scan(...any) error }) (models.Result, error) {
	var (
		result  models.Result
		rawJSON []byte
	)
	if err := row.Scan(&result.ID, &result.CompetitionID, &result.ModalityID, &rawJSON, &result.UpdatedAt); err != nil {
		return result, err
	}
	if err := json.Unmarshal(rawJSON, &result.Ranking); err != nil {
		return result, fmt.Errorf("failed to decode ranking of result %d: %w", result.ID, err)
	}
	return result, nil
}

func (r *sqlResultRepository) GetByModality(ctx context.Context, competitionID, modalityID int) (*models.Result, error) {
	query := `
		SELECT id, competition_id, modality_id, ranking_json, updated_at
		FROM results
		WHERE competition_id = $1 AND modality_id = $2`

	result, err := scanResult(r.db.QueryRowContext(ctx, query, competitionID, modalityID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrResultNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (r *sqlResultRepository) ListByCompetition(ctx context.Context, competitionID int) ([]models.Result, error) {
	query := `
		SELECT id, competition_id, modality_id, ranking_json, updated_at
		FROM results
		WHERE competition_id = $1
		ORDER BY modality_id ASC`

	rows, err := r.db.QueryContext(ctx, query, competitionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]models.Result, 0)
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *sqlResultRepository) DeleteByModality(ctx context.Context, exec SQLExecutor, competitionID, modalityID int) error {
	query := `DELETE FROM results WHERE competition_id = $1 AND modality_id = $2`

	result, err := getExecutor(r.db, exec).ExecContext(ctx, query, competitionID, modalityID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrResultNotFound)
}
