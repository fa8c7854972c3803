package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dosada05/atletica-scoreboard/models"
)

var ErrScoreRuleNotFound = errors.New("score rule override not found")

// ScoreRuleRepository stores per-modality overrides of the default score rule.
type ScoreRuleRepository interface {
	Upsert(ctx context.Context, rule models.ModalityScoreRule) error
	ListByCompetition(ctx context.Context, competitionID int) ([]models.ModalityScoreRule, error)
	Delete(ctx context.Context, modalityID int) error
}

type sqlScoreRuleRepository struct {
	db *sql.DB
}

func NewScoreRuleRepository(db *sql.DB) ScoreRuleRepository {
	return &sqlScoreRuleRepository{db: db}
}

func (r *sqlScoreRuleRepository) Upsert(ctx context.Context, rule models.ModalityScoreRule) error {
	pointsJSON, err := json.Marshal(rule.Points)
	if err != nil {
		return fmt.Errorf("failed to encode score rule: %w", err)
	}

	query := `
		INSERT INTO score_rules (modality_id, points_json)
		VALUES ($1, $2)
		ON CONFLICT (modality_id)
		DO UPDATE SET points_json = EXCLUDED.points_json, updated_at = CURRENT_TIMESTAMP`

	if _, err := r.db.ExecContext(ctx, query, rule.ModalityID, string(pointsJSON)); err != nil {
		if isForeignKeyViolation(err) {
			return ErrModalityNotFound
		}
		return err
	}
	return nil
}

func (r *sqlScoreRuleRepository) ListByCompetition(ctx context.Context, competitionID int) ([]models.ModalityScoreRule, error) {
	query := `
		SELECT sr.modality_id, sr.points_json
		FROM score_rules sr
		JOIN modalities m ON m.id = sr.modality_id
		WHERE m.competition_id = $1
		ORDER BY sr.modality_id ASC`

	rows, err := r.db.QueryContext(ctx, query, competitionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rules := make([]models.ModalityScoreRule, 0)
	for rows.Next() {
		var (
			rule    models.ModalityScoreRule
			rawJSON []byte
		)
		if err := rows.Scan(&rule.ModalityID, &rawJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(rawJSON, &rule.Points); err != nil {
			return nil, fmt.Errorf("failed to decode score rule of modality %d: %w", rule.ModalityID, err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *sqlScoreRuleRepository) Delete(ctx context.Context, modalityID int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM score_rules WHERE modality_id = $1`, modalityID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrScoreRuleNotFound)
}
