package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/atletica-scoreboard/models"
)

var (
	ErrModalityNotFound = errors.New("modality not found")
	ErrModalityConflict = errors.New("modality already exists in this competition")
)

type ModalityRepository interface {
	Create(ctx context.Context, exec SQLExecutor, modality *models.Modality) error
	GetByID(ctx context.Context, id int) (*models.Modality, error)
	ListByCompetition(ctx context.Context, competitionID int) ([]models.Modality, error)
	Update(ctx context.Context, modality *models.Modality) error
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.ModalityStatus) error
	Delete(ctx context.Context, id int) error
}

type sqlModalityRepository struct {
	db *sql.DB
}

func NewModalityRepository(db *sql.DB) ModalityRepository {
	return &sqlModalityRepository{db: db}
}

func (r *sqlModalityRepository) handleModalityError(err error) error {
	switch {
	case isUniqueViolation(err):
		return ErrModalityConflict
	case isForeignKeyViolation(err):
		return ErrCompetitionNotFound
	default:
		return err
	}
}

func (r *sqlModalityRepository) Create(ctx context.Context, exec SQLExecutor, modality *models.Modality) error {
	query := `INSERT INTO modalities (competition_id, name, gender, status) VALUES ($1, $2, $3, $4) RETURNING id`

	err := getExecutor(r.db, exec).QueryRowContext(ctx, query,
		modality.CompetitionID, modality.Name, modality.Gender, modality.Status,
	).Scan(&modality.ID)
	if err != nil {
		return r.handleModalityError(err)
	}
	return nil
}

func (r *sqlModalityRepository) GetByID(ctx context.Context, id int) (*models.Modality, error) {
	query := `SELECT id, competition_id, name, gender, status FROM modalities WHERE id = $1`

	var m models.Modality
	err := r.db.QueryRowContext(ctx, query, id).Scan(&m.ID, &m.CompetitionID, &m.Name, &m.Gender, &m.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrModalityNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *sqlModalityRepository) ListByCompetition(ctx context.Context, competitionID int) ([]models.Modality, error) {
	query := `
		SELECT id, competition_id, name, gender, status
		FROM modalities
		WHERE competition_id = $1
		ORDER BY name ASC, gender ASC`

	rows, err := r.db.QueryContext(ctx, query, competitionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	modalities := make([]models.Modality, 0)
	for rows.Next() {
		var m models.Modality
		if err := rows.Scan(&m.ID, &m.CompetitionID, &m.Name, &m.Gender, &m.Status); err != nil {
			return nil, err
		}
		modalities = append(modalities, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return modalities, nil
}

func (r *sqlModalityRepository) Update(ctx context.Context, modality *models.Modality) error {
	query := `UPDATE modalities SET name = $1, gender = $2, status = $3 WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, modality.Name, modality.Gender, modality.Status, modality.ID)
	if err != nil {
		return r.handleModalityError(err)
	}
	return checkAffectedRows(result, ErrModalityNotFound)
}

func (r *sqlModalityRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.ModalityStatus) error {
	result, err := getExecutor(r.db, exec).ExecContext(ctx, `UPDATE modalities SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrModalityNotFound)
}

func (r *sqlModalityRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM modalities WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrModalityNotFound)
}
