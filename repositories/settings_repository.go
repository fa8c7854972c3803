package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/atletica-scoreboard/models"
)

type SettingsRepository interface {
	Get(ctx context.Context) (*models.AppSettings, error)
	Update(ctx context.Context, settings *models.AppSettings) error
}

type sqlSettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) SettingsRepository {
	return &sqlSettingsRepository{db: db}
}

// Get returns the stored settings, or the defaults if the row is missing.
func (r *sqlSettingsRepository) Get(ctx context.Context) (*models.AppSettings, error) {
	query := `SELECT primary_color, secondary_color, logo_url FROM app_settings WHERE id = 1`

	var s models.AppSettings
	err := r.db.QueryRowContext(ctx, query).Scan(&s.PrimaryColor, &s.SecondaryColor, &s.LogoURL)
	if errors.Is(err, sql.ErrNoRows) {
		defaults := models.DefaultAppSettings
		return &defaults, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sqlSettingsRepository) Update(ctx context.Context, settings *models.AppSettings) error {
	query := `
		INSERT INTO app_settings (id, primary_color, secondary_color, logo_url)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id)
		DO UPDATE SET primary_color = EXCLUDED.primary_color,
			secondary_color = EXCLUDED.secondary_color,
			logo_url = EXCLUDED.logo_url`

	_, err := r.db.ExecContext(ctx, query, settings.PrimaryColor, settings.SecondaryColor, settings.LogoURL)
	return err
}
