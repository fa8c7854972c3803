package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Dosada05/atletica-scoreboard/models"
	"github.com/Dosada05/atletica-scoreboard/repositories"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type SettingsService interface {
	GetSettings(ctx context.Context) (*models.AppSettings, error)
	UpdateSettings(ctx context.Context, input models.AppSettings) (*models.AppSettings, error)
}

type settingsService struct {
	settingsRepo repositories.SettingsRepository
}

func NewSettingsService(settingsRepo repositories.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

func (s *settingsService) GetSettings(ctx context.Context) (*models.AppSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, input models.AppSettings) (*models.AppSettings, error) {
	settings := models.AppSettings{
		PrimaryColor:   strings.ToLower(strings.TrimSpace(input.PrimaryColor)),
		SecondaryColor: strings.ToLower(strings.TrimSpace(input.SecondaryColor)),
	}
	if !hexColorPattern.MatchString(settings.PrimaryColor) {
		return nil, fmt.Errorf("%w: primary colour must look like #rrggbb", ErrValidationFailed)
	}
	if !hexColorPattern.MatchString(settings.SecondaryColor) {
		return nil, fmt.Errorf("%w: secondary colour must look like #rrggbb", ErrValidationFailed)
	}
	if input.LogoURL != nil {
		if logo := strings.TrimSpace(*input.LogoURL); logo != "" {
			settings.LogoURL = &logo
		}
	}

	if err := s.settingsRepo.Update(ctx, &settings); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return &settings, nil
}
