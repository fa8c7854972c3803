package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/atletica-scoreboard/models"
	"github.com/Dosada05/atletica-scoreboard/repositories"
)

type AthleticService interface {
	CreateAthletic(ctx context.Context, input AthleticInput) (*models.Athletic, error)
	GetAthleticByID(ctx context.Context, id int) (*models.Athletic, error)
	ListAthletics(ctx context.Context) ([]models.Athletic, error)
	UpdateAthletic(ctx context.Context, id int, input AthleticInput) (*models.Athletic, error)
	DeleteAthletic(ctx context.Context, id int) error
}

type AthleticInput struct {
	Name    string  `json:"name"`
	LogoURL *string `json:"logo_url"`
}

type athleticService struct {
	athleticRepo    repositories.AthleticRepository
	competitionRepo repositories.CompetitionRepository
	notifier        StandingsNotifier
	logger          *slog.Logger
}

func NewAthleticService(
	athleticRepo repositories.AthleticRepository,
	competitionRepo repositories.CompetitionRepository,
	notifier StandingsNotifier,
	logger *slog.Logger,
) AthleticService {
	return &athleticService{
		athleticRepo:    athleticRepo,
		competitionRepo: competitionRepo,
		notifier:        notifier,
		logger:          logger,
	}
}

func (s *athleticService) CreateAthletic(ctx context.Context, input AthleticInput) (*models.Athletic, error) {
	athletic, err := newAthletic(input)
	if err != nil {
		return nil, err
	}
	if err := s.athleticRepo.Create(ctx, athletic); err != nil {
		if errors.Is(err, repositories.ErrAthleticNameConflict) {
			return nil, ErrAthleticNameConflict
		}
		return nil, fmt.Errorf("failed to create athletic: %w", err)
	}
	notifyActive(ctx, s.notifier, s.competitionRepo, s.logger)
	return athletic, nil
}

func (s *athleticService) GetAthleticByID(ctx context.Context, id int) (*models.Athletic, error) {
	athletic, err := s.athleticRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrAthleticNotFound) {
			return nil, ErrAthleticNotFound
		}
		return nil, fmt.Errorf("failed to get athletic by id %d: %w", id, err)
	}
	return athletic, nil
}

func (s *athleticService) ListAthletics(ctx context.Context) ([]models.Athletic, error) {
	athletics, err := s.athleticRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list athletics: %w", err)
	}
	if athletics == nil {
		return []models.Athletic{}, nil
	}
	return athletics, nil
}

func (s *athleticService) UpdateAthletic(ctx context.Context, id int, input AthleticInput) (*models.Athletic, error) {
	athletic, err := newAthletic(input)
	if err != nil {
		return nil, err
	}
	athletic.ID = id

	if err := s.athleticRepo.Update(ctx, athletic); err != nil {
		switch {
		case errors.Is(err, repositories.ErrAthleticNotFound):
			return nil, ErrAthleticNotFound
		case errors.Is(err, repositories.ErrAthleticNameConflict):
			return nil, ErrAthleticNameConflict
		default:
			return nil, fmt.Errorf("failed to update athletic %d: %w", id, err)
		}
	}
	notifyActive(ctx, s.notifier, s.competitionRepo, s.logger)
	return athletic, nil
}

// DeleteAthletic removes the athletic only. Results and penalties that name
// it stay stored and are skipped when standings are computed.
func (s *athleticService) DeleteAthletic(ctx context.Context, id int) error {
	if err := s.athleticRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrAthleticNotFound) {
			return ErrAthleticNotFound
		}
		return fmt.Errorf("failed to delete athletic %d: %w", id, err)
	}
	s.logger.InfoContext(ctx, "athletic deleted", slog.Int("athletic_id", id))
	notifyActive(ctx, s.notifier, s.competitionRepo, s.logger)
	return nil
}

func newAthletic(input AthleticInput) (*models.Athletic, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: athletic name is required", ErrValidationFailed)
	}
	athletic := &models.Athletic{Name: name}
	if input.LogoURL != nil {
		if logo := strings.TrimSpace(*input.LogoURL); logo != "" {
			athletic.LogoURL = &logo
		}
	}
	return athletic, nil
}
