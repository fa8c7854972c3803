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

type PenaltyService interface {
	CreatePenalty(ctx context.Context, competitionID int, input CreatePenaltyInput) (*models.Penalty, error)
	ListPenalties(ctx context.Context, competitionID int) ([]models.Penalty, error)
	DeletePenalty(ctx context.Context, competitionID, id int) error
}

type CreatePenaltyInput struct {
	AthleticID int    `json:"athletic_id"`
	Points     int    `json:"points"`
	Reason     string `json:"reason"`
}

type penaltyService struct {
	penaltyRepo  repositories.PenaltyRepository
	athleticRepo repositories.AthleticRepository
	notifier     StandingsNotifier
	logger       *slog.Logger
}

func NewPenaltyService(
	penaltyRepo repositories.PenaltyRepository,
	athleticRepo repositories.AthleticRepository,
	notifier StandingsNotifier,
	logger *slog.Logger,
) PenaltyService {
	return &penaltyService{
		penaltyRepo:  penaltyRepo,
		athleticRepo: athleticRepo,
		notifier:     notifier,
		logger:       logger,
	}
}

func (s *penaltyService) CreatePenalty(ctx context.Context, competitionID int, input CreatePenaltyInput) (*models.Penalty, error) {
	reason := strings.TrimSpace(input.Reason)
	if input.Points <= 0 {
		return nil, fmt.Errorf("%w: penalty points must be positive", ErrValidationFailed)
	}
	if reason == "" {
		return nil, fmt.Errorf("%w: penalty reason is required", ErrValidationFailed)
	}
	if _, err := s.athleticRepo.GetByID(ctx, input.AthleticID); err != nil {
		if errors.Is(err, repositories.ErrAthleticNotFound) {
			return nil, ErrAthleticNotFound
		}
		return nil, fmt.Errorf("failed to check athletic %d: %w", input.AthleticID, err)
	}

	penalty := &models.Penalty{
		CompetitionID: competitionID,
		AthleticID:    input.AthleticID,
		Points:        input.Points,
		Reason:        reason,
	}
	if err := s.penaltyRepo.Create(ctx, penalty); err != nil {
		if errors.Is(err, repositories.ErrCompetitionNotFound) {
			return nil, ErrCompetitionNotFound
		}
		return nil, fmt.Errorf("failed to create penalty: %w", err)
	}

	s.logger.InfoContext(ctx, "penalty applied",
		slog.Int("competition_id", competitionID),
		slog.Int("athletic_id", penalty.AthleticID),
		slog.Int("points", penalty.Points))
	s.notify(ctx, competitionID)
	return penalty, nil
}

func (s *penaltyService) ListPenalties(ctx context.Context, competitionID int) ([]models.Penalty, error) {
	penalties, err := s.penaltyRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list penalties: %w", err)
	}
	if penalties == nil {
		return []models.Penalty{}, nil
	}
	return penalties, nil
}

func (s *penaltyService) DeletePenalty(ctx context.Context, competitionID, id int) error {
	if err := s.penaltyRepo.Delete(ctx, competitionID, id); err != nil {
		if errors.Is(err, repositories.ErrPenaltyNotFound) {
			return ErrPenaltyNotFound
		}
		return fmt.Errorf("failed to delete penalty %d: %w", id, err)
	}
	s.notify(ctx, competitionID)
	return nil
}

func (s *penaltyService) notify(ctx context.Context, competitionID int) {
	if s.notifier != nil {
		s.notifier.NotifyChanged(ctx, competitionID)
	}
}
