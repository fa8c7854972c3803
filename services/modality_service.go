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

type ModalityService interface {
	ListModalities(ctx context.Context, competitionID int) ([]models.Modality, error)
	CreateModality(ctx context.Context, competitionID int, input ModalityInput) (*models.Modality, error)
	UpdateModality(ctx context.Context, competitionID, id int, input ModalityInput) (*models.Modality, error)
	DeleteModality(ctx context.Context, competitionID, id int) error
}

// ModalityInput carries the editable fields. An empty Status leaves the
// current status unchanged on update.
type ModalityInput struct {
	Name   string                `json:"name"`
	Gender models.Gender         `json:"gender"`
	Status models.ModalityStatus `json:"status,omitempty"`
}

type modalityService struct {
	modalityRepo    repositories.ModalityRepository
	competitionRepo repositories.CompetitionRepository
	notifier        StandingsNotifier
	logger          *slog.Logger
}

func NewModalityService(
	modalityRepo repositories.ModalityRepository,
	competitionRepo repositories.CompetitionRepository,
	notifier StandingsNotifier,
	logger *slog.Logger,
) ModalityService {
	return &modalityService{
		modalityRepo:    modalityRepo,
		competitionRepo: competitionRepo,
		notifier:        notifier,
		logger:          logger,
	}
}

func (s *modalityService) ListModalities(ctx context.Context, competitionID int) ([]models.Modality, error) {
	if _, err := s.competitionRepo.GetByID(ctx, competitionID); err != nil {
		return nil, mapCompetitionError(err, competitionID)
	}
	modalities, err := s.modalityRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list modalities: %w", err)
	}
	if modalities == nil {
		return []models.Modality{}, nil
	}
	return modalities, nil
}

func (s *modalityService) CreateModality(ctx context.Context, competitionID int, input ModalityInput) (*models.Modality, error) {
	name, err := validateModalityInput(input)
	if err != nil {
		return nil, err
	}

	modality := &models.Modality{
		CompetitionID: competitionID,
		Name:          name,
		Gender:        input.Gender,
		Status:        models.ModalityPending,
	}
	if err := s.modalityRepo.Create(ctx, nil, modality); err != nil {
		return nil, mapModalityError(err, 0)
	}
	return modality, nil
}

func (s *modalityService) UpdateModality(ctx context.Context, competitionID, id int, input ModalityInput) (*models.Modality, error) {
	name, err := validateModalityInput(input)
	if err != nil {
		return nil, err
	}

	modality, err := s.getInCompetition(ctx, competitionID, id)
	if err != nil {
		return nil, err
	}
	modality.Name = name
	modality.Gender = input.Gender
	if input.Status != "" {
		modality.Status = input.Status
	}

	if err := s.modalityRepo.Update(ctx, modality); err != nil {
		return nil, mapModalityError(err, id)
	}
	return modality, nil
}

// DeleteModality removes the modality and, through the schema cascade, its
// result and score rule override.
func (s *modalityService) DeleteModality(ctx context.Context, competitionID, id int) error {
	if _, err := s.getInCompetition(ctx, competitionID, id); err != nil {
		return err
	}
	if err := s.modalityRepo.Delete(ctx, id); err != nil {
		return mapModalityError(err, id)
	}
	s.logger.InfoContext(ctx, "modality deleted", slog.Int("competition_id", competitionID), slog.Int("modality_id", id))
	if s.notifier != nil {
		s.notifier.NotifyChanged(ctx, competitionID)
	}
	return nil
}

func (s *modalityService) getInCompetition(ctx context.Context, competitionID, id int) (*models.Modality, error) {
	return modalityInCompetition(ctx, s.modalityRepo, competitionID, id)
}

func modalityInCompetition(ctx context.Context, repo repositories.ModalityRepository, competitionID, id int) (*models.Modality, error) {
	modality, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapModalityError(err, id)
	}
	if modality.CompetitionID != competitionID {
		return nil, ErrModalityNotInCompetition
	}
	return modality, nil
}

func validateModalityInput(input ModalityInput) (string, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return "", fmt.Errorf("%w: modality name is required", ErrValidationFailed)
	}
	if !input.Gender.Valid() {
		return "", fmt.Errorf("%w: gender must be one of M, F, Misto", ErrValidationFailed)
	}
	if input.Status != "" && !input.Status.Valid() {
		return "", fmt.Errorf("%w: status must be pending or finished", ErrValidationFailed)
	}
	return name, nil
}

func mapModalityError(err error, id int) error {
	switch {
	case errors.Is(err, repositories.ErrModalityNotFound):
		return ErrModalityNotFound
	case errors.Is(err, repositories.ErrModalityConflict):
		return ErrModalityConflict
	case errors.Is(err, repositories.ErrCompetitionNotFound):
		return ErrCompetitionNotFound
	default:
		return fmt.Errorf("modality %d: %w", id, err)
	}
}
