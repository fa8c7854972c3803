package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/atletica-scoreboard/models"
	"github.com/Dosada05/atletica-scoreboard/repositories"
)

const (
	minCompetitionYear = 2000
	maxCompetitionYear = 2100
)

type CompetitionService interface {
	CreateCompetition(ctx context.Context, input CreateCompetitionInput) (*models.Competition, error)
	ListCompetitions(ctx context.Context) ([]models.Competition, error)
	GetCompetitionByID(ctx context.Context, id int) (*models.Competition, error)
	GetActiveCompetition(ctx context.Context) (*models.Competition, error)
	ActivateCompetition(ctx context.Context, id int) (*models.Competition, error)
	DeleteCompetition(ctx context.Context, id int) error
}

type CreateCompetitionInput struct {
	Name string `json:"name"`
	Year int    `json:"year"`
}

type competitionService struct {
	db              *sql.DB
	competitionRepo repositories.CompetitionRepository
	modalityRepo    repositories.ModalityRepository
	logger          *slog.Logger
}

func NewCompetitionService(
	db *sql.DB,
	competitionRepo repositories.CompetitionRepository,
	modalityRepo repositories.ModalityRepository,
	logger *slog.Logger,
) CompetitionService {
	return &competitionService{
		db:              db,
		competitionRepo: competitionRepo,
		modalityRepo:    modalityRepo,
		logger:          logger,
	}
}

// CreateCompetition makes the new competition the only active one and seeds
// its default modalities in the same transaction.
func (s *competitionService) CreateCompetition(ctx context.Context, input CreateCompetitionInput) (*models.Competition, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: competition name is required", ErrValidationFailed)
	}
	if input.Year < minCompetitionYear || input.Year > maxCompetitionYear {
		return nil, fmt.Errorf("%w: year must be between %d and %d", ErrValidationFailed, minCompetitionYear, maxCompetitionYear)
	}

	competition := &models.Competition{
		Name:     name,
		Year:     input.Year,
		IsActive: true,
	}

	err := withTx(ctx, s.db, s.logger, func(tx *sql.Tx) error {
		if err := s.competitionRepo.DeactivateAll(ctx, tx); err != nil {
			return err
		}
		if err := s.competitionRepo.Create(ctx, tx, competition); err != nil {
			return err
		}
		competition.Modalities = make([]models.Modality, 0, len(models.DefaultModalitySeeds))
		for _, seed := range models.DefaultModalitySeeds {
			modality := models.Modality{
				CompetitionID: competition.ID,
				Name:          seed.Name,
				Gender:        seed.Gender,
				Status:        models.ModalityPending,
			}
			if err := s.modalityRepo.Create(ctx, tx, &modality); err != nil {
				return fmt.Errorf("seed modality %s (%s): %w", seed.Name, seed.Gender, err)
			}
			competition.Modalities = append(competition.Modalities, modality)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create competition: %w", err)
	}

	s.logger.InfoContext(ctx, "competition created",
		slog.Int("competition_id", competition.ID),
		slog.String("name", competition.Name),
		slog.Int("modalities", len(competition.Modalities)))
	return competition, nil
}

func (s *competitionService) ListCompetitions(ctx context.Context) ([]models.Competition, error) {
	competitions, err := s.competitionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list competitions: %w", err)
	}
	if competitions == nil {
		return []models.Competition{}, nil
	}
	return competitions, nil
}

func (s *competitionService) GetCompetitionByID(ctx context.Context, id int) (*models.Competition, error) {
	competition, err := s.competitionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapCompetitionError(err, id)
	}
	if err := s.attachModalities(ctx, competition); err != nil {
		return nil, err
	}
	return competition, nil
}

func (s *competitionService) GetActiveCompetition(ctx context.Context) (*models.Competition, error) {
	competition, err := s.competitionRepo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrNoActiveCompetition) {
			return nil, ErrNoActiveCompetition
		}
		return nil, fmt.Errorf("failed to get active competition: %w", err)
	}
	if err := s.attachModalities(ctx, competition); err != nil {
		return nil, err
	}
	return competition, nil
}

func (s *competitionService) ActivateCompetition(ctx context.Context, id int) (*models.Competition, error) {
	err := withTx(ctx, s.db, s.logger, func(tx *sql.Tx) error {
		if err := s.competitionRepo.DeactivateAll(ctx, tx); err != nil {
			return err
		}
		return s.competitionRepo.Activate(ctx, tx, id)
	})
	if err != nil {
		return nil, mapCompetitionError(err, id)
	}
	s.logger.InfoContext(ctx, "competition activated", slog.Int("competition_id", id))
	return s.GetCompetitionByID(ctx, id)
}

func (s *competitionService) DeleteCompetition(ctx context.Context, id int) error {
	if err := s.competitionRepo.Delete(ctx, id); err != nil {
		return mapCompetitionError(err, id)
	}
	s.logger.InfoContext(ctx, "competition deleted", slog.Int("competition_id", id))
	return nil
}

func (s *competitionService) attachModalities(ctx context.Context, competition *models.Competition) error {
	modalities, err := s.modalityRepo.ListByCompetition(ctx, competition.ID)
	if err != nil {
		return fmt.Errorf("failed to list modalities of competition %d: %w", competition.ID, err)
	}
	if modalities == nil {
		modalities = []models.Modality{}
	}
	competition.Modalities = modalities
	return nil
}

func mapCompetitionError(err error, id int) error {
	if errors.Is(err, repositories.ErrCompetitionNotFound) {
		return ErrCompetitionNotFound
	}
	return fmt.Errorf("competition %d: %w", id, err)
}
