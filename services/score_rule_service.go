package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/atletica-scoreboard/models"
	"github.com/Dosada05/atletica-scoreboard/repositories"
)

type ScoreRuleService interface {
	GetScoreRules(ctx context.Context, competitionID int) (*ScoreRules, error)
	SetOverride(ctx context.Context, competitionID, modalityID int, points models.ScoreRule) (*models.ModalityScoreRule, error)
	DeleteOverride(ctx context.Context, competitionID, modalityID int) error
}

// ScoreRules is the rule set in force for a competition.
type ScoreRules struct {
	Default          models.ScoreRule           `json:"default"`
	OverridesEnabled bool                       `json:"overrides_enabled"`
	Overrides        []models.ModalityScoreRule `json:"overrides"`
}

type scoreRuleService struct {
	policy        ScoreRulePolicy
	scoreRuleRepo repositories.ScoreRuleRepository
	modalityRepo  repositories.ModalityRepository
	notifier      StandingsNotifier
	logger        *slog.Logger
}

func NewScoreRuleService(
	policy ScoreRulePolicy,
	scoreRuleRepo repositories.ScoreRuleRepository,
	modalityRepo repositories.ModalityRepository,
	notifier StandingsNotifier,
	logger *slog.Logger,
) ScoreRuleService {
	if len(policy.Default) == 0 {
		policy.Default = models.DefaultScoreRule
	}
	return &scoreRuleService{
		policy:        policy,
		scoreRuleRepo: scoreRuleRepo,
		modalityRepo:  modalityRepo,
		notifier:      notifier,
		logger:        logger,
	}
}

func (s *scoreRuleService) GetScoreRules(ctx context.Context, competitionID int) (*ScoreRules, error) {
	rules := &ScoreRules{
		Default:          s.policy.Default,
		OverridesEnabled: s.policy.OverridesEnabled,
		Overrides:        []models.ModalityScoreRule{},
	}
	if !s.policy.OverridesEnabled {
		return rules, nil
	}
	overrides, err := s.scoreRuleRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list score rules: %w", err)
	}
	if overrides != nil {
		rules.Overrides = overrides
	}
	return rules, nil
}

func (s *scoreRuleService) SetOverride(ctx context.Context, competitionID, modalityID int, points models.ScoreRule) (*models.ModalityScoreRule, error) {
	if !s.policy.OverridesEnabled {
		return nil, ErrScoreRuleOverridesOff
	}
	if err := points.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	if _, err := modalityInCompetition(ctx, s.modalityRepo, competitionID, modalityID); err != nil {
		return nil, err
	}

	rule := models.ModalityScoreRule{ModalityID: modalityID, Points: points}
	if err := s.scoreRuleRepo.Upsert(ctx, rule); err != nil {
		if errors.Is(err, repositories.ErrModalityNotFound) {
			return nil, ErrModalityNotFound
		}
		return nil, fmt.Errorf("failed to save score rule of modality %d: %w", modalityID, err)
	}

	s.logger.InfoContext(ctx, "score rule override saved",
		slog.Int("competition_id", competitionID),
		slog.Int("modality_id", modalityID),
		slog.Any("points", []int(points)))
	if s.notifier != nil {
		s.notifier.NotifyChanged(ctx, competitionID)
	}
	return &rule, nil
}

func (s *scoreRuleService) DeleteOverride(ctx context.Context, competitionID, modalityID int) error {
	if !s.policy.OverridesEnabled {
		return ErrScoreRuleOverridesOff
	}
	if _, err := modalityInCompetition(ctx, s.modalityRepo, competitionID, modalityID); err != nil {
		return err
	}
	if err := s.scoreRuleRepo.Delete(ctx, modalityID); err != nil {
		if errors.Is(err, repositories.ErrScoreRuleNotFound) {
			return ErrScoreRuleNotFound
		}
		return fmt.Errorf("failed to delete score rule of modality %d: %w", modalityID, err)
	}
	if s.notifier != nil {
		s.notifier.NotifyChanged(ctx, competitionID)
	}
	return nil
}
