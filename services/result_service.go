package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/atletica-scoreboard/brackets"
	"github.com/Dosada05/atletica-scoreboard/live"
	"github.com/Dosada05/atletica-scoreboard/metrics"
	"github.com/Dosada05/atletica-scoreboard/models"
	"github.com/Dosada05/atletica-scoreboard/repositories"
)

const (
	entryModeManual  = "manual"
	entryModeBracket = "bracket"
)

type ResultService interface {
	// SaveRanking stores the placement of a modality and marks it finished.
	SaveRanking(ctx context.Context, competitionID, modalityID int, ranking models.Ranking) (*models.Result, error)
	// SaveBracket resolves a knockout bracket into a ranking and stores it.
	SaveBracket(ctx context.Context, competitionID, modalityID int, snapshot brackets.Snapshot) (*models.Result, error)
	PreviewBracket(ctx context.Context, snapshot brackets.Snapshot) (*BracketPreview, error)
	ListResults(ctx context.Context, competitionID int) ([]models.Result, error)
	GetResult(ctx context.Context, competitionID, modalityID int) (*models.Result, error)
	DeleteResult(ctx context.Context, competitionID, modalityID int) error
}

// BracketPreview is a replayed bracket with every derived slot filled in.
// Ranking is nil until the final has a winner.
type BracketPreview struct {
	Bracket      brackets.Snapshot `json:"bracket"`
	Ranking      models.Ranking    `json:"ranking,omitempty"`
	FinalDecided bool              `json:"final_decided"`
}

type resultService struct {
	db           *sql.DB
	resultRepo   repositories.ResultRepository
	modalityRepo repositories.ModalityRepository
	athleticRepo repositories.AthleticRepository
	notifier     StandingsNotifier
	broadcaster  Broadcaster
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

func NewResultService(
	db *sql.DB,
	resultRepo repositories.ResultRepository,
	modalityRepo repositories.ModalityRepository,
	athleticRepo repositories.AthleticRepository,
	notifier StandingsNotifier,
	broadcaster Broadcaster,
	m *metrics.Metrics,
	logger *slog.Logger,
) ResultService {
	return &resultService{
		db:           db,
		resultRepo:   resultRepo,
		modalityRepo: modalityRepo,
		athleticRepo: athleticRepo,
		notifier:     notifier,
		broadcaster:  broadcaster,
		metrics:      m,
		logger:       logger,
	}
}

func (s *resultService) SaveRanking(ctx context.Context, competitionID, modalityID int, ranking models.Ranking) (*models.Result, error) {
	return s.save(ctx, competitionID, modalityID, ranking, entryModeManual)
}

func (s *resultService) SaveBracket(ctx context.Context, competitionID, modalityID int, snapshot brackets.Snapshot) (*models.Result, error) {
	modality, err := modalityInCompetition(ctx, s.modalityRepo, competitionID, modalityID)
	if err != nil {
		return nil, err
	}
	if !modality.IsCollective() {
		return nil, ErrBracketNotAllowed
	}

	bracket, err := brackets.Replay(snapshot)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBracket, err)
	}
	ranking, err := bracket.Resolve()
	if err != nil {
		if errors.Is(err, brackets.ErrFinalUndecided) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidBracket, err)
	}

	return s.save(ctx, competitionID, modalityID, ranking, entryModeBracket)
}

func (s *resultService) PreviewBracket(_ context.Context, snapshot brackets.Snapshot) (*BracketPreview, error) {
	bracket, err := brackets.Replay(snapshot)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBracket, err)
	}

	preview := &BracketPreview{Bracket: bracket.Snapshot()}
	ranking, err := bracket.Resolve()
	switch {
	case errors.Is(err, brackets.ErrFinalUndecided):
		return preview, nil
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrInvalidBracket, err)
	}
	preview.Ranking = ranking
	preview.FinalDecided = true
	return preview, nil
}

func (s *resultService) ListResults(ctx context.Context, competitionID int) ([]models.Result, error) {
	results, err := s.resultRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	if results == nil {
		return []models.Result{}, nil
	}
	return results, nil
}

func (s *resultService) GetResult(ctx context.Context, competitionID, modalityID int) (*models.Result, error) {
	result, err := s.resultRepo.GetByModality(ctx, competitionID, modalityID)
	if err != nil {
		if errors.Is(err, repositories.ErrResultNotFound) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to get result: %w", err)
	}
	return result, nil
}

// DeleteResult removes the modality's result and puts the modality back to pending.
func (s *resultService) DeleteResult(ctx context.Context, competitionID, modalityID int) error {
	if _, err := modalityInCompetition(ctx, s.modalityRepo, competitionID, modalityID); err != nil {
		return err
	}

	err := withTx(ctx, s.db, s.logger, func(tx *sql.Tx) error {
		if err := s.resultRepo.DeleteByModality(ctx, tx, competitionID, modalityID); err != nil {
			return err
		}
		return s.modalityRepo.UpdateStatus(ctx, tx, modalityID, models.ModalityPending)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrResultNotFound) {
			return ErrResultNotFound
		}
		return fmt.Errorf("failed to delete result of modality %d: %w", modalityID, err)
	}

	s.logger.InfoContext(ctx, "result deleted",
		slog.Int("competition_id", competitionID), slog.Int("modality_id", modalityID))
	s.announce(ctx, competitionID, live.MessageResultDeleted, map[string]int{"modality_id": modalityID})
	return nil
}

func (s *resultService) save(ctx context.Context, competitionID, modalityID int, ranking models.Ranking, mode string) (*models.Result, error) {
	if _, err := modalityInCompetition(ctx, s.modalityRepo, competitionID, modalityID); err != nil {
		return nil, err
	}
	if err := s.validateRanking(ctx, ranking); err != nil {
		return nil, err
	}

	result := &models.Result{
		CompetitionID: competitionID,
		ModalityID:    modalityID,
		Ranking:       ranking.Clone(),
	}
	err := withTx(ctx, s.db, s.logger, func(tx *sql.Tx) error {
		if err := s.resultRepo.Upsert(ctx, tx, result); err != nil {
			return err
		}
		return s.modalityRepo.UpdateStatus(ctx, tx, modalityID, models.ModalityFinished)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrResultModalityInvalid) {
			return nil, ErrModalityNotFound
		}
		return nil, fmt.Errorf("failed to save result of modality %d: %w", modalityID, err)
	}

	s.metrics.ResultSaved(mode)
	s.logger.InfoContext(ctx, "result saved",
		slog.Int("competition_id", competitionID),
		slog.Int("modality_id", modalityID),
		slog.String("mode", mode),
		slog.Int("placements", len(ranking)))
	s.announce(ctx, competitionID, live.MessageResultSaved, result)
	return result, nil
}

func (s *resultService) validateRanking(ctx context.Context, ranking models.Ranking) error {
	if len(ranking) == 0 {
		return ErrEmptyRanking
	}

	athletics, err := s.athleticRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load athletics: %w", err)
	}
	known := make(map[int]bool, len(athletics))
	for _, a := range athletics {
		known[a.ID] = true
	}

	placed := make(map[int]int, len(ranking))
	for _, rank := range ranking.Ranks() {
		if rank < 1 || rank > models.MaxRank {
			return fmt.Errorf("%w: got %d", ErrRankOutOfRange, rank)
		}
		athleticID := ranking[rank]
		if !known[athleticID] {
			return fmt.Errorf("%w: athletic %d at rank %d", ErrUnknownRankingAthletic, athleticID, rank)
		}
		if prev, dup := placed[athleticID]; dup {
			return fmt.Errorf("%w: athletic %d at ranks %d and %d", ErrDuplicateRankingAthletic, athleticID, prev, rank)
		}
		placed[athleticID] = rank
	}
	return nil
}

func (s *resultService) announce(ctx context.Context, competitionID int, messageType string, payload any) {
	if s.broadcaster != nil {
		s.broadcaster.Publish(competitionID, messageType, payload)
	}
	if s.notifier != nil {
		s.notifier.NotifyChanged(ctx, competitionID)
	}
}
