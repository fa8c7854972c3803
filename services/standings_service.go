package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/atletica-scoreboard/live"
	"github.com/Dosada05/atletica-scoreboard/metrics"
	"github.com/Dosada05/atletica-scoreboard/models"
	"github.com/Dosada05/atletica-scoreboard/reports"
	"github.com/Dosada05/atletica-scoreboard/repositories"
	"github.com/Dosada05/atletica-scoreboard/standings"
	"github.com/Dosada05/atletica-scoreboard/storage"
)

const tracerName = "github.com/Dosada05/atletica-scoreboard/services"

// StandingsNotifier is told about every write that can change a
// competition's standings.
type StandingsNotifier interface {
	NotifyChanged(ctx context.Context, competitionID int)
}

// Broadcaster delivers a typed message to everyone watching a competition.
type Broadcaster interface {
	Publish(competitionID int, messageType string, payload any)
}

// ScoreRulePolicy is the configured default rule and whether per-modality
// overrides are honoured.
type ScoreRulePolicy struct {
	Default          models.ScoreRule
	OverridesEnabled bool
}

type StandingsService interface {
	StandingsNotifier
	GetStandings(ctx context.Context, competitionID int) (*CompetitionStandings, error)
	Publish(ctx context.Context, competitionID int) (*PublishedStandings, error)
	ExportXLSX(ctx context.Context, competitionID int) ([]byte, error)
	ExportChart(ctx context.Context, competitionID int) ([]byte, error)
	ScoreboardQRCode(size int) ([]byte, error)
}

// CompetitionStandings is the leaderboard of one competition.
type CompetitionStandings struct {
	Competition models.Competition           `json:"competition"`
	Standings   []models.LeaderboardEntry    `json:"standings"`
	Skipped     []standings.SkippedReference `json:"skipped,omitempty"`
	GeneratedAt time.Time                    `json:"generated_at"`
}

type PublishedStandings struct {
	URL        string `json:"url"`
	HistoryURL string `json:"history_url"`
}

type StandingsServiceDeps struct {
	CompetitionRepo     repositories.CompetitionRepository
	AthleticRepo        repositories.AthleticRepository
	ResultRepo          repositories.ResultRepository
	PenaltyRepo         repositories.PenaltyRepository
	ScoreRuleRepo       repositories.ScoreRuleRepository
	SettingsRepo        repositories.SettingsRepository
	Rules               ScoreRulePolicy
	Broadcaster         Broadcaster
	// Uploader is nil when publishing is not configured.
	Uploader            storage.Uploader
	Metrics             *metrics.Metrics
	// TracerProvider defaults to the global provider.
	TracerProvider      trace.TracerProvider
	PublicScoreboardURL string
	Logger              *slog.Logger
}

type standingsService struct {
	deps   StandingsServiceDeps
	tracer trace.Tracer
	now    func() time.Time
}

func NewStandingsService(deps StandingsServiceDeps) StandingsService {
	tp := deps.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &standingsService{
		deps:   deps,
		tracer: tp.Tracer(tracerName),
		now:    time.Now,
	}
}

// GetStandings loads the competition's roster, results, penalties and score
// rule overrides concurrently and ranks the athletics.
func (s *standingsService) GetStandings(ctx context.Context, competitionID int) (*CompetitionStandings, error) {
	ctx, span := s.tracer.Start(ctx, "standings.Get", trace.WithAttributes(attribute.Int("competition.id", competitionID)))
	defer span.End()

	start := s.now()

	var (
		competition *models.Competition
		athletics   []models.Athletic
		results     []models.Result
		penalties   []models.Penalty
		overrides   []models.ModalityScoreRule
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := s.deps.CompetitionRepo.GetByID(gCtx, competitionID)
		if err != nil {
			return mapCompetitionError(err, competitionID)
		}
		competition = c
		return nil
	})
	g.Go(func() error {
		var err error
		athletics, err = s.deps.AthleticRepo.List(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load athletics: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		results, err = s.deps.ResultRepo.ListByCompetition(gCtx, competitionID)
		if err != nil {
			return fmt.Errorf("failed to load results: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		penalties, err = s.deps.PenaltyRepo.ListByCompetition(gCtx, competitionID)
		if err != nil {
			return fmt.Errorf("failed to load penalties: %w", err)
		}
		return nil
	})
	if s.deps.Rules.OverridesEnabled {
		g.Go(func() error {
			var err error
			overrides, err = s.deps.ScoreRuleRepo.ListByCompetition(gCtx, competitionID)
			if err != nil {
				return fmt.Errorf("failed to load score rules: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load standings inputs")
		return nil, err
	}

	table := standings.Compute(standings.Input{
		Athletics: athletics,
		Results:   results,
		Penalties: penalties,
		Rules:     standings.NewRuleBook(s.deps.Rules.Default, overrides),
	})

	skippedByKind := make(map[string]int)
	for _, ref := range table.Skipped {
		skippedByKind[string(ref.Kind)]++
		s.deps.Logger.WarnContext(ctx, "standings skipped a reference to an unknown athletic",
			slog.Int("competition_id", competitionID),
			slog.String("kind", string(ref.Kind)),
			slog.Int("source_id", ref.SourceID),
			slog.Int("athletic_id", ref.AthleticID),
			slog.Int("rank", ref.Rank))
	}
	s.deps.Metrics.ObserveStandings(s.now().Sub(start), skippedByKind)

	span.SetAttributes(
		attribute.Int("standings.athletics", len(table.Entries)),
		attribute.Int("standings.results", len(results)),
		attribute.Int("standings.skipped", len(table.Skipped)),
	)

	competition.Modalities = nil
	return &CompetitionStandings{
		Competition: *competition,
		Standings:   table.Entries,
		Skipped:     table.Skipped,
		GeneratedAt: s.now().UTC(),
	}, nil
}

// NotifyChanged recomputes the standings and pushes them to the
// competition's live room. Failures are logged; the triggering write has
// already succeeded.
func (s *standingsService) NotifyChanged(ctx context.Context, competitionID int) {
	if s.deps.Broadcaster == nil {
		return
	}
	current, err := s.GetStandings(ctx, competitionID)
	if err != nil {
		s.deps.Logger.ErrorContext(ctx, "failed to refresh live standings",
			slog.Int("competition_id", competitionID), slog.Any("error", err))
		return
	}
	s.deps.Broadcaster.Publish(competitionID, live.MessageStandingsUpdated, current.Standings)
}

// Publish uploads the standings JSON to object storage, overwriting the
// current document and keeping a uniquely named history copy.
func (s *standingsService) Publish(ctx context.Context, competitionID int) (published *PublishedStandings, err error) {
	if s.deps.Uploader == nil {
		return nil, ErrPublishingDisabled
	}
	defer func() { s.deps.Metrics.StandingsPublished(err == nil) }()

	current, err := s.GetStandings(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("failed to encode standings: %w", err)
	}

	latestKey := fmt.Sprintf("competitions/%d/standings.json", competitionID)
	historyKey := fmt.Sprintf("competitions/%d/history/%s.json", competitionID, uuid.NewString())

	latest, err := s.deps.Uploader.Upload(ctx, storage.Object{
		Key:          latestKey,
		ContentType:  "application/json",
		CacheControl: "no-cache",
		Body:         bytes.NewReader(body),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to publish standings: %w", err)
	}
	history, err := s.deps.Uploader.Upload(ctx, storage.Object{
		Key:          historyKey,
		ContentType:  "application/json",
		CacheControl: "public, max-age=31536000, immutable",
		Body:         bytes.NewReader(body),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store standings history: %w", err)
	}

	s.deps.Logger.InfoContext(ctx, "standings published",
		slog.Int("competition_id", competitionID),
		slog.String("url", latest.Location),
		slog.String("history_key", history.Key))

	return &PublishedStandings{URL: latest.Location, HistoryURL: history.Location}, nil
}

func (s *standingsService) ExportXLSX(ctx context.Context, competitionID int) ([]byte, error) {
	current, err := s.GetStandings(ctx, competitionID)
	if err != nil {
		return nil, err
	}
	return reports.StandingsXLSX(current.Competition, current.Standings)
}

func (s *standingsService) ExportChart(ctx context.Context, competitionID int) ([]byte, error) {
	current, err := s.GetStandings(ctx, competitionID)
	if err != nil {
		return nil, err
	}

	settings := models.DefaultAppSettings
	if s.deps.SettingsRepo != nil {
		stored, err := s.deps.SettingsRepo.Get(ctx)
		if err != nil {
			s.deps.Logger.WarnContext(ctx, "using default chart colours", slog.Any("error", err))
		} else {
			settings = *stored
		}
	}

	title := fmt.Sprintf("%s %d", current.Competition.Name, current.Competition.Year)
	return reports.StandingsChart(title, current.Standings, reports.PaletteFromSettings(settings))
}

func (s *standingsService) ScoreboardQRCode(size int) ([]byte, error) {
	if s.deps.PublicScoreboardURL == "" {
		return nil, fmt.Errorf("%w: public scoreboard URL is not configured", ErrValidationFailed)
	}
	return reports.QRCode(s.deps.PublicScoreboardURL, size)
}

// notifyActive refreshes the standings of the active competition, if any.
func notifyActive(ctx context.Context, notifier StandingsNotifier, competitionRepo repositories.CompetitionRepository, logger *slog.Logger) {
	if notifier == nil {
		return
	}
	active, err := competitionRepo.GetActive(ctx)
	if err != nil {
		if !errors.Is(err, repositories.ErrNoActiveCompetition) {
			logger.WarnContext(ctx, "failed to look up active competition", slog.Any("error", err))
		}
		return
	}
	notifier.NotifyChanged(ctx, active.ID)
}
