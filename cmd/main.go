package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/Dosada05/atletica-scoreboard/config"
	"github.com/Dosada05/atletica-scoreboard/db"
	"github.com/Dosada05/atletica-scoreboard/repositories"
	"github.com/Dosada05/atletica-scoreboard/services"
)

const dbConnectTimeout = 5 * time.Second

func main() {
	app := &cli.App{
		Name:  "scoreboard",
		Usage: "Atlética league administration and live scoreboard",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API and the live standings feed",
				Action: serveCommand,
			},
			{
				Name:  "migrate",
				Usage: "apply or roll back database migrations",
				Subcommands: []*cli.Command{
					{
						Name:   "up",
						Usage:  "apply every pending migration",
						Action: migrateUpCommand,
					},
					{
						Name:  "down",
						Usage: "roll back migrations",
						Flags: []cli.Flag{
							&cli.IntFlag{Name: "steps", Value: 1, Usage: "number of migrations to roll back"},
						},
						Action: migrateDownCommand,
					},
				},
			},
			{
				Name:  "standings",
				Usage: "print the standings table",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "competition", Aliases: []string{"c"}, Usage: "competition ID (default: the active one)"},
				},
				Action: standingsCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("command failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// setup loads the configuration and installs the JSON logger as the default.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func migrateUpCommand(c *cli.Context) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	return db.MigrateUp(cfg.DatabaseDriver, cfg.DatabaseURL, logger)
}

func migrateDownCommand(c *cli.Context) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	return db.MigrateDown(cfg.DatabaseDriver, cfg.DatabaseURL, c.Int("steps"), logger)
}

func standingsCommand(c *cli.Context) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	dbConn, err := db.Connect(cfg.DatabaseDriver, cfg.DatabaseURL, dbConnectTimeout)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	competitionRepo := repositories.NewCompetitionRepository(dbConn)
	standingsService := services.NewStandingsService(services.StandingsServiceDeps{
		CompetitionRepo: competitionRepo,
		AthleticRepo:    repositories.NewAthleticRepository(dbConn),
		ResultRepo:      repositories.NewResultRepository(dbConn),
		PenaltyRepo:     repositories.NewPenaltyRepository(dbConn),
		ScoreRuleRepo:   repositories.NewScoreRuleRepository(dbConn),
		SettingsRepo:    repositories.NewSettingsRepository(dbConn),
		Rules: services.ScoreRulePolicy{
			Default:          cfg.DefaultScoreRule,
			OverridesEnabled: cfg.ScoreRuleOverridesEnabled,
		},
		PublicScoreboardURL: cfg.PublicScoreboardURL,
		Logger:              logger,
	})

	ctx := c.Context
	competitionID := c.Int("competition")
	if competitionID == 0 {
		active, err := services.NewCompetitionService(dbConn, competitionRepo, repositories.NewModalityRepository(dbConn), logger).
			GetActiveCompetition(ctx)
		if err != nil {
			return err
		}
		competitionID = active.ID
	}

	current, err := standingsService.GetStandings(ctx, competitionID)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "%s (%d)\n\n", current.Competition.Name, current.Competition.Year)
	tw := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tATLÉTICA\tPONTOS\tPENALIDADES\tTOTAL")
	for _, entry := range current.Standings {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\n", entry.Position, entry.Name, entry.RawPoints, entry.Penalties, entry.TotalPoints)
	}
	return tw.Flush()
}
