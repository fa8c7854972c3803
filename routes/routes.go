package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Dosada05/atletica-scoreboard/docs"
	"github.com/Dosada05/atletica-scoreboard/handlers"
	"github.com/Dosada05/atletica-scoreboard/metrics"
	"github.com/Dosada05/atletica-scoreboard/middleware"
)

type Handlers struct {
	Competition *handlers.CompetitionHandler
	Athletic    *handlers.AthleticHandler
	Modality    *handlers.ModalityHandler
	Result      *handlers.ResultHandler
	Scoring     *handlers.ScoringHandler
	Standings   *handlers.StandingsHandler
	Finance     *handlers.FinanceHandler
	Inventory   *handlers.InventoryHandler
	Settings    *handlers.SettingsHandler
	WebSocket   *handlers.WebSocketHandler
}

type Options struct {
	AllowedOrigins []string
	RateLimiter    *middleware.IPRateLimiter
	Metrics        *metrics.Metrics
	// RequestTimeout bounds /api/v1 handlers; zero disables it.
	RequestTimeout time.Duration
}

func SetupRoutes(router *chi.Mux, h Handlers, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(middleware.Metrics(opts.Metrics))

	allowedOrigins := opts.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", opts.Metrics.Handler())

	router.Get("/swagger/doc.json", docs.Handler)
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Get("/ws/competitions/{competitionID}", h.WebSocket.ServeWs)

	router.Route("/api/v1", func(r chi.Router) {
		if opts.RateLimiter != nil {
			r.Use(middleware.RateLimit(opts.RateLimiter))
		}
		if opts.RequestTimeout > 0 {
			r.Use(chiMiddleware.Timeout(opts.RequestTimeout))
		}

		r.Get("/standings", h.Standings.GetActiveStandings)
		r.Get("/scoreboard/qrcode.png", h.Standings.ScoreboardQRCode)
		r.Post("/brackets/preview", h.Result.PreviewBracket)

		r.Route("/competitions", func(r chi.Router) {
			r.Get("/", h.Competition.ListCompetitions)
			r.Post("/", h.Competition.CreateCompetition)
			r.Get("/active", h.Competition.GetActiveCompetition)

			r.Route("/{competitionID}", func(r chi.Router) {
				r.Get("/", h.Competition.GetCompetition)
				r.Delete("/", h.Competition.DeleteCompetition)
				r.Post("/activate", h.Competition.ActivateCompetition)

				r.Get("/modalities", h.Modality.ListModalities)
				r.Post("/modalities", h.Modality.CreateModality)
				r.Put("/modalities/{modalityID}", h.Modality.UpdateModality)
				r.Delete("/modalities/{modalityID}", h.Modality.DeleteModality)

				r.Get("/results", h.Result.ListResults)
				r.Get("/results/{modalityID}", h.Result.GetResult)
				r.Put("/results/{modalityID}", h.Result.SaveRanking)
				r.Put("/results/{modalityID}/bracket", h.Result.SaveBracket)
				r.Delete("/results/{modalityID}", h.Result.DeleteResult)

				r.Get("/penalties", h.Scoring.ListPenalties)
				r.Post("/penalties", h.Scoring.CreatePenalty)
				r.Delete("/penalties/{penaltyID}", h.Scoring.DeletePenalty)

				r.Get("/score-rules", h.Scoring.GetScoreRules)
				r.Put("/score-rules/{modalityID}", h.Scoring.SetScoreRuleOverride)
				r.Delete("/score-rules/{modalityID}", h.Scoring.DeleteScoreRuleOverride)

				r.Get("/standings", h.Standings.GetStandings)
				r.Post("/standings/publish", h.Standings.PublishStandings)
				r.Get("/standings/export.xlsx", h.Standings.ExportXLSX)
				r.Get("/standings/chart.png", h.Standings.ExportChart)
			})
		})

		r.Route("/athletics", func(r chi.Router) {
			r.Get("/", h.Athletic.ListAthletics)
			r.Post("/", h.Athletic.CreateAthletic)
			r.Get("/{athleticID}", h.Athletic.GetAthletic)
			r.Put("/{athleticID}", h.Athletic.UpdateAthletic)
			r.Delete("/{athleticID}", h.Athletic.DeleteAthletic)
		})

		r.Route("/finance", func(r chi.Router) {
			r.Get("/categories", h.Finance.ListCategories)
			r.Post("/categories", h.Finance.CreateCategory)
			r.Put("/categories/{categoryID}", h.Finance.RenameCategory)
			r.Delete("/categories/{categoryID}", h.Finance.DeleteCategory)

			r.Get("/transactions", h.Finance.ListTransactions)
			r.Post("/transactions", h.Finance.CreateTransaction)
			r.Delete("/transactions/{transactionID}", h.Finance.DeleteTransaction)

			r.Get("/report", h.Finance.Report)
			r.Get("/export.xlsx", h.Finance.ExportXLSX)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Inventory.ListProducts)
			r.Post("/", h.Inventory.CreateProduct)
			r.Get("/{productID}", h.Inventory.GetProduct)
			r.Put("/{productID}", h.Inventory.UpdateProduct)
			r.Post("/{productID}/stock", h.Inventory.AdjustStock)
			r.Delete("/{productID}", h.Inventory.DeleteProduct)
		})

		r.Get("/settings", h.Settings.GetSettings)
		r.Put("/settings", h.Settings.UpdateSettings)
	})
}
