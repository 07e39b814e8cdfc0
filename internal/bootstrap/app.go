package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"feedback-backend/internal/actions"
	"feedback-backend/internal/classify"
	"feedback-backend/internal/feedback"
	"feedback-backend/internal/recommendations"
	"feedback-backend/internal/services/health"
	"feedback-backend/internal/shared/config"
	"feedback-backend/internal/shared/server"
	"feedback-backend/internal/shared/storage/db"
	"feedback-backend/internal/weights"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	FeedbackRepo       feedback.Repo
	RecommendationRepo recommendations.Repo
	WeightsRepo        weights.Repo

	Classifier *classify.Classifier
	Aggregator *actions.Aggregator

	FeedbackService       *feedback.Service
	RecommendationService *recommendations.Service
	WeightsService        *weights.Service
	Health                *health.Service

	FeedbackHandler       *feedback.Handler
	RecommendationHandler *recommendations.Handler
	WeightsHandler        *weights.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	table, err := buildTable(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
	}

	app.Classifier = classify.NewClassifier(table)
	app.Aggregator = actions.NewAggregator(app.Classifier)

	if sqlDB != nil {
		app.FeedbackRepo = &feedback.PGRepo{DB: sqlDB}
		app.RecommendationRepo = &recommendations.PGRepo{DB: sqlDB}
		app.WeightsRepo = &weights.PGRepo{DB: sqlDB}
	} else {
		app.FeedbackRepo = feedback.NewMemoryRepo()
		app.RecommendationRepo = recommendations.NewMemoryRepo()
		app.WeightsRepo = weights.NewMemoryRepo()
	}

	app.FeedbackService = feedback.NewService(app.FeedbackRepo, app.Aggregator)
	app.RecommendationService = recommendations.NewService(app.RecommendationRepo)
	app.WeightsService = weights.NewService(app.WeightsRepo)
	app.Health = health.NewService(sqlDB)

	app.FeedbackHandler = feedback.NewHandler(app.FeedbackService)
	app.RecommendationHandler = recommendations.NewHandler(app.RecommendationService, app.WeightsService)
	app.WeightsHandler = weights.NewHandler(app.WeightsService)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:                app.Config,
		Health:                app.Health,
		FeedbackHandler:       app.FeedbackHandler,
		RecommendationHandler: app.RecommendationHandler,
		WeightsHandler:        app.WeightsHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func buildTable(cfg config.Config) (classify.Table, error) {
	if strings.TrimSpace(cfg.PatternsFile) != "" {
		return classify.LoadTable(cfg.PatternsFile)
	}
	return classify.DefaultTable()
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
