package main

import (
	"context"
	"log"
	"os"

	"modeleval/adapters/postgres"
	"modeleval/adapters/report"
	"modeleval/adapters/stats/engines"
	"modeleval/app"
	"modeleval/internal"
	"modeleval/internal/config"
	"modeleval/internal/migration"
	"modeleval/internal/ops"
	"modeleval/internal/testkit"
	"modeleval/ports"
	"modeleval/ui"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

const version = "0.1.0"

// initDatabase connects to PostgreSQL and runs migrations
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}

	migrator := migration.NewRunner()
	if err := migrator.Run(context.Background(), db); err != nil {
		return nil, err
	}
	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()

	// Repository: PostgreSQL when configured, in-memory otherwise.
	var repo ports.EvaluationRepository
	if appConfig.Database.Enabled {
		db, err := initDatabase(appConfig)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()
		repo = postgres.NewEvaluationRepository(db)
		logger.Info("using PostgreSQL evaluation store")
	} else {
		repo = testkit.NewInMemoryEvaluationRepository()
		logger.Warn("DATABASE_URL not set, evaluations are stored in memory only")
	}

	engine := engines.NewMetricsEngine(appConfig.Eval.KSMaxParallel)
	consoleReporter := report.NewConsoleReporter(os.Stdout)
	service := app.NewEvaluationService(engine, repo, consoleReporter, nil, logger)

	if appConfig.Ops.Enabled {
		opsServer := ops.NewServer(version, logger)
		go func() {
			if err := opsServer.Run(appConfig.Ops.Port); err != nil {
				logger.Error("ops server stopped: %v", err)
			}
		}()
	}

	server := ui.NewServer(ui.Config{
		Port:    appConfig.Server.Port,
		GinMode: appConfig.Server.GinMode,
	}, engine, service, logger)

	if err := server.Run(appConfig.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
