package main

import (
	"log"

	"emvenn/adapters/postgres"
	"emvenn/adapters/rng"
	"emvenn/app"
	"emvenn/internal"
	"emvenn/internal/config"
	"emvenn/internal/testkit"
	"emvenn/ports"
	"emvenn/ui"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Load .env file if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()

	var runs ports.RunRepository
	if cfg.Database.URL != "" {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := postgres.Schema(db); err != nil {
			log.Fatalf("Failed to prepare schema: %v", err)
		}
		runs = postgres.NewRunRepository(db)
		logger.Info("persisting runs to postgres")
	} else {
		runs = testkit.NewInMemoryRunRepository()
		logger.Info("DATABASE_URL not set, keeping runs in memory")
	}

	sim := app.NewSimulationService(rng.NewAdapter(), runs)

	server := ui.NewApp(ui.Config{
		Port:         cfg.Server.Port,
		Defaults:     cfg.Simulation.Parameters(),
		TemplatePath: cfg.Paths.TemplateFile,
	}, ui.Deps{
		Simulation: sim,
		Reports:    app.NewReportService(),
		Runs:       runs,
		Logger:     logger,
	})

	if err := server.Start(cfg.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
