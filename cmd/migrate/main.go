package main

import (
	"log"
	"os"

	"emvenn/adapters/postgres"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate <database_url>")
	}

	databaseURL := os.Args[1]

	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := postgres.Schema(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("simulation_runs schema is up to date")
}
