package main

import (
	"context"
	"database/sql"
	"fleet-dispatch-service/internal/adapters/llm"
	"fleet-dispatch-service/internal/adapters/repositories"
	"fleet-dispatch-service/internal/api"
	"fleet-dispatch-service/internal/config"
	"fleet-dispatch-service/internal/ports"
	"fleet-dispatch-service/internal/services"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires the Gemini collaborator (or the offline mock) and the optional
// SQLite structure snapshot behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	dbPath := config.Get("DB_PATH", "data/app.db")
	model := config.Get("GEMINI_MODEL", "")

	var repo ports.StructureRepository
	if strings.TrimSpace(dbPath) != "" {
		db, err := openDB(dbPath)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()

		if err := repositories.InitSchema(db); err != nil {
			log.Fatal(err)
		}
		repo = repositories.NewSqliteStructureRepository(db)
	} else {
		log.Println("DB_PATH is empty, daily structure will not survive restarts")
	}

	ctx := context.Background()

	// Without an API key the service still runs end to end against the
	// deterministic offline collaborator, which is enough for demos.
	var optimizer ports.RouteOptimizer
	var parser ports.AvailabilityParser
	apiKey := os.Getenv("GEMINI_API_KEY")
	if strings.TrimSpace(apiKey) == "" {
		log.Println("GEMINI_API_KEY is empty, using the offline demo collaborator")
		mock := llm.NewMockCollaborator()
		optimizer, parser = mock, mock
	} else {
		gemini, err := llm.NewGeminiCollaborator(ctx, apiKey, model)
		if err != nil {
			log.Fatal(err)
		}
		optimizer, parser = gemini, gemini
	}

	dispatcher, err := services.NewDispatcher(optimizer, parser, repo)
	if err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(dispatcher)

	// The write timeout is generous because manifest ingestion waits on the
	// external model.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}
