package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/transcout/transcout"
	"github.com/transcout/transcout/ai"
	"github.com/transcout/transcout/ingestion"
)

// A small built-in corpus for local experimentation: tickets spanning a
// few tags, locations, and sources so both search passes have something
// to chew on.
var sampleRecords = []ingestion.RawRecord{
	{
		"ticket_id": "seed-001",
		"title":     "AI startup raises $40M Series B in New York",
		"type":      "news",
		"tags":      []any{"AI", "Startup", "Funding"},
		"metadata":  map[string]any{"location": "New York, NY", "published": "2025-03-12"},
		"source":    map[string]any{"name": "TechCrunch", "link": "https://techcrunch.com/example-1"},
	},
	{
		"ticket_id": "seed-002",
		"title":     "Open-source vector database benchmark results published",
		"type":      "news",
		"tags":      []any{"AI", "Databases"},
		"source":    map[string]any{"name": "TechCrunch", "link": "https://techcrunch.com/example-2"},
	},
	{
		"ticket_id": "seed-003",
		"title":     "Checkout fails intermittently for payments above $1000",
		"type":      "bug",
		"tags":      []any{"bug", "payment"},
		"metadata":  map[string]any{"severity": "high"},
		"source":    map[string]any{"name": "Internal Tracker"},
	},
	{
		"ticket_id": "seed-004",
		"title":     "Texas startup launches GitHub-integrated CI platform",
		"type":      "news",
		"tags":      []any{"Startup", "DevTools"},
		"metadata":  map[string]any{"location": "Austin, TX"},
		"source":    map[string]any{"name": "GitHub Blog"},
	},
	{
		"ticket_id": "seed-005",
		"title":     "Quarterly infrastructure cost review and savings plan",
		"type":      "task",
		"tags":      []any{"Infrastructure", "Finance"},
		"source":    map[string]any{"name": "Internal Tracker"},
	},
	{
		"ticket_id": "seed-006",
		"title":     "Login page renders blank on Safari after session timeout",
		"type":      "bug",
		"tags":      []any{"bug", "frontend"},
		"metadata":  map[string]any{"severity": "medium"},
		"source":    map[string]any{"name": "Internal Tracker"},
	},
	{
		"ticket_id": "seed-007",
		"title":     "New York conference recap: trends in applied machine learning",
		"type":      "news",
		"tags":      []any{"AI", "Events"},
		"metadata":  map[string]any{"location": "New York, NY"},
		"source":    map[string]any{"name": "VentureBeat"},
	},
	{
		"ticket_id": "seed-008",
		"title":     "Migrate ticket archive to the new storage cluster",
		"type":      "task",
		"tags":      []any{"Infrastructure"},
		"source":    map[string]any{"name": "Internal Tracker"},
	},
}

var (
	dbPath       = flag.String("db", "./tickets_db", "path to BadgerDB database directory")
	seedFileName = flag.String("src", "", "optional JSON file of raw records (defaults to built-in corpus)")
	host         = flag.String("host", "http://localhost:11434", "OpenAI-compatible service host URL")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

func main() {
	flag.Parse()

	records := sampleRecords
	if *seedFileName != "" {
		data, err := os.ReadFile(*seedFileName)
		if err != nil {
			panic(err)
		}
		records = nil
		if err := json.Unmarshal(data, &records); err != nil {
			panic(err)
		}
	}

	config := ai.NewConfig(ai.WithHost(*host))
	db, err := transcout.NewDatabase(*dbPath, transcout.WithAIConfig(config))
	if err != nil {
		panic(err)
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline()
	if err != nil {
		panic(err)
	}
	defer pipeline.Release()

	report, err := pipeline.Ingest(context.Background(), records)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Seeded %d tickets (%d skipped) into %s\n", report.Ingested, report.Skipped, *dbPath)
}
