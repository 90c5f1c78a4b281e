// Copyright 2025 Transcout
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/transcout/transcout"
	"github.com/transcout/transcout/ai"
	"github.com/transcout/transcout/ingestion"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "transcout",
		Usage: "Hybrid retrieval over a ticket property graph",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Retrieve ranked tickets for a free-text query",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: append(databaseFlags(),
					&cli.IntFlag{
						Name:    "top",
						Aliases: []string{"n"},
						Usage:   "Number of results to return",
						Value:   5,
					},
				),
			},
			{
				Name:      "ask",
				Usage:     "Generate a grounded answer for a free-text query",
				ArgsUsage: "<query>",
				Action:    askCommand,
				Flags:     databaseFlags(),
			},
			{
				Name:   "ingest",
				Usage:  "Normalize and ingest raw JSON records into the ticket graph",
				Action: ingestCommand,
				Flags: append(databaseFlags(),
					&cli.StringFlag{
						Name:     "src",
						Aliases:  []string{"s"},
						Usage:    "Path to a JSON file holding an array of raw records",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Worker pool size for concurrent normalization",
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func databaseFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "host",
			Usage: "OpenAI-compatible service host URL",
			Value: "http://localhost:11434",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "intfloat/e5-base-v2",
		},
		&cli.StringFlag{
			Name:  "chat-model",
			Usage: "Chat model name",
			Value: "gpt-4o-mini",
		},
		&cli.StringFlag{
			Name:    "token",
			Usage:   "API token for the model service",
			EnvVars: []string{"TRANSCOUT_API_TOKEN"},
		},
	}
}

func openDatabase(c *cli.Context) (*transcout.Database, error) {
	config := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithChatModel(c.String("chat-model")),
		ai.WithToken(c.String("token")),
	)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	db, err := transcout.NewDatabase(c.String("db"), transcout.WithAIConfig(config))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func queryFromArgs(c *cli.Context) (string, error) {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return "", fmt.Errorf("query is required")
	}
	return query, nil
}

func searchCommand(c *cli.Context) error {
	query, err := queryFromArgs(c)
	if err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	retriever, err := db.NewRetriever()
	if err != nil {
		return err
	}

	records, err := retriever.Retrieve(context.Background(), query, c.Int("top"))
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No results.")
		return nil
	}

	for _, record := range records {
		fmt.Printf("%d: %s [%0.4f]\n", record.Rank, record.Title, record.Similarity)
		fmt.Printf("   id=%s type=%s", record.TicketID, record.Type)
		if len(record.Tags) > 0 {
			fmt.Printf(" tags=%s", strings.Join(record.Tags, ","))
		}
		fmt.Println()
	}
	return nil
}

func askCommand(c *cli.Context) error {
	query, err := queryFromArgs(c)
	if err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	generator, err := db.NewAnswerGenerator()
	if err != nil {
		return err
	}

	response, err := generator.Generate(context.Background(), query)
	if err != nil {
		return fmt.Errorf("answer generation failed: %w", err)
	}

	fmt.Println(response.Answer)
	if len(response.Sources) > 0 {
		fmt.Println()
		for _, src := range response.Sources {
			fmt.Printf("Source %d: %s (%s)\n", src.Rank, src.Title, src.TicketID)
		}
	}
	return nil
}

func ingestCommand(c *cli.Context) error {
	data, err := os.ReadFile(c.String("src"))
	if err != nil {
		return fmt.Errorf("failed to read source file: %w", err)
	}

	var records []ingestion.RawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("source file is not a JSON array of records: %w", err)
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	var opts []ingestion.Option
	if size := c.Int("pool-size"); size > 0 {
		opts = append(opts, ingestion.WithPoolSize(size))
	}

	pipeline, err := db.NewIngestionPipeline(opts...)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	report, err := pipeline.Ingest(context.Background(), records)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Printf("Ingested %d tickets, skipped %d records\n", report.Ingested, report.Skipped)
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
