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


package transcout

import (
	"log/slog"

	"github.com/transcout/transcout/ai"
	"github.com/transcout/transcout/ai/openai"
	"github.com/transcout/transcout/answer"
	"github.com/transcout/transcout/ingestion"
	"github.com/transcout/transcout/search"
	"github.com/transcout/transcout/storage"
	"github.com/transcout/transcout/storage/badger"
)

// Database aggregates the storage backend, ticket repository, and AI
// provider, and hands out the pipelines built on top of them.
type Database struct {
	backend    *badger.Backend
	ticketRepo storage.TicketRepository
	provider   ai.Provider
	logger     *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
}

// WithAIConfig sets the AI service configuration.
// Default is ai.DefaultConfig().
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithAIProvider injects a pre-built AI provider instead of constructing
// the OpenAI-compatible one. Used by tests and tools that run without a
// model backend.
func WithAIProvider(provider ai.Provider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// NewDatabase opens the ticket graph at filePath and wires the AI services.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	ticketRepo, err := badger.NewTicketRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			ticketRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Database{
		backend:    backend,
		ticketRepo: ticketRepo,
		provider:   provider,
		logger:     slog.Default(),
	}, nil
}

// Close releases the AI provider, repository, and backend.
func (db *Database) Close() error {
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	if err := db.ticketRepo.Close(); err != nil {
		db.logger.Error("error closing ticket repository", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// TicketRepository returns the underlying ticket repository.
func (db *Database) TicketRepository() storage.TicketRepository {
	return db.ticketRepo
}

// NewRetriever creates a retrieval pipeline over this database.
func (db *Database) NewRetriever(opts ...search.Option) (*search.Retriever, error) {
	return search.NewRetriever(db.ticketRepo, db.provider, opts...)
}

// NewIngestionPipeline creates an ingestion pipeline over this database.
func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(db.ticketRepo, db.provider, opts...)
}

// NewAnswerGenerator creates an answer generator over this database.
func (db *Database) NewAnswerGenerator(opts ...search.Option) (*answer.Generator, error) {
	retriever, err := db.NewRetriever(opts...)
	if err != nil {
		return nil, err
	}
	return answer.NewGenerator(retriever, db.provider.Responder())
}
