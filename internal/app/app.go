// Package app wires configuration into the services shared by the HTTP
// server and the command line tool.
package app

import (
	"context"
	"fmt"

	"mcq-generator/internal/adapter"
	"mcq-generator/internal/adapter/exporter"
	"mcq-generator/internal/adapter/extractor"
	"mcq-generator/internal/adapter/llm"
	"mcq-generator/internal/cache"
	"mcq-generator/internal/config"
	"mcq-generator/internal/database"
	"mcq-generator/internal/domain"
	"mcq-generator/internal/logger"
	"mcq-generator/internal/repository"
	"mcq-generator/internal/service"

	"go.uber.org/zap"
)

// Components holds the wired services and the resources they own.
type Components struct {
	Config     *config.Config
	Extractor  *extractor.Extractor
	Generator  *llm.Generator
	Exporter   *exporter.PDFExporter
	Cache      domain.Cache                 // nil without redis.address
	Repository domain.QuestionSetRepository // nil without db.host and db.user
	Generation service.GenerationService
	Export     service.ExportService

	closers []func() error
}

// New builds all components. Redis and Oracle are only connected when
// configured; a configured backend that cannot be reached is an error.
func New(ctx context.Context, cfg *config.Config) (*Components, error) {
	l := logger.Get()
	c := &Components{Config: cfg, Extractor: extractor.New()}

	gen, err := llm.NewFromConfig(ctx, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation client: %w", err)
	}
	c.Generator = gen

	c.Exporter = exporter.NewPDFExporter(exporter.Config{
		PageSize:   cfg.Export.PageSize,
		FontFamily: cfg.Export.FontFamily,
		Dir:        cfg.Export.Dir,
	})

	if cfg.Redis.Address != "" {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, client.Close)
		c.Cache = adapter.NewRedisCacheAdapter(client)
		l.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
	} else {
		l.Info("Redis not configured, generation cache disabled")
	}

	if cfg.DatabaseEnabled() {
		db, err := database.NewSQLXOracleDB(ctx, cfg.GetDSN())
		if err != nil {
			c.Close()
			return nil, err
		}
		c.closers = append(c.closers, db.Close)
		c.Repository = repository.NewQuestionSetDatabaseAdapter(db)
	} else {
		l.Info("Database not configured, question sets will not be archived")
	}

	c.Generation = service.NewGenerationService(c.Extractor, c.Generator, c.Cache, c.Repository, service.GenerationConfig{
		MinSourceChars:   cfg.Generation.MinSourceChars,
		MaxSourceChars:   cfg.Generation.MaxSourceChars,
		MaxQuestions:     cfg.Generation.MaxQuestions,
		DefaultQuestions: cfg.Generation.DefaultQuestions,
		CacheTTL:         cfg.ParseTTLStringOrDefault(cfg.CacheTTLs.Generation, service.DefaultGenerationTTL),
	})
	c.Export = service.NewExportService(c.Exporter, c.Generation)

	return c, nil
}

// Close releases connections in reverse order of creation.
func (c *Components) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			logger.Get().Warn("Failed to close resource", zap.Error(err))
		}
	}
	c.closers = nil
}
