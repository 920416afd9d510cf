package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"mcq-generator/internal/cache"
	"mcq-generator/internal/decoder"
	"mcq-generator/internal/domain"
	"mcq-generator/internal/logger"
	"mcq-generator/internal/prompt"
	"mcq-generator/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultMinSourceChars = 100
	DefaultMaxQuestions   = 20
	DefaultQuestionCount  = 5
	DefaultGenerationTTL  = 24 * time.Hour
	DefaultListLimit      = 20
	MaxListLimit          = 100
)

// GenerationConfig holds the limits enforced by GenerationService.
type GenerationConfig struct {
	MinSourceChars   int
	MaxSourceChars   int
	MaxQuestions     int
	DefaultQuestions int
	CacheTTL         time.Duration
}

func (c GenerationConfig) withDefaults() GenerationConfig {
	if c.MinSourceChars <= 0 {
		c.MinSourceChars = DefaultMinSourceChars
	}
	if c.MaxSourceChars <= 0 {
		c.MaxSourceChars = prompt.DefaultMaxSourceChars
	}
	if c.MaxQuestions <= 0 {
		c.MaxQuestions = DefaultMaxQuestions
	}
	if c.DefaultQuestions <= 0 {
		c.DefaultQuestions = DefaultQuestionCount
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = DefaultGenerationTTL
	}
	return c
}

// Source describes where the text of a request came from.
type Source struct {
	Name  string
	Title string
}

// FileInput is a generation request for an uploaded or local file.
type FileInput struct {
	Path       string
	Name       string
	Title      string
	Count      int
	Difficulty string
}

// GenerationResult is the outcome of a successful generation.
type GenerationResult struct {
	ID         string                     `json:"id,omitempty"`
	Title      string                     `json:"title,omitempty"`
	SourceName string                     `json:"source_name,omitempty"`
	Difficulty domain.Difficulty          `json:"difficulty"`
	Requested  int                        `json:"requested"`
	Questions  domain.QuestionSet         `json:"mcqs"`
	Tier       decoder.Tier               `json:"tier"`
	Warnings   []domain.ValidationWarning `json:"warnings,omitempty"`
	Cached     bool                       `json:"cached"`
}

// GenerationService runs the extraction, prompt, model, decode and
// validation pipeline.
type GenerationService interface {
	GenerateFromFile(ctx context.Context, in FileInput) (*GenerationResult, error)
	GenerateFromText(ctx context.Context, src Source, req domain.GenerationRequest) (*GenerationResult, error)
	GetSet(ctx context.Context, id string) (*domain.StoredQuestionSet, error)
	ListSets(ctx context.Context, limit int) ([]*domain.StoredQuestionSet, error)
}

type generationServiceImpl struct {
	extractor domain.TextExtractor
	generator domain.Generator
	builder   *prompt.Builder
	decoder   *decoder.Decoder
	cache     domain.Cache                 // optional
	repo      domain.QuestionSetRepository // optional
	cfg       GenerationConfig
	sfGroup   singleflight.Group
}

// NewGenerationService wires the pipeline. cache and repo may be nil.
func NewGenerationService(
	extractor domain.TextExtractor,
	generator domain.Generator,
	cacheClient domain.Cache,
	repo domain.QuestionSetRepository,
	cfg GenerationConfig,
) GenerationService {
	cfg = cfg.withDefaults()
	return &generationServiceImpl{
		extractor: extractor,
		generator: generator,
		builder:   prompt.NewBuilder(cfg.MaxSourceChars),
		decoder:   decoder.New(),
		cache:     cacheClient,
		repo:      repo,
		cfg:       cfg,
	}
}

func (s *generationServiceImpl) GenerateFromFile(ctx context.Context, in FileInput) (*GenerationResult, error) {
	difficulty, err := domain.ParseDifficulty(in.Difficulty)
	if err != nil {
		return nil, err
	}
	name := in.Name
	if name == "" {
		name = in.Path
	}

	text, err := s.extractor.Extract(ctx, in.Path)
	if err != nil {
		return nil, err
	}

	return s.GenerateFromText(ctx, Source{Name: name, Title: in.Title}, domain.GenerationRequest{
		SourceText: text,
		Count:      in.Count,
		Difficulty: difficulty,
	})
}

func (s *generationServiceImpl) GenerateFromText(ctx context.Context, src Source, req domain.GenerationRequest) (*GenerationResult, error) {
	l := logger.Get()

	req.SourceText = strings.TrimSpace(req.SourceText)
	if n := utf8.RuneCountInString(req.SourceText); n < s.cfg.MinSourceChars {
		l.Info("Source text too short for generation",
			zap.String("source", src.Name),
			zap.Int("chars", n),
			zap.Int("minimum", s.cfg.MinSourceChars))
		return nil, domain.NewTooShortError(n, s.cfg.MinSourceChars)
	}

	if req.Count == 0 {
		req.Count = s.cfg.DefaultQuestions
	}
	if req.Count < 1 || req.Count > s.cfg.MaxQuestions {
		return nil, domain.ValidationErrors{domain.NewOutOfRangeError("num_questions", req.Count, 1, s.cfg.MaxQuestions)}
	}
	if req.Difficulty == "" {
		req.Difficulty = domain.DifficultyMedium
	}
	if _, err := domain.ParseDifficulty(string(req.Difficulty)); err != nil {
		return nil, err
	}

	cacheKey := cache.GenerationResultKey(req.SourceText, req.Count, string(req.Difficulty), s.generator.ModelName())
	if cached := s.lookup(ctx, cacheKey); cached != nil {
		l.Info("Generation cache hit", zap.String("source", src.Name), zap.String("id", cached.ID))
		return cached, nil
	}

	// The shared call outlives any single caller; the generator's own
	// timeout bounds it.
	shareCtx := context.WithoutCancel(ctx)
	ch := s.sfGroup.DoChan(cacheKey, func() (interface{}, error) {
		return s.generate(shareCtx, src, req, cacheKey)
	})

	var r singleflight.Result
	select {
	case <-ctx.Done():
		l.Info("Generation request cancelled by caller", zap.String("source", src.Name), zap.Error(ctx.Err()))
		return nil, domain.NewGenerationError("generation request cancelled", ctx.Err())
	case r = <-ch:
	}
	if r.Err != nil {
		return nil, r.Err
	}
	result, ok := r.Val.(*GenerationResult)
	if !ok {
		return nil, domain.NewInternalError(fmt.Sprintf("unexpected type from singleflight.DoChan: %T", r.Val), nil)
	}
	if r.Shared {
		l.Debug("Generation result shared with concurrent request", zap.String("source", src.Name))
		copied := *result
		copied.Title = src.Title
		copied.SourceName = src.Name
		return &copied, nil
	}
	return result, nil
}

func (s *generationServiceImpl) generate(ctx context.Context, src Source, req domain.GenerationRequest, cacheKey string) (*GenerationResult, error) {
	l := logger.Get()
	start := time.Now()

	p := s.builder.Build(req, decoder.FormatInstructions())
	if _, truncated := prompt.Truncate(req.SourceText, s.cfg.MaxSourceChars); truncated {
		l.Info("Source text truncated for prompt", zap.String("source", src.Name))
	}

	raw, err := s.generator.Generate(ctx, p)
	if err != nil {
		var domainErr *domain.DomainError
		if !errors.As(err, &domainErr) {
			err = domain.NewGenerationError("generation backend request failed", err)
		}
		return nil, err
	}
	l.Debug("Raw model response", zap.String("source", src.Name), zap.String("raw", raw))

	decoded, err := s.decoder.Decode(raw)
	if err != nil {
		l.Warn("Model response could not be decoded", zap.String("source", src.Name), zap.Error(err))
		return nil, err
	}

	valid, warnings := domain.ValidateQuestionSet(decoded.Questions)
	for _, w := range warnings {
		l.Warn("Dropped invalid question", zap.String("source", src.Name), zap.Int("index", w.Index), zap.String("reason", w.Reason))
	}
	if len(valid) == 0 {
		return nil, domain.NewError(domain.CodeDecode, "Model response contained no valid questions", nil).
			WithContext("decoded", len(decoded.Questions)).
			WithContext("dropped", len(warnings))
	}
	if len(valid) < req.Count {
		l.Info("Fewer questions than requested",
			zap.String("source", src.Name),
			zap.Int("requested", req.Count),
			zap.Int("returned", len(valid)))
	}

	result := &GenerationResult{
		Title:      src.Title,
		SourceName: src.Name,
		Difficulty: req.Difficulty,
		Requested:  req.Count,
		Questions:  valid,
		Tier:       decoded.Tier,
		Warnings:   warnings,
	}
	s.archive(ctx, result)
	s.store(ctx, cacheKey, result)

	l.Info("Generated question set",
		zap.String("source", src.Name),
		zap.String("id", result.ID),
		zap.String("tier", string(result.Tier)),
		zap.Int("questions", len(result.Questions)),
		zap.Duration("elapsed", time.Since(start)))
	return result, nil
}

// archive stores the result when a repository is configured. Failures are
// logged and leave the result without an ID.
func (s *generationServiceImpl) archive(ctx context.Context, result *GenerationResult) {
	if s.repo == nil {
		return
	}
	stored := &domain.StoredQuestionSet{
		ID:             util.NewULID(),
		Title:          result.Title,
		SourceName:     result.SourceName,
		Difficulty:     result.Difficulty,
		RequestedCount: result.Requested,
		Questions:      result.Questions,
		DecodeTier:     string(result.Tier),
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.repo.Save(ctx, stored); err != nil {
		logger.Get().Error("Failed to archive question set", zap.String("source", result.SourceName), zap.Error(err))
		return
	}
	result.ID = stored.ID
}

func (s *generationServiceImpl) lookup(ctx context.Context, key string) *GenerationResult {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Generation cache read failed", zap.String("cacheKey", key), zap.Error(err))
		}
		return nil
	}
	var result GenerationResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		logger.Get().Warn("Discarding undecodable cache entry", zap.String("cacheKey", key), zap.Error(err))
		return nil
	}
	result.Cached = true
	return &result
}

func (s *generationServiceImpl) store(ctx context.Context, key string, result *GenerationResult) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		logger.Get().Error("Failed to encode generation result for caching", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(data), s.cfg.CacheTTL); err != nil {
		logger.Get().Warn("Failed to cache generation result", zap.String("cacheKey", key), zap.Error(err))
	}
}

func (s *generationServiceImpl) GetSet(ctx context.Context, id string) (*domain.StoredQuestionSet, error) {
	if s.repo == nil {
		return nil, domain.NewNotFoundError("question set archive is not configured")
	}
	if !util.IsULID(id) {
		return nil, domain.ValidationErrors{domain.NewInvalidFormatError("id", id)}
	}
	set, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to load question set", err)
	}
	if set == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("question set %s not found", id))
	}
	return set, nil
}

func (s *generationServiceImpl) ListSets(ctx context.Context, limit int) ([]*domain.StoredQuestionSet, error) {
	if s.repo == nil {
		return []*domain.StoredQuestionSet{}, nil
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	sets, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, domain.NewInternalError("failed to list question sets", err)
	}
	return sets, nil
}
